package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	old := os.Args
	os.Args = append([]string{"cli"}, args...)
	t.Cleanup(func() { os.Args = old })
}

func TestLoadConfig_Defaults(t *testing.T) {
	withArgs(t)

	cfg := LoadConfig()
	assert.Equal(t, "http://127.0.0.1:8080", cfg.ServerEndpointAddr)
}

func TestLoadConfig_Flags(t *testing.T) {
	withArgs(t, "-a", "https://stash.example.com")

	cfg := LoadConfig()
	assert.Equal(t, "https://stash.example.com", cfg.ServerEndpointAddr)
}

func TestLoadConfig_JsonOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"server_endpoint_addr": "http://json:8081"}`), 0o600))

	withArgs(t, "-c", path)

	cfg := LoadConfig()
	assert.Equal(t, "http://json:8081", cfg.ServerEndpointAddr)
}

func TestLoadConfig_FlagsWinOverJson(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"server_endpoint_addr": "http://json:8081"}`), 0o600))

	withArgs(t, "-c", path, "-a", "http://flag:8082")

	cfg := LoadConfig()
	assert.Equal(t, "http://flag:8082", cfg.ServerEndpointAddr)
}
