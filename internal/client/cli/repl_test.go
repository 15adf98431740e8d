package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubExec struct {
	loggedIn bool
	calls    []string
}

func (s *stubExec) isLoggedIn() bool { return s.loggedIn }

func (s *stubExec) record(name string) error {
	s.calls = append(s.calls, name)
	return nil
}

func (s *stubExec) Register(context.Context) error { return s.record("register") }
func (s *stubExec) Login(context.Context) error    { return s.record("login") }
func (s *stubExec) Upload(context.Context) error   { return s.record("upload") }
func (s *stubExec) List(context.Context) error     { return s.record("list") }
func (s *stubExec) Download(context.Context) error { return s.record("download") }
func (s *stubExec) Delete(context.Context) error   { return s.record("delete") }
func (s *stubExec) Logout(context.Context) error   { return s.record("logout") }

func runScript(t *testing.T, a *stubExec, script string) []string {
	t.Helper()

	orig := printlnFn
	var printed []string
	printlnFn = func(args ...any) (int, error) {
		for _, arg := range args {
			if s, ok := arg.(string); ok {
				printed = append(printed, s)
			}
		}
		return 0, nil
	}
	defer func() { printlnFn = orig }()

	scanner := bufio.NewScanner(strings.NewReader(script))
	runREPL(context.Background(), a, func() string { return "status" }, scanner)
	return printed
}

func TestREPL_DispatchesCommands(t *testing.T) {
	a := &stubExec{loggedIn: true}
	runScript(t, a, "upload\nlist\nl\ndownload\ndelete\nlogout\nexit\n")
	assert.Equal(t, []string{"upload", "list", "list", "download", "delete", "logout"}, a.calls)
}

func TestREPL_AuthCommands(t *testing.T) {
	a := &stubExec{}
	runScript(t, a, "register\nlogin\nquit\n")
	assert.Equal(t, []string{"register", "login"}, a.calls)
}

func TestREPL_UnknownAndBlank(t *testing.T) {
	a := &stubExec{}
	printed := runScript(t, a, "\nbogus\nexit\n")
	assert.Empty(t, a.calls)
	assert.Contains(t, printed, "Unknown command:")
}

func TestREPL_HelpDependsOnLoginState(t *testing.T) {
	loggedOut := &stubExec{}
	printed := runScript(t, loggedOut, "help\nexit\n")
	assert.Contains(t, printed, "Available commands: register, login, exit")

	loggedIn := &stubExec{loggedIn: true}
	printed = runScript(t, loggedIn, "help\nexit\n")
	assert.Contains(t, printed, "Available commands: upload, (l)ist, download, delete, logout, exit")
}

func TestREPL_ExitsOnEOF(t *testing.T) {
	a := &stubExec{}
	runScript(t, a, "list\n")
	assert.Equal(t, []string{"list"}, a.calls)
}
