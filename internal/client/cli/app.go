package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/dkrasnovs/filestash/internal/client/client"
	"github.com/dkrasnovs/filestash/internal/client/config"
)

type App struct {
	config   *config.Config
	api      client.Client
	userName string
	reader   *bufio.Reader
}

func NewApp(c *config.Config) *App {
	return &App{
		config: c,
		api:    client.NewFilestashClient(c.ServerEndpointAddr),
		reader: bufio.NewReader(os.Stdin),
	}
}

func (a *App) isLoggedIn() bool {
	return a.api.IsAuthenticated()
}

func (a *App) status() string {
	if a.isLoggedIn() {
		return a.userName
	}
	return "not logged in"
}

func (a *App) Run(ctx context.Context) {
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}
