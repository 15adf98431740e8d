package main

import (
	"context"

	"github.com/dkrasnovs/filestash/internal/client/cli"
	"github.com/dkrasnovs/filestash/internal/client/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app := cli.NewApp(cfg)

	app.Run(ctx)

}
