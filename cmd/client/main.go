package main

import (
	"context"

	"github.com/avasiliev/taskkeeper/internal/client/cli"
	"github.com/avasiliev/taskkeeper/internal/client/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app := cli.NewApp(cfg)

	app.Run(ctx)

}
