package main

import (
	"context"
	"log"

	"github.com/obelousov/pixelboard/internal/client/cli"
	"github.com/obelousov/pixelboard/internal/client/config"
)

func main() {

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.LoadConfig()

	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
