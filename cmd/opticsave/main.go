package main

import (
	"context"
	"log"
	"os"

	"github.com/andresMonthn/OpticSave-sub000/internal/buildinfo"
	"github.com/andresMonthn/OpticSave-sub000/internal/client/cli"
	"github.com/andresMonthn/OpticSave-sub000/internal/client/config"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := cli.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}
	defer app.Close()

	app.Run(ctx)
}
