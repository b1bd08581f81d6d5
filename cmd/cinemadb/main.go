package main

import (
	"os"

	"github.com/mantonx/cinemadb/internal/bootstrap"
	"github.com/mantonx/cinemadb/internal/logger"
	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "cinemadb"
	app.Usage = "serves the movie catalog API"
	app.Flags = bootstrap.RegisterFlags([]cli.Flag{})
	app.Action = serve

	if err := app.Run(os.Args); err != nil {
		logger.Error("cinemadb exited with error", "error", err)
		os.Exit(1)
	}
}
