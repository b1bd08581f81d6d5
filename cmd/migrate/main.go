// Command migrate creates the catalog schema and exits.
package main

import (
	"os"

	"github.com/mantonx/cinemadb/internal/bootstrap"
	"github.com/mantonx/cinemadb/internal/database"
	"github.com/mantonx/cinemadb/internal/logger"
	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "migrate"
	app.Usage = "creates the catalog tables if they are absent"
	app.Flags = bootstrap.RegisterFlags([]cli.Flag{})
	app.Action = func(c *cli.Context) error {
		rt, err := bootstrap.Load(c)
		if err != nil {
			return err
		}
		db, err := rt.OpenDatabase()
		if err != nil {
			return err
		}
		defer database.Close(db)

		rt.Logger.Info("schema is up to date", "type", rt.Config.Database.Type)
		return nil
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}
}
