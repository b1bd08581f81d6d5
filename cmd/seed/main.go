// Command seed loads a YAML fixture of genres, directors and movies.
package main

import (
	"context"
	"os"

	"github.com/mantonx/cinemadb/internal/bootstrap"
	"github.com/mantonx/cinemadb/internal/database"
	"github.com/mantonx/cinemadb/internal/logger"
	"github.com/mantonx/cinemadb/internal/seed"
	"github.com/urfave/cli"
)

const fixtureFlag = "fixture"

func main() {
	app := cli.NewApp()
	app.Name = "seed"
	app.Usage = "loads a catalog fixture in one transaction"
	app.Flags = bootstrap.RegisterFlags([]cli.Flag{
		cli.StringFlag{
			Name:   fixtureFlag,
			Usage:  "path to the YAML fixture",
			Value:  "fixtures/catalog.yaml",
			EnvVar: "CINEMADB_FIXTURE",
		},
	})
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		logger.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	rt, err := bootstrap.Load(c)
	if err != nil {
		return err
	}

	fixture, err := seed.LoadFile(c.String(fixtureFlag))
	if err != nil {
		return err
	}

	db, err := rt.OpenDatabase()
	if err != nil {
		return err
	}
	defer database.Close(db)

	result, err := seed.Apply(context.Background(), db, fixture)
	if err != nil {
		return err
	}
	rt.Logger.Info("seed complete", "genres", result.Genres, "directors", result.Directors, "movies", result.Movies)
	return nil
}
