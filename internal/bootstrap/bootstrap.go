// Package bootstrap holds the command line plumbing shared by the binaries.
package bootstrap

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/mantonx/cinemadb/internal/config"
	"github.com/mantonx/cinemadb/internal/database"
	"github.com/mantonx/cinemadb/internal/logger"
	"github.com/urfave/cli"
	"gorm.io/gorm"
)

const (
	ConfigFlag   = "config"
	LogLevelFlag = "log-level"
)

// RegisterFlags adds the flags every command understands
func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.StringFlag{
			Name:   ConfigFlag,
			Usage:  "path to the YAML or JSON configuration file",
			Value:  config.DefaultPath(),
			EnvVar: "CINEMADB_CONFIG_PATH",
		},
		cli.StringFlag{
			Name:  LogLevelFlag,
			Usage: "overrides logging.level from the configuration",
		},
	)
}

// Runtime is the configuration and logger a command starts from
type Runtime struct {
	Config  *config.Config
	Manager *config.ConfigManager
	Logger  hclog.Logger
}

// Load reads the configuration named by the flags and initializes logging
func Load(c *cli.Context) (*Runtime, error) {
	path := c.String(ConfigFlag)

	cm := config.NewConfigManager()
	if err := cm.LoadConfig(path); err != nil {
		return nil, fmt.Errorf("failed to load configuration from %q: %w", path, err)
	}
	cfg := cm.GetConfig()

	if lvl := c.String(LogLevelFlag); lvl != "" {
		cfg.Logging.Level = lvl
	}
	log := logger.Init(logger.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	if path != "" {
		log.Info("configuration loaded", "path", path)
	} else {
		log.Info("using default configuration")
	}
	return &Runtime{Config: cfg, Manager: cm, Logger: log}, nil
}

// OpenDatabase connects to the configured store and creates the schema
func (r *Runtime) OpenDatabase() (*gorm.DB, error) {
	db, err := database.Open(r.Config.Database)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		_ = database.Close(db)
		return nil, err
	}
	return db, nil
}
