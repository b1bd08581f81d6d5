package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mantonx/cinemadb/internal/bootstrap"
	"github.com/mantonx/cinemadb/internal/config"
	"github.com/mantonx/cinemadb/internal/database"
	"github.com/mantonx/cinemadb/internal/logger"
	"github.com/mantonx/cinemadb/internal/server"
	"github.com/urfave/cli"
)

func serve(c *cli.Context) error {
	rt, err := bootstrap.Load(c)
	if err != nil {
		return err
	}
	log := rt.Logger

	gin.SetMode(rt.Config.Server.Mode)

	db, err := database.Open(rt.Config.Database)
	if err != nil {
		return err
	}
	defer database.Close(db)

	srv, err := server.New(server.Dependencies{Config: rt.Config, DB: db, Logger: log})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Log level changes apply without a restart; everything else needs one
	rt.Manager.AddWatcher(func(oldConfig, newConfig *config.Config) {
		if oldConfig.Logging.Level != newConfig.Logging.Level {
			logger.SetLevel(newConfig.Logging.Level)
			log.Info("log level changed", "level", newConfig.Logging.Level)
		}
	})
	if rt.Manager.Path() != "" {
		go func() {
			if err := rt.Manager.Watch(ctx, log.Named("config")); err != nil {
				log.Warn("config watcher stopped", "error", err)
			}
		}()
	}

	httpServer := srv.HTTPServer()
	serveErr := make(chan error, 1)
	go func() {
		log.Info("starting cinemadb server", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutting down gracefully")
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("http server shutdown error", "error", err)
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("module shutdown error", "error", err)
	}
	log.Info("server shutdown complete")
	return nil
}
