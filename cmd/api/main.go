package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	pg "clinic-scheduling/internal/adapters/storage/postgres"
	"clinic-scheduling/internal/config"
	"clinic-scheduling/internal/domain/schedules"
	"clinic-scheduling/internal/platform/logger"
	"clinic-scheduling/internal/router"

	"github.com/spf13/cobra"
)

// @title Clinic Scheduling API
// @version 1.0
// @description Pacientes y agendamientos con control de cupos por día y por horario.
// @BasePath /
func main() {
	rootCmd := &cobra.Command{
		Use:   "clinic-api",
		Short: "Clinic patients and scheduling API",
		// sin subcomando => serve
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the Postgres tables (needs DB_DSN)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cfg.UsesPostgres() {
				return errors.New("DB_DSN is not set")
			}

			db, err := pg.Open(cfg.DBDSN)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := pg.Migrate(cmd.Context(), db); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			fmt.Println("schema applied")
			return nil
		},
	}
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	var db *sql.DB
	if cfg.UsesPostgres() {
		db, err = pg.Open(cfg.DBDSN)
		if err != nil {
			log.Error("postgres unavailable", map[string]any{"err": err})
			return err
		}
		defer db.Close()
		log.Info("using postgres storage", nil)
	} else {
		log.Info("using in-memory storage", nil)
	}

	h := router.NewRouter(router.Options{
		Logger: log,
		DB:     db,
		Limits: schedules.Limits{
			PerDay:  cfg.DailyCapacity,
			PerSlot: cfg.SlotCapacity,
		},
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      h,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server error", map[string]any{"err": err})
			return err
		}
		return nil
	case <-quit:
	}

	log.Info("shutting down server", nil)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", map[string]any{"err": err})
		return err
	}
	log.Info("server stopped", nil)
	return nil
}
