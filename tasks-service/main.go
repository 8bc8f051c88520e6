package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chepyr/go-task-api/internal/auth"
	"github.com/chepyr/go-task-api/internal/config"
	"github.com/chepyr/go-task-api/internal/db"
	"github.com/chepyr/go-task-api/internal/handlers"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "tasks-service",
		Usage: "task list HTTP API",
		Before: func(cliCtx *cli.Context) error {
			return loadEnvFile(cliCtx.String("env-file"))
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Value: ".env",
				Usage: "dotenv file loaded before reading the environment, skipped when missing",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "start the HTTP server",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "migrate",
						Usage: "create the database schema before serving",
					},
				},
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "create the database schema",
				Action: migrate,
			},
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("tasks-service failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		// no file, rely on the process environment
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return errors.Wrapf(err, "could not load %s", path)
	}
	return nil
}

func setup(ctx context.Context) (*config.Config, *sql.DB, error) {
	conf, err := config.Parse()
	if err != nil {
		return nil, nil, errors.Wrap(err, "could not parse config")
	}
	slog.SetDefault(newLogger(conf.Logger))

	dsn, err := conf.DSN()
	if err != nil {
		return nil, nil, err
	}
	dbConn, err := db.Connect(ctx, conf.Database.Driver, dsn)
	if err != nil {
		return nil, nil, err
	}
	return conf, dbConn, nil
}

func newLogger(conf config.Logger) *slog.Logger {
	opts := &slog.HandlerOptions{Level: conf.Level}
	if conf.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func migrate(cliCtx *cli.Context) error {
	conf, dbConn, err := setup(cliCtx.Context)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	if err := db.Migrate(cliCtx.Context, dbConn, conf.Database.Driver); err != nil {
		return err
	}
	slog.Info("schema is up to date", slog.String("driver", conf.Database.Driver))
	return nil
}

func serve(cliCtx *cli.Context) error {
	ctx := cliCtx.Context
	conf, dbConn, err := setup(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			slog.Error("could not close database connection", slog.Any("error", err))
		}
	}()

	if cliCtx.Bool("migrate") {
		if err := db.Migrate(ctx, dbConn, conf.Database.Driver); err != nil {
			return err
		}
	}

	if conf.FrontendAPIToken == "" {
		slog.Warn("FRONTEND_API_TOKEN is empty, every API request will be rejected")
	}

	handler := handlers.NewHandler(
		db.NewTaskRepository(dbConn),
		auth.NewTokenGuard(conf.FrontendAPIToken),
		slog.Default(),
	)
	server := &http.Server{
		Addr: conf.HTTP.Address,
		Handler: handlers.NewRouter(handler, handlers.RouterOptions{
			AllowedOrigins: conf.HTTP.AllowedOrigins,
			MetricsEnabled: conf.HTTP.MetricsEnabled,
		}),
		ReadHeaderTimeout: conf.HTTP.ReadHeaderTimeout,
		ReadTimeout:       conf.HTTP.ReadTimeout,
		WriteTimeout:      conf.HTTP.WriteTimeout,
		IdleTimeout:       conf.HTTP.IdleTimeout,
	}

	return startServer(ctx, server)
}

func startServer(ctx context.Context, server *http.Server) error {
	slog.Info("starting tasks server", slog.String("address", server.Addr))

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		if err != nil {
			return errors.Wrap(err, "server failed")
		}
		return nil
	case <-quit:
	case <-ctx.Done():
	}
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "server shutdown failed")
	}
	slog.Info("server stopped")
	return nil
}
