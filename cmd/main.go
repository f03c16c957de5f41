// @title        Tenability API
// @version      1.0
// @description  Fractional effective dose along egress paths through B-RISK zone-model results.
// @BasePath     /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tenability/internal/config"
	"tenability/internal/handlers"
	"tenability/internal/logger"
	"tenability/internal/metrics"
	"tenability/internal/repository"
	"tenability/internal/repository/db"
	"tenability/internal/server"
	"tenability/internal/service"

	"github.com/spf13/pflag"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configFile := pflag.StringP("config", "c", "", "config file (default configs/config.yml)")
	pflag.String("port", "", "listen port, overrides config")
	pflag.Parse()

	// load config.yml, env and flags
	v := config.New()
	if err := config.BindFlags(v, pflag.CommandLine, map[string]string{"port": "port"}); err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error binding flags", "err", err)
	}
	if err := config.ReadFile(v, *configFile); err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	cfg, err := config.Load(v)
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("invalid config", "err", err)
	}

	// init logger
	log := logger.Get(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	if cfg.Auth.SigningKey == "" {
		cfg.Auth.SigningKey = randomKey()
		log.Warnw("auth.signing_key not set; using a random key, tokens will not survive a restart")
	}

	// open DB
	sqlDB, err := openDB(cfg.DBPath, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	m := metrics.NewMetrics()
	repos := repository.NewRepository(sqlDB)
	services := service.NewService(repos, service.Deps{Config: cfg, Log: log, Metrics: m})
	apiHandler := handlers.NewHandler(services, log,
		handlers.WithMetrics(m),
		handlers.WithReplayInterval(cfg.Replay),
	)

	// context for background work
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go preload(ctx, services, cfg.Imports, log)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

// openDB initializes the SQLite database at path.
func openDB(path string, log *logger.Logger) (*sql.DB, error) {
	if path == "" {
		log.Infow("db.path not set in config; using default file", "default", "app.db")
		path = "app.db"
	}
	return db.InitDB(path)
}

// preload imports the configured results locations. Failures are logged and skipped.
func preload(ctx context.Context, services *service.Service, paths []string, log *logger.Logger) {
	for _, p := range paths {
		if ctx.Err() != nil {
			return
		}
		sim, err := services.ImportSimulation(ctx, p)
		if err != nil {
			log.Errorw("preload_failed", "path", p, "err", err)
			continue
		}
		log.Infow("preloaded", "path", p, "id", sim.ID, "rooms", sim.Rooms)
	}
}

func randomKey() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		log.Infow("listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
