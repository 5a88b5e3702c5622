package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blogapp/internal/config"
	"blogapp/internal/handlers"
	"blogapp/internal/logger"
	"blogapp/internal/repository"
	"blogapp/internal/repository/db"
	"blogapp/internal/server"
	"blogapp/internal/service"
	"blogapp/internal/session"

	"github.com/spf13/pflag"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// flags -> config.yml -> env
	fs := config.Flags(os.Args[0])
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		logger.New(logger.InfoLevel, logger.FormatConsole).Fatalw("bad flags", "err", err)
	}
	cfg, err := config.Load(fs)
	if err != nil {
		logger.New(logger.InfoLevel, logger.FormatConsole).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = log.Sync() }()
	log.Infow("config_loaded", "config", cfg.String())

	// open DB
	conn, dialect, err := db.InitDB(db.Options{Driver: cfg.DB.Driver, Path: cfg.DB.Path, DSN: cfg.DB.DSN})
	if err != nil {
		log.Fatalw("failed to init database", "driver", cfg.DB.Driver, "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close database", "err", cerr)
		}
	}()

	// wire dependencies
	sessions, err := session.NewCodec(session.Options{
		Secret:     cfg.Session.Secret,
		TTL:        cfg.Session.TTL,
		CookieName: cfg.Session.CookieName,
		Secure:     cfg.Session.Secure,
	})
	if err != nil {
		log.Fatalw("failed to init sessions", "err", err)
	}
	repos := repository.NewRepository(conn, dialect)
	services := service.NewService(repos, service.Options{
		BcryptCost: cfg.Auth.BcryptCost,
		PageLimit:  cfg.Posts.PageLimit,
	})
	apiHandler := handlers.NewHandler(services, sessions, log, cfg.Feed.Interval)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, log)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		log.Infow("http_listen", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
