// Command waitlist serves the waitlist signup API.
//
//	POST /api/waitlist   store a signup
//	GET  /status         health
//	GET  /docs           API docs
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Abhinav-2002/Salaried/internal/config"
	"github.com/Abhinav-2002/Salaried/internal/handler"
	"github.com/Abhinav-2002/Salaried/internal/logger"
	"github.com/Abhinav-2002/Salaried/internal/repository"
	"github.com/Abhinav-2002/Salaried/internal/router"
	"github.com/Abhinav-2002/Salaried/internal/server"
	"github.com/Abhinav-2002/Salaried/internal/service"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	defer loggerService.Shutdown()

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	repos, err := repository.NewRepositories(srv)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize repositories")
	}

	services, err := service.NewService(srv, repos)
	if err != nil {
		log.Fatal().Err(err).Msg("could not create services")
	}

	// A missing key is not fatal: every signup answers 500 until it is set.
	if err := services.Waitlist.Check(); err != nil {
		log.Warn().Str("backend", cfg.Store.Backend).Msg("store is not configured, signups will fail")
	}

	handlers := handler.NewHandlers(srv, services)
	r := router.NewRouter(srv, handlers, services)

	srv.SetupHTTPServer(r)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		loggerService.Shutdown()
		os.Exit(1)
	}

	log.Info().Msg("server exited properly")
}
