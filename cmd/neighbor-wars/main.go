package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/api"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/constants"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/logging"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/service"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/version"
)

func main() {
	cfg := loadConfigOrExit()
	logging.Init(cfg.LogLevel, cfg.LogPretty)
	gin.SetMode(gin.ReleaseMode)

	repo := createRepositoryOrExit(cfg.DatabasePath)
	channel, relay := roomTransport(cfg)

	svc := service.NewManager(service.Options{
		Repo:              repo,
		Channel:           channel,
		Rules:             cfg.Rules,
		AIDelay:           cfg.AIDelay,
		InactivityTimeout: cfg.InactivityTimeout,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Background scanner: sessions idle past the inactivity timeout are
	// closed and their matches marked abandoned.
	go svc.Run(ctx)

	router := api.NewRouter(api.NewMatchHandler(svc, repo), relay)
	srv := &http.Server{Addr: cfg.ServerAddress, Handler: router}

	go func() {
		logging.Info("Server started", logging.Fields{constants.LogFieldAddr: cfg.ServerAddress, "version": version.String()})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("Failed to start server", err, nil)
		}
	}()

	<-ctx.Done()
	logging.Info("Shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error("graceful shutdown failed", err, nil)
	}
	svc.Shutdown()
}
