package main

import (
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/config"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/constants"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/logging"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/remote"
	"github.com/CristianMiron0/GuerraEntreVecinos-sub000/internal/storage"
)

func loadConfigOrExit() *config.LoadedConfig {
	cfg, err := config.FromEnv()
	if err != nil {
		logging.Fatal("Missing or invalid configuration", err, nil)
	}
	return cfg
}

func createRepositoryOrExit(dbPath string) storage.Repository {
	db, err := storage.OpenAndMigrate(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, logging.Fields{"db_path": dbPath})
	}
	return storage.NewSQLiteRepository(db)
}

// roomTransport picks where networked rooms live: a relay on another host
// when one is configured, otherwise a hub this server also relays to peers.
func roomTransport(cfg *config.LoadedConfig) (remote.Channel, *remote.Relay) {
	if cfg.RelayURL != "" {
		logging.Info("using remote relay", logging.Fields{constants.LogFieldAddr: cfg.RelayURL})
		return remote.NewWSChannel(cfg.RelayURL), nil
	}
	hub := remote.NewHub()
	return hub, remote.NewRelay(hub)
}
