package main

import (
	"context"
	"fmt"

	"github.com/forecastflow/forecastflow/internal/config"
	"github.com/forecastflow/forecastflow/internal/handler"
	"github.com/forecastflow/forecastflow/internal/logger"
	"github.com/forecastflow/forecastflow/internal/server"
	"github.com/forecastflow/forecastflow/internal/service"
	"github.com/forecastflow/forecastflow/internal/store"
	"github.com/joho/godotenv"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	// .env is optional, real deployments configure through the environment.
	_ = godotenv.Load()

	log := logger.NewLogger("forecastflow-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	services := service.NewServices(storages, *cfg, log)

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
