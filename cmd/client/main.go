package main

import (
	"context"
	"fmt"

	"github.com/forecastflow/forecastflow/internal/client"
	"github.com/forecastflow/forecastflow/internal/config"
	"github.com/forecastflow/forecastflow/internal/logger"
	"github.com/joho/godotenv"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	_ = godotenv.Load()

	log := logger.NewClientLogger("forecastflow-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	app, err := client.NewApp(context.Background(), cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
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
