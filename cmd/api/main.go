// Package main is the entry point for the aggregator service.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/pulsefeed/aggregator/internal/app"
)

// version can be set at build time via -ldflags
var version = "dev"

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to YAML config file")
	flag.Parse()

	// Optional .env for local development; the real environment wins.
	_ = godotenv.Load()

	application, err := app.New(app.Options{
		ConfigPath: *configPath,
		Version:    version,
	})
	if err != nil {
		log.Fatalf("failed to initialize: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
