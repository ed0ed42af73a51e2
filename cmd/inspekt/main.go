// Package main is the inspekt CLI entry point.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hyperjump/inspekt/internal/analysis"
	"github.com/hyperjump/inspekt/internal/config"
	"github.com/hyperjump/inspekt/internal/export"
	"github.com/hyperjump/inspekt/internal/extract"
	"github.com/hyperjump/inspekt/internal/llm"
	"github.com/hyperjump/inspekt/internal/server"
	"github.com/hyperjump/inspekt/internal/upload"
	"github.com/hyperjump/inspekt/pkg/utils"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var version = "dev"

const (
	defaultConfigPath = "config.yaml"
	defaultEnvFile    = ".env"
	shutdownTimeout   = 10 * time.Second
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "version", "--version", "-v":
		fmt.Printf("inspekt version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path (optional)")
	envFile := fs.String("env-file", defaultEnvFile, "dotenv file with OPENAI_API_KEY (optional)")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	envLoaded, err := loadEnvFile(*envFile)
	if err != nil {
		fmt.Printf("Failed to load env file: %v\n", err)
		os.Exit(1)
	}
	cfg, found, err := config.LoadOrDefault(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode, zap.String("version", version))
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", *configPath),
		zap.Bool("config_found", found),
		zap.Bool("env_file_loaded", envLoaded),
		zap.Bool("debug", debugMode),
		zap.String("model", cfg.LLM.Model),
	)
	if cfg.LLM.APIKey == "" {
		logger.Warn("no API key configured; analysis requests will fail", zap.String("env", config.EnvAPIKey))
	}

	srv, err := buildServer(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize server", zap.Error(err))
	}
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		logger.Warn("shutdown incomplete", zap.Error(err))
	}
}

// loadEnvFile loads path into the process environment without overriding variables
// that are already set. A missing file is not an error.
func loadEnvFile(path string) (bool, error) {
	if path == "" {
		return false, nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// buildServer wires the collaborators described by cfg.
func buildServer(cfg *config.Config, logger *zap.Logger) (*server.Server, error) {
	store, err := upload.NewStore(cfg.Upload.Dir)
	if err != nil {
		return nil, err
	}
	completer := llm.NewOpenAIClient(llm.Options{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	})
	logger.Debug("completion client configured",
		zap.String("model", completer.Model()),
		zap.Bool("custom_base_url", cfg.LLM.BaseURL != ""),
	)
	analyzer, err := analysis.NewAnalyzer(completer, logger)
	if err != nil {
		return nil, err
	}
	exporter := export.NewExporter(export.WithTitle(cfg.Export.Title))
	return server.NewServer(analyzer, extract.NewExtractor(), store, exporter, cfg, logger), nil
}

func printUsage() {
	fmt.Println(`inspekt - Home inspection report analysis and export service

Usage:
  inspekt server [flags]   Start the HTTP server
  inspekt version          Show version
  inspekt help             Show this help

Server Flags:
  --config string     Config file path (default: config.yaml; defaults are used when absent)
  --env-file string   Dotenv file to load before reading config (default: .env)
  --debug             Enable debug logging

Environment:
  OPENAI_API_KEY      Completion service credential
  OPENAI_BASE_URL     Alternative OpenAI-compatible endpoint

Endpoints:
  POST /api/analyze   multipart form: file (pdf, docx or text), text
  POST /api/export    JSON {"data": ..., "type": "csv" | "pdf" | "xlsx"}
  GET  /health`)
}
