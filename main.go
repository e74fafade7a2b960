package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/smartcs-core/server/internal/agent/graph"
	"github.com/smartcs-core/server/internal/agent/llm"
	"github.com/smartcs-core/server/internal/agent/model"
	"github.com/smartcs-core/server/internal/agent/repo"
	"github.com/smartcs-core/server/internal/agent/tools"
	"github.com/smartcs-core/server/internal/api"
	"github.com/smartcs-core/server/internal/core"
	logx "github.com/smartcs-core/server/pkg/logger"
	pkgredis "github.com/smartcs-core/server/pkg/redis"
)

// AppConfig defines all configurable parameters for the service, sourced from
// environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"APP_ENV" default:"development"`

	// Infrastructure
	Redis pkgredis.Config

	// LLM providers
	GeminiAPIKey  string `envconfig:"GEMINI_API_KEY"`
	GeminiBaseURL string `envconfig:"GEMINI_BASE_URL"`
	OpenAIAPIKey  string `envconfig:"OPENAI_API_KEY"`

	// Engine configs
	Session    model.SessionConfig
	Completion model.CompletionConfig
	Server     model.ServerConfig
}

func main() {
	ctx := context.Background()

	// Load .env file
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// Load structured config from env
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(cfg.Environment)})

	sessionTimeout, err := time.ParseDuration(cfg.Session.Timeout)
	if err != nil {
		logx.Fatal().Err(err).Str("value", cfg.Session.Timeout).Msg("invalid SESSION_TIMEOUT")
	}
	completionTimeout, err := time.ParseDuration(cfg.Completion.Timeout)
	if err != nil {
		logx.Fatal().Err(err).Str("value", cfg.Completion.Timeout).Msg("invalid COMPLETION_TIMEOUT")
	}

	// Session store: Redis when configured, in-memory otherwise.
	var store model.SessionStore
	if cfg.Redis.URL != "" {
		rdb, err := cfg.Redis.New()
		if err != nil {
			logx.Fatal().Err(err).Msg("failed to initialise Redis client")
		}
		defer rdb.Close()
		store = repo.NewRedisSessionStore(rdb, sessionTimeout)
		logx.Info().Msg("using Redis session store")
	} else {
		store = repo.NewMemorySessionStore()
		logx.Info().Msg("using in-memory session store")
	}

	completion, err := llm.New(ctx, llm.Config{
		Provider:      cfg.Completion.Provider,
		Model:         cfg.Completion.Model,
		MaxTokens:     cfg.Completion.MaxTokens,
		Temperature:   cfg.Completion.Temperature,
		Timeout:       completionTimeout,
		GeminiAPIKey:  cfg.GeminiAPIKey,
		GeminiBaseURL: cfg.GeminiBaseURL,
		OpenAIAPIKey:  cfg.OpenAIAPIKey,
	})
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to build completion service")
	}

	registry := tools.NewRegistry()

	engine, err := graph.New(graph.Config{
		Store:          store,
		Completion:     completion,
		Tools:          registry,
		SessionTimeout: sessionTimeout,
		MaxSteps:       cfg.Session.MaxSteps,
		RecursionLimit: cfg.Session.RecursionLimit,
	})
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to build dialogue engine")
	}

	srv := api.NewServer(engine, store, registry)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logx.Info().Str("addr", addr).Msg("starting customer service server")

	if err := srv.Routes().Run(addr); err != nil {
		logx.Fatal().Err(err).Msg("server exited")
	}
}
