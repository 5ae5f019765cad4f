package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"engineer-grok/internal/config"
	apihttp "engineer-grok/internal/http"
	"engineer-grok/internal/llm"
	"engineer-grok/internal/service"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Sin credencial el servidor arranca igual y cada request responde 500.
	var llmClient llm.LLMClient
	client, err := llm.New(ctx, llm.Options{
		Provider: cfg.LLMProvider,
		APIKey:   cfg.APIKey(),
		BaseURL:  cfg.LLMBaseURL,
		Model:    cfg.LLMModel,
	}, logger)
	switch {
	case errors.Is(err, llm.ErrMissingAPIKey):
		logger.Warn("llm api key not configured", zap.String("provider", cfg.LLMProvider))
	case err != nil:
		logger.Fatal("llm client init", zap.Error(err))
	default:
		llmClient = client
	}

	chatSvc := service.NewChatService(llmClient, cfg.LLMTimeout, logger)
	chatHandler := apihttp.NewChatHandler(logger, chatSvc)
	router := apihttp.NewRouter(logger, chatHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server",
		zap.String("port", cfg.HTTPPort),
		zap.String("provider", cfg.LLMProvider),
		zap.String("model", cfg.LLMModel),
	)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
