package main

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/Darkcoder011/TasteSphere/internal/extractor"
	"github.com/Darkcoder011/TasteSphere/internal/pipeline"
	"github.com/Darkcoder011/TasteSphere/internal/recommender"
	"github.com/Darkcoder011/TasteSphere/internal/server"
	"github.com/Darkcoder011/TasteSphere/internal/store"
	"github.com/Darkcoder011/TasteSphere/pkg/config"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err), zap.String("path", "config.yaml"))
	}

	// Initialize the entity extractor: language-analysis service when an
	// API key is configured, keyword heuristics otherwise
	var ext extractor.Extractor
	if cfg.OpenAI.APIKey != "" {
		ext = extractor.NewLLMExtractor(extractor.LLMConfig{
			APIKey:      cfg.OpenAI.APIKey,
			BaseURL:     cfg.OpenAI.BaseURL,
			Model:       cfg.OpenAI.Model,
			MaxTokens:   cfg.OpenAI.MaxTokens,
			Temperature: cfg.OpenAI.Temperature,
		}, logger)
	} else {
		logger.Info("No language-analysis API key configured, using keyword extractor")
		ext = extractor.NewKeywordExtractor()
	}

	// Initialize the taste-graph client
	fetcher := recommender.NewTasteClient(recommender.TasteConfig{
		BaseURL:    cfg.Taste.BaseURL,
		APIKey:     cfg.Taste.APIKey,
		Timeout:    cfg.Taste.Timeout,
		MaxRetries: cfg.Taste.MaxRetries,
	}, logger)

	// Initialize preferences storage
	prefs, err := store.NewPrefsStore(cfg.Prefs.Path)
	if err != nil {
		logger.Fatal("Failed to load preferences", zap.Error(err))
	}

	// Wire the orchestration pipeline
	p := pipeline.New(ext, fetcher, store.NewConversationStore(), cfg.Pipeline.FetchLimit, logger)

	// Start the HTTP API
	srv := server.New(p, prefs, logger)
	logger.Info("Starting server", zap.String("address", cfg.Server.Address))
	if err := http.ListenAndServe(cfg.Server.Address, srv.Router()); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
}
