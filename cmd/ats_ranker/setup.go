package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/ats-ranker/internal/coach"
	"github.com/jonathan/ats-ranker/internal/config"
	"github.com/jonathan/ats-ranker/internal/extract"
	"github.com/jonathan/ats-ranker/internal/fetch"
	"github.com/jonathan/ats-ranker/internal/llm"
	"github.com/jonathan/ats-ranker/internal/observability"
)

// loadConfig reads the --config file (if any) and the environment.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if debugLogs {
		cfg.LogDebug = true
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	logger, err := observability.NewLogger(cfg.LogDebug)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}

// newCoachService wires the language model when an API key is configured.
// The returned close function is always safe to call.
func newCoachService(ctx context.Context, cfg *config.Config, logger *zap.Logger, offline bool) (*coach.Service, func(), error) {
	noop := func() {}
	if offline || !cfg.LLMEnabled() {
		logger.Debug("coaching uses the template fallback")
		return coach.NewService(nil, cfg.LLM.Timeout, logger), noop, nil
	}

	llmConfig := llm.DefaultConfig()
	llmConfig.Temperature = cfg.LLM.Temperature
	llmConfig.Timeout = cfg.LLM.Timeout
	reportSchema := llm.CoachingReportSchema()
	llmConfig.OutputSchema = &reportSchema
	if cfg.LLM.Model != "" {
		llmConfig = llmConfig.WithModel(llm.TierStandard, cfg.LLM.Model)
	}

	client, err := llm.NewClient(ctx, llmConfig, cfg.LLM.APIKey)
	if err != nil {
		return nil, noop, fmt.Errorf("failed to create LLM client: %w", err)
	}
	logger.Info("coaching model enabled", zap.String("model", llmConfig.GetModel(llm.TierStandard)))

	closeFn := func() {
		if err := client.Close(); err != nil {
			logger.Warn("failed to close LLM client", zap.Error(err))
		}
	}
	return coach.NewService(coach.NewLLMCoach(client), cfg.LLM.Timeout, logger), closeFn, nil
}

// readDocument returns the text of a file, of stdin when path is "-", or of
// a job posting when path is an http(s) URL.
func readDocument(ctx context.Context, path string) (string, error) {
	if path == "-" {
		return extract.Reader(os.Stdin, ".txt")
	}

	var text string
	var err error
	if fetch.IsURL(path) {
		opts := fetch.DefaultOptions()
		opts.Browser = renderPages
		text, err = fetch.New(opts, nil).JobText(ctx, path)
	} else {
		text, err = extract.File(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read document %s: %w", path, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("document %s has no text", path)
	}
	return text, nil
}

// documentID names a candidate after its file name without extension, or
// the last path segment of a URL.
func documentID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
