package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/wordspark/wordspark/internal/chat"
	"github.com/wordspark/wordspark/internal/config"
	"github.com/wordspark/wordspark/internal/llm"
	"github.com/wordspark/wordspark/internal/server"
	"github.com/wordspark/wordspark/internal/vocab"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the WordSpark HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func runServe(cmd *cobra.Command) error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath, err = resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
	}

	store, err := vocab.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open vocabulary database: %w", err)
	}
	defer store.Close()

	if err := store.Ping(ctx); err != nil {
		return fmt.Errorf("database health check: %w", err)
	}

	// First run: seed the curated word list.
	count, err := store.Count(ctx)
	if err != nil {
		return fmt.Errorf("count vocabulary: %w", err)
	}
	if count == 0 {
		seeded, err := store.Seed(ctx)
		if err != nil {
			return fmt.Errorf("seed vocabulary: %w", err)
		}
		logger.Info("vocabulary seeded", "entries", seeded)
	}

	entries, err := store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load vocabulary: %w", err)
	}
	bank := vocab.NewBank(entries)
	logger.Info("vocabulary loaded", "entries", bank.Size(), "db", dbPath)

	llmCfg, err := loadLLMConfig()
	if err != nil {
		return err
	}
	provider, err := llm.NewProvider(ctx, llmCfg, logger)
	if err != nil {
		return fmt.Errorf("create LLM provider: %w", err)
	}
	logger.Info("LLM provider ready", "model", provider.ModelID())

	engine := chat.New(provider, bank, chat.DefaultConfig(), logger)
	handler := server.NewHandler(engine, store, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      server.NewRouter(handler, logger),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", cfg.Port, "dev", cfg.IsDevelopment())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// loadLLMConfig reads WORDSPARK_* provider settings, falling back to
// probing the providers' standard API key variables.
func loadLLMConfig() (llm.Config, error) {
	cfg := llm.ConfigFromEnv()
	if err := cfg.Validate(); err == nil {
		return cfg, nil
	}
	if discovered, ok := llm.DiscoverConfig(); ok {
		return discovered, nil
	}
	return llm.Config{}, fmt.Errorf("no LLM provider configured: set WORDSPARK_ANTHROPIC_API_KEY (or ANTHROPIC_API_KEY, OPENAI_API_KEY, GEMINI_API_KEY)")
}
