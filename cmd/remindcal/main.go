package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/hqvu/remindcal/internal/ai"
	"github.com/hqvu/remindcal/internal/app"
	"github.com/hqvu/remindcal/internal/credential"
	"github.com/hqvu/remindcal/internal/logging"
	"github.com/hqvu/remindcal/internal/model"
	"github.com/hqvu/remindcal/internal/session"
	"github.com/hqvu/remindcal/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "remindcal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := model.LoadConfig(model.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logFile := cfg.LogFile
	if logFile == "" {
		logFile = filepath.Join(model.DefaultDataDir(), "remindcal.log")
	}
	logger, err := logging.New(logFile, os.Getenv("REMINDCAL_DEBUG") != "")
	if err != nil {
		return err
	}
	defer logger.Sync()

	kv, err := openKV(cfg.Storage)
	if err != nil {
		return err
	}
	defer kv.Close()

	entries := store.NewReminders(kv)
	if err := entries.Load(); err != nil {
		return err
	}

	gate := session.NewGate(kv, entries, logger)
	if err := gate.Load(); err != nil {
		return err
	}

	assistant := loadAssistant(cfg.AI, logger)

	p := tea.NewProgram(
		app.New(*cfg, gate, entries, assistant, logger),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// openKV opens the configured storage backend, defaulting paths into the
// user data directory.
func openKV(cfg model.StorageConfig) (store.KV, error) {
	switch cfg.Backend {
	case model.StorageDiskv:
		path := cfg.Path
		if path == "" {
			path = filepath.Join(model.DefaultDataDir(), "data")
		}
		return store.NewDiskvKV(path)
	default:
		path := cfg.Path
		if path == "" {
			if err := os.MkdirAll(model.DefaultDataDir(), 0o755); err != nil {
				return nil, fmt.Errorf("creating data directory: %w", err)
			}
			path = filepath.Join(model.DefaultDataDir(), "remindcal.db")
		}
		return store.NewSQLiteKV(path)
	}
}

// loadAssistant creates the AI assistant when an API key is available. The
// key comes from the provider's environment variable or, failing that, the
// system keyring. A missing key is not an error; the app runs without AI.
func loadAssistant(cfg model.AIConfig, logger *zap.Logger) *ai.Assistant {
	envVar := "ANTHROPIC_API_KEY"
	if cfg.Provider == model.ProviderDeepSeek {
		envVar = "DEEPSEEK_API_KEY"
	}

	apiKey := os.Getenv(envVar)
	if apiKey == "" {
		var err error
		apiKey, err = credential.Get(credential.APIKeyName)
		if err != nil || apiKey == "" {
			logger.Info("no AI API key configured, assistant disabled")
			return nil
		}
	}

	provider, err := ai.NewProvider(cfg, apiKey)
	if err != nil {
		logger.Warn("creating AI provider failed, assistant disabled", zap.Error(err))
		return nil
	}
	return ai.NewAssistant(provider, logger)
}
