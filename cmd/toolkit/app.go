package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/content-toolkit/internal/config"
	"github.com/jonathan/content-toolkit/internal/logging"
	"github.com/jonathan/content-toolkit/internal/observability"
	"github.com/jonathan/content-toolkit/internal/storage"
	"github.com/jonathan/content-toolkit/internal/toolkit"
)

// app is everything a command needs: resolved config, logger, the opened
// store and the loaded toolkit.
type app struct {
	cfg    config.Config
	logger *zap.Logger
	store  *storage.Store
	tk     *toolkit.Toolkit
	out    *observability.Printer
}

// resolveConfig layers flags over environment over config file over
// built-in defaults.
func resolveConfig() (config.Config, error) {
	var file config.Config
	if flagConfigPath != "" {
		loaded, err := config.LoadConfig(flagConfigPath)
		if err != nil {
			return config.Config{}, err
		}
		file = *loaded
	}
	env := config.FromEnv()
	flags := config.Config{
		DataDir:   flagDataDir,
		Backend:   flagBackend,
		Namespace: flagNamespace,
		LogLevel:  flagLogLevel,
	}

	cfg := file.MergeWithDefaults(config.Defaults())
	cfg = env.MergeWithDefaults(cfg)
	cfg = flags.MergeWithDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func openApp(cmd *cobra.Command) (*app, error) {
	cfg, err := resolveConfig()
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		return nil, err
	}

	backend, err := storage.Open(cfg.Backend, cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Backend, err)
	}
	logger.Debug("storage opened",
		zap.String("backend", cfg.Backend),
		zap.String("data_dir", cfg.DataDir),
		zap.String("namespace", cfg.Namespace),
	)

	store := storage.NewStore(backend, storage.WithNamespace(cfg.Namespace), storage.WithLogger(logger))
	return &app{
		cfg:    cfg,
		logger: logger,
		store:  store,
		tk:     toolkit.Open(store, toolkit.WithLogger(logger)),
		out:    observability.NewPrinter(cmd.OutOrStdout()),
	}, nil
}

func (a *app) Close() error {
	_ = a.logger.Sync()
	return a.store.Close()
}

// withApp opens the app for the duration of fn.
func withApp(cmd *cobra.Command, fn func(a *app) error) (err error) {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close storage: %w", cerr)
		}
	}()
	return fn(a)
}

// unsaved turns a storage write failure into a printed warning: the change
// took effect for this invocation but will not survive it.
func (a *app) unsaved(err error) error {
	if err != nil && storage.IsWriteError(err) {
		a.out.PrintWarning("change applied but not saved: " + err.Error())
		return nil
	}
	return err
}
