package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pders01/reel/internal/catalog"
	"github.com/pders01/reel/internal/config"
	"github.com/pders01/reel/internal/debuglog"
	"github.com/pders01/reel/internal/discover"
	"github.com/pders01/reel/internal/search"
	"github.com/pders01/reel/internal/storage"
	"github.com/pders01/reel/internal/trend"
	"github.com/pders01/reel/internal/validation"
)

// runtime is everything a command needs once configuration is resolved.
type runtime struct {
	cfg       *config.Config
	store     *storage.Store
	tracker   *trend.Tracker
	suggester search.Suggester
	manager   *discover.Manager
}

// loadConfig reads the configuration and applies command line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if dbPath != "" {
		abs, err := filepath.Abs(dbPath)
		if err != nil {
			return nil, fmt.Errorf("resolving --db: %w", err)
		}
		cfg.Database.Path = abs
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFile != "" {
		cfg.Log.File = logFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// pathHandler restricts default locations to reel's own directories. Paths
// passed on the command line are trusted as given.
func pathHandler() *validation.PathHandler {
	if dbPath != "" || logFile != "" {
		return validation.NewPermissivePathHandler()
	}
	return validation.NewSecurePathHandler()
}

// setupLogging sends logs to the log file for the TUI. One-shot commands log
// to logOut unless a file was asked for.
func setupLogging(cfg *config.Config, ph *validation.PathHandler, logOut io.Writer) error {
	level := debuglog.ParseLogLevel(cfg.Log.Level)
	if level == debuglog.LevelOff {
		debuglog.SetLevel(debuglog.LevelOff)
		return nil
	}

	if logOut != nil && cfg.Log.File == "" {
		debuglog.SetOutput(level, logOut)
		return nil
	}

	path, err := ph.LogPath(cfg.Log.File)
	if err != nil {
		return fmt.Errorf("log file: %w", err)
	}
	return debuglog.Setup(level, path)
}

// openRuntime validates endpoints and paths, then opens the store and
// wires the tracker, suggestion engine and fetch manager together.
func openRuntime(cfg *config.Config, ph *validation.PathHandler, ev *validation.EndpointValidator) (*runtime, error) {
	baseURL, err := ev.ValidateAndNormalize(cfg.Catalog.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("catalog base_url: %w", err)
	}
	cfg.Catalog.BaseURL = baseURL

	imageBase, err := validation.NewPermissiveEndpointValidator().ValidateAndNormalize(cfg.Catalog.ImageBaseURL)
	if err != nil {
		return nil, fmt.Errorf("catalog image_base_url: %w", err)
	}
	cfg.Catalog.ImageBaseURL = imageBase

	path, err := ph.DatabasePath(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("database path: %w", err)
	}
	cfg.Database.Path = path

	store, err := storage.NewStore(path, storage.WithTimeout(cfg.Database.Timeout))
	if err != nil {
		return nil, err
	}

	indexPath := ""
	if cfg.Database.SearchIndex != "" {
		indexPath, err = ph.IndexPath(cfg.Database.SearchIndex)
		if err != nil {
			debuglog.Warnf("suggestion index path rejected: %v", err)
			indexPath = ""
		}
	}

	tracker := trend.NewTracker(store, cfg)
	suggester := search.Open(store, indexPath)
	if l, ok := suggester.(search.UpdateListener); ok {
		tracker.AddListener(l)
	}

	debuglog.WithFields(debuglog.Fields{"db": path, "index": indexPath, "catalog": baseURL}).
		Infof("runtime ready")

	return &runtime{
		cfg:       cfg,
		store:     store,
		tracker:   tracker,
		suggester: suggester,
		manager:   discover.NewManager(catalog.NewClient(cfg), tracker, cfg),
	}, nil
}

func (rt *runtime) Close() {
	if c, ok := rt.suggester.(io.Closer); ok {
		if err := c.Close(); err != nil {
			debuglog.Warnf("closing suggestion index: %v", err)
		}
	}
	if err := rt.store.Close(); err != nil {
		debuglog.Warnf("closing store: %v", err)
	}
	_ = debuglog.Close()
}

func generateConfig(path string) (string, error) {
	ph := validation.NewSecurePathHandler()
	if path != "" {
		ph = validation.NewPermissivePathHandler()
	}

	target, err := ph.ConfigPath(path)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}
	if err := config.GenerateDefaultConfig(target); err != nil {
		return "", err
	}
	return target, nil
}
