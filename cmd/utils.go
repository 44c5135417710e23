package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/urfave/cli/v3"

	"docseek/internal/client"
	"docseek/internal/config"
)

// loadConfig reads the config file named by the global --config flag
func loadConfig(c *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the application logger. Debug output goes to w so the
// TUI can redirect it away from the alternate screen.
func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// newClient builds a search client over the configured index
func newClient(cfg *config.Config, logger *slog.Logger) (*client.Client, error) {
	return client.New(client.SQLiteOpener(cfg.IndexPath),
		client.WithPageSize(cfg.PageSize),
		client.WithLogger(logger))
}
