package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"docseek/internal/client"
	"docseek/internal/controller"
	"docseek/internal/eventbus"
	"docseek/internal/history"
	"docseek/internal/navigator"
	"docseek/internal/ui"
)

// TuiCommand creates the tui command
func TuiCommand() *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Open the interactive search modal",
		Action: func(ctx context.Context, c *cli.Command) error {
			return runTUI(ctx, c)
		},
	}
}

func runTUI(ctx context.Context, c *cli.Command) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	// The alternate screen owns the terminal, so debug logs go to a file
	logWriter := io.Writer(io.Discard)
	if c.Bool("debug") {
		logPath := filepath.Join(filepath.Dir(c.String("config")), "docseek.log")
		f, ferr := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if ferr == nil {
			defer func() {
				if err := f.Close(); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: closing log file: %v\n", err)
				}
			}()
			logWriter = f
		}
	}
	logger := newLogger(logWriter, c.Bool("debug"))

	reloader, err := client.NewReloader(func() (*client.Client, error) {
		return newClient(cfg, logger)
	})
	if err != nil {
		return fmt.Errorf("creating search client: %w", err)
	}
	defer reloader.Close()

	bus := eventbus.New()
	defer bus.Close()
	logEvents(bus, logger)

	recent := history.NewStore(history.NewFileBackend(cfg.HistoryPath), cfg.HistorySize)

	ctrl := controller.New(reloader, recent,
		controller.WithDebounce(cfg.Debounce.Duration),
		controller.WithTimeout(cfg.Timeout.Duration),
		controller.WithEventBus(bus),
		controller.WithLogger(logger))
	defer ctrl.Close()

	catalog := reloader.ListFilterValues(ctx)

	model := ui.NewModel(ctrl, navigator.New(), recent, catalog)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.SetProgram(program)

	if cfg.UISettings.WatchIndex {
		watcher, werr := ui.NewWatcher(cfg.IndexPath, reloader, logger)
		if werr != nil {
			logger.Debug("index watch unavailable", "error", werr)
		} else {
			watcher.Start(program)
			defer watcher.Stop()
		}
	}

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}

	if url := model.NavigatedURL(); url != "" {
		fmt.Println(url)
	}
	return nil
}

// logEvents mirrors domain events into the debug log
func logEvents(bus eventbus.EventBus, logger *slog.Logger) {
	for _, et := range []eventbus.EventType{
		eventbus.EventSearchStarted,
		eventbus.EventSearchCompleted,
		eventbus.EventSearchFailed,
		eventbus.EventSearchCleared,
		eventbus.EventFilterChanged,
		eventbus.EventQueryCommitted,
		eventbus.EventServiceDegraded,
	} {
		bus.Subscribe(et, func(event eventbus.DomainEvent) {
			logger.Debug("event", "type", event.Type())
		})
	}
}
