package ui

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"docseek/internal/client"
)

// Watcher reloads the search client when the index file is rebuilt on
// disk and tells the running program about the new filter catalog.
type Watcher struct {
	watcher  *fsnotify.Watcher
	reloader *client.Reloader
	path     string
	logger   *slog.Logger
	done     chan struct{}
}

// NewWatcher watches the index file's directory. Watching the directory
// rather than the file survives the rename-over-replace most builders do.
func NewWatcher(indexPath string, reloader *client.Reloader, logger *slog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(indexPath)); err != nil {
		fw.Close()
		return nil, err
	}
	return &Watcher{
		watcher:  fw,
		reloader: reloader,
		path:     filepath.Clean(indexPath),
		logger:   logger,
		done:     make(chan struct{}),
	}, nil
}

// Start begins forwarding reload notifications to the program. Events are
// debounced so a rebuild's burst of writes triggers one reload.
func (w *Watcher) Start(p *tea.Program) {
	go w.loop(p)
}

func (w *Watcher) loop(p *tea.Program) {
	var timer *time.Timer
	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(300*time.Millisecond, func() {
				w.reload(p)
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Debug("index watch error", "error", err)
			p.Send(watchErrMsg{err: err})
		}
	}
}

func (w *Watcher) reload(p *tea.Program) {
	if err := w.reloader.Reload(); err != nil {
		w.logger.Debug("index reload failed", "error", err)
		p.Send(watchErrMsg{err: err})
		return
	}
	w.logger.Debug("index reloaded", "path", w.path)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	p.Send(indexReloadedMsg{catalog: w.reloader.ListFilterValues(ctx)})
}

// Stop ends the watch loop
func (w *Watcher) Stop() {
	close(w.done)
	w.watcher.Close()
}
