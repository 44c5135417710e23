package ui

import "docseek/internal/domain"

// stateChangedMsg signals that the controller state changed and the view
// should re-snapshot
type stateChangedMsg struct{}

// indexReloadedMsg is sent after the index file changed on disk and the
// service client was re-created
type indexReloadedMsg struct {
	catalog domain.FilterCatalog
}

// watchErrMsg is sent when the index watcher stops working; the UI keeps
// running without hot-reload
type watchErrMsg struct {
	err error
}
