package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"docseek/internal/controller"
	"docseek/internal/domain"
	"docseek/internal/history"
	"docseek/internal/navigator"
)

// Model represents the search modal state
type Model struct {
	ctrl    *controller.Controller
	nav     *navigator.Navigator
	recent  *history.Store
	catalog domain.FilterCatalog

	styles *Styles
	keys   keyMap
	help   help.Model
	input  textinput.Model

	snap       controller.Snapshot
	width      int
	height     int
	listHeight int
	offset     int // first visible row of the active list
	filterIdx  int // -1 = no filter, otherwise index into catalog.Sections

	closeRequested bool
	navigatedURL   string

	// Program reference so controller goroutines can push refreshes
	program *tea.Program
}

// NewModel creates the search modal over an already-wired controller
func NewModel(ctrl *controller.Controller, nav *navigator.Navigator, recent *history.Store, catalog domain.FilterCatalog) *Model {
	ti := textinput.New()
	ti.Placeholder = "Search documentation"
	ti.Prompt = "> "
	ti.CharLimit = 128
	ti.Focus()

	m := &Model{
		ctrl:       ctrl,
		nav:        nav,
		recent:     recent,
		catalog:    catalog,
		styles:     NewStyles(),
		keys:       defaultKeyMap(),
		help:       help.New(),
		input:      ti,
		filterIdx:  -1,
		listHeight: 10,
	}
	m.snap = ctrl.Snapshot()

	nav.SetSelectFunc(m.selectIndex)
	nav.SetEscapeFunc(m.handleEscape)
	nav.SetRevealFunc(m.scrollIntoView)

	ctrl.SetNavigateFunc(func(url string) {
		m.navigatedURL = url
	})
	ctrl.SetFocusFunc(func() {
		m.input.SetValue("")
		m.input.Focus()
	})

	return m
}

// SetProgram sets the program reference used to forward controller
// notifications into the update loop
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.ctrl.SetNotifyFunc(func() {
		if m.program != nil {
			m.program.Send(stateChangedMsg{})
		}
	})
}

// NavigatedURL returns the destination committed by the user, empty if the
// modal was dismissed without selecting
func (m *Model) NavigatedURL() string {
	return m.navigatedURL
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.listHeight = msg.Height - chromeRows
		if m.listHeight < 1 {
			m.listHeight = 1
		}

	case stateChangedMsg:
		m.refresh()

	case indexReloadedMsg:
		// The rebuilt index may not have the old sections; the controller
		// filter must match what the status line shows
		m.catalog = msg.catalog
		m.filterIdx = -1
		m.ctrl.SetFilter("")
		m.refresh()

	case watchErrMsg:
		// Hot-reload lost, everything else keeps working

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Escape):
		m.nav.Escape()
		if m.closeRequested {
			return m, tea.Quit
		}
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.nav.MovePrevious()
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.nav.MoveNext()
		return m, nil

	case key.Matches(msg, m.keys.Filter):
		m.cycleFilter()
		return m, nil

	case key.Matches(msg, m.keys.Select):
		m.nav.SelectCurrent()
		if m.navigatedURL != "" {
			return m, tea.Quit
		}
		return m, nil
	}

	// Everything else edits the query
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.ctrl.SetQuery(m.input.Value())
		m.refresh()
	}
	return m, cmd
}

// refresh re-snapshots the controller and re-anchors the navigator over
// the currently navigable list
func (m *Model) refresh() {
	m.snap = m.ctrl.Snapshot()
	m.nav.SetItemCount(len(m.activeList()))
	if m.nav.Index() == navigator.NoSelection {
		m.offset = 0
	}
}

// activeList returns what up/down currently navigates: search results when
// present, recent queries on the idle screen
func (m *Model) activeList() []listRow {
	if len(m.snap.Results) > 0 {
		rows := make([]listRow, len(m.snap.Results))
		for i, item := range m.snap.Results {
			rows[i] = listRow{result: &m.snap.Results[i], title: item.Title}
		}
		return rows
	}
	if m.snap.Phase == controller.PhaseIdle {
		queries := m.recent.Queries()
		rows := make([]listRow, len(queries))
		for i, q := range queries {
			rows[i] = listRow{recentQuery: q, title: q}
		}
		return rows
	}
	return nil
}

// listRow is one navigable line: either a search result or a recent query
type listRow struct {
	result      *domain.ResultItem
	recentQuery string
	title       string
}

func (m *Model) selectIndex(index int) {
	rows := m.activeList()
	if index >= len(rows) {
		return
	}
	row := rows[index]

	if row.result != nil {
		m.ctrl.CommitSelection(*row.result)
		return
	}
	// Re-running a recent query: put it in the input and search
	m.input.SetValue(row.recentQuery)
	m.input.CursorEnd()
	m.ctrl.SetQuery(row.recentQuery)
	m.refresh()
}

// handleEscape clears an active query first; a second escape closes
func (m *Model) handleEscape() {
	if m.input.Value() != "" {
		m.ctrl.Clear()
		m.nav.Reset()
		return
	}
	m.closeRequested = true
}

func (m *Model) cycleFilter() {
	if len(m.catalog.Sections) == 0 {
		return
	}
	m.filterIdx++
	if m.filterIdx >= len(m.catalog.Sections) {
		m.filterIdx = -1
	}
	m.ctrl.SetFilter(m.currentFilter())
	m.refresh()
}

func (m *Model) currentFilter() string {
	if m.filterIdx < 0 || m.filterIdx >= len(m.catalog.Sections) {
		return ""
	}
	return m.catalog.Sections[m.filterIdx].Value
}

// scrollIntoView keeps the highlighted row inside the visible window. It
// runs after the navigator committed the new index.
func (m *Model) scrollIntoView(index int) {
	if index < m.offset {
		m.offset = index
	} else if index >= m.offset+m.listHeight {
		m.offset = index - m.listHeight + 1
	}
}

// chromeRows is the vertical space taken by the title, input, status and
// help lines around the list
const chromeRows = 7
