package ui

import (
	"fmt"
	"strings"

	"docseek/internal/controller"
)

// View renders the search modal
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("docseek"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n\n")

	switch m.snap.Phase {
	case controller.PhaseIdle:
		b.WriteString(m.renderIdle())
	case controller.PhaseError:
		b.WriteString(m.styles.Status.Render("search failed, try again"))
		b.WriteString("\n")
	case controller.PhaseEmpty:
		b.WriteString(m.styles.Dim.Render(fmt.Sprintf("no matches for %q", m.snap.Query)))
		b.WriteString("\n")
	default:
		b.WriteString(m.renderResults())
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(m.help.View(m.keys)))
	return b.String()
}

func (m *Model) statusLine() string {
	parts := make([]string, 0, 3)

	if filter := m.currentFilter(); filter != "" {
		parts = append(parts, m.styles.Filter.Render("section: "+filter))
	}
	if m.snap.Degraded {
		parts = append(parts, m.styles.Status.Render("search unavailable"))
	}

	switch m.snap.Phase {
	case controller.PhaseTyping, controller.PhaseLoading:
		parts = append(parts, m.styles.Dim.Render("searching…"))
	case controller.PhaseResults:
		shown := len(m.snap.Results)
		if m.snap.TotalMatches > shown {
			parts = append(parts, m.styles.Status.Render(
				fmt.Sprintf("%d of %d matches", shown, m.snap.TotalMatches)))
		} else {
			parts = append(parts, m.styles.Status.Render(
				fmt.Sprintf("%d matches", m.snap.TotalMatches)))
		}
	}

	return strings.Join(parts, "  ")
}

func (m *Model) renderIdle() string {
	queries := m.recent.Queries()
	if len(queries) == 0 {
		return m.styles.Dim.Render("type to search") + "\n"
	}

	var b strings.Builder
	b.WriteString(m.styles.Dim.Render("recent searches"))
	b.WriteString("\n")
	for i, q := range queries {
		if i == m.nav.Index() {
			b.WriteString(m.styles.Selected.Render("> " + q))
		} else {
			b.WriteString(m.styles.Recent.Render("  " + q))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderResults() string {
	// Stale results stay on screen while the next search is in flight
	if len(m.snap.Results) == 0 {
		return ""
	}

	end := m.offset + m.listHeight
	if end > len(m.snap.Results) {
		end = len(m.snap.Results)
	}

	var b strings.Builder
	for i := m.offset; i < end; i++ {
		item := m.snap.Results[i]

		line := item.Title
		if item.Section != "" {
			line += "  " + m.styles.Section.Render("["+item.Section+"]")
		}
		if i == m.nav.Index() {
			b.WriteString(m.styles.Selected.Render("> ") + line)
		} else {
			b.WriteString("  " + m.styles.Result.Render(line))
		}
		b.WriteString("\n")

		if item.Excerpt != "" {
			b.WriteString("    " + m.styles.RenderExcerpt(item.Excerpt))
			b.WriteString("\n")
		}
	}
	return b.String()
}
