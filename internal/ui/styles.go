package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"docseek/internal/index"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title     lipgloss.Style
	Prompt    lipgloss.Style
	Dim       lipgloss.Style
	Status    lipgloss.Style
	Filter    lipgloss.Style
	Section   lipgloss.Style
	Selected  lipgloss.Style
	Result    lipgloss.Style
	Excerpt   lipgloss.Style
	Highlight lipgloss.Style
	Recent    lipgloss.Style
	Help      lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Prompt:    lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
		Dim:       lipgloss.NewStyle().Faint(true),
		Status:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Filter:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Section:   lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		Selected:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		Result:    lipgloss.NewStyle(),
		Excerpt:   lipgloss.NewStyle().Faint(true),
		Highlight: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208")),
		Recent:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Help:      lipgloss.NewStyle().Faint(true),
	}
}

// RenderExcerpt styles the highlight markers embedded in an excerpt. Text
// between the open and close markers is emphasized; the markers themselves
// never reach the screen.
func (s *Styles) RenderExcerpt(excerpt string) string {
	var b strings.Builder
	rest := excerpt
	for {
		open := strings.Index(rest, index.HighlightOpen)
		if open < 0 {
			b.WriteString(s.Excerpt.Render(rest))
			break
		}
		end := strings.Index(rest[open:], index.HighlightClose)
		if end < 0 {
			b.WriteString(s.Excerpt.Render(strings.ReplaceAll(rest, index.HighlightOpen, "")))
			break
		}
		end += open

		b.WriteString(s.Excerpt.Render(rest[:open]))
		b.WriteString(s.Highlight.Render(rest[open+len(index.HighlightOpen) : end]))
		rest = rest[end+len(index.HighlightClose):]
	}
	return b.String()
}
