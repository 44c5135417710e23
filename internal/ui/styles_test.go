package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"docseek/internal/index"
)

func TestRenderExcerptStripsMarkers(t *testing.T) {
	s := NewStyles()
	in := "configure the " + index.HighlightOpen + "deploy" + index.HighlightClose + " pipeline"

	out := s.RenderExcerpt(in)

	assert.NotContains(t, out, index.HighlightOpen)
	assert.NotContains(t, out, index.HighlightClose)
	assert.Contains(t, out, "deploy")
	assert.Contains(t, out, "configure the")
}

func TestRenderExcerptMultipleSpans(t *testing.T) {
	s := NewStyles()
	in := index.HighlightOpen + "agent" + index.HighlightClose + " runs the " +
		index.HighlightOpen + "agent" + index.HighlightClose + " loop"

	out := s.RenderExcerpt(in)

	assert.NotContains(t, out, index.HighlightOpen)
	assert.Equal(t, 2, strings.Count(out, "agent"))
}

func TestRenderExcerptUnbalancedOpen(t *testing.T) {
	s := NewStyles()
	in := "truncated " + index.HighlightOpen + "match"

	out := s.RenderExcerpt(in)

	assert.NotContains(t, out, index.HighlightOpen)
	assert.Contains(t, out, "match")
}
