package index

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	frontMatterRe = regexp.MustCompile(`(?s)\A---\n.*?\n---\n`)
	codeFenceRe   = regexp.MustCompile("(?s)```.*?```")
	htmlTagRe     = regexp.MustCompile(`<[^>]+>`)
	linkRe        = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	mdSyntaxRe    = regexp.MustCompile("[#*_`>|]")
	spaceRe       = regexp.MustCompile(`\s+`)
)

// stripMarkup flattens markdown/HTML page content into plain indexable
// text: front matter and code fences are dropped, links keep their label,
// inline markup characters are removed.
func stripMarkup(content string) string {
	content = frontMatterRe.ReplaceAllString(content, "")
	content = codeFenceRe.ReplaceAllString(content, " ")
	content = htmlTagRe.ReplaceAllString(content, " ")
	content = linkRe.ReplaceAllString(content, "$1")
	content = mdSyntaxRe.ReplaceAllString(content, "")
	return strings.TrimSpace(spaceRe.ReplaceAllString(content, " "))
}

// foldTransformer decomposes to NFD, drops combining marks, and recomposes,
// so "résumé" is indexed (and found) as "resume"
var foldTransformer = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// NormalizeText applies unicode normalization and diacritic folding to
// indexable text. Errors fall back to the input unchanged.
func NormalizeText(text string) string {
	folded, _, err := transform.String(foldTransformer, text)
	if err != nil {
		return text
	}
	return folded
}
