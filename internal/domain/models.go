package domain

// ResultItem represents a single resolved search hit
type ResultItem struct {
	ID      string
	URL     string
	Title   string
	Excerpt string // may embed highlight markers around matched terms
	Section string
}

// ResultSet is an ordered page of results plus the total match count.
// Order follows relevance order as returned by the search engine; Items
// is truncated to the page size while TotalMatches counts every hit.
type ResultSet struct {
	Items        []ResultItem
	TotalMatches int
}

// Facet represents a section facet value with its document count
type Facet struct {
	Value string
	Count int
}

// FilterCatalog is the set of section facet values discovered from the
// index at initialization time. Read-only after load.
type FilterCatalog struct {
	Sections []Facet
}

// Has reports whether the catalog contains the given section value.
func (c FilterCatalog) Has(value string) bool {
	for _, f := range c.Sections {
		if f.Value == value {
			return true
		}
	}
	return false
}

// IndexInfo describes a built index
type IndexInfo struct {
	BuildID   string
	BuiltAt   string
	PageCount int
}
