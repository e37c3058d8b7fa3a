// Package catalog reconciles the upstream OPAC's inconsistently shaped JSON
// into one canonical record schema. Upstream fields arrive as a scalar, a
// sequence, a keyed object, or not at all; everything this package returns is
// schema-stable so consumers never need defensive checks.
package catalog

// Record is the canonical search-result entity. Every plural field is a
// non-nil slice no matter how the upstream encoded (or omitted) the value.
// The singular fields are projections of the first element, kept for older
// consumers; they are never an independent source of truth.
type Record struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Author       string   `json:"author,omitempty"`
	Authors      []string `json:"authors"`
	Year         string   `json:"year,omitempty"`
	Image        string   `json:"image,omitempty"`
	Images       []string `json:"images"`
	Format       string   `json:"format,omitempty"`
	Formats      []string `json:"formats"`
	Publishers   []string `json:"publishers"`
	Descriptions []string `json:"descriptions"`
	Languages    []string `json:"languages"`
	URL          string   `json:"url,omitempty"`
}

// Detail extends Record with the fields only present in single-record
// responses. Title is guaranteed non-empty.
type Detail struct {
	Record
	Availability         *Availability `json:"availability,omitempty"`
	Holdings             []Holding     `json:"holdings"`
	Summary              []string      `json:"summary"`
	Subjects             []string      `json:"subjects"`
	TableOfContents      []string      `json:"tableOfContents"`
	ISBNs                []string      `json:"isbn"`
	ISSNs                []string      `json:"issn"`
	PhysicalDescriptions []string      `json:"physicalDescriptions"`
	Series               []string      `json:"series"`
	Genres               []string      `json:"genres"`
}

// Availability aggregates holdings across locations. A nil *Availability
// means the upstream said nothing about holdings, which is distinct from a
// confirmed zero.
type Availability struct {
	Available int        `json:"available"`
	Total     int        `json:"total"`
	Locations []Location `json:"locations"`
}

// Location is per-branch availability. Status is free text derived from the
// payload, not a closed enum.
type Location struct {
	Location   string `json:"location"`
	Available  int    `json:"available"`
	CallNumber string `json:"callNumber,omitempty"`
	DueDate    string `json:"dueDate,omitempty"`
	Status     string `json:"status"`
}

// Holding is the flat, display-oriented holdings row.
type Holding struct {
	Location   string `json:"location"`
	CallNumber string `json:"callNumber,omitempty"`
	Status     string `json:"status"`
	DueDate    string `json:"dueDate,omitempty"`
}

// SearchPage is one page of normalized search results. Page-append ordering
// across fetches is the caller's concern.
type SearchPage struct {
	Records []Record `json:"records"`
	Total   int      `json:"total"`
}
