package catalog

import "errors"

// ErrInvalidResponseShape reports a single-record payload that is neither a
// results envelope with records nor an identifiable bare record.
var ErrInvalidResponseShape = errors.New("invalid response shape")

const titlePlaceholder = "Untitled"

// ResolveEnvelope picks the record out of a single-record fetch payload. The
// upstream returns either {"records": [...]} or the bare record object; a
// payload matching neither fails before normalization ever sees it.
func ResolveEnvelope(raw map[string]any) (map[string]any, error) {
	if raw == nil {
		return nil, ErrInvalidResponseShape
	}
	if records, ok := raw["records"].([]any); ok && len(records) > 0 {
		rec, ok := records[0].(map[string]any)
		if !ok {
			return nil, ErrInvalidResponseShape
		}
		return rec, nil
	}
	if present(firstPresent(raw["id"], raw["recordId"], raw["@id"])) {
		return raw, nil
	}
	return nil, ErrInvalidResponseShape
}

// Extend widens an already-normalized record with the detail-only fields of
// a single-record response. A Detail never surfaces with a blank title: if
// normalization came up empty the title is re-derived from the raw payload
// and finally substituted with a placeholder.
func Extend(raw map[string]any, rec Record) Detail {
	if raw == nil {
		raw = map[string]any{}
	}
	d := Detail{Record: rec}

	if d.Title == "" {
		d.Title = stringifyVariant(firstPresent(raw["title"], raw["titleFull"], raw["titleMain"]))
	}
	if d.Title == "" {
		d.Title = titlePlaceholder
	}

	d.Summary = stringList(firstPresent(raw["summary"], raw["summaries"]))
	if len(d.Summary) == 0 {
		d.Summary = d.Descriptions
	}
	d.Subjects = stringList(firstPresent(raw["subjects"], raw["subject"]))
	d.TableOfContents = stringList(firstPresent(raw["tableOfContents"], raw["contents"]))
	d.ISBNs = stringList(firstPresent(raw["isbn"], raw["isbns"]))
	d.ISSNs = stringList(firstPresent(raw["issn"], raw["issns"]))
	d.PhysicalDescriptions = stringList(firstPresent(raw["physicalDescriptions"], raw["physicalDescription"]))
	d.Series = stringList(firstPresent(raw["series"], raw["seriesNames"]), "name")
	d.Genres = stringList(firstPresent(raw["genres"], raw["genre"]))

	d.Availability = ExtractAvailability(raw)
	d.Holdings = ExtractHoldings(raw)
	return d
}
