package catalog

import "regexp"

var yearRun = regexp.MustCompile(`\d{4}`)

// Normalize maps one raw catalog entry, whatever its shape, into the
// canonical Record. It is total over any input: missing or oddly encoded
// fields reduce to their defaults instead of faulting. Per field the most
// specific upstream key wins; the trailing canonical key keeps normalization
// idempotent when fed its own output.
func Normalize(raw map[string]any) Record {
	if raw == nil {
		raw = map[string]any{}
	}

	rec := Record{
		ID:    stringifyVariant(firstPresent(raw["id"], raw["recordId"], raw["@id"])),
		Title: stringifyVariant(firstPresent(raw["title"], raw["titleFull"], raw["titleMain"])),
		Year:  yearToken(raw),
	}

	if pa, ok := raw["primaryAuthors"].([]any); ok && len(pa) > 0 {
		rec.Authors = stringList(pa, "name", "fullname")
	} else {
		rec.Authors = stringList(raw["authors"], "name", "fullname")
	}

	rec.Images = stringList(raw["images"], "url", "medium", "small")
	rec.Formats = stringList(raw["formats"], "translated", "value")
	rec.Publishers = stringList(raw["publishers"])
	rec.Descriptions = stringList(firstPresent(raw["summaries"], raw["description"], raw["descriptions"]))
	rec.Languages = stringList(raw["languages"])

	u := firstPresent(raw["url"], raw["recordPage"])
	if u == nil {
		if links, ok := raw["links"].(map[string]any); ok {
			u = links["recordPage"]
		}
	}
	rec.URL = stringifyVariant(u, "url")

	if len(rec.Authors) > 0 {
		rec.Author = rec.Authors[0]
	}
	if len(rec.Images) > 0 {
		rec.Image = rec.Images[0]
	}
	if len(rec.Formats) > 0 {
		rec.Format = rec.Formats[0]
	}
	return rec
}

// yearToken picks the first usable publication year token: the first 4-digit
// run found across the year-bearing keys, else the first non-empty token
// unchanged.
func yearToken(raw map[string]any) string {
	for _, key := range []string{"year", "publishDate", "publicationDates"} {
		for _, it := range toList(raw[key]) {
			s := stringifyVariant(it)
			if s == "" {
				continue
			}
			if run := yearRun.FindString(s); run != "" {
				return run
			}
			return s
		}
	}
	return ""
}
