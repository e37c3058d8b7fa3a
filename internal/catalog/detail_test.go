package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEnvelope(t *testing.T) {
	t.Run("envelope with records takes first", func(t *testing.T) {
		raw := map[string]any{
			"resultCount": float64(2),
			"records": []any{
				map[string]any{"id": "first"},
				map[string]any{"id": "second"},
			},
		}
		rec, err := ResolveEnvelope(raw)
		require.NoError(t, err)
		assert.Equal(t, "first", rec["id"])
	})

	t.Run("empty records without identifier fails", func(t *testing.T) {
		_, err := ResolveEnvelope(map[string]any{"records": []any{}})
		assert.ErrorIs(t, err, ErrInvalidResponseShape)
	})

	t.Run("bare record resolves as itself", func(t *testing.T) {
		raw := map[string]any{"id": "x123"}
		rec, err := ResolveEnvelope(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, rec)
	})

	t.Run("recordId and @id also identify a bare record", func(t *testing.T) {
		for _, key := range []string{"recordId", "@id"} {
			rec, err := ResolveEnvelope(map[string]any{key: "x"})
			require.NoError(t, err, key)
			assert.Equal(t, "x", rec[key])
		}
	})

	t.Run("identifier-less object fails", func(t *testing.T) {
		_, err := ResolveEnvelope(map[string]any{"title": "no id here"})
		assert.ErrorIs(t, err, ErrInvalidResponseShape)
	})

	t.Run("non-object record entry fails", func(t *testing.T) {
		_, err := ResolveEnvelope(map[string]any{"records": []any{"not an object"}})
		assert.ErrorIs(t, err, ErrInvalidResponseShape)
	})

	t.Run("nil payload fails", func(t *testing.T) {
		_, err := ResolveEnvelope(nil)
		assert.ErrorIs(t, err, ErrInvalidResponseShape)
	})
}

func TestExtend_TitleNeverBlank(t *testing.T) {
	t.Run("placeholder when no title-bearing key exists", func(t *testing.T) {
		raw := map[string]any{"id": "x"}
		d := Extend(raw, Normalize(raw))
		assert.Equal(t, "Untitled", d.Title)
	})

	t.Run("re-derived from raw when the record came up empty", func(t *testing.T) {
		// a record normalized from a different payload than the detail raw
		raw := map[string]any{"id": "x", "titleFull": "Full Title"}
		d := Extend(raw, Record{})
		assert.Equal(t, "Full Title", d.Title)
	})

	t.Run("normalized title kept", func(t *testing.T) {
		raw := map[string]any{"id": "x", "title": "Kept"}
		d := Extend(raw, Normalize(raw))
		assert.Equal(t, "Kept", d.Title)
	})
}

func TestExtend_FieldFallbacks(t *testing.T) {
	t.Run("primary keys", func(t *testing.T) {
		raw := map[string]any{
			"id":                   "x",
			"title":                "T",
			"subjects":             []any{"History", "Finland"},
			"tableOfContents":      []any{"Ch 1", "Ch 2"},
			"isbn":                 "9789510000000",
			"issn":                 []any{"1234-5678"},
			"physicalDescriptions": []any{"312 pages"},
			"series":               []any{map[string]any{"name": "A Series"}},
			"genres":               []any{"Mystery"},
		}
		d := Extend(raw, Normalize(raw))

		assert.Equal(t, []string{"History", "Finland"}, d.Subjects)
		assert.Equal(t, []string{"Ch 1", "Ch 2"}, d.TableOfContents)
		assert.Equal(t, []string{"9789510000000"}, d.ISBNs)
		assert.Equal(t, []string{"1234-5678"}, d.ISSNs)
		assert.Equal(t, []string{"312 pages"}, d.PhysicalDescriptions)
		assert.Equal(t, []string{"A Series"}, d.Series)
		assert.Equal(t, []string{"Mystery"}, d.Genres)
	})

	t.Run("secondary keys", func(t *testing.T) {
		raw := map[string]any{
			"id":          "x",
			"title":       "T",
			"subject":     "Single Subject",
			"contents":    []any{"Only Chapter"},
			"isbns":       []any{"9789510000000"},
			"seriesNames": []any{"Plain Series"},
		}
		d := Extend(raw, Normalize(raw))

		assert.Equal(t, []string{"Single Subject"}, d.Subjects)
		assert.Equal(t, []string{"Only Chapter"}, d.TableOfContents)
		assert.Equal(t, []string{"9789510000000"}, d.ISBNs)
		assert.Equal(t, []string{"Plain Series"}, d.Series)
	})

	t.Run("summary falls back to descriptions", func(t *testing.T) {
		raw := map[string]any{"id": "x", "title": "T", "description": "from search"}
		d := Extend(raw, Normalize(raw))
		assert.Equal(t, []string{"from search"}, d.Summary)

		raw["summary"] = []any{"detail only"}
		d = Extend(raw, Normalize(raw))
		assert.Equal(t, []string{"detail only"}, d.Summary)
	})

	t.Run("plural detail fields always sequences", func(t *testing.T) {
		raw := map[string]any{"id": "x"}
		d := Extend(raw, Normalize(raw))
		assert.NotNil(t, d.Holdings)
		assert.NotNil(t, d.Summary)
		assert.NotNil(t, d.Subjects)
		assert.NotNil(t, d.TableOfContents)
		assert.NotNil(t, d.ISBNs)
		assert.NotNil(t, d.ISSNs)
		assert.NotNil(t, d.PhysicalDescriptions)
		assert.NotNil(t, d.Series)
		assert.NotNil(t, d.Genres)
	})
}
