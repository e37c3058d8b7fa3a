package opac

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, "biblio-test/1.0", 1000, 0)
}

func TestClient_Search(t *testing.T) {
	t.Run("query parameters", func(t *testing.T) {
		var gotQuery map[string]string
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotQuery = map[string]string{
				"path":    r.URL.Path,
				"lookfor": r.URL.Query().Get("lookfor"),
				"limit":   r.URL.Query().Get("limit"),
				"page":    r.URL.Query().Get("page"),
				"lng":     r.URL.Query().Get("lng"),
				"sort":    r.URL.Query().Get("sort"),
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"resultCount": 1, "records": [{"id": "a", "title": "T"}]}`))
		})

		res, err := client.Search(context.Background(), "tove jansson", SearchOptions{
			Limit:     10,
			Page:      2,
			Language:  "fi",
			SortOrder: "newest",
		})
		require.NoError(t, err)

		assert.Equal(t, "/api/v1/search", gotQuery["path"])
		assert.Equal(t, "tove jansson", gotQuery["lookfor"])
		assert.Equal(t, "10", gotQuery["limit"])
		assert.Equal(t, "2", gotQuery["page"])
		assert.Equal(t, "fi", gotQuery["lng"])
		assert.Equal(t, "newest", gotQuery["sort"])

		assert.Equal(t, 1, res.Total)
		require.Len(t, res.Records, 1)
		assert.Equal(t, "a", res.Records[0]["id"])
	})

	t.Run("defaults limit and omits page one", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "20", r.URL.Query().Get("limit"))
			assert.False(t, r.URL.Query().Has("page"))
			w.Write([]byte(`{"resultCount": 0, "records": []}`))
		})

		res, err := client.Search(context.Background(), "x", SearchOptions{})
		require.NoError(t, err)
		assert.Equal(t, 0, res.Total)
	})

	t.Run("rejects invalid options before any request", func(t *testing.T) {
		requested := false
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			requested = true
		})

		_, err := client.Search(context.Background(), "x", SearchOptions{SortOrder: "sideways"})
		assert.Error(t, err)
		assert.False(t, requested)

		_, err = client.Search(context.Background(), "x", SearchOptions{Limit: 500})
		assert.Error(t, err)
	})

	t.Run("error status", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		_, err := client.Search(context.Background(), "x", SearchOptions{})
		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("garbage body", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>not json</html>"))
		})

		_, err := client.Search(context.Background(), "x", SearchOptions{})
		assert.ErrorIs(t, err, ErrUnavailable)
	})
}

func TestClient_GetRecord(t *testing.T) {
	t.Run("payload returned untouched", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/record", r.URL.Path)
			assert.Equal(t, "abc.123", r.URL.Query().Get("id"))
			w.Write([]byte(`{"records": [{"id": "abc.123", "authors": "Solo"}]}`))
		})

		raw, err := client.GetRecord(context.Background(), "abc.123")
		require.NoError(t, err)

		// still the raw envelope; resolution happens in the catalog package
		records, ok := raw["records"].([]any)
		require.True(t, ok)
		assert.Len(t, records, 1)
	})

	t.Run("not found", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		_, err := client.GetRecord(context.Background(), "gone")
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})
}

func TestSearchOptions_Validate(t *testing.T) {
	assert.NoError(t, SearchOptions{}.Validate())
	assert.NoError(t, SearchOptions{Limit: 50, Page: 3, Language: "fi", SortOrder: "relevance"}.Validate())
	assert.Error(t, SearchOptions{Limit: 101}.Validate())
	assert.Error(t, SearchOptions{Page: -1}.Validate())
	assert.Error(t, SearchOptions{SortOrder: "sideways"}.Validate())
}
