package catalog

import (
	"context"
	"fmt"

	"biblio/internal/platform/opac"
)

// RecordSource is the slice of the OPAC client the service depends on.
type RecordSource interface {
	Search(ctx context.Context, query string, opts opac.SearchOptions) (*opac.SearchResult, error)
	GetRecord(ctx context.Context, id string) (map[string]any, error)
}

type Service struct {
	source RecordSource
}

func NewService(source RecordSource) *Service {
	return &Service{source: source}
}

// Search runs an upstream search and normalizes every raw record it returned.
func (s *Service) Search(ctx context.Context, query string, opts opac.SearchOptions) (*SearchPage, error) {
	res, err := s.source.Search(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	page := &SearchPage{
		Total:   res.Total,
		Records: make([]Record, 0, len(res.Records)),
	}
	for _, raw := range res.Records {
		page.Records = append(page.Records, Normalize(raw))
	}
	return page, nil
}

// GetDetail fetches one record and runs the full pipeline: envelope
// resolution, normalization, detail extension.
func (s *Service) GetDetail(ctx context.Context, id string) (*Detail, error) {
	raw, err := s.source.GetRecord(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", id, err)
	}
	rec, err := ResolveEnvelope(raw)
	if err != nil {
		return nil, fmt.Errorf("record %s: %w", id, err)
	}
	detail := Extend(rec, Normalize(rec))
	return &detail, nil
}
