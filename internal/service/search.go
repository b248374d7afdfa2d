package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/bookscoutapp/bookscout-server/internal/catalog/googlebooks"
)

// minQueryLength is the shortest query forwarded to the catalog.
const minQueryLength = 3

// SearchService fronts the public catalog for the search box.
type SearchService struct {
	catalog *googlebooks.Client
	logger  *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(catalog *googlebooks.Client, logger *slog.Logger) *SearchService {
	return &SearchService{
		catalog: catalog,
		logger:  logger,
	}
}

// Search looks up catalog volumes for a free-text query. Queries that
// are too short return an empty result rather than an error, so the
// search box can fire on every keystroke.
func (s *SearchService) Search(ctx context.Context, query string) ([]googlebooks.Volume, error) {
	query = strings.TrimSpace(query)
	if len(query) < minQueryLength {
		return []googlebooks.Volume{}, nil
	}
	return s.catalog.Search(ctx, query)
}
