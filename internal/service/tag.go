package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bookscoutapp/bookscout-server/internal/store"
	"github.com/bookscoutapp/bookscout-server/internal/tags"
)

// TagService serves the typeahead tag list for the review form.
type TagService struct {
	store  store.Store
	logger *slog.Logger
}

// NewTagService creates a new tag service.
func NewTagService(store store.Store, logger *slog.Logger) *TagService {
	return &TagService{
		store:  store,
		logger: logger,
	}
}

// SuggestedTags returns the tag vocabulary for a user, their own tags
// ranked by use merged with the stock catalog. Anonymous callers get
// the stock catalog as-is.
func (s *TagService) SuggestedTags(ctx context.Context, userID string) ([]string, error) {
	if userID == "" {
		return tags.SuggestedCatalog(), nil
	}

	stored, err := s.store.ListTagStrings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags.Rank(stored), nil
}
