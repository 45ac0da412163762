package services

import (
	"context"
	"strings"

	"github.com/zatekoja/venuediscovery/internal/domain/entities"
	"github.com/zatekoja/venuediscovery/internal/domain/repositories"
)

// SearchService runs venue searches: it normalizes the query, parses the
// location text and delegates to the (usually cached) searcher.
type SearchService struct {
	parser   *LocationParser
	searcher repositories.VenueSearcher
}

// NewSearchService creates a new search service
func NewSearchService(parser *LocationParser, searcher repositories.VenueSearcher) *SearchService {
	return &SearchService{
		parser:   parser,
		searcher: searcher,
	}
}

// Search returns one ranked page of venues matching query.
func (s *SearchService) Search(ctx context.Context, query entities.SearchQuery) (*entities.SearchResult, error) {
	query = NormalizeQuery(query)
	location := s.parser.Parse(query.Location)

	result, err := s.searcher.Search(ctx, query, location)
	if err != nil {
		return nil, err
	}

	RankRows(result.Rows)
	return result, nil
}

// NormalizeQuery clamps pagination and trims free-text fields. The
// normalized query is what the cache keys on.
func NormalizeQuery(q entities.SearchQuery) entities.SearchQuery {
	if q.Limit < 1 {
		q.Limit = 1
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	q.Location = strings.TrimSpace(q.Location)
	q.Category = strings.ToLower(strings.TrimSpace(q.Category))
	q.Tag = strings.TrimSpace(q.Tag)
	q.Name = strings.TrimSpace(q.Name)
	return q
}
