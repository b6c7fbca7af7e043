// Package trailer looks up movie trailer URLs through the Trakt API.
//
// Trakt's full movie objects carry the official trailer link, so a single
// text search resolves a webhook's title and year to a URL. Lookup is
// best-effort: the notifier sends the message without a trailer when
// nothing is found or the API is unreachable.
package trailer

import (
	"context"
	"fmt"

	"github.com/jacklaaa89/trakt"
	"github.com/jacklaaa89/trakt/search"

	"jellygram/pkg/errors"
)

// Service resolves movie trailers. A zero API key disables lookups.
type Service struct {
	enabled bool
}

// NewService creates a trailer lookup service. The Trakt client key is
// process-global, matching how the library is designed.
func NewService(apiKey string) *Service {
	if apiKey == "" {
		return &Service{}
	}
	trakt.Key = apiKey
	return &Service{enabled: true}
}

// MovieTrailer returns the trailer URL for a movie, matching by title and,
// when known, release year. ErrNotFound means no trailer is available.
func (s *Service) MovieTrailer(ctx context.Context, title string, year int64) (string, error) {
	if !s.enabled {
		return "", errors.ErrNotFound
	}
	if title == "" {
		return "", errors.ErrInvalidInput
	}

	params := &trakt.SearchQueryParams{
		Query:    title,
		Type:     "movie",
		Extended: trakt.ExtendedTypeFull,
	}
	params.Context = ctx

	iterator := search.TextQuery(params)
	for iterator.Next() {
		result, err := iterator.Result()
		if err != nil {
			return "", fmt.Errorf("scanning search result: %w", err)
		}
		if result.Movie == nil {
			continue
		}
		if year != 0 && result.Movie.Year != year {
			continue
		}
		if result.Movie.Trailer != "" {
			return result.Movie.Trailer, nil
		}
	}
	if err := iterator.Err(); err != nil {
		return "", fmt.Errorf("searching for %q: %w", title, err)
	}
	return "", errors.ErrNotFound
}
