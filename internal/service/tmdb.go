package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/kapu/plex-request-bot-go/internal/domain"
	"go.uber.org/zap"
)

// TMDbMovieRaw represents the subset of a catalog movie the bot reads
type TMDbMovieRaw struct {
	ID    json.Number `json:"id"`
	Title string      `json:"title"`
}

// TMDbPageRaw represents a paged catalog listing
type TMDbPageRaw struct {
	Page         int            `json:"page"`
	TotalResults int            `json:"total_results"`
	Results      []TMDbMovieRaw `json:"results"`
}

// TMDbClient talks to the movie catalog service
type TMDbClient struct {
	api      *APIClient
	language string
	logger   *zap.Logger
}

func NewTMDbClient(baseURL, apiKey, language string, cfg APIClientConfig, logger *zap.Logger) *TMDbClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg.Name = "tmdb"
	cfg.BaseURL = baseURL
	cfg.QueryKey = "api_key"
	cfg.QueryValue = apiKey

	return &TMDbClient{
		api:      NewAPIClient(cfg, logger),
		language: language,
		logger:   logger,
	}
}

// SearchMovies returns the first result page and the total result count.
func (t *TMDbClient) SearchMovies(ctx context.Context, query string) ([]domain.MovieRef, int, error) {
	params := t.params()
	params.Set("query", query)

	var page TMDbPageRaw
	if err := t.api.DoJSON(ctx, http.MethodGet, "/search/movie", params, nil, &page); err != nil {
		return nil, 0, err
	}

	t.logger.Debug("Catalog search",
		zap.String("query", query),
		zap.Int("total_results", page.TotalResults),
	)
	return toMovieRefs(page.Results), page.TotalResults, nil
}

// GetMovie returns the localized detail record for id.
func (t *TMDbClient) GetMovie(ctx context.Context, id string) (domain.MovieRef, error) {
	var movie TMDbMovieRaw
	if err := t.api.DoJSON(ctx, http.MethodGet, "/movie/"+url.PathEscape(id), t.params(), nil, &movie); err != nil {
		return domain.MovieRef{}, err
	}

	ref := domain.MovieRef{ID: movie.ID.String(), Title: movie.Title}
	if ref.ID == "" {
		ref.ID = id
	}
	return ref, nil
}

// DiscoverPopular returns the first discover page sorted by popularity.
func (t *TMDbClient) DiscoverPopular(ctx context.Context) ([]domain.MovieRef, error) {
	params := t.params()
	params.Set("sort_by", "popularity.desc")

	var page TMDbPageRaw
	if err := t.api.DoJSON(ctx, http.MethodGet, "/discover/movie", params, nil, &page); err != nil {
		return nil, err
	}
	return toMovieRefs(page.Results), nil
}

func (t *TMDbClient) params() url.Values {
	params := url.Values{}
	params.Set("language", t.language)
	return params
}

func toMovieRefs(raw []TMDbMovieRaw) []domain.MovieRef {
	movies := make([]domain.MovieRef, 0, len(raw))
	for _, m := range raw {
		movies = append(movies, domain.MovieRef{ID: m.ID.String(), Title: m.Title})
	}
	return movies
}
