package service

import (
	"context"
	"fmt"

	"github.com/kapu/plex-request-bot-go/internal/domain"
	"go.uber.org/zap"
)

// RequestService is the media request backend (Ombi).
type RequestService interface {
	ListMovieRequests(ctx context.Context) ([]domain.PendingRequest, error)
	CreateMovieRequest(ctx context.Context, movieID string) error
	DeleteMovieRequest(ctx context.Context, requestID string) error
}

// CatalogService is the movie metadata backend (TMDb).
type CatalogService interface {
	SearchMovies(ctx context.Context, query string) ([]domain.MovieRef, int, error)
	GetMovie(ctx context.Context, id string) (domain.MovieRef, error)
	DiscoverPopular(ctx context.Context) ([]domain.MovieRef, error)
}

// RequestOrchestrator turns bot intents into calls against the request and
// catalog services. It keeps no state between calls; every operation fetches
// fresh data.
type RequestOrchestrator struct {
	requests RequestService
	catalog  CatalogService
	logger   *zap.Logger
}

func NewRequestOrchestrator(requests RequestService, catalog CatalogService, logger *zap.Logger) *RequestOrchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RequestOrchestrator{
		requests: requests,
		catalog:  catalog,
		logger:   logger,
	}
}

// SearchMovie returns the catalog's first hit for title.
func (o *RequestOrchestrator) SearchMovie(ctx context.Context, title string) (domain.SearchResult, error) {
	results, total, err := o.catalog.SearchMovies(ctx, title)
	if err != nil {
		return domain.NotFound(), fmt.Errorf("search movie %q: %w", title, err)
	}
	if total < 1 || len(results) == 0 {
		return domain.NotFound(), nil
	}

	o.logger.Debug("Search matched", zap.String("query", title), zap.String("movie_id", results[0].ID), zap.String("title", results[0].Title))
	return domain.Found(results[0]), nil
}

// ResolveTitle returns the localized catalog title for id.
func (o *RequestOrchestrator) ResolveTitle(ctx context.Context, id string) (string, error) {
	movie, err := o.catalog.GetMovie(ctx, id)
	if err != nil {
		return "", fmt.Errorf("resolve title %s: %w", id, err)
	}
	return movie.Title, nil
}

// SubmitRequest creates a request for id. A refusal by the request service
// matches errors.ErrRequestRejected.
func (o *RequestOrchestrator) SubmitRequest(ctx context.Context, id string) error {
	if err := o.requests.CreateMovieRequest(ctx, id); err != nil {
		return fmt.Errorf("submit request %s: %w", id, err)
	}
	return nil
}

// ListPendingRequests returns id and title of every request, or only the not
// yet available ones, in service order.
func (o *RequestOrchestrator) ListPendingRequests(ctx context.Context, onlyUnavailable bool) ([]domain.MovieRef, error) {
	requests, err := o.requests.ListMovieRequests(ctx)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}

	movies := make([]domain.MovieRef, 0, len(requests))
	for _, r := range requests {
		if onlyUnavailable && r.Available {
			continue
		}
		movies = append(movies, r.Movie())
	}
	return movies, nil
}

// ListApprovedWithTitles returns approved requests with titles resolved from
// the catalog. This costs one catalog call per approved request, issued in
// order.
func (o *RequestOrchestrator) ListApprovedWithTitles(ctx context.Context) ([]domain.MovieRef, error) {
	requests, err := o.requests.ListMovieRequests(ctx)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}

	movies := make([]domain.MovieRef, 0, len(requests))
	for _, r := range requests {
		if !r.Approved {
			continue
		}
		title, err := o.ResolveTitle(ctx, r.MovieID)
		if err != nil {
			return nil, err
		}
		movies = append(movies, domain.MovieRef{ID: r.MovieID, Title: title})
	}
	return movies, nil
}

// ListAvailableIDs returns the request ids of requests already available.
func (o *RequestOrchestrator) ListAvailableIDs(ctx context.Context) ([]string, error) {
	requests, err := o.requests.ListMovieRequests(ctx)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}

	ids := make([]string, 0, len(requests))
	for _, r := range requests {
		if r.Available {
			ids = append(ids, r.RequestID)
		}
	}
	return ids, nil
}

// DeleteRequests issues one delete per id and reports whether anything was
// attempted. A failed delete is logged and does not stop the others.
func (o *RequestOrchestrator) DeleteRequests(ctx context.Context, ids []string) bool {
	if len(ids) == 0 {
		return false
	}

	for _, id := range ids {
		if err := o.requests.DeleteMovieRequest(ctx, id); err != nil {
			o.logger.Warn("Failed to delete movie request", zap.String("request_id", id), zap.Error(err))
			continue
		}
		o.logger.Info("Deleted movie request", zap.String("request_id", id))
	}
	return true
}

// DeleteCompletedRequests removes every request that is already available.
func (o *RequestOrchestrator) DeleteCompletedRequests(ctx context.Context) (bool, error) {
	ids, err := o.ListAvailableIDs(ctx)
	if err != nil {
		return false, err
	}
	return o.DeleteRequests(ctx, ids), nil
}

// PopularMovies returns the first amount entries of the popularity ranking.
func (o *RequestOrchestrator) PopularMovies(ctx context.Context, amount int) ([]domain.MovieRef, error) {
	movies, err := o.catalog.DiscoverPopular(ctx)
	if err != nil {
		return nil, fmt.Errorf("discover popular: %w", err)
	}
	if amount < 0 {
		amount = 0
	}
	if amount < len(movies) {
		movies = movies[:amount]
	}
	return movies, nil
}
