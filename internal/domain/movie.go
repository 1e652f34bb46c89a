package domain

import "github.com/kapu/plex-request-bot-go/internal/constants"

// MovieRef is a catalog movie id with its localized display title.
type MovieRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// DeepLink returns the catalog page for the movie. The id is used unmodified.
func (m MovieRef) DeepLink() string {
	return DeepLink(m.ID)
}

func DeepLink(movieID string) string {
	return constants.APIConfig.DeepLinkBaseURL + movieID
}

// PendingRequest mirrors a movie request held by the request service.
// RequestID addresses the record itself, MovieID the catalog entry.
type PendingRequest struct {
	RequestID string
	MovieID   string
	Title     string
	Approved  bool
	Available bool
}

func (r PendingRequest) Movie() MovieRef {
	return MovieRef{ID: r.MovieID, Title: r.Title}
}

// SearchResult is the outcome of a catalog title search.
type SearchResult struct {
	Movie MovieRef
	Found bool
}

func NotFound() SearchResult {
	return SearchResult{}
}

func Found(movie MovieRef) SearchResult {
	return SearchResult{Movie: movie, Found: true}
}
