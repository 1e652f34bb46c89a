package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/kapu/plex-request-bot-go/internal/domain"
	"github.com/kapu/plex-request-bot-go/pkg/errors"
	"go.uber.org/zap"
)

const ombiMovieRequestPath = "/api/v1/Request/movie"

// OmbiMovieRequestRaw represents a movie request as returned by the request service
type OmbiMovieRequestRaw struct {
	ID           json.Number `json:"id"`
	TheMovieDbID json.Number `json:"theMovieDbId"`
	Title        string      `json:"title"`
	Approved     bool        `json:"approved"`
	Available    bool        `json:"available"`
}

// OmbiCreateRequest is the payload for a new movie request
type OmbiCreateRequest struct {
	TheMovieDbID string `json:"theMovieDbId"`
	LanguageCode string `json:"languageCode"`
}

// OmbiRequestResult is the request service's answer to a create call
type OmbiRequestResult struct {
	Result       bool   `json:"result"`
	Message      string `json:"message"`
	IsError      bool   `json:"isError"`
	ErrorMessage string `json:"errorMessage"`
	RequestID    int    `json:"requestId"`
}

// OmbiClient talks to the media request service
type OmbiClient struct {
	api          *APIClient
	languageCode string
	logger       *zap.Logger
}

func NewOmbiClient(baseURL, apiKey, languageCode string, cfg APIClientConfig, logger *zap.Logger) *OmbiClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg.Name = "ombi"
	cfg.BaseURL = baseURL
	cfg.HeaderKey = "ApiKey"
	cfg.HeaderValue = apiKey

	return &OmbiClient{
		api:          NewAPIClient(cfg, logger),
		languageCode: languageCode,
		logger:       logger,
	}
}

// ListMovieRequests returns every movie request in service order.
func (o *OmbiClient) ListMovieRequests(ctx context.Context) ([]domain.PendingRequest, error) {
	var raw []OmbiMovieRequestRaw
	if err := o.api.DoJSON(ctx, http.MethodGet, ombiMovieRequestPath, nil, nil, &raw); err != nil {
		return nil, err
	}

	requests := make([]domain.PendingRequest, 0, len(raw))
	for _, r := range raw {
		requests = append(requests, domain.PendingRequest{
			RequestID: r.ID.String(),
			MovieID:   r.TheMovieDbID.String(),
			Title:     r.Title,
			Approved:  r.Approved,
			Available: r.Available,
		})
	}
	return requests, nil
}

// CreateMovieRequest submits a request for the catalog movie. A 400, 409 or 422
// status or an error result in the body is reported as
// errors.ErrRequestRejected. Auth failures and throttling stay transport errors.
func (o *OmbiClient) CreateMovieRequest(ctx context.Context, movieID string) error {
	payload := OmbiCreateRequest{
		TheMovieDbID: movieID,
		LanguageCode: o.languageCode,
	}

	body, err := o.api.Do(ctx, http.MethodPost, ombiMovieRequestPath, nil, payload)
	if err != nil {
		var apiErr *errors.APIError
		if errors.As(err, &apiErr) && isRejectionStatus(apiErr.StatusCode) {
			reason, _ := apiErr.Context["body"].(string)
			return errors.NewRejectedError(reason, apiErr.StatusCode)
		}
		return err
	}

	if len(body) == 0 {
		return nil
	}

	var result OmbiRequestResult
	if err := json.Unmarshal(body, &result); err != nil {
		// some versions answer with a bare status; a 2xx is accepted
		o.logger.Debug("Unparseable create response", zap.Error(err))
		return nil
	}

	if result.IsError || (!result.Result && result.ErrorMessage != "") {
		o.logger.Info("Movie request rejected",
			zap.String("movie_id", movieID),
			zap.String("reason", result.ErrorMessage),
		)
		return errors.NewRejectedError(result.ErrorMessage, http.StatusOK)
	}

	o.logger.Info("Movie request created",
		zap.String("movie_id", movieID),
		zap.Int("request_id", result.RequestID),
	)
	return nil
}

// DeleteMovieRequest removes the request record. The response body is ignored.
func (o *OmbiClient) DeleteMovieRequest(ctx context.Context, requestID string) error {
	_, err := o.api.Do(ctx, http.MethodDelete, ombiMovieRequestPath+"/"+url.PathEscape(requestID), nil, nil)
	return err
}

func isRejectionStatus(status int) bool {
	switch status {
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		return true
	default:
		return false
	}
}
