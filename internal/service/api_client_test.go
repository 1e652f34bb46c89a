package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/kapu/plex-request-bot-go/pkg/errors"
	"go.uber.org/zap"
)

func TestAPIClientAddsHeaderAndQueryAuth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("ApiKey") != "secret" {
			t.Errorf("expected ApiKey header, got %q", r.Header.Get("ApiKey"))
		}
		if r.URL.Query().Get("api_key") != "k" || r.URL.Query().Get("language") != "de-DE" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := NewAPIClient(APIClientConfig{
		Name:        "test",
		BaseURL:     server.URL,
		HeaderKey:   "ApiKey",
		HeaderValue: "secret",
		QueryKey:    "api_key",
		QueryValue:  "k",
	}, zap.NewNop())

	var out struct {
		OK bool `json:"ok"`
	}
	params := url.Values{"language": []string{"de-DE"}}
	if err := client.DoJSON(context.Background(), http.MethodGet, "/x", params, nil, &out); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !out.OK {
		t.Fatalf("expected decoded body")
	}
	if params.Get("api_key") != "" {
		t.Fatalf("caller params must not be mutated")
	}
}

func TestAPIClientClassifiesStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewAPIClient(APIClientConfig{Name: "test", BaseURL: server.URL}, zap.NewNop())
	err := client.DoJSON(context.Background(), http.MethodGet, "/movie/0", nil, nil, &struct{}{})

	var apiErr *errors.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T %v", err, err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", apiErr.StatusCode)
	}
}

func TestAPIClientDecodeFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer server.Close()

	client := NewAPIClient(APIClientConfig{Name: "test", BaseURL: server.URL}, zap.NewNop())
	err := client.DoJSON(context.Background(), http.MethodGet, "/", nil, nil, &struct{}{})

	var apiErr *errors.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 502 {
		t.Fatalf("expected decode APIError, got %v", err)
	}
}

func TestAPIClientOpensCircuitOnServerErrors(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewAPIClient(APIClientConfig{Name: "test", BaseURL: server.URL}, zap.NewNop())
	for i := 0; i < 3; i++ {
		if _, err := client.Do(context.Background(), http.MethodGet, "/", nil, nil); err == nil {
			t.Errorf("expected error on attempt %d", i+1)
		}
	}

	_, err := client.Do(context.Background(), http.MethodGet, "/", nil, nil)
	if !errors.Is(err, errors.ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected open circuit to skip the upstream, got %d calls", calls)
	}
}
