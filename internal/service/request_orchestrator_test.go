package service

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"github.com/kapu/plex-request-bot-go/internal/domain"
	"github.com/kapu/plex-request-bot-go/pkg/errors"
	"go.uber.org/zap"
)

type fakeRequestService struct {
	requests  []domain.PendingRequest
	listErr   error
	createErr error
	deleteErr map[string]error

	listCalls int
	created   []string
	deleted   []string
}

func (f *fakeRequestService) ListMovieRequests(_ context.Context) ([]domain.PendingRequest, error) {
	f.listCalls++
	return f.requests, f.listErr
}

func (f *fakeRequestService) CreateMovieRequest(_ context.Context, movieID string) error {
	f.created = append(f.created, movieID)
	return f.createErr
}

func (f *fakeRequestService) DeleteMovieRequest(_ context.Context, requestID string) error {
	f.deleted = append(f.deleted, requestID)
	return f.deleteErr[requestID]
}

type fakeCatalogService struct {
	results []domain.MovieRef
	total   int
	titles  map[string]string
	popular []domain.MovieRef
	err     error

	titleCalls []string
}

func (f *fakeCatalogService) SearchMovies(_ context.Context, _ string) ([]domain.MovieRef, int, error) {
	return f.results, f.total, f.err
}

func (f *fakeCatalogService) GetMovie(_ context.Context, id string) (domain.MovieRef, error) {
	f.titleCalls = append(f.titleCalls, id)
	if f.err != nil {
		return domain.MovieRef{}, f.err
	}
	return domain.MovieRef{ID: id, Title: f.titles[id]}, nil
}

func (f *fakeCatalogService) DiscoverPopular(_ context.Context) ([]domain.MovieRef, error) {
	return f.popular, f.err
}

func sampleRequests() []domain.PendingRequest {
	return []domain.PendingRequest{
		{RequestID: "1", MovieID: "100", Title: "Dune", Approved: true, Available: true},
		{RequestID: "2", MovieID: "200", Title: "Arrival", Approved: false, Available: false},
		{RequestID: "3", MovieID: "300", Title: "Heat", Approved: true, Available: false},
		{RequestID: "4", MovieID: "400", Title: "Alien", Approved: false, Available: true},
	}
}

func TestSearchMovieFirstResult(t *testing.T) {
	catalog := &fakeCatalogService{
		results: []domain.MovieRef{{ID: "293660", Title: "Deadpool"}, {ID: "383498", Title: "Deadpool 2"}},
		total:   2,
	}
	o := NewRequestOrchestrator(&fakeRequestService{}, catalog, zap.NewNop())

	res, err := o.SearchMovie(context.Background(), "Deadpool")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !res.Found || res.Movie.ID != "293660" {
		t.Fatalf("expected first result, got %+v", res)
	}
}

func TestSearchMovieNothingFound(t *testing.T) {
	o := NewRequestOrchestrator(&fakeRequestService{}, &fakeCatalogService{total: 0}, zap.NewNop())

	res, err := o.SearchMovie(context.Background(), "asdfghjkl")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if res.Found {
		t.Fatalf("expected not found, got %+v", res)
	}
}

func TestResolveTitlePropagatesError(t *testing.T) {
	o := NewRequestOrchestrator(&fakeRequestService{}, &fakeCatalogService{err: fmt.Errorf("404")}, zap.NewNop())

	if _, err := o.ResolveTitle(context.Background(), "0"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestSubmitRequestRejection(t *testing.T) {
	requests := &fakeRequestService{createErr: errors.NewRejectedError("duplicate", 400)}
	o := NewRequestOrchestrator(requests, &fakeCatalogService{}, zap.NewNop())

	err := o.SubmitRequest(context.Background(), "293660")
	if !errors.IsRejected(err) {
		t.Fatalf("expected rejection to survive wrapping, got %v", err)
	}
	if !reflect.DeepEqual(requests.created, []string{"293660"}) {
		t.Fatalf("unexpected create calls: %v", requests.created)
	}
}

func TestListPendingRequestsFiltersAvailable(t *testing.T) {
	o := NewRequestOrchestrator(&fakeRequestService{requests: sampleRequests()}, &fakeCatalogService{}, zap.NewNop())

	pending, err := o.ListPendingRequests(context.Background(), true)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := []domain.MovieRef{{ID: "200", Title: "Arrival"}, {ID: "300", Title: "Heat"}}
	if !reflect.DeepEqual(pending, want) {
		t.Fatalf("expected %v, got %v", want, pending)
	}

	all, err := o.ListPendingRequests(context.Background(), false)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(all) != 4 || all[0].ID != "100" || all[3].ID != "400" {
		t.Fatalf("expected all requests in service order, got %v", all)
	}
}

func TestListApprovedWithTitlesResolvesEachInOrder(t *testing.T) {
	catalog := &fakeCatalogService{titles: map[string]string{"100": "Dune: Teil Eins", "300": "Heat (1995)"}}
	o := NewRequestOrchestrator(&fakeRequestService{requests: sampleRequests()}, catalog, zap.NewNop())

	approved, err := o.ListApprovedWithTitles(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := []domain.MovieRef{{ID: "100", Title: "Dune: Teil Eins"}, {ID: "300", Title: "Heat (1995)"}}
	if !reflect.DeepEqual(approved, want) {
		t.Fatalf("expected %v, got %v", want, approved)
	}
	if !reflect.DeepEqual(catalog.titleCalls, []string{"100", "300"}) {
		t.Fatalf("expected one title call per approved request, got %v", catalog.titleCalls)
	}
}

func TestListAvailableIDs(t *testing.T) {
	o := NewRequestOrchestrator(&fakeRequestService{requests: sampleRequests()}, &fakeCatalogService{}, zap.NewNop())

	ids, err := o.ListAvailableIDs(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !reflect.DeepEqual(ids, []string{"1", "4"}) {
		t.Fatalf("unexpected ids: %v", ids)
	}
}

func TestDeleteRequestsEmptyMakesNoCalls(t *testing.T) {
	requests := &fakeRequestService{}
	o := NewRequestOrchestrator(requests, &fakeCatalogService{}, zap.NewNop())

	if o.DeleteRequests(context.Background(), nil) {
		t.Fatalf("expected false for empty id list")
	}
	if len(requests.deleted) != 0 {
		t.Fatalf("expected no delete calls, got %v", requests.deleted)
	}
}

func TestDeleteRequestsContinuesAfterFailure(t *testing.T) {
	requests := &fakeRequestService{deleteErr: map[string]error{"1": fmt.Errorf("boom")}}
	o := NewRequestOrchestrator(requests, &fakeCatalogService{}, zap.NewNop())

	if !o.DeleteRequests(context.Background(), []string{"1", "4"}) {
		t.Fatalf("expected true when ids were given")
	}
	if !reflect.DeepEqual(requests.deleted, []string{"1", "4"}) {
		t.Fatalf("expected one delete per id, got %v", requests.deleted)
	}
}

func TestDeleteCompletedRequests(t *testing.T) {
	requests := &fakeRequestService{requests: sampleRequests()}
	o := NewRequestOrchestrator(requests, &fakeCatalogService{}, zap.NewNop())

	performed, err := o.DeleteCompletedRequests(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !performed || !reflect.DeepEqual(requests.deleted, []string{"1", "4"}) {
		t.Fatalf("unexpected result: performed=%v deleted=%v", performed, requests.deleted)
	}

	none := &fakeRequestService{requests: sampleRequests()[1:3]}
	o = NewRequestOrchestrator(none, &fakeCatalogService{}, zap.NewNop())
	performed, err = o.DeleteCompletedRequests(context.Background())
	if err != nil || performed {
		t.Fatalf("expected nothing to delete, got performed=%v err=%v", performed, err)
	}
	if len(none.deleted) != 0 {
		t.Fatalf("expected no delete calls, got %v", none.deleted)
	}
}

func TestDeleteCompletedRequestsListFailure(t *testing.T) {
	o := NewRequestOrchestrator(&fakeRequestService{listErr: fmt.Errorf("timeout")}, &fakeCatalogService{}, zap.NewNop())

	if _, err := o.DeleteCompletedRequests(context.Background()); err == nil {
		t.Fatalf("expected list error to propagate")
	}
}

func TestPopularMoviesTakesFirstAmount(t *testing.T) {
	popular := make([]domain.MovieRef, 0, 20)
	for i := 1; i <= 20; i++ {
		popular = append(popular, domain.MovieRef{ID: fmt.Sprint(i), Title: fmt.Sprintf("Movie %d", i)})
	}
	o := NewRequestOrchestrator(&fakeRequestService{}, &fakeCatalogService{popular: popular}, zap.NewNop())

	movies, err := o.PopularMovies(context.Background(), 3)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(movies) != 3 || movies[0].ID != "1" || movies[2].ID != "3" {
		t.Fatalf("unexpected movies: %v", movies)
	}

	short := NewRequestOrchestrator(&fakeRequestService{}, &fakeCatalogService{popular: popular[:2]}, zap.NewNop())
	movies, err = short.PopularMovies(context.Background(), 15)
	if err != nil || len(movies) != 2 {
		t.Fatalf("expected all available entries, got %v (%v)", movies, err)
	}
}
