package domain

import "testing"

func TestDeepLinkUsesIDUnmodified(t *testing.T) {
	movie := MovieRef{ID: "293660", Title: "Deadpool"}
	if got := movie.DeepLink(); got != "https://www.themoviedb.org/movie/293660" {
		t.Fatalf("unexpected deep link: %s", got)
	}
}

func TestSearchResultConstructors(t *testing.T) {
	if NotFound().Found {
		t.Fatalf("NotFound must not be found")
	}
	res := Found(MovieRef{ID: "1", Title: "x"})
	if !res.Found || res.Movie.ID != "1" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestAuthorizationAllows(t *testing.T) {
	open := NewAuthorization(false, nil)
	if !open.Allows("Anyone") {
		t.Fatalf("disabled enforcement must allow everyone")
	}

	gated := NewAuthorization(true, []string{"Admin"})
	if !gated.Allows("Admin") {
		t.Fatalf("expected admin to be allowed")
	}
	if gated.Allows("Guest") {
		t.Fatalf("expected guest to be denied")
	}

	empty := NewAuthorization(true, nil)
	if empty.Allows("Admin") {
		t.Fatalf("enforced empty allow-list must deny")
	}
}
