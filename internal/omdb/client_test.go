package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := NewClient(Options{BaseURL: server.URL, APIKey: "secret"})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return c
}

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != DefaultBaseURL {
		t.Fatalf("url = %q, want %q", u.String(), DefaultBaseURL)
	}

	u, err = parseBaseURL("example.com:1234?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" || u.Host != "example.com:1234" || u.RawQuery != "" || u.Fragment != "" || u.Path != "/" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(Options{APIKey: "  "})
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("NewClient error = %v, want ErrMissingAPIKey", err)
	}
}

func TestClient_SearchEncodesQueryAndMapsHits(t *testing.T) {
	t.Parallel()

	var gotQuery map[string][]string
	var gotUserAgent string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Search":[
			{"imdbID":"tt1375666","Title":"Inception","Year":"2010","Poster":"https://img/1.jpg","Type":"movie"},
			{"imdbID":"","Title":"Broken","Year":"2000","Poster":"N/A"},
			{"imdbID":"tt1375666","Title":"Inception","Year":"2010","Poster":"https://img/1.jpg"},
			{"imdbID":"tt0133093","Title":"The Matrix","Year":"1999","Poster":"N/A"}
		],"totalResults":"3","Response":"True"}`))
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	got, err := c.Search(ctx, "  inception ")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if gotQuery["s"][0] != "inception" || gotQuery["apikey"][0] != "secret" {
		t.Fatalf("query = %v, want s=inception apikey=secret", gotQuery)
	}
	if !strings.HasPrefix(gotUserAgent, "popcorn/") {
		t.Fatalf("User-Agent = %q, want popcorn/*", gotUserAgent)
	}
	if len(got) != 2 {
		t.Fatalf("Search returned %d hits, want 2: %#v", len(got), got)
	}
	if got[0].ID != "tt1375666" || got[0].Title != "Inception" || got[0].PosterURL != "https://img/1.jpg" {
		t.Fatalf("first hit = %#v", got[0])
	}
	if got[1].PosterURL != "" {
		t.Fatalf("N/A poster should map to empty, got %q", got[1].PosterURL)
	}
}

func TestClient_SearchNotFoundIsEmptyResult(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Response":"False","Error":"Movie not found!"}`))
	})

	got, err := c.Search(context.Background(), "zzzzqqq")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("Search = %#v, want empty non-nil slice", got)
	}
}

func TestClient_SearchServiceErrorSurfacesMessage(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Response":"False","Error":"Too many results."}`))
	})

	_, err := c.Search(context.Background(), "the")
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) || svcErr.Message != "Too many results." {
		t.Fatalf("Search error = %v, want ServiceError(Too many results.)", err)
	}
}

func TestClient_HTTPErrorAndDecodeError(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("s") {
		case "broken":
			_, _ = w.Write([]byte("{not-json"))
		default:
			http.Error(w, "nope", http.StatusInternalServerError)
		}
	})

	_, err := c.Search(context.Background(), "broken")
	if !errors.Is(err, ErrFetchFailed) || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("Search error = %v, want ErrFetchFailed decode error", err)
	}

	_, err = c.Search(context.Background(), "down")
	if !errors.Is(err, ErrFetchFailed) || !strings.Contains(err.Error(), "status 500") {
		t.Fatalf("Search error = %v, want ErrFetchFailed status 500", err)
	}
}

func TestClient_SearchCancelledReturnsContextError(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	t.Cleanup(func() { close(release) })

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := c.Search(ctx, "inception")
		errCh <- err
	}()
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Search error = %v, want context.Canceled", err)
		}
		if errors.Is(err, ErrFetchFailed) {
			t.Fatalf("cancellation must not be reported as a fetch failure: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Search did not return after cancel")
	}
}

func TestClient_DetailMapsFieldsAndMemoises(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Query().Get("i") != "tt1375666" {
			t.Errorf("i = %q, want tt1375666", r.URL.Query().Get("i"))
		}
		_ = json.NewEncoder(w).Encode(DetailResponse{
			envelope:   envelope{Response: "True"},
			IMDbID:     "tt1375666",
			Title:      "Inception",
			Year:       "2010",
			Poster:     "https://img/1.jpg",
			Runtime:    "148 min",
			IMDbRating: "8.8",
			Plot:       "A thief who steals corporate secrets.",
			Released:   "16 Jul 2010",
			Actors:     "Leonardo DiCaprio",
			Director:   "Christopher Nolan",
			Genre:      "Action, Sci-Fi",
		})
	})

	d, err := c.Detail(context.Background(), "tt1375666")
	if err != nil {
		t.Fatalf("Detail returned error: %v", err)
	}
	if d.Title != "Inception" || d.IMDbRating != 8.8 || d.RuntimeMinutes() != 148 || d.Director != "Christopher Nolan" {
		t.Fatalf("Detail = %#v", d)
	}

	if _, err := c.Detail(context.Background(), "tt1375666"); err != nil {
		t.Fatalf("second Detail returned error: %v", err)
	}
	if n := hits.Load(); n != 1 {
		t.Fatalf("server hit %d times, want 1 (memoised)", n)
	}
}

func TestClient_DetailNAFieldsDefault(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Title":"Obscure","Runtime":"N/A","imdbRating":"N/A","Plot":"N/A","Response":"True"}`))
	})

	d, err := c.Detail(context.Background(), "tt0000001")
	if err != nil {
		t.Fatalf("Detail returned error: %v", err)
	}
	if d.ID != "tt0000001" {
		t.Fatalf("ID = %q, want requested id", d.ID)
	}
	if d.IMDbRating != 0 || d.RuntimeMinutes() != 0 || d.Plot != "" {
		t.Fatalf("N/A fields should default, got %#v", d)
	}
}

func TestClient_DetailRequiresID(t *testing.T) {
	c, err := NewClient(Options{BaseURL: "127.0.0.1:1", APIKey: "k"})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.Detail(context.Background(), " "); err == nil {
		t.Fatalf("Detail returned nil error, want error")
	}
}

func TestClient_DetailIncorrectID(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Response":"False","Error":"Incorrect IMDb ID."}`))
	})

	_, err := c.Detail(context.Background(), "bogus")
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("Detail error = %v, want ServiceError", err)
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"service", &ServiceError{Message: "Invalid API key!"}, "Invalid API key!"},
		{"fetch failed", fmt.Errorf("%w: api returned status 500", ErrFetchFailed), "Something went wrong with fetching movies"},
		{"deadline", fmt.Errorf("wrapped: %w", context.DeadlineExceeded), "The movie service took too long to answer"},
		{"other", errors.New("boom"), "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Fatalf("UserMessage = %q, want %q", got, tt.want)
			}
		})
	}
}
