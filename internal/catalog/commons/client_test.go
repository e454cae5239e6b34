package commons

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mmcdole/parallax/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c := NewClient(Config{
		Endpoint:   server.URL + "/w/api.php",
		Categories: []string{"Impressionist paintings"},
		PageLimit:  5,
		MaxOffset:  40,
		ThumbWidth: 800,
		RetryDelay: time.Millisecond,
	}, nil)
	c.intN = func(n int) int { return n - 1 }
	return c
}

func TestClient_FetchCandidateEncodesQuery(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	var gotUserAgent string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotUserAgent = r.Header.Get("User-Agent")
		_ = json.NewEncoder(w).Encode(QueryResponse{
			Query: &Query{Pages: map[string]Page{
				"10": {PageID: 10, Title: "File:Monet_haystacks.jpg", ImageInfo: []ImageInfo{{
					ThumbURL: "https://img/haystacks.jpg",
					ExtMetadata: map[string]MetadataField{
						"ObjectName": {Value: "Haystacks"},
						"Artist":     {Value: "<span>Claude Monet</span>"},
					},
				}}},
				"11": {PageID: 11, Title: "File:No_thumb.tif"},
			}},
		})
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	art, err := c.FetchCandidate(ctx)
	if err != nil {
		t.Fatalf("FetchCandidate returned error: %v", err)
	}
	want := domain.Artwork{URL: "https://img/haystacks.jpg", Title: "Haystacks", Artist: "Claude Monet"}
	if art != want {
		t.Fatalf("FetchCandidate = %#v, want %#v", art, want)
	}

	if gotQuery.Get("generator") != "search" ||
		gotQuery.Get("gsrsearch") != `incategory:"Impressionist_paintings" filetype:bitmap` ||
		gotQuery.Get("gsrnamespace") != "6" ||
		gotQuery.Get("gsroffset") != "40" ||
		gotQuery.Get("gsrlimit") != "5" ||
		gotQuery.Get("prop") != "imageinfo" ||
		gotQuery.Get("iiprop") != "url|extmetadata" ||
		gotQuery.Get("iiurlwidth") != "800" {
		t.Fatalf("query = %v, want search params encoded", gotQuery)
	}
	if gotUserAgent != defaultUserAgent {
		t.Fatalf("User-Agent = %q, want %q", gotUserAgent, defaultUserAgent)
	}
}

func TestClient_FetchCandidateEmptyPage(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"batchcomplete":true}`))
	})

	_, err := c.FetchCandidate(context.Background())
	if !errors.Is(err, domain.ErrNoCandidate) {
		t.Fatalf("FetchCandidate error = %v, want ErrNoCandidate", err)
	}
}

func TestClient_RetriesServerErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(QueryResponse{Query: &Query{Pages: map[string]Page{
			"1": {PageID: 1, Title: "File:A.jpg", ImageInfo: []ImageInfo{{ThumbURL: "https://img/a.jpg"}}},
		}}})
	})

	art, err := c.FetchCandidate(context.Background())
	if err != nil {
		t.Fatalf("FetchCandidate returned error: %v", err)
	}
	if art.Title != "A" || art.Artist != UnknownArtist {
		t.Fatalf("FetchCandidate = %#v, want filename title and unknown artist", art)
	}
	if got := calls.Load(); got != 3 {
		t.Fatalf("server calls = %d, want 3", got)
	}
}

func TestClient_GivesUpAfterRetries(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.FetchCandidate(context.Background())
	if !errors.Is(err, domain.ErrCatalogUnavailable) {
		t.Fatalf("FetchCandidate error = %v, want ErrCatalogUnavailable", err)
	}
	if got := calls.Load(); got != maxRetries+1 {
		t.Fatalf("server calls = %d, want %d", got, maxRetries+1)
	}
}

func TestClient_APIErrorAndBadJSON(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":{"code":"badvalue","info":"bad gsroffset"}}`))
	})
	if _, err := c.FetchCandidate(context.Background()); err == nil {
		t.Fatal("FetchCandidate returned nil error for API error")
	}

	bad := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	})
	if _, err := bad.FetchCandidate(context.Background()); err == nil {
		t.Fatal("FetchCandidate returned nil error for malformed JSON")
	}
}
