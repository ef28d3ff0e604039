package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetcherRetriesServerErrors(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	f := NewFetcher("test-agent", 5*time.Second, 3, 0)

	body, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(body) != "ok" {
		t.Errorf("Fetch() body = %q, want %q", body, "ok")
	}
	if attempts != 3 {
		t.Errorf("server saw %d attempts, want 3", attempts)
	}
}

func TestFetcherDoesNotRetryClientErrors(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := NewFetcher("test-agent", 5*time.Second, 3, 0)

	if _, err := f.Fetch(context.Background(), server.URL); err == nil {
		t.Fatal("Fetch() expected error for 404")
	}
	if attempts != 1 {
		t.Errorf("server saw %d attempts, want 1", attempts)
	}
}

func TestFetcherSetsUserAgent(t *testing.T) {
	var agent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agent = r.Header.Get("User-Agent")
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	f := NewFetcher("tally-test/1.0", 5*time.Second, 1, 0)

	if _, err := f.Fetch(context.Background(), server.URL); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if agent != "tally-test/1.0" {
		t.Errorf("User-Agent = %q, want %q", agent, "tally-test/1.0")
	}
}

func TestPaceHonorsCancellation(t *testing.T) {
	f := NewFetcher("test-agent", time.Second, 1, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := f.Pace(ctx); err != context.Canceled {
		t.Errorf("Pace() error = %v, want context.Canceled", err)
	}
}

func TestPaceZeroDelay(t *testing.T) {
	f := NewFetcher("test-agent", time.Second, 1, 0)

	if err := f.Pace(context.Background()); err != nil {
		t.Errorf("Pace() error = %v", err)
	}
}
