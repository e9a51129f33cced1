package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/agronomthe6th/tbot-v2-sub001/internal/core"
)

func newTestClient(url string) *Client {
	return New(Options{BaseURL: url})
}

func TestNew_TrimsTrailingSlash(t *testing.T) {
	c := New(Options{BaseURL: "http://localhost:8000/"})
	if c.baseURL != "http://localhost:8000" {
		t.Errorf("expected trimmed base URL, got %q", c.baseURL)
	}
}

func TestClient_SetsHeaders(t *testing.T) {
	var gotRequestID, gotAPIKey, gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequestID = r.Header.Get("X-Request-ID")
		gotAPIKey = r.Header.Get("X-API-Key")
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{"success":true,"matches_count":0,"matches":[]}`))
	}))
	defer server.Close()

	c := New(Options{BaseURL: server.URL, APIKey: "secret"})
	if _, err := c.TestPattern(context.Background(), `\d+`, "no digits"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotRequestID == "" {
		t.Error("expected X-Request-ID header")
	}
	if gotAPIKey != "secret" {
		t.Errorf("expected api key header, got %q", gotAPIKey)
	}
	if gotContentType != "application/json" {
		t.Errorf("expected json content type, got %q", gotContentType)
	}
}

func TestClient_NetworkError(t *testing.T) {
	c := newTestClient("http://127.0.0.1:1")

	_, err := c.FetchTickers(context.Background())
	if !errors.Is(err, core.ErrNetwork) {
		t.Errorf("expected ErrNetwork, got %v", err)
	}
}

func TestClient_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.FetchTickers(context.Background())
	if !errors.Is(err, core.ErrNetwork) {
		t.Errorf("expected ErrNetwork for 500, got %v", err)
	}
}

func TestClient_UndecodableBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.FetchTickers(context.Background())
	if !errors.Is(err, core.ErrBadPayload) {
		t.Errorf("expected ErrBadPayload, got %v", err)
	}
}

func TestClient_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newTestClient(server.URL)
	_, err := c.FetchTickers(ctx)
	if !errors.Is(err, core.ErrNetwork) {
		t.Errorf("expected ErrNetwork on cancelled context, got %v", err)
	}
}
