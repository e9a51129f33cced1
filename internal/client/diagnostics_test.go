package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/agronomthe6th/tbot-v2-sub001/internal/core"
)

func TestCheckCoverage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/candles/coverage" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"ticker":"SBER","expected":30,"present":28}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	report, err := c.CheckCoverage(context.Background(), "SBER", 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report["present"] != float64(28) {
		t.Errorf("unexpected report: %v", report)
	}
}

func TestForceReload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/candles/reload" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}

		var req loadRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Ticker != "GAZP" || req.Days != 30 {
			t.Errorf("unexpected body: %+v", req)
		}

		w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	if err := c.ForceReload(context.Background(), "GAZP", 30); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestManualLoad_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/candles/load" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"success":false,"error":"unknown ticker"}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	err := c.ManualLoad(context.Background(), "NOPE", 30)
	if !errors.Is(err, core.ErrBackendRejected) {
		t.Fatalf("expected ErrBackendRejected, got %v", err)
	}

	var ce *core.Error
	if errors.As(err, &ce) && ce.Message != "unknown ticker" {
		t.Errorf("backend message not kept verbatim: %q", ce.Message)
	}
}

func TestBulkLoad(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/candles/bulk_load" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}

		var req loadRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Ticker != "" || req.Days != 90 {
			t.Errorf("unexpected body: %+v", req)
		}

		w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	if err := c.BulkLoad(context.Background(), 90); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
