package metrics

import (
	"testing"
)

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()
	if reg == nil {
		t.Fatal("expected non-nil registry")
	}

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}

	// Should have go runtime metrics at minimum
	if len(mfs) == 0 {
		t.Error("expected some metrics to be registered")
	}
}

func TestRegistry_RecordRequest(t *testing.T) {
	reg := NewRegistry()

	reg.RecordRequest("GET", "/api/candles", 200, 0.05)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}

	found := false
	for _, mf := range mfs {
		if mf.GetName() == "backend_requests_total" {
			found = true
			break
		}
	}
	if !found {
		t.Error("expected backend_requests_total metric")
	}
}

func TestRegistry_BusinessMetrics(t *testing.T) {
	reg := NewRegistry()

	reg.RecordStoreLoad("candles", "ok")
	reg.RecordPatternTest("rejected")
	reg.RecordDiagnostic("force_reload", "ok")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}

	want := map[string]bool{
		"tbot_store_loads_total":   false,
		"tbot_pattern_tests_total": false,
		"tbot_diagnostics_total":   false,
	}
	for _, mf := range mfs {
		if _, ok := want[mf.GetName()]; ok {
			want[mf.GetName()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("expected %s metric", name)
		}
	}
}

func TestStatusToString(t *testing.T) {
	tests := []struct {
		status   int
		expected string
	}{
		{0, "error"},
		{100, "1xx"},
		{200, "2xx"},
		{201, "2xx"},
		{301, "3xx"},
		{404, "4xx"},
		{500, "5xx"},
		{503, "5xx"},
	}

	for _, tt := range tests {
		if got := statusToString(tt.status); got != tt.expected {
			t.Errorf("statusToString(%d) = %s, want %s", tt.status, got, tt.expected)
		}
	}
}
