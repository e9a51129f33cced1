package metrics

import (
	"net/http"
	"time"
)

// Transport is an http.RoundTripper that records backend request
// metrics around a base transport. Status 0 (transport-level failure)
// is reported under the "error" label.
type Transport struct {
	base http.RoundTripper
	reg  *Registry
}

// NewTransport wraps base with request metrics. A nil base means
// http.DefaultTransport.
func NewTransport(reg *Registry, base http.RoundTripper) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{base: base, reg: reg}
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.reg.InFlightInc()
	defer t.reg.InFlightDec()

	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	duration := time.Since(start).Seconds()

	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	t.reg.RecordRequest(req.Method, req.URL.Path, status, duration)

	return resp, err
}
