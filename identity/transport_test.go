package identity

import (
	"bytes"
	"log"
	"net/http"
	"net/url"
	"strings"
	"testing"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(prev) })
	return &buf
}

func TestLoggingTransportRedactsKey(t *testing.T) {
	buf := captureLog(t)
	tr := NewLoggingTransport(roundTripFunc(func(r *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody, Request: r}, nil
	}))

	req, _ := http.NewRequest(http.MethodPost, "https://example.test/v1/accounts:signUp?key=secret", nil)
	if _, err := tr.RoundTrip(req); err != nil {
		t.Fatalf("round trip: %v", err)
	}

	out := buf.String()
	if strings.Contains(out, "secret") {
		t.Fatalf("log leaked api key: %q", out)
	}
	if !strings.Contains(out, "key=REDACTED") || !strings.Contains(out, " 200 ") {
		t.Fatalf("unexpected log line: %q", out)
	}
}

func TestLoggingTransportRecoversPanic(t *testing.T) {
	captureLog(t)
	tr := NewLoggingTransport(roundTripFunc(func(*http.Request) (*http.Response, error) {
		panic("boom")
	}))

	req, _ := http.NewRequest(http.MethodGet, "https://example.test/", nil)
	resp, err := tr.RoundTrip(req)
	if err == nil || resp != nil {
		t.Fatalf("got resp=%v err=%v, want nil response and error", resp, err)
	}
}

func TestRedactURLWithoutKey(t *testing.T) {
	u, _ := url.Parse("https://example.test/health")
	if got := redactURL(u); got != "https://example.test/health" {
		t.Fatalf("redactURL = %q", got)
	}
}
