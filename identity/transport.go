package identity

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"runtime/debug"
	"time"
)

// LoggingTransport logs one line per outgoing request and turns panics in
// the wrapped transport into errors. The "key" query parameter is redacted.
type LoggingTransport struct {
	next http.RoundTripper
}

// NewLoggingTransport wraps next, or http.DefaultTransport when next is nil.
func NewLoggingTransport(next http.RoundTripper) *LoggingTransport {
	if next == nil {
		next = http.DefaultTransport
	}
	return &LoggingTransport{next: next}
}

func (t *LoggingTransport) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("PANIC in transport: %v\n%s", r, debug.Stack())
			resp, err = nil, fmt.Errorf("transport panic: %v", r)
		}
	}()

	resp, err = t.next.RoundTrip(req)

	target := redactURL(req.URL)
	if err != nil {
		log.Printf("[%s] %s error %v: %v", req.Method, target, time.Since(start), err)
		return resp, err
	}
	log.Printf("[%s] %s %d %v", req.Method, target, resp.StatusCode, time.Since(start))
	return resp, nil
}

func redactURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	c := *u
	q := c.Query()
	if q.Has("key") {
		q.Set("key", "REDACTED")
		c.RawQuery = q.Encode()
	}
	return c.String()
}
