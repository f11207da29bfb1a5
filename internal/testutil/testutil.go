// Package testutil provides the shared HTTP test harness: a wrapped
// httptest server with request helpers and fluent response assertions.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

// TestServer wraps an httptest server with helpers that return
// assertable responses.
type TestServer struct {
	t      *testing.T
	server *httptest.Server
}

// NewTestServer starts a test server around the given handler and
// closes it when the test finishes.
func NewTestServer(t *testing.T, handler http.Handler) *TestServer {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &TestServer{t: t, server: srv}
}

// URL returns the server's base URL.
func (s *TestServer) URL() string {
	return s.server.URL
}

// GET performs a GET request against the given path.
func (s *TestServer) GET(path string) *ResponseAssertion {
	s.t.Helper()
	resp, err := http.Get(s.server.URL + path)
	if err != nil {
		s.t.Fatalf("GET %s: %v", path, err)
	}
	return newAssertion(s.t, path, resp)
}

// GETWithQuery performs a GET request with query parameters.
func (s *TestServer) GETWithQuery(path string, query url.Values) *ResponseAssertion {
	s.t.Helper()
	return s.GET(path + "?" + query.Encode())
}

// POST performs a POST request with a JSON body.
func (s *TestServer) POST(path string, body interface{}) *ResponseAssertion {
	s.t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		s.t.Fatalf("encoding POST body for %s: %v", path, err)
	}
	resp, err := http.Post(s.server.URL+path, "application/json", bytes.NewReader(data))
	if err != nil {
		s.t.Fatalf("POST %s: %v", path, err)
	}
	return newAssertion(s.t, path, resp)
}

// Do performs an arbitrary request, for cases needing custom headers.
func (s *TestServer) Do(req *http.Request) *ResponseAssertion {
	s.t.Helper()
	req.URL, _ = url.Parse(s.server.URL + req.URL.String())
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		s.t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	return newAssertion(s.t, req.URL.Path, resp)
}

func newAssertion(t *testing.T, path string, resp *http.Response) *ResponseAssertion {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("reading response from %s: %v", path, err)
	}
	return &ResponseAssertion{t: t, path: path, resp: resp, body: body}
}
