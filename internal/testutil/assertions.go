package testutil

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
)

// ResponseAssertion wraps a completed response for fluent checks. Every
// assertion returns the receiver so checks can chain.
type ResponseAssertion struct {
	t    *testing.T
	path string
	resp *http.Response
	body []byte
}

// Status asserts the response status code.
func (a *ResponseAssertion) Status(want int) *ResponseAssertion {
	a.t.Helper()
	if a.resp.StatusCode != want {
		a.t.Errorf("%s: status = %d, want %d (body: %.200s)",
			a.path, a.resp.StatusCode, want, a.body)
	}
	return a
}

// ContentType asserts the Content-Type header starts with want.
func (a *ResponseAssertion) ContentType(want string) *ResponseAssertion {
	a.t.Helper()
	got := a.resp.Header.Get("Content-Type")
	if !strings.HasPrefix(got, want) {
		a.t.Errorf("%s: content type = %q, want prefix %q", a.path, got, want)
	}
	return a
}

// Header asserts an exact header value.
func (a *ResponseAssertion) Header(name, want string) *ResponseAssertion {
	a.t.Helper()
	if got := a.resp.Header.Get(name); got != want {
		a.t.Errorf("%s: header %s = %q, want %q", a.path, name, got, want)
	}
	return a
}

// Contains asserts the body contains the substring.
func (a *ResponseAssertion) Contains(want string) *ResponseAssertion {
	a.t.Helper()
	if !strings.Contains(string(a.body), want) {
		a.t.Errorf("%s: body missing %q (body: %.300s)", a.path, want, a.body)
	}
	return a
}

// NotContains asserts the body does not contain the substring.
func (a *ResponseAssertion) NotContains(unwanted string) *ResponseAssertion {
	a.t.Helper()
	if strings.Contains(string(a.body), unwanted) {
		a.t.Errorf("%s: body should not contain %q", a.path, unwanted)
	}
	return a
}

// BodyEmpty asserts the response carried no body.
func (a *ResponseAssertion) BodyEmpty() *ResponseAssertion {
	a.t.Helper()
	if len(a.body) != 0 {
		a.t.Errorf("%s: expected empty body, got %.200s", a.path, a.body)
	}
	return a
}

// JSON decodes the body into out, failing the test on bad JSON.
func (a *ResponseAssertion) JSON(out interface{}) *ResponseAssertion {
	a.t.Helper()
	if err := json.Unmarshal(a.body, out); err != nil {
		a.t.Fatalf("%s: decoding JSON body: %v (body: %.300s)", a.path, err, a.body)
	}
	return a
}

// Body returns the raw response body.
func (a *ResponseAssertion) Body() []byte {
	return a.body
}
