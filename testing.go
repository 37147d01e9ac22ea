package postboard

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
)

// TestResult holds the outcome of rendering a component in a test.
type TestResult struct {
	HTML       string
	StatusCode int
	Headers    http.Header
}

// TestRender runs Hydrate and Render against props directly, without any
// HTTP encoding or routing.
//
//	result, err := postboard.TestRender(comp, props)
//	if !result.HTMLContains("Loading posts...") { ... }
func TestRender[P any](comp Lifecycle[P], props P) (*TestResult, error) {
	return TestRenderWithContext(context.Background(), comp, props)
}

// TestRenderWithContext is TestRender with a caller-supplied context.
func TestRenderWithContext[P any](ctx context.Context, comp Lifecycle[P], props P) (*TestResult, error) {
	if err := comp.Hydrate(ctx, &props); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := comp.Render(ctx, props).Render(ctx, &buf); err != nil {
		return nil, err
	}

	return &TestResult{
		HTML:       buf.String(),
		StatusCode: http.StatusOK,
		Headers:    make(http.Header),
	}, nil
}

// TestAction sends an HTMX request through comp's HXServeHTTP and records
// the response.
func TestAction(ctx context.Context, comp HXComponent, method, target string) *TestResult {
	req := httptest.NewRequest(method, target, nil).WithContext(ctx)
	req.Header.Set("HX-Request", "true")

	rec := httptest.NewRecorder()
	comp.HXServeHTTP(rec, req)

	return &TestResult{
		HTML:       rec.Body.String(),
		StatusCode: rec.Code,
		Headers:    rec.Header(),
	}
}

// TestGet is TestAction with GET and a background context.
func TestGet(comp HXComponent, target string) *TestResult {
	return TestAction(context.Background(), comp, http.MethodGet, target)
}

// TestDelete is TestAction with DELETE and a background context.
func TestDelete(comp HXComponent, target string) *TestResult {
	return TestAction(context.Background(), comp, http.MethodDelete, target)
}

// HTMLContains checks if the HTML contains a substring.
func (r *TestResult) HTMLContains(substr string) bool {
	return strings.Contains(r.HTML, substr)
}

// HTMLContainsAll checks if the HTML contains all the given substrings.
func (r *TestResult) HTMLContainsAll(substrs ...string) bool {
	for _, s := range substrs {
		if !strings.Contains(r.HTML, s) {
			return false
		}
	}
	return true
}

// HTMLContainsAny checks if the HTML contains any of the given substrings.
func (r *TestResult) HTMLContainsAny(substrs ...string) bool {
	for _, s := range substrs {
		if strings.Contains(r.HTML, s) {
			return true
		}
	}
	return false
}

// Count returns the number of non-overlapping occurrences of substr.
func (r *TestResult) Count(substr string) int {
	return strings.Count(r.HTML, substr)
}

// HasStatus checks if the status code matches.
func (r *TestResult) HasStatus(code int) bool {
	return r.StatusCode == code
}

// GetHeader returns the value of a header.
func (r *TestResult) GetHeader(key string) string {
	return r.Headers.Get(key)
}
