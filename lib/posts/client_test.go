package posts

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	s := httptest.NewServer(h)
	t.Cleanup(s.Close)
	return &Client{HTTP: s.Client(), URL: s.URL}
}

func TestNewClient(t *testing.T) {
	c := NewClient()
	if c.URL != Endpoint {
		t.Errorf("URL = %q, want %q", c.URL, Endpoint)
	}
	if c.HTTP.Timeout != 0 {
		t.Errorf("Timeout = %v, want none", c.HTTP.Timeout)
	}
}

func TestFetch_OK(t *testing.T) {
	var calls int
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.Method != http.MethodGet {
			t.Errorf("method = %s, want GET", r.Method)
		}
		if r.URL.RawQuery != "" {
			t.Errorf("query = %q, want none", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`[{"userId":1,"id":1,"title":"A","body":"B"},{"id":2,"title":"C","body":"D"}]`))
	})

	got, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	want := []Post{{ID: "1", Title: "A", Body: "B"}, {ID: "2", Title: "C", Body: "D"}}
	if len(got) != len(want) {
		t.Fatalf("got %d posts, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("post[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
	if calls != 1 {
		t.Errorf("server saw %d requests, want 1", calls)
	}
}

func TestFetch_MissingFieldsPassThrough(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"id":7}]`))
	})

	got, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(got) != 1 || got[0] != (Post{ID: "7"}) {
		t.Errorf("got %+v, want [{ID:7}]", got)
	}
}

func TestFetch_EmptyArray(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	got, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d posts, want 0", len(got))
	}
}

func TestFetch_StatusError(t *testing.T) {
	tests := []struct {
		name string
		code int
		want string
	}{
		{"not found", http.StatusNotFound, "Error: 404 Not Found"},
		{"server error", http.StatusInternalServerError, "Error: 500 Internal Server Error"},
		{"bad gateway", http.StatusBadGateway, "Error: 502 Bad Gateway"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "upstream err", tt.code)
			})

			_, err := c.Fetch(context.Background())
			var serr *StatusError
			if !errors.As(err, &serr) {
				t.Fatalf("error = %v, want *StatusError", err)
			}
			if serr.Code != tt.code {
				t.Errorf("Code = %d, want %d", serr.Code, tt.code)
			}
			if err.Error() != tt.want {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.want)
			}
		})
	}
}

func TestFetch_CustomReasonPhrase(t *testing.T) {
	c := &Client{
		URL: "http://posts.test/",
		HTTP: &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			rec := httptest.NewRecorder()
			rec.WriteHeader(http.StatusTeapot)
			resp := rec.Result()
			resp.Status = "418 Short And Stout"
			return resp, nil
		})},
	}

	_, err := c.Fetch(context.Background())
	if err == nil || err.Error() != "Error: 418 Short And Stout" {
		t.Errorf("error = %v, want %q", err, "Error: 418 Short And Stout")
	}
}

func TestFetch_TransportError(t *testing.T) {
	c := &Client{
		URL: "http://posts.test/",
		HTTP: &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
			return nil, errors.New("Network Error")
		})},
	}

	_, err := c.Fetch(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "Network Error" {
		t.Errorf("Error() = %q, want %q", err.Error(), "Network Error")
	}
}

func TestFetch_InvalidJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	})

	if _, err := c.Fetch(context.Background()); err == nil {
		t.Fatal("expected JSON decode error, got nil")
	}
}

func TestFetch_TrailingGarbage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1,"title":"A","body":"B"}] not json`))
	})

	got, err := c.Fetch(context.Background())
	if err == nil {
		t.Fatalf("expected parse error, got posts %+v", got)
	}
	if got != nil {
		t.Errorf("posts = %+v, want nil on parse failure", got)
	}
}

func TestFetch_MalformedRecordsPassThrough(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1,"title":"A","body":"B"},{"id":"x2","title":42,"body":"D"},{"title":true,"body":null},7]`))
	})

	got, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	want := []Post{
		{ID: "1", Title: "A", Body: "B"},
		{ID: "x2", Title: "42", Body: "D"},
		{},
		{},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d posts, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("post[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestFetch_Cancelled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Fetch(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
