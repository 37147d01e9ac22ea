package postboardecho

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/pthm/postboard/components/blogposts"
	"github.com/pthm/postboard/lib/posts"
)

type stubFetcher struct{ list []posts.Post }

func (f stubFetcher) Fetch(ctx context.Context) ([]posts.Post, error) { return f.list, nil }

func TestMount(t *testing.T) {
	e := echo.New()
	if reg := Mount(e); reg == nil {
		t.Fatal("Mount returned nil registry")
	}
}

func TestMountWithKey(t *testing.T) {
	e := echo.New()
	reg := Mount(e, WithKey([]byte("0123456789abcdef0123456789abcdef")))
	if reg == nil || reg.Encoder() == nil {
		t.Fatal("Mount returned registry without encoder")
	}
}

func TestCSRFProtection(t *testing.T) {
	e := echo.New()
	Mount(e)

	req := httptest.NewRequest(http.MethodDelete, "/_c/blogposts-00000000/unmount", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 for DELETE without HX-Request, got %d", rec.Code)
	}
}

func TestGETAllowed(t *testing.T) {
	e := echo.New()
	Mount(e)

	req := httptest.NewRequest(http.MethodGet, "/_c/unknown/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code == http.StatusForbidden {
		t.Error("GET request should not require HX-Request header")
	}
}

func TestComponentRoutedThroughEcho(t *testing.T) {
	e := echo.New()
	reg := Mount(e, WithKey([]byte("test-key")))
	comp := blogposts.New(stubFetcher{list: []posts.Post{{ID: "1", Title: "A", Body: "B"}}})
	reg.Add(comp)

	props := comp.Mount()
	req := httptest.NewRequest(http.MethodGet, comp.URL("settle", props), nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "<h2>A</h2><p>B</p>") {
		t.Errorf("body missing post: %s", rec.Body.String())
	}
}

func TestRender(t *testing.T) {
	e := echo.New()
	e.GET("/", func(c echo.Context) error {
		return Render(c, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			_, err := io.WriteString(w, "<p>hi</p>")
			return err
		}))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if got := rec.Header().Get(echo.HeaderContentType); got != echo.MIMETextHTMLCharsetUTF8 {
		t.Errorf("Content-Type = %q", got)
	}
	if rec.Body.String() != "<p>hi</p>" {
		t.Errorf("body = %q", rec.Body.String())
	}
}
