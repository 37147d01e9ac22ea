package postboard

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/a-h/templ"
)

// Handler is the signature of a component action.
type Handler[P any] func(ctx context.Context, props P, r *http.Request) Result[P]

type actionDef[P any] struct {
	name    string
	method  string
	handler Handler[P]
}

// Component[P] is the base type embedded by concrete components.
// P is the Props type carried in the URL.
//
//	type BlogPosts struct {
//	    *postboard.Component[Props]
//	    mounts *postboard.Mounts[State]
//	}
//
// Each instance receives a deterministic URL prefix derived from its name and
// the file:line that called New, so two instances never share routes.
type Component[P any] struct {
	name    string
	prefix  string
	actions map[string]*actionDef[P]
	encoder *Encoder
	onError func(http.ResponseWriter, *http.Request, error)
}

// New creates a component with the given name.
func New[P any](name string) *Component[P] {
	return &Component[P]{
		name:    name,
		prefix:  "/_c/" + name + "-" + componentHash(name, 1),
		actions: make(map[string]*actionDef[P]),
		onError: defaultOnError,
	}
}

// Name returns the component's name.
func (c *Component[P]) Name() string {
	return c.name
}

// Prefix returns the component's URL prefix.
func (c *Component[P]) Prefix() string {
	return c.prefix
}

// HXPrefix implements HXComponent.
func (c *Component[P]) HXPrefix() string {
	return c.prefix
}

// Action registers a named action handler. The method defaults to POST.
//
//	c.Action("settle", c.handleSettle).Method(http.MethodGet)
func (c *Component[P]) Action(name string, handler Handler[P]) *ActionBuilder {
	def := &actionDef[P]{name: name, method: http.MethodPost, handler: handler}
	c.actions[name] = def
	return &ActionBuilder{method: &def.method}
}

// Encoder returns the encoder bound by the registry, or nil before Add.
func (c *Component[P]) Encoder() *Encoder {
	return c.encoder
}

// bind is called by Registry.Add.
func (c *Component[P]) bind(enc *Encoder, onError func(http.ResponseWriter, *http.Request, error)) {
	c.encoder = enc
	c.onError = onError
}

// URL builds the URL of an action with props encoded in the query string.
// An empty action is the default render.
func (c *Component[P]) URL(action string, props P) string {
	path := c.prefix + "/" + action
	if c.encoder == nil {
		return path
	}
	encoded, err := c.encoder.Encode(props)
	if err != nil {
		return path
	}
	return path + "?p=" + url.QueryEscape(encoded)
}

// Defer returns a templ component that renders placeholder now and swaps in
// the response of action once the browser has loaded it. HTMX fires the
// "load" trigger exactly once per inserted element.
func (c *Component[P]) Defer(action string, props P, placeholder templ.Component) templ.Component {
	return lazyComponent(c.URL(action, props), placeholder, "load")
}

// Serve is the request dispatcher every component's HXServeHTTP delegates to.
// It decodes props, runs Hydrate, routes to the matching action and applies
// the Result. GET on the bare prefix renders.
func Serve[P any](c *Component[P], comp Lifecycle[P], w http.ResponseWriter, r *http.Request) {
	var props P
	if encoded := r.URL.Query().Get("p"); encoded != "" {
		if c.encoder == nil {
			c.onError(w, r, fmt.Errorf("%w: component %q not registered", ErrInvalidFormat, c.name))
			return
		}
		if err := c.encoder.Decode(encoded, &props); err != nil {
			c.onError(w, r, wrapEncodingError(err))
			return
		}
	}

	name := strings.Trim(strings.TrimPrefix(r.URL.Path, c.prefix), "/")
	var act *actionDef[P]
	if name != "" {
		act = c.actions[name]
		if act == nil {
			c.onError(w, r, fmt.Errorf("%w: action %q", ErrNotFound, name))
			return
		}
		if act.method != r.Method {
			c.onError(w, r, fmt.Errorf("%w: %s %s", ErrMethodNotAllowed, r.Method, name))
			return
		}
	} else if r.Method != http.MethodGet && r.Method != http.MethodHead {
		c.onError(w, r, fmt.Errorf("%w: %s render", ErrMethodNotAllowed, r.Method))
		return
	}

	if err := comp.Hydrate(r.Context(), &props); err != nil {
		c.onError(w, r, fmt.Errorf("%w: %w", ErrHydrationFailed, err))
		return
	}

	result := OK(props)
	if act != nil {
		result = act.handler(r.Context(), props, r)
	}
	c.apply(w, r, comp, result)
}

// apply writes a handler Result to the response.
func (c *Component[P]) apply(w http.ResponseWriter, r *http.Request, comp Renderer[P], result Result[P]) {
	if err := result.Err(); err != nil {
		c.onError(w, r, err)
		return
	}
	for k, v := range result.Headers() {
		w.Header().Set(k, v)
	}
	if t := result.TriggerEvent(); t != "" {
		w.Header().Set("HX-Trigger", t)
	}
	status := result.StatusCode()
	if result.Skipped() {
		if status != 0 {
			w.WriteHeader(status)
		}
		return
	}

	var buf bytes.Buffer
	if err := comp.Render(r.Context(), result.Props()).Render(r.Context(), &buf); err != nil {
		c.onError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if status != 0 {
		w.WriteHeader(status)
	}
	_, _ = buf.WriteTo(w)
}

// ActionBuilder configures a registered action.
type ActionBuilder struct {
	method *string
}

// Method overrides the default POST method.
func (ab *ActionBuilder) Method(m string) *ActionBuilder {
	*ab.method = m
	return ab
}

// componentHash derives 8 hex chars from the caller's file:line and name.
func componentHash(name string, skip int) string {
	_, file, line, ok := runtime.Caller(skip + 1)
	input := name
	if ok {
		// Base name only, so prefixes survive moving the checkout.
		input = fmt.Sprintf("%s:%d:%s", filepath.Base(file), line, name)
	}
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:4])
}

// lazyComponent wraps placeholder in an element that replaces itself with
// the response of url when trigger fires.
func lazyComponent(url string, placeholder templ.Component, trigger string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div hx-get="%s" hx-trigger="%s" hx-swap="outerHTML">`,
			templ.EscapeString(url), templ.EscapeString(trigger))
		if err != nil {
			return err
		}
		if placeholder != nil {
			if err := placeholder.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err = io.WriteString(w, `</div>`)
		return err
	})
}
