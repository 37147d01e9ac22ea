package postboard

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
)

// binder is satisfied by anything embedding *Component[P].
type binder interface {
	bind(enc *Encoder, onError func(http.ResponseWriter, *http.Request, error))
}

// Registry manages component registration and routing.
type Registry struct {
	mu         sync.RWMutex
	mux        *http.ServeMux
	encoder    *Encoder
	components map[string]HXComponent

	// OnError is called when a component request fails. Replace it to
	// render application-specific error pages.
	OnError func(http.ResponseWriter, *http.Request, error)
}

// NewRegistry creates a registry that signs props with key.
func NewRegistry(key []byte) *Registry {
	enc, err := NewEncoder(key)
	if err != nil {
		panic(fmt.Sprintf("postboard: failed to create encoder: %v", err))
	}
	return &Registry{
		mux:        http.NewServeMux(),
		encoder:    enc,
		components: make(map[string]HXComponent),
		OnError:    defaultOnError,
	}
}

// defaultOnError maps sentinel errors onto status codes.
func defaultOnError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case IsNotFound(err):
		http.Error(w, "Not found", http.StatusNotFound)
	case IsDecodeError(err):
		http.Error(w, "Bad request", http.StatusBadRequest)
	case errors.Is(err, ErrMethodNotAllowed):
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	default:
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}
}

// Encoder returns the registry's encoder.
func (reg *Registry) Encoder() *Encoder {
	return reg.encoder
}

// Add registers components with the registry.
// Panics on a prefix collision so misconfiguration fails at startup.
func (reg *Registry) Add(components ...HXComponent) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	for _, comp := range components {
		prefix := comp.HXPrefix()
		if _, exists := reg.components[prefix]; exists {
			panic(fmt.Sprintf("postboard: prefix collision for %q", prefix))
		}
		if b, ok := comp.(binder); ok {
			b.bind(reg.encoder, reg.handleError)
		}
		reg.components[prefix] = comp
		reg.mux.HandleFunc(prefix+"/", comp.HXServeHTTP)
	}
}

// handleError defers to OnError at call time so it can be replaced after Add.
func (reg *Registry) handleError(w http.ResponseWriter, r *http.Request, err error) {
	reg.OnError(w, r, err)
}

// Handler returns the HTTP handler for component routes. Mount it at "/_c/".
//
// Mutating methods must carry the HX-Request header HTMX sends, which a
// cross-origin form cannot set.
func (reg *Registry) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead && !IsHTMX(r) {
			http.Error(w, "Forbidden: HTMX request required", http.StatusForbidden)
			return
		}
		reg.mux.ServeHTTP(w, r)
	})
}

// IsHTMX returns true if the request originated from HTMX.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
