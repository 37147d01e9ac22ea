package postboard

import (
	"context"
	"net/http"

	"github.com/a-h/templ"
)

// Hydrater is implemented by components to rebuild request state from the
// lean props carried in the URL. It runs once per request, before any
// handler.
type Hydrater[P any] interface {
	Hydrate(ctx context.Context, props *P) error
}

// Renderer is implemented by components to produce templ output. Render
// must be pure: it reads props and produces HTML without side effects.
type Renderer[P any] interface {
	Render(ctx context.Context, props P) templ.Component
}

// Lifecycle is the pair every served component implements.
type Lifecycle[P any] interface {
	Hydrater[P]
	Renderer[P]
}

// HXComponent is what the Registry routes requests to.
//
// HXPrefix returns the unique URL prefix for this component instance.
// HXServeHTTP handles all HTTP requests below that prefix.
type HXComponent interface {
	HXPrefix() string
	HXServeHTTP(w http.ResponseWriter, r *http.Request)
}
