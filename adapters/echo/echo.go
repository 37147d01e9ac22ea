// Package postboardecho mounts postboard components on an Echo server.
//
//	e := echo.New()
//	reg := postboardecho.Mount(e, postboardecho.WithKey(key))
//	components.Init(reg, posts.NewClient())
package postboardecho

import (
	"crypto/rand"
	"fmt"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/pthm/postboard"
)

// Option configures Mount.
type Option func(*options)

type options struct {
	key []byte
}

// WithKey sets the props signing key. Without it a random key is generated,
// which invalidates every outstanding URL on restart.
func WithKey(key []byte) Option {
	return func(o *options) {
		o.key = key
	}
}

// Mount creates a registry and routes every component URL under /_c/ on e
// to it. Component prefixes are fixed to /_c/, so it mounts at the root.
func Mount(e *echo.Echo, opts ...Option) *postboard.Registry {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	key := o.key
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			panic(fmt.Sprintf("postboardecho: failed to generate random key: %v", err))
		}
	}

	reg := postboard.NewRegistry(key)
	e.Any("/_c/*", echo.WrapHandler(reg.Handler()))
	return reg
}

// Render writes a templ component to the Echo response.
func Render(c echo.Context, component templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	return component.Render(c.Request().Context(), c.Response())
}
