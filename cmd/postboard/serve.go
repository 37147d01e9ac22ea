package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"

	postboardecho "github.com/pthm/postboard/adapters/echo"
	"github.com/pthm/postboard/components"
	"github.com/pthm/postboard/components/blogposts"
	"github.com/pthm/postboard/internal/config"
	"github.com/pthm/postboard/lib/posts"
)

func newServeCmd() *cobra.Command {
	var envFile string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags(), envFile)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, posts.NewClient())
		},
	}
	config.RegisterFlags(cmd.Flags())
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file to load if present")
	return cmd
}

// newServer wires the echo server and components.
func newServer(cfg config.Config, fetcher blogposts.Fetcher) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	var opts []postboardecho.Option
	if cfg.Key != "" {
		opts = append(opts, postboardecho.WithKey([]byte(cfg.Key)))
	}
	reg := postboardecho.Mount(e, opts...)
	components.Init(reg, fetcher)

	e.GET("/", func(c echo.Context) error {
		return postboardecho.Render(c, components.BlogPostsPage(c.Request().Context()))
	})
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"status":  "ok",
			"mounted": components.C.BlogPosts.Mounted(),
		})
	})
	return e
}

func serve(ctx context.Context, cfg config.Config, fetcher blogposts.Fetcher) error {
	e := newServer(cfg, fetcher)
	if cfg.Key == "" {
		e.Logger.Warn("no signing key configured; using a random key for this process")
	}

	go sweep(ctx, e, cfg)

	errc := make(chan error, 1)
	go func() {
		e.Logger.Infof("listening on %s", cfg.Addr)
		errc <- e.Start(cfg.Addr)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// sweep unmounts stale page instances until ctx is done.
func sweep(ctx context.Context, e *echo.Echo, cfg config.Config) {
	t := time.NewTicker(cfg.SweepInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := components.C.BlogPosts.Sweep(cfg.MountTTL); n > 0 {
				e.Logger.Infof("unmounted %d stale instances", n)
			}
		}
	}
}
