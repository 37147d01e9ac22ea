// Package blogposts renders the list of posts fetched from the placeholder
// API, with loading and error views.
package blogposts

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/pthm/postboard"
	"github.com/pthm/postboard/lib/posts"
)

// Fetcher loads the posts shown by the component.
type Fetcher interface {
	Fetch(ctx context.Context) ([]posts.Post, error)
}

// Props identifies a mounted instance. State is rebuilt by Hydrate.
type Props struct {
	MountID string

	State   State
	Settled bool
}

// HXEncode encodes props to a map for serialization.
func (p Props) HXEncode() map[string]any {
	return map[string]any{"m": p.MountID}
}

// HXDecode decodes props from a map.
func (p *Props) HXDecode(m map[string]any) error {
	if v, ok := m["m"].(string); ok {
		p.MountID = v
	}
	return nil
}

// BlogPosts shows the posts list. Every page view mounts its own instance,
// which fetches exactly once.
type BlogPosts struct {
	*postboard.Component[Props]
	mounts  *postboard.Mounts[State]
	fetcher Fetcher
}

// New creates a BlogPosts component that loads posts through fetcher.
func New(fetcher Fetcher) *BlogPosts {
	c := &BlogPosts{
		Component: postboard.New[Props]("blogposts"),
		mounts:    postboard.NewMounts[State]().OnPanic(failedFromPanic),
		fetcher:   fetcher,
	}
	c.Action("settle", c.handleSettle).Method(http.MethodGet)
	c.Action("unmount", c.handleUnmount).Method(http.MethodDelete)
	return c
}

// Mount creates a new instance and starts its fetch. The returned props
// render the loading view.
func (c *BlogPosts) Mount() Props {
	inst := c.mounts.Mount(Loading{}, c.fetchPosts)
	return Props{MountID: inst.ID(), State: Loading{}}
}

// Unmount tears an instance down. A fetch still in flight is cancelled and
// its result dropped.
func (c *BlogPosts) Unmount(id string) bool {
	return c.mounts.Unmount(id)
}

// Sweep unmounts instances older than maxAge.
func (c *BlogPosts) Sweep(maxAge time.Duration) int {
	return c.mounts.Sweep(maxAge)
}

// Mounted returns the number of live instances.
func (c *BlogPosts) Mounted() int {
	return c.mounts.Len()
}

func (c *BlogPosts) fetchPosts(ctx context.Context) State {
	return fromFetch(c.fetcher.Fetch(ctx))
}

// failedFromPanic turns a panicking fetch into the error view.
func failedFromPanic(v any) State {
	return Failed{Message: fmt.Sprint(v)}
}

// Hydrate loads the instance's current state.
func (c *BlogPosts) Hydrate(ctx context.Context, props *Props) error {
	inst, err := c.mounts.Get(props.MountID)
	if err != nil {
		return err
	}
	props.State = inst.State()
	props.Settled = inst.Settled()
	return nil
}

// Render produces the HTML output.
func (c *BlogPosts) Render(ctx context.Context, props Props) templ.Component {
	return blogPostsView(c, props)
}

// HXServeHTTP handles HTTP requests for this component.
func (c *BlogPosts) HXServeHTTP(w http.ResponseWriter, r *http.Request) {
	postboard.Serve(c.Component, c, w, r)
}

// handleSettle blocks until the fetch settles, then renders the result.
func (c *BlogPosts) handleSettle(ctx context.Context, props Props, r *http.Request) postboard.Result[Props] {
	inst, err := c.mounts.Get(props.MountID)
	if err != nil {
		return postboard.Err(props, err)
	}
	state, err := inst.Wait(ctx)
	if err != nil {
		return postboard.Err(props, err)
	}
	props.State = state
	props.Settled = true
	return postboard.OK(props)
}

func (c *BlogPosts) handleUnmount(ctx context.Context, props Props, r *http.Request) postboard.Result[Props] {
	c.mounts.Unmount(props.MountID)
	return postboard.Skip[Props]().Status(http.StatusNoContent)
}
