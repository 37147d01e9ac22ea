// Package postboard is a small server-rendered component runtime for Go,
// templ and HTMX, and the home of the BlogPosts page built on it.
//
// # Components
//
// Components embed *Component[P] where P is the Props type. Props travel in
// the URL as signed msgpack and should carry only IDs; everything else is
// rebuilt in Hydrate.
//
//	type BlogPosts struct {
//	    *postboard.Component[Props]
//	    mounts *postboard.Mounts[State]
//	}
//
// The request lifecycle is Hydrate, then the action handler (if any), then
// Render. Serve implements that lifecycle; a component's HXServeHTTP is a
// one-line call to it.
//
// # Mounting
//
// A component that needs asynchronous work when it first appears keeps a
// Mounts table. Mount creates an Instance in its initial state and runs an
// Effect once in its own goroutine; the effect's result is applied exactly
// once, unless the instance was unmounted first, in which case it is
// dropped.
//
//	inst := mounts.Mount(Loading{}, c.fetchPosts)
//
// # Registration
//
//	reg := postboard.NewRegistry(key)
//	reg.Add(blogposts.New(posts.NewClient()))
//	http.Handle("/_c/", reg.Handler())
//
// Mutating requests must carry HX-Request: true, which HTMX always sends and
// cross-origin forms cannot.
package postboard
