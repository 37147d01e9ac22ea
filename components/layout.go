package components

import (
	"context"

	"github.com/a-h/templ"
	"github.com/pthm/postboard/components/blogposts"
)

// BlogPostsPage mounts a fresh BlogPosts instance and returns the page
// showing it. Each call is one mount, so each call starts one fetch.
func BlogPostsPage(ctx context.Context) templ.Component {
	props := C.BlogPosts.Mount()
	return Layout(blogposts.Heading, C.BlogPosts.Render(ctx, props))
}
