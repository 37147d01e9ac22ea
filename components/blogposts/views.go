package blogposts

import "github.com/a-h/templ"

// Text shown by the three views.
const (
	Heading        = "Blog Posts"
	LoadingMessage = "Loading posts..."
	FailurePrefix  = "Failed to fetch posts: "
)

// blogPostsView renders the instance. Until the fetch settles it is wrapped
// in a loader that asks the settle action for the final view.
func blogPostsView(c *BlogPosts, props Props) templ.Component {
	body := stateView(c, props)
	if !props.Settled {
		return c.Defer("settle", props, body)
	}
	return body
}
