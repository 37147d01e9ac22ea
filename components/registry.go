package components

import (
	"github.com/pthm/postboard"
	"github.com/pthm/postboard/components/blogposts"
)

// C holds all component instances.
var C struct {
	BlogPosts *blogposts.BlogPosts
}

// Init creates all components and registers them with reg.
// Call this once at application startup before handling requests.
func Init(reg *postboard.Registry, fetcher blogposts.Fetcher) {
	C.BlogPosts = blogposts.New(fetcher)

	reg.Add(C.BlogPosts)
}
