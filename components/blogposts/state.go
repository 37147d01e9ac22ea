package blogposts

import "github.com/pthm/postboard/lib/posts"

// State is the view state of one mounted BlogPosts instance. It is exactly
// one of Loading, Failed or Loaded.
type State interface {
	isState()
}

// Loading is the state from mount until the fetch settles.
type Loading struct{}

// Failed holds the message of a failed fetch.
type Failed struct {
	Message string
}

// Loaded holds the posts in the order the API returned them.
type Loaded struct {
	Posts []posts.Post
}

func (Loading) isState() {}
func (Failed) isState()  {}
func (Loaded) isState()  {}

// fromFetch turns a fetch outcome into the settled state.
func fromFetch(list []posts.Post, err error) State {
	if err != nil {
		return Failed{Message: err.Error()}
	}
	return Loaded{Posts: list}
}
