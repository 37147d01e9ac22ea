package postboard

// Result[P] is returned from action handlers to describe the response.
//
// The dispatcher processes the Result after the handler returns: it applies
// headers, then either renders the component with the returned props or, for
// Skip, writes nothing but the status.
//
//	// Success - render with updated props
//	return postboard.OK(props)
//
//	// Failure - routed to the registry's OnError
//	return postboard.Err(props, err)
//
//	// Nothing to render
//	return postboard.Skip[Props]().Status(http.StatusNoContent)
type Result[P any] struct {
	props   P
	err     error
	trigger string
	headers map[string]string
	status  int
	skip    bool
}

// OK creates a success result that renders with the given props.
func OK[P any](props P) Result[P] {
	return Result[P]{props: props}
}

// Err creates a result that hands err to the OnError handler.
func Err[P any](props P, err error) Result[P] {
	return Result[P]{props: props, err: err}
}

// Skip creates a result that renders nothing.
func Skip[P any]() Result[P] {
	return Result[P]{skip: true}
}

// Trigger emits an event via the HX-Trigger header.
func (r Result[P]) Trigger(event string) Result[P] {
	r.trigger = event
	return r
}

// Header sets a response header.
func (r Result[P]) Header(key, value string) Result[P] {
	if r.headers == nil {
		r.headers = make(map[string]string)
	}
	r.headers[key] = value
	return r
}

// Status sets the HTTP status code. Zero keeps the default 200.
func (r Result[P]) Status(code int) Result[P] {
	r.status = code
	return r
}

// Props returns the props to render with.
func (r Result[P]) Props() P { return r.props }

// Err returns the error carried by the result, if any.
func (r Result[P]) Err() error { return r.err }

// TriggerEvent returns the HX-Trigger event name.
func (r Result[P]) TriggerEvent() string { return r.trigger }

// Headers returns the extra response headers.
func (r Result[P]) Headers() map[string]string { return r.headers }

// StatusCode returns the status, 0 meaning unset.
func (r Result[P]) StatusCode() int { return r.status }

// Skipped reports whether rendering is suppressed.
func (r Result[P]) Skipped() bool { return r.skip }
