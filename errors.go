package postboard

import "errors"

// Sentinel errors for component requests.
var (
	ErrNotFound         = errors.New("postboard: resource not found")
	ErrSignatureInvalid = errors.New("postboard: signature verification failed")
	ErrInvalidFormat    = errors.New("postboard: invalid parameter format")
	ErrHydrationFailed  = errors.New("postboard: hydration failed")
	ErrMethodNotAllowed = errors.New("postboard: method not allowed")
)

// IsNotFound checks if err is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDecodeError checks if err came from a malformed or forged props token.
func IsDecodeError(err error) bool {
	return errors.Is(err, ErrInvalidFormat) || errors.Is(err, ErrSignatureInvalid)
}
