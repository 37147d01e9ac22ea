package postboard

import (
	"errors"
	"fmt"

	"github.com/pthm/postboard/lib/encoding"
)

// Encoder is an alias for encoding.Encoder for convenience.
type Encoder = encoding.Encoder

// Encodable is implemented by props that can encode themselves.
type Encodable = encoding.Encodable

// Decodable is implemented by props that can decode themselves.
type Decodable = encoding.Decodable

// NewEncoder creates a new encoder with the given signing key.
func NewEncoder(key []byte) (*Encoder, error) {
	return encoding.NewEncoder(key)
}

// wrapEncodingError maps encoding package errors onto postboard sentinels,
// keeping the original cause in the chain.
func wrapEncodingError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, encoding.ErrSignatureInvalid):
		return fmt.Errorf("%w: %w", ErrSignatureInvalid, err)
	case errors.Is(err, encoding.ErrInvalidFormat):
		return fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
	return err
}
