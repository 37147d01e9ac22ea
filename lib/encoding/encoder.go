// Package encoding packs component props into URL-safe tokens.
//
// Props are serialized with msgpack and signed with a truncated
// HMAC-SHA256, so they stay readable in the URL but cannot be forged.
package encoding

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Errors returned by Decode.
var (
	ErrInvalidFormat    = errors.New("encoding: invalid format")
	ErrSignatureInvalid = errors.New("encoding: signature verification failed")
	ErrNotEncodable     = errors.New("encoding: type does not implement Encodable")
	ErrNotDecodable     = errors.New("encoding: type does not implement Decodable")
)

// sigLen is the number of HMAC bytes kept in a token.
const sigLen = 16

// Encodable is implemented by props that can flatten themselves to a map.
type Encodable interface {
	HXEncode() map[string]any
}

// Decodable is implemented by props that can restore themselves from a map.
type Decodable interface {
	HXDecode(map[string]any) error
}

// Encoder signs and verifies props tokens with a single secret.
type Encoder struct {
	key []byte
}

// NewEncoder creates an encoder. Keys shorter than 32 bytes are stretched
// with SHA-256; an empty key is rejected.
func NewEncoder(key []byte) (*Encoder, error) {
	if len(key) == 0 {
		return nil, errors.New("encoding: empty key")
	}
	if len(key) < 32 {
		h := sha256.Sum256(key)
		key = h[:]
	}
	return &Encoder{key: key}, nil
}

// Encode returns "<base64 msgpack>.<base64 signature>".
func (e *Encoder) Encode(v any) (string, error) {
	enc, ok := v.(Encodable)
	if !ok {
		return "", ErrNotEncodable
	}

	packed, err := msgpack.Marshal(enc.HXEncode())
	if err != nil {
		return "", fmt.Errorf("encoding: marshal: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(packed) + "." +
		base64.RawURLEncoding.EncodeToString(e.sum(packed)), nil
}

// Decode verifies token and restores it into v, which must be Decodable.
func (e *Encoder) Decode(token string, v any) error {
	dec, ok := v.(Decodable)
	if !ok {
		return ErrNotDecodable
	}

	body, sig, found := strings.Cut(token, ".")
	if !found {
		return ErrInvalidFormat
	}
	packed, err := base64.RawURLEncoding.DecodeString(body)
	if err != nil {
		return ErrInvalidFormat
	}
	got, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil {
		return ErrInvalidFormat
	}
	if !hmac.Equal(got, e.sum(packed)) {
		return ErrSignatureInvalid
	}

	var data map[string]any
	if err := msgpack.Unmarshal(packed, &data); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return dec.HXDecode(data)
}

func (e *Encoder) sum(data []byte) []byte {
	mac := hmac.New(sha256.New, e.key)
	mac.Write(data)
	return mac.Sum(nil)[:sigLen]
}
