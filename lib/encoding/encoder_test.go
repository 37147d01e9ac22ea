package encoding

import (
	"errors"
	"strings"
	"testing"
)

// mountProps mirrors the shape of a mounted component's props.
type mountProps struct {
	MountID string
	Page    int64
}

func (p mountProps) HXEncode() map[string]any {
	return map[string]any{"m": p.MountID, "pg": p.Page}
}

func (p *mountProps) HXDecode(m map[string]any) error {
	if v, ok := m["m"].(string); ok {
		p.MountID = v
	}
	switch n := m["pg"].(type) {
	case int64:
		p.Page = n
	case int8:
		p.Page = int64(n)
	case uint8:
		p.Page = int64(n)
	case int:
		p.Page = int64(n)
	}
	return nil
}

func newTestEncoder(t *testing.T, key string) *Encoder {
	t.Helper()
	enc, err := NewEncoder([]byte(key))
	if err != nil {
		t.Fatalf("NewEncoder(%q) error = %v", key, err)
	}
	return enc
}

func TestNewEncoder(t *testing.T) {
	if _, err := NewEncoder([]byte("short")); err != nil {
		t.Errorf("short key: %v", err)
	}
	if _, err := NewEncoder([]byte("0123456789abcdef0123456789abcdef")); err != nil {
		t.Errorf("32-byte key: %v", err)
	}
	if _, err := NewEncoder(nil); err == nil {
		t.Error("empty key: expected error")
	}
}

func TestRoundTrip(t *testing.T) {
	enc := newTestEncoder(t, "test-key")
	original := mountProps{MountID: "5f0c7d0e-8d4b-4f0e-9a8e-2f1c3b1a0d11", Page: 3}

	token, err := enc.Encode(original)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if strings.Count(token, ".") != 1 {
		t.Fatalf("token %q should have one separator", token)
	}

	var decoded mountProps
	if err := enc.Decode(token, &decoded); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if decoded != original {
		t.Errorf("decoded = %+v, want %+v", decoded, original)
	}
}

func TestDecode_TamperedBody(t *testing.T) {
	enc := newTestEncoder(t, "test-key")

	a, _ := enc.Encode(mountProps{MountID: "a"})
	b, _ := enc.Encode(mountProps{MountID: "b"})
	bodyB, _, _ := strings.Cut(b, ".")
	_, sigA, _ := strings.Cut(a, ".")

	var decoded mountProps
	err := enc.Decode(bodyB+"."+sigA, &decoded)
	if !errors.Is(err, ErrSignatureInvalid) {
		t.Errorf("error = %v, want ErrSignatureInvalid", err)
	}
}

func TestDecode_InvalidFormat(t *testing.T) {
	enc := newTestEncoder(t, "test-key")

	tests := []struct {
		name  string
		token string
	}{
		{"no separator", "abcdef"},
		{"bad body", "!!!.abcd"},
		{"bad signature", "abcd.!!!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var decoded mountProps
			if err := enc.Decode(tt.token, &decoded); !errors.Is(err, ErrInvalidFormat) {
				t.Errorf("Decode(%q) error = %v, want ErrInvalidFormat", tt.token, err)
			}
		})
	}
}

func TestDecode_DifferentKey(t *testing.T) {
	token, err := newTestEncoder(t, "key-one").Encode(mountProps{MountID: "x"})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	var decoded mountProps
	err = newTestEncoder(t, "key-two").Decode(token, &decoded)
	if !errors.Is(err, ErrSignatureInvalid) {
		t.Errorf("error = %v, want ErrSignatureInvalid", err)
	}
}

func TestEncode_NotEncodable(t *testing.T) {
	enc := newTestEncoder(t, "test-key")
	if _, err := enc.Encode(struct{}{}); !errors.Is(err, ErrNotEncodable) {
		t.Errorf("error = %v, want ErrNotEncodable", err)
	}
	var target struct{}
	if err := enc.Decode("a.b", &target); !errors.Is(err, ErrNotDecodable) {
		t.Errorf("error = %v, want ErrNotDecodable", err)
	}
}
