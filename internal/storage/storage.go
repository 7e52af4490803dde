// Package storage provides the key/value "local storage" that the session
// and inquiry stores persist through.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Keys used by the application.
const (
	KeyUser      = "rentivo_user"
	KeyInquiries = "rentivo_inquiries"
)

// ErrCorrupt is returned when a stored value cannot be decoded.
var ErrCorrupt = errors.New("corrupt stored value")

// Store is a string key/value store with local-storage semantics:
// a missing key is not an error.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// GetJSON reads key and decodes it into v. It reports false when the key
// is absent. A value that is not valid JSON for v returns an error wrapping
// ErrCorrupt.
func GetJSON(ctx context.Context, s Store, key string, v any) (bool, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("decoding %s: %w: %v", key, ErrCorrupt, err)
	}
	return true, nil
}

// SetJSON encodes v and writes it under key.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := s.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}
