package cache

import (
	"encoding/json"
	"fmt"
	"time"
)

// GetTyped decodes the payload stored under key into T.
func GetTyped[T any](s *Store, key string) (T, time.Time, error) {
	var v T
	data, saved, err := s.Get(key)
	if err != nil {
		return v, time.Time{}, err
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, time.Time{}, fmt.Errorf("cache: decode %q: %w", key, err)
	}
	return v, saved, nil
}

// PutTyped encodes value as JSON and stores it under key.
func PutTyped[T any](s *Store, key string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: marshal %q: %w", key, err)
	}
	return s.Put(key, data)
}
