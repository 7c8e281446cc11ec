// Package memory is the in-process preference store. Entries live until the
// process exits.
package memory

import (
	"context"
	"errors"
	"strings"

	"github.com/patrickmn/go-cache"
)

var ErrEmptyKey = errors.New("empty key")

type Store struct {
	c *cache.Cache
}

func New() *Store {
	return &Store{c: cache.New(cache.NoExpiration, 0)}
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := s.c.Get(key)
	if !ok {
		return "", false, nil
	}
	str, _ := v.(string)
	return str, true, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	if strings.TrimSpace(key) == "" {
		return ErrEmptyKey
	}
	s.c.Set(key, value, cache.NoExpiration)
	return nil
}
