package blob

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryStore is an in-process Store used by tests and credential-less local
// runs. Signed URLs are synthetic but carry the permission set and expiry in
// the same query parameters Azure uses, so callers can still inspect them.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

// List returns the keys under prefix in lexical order.
func (s *MemoryStore) List(_ context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var keys []string
	for k := range s.blobs {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Get returns a copy of the blob at key, or ErrNotFound.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.blobs[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

// Put stores a copy of data at key.
func (s *MemoryStore) Put(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.blobs[key] = append([]byte(nil), data...)
	return nil
}

// SignURL returns a synthetic URL of the form
// memory://container?sp=rl&se=2006-01-02T15:04:05Z.
func (s *MemoryStore) SignURL(scope Scope, expiry time.Time) (string, error) {
	perms := "rl"
	if scope == ScopeReadWrite {
		perms = "racwl"
	}
	return fmt.Sprintf("memory://container?sp=%s&se=%s",
		perms, expiry.UTC().Format(time.RFC3339)), nil
}
