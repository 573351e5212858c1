// Package blob is the storage boundary for the scoreboard server. Everything
// durable lives as whole JSON documents in one object-store container, and
// clients are handed time-boxed signed URLs so bulk game data never routes
// through this process.
package blob

import (
	"context"
	"errors"
	"time"
)

// Scope selects the permissions carried by a signed container URL.
type Scope int

const (
	// ScopeRead grants read and list on the whole container.
	ScopeRead Scope = iota
	// ScopeReadWrite additionally grants write and create.
	ScopeReadWrite
)

var (
	// ErrNotFound is returned by Get when no blob exists at the key.
	ErrNotFound = errors.New("blob not found")

	// ErrNoCredential is returned by SignURL when the store was not
	// constructed with credentials capable of signing delegation URLs.
	ErrNoCredential = errors.New("store cannot sign delegation URLs")
)

// Store is a single container of named blobs.
type Store interface {
	// List returns the keys of all blobs whose name starts with prefix.
	List(ctx context.Context, prefix string) ([]string, error)

	// Get returns the contents of the blob at key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put writes data to key, overwriting any existing blob.
	Put(ctx context.Context, key string, data []byte) error

	// SignURL returns a container-wide delegation URL valid until expiry.
	SignURL(scope Scope, expiry time.Time) (string, error)
}
