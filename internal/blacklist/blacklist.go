package blacklist

import (
	"context"
)

// Set is a read-only collection of blacklisted customer identifiers. Keys are
// customer IDs or email addresses, matched case-insensitively.
type Set interface {
	// Contains reports whether key is blacklisted.
	Contains(key string) bool

	// Size returns the number of distinct keys in the set.
	Size() int
}

// Loader defines the interface for loading blacklist files.
type Loader interface {
	// Load reads a CSV blacklist file, optionally gzipped, and returns its Set.
	Load(ctx context.Context, path string) (Set, error)
}
