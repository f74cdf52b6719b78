package blacklist

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Registry is the union of all configured blacklist files. It is read-only
// after construction and safe for concurrent use.
type Registry struct {
	set   *MapSet
	files []string
}

// NewRegistry loads every file concurrently and merges them. Any failed file
// aborts construction. An empty file list yields an empty registry.
func NewRegistry(ctx context.Context, files []string, loader Loader, logger zerolog.Logger) (*Registry, error) {
	logger = logger.With().Str("component", "blacklist-registry").Logger()

	logger.Info().
		Int("file_count", len(files)).
		Msg("initialising blacklist registry")

	sets := make([]Set, len(files))

	g, gctx := errgroup.WithContext(ctx)
	for i, path := range files {
		g.Go(func() error {
			set, err := loader.Load(gctx, path)
			if err != nil {
				return fmt.Errorf("failed to load blacklist file %s: %w", path, err)
			}
			sets[i] = set
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("failed to initialise blacklist registry")
		return nil, err
	}

	union := NewSet(0)
	for i, set := range sets {
		if err := mergeInto(union, set); err != nil {
			return nil, fmt.Errorf("failed to merge blacklist file %s: %w", files[i], err)
		}
	}

	logger.Info().
		Int("total_entries", union.Size()).
		Msg("blacklist registry initialised successfully")

	return &Registry{set: union, files: append([]string(nil), files...)}, nil
}

// Contains reports whether key appears in any loaded file.
func (r *Registry) Contains(key string) bool {
	return r.set.Contains(key)
}

// Size returns the number of distinct keys across all files.
func (r *Registry) Size() int {
	return r.set.Size()
}

// Files returns the paths the registry was built from.
func (r *Registry) Files() []string {
	return append([]string(nil), r.files...)
}

func mergeInto(dst *MapSet, src Set) error {
	m, ok := src.(*MapSet)
	if !ok {
		return fmt.Errorf("unsupported set type %T", src)
	}
	dst.merge(m)
	return nil
}
