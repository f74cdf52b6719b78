package blacklist

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for reading blacklist files from disk.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based blacklist loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "blacklist-loader").Logger(),
	}
}

// Load reads a CSV blacklist file. Files ending in .gz are decompressed.
func (l *fileLoader) Load(ctx context.Context, path string) (Set, error) {
	l.logger.Info().Str("file", path).Msg("loading blacklist file")

	file, err := os.Open(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to open blacklist file")
		return nil, fmt.Errorf("failed to open blacklist file %s: %w", path, err)
	}
	defer file.Close()

	r, closeReader, err := decompress(file, isGzip(path))
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to create gzip reader")
		return nil, fmt.Errorf("failed to read blacklist file %s: %w", path, err)
	}
	defer closeReader()

	set, err := parse(ctx, r)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("error reading blacklist file")
		return nil, fmt.Errorf("error reading blacklist file %s: %w", path, err)
	}

	l.logger.Info().
		Str("file", path).
		Int("entries_loaded", set.Size()).
		Msg("blacklist file loaded successfully")

	return set, nil
}
