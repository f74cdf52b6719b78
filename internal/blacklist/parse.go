package blacklist

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/pgzip"
)

// headerKeys are first-row values treated as a column header and skipped.
var headerKeys = map[string]bool{
	"id":          true,
	"customer_id": true,
	"email":       true,
}

// cancelCheckEvery is the number of records read between context checks.
const cancelCheckEvery = 10_000

// isGzip reports whether path names a gzipped file.
func isGzip(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".gz")
}

// decompress wraps r in a parallel gzip reader when gzipped is set. The
// returned close function must always be called.
func decompress(r io.Reader, gzipped bool) (io.Reader, func() error, error) {
	if !gzipped {
		return r, func() error { return nil }, nil
	}

	gz, err := pgzip.NewReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	return gz, gz.Close, nil
}

// parse reads CSV records from r and collects the first column of each into a
// set. Blank keys, '#' comment lines and a leading header row are skipped.
func parse(ctx context.Context, r io.Reader) (*MapSet, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.Comment = '#'
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	set := NewSet(1024)

	for line := 0; ; line++ {
		if line%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv record: %w", err)
		}

		if len(record) == 0 {
			continue
		}
		if line == 0 && headerKeys[normalize(record[0])] {
			continue
		}
		set.Add(record[0])
	}

	return set, nil
}
