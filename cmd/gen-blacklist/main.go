package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/klauspost/pgzip"
)

// gen-blacklist writes sample blacklist files for local runs.
// blacklist-emails.csv.gz lists emails, blacklist-ids.csv lists customer ids.
func main() {
	dataDir := flag.String("dir", "data/blacklist", "output directory")
	idCount := flag.Int("ids", 5, "number of random customer ids to write")
	flag.Parse()

	// Create directory if it doesn't exist
	if err := os.MkdirAll(*dataDir, 0o755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	emails := [][]string{
		{"email"},
		{"fraud@example.com"},
		{"chargeback@example.com"},
		{"B@GMAIL.COM"},
	}

	ids := [][]string{{"customer_id"}}
	for range *idCount {
		ids = append(ids, []string{uuid.NewString()})
	}

	files := map[string][][]string{
		"blacklist-emails.csv.gz": emails,
		"blacklist-ids.csv":       ids,
	}

	for filename, records := range files {
		filePath := filepath.Join(*dataDir, filename)

		if err := writeBlacklistFile(filePath, records); err != nil {
			log.Fatalf("Failed to create %s: %v", filename, err)
		}

		fmt.Printf("Created %s with %d entries\n", filePath, len(records)-1)
	}

	fmt.Println("\nSample blacklist files created successfully!")
	fmt.Printf("Set BLACKLIST_FILES=%s to load them.\n", strings.Join([]string{
		filepath.Join(*dataDir, "blacklist-emails.csv.gz"),
		filepath.Join(*dataDir, "blacklist-ids.csv"),
	}, ","))
}

func writeBlacklistFile(filePath string, records [][]string) (err error) {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if !strings.HasSuffix(filePath, ".gz") {
		return writeRecords(csv.NewWriter(file), records)
	}

	gz := pgzip.NewWriter(file)
	if err := writeRecords(csv.NewWriter(gz), records); err != nil {
		return err
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("failed to close gzip writer: %w", err)
	}
	return nil
}

func writeRecords(w *csv.Writer, records [][]string) error {
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}
	return nil
}
