// Package corpus loads the target sentence list for a recording session.
//
// The source is a CSV file with one record per line; the first field of each
// record is the sentence text. The list is read once at startup and is
// immutable for the lifetime of the session — sentence identity is simply the
// position in the returned slice.
package corpus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Load reads the sentence list from the CSV file at path. Empty records,
// records whose first field is blank, and malformed lines are skipped.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("corpus: open %q: %w", path, err)
	}
	defer f.Close()

	sentences, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("corpus: read %q: %w", path, err)
	}
	return sentences, nil
}

// LoadFromReader reads sentences from CSV data in r. Useful in tests where
// the corpus is constructed from a string literal.
func LoadFromReader(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var sentences []string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Malformed line: skip it rather than abort the whole corpus.
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				continue
			}
			return nil, err
		}
		if len(record) == 0 {
			continue
		}
		sentence := strings.TrimSpace(record[0])
		if sentence == "" {
			continue
		}
		sentences = append(sentences, sentence)
	}
	return sentences, nil
}
