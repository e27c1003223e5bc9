// Package takelog keeps a durable journal of accepted takes in SQLite.
//
// The journal is bookkeeping on top of the retained WAV artifacts: which
// sentence each file belongs to, what the recognizer heard, and how accurate
// the read was. It is strictly advisory — a failed journal write is logged
// and ignored, and it never participates in the checkpoint protocol.
package takelog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Take is one accepted recording attempt.
type Take struct {
	// SentenceIndex is the 1-based position of the sentence in the corpus.
	SentenceIndex int
	// Sentence is the reference text that was read.
	Sentence string
	// Path is the retained WAV artifact.
	Path string
	// Transcript is what the recognizer heard; empty for failed recognition.
	Transcript string
	// Accuracy is the scored similarity percentage.
	Accuracy float64
	// RecordedAt is when the take was accepted.
	RecordedAt time.Time
}

// Summary aggregates the journal for the end-of-session report.
type Summary struct {
	// Takes is the number of accepted takes.
	Takes int
	// MeanAccuracy is the average accuracy over all accepted takes; zero
	// when the journal is empty.
	MeanAccuracy float64
}

// Store is a SQLite-backed take journal.
type Store struct {
	db    *sql.DB
	clock func() time.Time
}

// Open opens (creating if necessary) the journal database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("takelog: create journal dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("takelog: open sqlite: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("takelog: ping sqlite: %w", err)
	}

	s := &Store{db: db, clock: time.Now}
	if err := s.initSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initSchema(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS takes (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	sentence_index INTEGER NOT NULL,
	sentence       TEXT NOT NULL,
	path           TEXT NOT NULL,
	transcript     TEXT NOT NULL,
	accuracy       REAL NOT NULL,
	recorded_at    INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_takes_sentence ON takes(sentence_index);`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("takelog: init schema: %w", err)
	}
	return nil
}

// Record appends one accepted take to the journal. A zero RecordedAt is
// filled with the current time.
func (s *Store) Record(ctx context.Context, t Take) error {
	recordedAt := t.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = s.clock()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO takes (sentence_index, sentence, path, transcript, accuracy, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		t.SentenceIndex, t.Sentence, t.Path, t.Transcript, t.Accuracy, recordedAt.Unix())
	if err != nil {
		return fmt.Errorf("takelog: insert take: %w", err)
	}
	return nil
}

// ForSentence returns all journalled takes for a 1-based sentence index,
// oldest first.
func (s *Store) ForSentence(ctx context.Context, sentenceIndex int) ([]Take, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT sentence_index, sentence, path, transcript, accuracy, recorded_at
		FROM takes
		WHERE sentence_index = ?
		ORDER BY id ASC`, sentenceIndex)
	if err != nil {
		return nil, fmt.Errorf("takelog: query takes: %w", err)
	}
	defer rows.Close()

	var takes []Take
	for rows.Next() {
		var t Take
		var unix int64
		if err := rows.Scan(&t.SentenceIndex, &t.Sentence, &t.Path, &t.Transcript, &t.Accuracy, &unix); err != nil {
			return nil, fmt.Errorf("takelog: scan take: %w", err)
		}
		t.RecordedAt = time.Unix(unix, 0)
		takes = append(takes, t)
	}
	return takes, rows.Err()
}

// Summarize aggregates the whole journal.
func (s *Store) Summarize(ctx context.Context) (Summary, error) {
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(*), COALESCE(AVG(accuracy), 0) FROM takes`)

	var sum Summary
	if err := row.Scan(&sum.Takes, &sum.MeanAccuracy); err != nil {
		return Summary{}, fmt.Errorf("takelog: scan summary: %w", err)
	}
	return sum, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
