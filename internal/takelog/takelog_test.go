package takelog

import (
	"context"
	"math"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "takes.sqlite"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_RecordAndQuery(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	ctx := context.Background()

	recordedAt := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	take := Take{
		SentenceIndex: 3,
		Sentence:      "안녕하세요",
		Path:          "recordings/sentence_3_20260831_120000.wav",
		Transcript:    "안녕하세요",
		Accuracy:      100.0,
		RecordedAt:    recordedAt,
	}
	if err := s.Record(ctx, take); err != nil {
		t.Fatalf("Record: %v", err)
	}

	got, err := s.ForSentence(ctx, 3)
	if err != nil {
		t.Fatalf("ForSentence: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d takes, want 1", len(got))
	}
	if got[0].Sentence != take.Sentence || got[0].Path != take.Path || got[0].Accuracy != take.Accuracy {
		t.Errorf("roundtrip take = %+v, want %+v", got[0], take)
	}
	if !got[0].RecordedAt.Equal(recordedAt) {
		t.Errorf("recorded_at = %v, want %v", got[0].RecordedAt, recordedAt)
	}
}

func TestStore_ForSentenceEmpty(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	got, err := s.ForSentence(context.Background(), 42)
	if err != nil {
		t.Fatalf("ForSentence: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d takes for unrecorded sentence, want 0", len(got))
	}
}

func TestStore_RecordFillsTimestamp(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s.clock = func() time.Time { return fixed }

	if err := s.Record(context.Background(), Take{SentenceIndex: 1, Sentence: "x", Path: "x.wav"}); err != nil {
		t.Fatalf("Record: %v", err)
	}

	got, err := s.ForSentence(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || !got[0].RecordedAt.Equal(fixed) {
		t.Errorf("recorded_at = %v, want clock value %v", got[0].RecordedAt, fixed)
	}
}

func TestStore_Summarize(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	ctx := context.Background()

	empty, err := s.Summarize(ctx)
	if err != nil {
		t.Fatalf("Summarize on empty journal: %v", err)
	}
	if empty.Takes != 0 || empty.MeanAccuracy != 0 {
		t.Errorf("empty summary = %+v, want zeroes", empty)
	}

	for i, acc := range []float64{100, 80, 60} {
		if err := s.Record(ctx, Take{SentenceIndex: i + 1, Sentence: "s", Path: "p", Accuracy: acc}); err != nil {
			t.Fatal(err)
		}
	}

	sum, err := s.Summarize(ctx)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if sum.Takes != 3 {
		t.Errorf("Takes = %d, want 3", sum.Takes)
	}
	if math.Abs(sum.MeanAccuracy-80.0) > 1e-9 {
		t.Errorf("MeanAccuracy = %v, want 80.0", sum.MeanAccuracy)
	}
}
