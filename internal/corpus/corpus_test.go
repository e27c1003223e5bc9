package corpus

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestLoadFromReader_FirstFieldOnly(t *testing.T) {
	t.Parallel()

	in := "안녕하세요,greeting,1\n감사합니다,thanks,2\n"
	got, err := LoadFromReader(strings.NewReader(in))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	want := []string{"안녕하세요", "감사합니다"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("sentences = %v, want %v", got, want)
	}
}

func TestLoadFromReader_SkipsBlankLines(t *testing.T) {
	t.Parallel()

	in := "first sentence\n\n   \nsecond sentence\n\n"
	got, err := LoadFromReader(strings.NewReader(in))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	want := []string{"first sentence", "second sentence"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("sentences = %v, want %v", got, want)
	}
}

func TestLoadFromReader_SkipsEmptyFirstField(t *testing.T) {
	t.Parallel()

	in := ",orphan translation\nreal sentence,translation\n"
	got, err := LoadFromReader(strings.NewReader(in))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	want := []string{"real sentence"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("sentences = %v, want %v", got, want)
	}
}

func TestLoadFromReader_Empty(t *testing.T) {
	t.Parallel()

	got, err := LoadFromReader(strings.NewReader(""))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("sentences = %v, want none", got)
	}
}

func TestLoad_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "corpus.csv")
	if err := os.WriteFile(path, []byte("밥 먹었어요?,did you eat\n잘 자요,good night\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{"밥 먹었어요?", "잘 자요"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("sentences = %v, want %v", got, want)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Error("Load on missing file succeeded, want error")
	}
}
