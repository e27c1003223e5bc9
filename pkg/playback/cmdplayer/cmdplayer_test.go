package cmdplayer

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestNew_EmptyCommand(t *testing.T) {
	t.Parallel()

	if _, err := New(""); err == nil {
		t.Error("New(\"\") succeeded, want error")
	}
	if _, err := New("   "); err == nil {
		t.Error("New with blank command succeeded, want error")
	}
}

func TestNew_UnbalancedQuote(t *testing.T) {
	t.Parallel()

	if _, err := New(`aplay "unterminated`); err == nil {
		t.Error("New with unbalanced quote succeeded, want error")
	}
}

func TestPlayer_Command(t *testing.T) {
	t.Parallel()

	p, err := New("aplay -q -D default")
	if err != nil {
		t.Fatal(err)
	}
	if got := p.Command(); got != "aplay -q -D default" {
		t.Errorf("Command() = %q", got)
	}
}

func TestPlayer_PlayAppendsPath(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	// Use a shell as the "player" to capture the argument it was handed.
	out := filepath.Join(t.TempDir(), "args.txt")
	p, err := New(`sh -c 'printf %s "$0" > ` + out + `'`)
	if err != nil {
		t.Fatal(err)
	}

	if err := p.Play(context.Background(), "/tmp/take.wav"); err != nil {
		t.Fatalf("Play: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(string(data)); got != "/tmp/take.wav" {
		t.Errorf("player received %q, want /tmp/take.wav appended", got)
	}
}

func TestPlayer_PlayFailure(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	p, err := New("sh -c 'echo broken >&2; exit 3'")
	if err != nil {
		t.Fatal(err)
	}

	err = p.Play(context.Background(), "/tmp/take.wav")
	if err == nil {
		t.Fatal("Play of failing command succeeded, want error")
	}
	if !strings.Contains(err.Error(), "broken") {
		t.Errorf("error %q does not include the command's stderr", err)
	}
}

func TestPlayer_PlayMissingBinary(t *testing.T) {
	t.Parallel()

	p, err := New("definitely-not-a-real-player-binary")
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Play(context.Background(), "/tmp/take.wav"); err == nil {
		t.Fatal("Play with missing binary succeeded, want error")
	}
}
