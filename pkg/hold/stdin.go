package hold

import (
	"bufio"
	"context"
	"sync/atomic"
)

// Compile-time assertion that Stdin satisfies Control.
var _ Control = (*Stdin)(nil)

// Stdin is a Control toggled by line input: one line engages the signal, the
// next line releases it. It exists for terminals where a global hotkey cannot
// be registered (headless sessions, remote shells).
//
// The reader is shared with the decision prompt, which is safe because the
// workflow is strictly serial: the control consumes exactly one line to
// engage and one line to release, and never reads outside a capture.
type Stdin struct {
	r       *bufio.Reader
	engaged atomic.Bool
}

// NewStdin returns a Stdin control reading from r. Pass the same *bufio.Reader
// used for the operator prompt so no buffered input is lost between the two.
func NewStdin(r *bufio.Reader) *Stdin {
	return &Stdin{r: r}
}

// WaitEngaged blocks until a line is read, then marks the control engaged and
// starts watching for the release line in the background.
func (s *Stdin) WaitEngaged(ctx context.Context) error {
	lineRead := make(chan error, 1)
	go func() {
		_, err := s.r.ReadString('\n')
		lineRead <- err
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-lineRead:
		if err != nil {
			return err
		}
	}

	s.engaged.Store(true)
	go func() {
		// The release line. Errors (EOF) also release, so a closed stdin
		// cannot leave the capture loop spinning.
		s.r.ReadString('\n')
		s.engaged.Store(false)
	}()
	return nil
}

// Engaged reports whether the signal is between its engage and release lines.
func (s *Stdin) Engaged() bool {
	return s.engaged.Load()
}

// Label describes the toggle for the operator prompt.
func (s *Stdin) Label() string {
	return "Enter (press again to stop)"
}

// Close is a no-op; the reader is owned by the caller.
func (s *Stdin) Close() error {
	return nil
}
