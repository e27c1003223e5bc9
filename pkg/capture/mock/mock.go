// Package mock provides a scripted test double for capture.Recorder.
//
// Each Record call writes a small placeholder file at the requested path (so
// callers exercising redo/advance file handling see real files appear) and
// returns the next scripted Result. Configure Results and Errs to drive the
// session controller through capture scenarios without an audio device.
package mock

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/hyangsook-lab/recital/pkg/capture"
)

// RecordCall records a single invocation of Recorder.Record.
type RecordCall struct {
	// Path is the artifact path passed to Record.
	Path string
}

// Recorder is a mock implementation of capture.Recorder.
type Recorder struct {
	mu sync.Mutex

	// Results are returned in order by successive Record calls. When the
	// script runs out, Record returns a one-second non-empty Result. The
	// Path field of each returned Result is overwritten with the requested
	// path.
	Results []capture.Result

	// Errs are returned in order alongside Results; a nil entry means
	// success. May be shorter than Results.
	Errs []error

	// RecordCalls records every call to Record.
	RecordCalls []RecordCall

	// Closed reports whether Close was called.
	Closed bool

	calls int
}

// Compile-time assertion that Recorder satisfies capture.Recorder.
var _ capture.Recorder = (*Recorder)(nil)

// Record writes a placeholder artifact at path and returns the next scripted
// result. Respects ctx cancellation before doing anything.
func (r *Recorder) Record(ctx context.Context, path string) (capture.Result, error) {
	if err := ctx.Err(); err != nil {
		return capture.Result{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.RecordCalls = append(r.RecordCalls, RecordCall{Path: path})
	idx := r.calls
	r.calls++

	if idx < len(r.Errs) && r.Errs[idx] != nil {
		return capture.Result{}, r.Errs[idx]
	}

	if err := os.WriteFile(path, []byte(fmt.Sprintf("take %d", idx)), 0o644); err != nil {
		return capture.Result{}, err
	}

	res := capture.Result{Samples: 44100, Duration: time.Second}
	if idx < len(r.Results) {
		res = r.Results[idx]
	}
	res.Path = path
	return res, nil
}

// Close marks the recorder closed.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Closed = true
	return nil
}

// Reset clears all recorded calls and the script position. Thread-safe.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.RecordCalls = nil
	r.calls = 0
	r.Closed = false
}
