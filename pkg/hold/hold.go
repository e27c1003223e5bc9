// Package hold models the hold-to-record control: a level-triggered signal
// that is active only while the operator physically engages it.
//
// The capture loop polls Engaged between small buffered reads, so any
// implementation is acceptable as long as a release is observable within one
// buffer-read interval. Two implementations ship with recital: a global
// hotkey held down for the duration of the take, and a stdin line toggle for
// environments where global hotkeys are unavailable.
package hold

import "context"

// Control is a level-triggered hold signal.
type Control interface {
	// WaitEngaged blocks until the control is engaged, or until ctx is done.
	// If the control is already engaged it returns immediately.
	WaitEngaged(ctx context.Context) error

	// Engaged reports the current level of the signal.
	Engaged() bool

	// Label is a short human-readable description of the control, shown in
	// the "press and hold ... to record" prompt.
	Label() string

	// Close releases any resources held by the control (e.g. a global hotkey
	// registration). The control must not be used after Close.
	Close() error
}
