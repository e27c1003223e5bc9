// Package playback defines the audio playback abstraction used to replay a
// take for the operator.
//
// Playback is strictly best-effort: a failure is reported to the operator and
// the session continues. Nothing in the recording workflow depends on a
// successful replay.
package playback

import "context"

// Player plays a finished audio artifact out loud.
type Player interface {
	// Play plays the audio file at path and returns once playback finishes
	// or fails. Cancelling ctx stops playback.
	Play(ctx context.Context, path string) error
}
