// Package capture defines the audio-capture abstraction used by the session
// controller.
//
// A Recorder produces exactly one audio artifact per invocation: it blocks
// until the hold control engages, accumulates microphone samples until the
// control releases, and writes the result to the requested path as an
// uncompressed PCM WAV file. The interface exists so the controller's state
// machine can be tested against a scripted recorder without an audio device.
package capture

import (
	"context"
	"time"
)

// Result describes the artifact produced by a single Record call.
type Result struct {
	// Path is the location of the written WAV file.
	Path string

	// Samples is the number of PCM samples captured.
	Samples int

	// Duration is the captured audio length.
	Duration time.Duration

	// Empty is true when the hold control was released before any audio was
	// buffered. The artifact is still written (a valid zero-length WAV), but
	// downstream transcription is pointless and the take scores 0.
	Empty bool
}

// Recorder captures one take per call.
type Recorder interface {
	// Record blocks until the hold control engages, captures until it
	// releases, writes the PCM WAV artifact to path (overwriting any existing
	// file), and returns a description of the artifact. Device and stream
	// failures are returned as errors; retry policy belongs to the caller.
	Record(ctx context.Context, path string) (Result, error)

	// Close releases the underlying audio device.
	Close() error
}
