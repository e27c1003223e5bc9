// Package asr defines the Transcriber interface for speech-recognition
// backends.
//
// Recital consumes recognition as an external capability: it hands a finished
// audio artifact plus a language hint to a Transcriber and receives either
// the recognized text or a classified failure. The interface is deliberately
// batch-shaped (one file in, one string out) because takes are short and the
// workflow is strictly serial — there is nothing to stream.
//
// Failure taxonomy matters to the caller: [ErrNoSpeech] means the backend
// understood the audio channel but found no intelligible speech, which is a
// different operator message than an unreachable service. Both are scored as
// an empty transcription.
package asr

import (
	"context"
	"errors"
)

// ErrNoSpeech is returned when the backend processed the audio successfully
// but detected no intelligible speech in it. Callers should treat the
// transcription as empty rather than as a service failure.
var ErrNoSpeech = errors.New("asr: no intelligible speech detected")

// Transcriber is the abstraction over any speech-recognition backend.
//
// Implementations must be safe for sequential reuse across takes; recital
// never issues concurrent Transcribe calls.
type Transcriber interface {
	// Transcribe recognises the speech in the audio file at audioPath and
	// returns the transcribed text. language is a hint in the backend's
	// language-code convention (e.g. "ko"); an empty string lets the backend
	// auto-detect where supported.
	//
	// Returns ErrNoSpeech when the audio contained no recognisable speech,
	// or another error for transport and decoding failures.
	Transcribe(ctx context.Context, audioPath, language string) (string, error)
}
