// Package mock provides a scripted test double for asr.Transcriber.
//
// Configure Texts and Errs to drive the session controller through
// recognition scenarios: successful transcriptions, ErrNoSpeech, and service
// failures.
package mock

import (
	"context"
	"sync"

	"github.com/hyangsook-lab/recital/pkg/provider/asr"
)

// TranscribeCall records a single invocation of Transcriber.Transcribe.
type TranscribeCall struct {
	// AudioPath is the artifact path passed to Transcribe.
	AudioPath string
	// Language is the language hint passed to Transcribe.
	Language string
}

// Transcriber is a mock implementation of asr.Transcriber.
type Transcriber struct {
	mu sync.Mutex

	// Texts are returned in order by successive Transcribe calls. When the
	// script runs out, the last entry repeats; an empty script returns "".
	Texts []string

	// Errs are returned in order alongside Texts; a nil entry means success.
	// May be shorter than Texts.
	Errs []error

	// TranscribeCalls records every call to Transcribe.
	TranscribeCalls []TranscribeCall

	calls int
}

// Compile-time assertion that Transcriber satisfies asr.Transcriber.
var _ asr.Transcriber = (*Transcriber)(nil)

// Transcribe records the call and returns the next scripted text or error.
func (m *Transcriber) Transcribe(ctx context.Context, audioPath, language string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.TranscribeCalls = append(m.TranscribeCalls, TranscribeCall{AudioPath: audioPath, Language: language})
	idx := m.calls
	m.calls++

	if idx < len(m.Errs) && m.Errs[idx] != nil {
		return "", m.Errs[idx]
	}

	if len(m.Texts) == 0 {
		return "", nil
	}
	if idx >= len(m.Texts) {
		return m.Texts[len(m.Texts)-1], nil
	}
	return m.Texts[idx], nil
}

// Reset clears all recorded calls and the script position. Thread-safe.
func (m *Transcriber) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TranscribeCalls = nil
	m.calls = 0
}
