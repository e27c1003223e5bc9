package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/hyangsook-lab/recital/pkg/provider/asr"
)

// ErrProviderNotRegistered is returned by [Registry.CreateASR] when no
// factory has been registered under the requested backend name.
var ErrProviderNotRegistered = errors.New("config: provider not registered")

// Registry maps ASR backend names to their constructor functions.
// It is safe for concurrent use.
type Registry struct {
	mu  sync.RWMutex
	asr map[string]func(ProviderEntry) (asr.Transcriber, error)
}

// NewRegistry returns an empty, ready-to-use [Registry].
func NewRegistry() *Registry {
	return &Registry{
		asr: make(map[string]func(ProviderEntry) (asr.Transcriber, error)),
	}
}

// RegisterASR registers a recognition backend factory under name.
// Subsequent calls with the same name overwrite the previous registration.
func (r *Registry) RegisterASR(name string, factory func(ProviderEntry) (asr.Transcriber, error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.asr[name] = factory
}

// CreateASR constructs the recognition backend named in entry.
// Returns [ErrProviderNotRegistered] if the name has no registered factory.
func (r *Registry) CreateASR(entry ProviderEntry) (asr.Transcriber, error) {
	r.mu.RLock()
	factory, ok := r.asr[entry.Name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: asr %q", ErrProviderNotRegistered, entry.Name)
	}
	return factory(entry)
}
