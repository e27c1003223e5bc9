// Package mock provides a test double for playback.Player.
package mock

import (
	"context"
	"sync"

	"github.com/hyangsook-lab/recital/pkg/playback"
)

// Player is a mock implementation of playback.Player.
type Player struct {
	mu sync.Mutex

	// PlayErr, if non-nil, is returned by every Play call.
	PlayErr error

	// PlayCalls records the path of every Play call.
	PlayCalls []string
}

// Compile-time assertion that Player satisfies playback.Player.
var _ playback.Player = (*Player)(nil)

// Play records the call and returns PlayErr.
func (p *Player) Play(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.PlayCalls = append(p.PlayCalls, path)
	return p.PlayErr
}

// Reset clears all recorded calls. Thread-safe.
func (p *Player) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.PlayCalls = nil
}
