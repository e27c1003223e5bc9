package hold

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.design/x/hotkey"
)

// keyMap translates configuration key names to hotkey key codes.
var keyMap = map[string]hotkey.Key{
	"space":  hotkey.KeySpace,
	"return": hotkey.KeyReturn,
	"enter":  hotkey.KeyReturn,
	"tab":    hotkey.KeyTab,
	"a":      hotkey.KeyA, "b": hotkey.KeyB, "c": hotkey.KeyC, "d": hotkey.KeyD,
	"e": hotkey.KeyE, "f": hotkey.KeyF, "g": hotkey.KeyG, "h": hotkey.KeyH,
	"i": hotkey.KeyI, "j": hotkey.KeyJ, "k": hotkey.KeyK, "l": hotkey.KeyL,
	"m": hotkey.KeyM, "n": hotkey.KeyN, "o": hotkey.KeyO, "p": hotkey.KeyP,
	"q": hotkey.KeyQ, "r": hotkey.KeyR, "s": hotkey.KeyS, "t": hotkey.KeyT,
	"u": hotkey.KeyU, "v": hotkey.KeyV, "w": hotkey.KeyW, "x": hotkey.KeyX,
	"y": hotkey.KeyY, "z": hotkey.KeyZ,
	"f1": hotkey.KeyF1, "f2": hotkey.KeyF2, "f3": hotkey.KeyF3, "f4": hotkey.KeyF4,
	"f5": hotkey.KeyF5, "f6": hotkey.KeyF6, "f7": hotkey.KeyF7, "f8": hotkey.KeyF8,
	"f9": hotkey.KeyF9, "f10": hotkey.KeyF10, "f11": hotkey.KeyF11, "f12": hotkey.KeyF12,
}

// Compile-time assertion that Hotkey satisfies Control.
var _ Control = (*Hotkey)(nil)

// Hotkey is a Control driven by a system-wide hotkey. The signal is engaged
// while the key is held down and released on key-up, so the recording window
// is exactly the duration of the physical key press.
type Hotkey struct {
	name      string
	hk        *hotkey.Hotkey
	engaged   atomic.Bool
	engagedCh chan struct{}
	stop      chan struct{}
	closeOnce sync.Once
}

// NewHotkey registers a global hotkey for the named key (e.g. "space") and
// starts watching its key-down/key-up events. The caller must Close the
// returned Hotkey to unregister it.
func NewHotkey(key string) (*Hotkey, error) {
	code, ok := keyMap[key]
	if !ok {
		return nil, fmt.Errorf("hold: unknown hotkey %q", key)
	}

	hk := hotkey.New(nil, code)
	if err := hk.Register(); err != nil {
		return nil, fmt.Errorf("hold: register hotkey %q: %w", key, err)
	}

	h := &Hotkey{
		name:      key,
		hk:        hk,
		engagedCh: make(chan struct{}, 1),
		stop:      make(chan struct{}),
	}
	go h.listen()
	return h, nil
}

// listen tracks the key level from the hotkey event streams.
func (h *Hotkey) listen() {
	for {
		select {
		case <-h.stop:
			return
		case _, ok := <-h.hk.Keydown():
			if !ok {
				return
			}
			h.engaged.Store(true)
			select {
			case h.engagedCh <- struct{}{}:
			default:
			}
		case _, ok := <-h.hk.Keyup():
			if !ok {
				return
			}
			h.engaged.Store(false)
		}
	}
}

// WaitEngaged blocks until the key goes down, the control is closed, or ctx
// is done.
func (h *Hotkey) WaitEngaged(ctx context.Context) error {
	if h.engaged.Load() {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-h.stop:
		return fmt.Errorf("hold: hotkey %q closed", h.name)
	case <-h.engagedCh:
		return nil
	}
}

// Engaged reports whether the key is currently held down.
func (h *Hotkey) Engaged() bool {
	return h.engaged.Load()
}

// Label returns the key name, e.g. "space".
func (h *Hotkey) Label() string {
	return "'" + h.name + "' key"
}

// Close unregisters the hotkey. Safe to call more than once.
func (h *Hotkey) Close() error {
	h.closeOnce.Do(func() {
		close(h.stop)
		h.hk.Unregister()
	})
	return nil
}
