// Package cmdplayer implements playback.Player by shelling out to an external
// audio player such as aplay, paplay, or afplay.
//
// The command line comes from configuration and is parsed with shell-style
// word splitting, so flags are supported ("aplay -q"); the artifact path is
// appended as the final argument.
package cmdplayer

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	shellwords "github.com/mattn/go-shellwords"

	"github.com/hyangsook-lab/recital/pkg/playback"
)

// Compile-time assertion that Player satisfies playback.Player.
var _ playback.Player = (*Player)(nil)

// Player runs an external command for each Play call.
type Player struct {
	argv []string
}

// New parses command into an argument vector and returns a Player that
// invokes it with the audio path appended.
func New(command string) (*Player, error) {
	args, err := shellwords.NewParser().Parse(command)
	if err != nil {
		return nil, fmt.Errorf("cmdplayer: parse command %q: %w", command, err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("cmdplayer: playback command is empty")
	}
	return &Player{argv: args}, nil
}

// Command returns the configured command line for logging.
func (p *Player) Command() string {
	return strings.Join(p.argv, " ")
}

// Play runs the configured player command on the file at path and waits for
// it to exit. A non-zero exit is returned as an error that includes the
// command's stderr.
func (p *Player) Play(ctx context.Context, path string) error {
	args := append(append([]string{}, p.argv[1:]...), path)
	cmd := exec.CommandContext(ctx, p.argv[0], args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return fmt.Errorf("cmdplayer: %s: %w: %s", p.argv[0], err, msg)
		}
		return fmt.Errorf("cmdplayer: %s: %w", p.argv[0], err)
	}
	return nil
}
