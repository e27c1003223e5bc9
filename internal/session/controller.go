// Package session implements the per-sentence recording loop at the heart of
// recital.
//
// The controller is an explicit state machine: each take moves through
// Recording → Transcribing → Scoring → AwaitingDecision, and the operator's
// decision either re-enters Recording (redo), advances to the next sentence,
// or terminates the session. All blocking stages are synchronous calls to
// injected collaborators, so the whole machine runs against fakes in tests.
//
// The durable checkpoint moves on exactly two transitions: advance persists
// index+1, quit persists the current index. Nothing else — not playback, not
// redo, not a failure in any collaborator — may touch it. An abort signal
// during a blocking stage unwinds through the context without writing, so
// the last explicitly saved value always stands.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hyangsook-lab/recital/internal/progress"
	"github.com/hyangsook-lab/recital/internal/score"
	"github.com/hyangsook-lab/recital/internal/takelog"
	"github.com/hyangsook-lab/recital/pkg/capture"
	"github.com/hyangsook-lab/recital/pkg/playback"
	"github.com/hyangsook-lab/recital/pkg/provider/asr"
)

// state is the controller's position in the per-take loop.
type state int

const (
	stateRecording state = iota
	stateTranscribing
	stateScoring
	stateAwaitingDecision
)

// decision is the operator's choice after a processed take.
type decision int

const (
	decisionInvalid decision = iota
	decisionPlay
	decisionRedo
	decisionAdvance
	decisionQuit
)

// Journal receives accepted takes. It is satisfied by *takelog.Store; a nil
// Journal disables journalling.
type Journal interface {
	Record(ctx context.Context, take takelog.Take) error
}

// Config holds the controller's fixed parameters.
type Config struct {
	// OutputDir is where take artifacts are written; created if missing.
	OutputDir string

	// Language is the recognition language hint passed to the transcriber.
	Language string

	// HoldLabel describes the hold control in the recording prompt, e.g.
	// "'space' key".
	HoldLabel string
}

// Collaborators are the injected capabilities the state machine drives.
type Collaborators struct {
	Recorder    capture.Recorder
	Transcriber asr.Transcriber
	Player      playback.Player
	Checkpoint  *progress.Store
	Journal     Journal // optional
}

// Option is a functional option for configuring a Controller.
type Option func(*Controller)

// WithIO replaces the operator input and output streams. Defaults to stdin
// and stdout.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(c *Controller) {
		c.in = bufio.NewReader(in)
		c.out = out
	}
}

// WithInput replaces only the operator input with an existing buffered
// reader. Use this when the hold control shares the same reader, so no
// buffered input is lost between the two.
func WithInput(in *bufio.Reader) Option {
	return func(c *Controller) { c.in = in }
}

// WithClock replaces the timestamp source used for take filenames.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithLogger replaces the controller's logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Controller) { c.log = log }
}

// Controller drives the corpus traversal and the per-sentence decision loop.
type Controller struct {
	cfg       Config
	sentences []string
	co        Collaborators

	in  *bufio.Reader
	out io.Writer
	now func() time.Time
	log *slog.Logger
}

// New returns a Controller over the given sentence list.
func New(cfg Config, sentences []string, co Collaborators, opts ...Option) (*Controller, error) {
	if co.Recorder == nil || co.Transcriber == nil || co.Player == nil || co.Checkpoint == nil {
		return nil, errors.New("session: recorder, transcriber, player, and checkpoint are all required")
	}
	c := &Controller{
		cfg:       cfg,
		sentences: sentences,
		co:        co,
		in:        bufio.NewReader(os.Stdin),
		out:       os.Stdout,
		now:       time.Now,
		log:       slog.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Run loads the checkpoint and walks the remaining sentences until the corpus
// is exhausted, the operator quits, or ctx is cancelled. A cancelled context
// is returned as its error after unwinding with no checkpoint write.
func (c *Controller) Run(ctx context.Context) error {
	total := len(c.sentences)
	index := c.co.Checkpoint.Load()

	if index >= total {
		fmt.Fprintf(c.out, "All %d sentences have been recorded!\n", total)
		return nil
	}

	if err := os.MkdirAll(c.cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("session: create output dir: %w", err)
	}

	c.log.Info("session started", "total", total, "resuming_at", index+1)

	for index < total {
		advanced, err := c.recordSentence(ctx, index)
		if err != nil {
			return err
		}
		if !advanced {
			fmt.Fprintln(c.out, "Exiting and saving progress...")
			return nil
		}
		index++
	}

	fmt.Fprintf(c.out, "All %d sentences have been recorded!\n", total)
	return nil
}

// recordSentence runs the take loop for the sentence at index (0-based).
// It returns true when the operator advanced past the sentence and false when
// they quit; in both cases the checkpoint has already been persisted.
func (c *Controller) recordSentence(ctx context.Context, index int) (advanced bool, err error) {
	sentence := c.sentences[index]
	total := len(c.sentences)

	fmt.Fprintf(c.out, "\nSentence %d/%d: %s\n", index+1, total, sentence)

	// One deterministic artifact path per sentence visit; a redo overwrites it.
	takePath := filepath.Join(c.cfg.OutputDir,
		fmt.Sprintf("sentence_%d_%s.wav", index+1, c.now().Format("20060102_150405")))

	var (
		result     capture.Result
		transcript string
		accuracy   float64
	)

	for st := stateRecording; ; {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		switch st {
		case stateRecording:
			fmt.Fprintf(c.out, "Press and hold %s to record, release to stop...\n", c.cfg.HoldLabel)
			result, err = c.co.Recorder.Record(ctx, takePath)
			if err != nil {
				// An abort mid-capture surfaces as a stream error; report it
				// as the cancellation it is so the caller exits cleanly.
				if cerr := ctx.Err(); cerr != nil {
					return false, cerr
				}
				return false, fmt.Errorf("session: capture sentence %d: %w", index+1, err)
			}
			st = stateTranscribing

		case stateTranscribing:
			transcript = c.transcribe(ctx, result)
			st = stateScoring

		case stateScoring:
			accuracy = score.Accuracy(sentence, transcript)
			fmt.Fprintf(c.out, "\nTranscribed: %s\nAccuracy: %.2f%%\n", transcript, accuracy)
			st = stateAwaitingDecision

		case stateAwaitingDecision:
			switch d, derr := c.promptDecision(ctx); {
			case derr != nil:
				return false, derr

			case d == decisionPlay:
				if perr := c.co.Player.Play(ctx, takePath); perr != nil {
					c.log.Warn("playback failed", "path", takePath, "error", perr)
					fmt.Fprintf(c.out, "Error playing audio: %v\n", perr)
				}

			case d == decisionRedo:
				if rerr := os.Remove(takePath); rerr != nil && !errors.Is(rerr, os.ErrNotExist) {
					c.log.Warn("could not remove discarded take", "path", takePath, "error", rerr)
				}
				st = stateRecording

			case d == decisionAdvance:
				if serr := c.co.Checkpoint.Save(index + 1); serr != nil {
					return false, fmt.Errorf("session: save checkpoint: %w", serr)
				}
				c.journalTake(ctx, index, sentence, takePath, transcript, accuracy)
				return true, nil

			case d == decisionQuit:
				// The undecided take's file stays on disk but is not counted:
				// resuming re-records this sentence.
				if serr := c.co.Checkpoint.Save(index); serr != nil {
					return false, fmt.Errorf("session: save checkpoint: %w", serr)
				}
				return false, nil

			default:
				fmt.Fprintln(c.out, "Invalid choice. Please select p, r, n, or q.")
			}
		}
	}
}

// transcribe runs the recognizer on a finished capture, downgrading every
// failure class to an empty transcription. The distinction between "no
// speech" and a broken recognizer is preserved in the log and the operator
// message.
func (c *Controller) transcribe(ctx context.Context, result capture.Result) string {
	if result.Empty {
		c.log.Info("capture released before any audio was buffered", "path", result.Path)
		return ""
	}

	text, err := c.co.Transcriber.Transcribe(ctx, result.Path, c.cfg.Language)
	switch {
	case errors.Is(err, asr.ErrNoSpeech):
		c.log.Info("no intelligible speech in take", "path", result.Path)
		fmt.Fprintln(c.out, "Could not understand the audio.")
		return ""
	case err != nil && ctx.Err() == nil:
		c.log.Warn("recognition failed", "path", result.Path, "error", err)
		fmt.Fprintf(c.out, "Speech recognition error: %v\n", err)
		return ""
	case err != nil:
		// Cancelled mid-recognition; the outer loop observes ctx and unwinds.
		return ""
	}
	return text
}

// promptDecision presents the four-option menu and reads one selection.
// Digits 1–4 are accepted as aliases for operators used to numbered menus.
// A closed input stream is treated as quit so an exhausted script still
// leaves the checkpoint in a defined place.
func (c *Controller) promptDecision(ctx context.Context) (decision, error) {
	fmt.Fprintln(c.out, "\nOptions: [p]lay  [r]edo  [n]ext  [q]uit")
	fmt.Fprint(c.out, "Enter choice: ")

	line, err := c.readLine(ctx)
	if errors.Is(err, io.EOF) {
		return decisionQuit, nil
	}
	if err != nil {
		return decisionInvalid, err
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "p", "play", "1":
		return decisionPlay, nil
	case "r", "redo", "2":
		return decisionRedo, nil
	case "n", "next", "3":
		return decisionAdvance, nil
	case "q", "quit", "4":
		return decisionQuit, nil
	}
	return decisionInvalid, nil
}

// readLine reads one input line, honouring ctx cancellation even though the
// underlying reader cannot be interrupted.
func (c *Controller) readLine(ctx context.Context) (string, error) {
	type lineResult struct {
		line string
		err  error
	}
	ch := make(chan lineResult, 1)
	go func() {
		line, err := c.in.ReadString('\n')
		if err != nil && line != "" {
			// A final unterminated line still counts as input.
			err = nil
		}
		ch <- lineResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		return res.line, res.err
	}
}

// journalTake records an accepted take; journal failures are side notes and
// never affect the session.
func (c *Controller) journalTake(ctx context.Context, index int, sentence, path, transcript string, accuracy float64) {
	if c.co.Journal == nil {
		return
	}
	take := takelog.Take{
		SentenceIndex: index + 1,
		Sentence:      sentence,
		Path:          path,
		Transcript:    transcript,
		Accuracy:      accuracy,
		RecordedAt:    c.now(),
	}
	if err := c.co.Journal.Record(ctx, take); err != nil {
		c.log.Warn("take journal write failed", "sentence", index+1, "error", err)
	}
}
