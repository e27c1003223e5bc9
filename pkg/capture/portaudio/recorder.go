// Package portaudio implements capture.Recorder on top of the system
// microphone via the portaudio bindings.
//
// The recorder opens the default input device for each take: mono, 16-bit
// samples at the configured rate, read in small fixed-size chunks so the gap
// between the hold control releasing and the capture stopping is bounded by
// one buffer-read interval.
package portaudio

import (
	"context"
	"fmt"
	"time"

	portaudiolib "github.com/gordonklaus/portaudio"
	"golang.org/x/sync/errgroup"

	"github.com/hyangsook-lab/recital/pkg/capture"
	"github.com/hyangsook-lab/recital/pkg/hold"
)

const (
	// DefaultSampleRate matches the corpus tooling downstream of the
	// recordings; override it with WithSampleRate for STT-optimised 16 kHz.
	DefaultSampleRate = 44100

	// FramesPerBuffer is the chunk size of each stream read. At 44.1 kHz this
	// bounds release latency to about 23 ms.
	FramesPerBuffer = 1024
)

// Compile-time assertion that Recorder satisfies capture.Recorder.
var _ capture.Recorder = (*Recorder)(nil)

// Option is a functional option for configuring a Recorder.
type Option func(*Recorder)

// WithSampleRate sets the capture sample rate in Hz. Defaults to 44100.
func WithSampleRate(rate int) Option {
	return func(r *Recorder) { r.sampleRate = rate }
}

// Recorder captures takes from the default input device. The device is held
// only for the duration of a single Record call; no two captures overlap in
// the strictly serial session workflow.
type Recorder struct {
	ctrl       hold.Control
	sampleRate int
}

// New initialises portaudio and returns a Recorder gated by ctrl. The caller
// must Close the Recorder to terminate portaudio.
func New(ctrl hold.Control, opts ...Option) (*Recorder, error) {
	if err := portaudiolib.Initialize(); err != nil {
		return nil, fmt.Errorf("capture: initialise portaudio: %w", err)
	}
	r := &Recorder{
		ctrl:       ctrl,
		sampleRate: DefaultSampleRate,
	}
	for _, o := range opts {
		o(r)
	}
	return r, nil
}

// Record blocks until the hold control engages, streams audio until it
// releases, and writes the accumulated samples to path as a 16-bit mono WAV.
// A release before any chunk was read still writes a (zero-sample) artifact
// and flags the result Empty.
func (r *Recorder) Record(ctx context.Context, path string) (capture.Result, error) {
	if err := r.ctrl.WaitEngaged(ctx); err != nil {
		return capture.Result{}, err
	}

	buffer := make([]int16, FramesPerBuffer)
	stream, err := portaudiolib.OpenDefaultStream(1, 0, float64(r.sampleRate), FramesPerBuffer, buffer)
	if err != nil {
		return capture.Result{}, fmt.Errorf("capture: open input stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return capture.Result{}, fmt.Errorf("capture: start input stream: %w", err)
	}

	var samples []int16
	readDone := make(chan struct{})

	g := new(errgroup.Group)
	g.Go(func() error {
		defer close(readDone)
		for r.ctrl.Engaged() {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := stream.Read(); err != nil {
				return fmt.Errorf("capture: read input stream: %w", err)
			}
			samples = append(samples, buffer...)
		}
		return nil
	})
	g.Go(func() error {
		// A blocked stream read cannot observe ctx; aborting the stream
		// unblocks it so the read goroutine can exit.
		select {
		case <-readDone:
			return nil
		case <-ctx.Done():
			stream.Abort()
			return ctx.Err()
		}
	})

	waitErr := g.Wait()
	stream.Stop()
	if waitErr != nil {
		return capture.Result{}, waitErr
	}

	if err := writeWAV(path, samples, r.sampleRate); err != nil {
		return capture.Result{}, err
	}

	return capture.Result{
		Path:     path,
		Samples:  len(samples),
		Duration: time.Duration(len(samples)) * time.Second / time.Duration(r.sampleRate),
		Empty:    len(samples) == 0,
	}, nil
}

// Close terminates portaudio.
func (r *Recorder) Close() error {
	return portaudiolib.Terminate()
}
