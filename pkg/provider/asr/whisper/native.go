// This file contains the NativeProvider implementation backed by the
// whisper.cpp CGO bindings. The whisper.cpp static library (libwhisper.a)
// and headers (whisper.h) must be available at link time via LIBRARY_PATH
// and C_INCLUDE_PATH environment variables.

package whisper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	whisperlib "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"
	"github.com/go-audio/wav"

	"github.com/hyangsook-lab/recital/pkg/provider/asr"
)

// whisperSampleRate is the only input rate whisper.cpp accepts. Artifacts
// recorded at other rates are resampled before inference.
const whisperSampleRate = 16000

// Compile-time assertion that NativeProvider satisfies asr.Transcriber.
var _ asr.Transcriber = (*NativeProvider)(nil)

// NativeOption is a functional option for configuring a NativeProvider.
type NativeOption func(*NativeProvider)

// WithNativeLanguage sets the default language code used when Transcribe is
// called with an empty language hint.
func WithNativeLanguage(lang string) NativeOption {
	return func(p *NativeProvider) { p.language = lang }
}

// NativeProvider implements asr.Transcriber using whisper.cpp Go bindings
// (CGO), with no server round trip. The model is loaded once at startup.
type NativeProvider struct {
	model    whisperlib.Model
	language string
}

// NewNative creates a NativeProvider that loads the whisper.cpp model from
// the given file path. The caller must call Close when the provider is no
// longer needed.
func NewNative(modelPath string, opts ...NativeOption) (*NativeProvider, error) {
	if modelPath == "" {
		return nil, errors.New("whisper: modelPath must not be empty")
	}
	model, err := whisperlib.New(modelPath)
	if err != nil {
		return nil, fmt.Errorf("whisper: load model %q: %w", modelPath, err)
	}
	p := &NativeProvider{model: model}
	for _, o := range opts {
		o(p)
	}
	return p, nil
}

// Close releases the whisper model.
func (p *NativeProvider) Close() error {
	if p.model != nil {
		return p.model.Close()
	}
	return nil
}

// Transcribe decodes the WAV artifact at audioPath, converts it to the mono
// 16 kHz float32 stream whisper.cpp expects, runs inference, and returns the
// concatenated segment text. An inference that produces no text is reported
// as asr.ErrNoSpeech.
func (p *NativeProvider) Transcribe(ctx context.Context, audioPath, language string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("whisper: context already cancelled: %w", err)
	}

	samples, err := loadSamples(audioPath)
	if err != nil {
		return "", err
	}
	if len(samples) == 0 {
		return "", asr.ErrNoSpeech
	}

	lang := language
	if lang == "" {
		lang = p.language
	}

	// Each context is NOT thread-safe, but the model can be shared; a fresh
	// context per take keeps inference state isolated.
	wctx, err := p.model.NewContext()
	if err != nil {
		return "", fmt.Errorf("whisper: create context: %w", err)
	}
	if lang != "" {
		if err := wctx.SetLanguage(lang); err != nil {
			return "", fmt.Errorf("whisper: set language %q: %w", lang, err)
		}
	}

	if err := wctx.Process(samples, nil, nil, nil); err != nil {
		return "", fmt.Errorf("whisper: process audio: %w", err)
	}

	var parts []string
	for {
		segment, err := wctx.NextSegment()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("whisper: read segment: %w", err)
		}
		if text := strings.TrimSpace(segment.Text); text != "" {
			parts = append(parts, text)
		}
	}

	text := strings.TrimSpace(strings.Join(parts, " "))
	if text == "" {
		return "", asr.ErrNoSpeech
	}
	return text, nil
}

// loadSamples reads a PCM WAV file and returns mono float32 samples at the
// whisper input rate.
func loadSamples(path string) ([]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("whisper: open audio %q: %w", path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("whisper: decode wav %q: %w", path, err)
	}
	if buf.Format == nil || buf.Format.SampleRate <= 0 {
		return nil, fmt.Errorf("whisper: wav %q has no format information", path)
	}

	depth := buf.SourceBitDepth
	if depth == 0 {
		depth = 16
	}
	samples := intToFloat32Mono(buf.Data, buf.Format.NumChannels, depth)
	return resampleLinear(samples, buf.Format.SampleRate, whisperSampleRate), nil
}
