package portaudio

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// writeWAV encodes samples as a 16-bit mono PCM WAV file at path, overwriting
// any existing file. A nil or empty sample slice produces a valid WAV with an
// empty data chunk.
func writeWAV(path string, samples []int16, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("capture: create %q: %w", path, err)
	}
	defer f.Close()

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		SourceBitDepth: 16,
		Data:           make([]int, len(samples)),
	}
	for i, s := range samples {
		buf.Data[i] = int(s)
	}

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	if err := enc.Write(buf); err != nil {
		enc.Close()
		return fmt.Errorf("capture: write wav data: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("capture: finalise wav: %w", err)
	}
	return nil
}
