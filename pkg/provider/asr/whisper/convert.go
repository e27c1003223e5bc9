package whisper

// intToFloat32Mono converts interleaved integer PCM samples to mono float32
// normalised to [-1.0, 1.0], averaging all channels per frame. bitDepth is
// the source sample depth (e.g. 16).
func intToFloat32Mono(data []int, channels, bitDepth int) []float32 {
	if channels <= 0 {
		channels = 1
	}
	scale := float32(int64(1) << (bitDepth - 1))

	frames := len(data) / channels
	mono := make([]float32, frames)
	for i := range frames {
		var sum float32
		for ch := range channels {
			sum += float32(data[i*channels+ch]) / scale
		}
		mono[i] = sum / float32(channels)
	}
	return mono
}

// resampleLinear converts samples from fromRate to toRate by linear
// interpolation. Takes are a few seconds of a single close-mic voice, so
// linear interpolation is plenty for recognition purposes. Returns the input
// unchanged when the rates already match.
func resampleLinear(samples []float32, fromRate, toRate int) []float32 {
	if fromRate == toRate || len(samples) == 0 {
		return samples
	}

	ratio := float64(fromRate) / float64(toRate)
	outLen := int(float64(len(samples)) / ratio)
	if outLen == 0 {
		outLen = 1
	}

	out := make([]float32, outLen)
	for i := range outLen {
		pos := float64(i) * ratio
		idx := int(pos)
		if idx >= len(samples)-1 {
			out[i] = samples[len(samples)-1]
			continue
		}
		frac := float32(pos - float64(idx))
		out[i] = samples[idx]*(1-frac) + samples[idx+1]*frac
	}
	return out
}
