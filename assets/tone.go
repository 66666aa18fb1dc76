package assets

import (
	"encoding/binary"
	"math"
)

// SampleRate is shared by every host so synthesized cues sound the same.
const SampleRate = 44100

// Tone renders a mono sine at freq Hz for the given duration. The level
// starts at volume and fades linearly to silence so cues do not click.
func Tone(sampleRate int, freq, seconds, volume float64) []float64 {
	n := int(float64(sampleRate) * seconds)
	if n <= 0 || freq <= 0 {
		return nil
	}
	volume = math.Max(0, math.Min(1, volume))

	out := make([]float64, n)
	for i := range out {
		fade := 1 - float64(i)/float64(n)
		out[i] = volume * fade * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
	}
	return out
}

// PCM16 encodes mono samples as interleaved stereo signed 16-bit little
// endian frames, the layout ebiten audio players take.
func PCM16(samples []float64) []byte {
	out := make([]byte, len(samples)*4)
	for i, s := range samples {
		v := int16(math.Max(-1, math.Min(1, s)) * math.MaxInt16)
		binary.LittleEndian.PutUint16(out[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(out[i*4+2:], uint16(v))
	}
	return out
}
