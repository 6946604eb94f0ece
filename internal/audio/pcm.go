package audio

import (
	"encoding/binary"
	"math"
)

// FloatToPCM16 converts mono float32 samples to 16-bit little-endian PCM.
// Samples are clipped to [-1, 1] before scaling, matching the pcm16 input
// format the realtime endpoint expects.
func FloatToPCM16(samples []float32) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		v := int16(s * math.MaxInt16)
		binary.LittleEndian.PutUint16(out[i*2:], uint16(v))
	}
	return out
}
