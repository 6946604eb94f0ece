package audio

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"
)

func TestFloatToPCM16_ClipsAndScales(t *testing.T) {
	got := FloatToPCM16([]float32{1.5, -2.0, 0.0})

	want := make([]byte, 6)
	binary.LittleEndian.PutUint16(want[0:], uint16(int16(32767)))
	negFull := int16(-32767)
	binary.LittleEndian.PutUint16(want[2:], uint16(negFull))
	binary.LittleEndian.PutUint16(want[4:], 0)
	if !bytes.Equal(got, want) {
		t.Fatalf("unexpected pcm bytes: got %v, want %v", got, want)
	}
}

func TestFloatToPCM16_FullScale(t *testing.T) {
	got := FloatToPCM16([]float32{1.0, -1.0})
	if v := int16(binary.LittleEndian.Uint16(got[0:])); v != math.MaxInt16 {
		t.Fatalf("expected %d for +1.0, got %d", math.MaxInt16, v)
	}
	if v := int16(binary.LittleEndian.Uint16(got[2:])); v != -math.MaxInt16 {
		t.Fatalf("expected %d for -1.0, got %d", -math.MaxInt16, v)
	}
}

func TestFloatToPCM16_Empty(t *testing.T) {
	if got := FloatToPCM16(nil); len(got) != 0 {
		t.Fatalf("expected empty output, got %d bytes", len(got))
	}
}

func TestFloatToPCM16_Length(t *testing.T) {
	got := FloatToPCM16(make([]float32, 2048))
	if len(got) != 4096 {
		t.Fatalf("expected 4096 bytes for 2048 samples, got %d", len(got))
	}
}
