package audio

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"testing"
)

func encodeSamples(samples []float32) []byte {
	buf := make([]byte, len(samples)*4)
	for i, s := range samples {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(s))
	}
	return buf
}

func TestReadFrame_FullFrames(t *testing.T) {
	samples := []float32{0.1, -0.5, 1.0, -1.0, 0.25, 0.0}
	src := NewRawSource(bytes.NewReader(encodeSamples(samples)), 3)

	first, err := src.ReadFrame()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != 3 || first[0] != 0.1 || first[1] != -0.5 || first[2] != 1.0 {
		t.Fatalf("unexpected first frame: %v", first)
	}

	second, err := src.ReadFrame()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second[0] != -1.0 || second[1] != 0.25 || second[2] != 0.0 {
		t.Fatalf("unexpected second frame: %v", second)
	}

	if _, err := src.ReadFrame(); err != io.EOF {
		t.Fatalf("expected EOF after stream end, got %v", err)
	}
}

func TestReadFrame_PartialTrailingFrameIsEOF(t *testing.T) {
	samples := []float32{0.1, 0.2, 0.3, 0.4}
	src := NewRawSource(bytes.NewReader(encodeSamples(samples)), 3)

	if _, err := src.ReadFrame(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := src.ReadFrame(); err != io.EOF {
		t.Fatalf("expected EOF for truncated frame, got %v", err)
	}
}
