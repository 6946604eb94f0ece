package audio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/foxseedlab/honyakun/internal/audio"
)

// RawSource frames a stream of little-endian float32 samples read from an
// io.Reader. It stands in for the platform audio-capture process, which
// pipes raw samples over stdin or a file/FIFO.
type RawSource struct {
	reader    *bufio.Reader
	closer    io.Closer
	frameSize int
	buf       []byte
}

func NewRawSource(r io.Reader, frameSize int) *RawSource {
	src := &RawSource{
		reader:    bufio.NewReader(r),
		frameSize: frameSize,
		buf:       make([]byte, frameSize*4),
	}
	if c, ok := r.(io.Closer); ok {
		src.closer = c
	}
	return src
}

// OpenRawSource opens path as a raw float32 sample stream. A path of "-"
// reads from stdin; stdin is never closed by Close.
func OpenRawSource(path string, frameSize int) (*RawSource, error) {
	if path == "-" {
		src := NewRawSource(os.Stdin, frameSize)
		src.closer = nil
		return src, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open audio input: %w", err)
	}
	return NewRawSource(f, frameSize), nil
}

func (s *RawSource) ReadFrame() ([]float32, error) {
	if _, err := io.ReadFull(s.reader, s.buf); err != nil {
		if err == io.ErrUnexpectedEOF {
			return nil, io.EOF
		}
		return nil, err
	}
	frame := make([]float32, s.frameSize)
	for i := range frame {
		bits := binary.LittleEndian.Uint32(s.buf[i*4:])
		frame[i] = math.Float32frombits(bits)
	}
	return frame, nil
}

func (s *RawSource) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

var _ audio.Source = (*RawSource)(nil)
