package backend

import (
	"fmt"
	"sync"

	"github.com/foxseedlab/honyakun/internal/backend"
)

// NullBackend lets the full pipeline run without a credential. It counts
// the PCM bytes it receives and reports, once per accumulated batch, a
// synthetic status fragment with the approximate audio duration.
type NullBackend struct {
	sampleRate int

	mu    sync.Mutex
	bytes int
}

func NewNullBackend(sampleRate int) *NullBackend {
	return &NullBackend{sampleRate: sampleRate}
}

func (b *NullBackend) Start() error {
	b.reset()
	return nil
}

func (b *NullBackend) SendAudio(pcm []byte) error {
	b.mu.Lock()
	b.bytes += len(pcm)
	b.mu.Unlock()
	return nil
}

func (b *NullBackend) PollTranslations() ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.bytes == 0 {
		return nil, nil
	}
	seconds := float64(b.bytes) / float64(b.sampleRate*2)
	b.bytes = 0
	return []string{fmt.Sprintf("[offline] processed about %.1f seconds of audio", seconds)}, nil
}

func (b *NullBackend) Flush() error {
	b.reset()
	return nil
}

func (b *NullBackend) Stop() error {
	b.reset()
	return nil
}

func (b *NullBackend) reset() {
	b.mu.Lock()
	b.bytes = 0
	b.mu.Unlock()
}

var _ backend.Backend = (*NullBackend)(nil)
