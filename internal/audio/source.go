package audio

import "github.com/foxseedlab/honyakun/internal/config"

// Source yields fixed-size mono float32 frames pulled by the session loop.
// ReadFrame blocks until a full frame is available and returns io.EOF when
// the stream ends.
type Source interface {
	ReadFrame() ([]float32, error)
	Close() error
}

type SourceFactory func(cfg *config.Config) (Source, error)
