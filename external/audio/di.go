package audio

import (
	"github.com/foxseedlab/honyakun/internal/audio"
	"github.com/foxseedlab/honyakun/internal/config"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(_ do.Injector) (audio.SourceFactory, error) {
		return func(cfg *config.Config) (audio.Source, error) {
			return OpenRawSource(cfg.AudioInputPath, cfg.FrameSize)
		}, nil
	})
}
