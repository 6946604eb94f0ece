package backend

import (
	"github.com/foxseedlab/honyakun/internal/backend"
	"github.com/foxseedlab/honyakun/internal/config"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(_ do.Injector) (backend.Factory, error) {
		return func(cfg *config.Config) backend.Backend {
			if cfg.HasCredential() {
				return NewRealtimeClient(RealtimeConfig{
					APIKey:   cfg.APIKey,
					Model:    cfg.Model,
					Language: cfg.TargetLanguage,
				})
			}
			return NewNullBackend(cfg.SampleRate)
		}, nil
	})
}
