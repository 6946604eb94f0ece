package session

import (
	"github.com/foxseedlab/honyakun/internal/audio"
	"github.com/foxseedlab/honyakun/internal/backend"
	"github.com/foxseedlab/honyakun/internal/config"
	"github.com/foxseedlab/honyakun/internal/repository"
	"github.com/foxseedlab/honyakun/internal/webhook"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Session, error) {
		cfg := do.MustInvoke[*config.Config](i)
		newBackend := do.MustInvoke[backend.Factory](i)
		newSource := do.MustInvoke[audio.SourceFactory](i)
		repo := do.MustInvoke[repository.Repository](i)
		wh := do.MustInvoke[webhook.Sender](i)
		return NewSession(cfg, newBackend, newSource, repo, wh), nil
	})
}
