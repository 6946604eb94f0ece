package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	audioimpl "github.com/foxseedlab/honyakun/external/audio"
	backendimpl "github.com/foxseedlab/honyakun/external/backend"
	configloader "github.com/foxseedlab/honyakun/external/config"
	repositoryimpl "github.com/foxseedlab/honyakun/external/repository"
	webhookimpl "github.com/foxseedlab/honyakun/external/webhook"
	"github.com/foxseedlab/honyakun/internal/config"
	"github.com/foxseedlab/honyakun/internal/session"
	"github.com/joho/godotenv"
	"github.com/samber/do/v2"
)

const idlePollInterval = 200 * time.Millisecond

func main() {
	_ = godotenv.Load()

	slog.Info("startup: loading configuration")
	cfg := mustLoadConfig()
	initLogger(cfg)
	slog.Info("startup: configuration loaded", "env", cfg.Env, "live", cfg.HasCredential())

	slog.Info("startup: building dependency graph")
	injector := setupDI(cfg)

	slog.Info("startup: launching translation session")
	runTranslator(injector)
}

func mustLoadConfig() *config.Config {
	cfg, err := configloader.Load()
	if err != nil {
		slog.Error("config validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

func initLogger(cfg *config.Config) {
	logLevel := slog.LevelInfo
	if cfg.IsDevelopment() {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))
}

func setupDI(cfg *config.Config) do.Injector {
	injector := do.New()

	do.ProvideValue(injector, cfg)
	repositoryimpl.RegisterDI(injector)
	audioimpl.RegisterDI(injector)
	backendimpl.RegisterDI(injector)
	webhookimpl.RegisterDI(injector)
	session.RegisterDI(injector)

	return injector
}

func runTranslator(injector do.Injector) {
	sess, err := do.Invoke[*session.Session](injector)
	if err != nil {
		slog.Error("failed to resolve session", "error", err)
		os.Exit(1)
	}

	// Increments go to stdout as a raw subtitle stream; logs stay on stderr.
	sess.SetListener(session.Listener{
		OnTextIncrement: func(text string) {
			fmt.Print(text)
		},
		OnError: func(message string) {
			slog.Error("session error", "message", message)
		},
	})
	sess.Start()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	ticker := time.NewTicker(idlePollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-sigCh:
			slog.Info("shutting down")
			sess.Stop()
			fmt.Println()
			return
		case <-ticker.C:
			if !sess.IsRunning() {
				fmt.Println()
				return
			}
		}
	}
}
