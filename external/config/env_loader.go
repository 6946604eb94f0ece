package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	internalconfig "github.com/foxseedlab/honyakun/internal/config"
)

type envConfig struct {
	Env                  string `env:"ENV" envDefault:"production"`
	APIKey               string `env:"DASHSCOPE_API_KEY"`
	Model                string `env:"TRANSLATE_MODEL" envDefault:"qwen3-livetranslate-flash-realtime"`
	TargetLanguage       string `env:"TARGET_LANGUAGE" envDefault:"zh"`
	SampleRate           int    `env:"SAMPLE_RATE" envDefault:"16000"`
	FrameSize            int    `env:"AUDIO_FRAME_SIZE" envDefault:"2048"`
	AudioInputPath       string `env:"AUDIO_INPUT_PATH" envDefault:"-"`
	DatabaseURL          string `env:"DATABASE_URL"`
	TranscriptWebhookURL string `env:"TRANSCRIPT_WEBHOOK_URL"`
}

func Load() (*internalconfig.Config, error) {
	var raw envConfig
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("environment variables are invalid or missing: %w", err)
	}

	cfg := &internalconfig.Config{
		Env:                  raw.Env,
		APIKey:               raw.APIKey,
		Model:                raw.Model,
		TargetLanguage:       raw.TargetLanguage,
		SampleRate:           raw.SampleRate,
		FrameSize:            raw.FrameSize,
		AudioInputPath:       raw.AudioInputPath,
		DatabaseURL:          raw.DatabaseURL,
		TranscriptWebhookURL: raw.TranscriptWebhookURL,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
