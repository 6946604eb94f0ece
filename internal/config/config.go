package config

import "fmt"

type Config struct {
	Env                  string
	APIKey               string
	Model                string
	TargetLanguage       string
	SampleRate           int
	FrameSize            int
	AudioInputPath       string
	DatabaseURL          string
	TranscriptWebhookURL string
}

func (c *Config) Validate() error {
	for _, req := range c.requiredFieldChecks() {
		if req.value == "" {
			return fmt.Errorf("%s is required", req.name)
		}
	}
	if c.SampleRate <= 0 {
		return fmt.Errorf("SAMPLE_RATE must be positive, got %d", c.SampleRate)
	}
	if c.FrameSize <= 0 {
		return fmt.Errorf("AUDIO_FRAME_SIZE must be positive, got %d", c.FrameSize)
	}
	return nil
}

type requiredEnvField struct {
	name  string
	value string
}

func (c *Config) requiredFieldChecks() []requiredEnvField {
	return []requiredEnvField{
		{name: "TRANSLATE_MODEL", value: c.Model},
		{name: "TARGET_LANGUAGE", value: c.TargetLanguage},
		{name: "AUDIO_INPUT_PATH", value: c.AudioInputPath},
	}
}

// HasCredential selects the live realtime backend over the offline one.
func (c *Config) HasCredential() bool {
	return c.APIKey != ""
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
