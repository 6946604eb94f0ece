package webhook

import "context"

const TranscriptWebhookSchemaVersion = 1

type TranscriptWebhookPayload struct {
	SchemaVersion   int    `json:"schema_version"`
	SessionID       string `json:"session_id"`
	Model           string `json:"model"`
	TargetLanguage  string `json:"target_language"`
	StartAt         string `json:"start_at"`
	EndAt           string `json:"end_at"`
	DurationSeconds int64  `json:"duration_seconds"`
	SegmentCount    int    `json:"segment_count"`
	StopReason      string `json:"stop_reason"`
	Transcript      string `json:"transcript"`
}

type Sender interface {
	SendTranscript(ctx context.Context, payload TranscriptWebhookPayload) error
}
