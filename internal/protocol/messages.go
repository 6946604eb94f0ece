package protocol

import (
	"encoding/base64"
	"fmt"
	"sync/atomic"
	"time"
)

const (
	TypeSessionUpdate     = "session.update"
	TypeAudioBufferAppend = "input_audio_buffer.append"
)

// SessionUpdate declares the session parameters right after connecting:
// text-only responses, pcm16 input, and the target translation language.
type SessionUpdate struct {
	EventID string          `json:"event_id"`
	Type    string          `json:"type"`
	Session SessionSettings `json:"session"`
}

type SessionSettings struct {
	Modalities       []string            `json:"modalities"`
	InputAudioFormat string              `json:"input_audio_format"`
	Translation      TranslationSettings `json:"translation"`
}

type TranslationSettings struct {
	Language string `json:"language"`
}

// AudioAppend carries one base64-encoded PCM chunk.
type AudioAppend struct {
	EventID string `json:"event_id"`
	Type    string `json:"type"`
	Audio   string `json:"audio"`
}

func NewSessionUpdate(eventID, language string) SessionUpdate {
	return SessionUpdate{
		EventID: eventID,
		Type:    TypeSessionUpdate,
		Session: SessionSettings{
			Modalities:       []string{"text"},
			InputAudioFormat: "pcm16",
			Translation:      TranslationSettings{Language: language},
		},
	}
}

func NewAudioAppend(eventID string, pcm []byte) AudioAppend {
	return AudioAppend{
		EventID: eventID,
		Type:    TypeAudioBufferAppend,
		Audio:   base64.StdEncoding.EncodeToString(pcm),
	}
}

// EventIDGenerator issues client event IDs of the form
// event_<epoch_millis>_<counter>. The counter keeps IDs unique across
// reconnects within one process.
type EventIDGenerator struct {
	counter atomic.Uint64
	now     func() time.Time
}

func NewEventIDGenerator() *EventIDGenerator {
	return &EventIDGenerator{now: time.Now}
}

func (g *EventIDGenerator) Next() string {
	n := g.counter.Add(1)
	return fmt.Sprintf("event_%d_%d", g.now().UnixMilli(), n)
}
