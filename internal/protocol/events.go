package protocol

import (
	"encoding/json"
	"strings"
)

type EventKind int

const (
	KindUnknown EventKind = iota
	KindSessionAck
	KindTranscriptDelta
	KindTranscriptDone
	KindTextPart
	KindError
)

// Event is the parsed form of one inbound wire message. Text is set for
// transcript-bearing kinds, Message for KindError.
type Event struct {
	Kind    EventKind
	Type    string
	Text    string
	Message string
}

type wirePart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type wireError struct {
	Message string `json:"message"`
}

type wireEvent struct {
	Type       string     `json:"type"`
	Transcript string     `json:"transcript"`
	Text       string     `json:"text"`
	Stash      string     `json:"stash"`
	Message    string     `json:"message"`
	Part       *wirePart  `json:"part"`
	Error      *wireError `json:"error"`
}

// ParseEvent decodes one inbound message into its tagged variant.
// Unrecognized event types map to KindUnknown rather than an error so the
// drain loop can skip them without breaking on protocol additions.
func ParseEvent(payload []byte) (Event, error) {
	var raw wireEvent
	if err := json.Unmarshal(payload, &raw); err != nil {
		return Event{}, err
	}

	ev := Event{Kind: KindUnknown, Type: raw.Type}
	switch {
	case raw.Type == "session.created" || raw.Type == "session.updated":
		ev.Kind = KindSessionAck
	case raw.Type == "response.audio_transcript.delta":
		ev.Kind = KindTranscriptDelta
		ev.Text = raw.Transcript
	case raw.Type == "response.audio_transcript.done":
		ev.Kind = KindTranscriptDone
		ev.Text = raw.Transcript
	case strings.Contains(raw.Type, "response.text"):
		ev.Kind = KindTextPart
		ev.Text = textWithFallbacks(raw)
	case raw.Type == "response.content_part.added":
		if raw.Part != nil && raw.Part.Type == "text" {
			ev.Kind = KindTextPart
			ev.Text = raw.Part.Text
		}
	case raw.Type == "error":
		ev.Kind = KindError
		ev.Message = errorMessage(raw, payload)
	}
	return ev, nil
}

func textWithFallbacks(raw wireEvent) string {
	if raw.Text != "" {
		return raw.Text
	}
	if raw.Stash != "" {
		return raw.Stash
	}
	if raw.Part != nil {
		return raw.Part.Text
	}
	return ""
}

func errorMessage(raw wireEvent, payload []byte) string {
	if raw.Message != "" {
		return raw.Message
	}
	if raw.Error != nil && raw.Error.Message != "" {
		return raw.Error.Message
	}
	return string(payload)
}
