package protocol

import (
	"encoding/json"
	"regexp"
	"testing"
	"time"
)

func TestNewSessionUpdate_Payload(t *testing.T) {
	msg := NewSessionUpdate("event_1_1", "zh")
	b, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	want := `{"event_id":"event_1_1","type":"session.update","session":{"modalities":["text"],"input_audio_format":"pcm16","translation":{"language":"zh"}}}`
	if string(b) != want {
		t.Fatalf("unexpected payload:\n got %s\nwant %s", b, want)
	}
}

func TestNewAudioAppend_EncodesBase64(t *testing.T) {
	msg := NewAudioAppend("event_1_2", []byte{0x01, 0x02, 0x03})
	if msg.Type != TypeAudioBufferAppend {
		t.Fatalf("unexpected type: %s", msg.Type)
	}
	if msg.Audio != "AQID" {
		t.Fatalf("unexpected base64 audio: %s", msg.Audio)
	}
}

func TestEventIDGenerator_Format(t *testing.T) {
	gen := NewEventIDGenerator()
	gen.now = func() time.Time { return time.UnixMilli(1700000000000) }

	pattern := regexp.MustCompile(`^event_1700000000000_\d+$`)
	first := gen.Next()
	second := gen.Next()
	if !pattern.MatchString(first) {
		t.Fatalf("unexpected event id format: %s", first)
	}
	if first == second {
		t.Fatalf("expected unique ids, got %s twice", first)
	}
	if first != "event_1700000000000_1" || second != "event_1700000000000_2" {
		t.Fatalf("expected increasing counter, got %s then %s", first, second)
	}
}
