package protocol

import "testing"

func TestParseEvent(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		wantKind EventKind
		wantText string
		wantMsg  string
	}{
		{
			name:     "session created ack",
			payload:  `{"type":"session.created","session":{"id":"sess_1"}}`,
			wantKind: KindSessionAck,
		},
		{
			name:     "session updated ack",
			payload:  `{"type":"session.updated"}`,
			wantKind: KindSessionAck,
		},
		{
			name:     "transcript delta",
			payload:  `{"type":"response.audio_transcript.delta","transcript":"hello"}`,
			wantKind: KindTranscriptDelta,
			wantText: "hello",
		},
		{
			name:     "transcript done",
			payload:  `{"type":"response.audio_transcript.done","transcript":"hello world"}`,
			wantKind: KindTranscriptDone,
			wantText: "hello world",
		},
		{
			name:     "response text delta",
			payload:  `{"type":"response.text.delta","text":"abc"}`,
			wantKind: KindTextPart,
			wantText: "abc",
		},
		{
			name:     "response text falls back to stash",
			payload:  `{"type":"response.text.done","stash":"stashed"}`,
			wantKind: KindTextPart,
			wantText: "stashed",
		},
		{
			name:     "response text falls back to nested part",
			payload:  `{"type":"response.text.done","part":{"type":"text","text":"nested"}}`,
			wantKind: KindTextPart,
			wantText: "nested",
		},
		{
			name:     "content part added with text part",
			payload:  `{"type":"response.content_part.added","part":{"type":"text","text":"part text"}}`,
			wantKind: KindTextPart,
			wantText: "part text",
		},
		{
			name:     "content part added with audio part is ignored",
			payload:  `{"type":"response.content_part.added","part":{"type":"audio"}}`,
			wantKind: KindUnknown,
		},
		{
			name:     "error with top-level message",
			payload:  `{"type":"error","message":"quota exceeded"}`,
			wantKind: KindError,
			wantMsg:  "quota exceeded",
		},
		{
			name:     "error with nested message",
			payload:  `{"type":"error","error":{"message":"invalid session"}}`,
			wantKind: KindError,
			wantMsg:  "invalid session",
		},
		{
			name:     "error without message falls back to raw payload",
			payload:  `{"type":"error","code":500}`,
			wantKind: KindError,
			wantMsg:  `{"type":"error","code":500}`,
		},
		{
			name:     "unrecognized type",
			payload:  `{"type":"input_audio_buffer.committed"}`,
			wantKind: KindUnknown,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := ParseEvent([]byte(tt.payload))
			if err != nil {
				t.Fatalf("unexpected parse error: %v", err)
			}
			if ev.Kind != tt.wantKind {
				t.Fatalf("unexpected kind: got %d, want %d", ev.Kind, tt.wantKind)
			}
			if ev.Text != tt.wantText {
				t.Fatalf("unexpected text: got %q, want %q", ev.Text, tt.wantText)
			}
			if ev.Message != tt.wantMsg {
				t.Fatalf("unexpected message: got %q, want %q", ev.Message, tt.wantMsg)
			}
		})
	}
}

func TestParseEvent_InvalidJSON(t *testing.T) {
	if _, err := ParseEvent([]byte("not json")); err == nil {
		t.Fatal("expected error for invalid json")
	}
}
