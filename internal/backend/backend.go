package backend

import "github.com/foxseedlab/honyakun/internal/config"

// Backend is the streaming translation capability used by the session
// loop. Exactly two implementations exist: the live realtime client and
// the offline null backend, selected once at session construction by
// credential presence.
type Backend interface {
	// Start opens the session. It fails with a *ConfigurationError when
	// the backend is not usable as configured.
	Start() error

	// SendAudio transmits one PCM16 chunk. Empty chunks and calls before
	// Start are no-ops.
	SendAudio(pcm []byte) error

	// PollTranslations drains all currently buffered transcript fragments
	// without blocking beyond the receive deadline. A service error event
	// or closed connection returns a *ProtocolError and discards any
	// fragments collected in the same call.
	PollTranslations() ([]string, error)

	// Flush signals end of input where the protocol needs it. The realtime
	// endpoint detects utterance boundaries itself, so this may be a no-op.
	Flush() error

	// Stop releases the connection. Idempotent.
	Stop() error
}

// Factory builds a fresh backend for one session episode from the
// session's current configuration.
type Factory func(cfg *config.Config) Backend
