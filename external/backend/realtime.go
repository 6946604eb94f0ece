package backend

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/foxseedlab/honyakun/internal/backend"
	"github.com/foxseedlab/honyakun/internal/protocol"
	"github.com/gorilla/websocket"
)

const (
	baseEndpoint     = "wss://dashscope.aliyuncs.com/api-ws/v1/realtime"
	receiveTimeout   = 100 * time.Millisecond
	handshakeTimeout = 10 * time.Second
	inboxCapacity    = 256
)

type RealtimeConfig struct {
	APIKey   string
	Model    string
	Language string
}

// wireConn is the subset of *websocket.Conn the client uses, extracted so
// tests can drive the session with a scripted connection.
type wireConn interface {
	WriteMessage(messageType int, data []byte) error
	ReadMessage() (messageType int, p []byte, err error)
	Close() error
}

type dialFunc func(endpoint string, header http.Header) (wireConn, error)

// liveSession is the state of one open connection. A dedicated reader
// goroutine moves inbound messages into inbox; a read failure lands in
// readErr and ends the goroutine. The websocket package does not support
// deadline-based polling (a timed-out read corrupts the connection), so
// the non-blocking drain happens on the channel side instead.
type liveSession struct {
	conn    wireConn
	inbox   chan []byte
	readErr chan error
	done    chan struct{}
}

// RealtimeClient streams PCM16 audio to the realtime translation endpoint
// over one websocket session and drains incremental transcript events.
type RealtimeClient struct {
	cfg  RealtimeConfig
	dial dialFunc
	ids  *protocol.EventIDGenerator

	// writeMu serializes every socket write; the session negotiation and
	// the audio path share one connection.
	writeMu sync.Mutex
	mu      sync.Mutex
	sess    *liveSession
}

func NewRealtimeClient(cfg RealtimeConfig) *RealtimeClient {
	return &RealtimeClient{
		cfg: cfg,
		dial: func(endpoint string, header http.Header) (wireConn, error) {
			dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
			conn, _, err := dialer.Dial(endpoint, header)
			if err != nil {
				return nil, err
			}
			return conn, nil
		},
		ids: protocol.NewEventIDGenerator(),
	}
}

func (c *RealtimeClient) Start() error {
	if c.cfg.APIKey == "" {
		return &backend.ConfigurationError{Reason: "DASHSCOPE_API_KEY is not set"}
	}

	endpoint := fmt.Sprintf("%s?model=%s", baseEndpoint, url.QueryEscape(c.cfg.Model))
	header := http.Header{"Authorization": {"Bearer " + c.cfg.APIKey}}
	conn, err := c.dial(endpoint, header)
	if err != nil {
		return &backend.ProtocolError{Message: "connect failed: " + err.Error(), Err: err}
	}

	sess := &liveSession{
		conn:    conn,
		inbox:   make(chan []byte, inboxCapacity),
		readErr: make(chan error, 1),
		done:    make(chan struct{}),
	}
	c.mu.Lock()
	c.sess = sess
	c.mu.Unlock()
	go readLoop(sess)

	update := protocol.NewSessionUpdate(c.ids.Next(), c.cfg.Language)
	if err := c.writeJSON(conn, update); err != nil {
		_ = c.Stop()
		return err
	}
	slog.Info("realtime session opened", "model", c.cfg.Model, "language", c.cfg.Language)
	return nil
}

func readLoop(sess *liveSession) {
	for {
		_, payload, err := sess.conn.ReadMessage()
		if err != nil {
			sess.readErr <- err
			return
		}
		select {
		case sess.inbox <- payload:
		case <-sess.done:
			return
		}
	}
}

func (c *RealtimeClient) SendAudio(pcm []byte) error {
	if len(pcm) == 0 {
		return nil
	}
	sess := c.current()
	if sess == nil {
		return nil
	}
	return c.writeJSON(sess.conn, protocol.NewAudioAppend(c.ids.Next(), pcm))
}

// PollTranslations drains buffered inbound messages, waiting at most
// receiveTimeout for the next one; the timeout is the normal no-more-data
// condition. An error event from the service or a dropped connection
// takes precedence over fragments collected earlier in the same call.
func (c *RealtimeClient) PollTranslations() ([]string, error) {
	sess := c.current()
	if sess == nil {
		return nil, nil
	}

	var texts []string
	for {
		select {
		case payload := <-sess.inbox:
			ev, err := protocol.ParseEvent(payload)
			if err != nil {
				slog.Warn("discarding undecodable realtime event", "error", err)
				continue
			}
			switch ev.Kind {
			case protocol.KindTranscriptDelta, protocol.KindTranscriptDone, protocol.KindTextPart:
				if ev.Text != "" {
					texts = append(texts, ev.Text)
				}
			case protocol.KindError:
				return nil, &backend.ProtocolError{Message: ev.Message}
			case protocol.KindSessionAck:
				slog.Debug("realtime session acknowledged", "event_type", ev.Type)
			default:
				slog.Debug("ignoring realtime event", "event_type", ev.Type)
			}
		case err := <-sess.readErr:
			return nil, &backend.ProtocolError{Message: "connection closed", Err: err}
		case <-time.After(receiveTimeout):
			return texts, nil
		}
	}
}

// Flush is a no-op: the remote service performs its own end-of-utterance
// detection.
func (c *RealtimeClient) Flush() error {
	return nil
}

func (c *RealtimeClient) Stop() error {
	c.mu.Lock()
	sess := c.sess
	c.sess = nil
	c.mu.Unlock()
	if sess == nil {
		return nil
	}
	close(sess.done)
	if err := sess.conn.Close(); err != nil {
		slog.Warn("realtime connection close failed", "error", err)
	}
	return nil
}

func (c *RealtimeClient) current() *liveSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sess
}

func (c *RealtimeClient) writeJSON(conn wireConn, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode realtime message: %w", err)
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
		return &backend.ProtocolError{Message: "send failed: " + err.Error(), Err: err}
	}
	return nil
}

var _ backend.Backend = (*RealtimeClient)(nil)
