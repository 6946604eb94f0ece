package session

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/foxseedlab/honyakun/internal/audio"
	"github.com/foxseedlab/honyakun/internal/backend"
	"github.com/foxseedlab/honyakun/internal/config"
	"github.com/foxseedlab/honyakun/internal/repository"
	"github.com/foxseedlab/honyakun/internal/transcript"
	"github.com/foxseedlab/honyakun/internal/webhook"
)

const stopWaitTimeout = 5 * time.Second

const (
	stopReasonRequested   = "stop requested"
	stopReasonAudioEnded  = "audio stream ended"
	stopReasonLoopFailure = "session error"
)

type State int

const (
	StateIdle State = iota
	StateRunning
	StateStopping
)

// Listener receives the session's two asynchronous notifications. Both
// callbacks are invoked from the background loop and must not block.
type Listener struct {
	OnTextIncrement func(text string)
	OnError         func(message string)
}

// episode is one Running span: a backend, an audio source, and the
// goroutine pumping between them.
type episode struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Session orchestrates one audio-capture/translate/reconcile loop.
// Start spawns a background goroutine that pulls audio frames, feeds the
// backend, and reconciles returned fragments into text increments for the
// listener. Stop cancels cooperatively and joins with a bounded wait.
type Session struct {
	newBackend backend.Factory
	newSource  audio.SourceFactory
	repo       repository.Repository
	webhook    webhook.Sender
	listener   Listener

	mu      sync.Mutex
	cfg     *config.Config
	state   State
	current *episode

	reconMu    sync.Mutex
	reconciler *transcript.Reconciler

	restartMu sync.Mutex
}

func NewSession(cfg *config.Config, newBackend backend.Factory, newSource audio.SourceFactory, repo repository.Repository, wh webhook.Sender) *Session {
	return &Session{
		newBackend: newBackend,
		newSource:  newSource,
		repo:       repo,
		webhook:    wh,
		cfg:        cfg,
		reconciler: transcript.NewReconciler(),
	}
}

// SetListener installs the notification callbacks. Call before Start.
func (s *Session) SetListener(l Listener) {
	s.listener = l
}

// Start begins a new streaming episode. A start request while already
// running is ignored.
func (s *Session) Start() {
	s.mu.Lock()
	if s.current != nil {
		select {
		case <-s.current.done:
			// Previous loop already exited on its own (audio EOF or a
			// backend error); treat the session as idle.
			s.current = nil
			s.state = StateIdle
		default:
		}
	}
	if s.state != StateIdle {
		s.mu.Unlock()
		slog.Info("start ignored, session not idle", "state", int(s.state))
		return
	}
	cfg := s.cfg
	ctx, cancel := context.WithCancel(context.Background())
	ep := &episode{cancel: cancel, done: make(chan struct{})}
	s.current = ep
	s.state = StateRunning
	s.mu.Unlock()

	s.reconMu.Lock()
	s.reconciler.Reset()
	s.reconMu.Unlock()

	slog.Info("session starting", "model", cfg.Model, "language", cfg.TargetLanguage, "live", cfg.HasCredential())
	go s.run(ctx, cfg, ep)
}

// Stop requests cooperative cancellation and waits for the background
// loop to exit, bounded by stopWaitTimeout. A timed-out join releases the
// episode reference without killing the goroutine.
func (s *Session) Stop() {
	s.mu.Lock()
	ep := s.current
	if ep == nil {
		s.mu.Unlock()
		return
	}
	s.state = StateStopping
	s.mu.Unlock()

	ep.cancel()
	select {
	case <-ep.done:
	case <-time.After(stopWaitTimeout):
		slog.Warn("session loop did not exit in time, releasing reference")
	}

	s.mu.Lock()
	if s.current == ep {
		s.current = nil
	}
	s.state = StateIdle
	s.mu.Unlock()
	slog.Info("session stopped")
}

// UpdateConfig swaps the configuration, restarting the session when it is
// currently running. Replacement is serialized stop-then-start; two
// episodes never overlap.
func (s *Session) UpdateConfig(cfg *config.Config) {
	s.restartMu.Lock()
	defer s.restartMu.Unlock()

	wasRunning := s.IsRunning()
	if wasRunning {
		s.Stop()
	}
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
	if wasRunning {
		s.Start()
	}
}

func (s *Session) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateRunning || s.current == nil {
		return false
	}
	select {
	case <-s.current.done:
		return false
	default:
		return true
	}
}

// Transcript returns the confirmed transcript so far.
func (s *Session) Transcript() string {
	s.reconMu.Lock()
	defer s.reconMu.Unlock()
	return s.reconciler.Text()
}

// ClearTranscript discards the confirmed transcript.
func (s *Session) ClearTranscript() {
	s.reconMu.Lock()
	s.reconciler.Reset()
	s.reconMu.Unlock()
}

// SyncTranscript re-baselines reconciliation to an externally edited
// snapshot of the displayed transcript.
func (s *Session) SyncTranscript(text string) {
	s.reconMu.Lock()
	s.reconciler.Sync(text)
	s.reconMu.Unlock()
}

func (s *Session) run(ctx context.Context, cfg *config.Config, ep *episode) {
	defer close(ep.done)
	defer ep.cancel()

	startedAt := time.Now()
	record := s.createRecord(cfg, startedAt)

	source, err := s.newSource(cfg)
	if err != nil {
		slog.Error("failed to open audio source", "error", err)
		s.notifyError(err)
		s.finalize(record, startedAt, 0, stopReasonLoopFailure)
		return
	}
	defer func() {
		if err := source.Close(); err != nil {
			slog.Warn("audio source close failed", "error", err)
		}
	}()

	b := s.newBackend(cfg)
	if err := b.Start(); err != nil {
		slog.Error("failed to start translation backend", "error", err)
		s.notifyError(err)
		s.finalize(record, startedAt, 0, stopReasonLoopFailure)
		return
	}
	defer func() {
		if err := b.Flush(); err != nil {
			slog.Warn("backend flush failed", "error", err)
		}
		if err := b.Stop(); err != nil {
			slog.Warn("backend stop failed", "error", err)
		}
	}()

	stopReason := stopReasonRequested
	segmentCount := 0
	lastFragment := ""
	for ctx.Err() == nil {
		frame, err := source.ReadFrame()
		if err == io.EOF {
			stopReason = stopReasonAudioEnded
			slog.Info("audio stream ended")
			break
		}
		if err != nil {
			stopReason = stopReasonLoopFailure
			slog.Error("audio read failed", "error", err)
			s.notifyError(err)
			break
		}

		if err := b.SendAudio(audio.FloatToPCM16(frame)); err != nil {
			stopReason = stopReasonLoopFailure
			slog.Error("audio send failed", "error", err)
			s.notifyError(err)
			break
		}

		fragments, err := b.PollTranslations()
		if err != nil {
			stopReason = stopReasonLoopFailure
			slog.Error("translation poll failed", "error", err)
			s.notifyError(err)
			break
		}
		for _, raw := range fragments {
			fragment := strings.TrimSpace(raw)
			if fragment == "" || fragment == lastFragment {
				continue
			}
			lastFragment = fragment

			s.reconMu.Lock()
			increment := s.reconciler.Apply(fragment)
			s.reconMu.Unlock()
			if increment == "" {
				continue
			}

			s.persistSegment(record, segmentCount, increment)
			segmentCount++
			if s.listener.OnTextIncrement != nil {
				s.listener.OnTextIncrement(increment)
			}
		}
	}

	s.finalize(record, startedAt, segmentCount, stopReason)
}

// createRecord is best-effort: a persistence failure must not block live
// translation.
func (s *Session) createRecord(cfg *config.Config, startedAt time.Time) *repository.Session {
	record, err := s.repo.CreateSession(context.Background(), repository.CreateSessionInput{
		Model:          cfg.Model,
		TargetLanguage: cfg.TargetLanguage,
		StartedAt:      startedAt,
	})
	if err != nil {
		slog.Error("failed to create session record", "error", err)
		return nil
	}
	slog.Info("session record created", "session_id", record.ID)
	return record
}

func (s *Session) persistSegment(record *repository.Session, index int, content string) {
	if record == nil {
		return
	}
	err := s.repo.InsertSegment(context.Background(), repository.InsertSegmentInput{
		SessionID:    record.ID,
		Content:      content,
		SegmentIndex: index,
		EmittedAt:    time.Now(),
	})
	if err != nil {
		slog.Error("failed to insert transcript segment", "error", err, "session_id", record.ID)
	}
}

func (s *Session) finalize(record *repository.Session, startedAt time.Time, segmentCount int, stopReason string) {
	if record == nil {
		return
	}
	ctx := context.Background()
	endedAt := time.Now()
	if err := s.repo.CompleteSession(ctx, repository.CompleteSessionInput{
		SessionID:  record.ID,
		EndedAt:    endedAt,
		StopReason: stopReason,
	}); err != nil {
		slog.Error("failed to complete session record", "error", err, "session_id", record.ID)
	}

	durationSeconds := int64(endedAt.Sub(startedAt).Seconds())
	if durationSeconds < 0 {
		durationSeconds = 0
	}
	payload := webhook.TranscriptWebhookPayload{
		SchemaVersion:   webhook.TranscriptWebhookSchemaVersion,
		SessionID:       record.ID,
		Model:           record.Model,
		TargetLanguage:  record.TargetLanguage,
		StartAt:         startedAt.Format(time.RFC3339),
		EndAt:           endedAt.Format(time.RFC3339),
		DurationSeconds: durationSeconds,
		SegmentCount:    segmentCount,
		StopReason:      stopReason,
		Transcript:      s.Transcript(),
	}
	if err := s.webhook.SendTranscript(ctx, payload); err != nil {
		slog.Error("failed to send webhook transcript", "error", err, "session_id", record.ID)
	}
	slog.Info("session finalized", "session_id", record.ID, "segments", segmentCount, "reason", stopReason)
}

func (s *Session) notifyError(err error) {
	if s.listener.OnError == nil {
		return
	}
	s.listener.OnError(err.Error())
}
