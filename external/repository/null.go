package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/foxseedlab/honyakun/internal/repository"
	"github.com/google/uuid"
)

// NullRepository keeps sessions and segments in memory so the pipeline
// runs without DATABASE_URL configured.
type NullRepository struct {
	mu       sync.Mutex
	sessions map[string]*repository.Session
	segments map[string][]repository.TranscriptSegment
}

func NewNullRepository() repository.Repository {
	return &NullRepository{
		sessions: make(map[string]*repository.Session),
		segments: make(map[string][]repository.TranscriptSegment),
	}
}

func (r *NullRepository) CreateSession(_ context.Context, input repository.CreateSessionInput) (*repository.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := &repository.Session{
		ID:             uuid.NewString(),
		Model:          input.Model,
		TargetLanguage: input.TargetLanguage,
		StartedAt:      input.StartedAt,
		Status:         repository.SessionStatusRunning,
	}
	r.sessions[s.ID] = s
	return s, nil
}

func (r *NullRepository) CompleteSession(_ context.Context, input repository.CompleteSessionInput) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[input.SessionID]
	if !ok {
		return nil
	}
	endedAt := input.EndedAt
	s.EndedAt = &endedAt
	s.Status = repository.SessionStatusCompleted
	s.StopReason = input.StopReason
	return nil
}

func (r *NullRepository) InsertSegment(_ context.Context, input repository.InsertSegmentInput) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.segments[input.SessionID] = append(r.segments[input.SessionID], repository.TranscriptSegment{
		ID:           uuid.NewString(),
		SessionID:    input.SessionID,
		Content:      input.Content,
		SegmentIndex: input.SegmentIndex,
		EmittedAt:    input.EmittedAt,
		CreatedAt:    input.EmittedAt,
	})
	return nil
}

func (r *NullRepository) ListSegmentsBySessionID(_ context.Context, sessionID string) ([]repository.TranscriptSegment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := append([]repository.TranscriptSegment(nil), r.segments[sessionID]...)
	sort.Slice(list, func(i, j int) bool { return list[i].SegmentIndex < list[j].SegmentIndex })
	return list, nil
}
