package repository

import (
	"context"
	"time"
)

type CreateSessionInput struct {
	Model          string
	TargetLanguage string
	StartedAt      time.Time
}

type CompleteSessionInput struct {
	SessionID  string
	EndedAt    time.Time
	StopReason string
}

type InsertSegmentInput struct {
	SessionID    string
	Content      string
	SegmentIndex int
	EmittedAt    time.Time
}

type Repository interface {
	CreateSession(ctx context.Context, input CreateSessionInput) (*Session, error)
	CompleteSession(ctx context.Context, input CompleteSessionInput) error
	InsertSegment(ctx context.Context, input InsertSegmentInput) error
	ListSegmentsBySessionID(ctx context.Context, sessionID string) ([]TranscriptSegment, error)
}
