package repository

import "time"

type SessionStatus string

const (
	SessionStatusRunning   SessionStatus = "running"
	SessionStatusCompleted SessionStatus = "completed"
)

type Session struct {
	ID             string
	Model          string
	TargetLanguage string
	StartedAt      time.Time
	EndedAt        *time.Time
	Status         SessionStatus
	StopReason     string
}

type TranscriptSegment struct {
	ID           string
	SessionID    string
	Content      string
	SegmentIndex int
	EmittedAt    time.Time
	CreatedAt    time.Time
}
