// Package storage defines the persistence interfaces for crisis sessions.
// Implementations live in subpackages; the service layer depends only on
// these interfaces.
package storage

import (
	"context"
	"time"

	"github.com/louisbranch/basilisk/internal/cable"
	"github.com/louisbranch/basilisk/internal/crisis"
	apperrors "github.com/louisbranch/basilisk/internal/errors"
)

// ErrNotFound indicates a requested persistence record is missing. Callers
// use it to distinguish "no such session" from data corruption failures.
var ErrNotFound = apperrors.New(apperrors.CodeNotFound, "record not found")

// SessionRecord is the durable identity of one crisis session. The mole is
// part of the record because the oracle picks it exactly once; a reload must
// not re-roll it.
type SessionRecord struct {
	ID        string
	Seed      int64
	Mole      crisis.AdvisorName
	Status    string
	Outcome   string
	CreatedAt time.Time
	UpdatedAt time.Time
	EndedAt   *time.Time
}

// SnapshotRecord is the complete resumable state after a resolved turn:
// metrics, revealed suspicion, whether the mole has been neutralized, the
// autonomy band, the pending cable batch, and the exact random stream
// position.
type SnapshotRecord struct {
	SessionID       string
	Turn            int
	Metrics         crisis.Metrics
	Band            crisis.Band
	Hostile         bool
	Suspicion       map[crisis.AdvisorName]int
	MoleNeutralized bool
	Cables          []cable.Cable
	RNGState        uint64
	UpdatedAt       time.Time
}

// EventRecord is one persisted resolution event. Seq orders events within a
// session across turns.
type EventRecord struct {
	SessionID string
	Seq       int64
	Turn      int
	Type      string
	Message   string
	CreatedAt time.Time
}

// SessionStore persists session identity and lifecycle.
type SessionStore interface {
	PutSession(ctx context.Context, record SessionRecord) error
	GetSession(ctx context.Context, id string) (SessionRecord, error)
	ListSessions(ctx context.Context) ([]SessionRecord, error)
}

// SnapshotStore persists the latest resumable state per session.
type SnapshotStore interface {
	PutSnapshot(ctx context.Context, record SnapshotRecord) error
	GetSnapshot(ctx context.Context, sessionID string) (SnapshotRecord, error)
}

// EventStore appends and replays the session event log. Seq values are
// assigned by the store in append order.
type EventStore interface {
	AppendEvents(ctx context.Context, sessionID string, turn int, events []crisis.Event) error
	ListEvents(ctx context.Context, sessionID string) ([]EventRecord, error)
}

// Store bundles every persistence concern of a session backend.
type Store interface {
	SessionStore
	SnapshotStore
	EventStore
	Close() error
}
