// Package service drives a crisis session: turn setup, directive
// submission, win and loss classification, and persistence. All methods are
// synchronous and the Director is single-threaded by construction; callers
// that share one across goroutines must serialize access themselves.
package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/louisbranch/basilisk/internal/cable"
	"github.com/louisbranch/basilisk/internal/crisis"
	apperrors "github.com/louisbranch/basilisk/internal/errors"
	"github.com/louisbranch/basilisk/internal/id"
	"github.com/louisbranch/basilisk/internal/random"
	"github.com/louisbranch/basilisk/internal/session/domain"
	"github.com/louisbranch/basilisk/internal/storage"
)

// ErrFrozen indicates a directive was submitted to an ended session.
var ErrFrozen = apperrors.New(apperrors.CodeSessionFrozen, "session has ended and no longer accepts directives")

// Config carries the dependencies for a new Director. Zero values select
// defaults: a crypto-random seed, the shipped tuning, no persistence.
type Config struct {
	Seed   int64
	Tuning crisis.Tuning
	Store  storage.Store
	Clock  func() time.Time
	IDGen  func() (string, error)
}

// Director owns all mutable state of one session: metrics, advisors, the
// hidden oracle, the autonomy band, the cable vault, and the seeded random
// stream every draw flows through.
type Director struct {
	session  domain.Session
	tuning   crisis.Tuning
	metrics  crisis.Metrics
	registry *crisis.Registry
	oracle   crisis.Oracle
	band     crisis.Band
	hostile  bool
	source   *random.Source
	rng      *rand.Rand
	vault    *cable.Vault
	store    storage.Store
	clock    func() time.Time
}

// New creates a session. The mole is drawn as the very first use of the
// random stream, so a seed fully determines the traitor.
func New(ctx context.Context, cfg Config) (*Director, error) {
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	idGen := cfg.IDGen
	if idGen == nil {
		idGen = id.NewID
	}
	tuning := cfg.Tuning
	if tuning == (crisis.Tuning{}) {
		tuning = crisis.DefaultTuning()
	}
	if err := tuning.Validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		generated, err := random.NewSeed()
		if err != nil {
			return nil, fmt.Errorf("generate seed: %w", err)
		}
		seed = generated
	}

	source := random.NewSource(seed)
	rng := rand.New(source)
	oracle := crisis.SelectMole(rng)

	session, err := domain.Create(seed, clock, idGen)
	if err != nil {
		return nil, err
	}

	d := &Director{
		session:  session,
		tuning:   tuning,
		metrics:  crisis.NewMetrics(),
		registry: crisis.NewRegistry(oracle),
		oracle:   oracle,
		band:     crisis.BandDormant,
		source:   source,
		rng:      rng,
		vault:    cable.NewVault(),
		store:    cfg.Store,
		clock:    clock,
	}

	if err := d.persist(ctx, nil); err != nil {
		return nil, err
	}
	return d, nil
}

// Load resumes a persisted session: identity, metrics, revealed suspicion,
// the pending cable batch, and the exact random stream position.
func Load(ctx context.Context, store storage.Store, sessionID string, tuning crisis.Tuning, clock func() time.Time) (*Director, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required to load a session")
	}
	if clock == nil {
		clock = time.Now
	}
	if tuning == (crisis.Tuning{}) {
		tuning = crisis.DefaultTuning()
	}

	record, err := store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", sessionID, err)
	}
	snapshot, err := store.GetSnapshot(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", sessionID, err)
	}

	source := random.NewSource(record.Seed)
	source.SetState(snapshot.RNGState)

	oracle := crisis.RestoreOracle(record.Mole)
	registry := crisis.NewRegistry(oracle)
	for name, value := range snapshot.Suspicion {
		registry.SetSuspicion(name, value)
	}
	registry.SetMoleNeutralized(snapshot.MoleNeutralized)

	vault := cable.NewVault()
	vault.Load(snapshot.Cables)

	session := domain.Session{
		ID:        record.ID,
		Seed:      record.Seed,
		Status:    domain.StatusFromString(record.Status),
		Outcome:   domain.Outcome(record.Outcome),
		StartedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
		EndedAt:   record.EndedAt,
	}

	return &Director{
		session:  session,
		tuning:   tuning,
		metrics:  snapshot.Metrics,
		registry: registry,
		oracle:   oracle,
		band:     snapshot.Band,
		hostile:  snapshot.Hostile,
		source:   source,
		rng:      rand.New(source),
		vault:    vault,
		store:    store,
		clock:    clock,
	}, nil
}

// StartTurn opens the next turn: accrues intel assets and generates the
// cable batch the player can read or decrypt this turn.
func (d *Director) StartTurn(ctx context.Context) ([]cable.Cable, error) {
	if d.session.Frozen() {
		return nil, ErrFrozen
	}

	turn := d.metrics.Turn + 1
	d.metrics.ApplyDelta(crisis.FieldIntel, intelGrant(turn))

	batch := cable.GenerateBatch(d.metrics, cableCount(turn), turn, d.rng)
	d.vault.Load(batch)

	if err := d.persist(ctx, nil); err != nil {
		return nil, err
	}
	return batch, nil
}

// Submit resolves one directive against the session. The returned result
// carries the updated metrics view and the full event list; on a terminal or
// winning turn the session freezes before Submit returns.
func (d *Director) Submit(ctx context.Context, directive crisis.Directive) (crisis.ResolveResult, error) {
	if d.session.Frozen() {
		return crisis.ResolveResult{}, ErrFrozen
	}

	result := crisis.Resolve(crisis.ResolveInput{
		Metrics:   d.metrics,
		Registry:  d.registry,
		Vault:     d.vault,
		Directive: directive,
	}, d.tuning, d.rng)

	d.metrics = result.Metrics
	d.band = result.Band
	if result.Hostile {
		d.hostile = true
	}

	if outcome, ended := d.classify(result); ended {
		d.session.End(outcome, d.clock())
	}

	if err := d.persist(ctx, result.Events); err != nil {
		return crisis.ResolveResult{}, err
	}
	return result, nil
}

// classify decides whether this turn ended the session and how.
func (d *Director) classify(result crisis.ResolveResult) (domain.Outcome, bool) {
	switch result.Terminal {
	case crisis.TerminalWar:
		return domain.OutcomeWar, true
	case crisis.TerminalCoup:
		return domain.OutcomeCoup, true
	case crisis.TerminalSystemFailure:
		return domain.OutcomeSystemFailure, true
	case crisis.TerminalSecretRevealed:
		return domain.OutcomeSecretRevealed, true
	}

	// Confirming the mole ends nothing on its own; the reckoning is a
	// directive and the session keeps running after it resolves. What it
	// changes is the ending: reaching the turn limit with the mole off the
	// board counts as an unmasking victory rather than mere survival.
	if d.metrics.Turn >= d.tuning.MaxTurns {
		if d.registry.MoleNeutralized() {
			return domain.OutcomeMoleUnmasked, true
		}
		return domain.OutcomeSurvived, true
	}
	return "", false
}

// Session returns the lifecycle view of the playthrough.
func (d *Director) Session() domain.Session {
	return d.session
}

// Metrics returns the current metric values.
func (d *Director) Metrics() crisis.Metrics {
	return d.metrics
}

// Band returns the current autonomy band.
func (d *Director) Band() crisis.Band {
	return d.band
}

// Hostile reports whether the system has ever entered the purging band.
func (d *Director) Hostile() bool {
	return d.hostile
}

// Advisors returns the roster with revealed suspicion values.
func (d *Director) Advisors() []crisis.Advisor {
	return d.registry.Advisors()
}

// Cables returns the pending cable batch.
func (d *Director) Cables() []cable.Cable {
	return d.vault.Pending()
}

func (d *Director) persist(ctx context.Context, events []crisis.Event) error {
	if d.store == nil {
		return nil
	}

	if len(events) > 0 {
		if err := d.store.AppendEvents(ctx, d.session.ID, d.metrics.Turn, events); err != nil {
			return fmt.Errorf("append events: %w", err)
		}
	}

	suspicion := make(map[crisis.AdvisorName]int)
	for _, advisor := range d.registry.Advisors() {
		suspicion[advisor.Name] = advisor.Suspicion
	}
	snapshot := storage.SnapshotRecord{
		SessionID:       d.session.ID,
		Turn:            d.metrics.Turn,
		Metrics:         d.metrics,
		Band:            d.band,
		Hostile:         d.hostile,
		Suspicion:       suspicion,
		MoleNeutralized: d.registry.MoleNeutralized(),
		Cables:          d.vault.Pending(),
		RNGState:        d.source.State(),
		UpdatedAt:       d.clock().UTC(),
	}
	if err := d.store.PutSnapshot(ctx, snapshot); err != nil {
		return fmt.Errorf("put snapshot: %w", err)
	}

	record := storage.SessionRecord{
		ID:        d.session.ID,
		Seed:      d.session.Seed,
		Mole:      d.oracle.Mole(),
		Status:    d.session.Status.String(),
		Outcome:   string(d.session.Outcome),
		CreatedAt: d.session.StartedAt,
		UpdatedAt: d.session.UpdatedAt,
		EndedAt:   d.session.EndedAt,
	}
	if err := d.store.PutSession(ctx, record); err != nil {
		return fmt.Errorf("put session: %w", err)
	}
	return nil
}

// intelGrant is the per-turn intel accrual, rising as the directorate's
// collection apparatus spins up.
func intelGrant(turn int) int {
	switch {
	case turn >= 6:
		return 3
	case turn >= 3:
		return 2
	default:
		return 1
	}
}

// cableCount is the per-turn traffic volume.
func cableCount(turn int) int {
	switch {
	case turn >= 8:
		return 5
	case turn >= 4:
		return 4
	default:
		return 3
	}
}
