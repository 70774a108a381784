// Package service hosts the MCP server for the crisis simulation. It keeps
// live sessions in memory and falls back to the snapshot store when a client
// refers to a session this process has not seen, so a reconnecting agent
// resumes exactly where it left off.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/basilisk/internal/crisis"
	"github.com/louisbranch/basilisk/internal/mcp/domain"
	session "github.com/louisbranch/basilisk/internal/session/service"
	"github.com/louisbranch/basilisk/internal/storage"
	"github.com/louisbranch/basilisk/internal/storage/sqlite"
)

const (
	// serverName identifies this MCP server to clients.
	serverName = "Basilisk Crisis MCP"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

// TransportKind identifies the MCP transport implementation.
type TransportKind string

// TransportStdio uses standard input/output for MCP. It is the only
// supported transport; the simulation never listens on a network.
const TransportStdio TransportKind = "stdio"

// Config configures the MCP server.
type Config struct {
	StorePath  string
	TuningPath string
	Transport  TransportKind
}

// Server hosts the MCP server and the live session table.
type Server struct {
	mcpServer *mcp.Server
	store     storage.Store
	closeFn   func() error
	tuning    crisis.Tuning
	clock     func() time.Time

	mu       sync.Mutex
	sessions map[string]*liveSession
}

// liveSession pairs a director with the lock that serializes access to it.
// The director is single-threaded; concurrent tool calls against the same
// session hold this lock for the whole read or resolution.
type liveSession struct {
	mu       sync.Mutex
	director *session.Director
}

// New creates a configured MCP server backed by a SQLite session store.
func New(cfg Config) (*Server, error) {
	if cfg.StorePath == "" {
		return nil, fmt.Errorf("store path is required")
	}

	tuning := crisis.DefaultTuning()
	if cfg.TuningPath != "" {
		loaded, err := crisis.LoadTuning(cfg.TuningPath)
		if err != nil {
			return nil, fmt.Errorf("load tuning: %w", err)
		}
		tuning = loaded
	}

	store, err := sqlite.Open(cfg.StorePath)
	if err != nil {
		return nil, fmt.Errorf("open store at %s: %w", cfg.StorePath, err)
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)

	server := &Server{
		mcpServer: mcpServer,
		store:     store,
		closeFn:   store.Close,
		tuning:    tuning,
		clock:     time.Now,
		sessions:  make(map[string]*liveSession),
	}
	registerCrisisTools(mcpServer, server)

	return server, nil
}

// Run creates and serves the MCP server until the context ends.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}
	if cfg.Transport != TransportStdio {
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}

	server, err := New(cfg)
	if err != nil {
		return err
	}
	return server.serveWithTransport(ctx, &mcp.StdioTransport{})
}

// Serve starts the MCP server on stdio and blocks until it stops or the
// context ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

// Close releases the session store held by the server.
func (s *Server) Close() error {
	if s == nil || s.closeFn == nil {
		return nil
	}
	closeFn := s.closeFn
	s.closeFn = nil
	return closeFn()
}

// serveWithTransport starts the MCP server using the provided transport.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	closeErr := s.Close()
	if closeErr != nil {
		if err == nil {
			return fmt.Errorf("close session store: %w", closeErr)
		}
		return fmt.Errorf("serve MCP: %v; close session store: %w", err, closeErr)
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

// StartSession creates a session and opens its first turn.
func (s *Server) StartSession(ctx context.Context, seed int64) (domain.SessionState, error) {
	director, err := session.New(ctx, session.Config{
		Seed:   seed,
		Tuning: s.tuning,
		Store:  s.store,
		Clock:  s.clock,
	})
	if err != nil {
		return domain.SessionState{}, err
	}
	if _, err := director.StartTurn(ctx); err != nil {
		return domain.SessionState{}, err
	}

	// Build the view before publishing the session, so no other tool call
	// can touch the director mid-read.
	state := sessionState(director)

	s.mu.Lock()
	s.sessions[director.Session().ID] = &liveSession{director: director}
	s.mu.Unlock()

	return state, nil
}

// SessionStatus returns the player-visible state of one session.
func (s *Server) SessionStatus(ctx context.Context, sessionID string) (domain.SessionState, error) {
	live, err := s.session(ctx, sessionID)
	if err != nil {
		return domain.SessionState{}, err
	}

	live.mu.Lock()
	defer live.mu.Unlock()
	return sessionState(live.director), nil
}

// SubmitDirective resolves one directive. If the session survives the turn
// the next one opens before the report is built, so the returned cables are
// the batch the client acts on next.
func (s *Server) SubmitDirective(ctx context.Context, sessionID, directive, target string) (domain.TurnReport, error) {
	live, err := s.session(ctx, sessionID)
	if err != nil {
		return domain.TurnReport{}, err
	}

	live.mu.Lock()
	defer live.mu.Unlock()
	director := live.director

	result, err := director.Submit(ctx, crisis.Directive{
		Kind:   crisis.KindFromString(directive),
		Target: target,
	})
	if err != nil {
		return domain.TurnReport{}, err
	}

	if !director.Session().Frozen() {
		if _, err := director.StartTurn(ctx); err != nil {
			return domain.TurnReport{}, err
		}
	}

	return domain.TurnReport{
		State:  sessionState(director),
		Events: eventStates(result.Events),
	}, nil
}

// session returns the live session or resumes it from the store.
func (s *Server) session(ctx context.Context, sessionID string) (*liveSession, error) {
	s.mu.Lock()
	live, ok := s.sessions[sessionID]
	s.mu.Unlock()
	if ok {
		return live, nil
	}

	director, err := session.Load(ctx, s.store, sessionID, s.tuning, s.clock)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.sessions[sessionID]; ok {
		// Another call resumed this session while we were loading; keep the
		// established director so every caller shares one stream.
		return existing, nil
	}
	live = &liveSession{director: director}
	s.sessions[sessionID] = live
	return live, nil
}

// sessionState builds the player-visible view of one director.
func sessionState(director *session.Director) domain.SessionState {
	record := director.Session()
	metrics := director.Metrics()

	state := domain.SessionState{
		SessionID: record.ID,
		Seed:      record.Seed,
		Status:    record.Status.String(),
		Outcome:   string(record.Outcome),
		Hostile:   director.Hostile(),
		Metrics: domain.MetricsState{
			Turn:         metrics.Turn,
			Defcon:       metrics.Defcon,
			Stability:    metrics.Stability,
			SystemStatus: metrics.SystemStatus,
			Intel:        metrics.Intel,
		},
	}

	for _, advisor := range director.Advisors() {
		state.Advisors = append(state.Advisors, domain.AdvisorState{
			Name:      string(advisor.Name),
			Suspicion: advisor.Suspicion,
		})
	}

	for _, c := range director.Cables() {
		view := domain.CableState{
			ID:          c.ID,
			Type:        string(c.Type),
			Clearance:   c.Clearance,
			Timestamp:   c.Timestamp,
			Encrypted:   c.Encrypted,
			Reliability: c.Reliability,
		}
		if c.Encrypted {
			view.DecryptCost = c.DecryptCost
		} else {
			view.Content = c.Content
		}
		state.Cables = append(state.Cables, view)
	}

	return state
}

// eventStates converts engine events into the wire view.
func eventStates(events []crisis.Event) []domain.EventState {
	views := make([]domain.EventState, 0, len(events))
	for _, event := range events {
		views = append(views, domain.EventState{
			Type:    string(event.Type),
			Message: event.Message,
		})
	}
	return views
}
