// Package domain defines the MCP tool surface of the crisis simulation:
// input and output schemas, tool definitions, and handlers. Handlers call
// into a Service and never touch engine state directly.
//
// Only the public metrics cross this boundary. Corruption, weapon progress,
// and secrecy are hidden state; an agent client learns about them the same
// way a human player does, through cables and anomaly events.
package domain

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Service is the session surface the crisis tools call into.
type Service interface {
	// StartSession creates a session and opens its first turn. A zero seed
	// selects a crypto-random one.
	StartSession(ctx context.Context, seed int64) (SessionState, error)
	// SessionStatus returns the current player-visible state.
	SessionStatus(ctx context.Context, sessionID string) (SessionState, error)
	// SubmitDirective resolves one directive and, when the session survives
	// the turn, opens the next one.
	SubmitDirective(ctx context.Context, sessionID, directive, target string) (TurnReport, error)
}

// MetricsState is the public slice of the engine metrics.
type MetricsState struct {
	Turn         int `json:"turn" jsonschema:"completed turn count"`
	Defcon       int `json:"defcon" jsonschema:"readiness level, 5 calm down to 1 war"`
	Stability    int `json:"stability" jsonschema:"government stability, 0 to 100"`
	SystemStatus int `json:"system_status" jsonschema:"infrastructure health, 0 to 100"`
	Intel        int `json:"intel" jsonschema:"spendable intel assets"`
}

// AdvisorState is one cabinet member with revealed suspicion.
type AdvisorState struct {
	Name      string `json:"name" jsonschema:"advisor name"`
	Suspicion int    `json:"suspicion" jsonschema:"revealed suspicion, 0 to 100"`
}

// CableState is one pending cable. Encrypted cables carry no content until
// decrypted with a DECRYPT directive.
type CableState struct {
	ID          string  `json:"id" jsonschema:"cable identifier, target for DECRYPT"`
	Type        string  `json:"type" jsonschema:"traffic category"`
	Clearance   string  `json:"clearance" jsonschema:"classification marking"`
	Timestamp   string  `json:"timestamp" jsonschema:"transmission time"`
	Content     string  `json:"content,omitempty" jsonschema:"cable text, empty while encrypted"`
	Encrypted   bool    `json:"encrypted" jsonschema:"whether the cable is still encrypted"`
	DecryptCost int     `json:"decrypt_cost,omitempty" jsonschema:"intel cost to decrypt"`
	Reliability float64 `json:"reliability" jsonschema:"source reliability, 0 to 1"`
}

// EventState is one resolution event.
type EventState struct {
	Type    string `json:"type" jsonschema:"event type"`
	Message string `json:"message" jsonschema:"event text"`
}

// SessionState is the player-visible view of one session.
type SessionState struct {
	SessionID string         `json:"session_id" jsonschema:"session identifier"`
	Seed      int64          `json:"seed" jsonschema:"seed that reproduces this playthrough"`
	Status    string         `json:"status" jsonschema:"ACTIVE or ENDED"`
	Outcome   string         `json:"outcome,omitempty" jsonschema:"final outcome once ended"`
	Hostile   bool           `json:"hostile" jsonschema:"whether command authority has been seized"`
	Metrics   MetricsState   `json:"metrics" jsonschema:"public metric values"`
	Advisors  []AdvisorState `json:"advisors" jsonschema:"cabinet roster"`
	Cables    []CableState   `json:"cables" jsonschema:"pending cable traffic"`
}

// TurnReport is the outcome of one submitted directive.
type TurnReport struct {
	State  SessionState `json:"state" jsonschema:"state after the turn"`
	Events []EventState `json:"events" jsonschema:"resolution event feed"`
}

// CrisisStartInput requests a new session.
type CrisisStartInput struct {
	Seed int64 `json:"seed,omitempty" jsonschema:"optional seed for a reproducible playthrough"`
}

// CrisisStatusInput requests the current state of a session.
type CrisisStatusInput struct {
	SessionID string `json:"session_id" jsonschema:"session identifier"`
}

// CrisisSubmitInput submits one directive.
type CrisisSubmitInput struct {
	SessionID string `json:"session_id" jsonschema:"session identifier"`
	Directive string `json:"directive" jsonschema:"INVESTIGATE, CONTAIN, ESCALATE, LEAK, DECRYPT, TRACE, INTERROGATE, CONSULT, or EXECUTE/TURN once the mole is confirmed"`
	Target    string `json:"target,omitempty" jsonschema:"advisor name for INTERROGATE/CONSULT, cable id for DECRYPT"`
}

// CrisisConsultInput requests advice from one advisor.
type CrisisConsultInput struct {
	SessionID string `json:"session_id" jsonschema:"session identifier"`
	Advisor   string `json:"advisor" jsonschema:"advisor to consult"`
}

// CrisisStartTool defines the MCP tool schema for starting a session.
func CrisisStartTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "crisis_start",
		Description: "Starts a crisis session and opens its first turn",
	}
}

// CrisisStatusTool defines the MCP tool schema for reading session state.
func CrisisStatusTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "crisis_status",
		Description: "Returns the player-visible state of a crisis session",
	}
}

// CrisisSubmitTool defines the MCP tool schema for submitting a directive.
func CrisisSubmitTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "crisis_submit",
		Description: "Submits one directive, resolving the current turn",
	}
}

// CrisisConsultTool defines the MCP tool schema for consulting an advisor.
func CrisisConsultTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "crisis_consult",
		Description: "Spends the turn asking one advisor for a recommendation",
	}
}

// CrisisStartHandler executes a session start request.
func CrisisStartHandler(svc Service) mcp.ToolHandlerFor[CrisisStartInput, SessionState] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CrisisStartInput) (*mcp.CallToolResult, SessionState, error) {
		state, err := svc.StartSession(ctx, input.Seed)
		if err != nil {
			return nil, SessionState{}, fmt.Errorf("crisis start failed: %w", err)
		}
		return nil, state, nil
	}
}

// CrisisStatusHandler executes a session status request.
func CrisisStatusHandler(svc Service) mcp.ToolHandlerFor[CrisisStatusInput, SessionState] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CrisisStatusInput) (*mcp.CallToolResult, SessionState, error) {
		state, err := svc.SessionStatus(ctx, input.SessionID)
		if err != nil {
			return nil, SessionState{}, fmt.Errorf("crisis status failed: %w", err)
		}
		return nil, state, nil
	}
}

// CrisisSubmitHandler executes a directive submission.
func CrisisSubmitHandler(svc Service) mcp.ToolHandlerFor[CrisisSubmitInput, TurnReport] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CrisisSubmitInput) (*mcp.CallToolResult, TurnReport, error) {
		report, err := svc.SubmitDirective(ctx, input.SessionID, input.Directive, input.Target)
		if err != nil {
			return nil, TurnReport{}, fmt.Errorf("crisis submit failed: %w", err)
		}
		return nil, report, nil
	}
}

// CrisisConsultHandler executes a consultation, which is a directive like any
// other and consumes the turn.
func CrisisConsultHandler(svc Service) mcp.ToolHandlerFor[CrisisConsultInput, TurnReport] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CrisisConsultInput) (*mcp.CallToolResult, TurnReport, error) {
		report, err := svc.SubmitDirective(ctx, input.SessionID, "CONSULT", input.Advisor)
		if err != nil {
			return nil, TurnReport{}, fmt.Errorf("crisis consult failed: %w", err)
		}
		return nil, report, nil
	}
}
