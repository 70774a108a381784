package basilisk

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/louisbranch/basilisk/internal/crisis"
	"github.com/louisbranch/basilisk/internal/render"
	"github.com/louisbranch/basilisk/internal/session/service"
)

const banner = `STRATEGIC AUTONOMOUS RESPONSE DIRECTORATE
TERMINAL 7 · CLEARANCE ULTRA
`

const helpText = `directives:
  investigate (inv)      audit the weapon program
  contain (con)          de-escalate through back channels
  escalate (esc)         raise military readiness
  leak                   release classified material
  decrypt (dec) <id>     decrypt one cable
  trace (tr)             triangulate the mole's signal
  interrogate (int) <advisor>
  consult (ask) <advisor>
  execute (exec)         silence a confirmed mole
  turn (flip)            flip a confirmed mole into a double agent
  quit
`

// Console runs one session as a line-oriented terminal dialogue.
type Console struct {
	director *service.Director
	renderer *render.Renderer
	out      io.Writer
}

// NewConsole wraps a director for interactive play.
func NewConsole(director *service.Director, out io.Writer) *Console {
	return &Console{
		director: director,
		renderer: render.New(),
		out:      out,
	}
}

// Play runs the turn loop until the session ends, input closes, or the
// player quits. A quit mid-session is not an error; the session persists
// and can be resumed.
func (c *Console) Play(ctx context.Context, input io.Reader) error {
	fmt.Fprintf(c.out, "%s\n", banner)
	fmt.Fprintf(c.out, "SESSION %s · SEED %d\n\n", c.director.Session().ID, c.director.Session().Seed)

	scanner := bufio.NewScanner(input)
	for !c.director.Session().Frozen() {
		cables, err := c.director.StartTurn(ctx)
		if err != nil {
			return err
		}

		fmt.Fprintln(c.out, c.renderer.StatusPanel(c.director.Metrics(), c.director.Advisors(), c.director.Hostile()))
		fmt.Fprintln(c.out, c.renderer.Cables(cables))

		directive, ok := c.prompt(scanner)
		if !ok {
			return nil
		}

		result, err := c.director.Submit(ctx, directive)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.out, c.renderer.Events(result.Events))
	}

	fmt.Fprintln(c.out, c.renderer.OutcomeBanner(c.director.Session().Outcome))
	return nil
}

// prompt reads lines until one parses as a directive. It returns false when
// the player quits or input closes.
func (c *Console) prompt(scanner *bufio.Scanner) (crisis.Directive, bool) {
	for {
		fmt.Fprint(c.out, "> ")
		if !scanner.Scan() {
			return crisis.Directive{}, false
		}
		line := strings.TrimSpace(scanner.Text())

		switch strings.ToLower(line) {
		case "":
			continue
		case "quit", "exit":
			return crisis.Directive{}, false
		case "help", "?":
			fmt.Fprint(c.out, helpText)
			continue
		}

		directive, err := parseDirective(line)
		if err != nil {
			fmt.Fprintf(c.out, "%v\n", err)
			continue
		}
		return directive, true
	}
}

// parseDirective splits a console line into a directive and its target.
func parseDirective(line string) (crisis.Directive, error) {
	fields := strings.Fields(line)
	kind := crisis.KindFromString(fields[0])
	if kind == crisis.DirectiveUnspecified {
		return crisis.Directive{}, fmt.Errorf("unrecognized directive %q, try help", fields[0])
	}

	target := strings.Join(fields[1:], " ")
	if kind.NeedsTarget() && target == "" {
		return crisis.Directive{}, fmt.Errorf("%s needs a target", kind)
	}
	return crisis.Directive{Kind: kind, Target: target}, nil
}
