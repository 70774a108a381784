//go:build scenario

package crisis

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Shopify/go-lua"
)

const scenarioTypeName = "scenario"

// Scenario is a scripted playthrough: a seed, a directive sequence, and the
// assertions to run once the sequence has been applied.
type Scenario struct {
	Name     string
	Seed     int64
	MaxTurns int
	Steps    []Step
	Expects  []Expect
}

// Step is one submitted directive.
type Step struct {
	Directive string
	Target    string
}

// Expect is one post-run assertion.
type Expect struct {
	Kind  string
	Value string
}

func loadScenarioFromFile(path string) (*Scenario, error) {
	state := lua.NewState()
	lua.OpenLibraries(state)

	registerScenarioType(state)
	registerScenarioConstructor(state)

	if err := lua.LoadFile(state, path, ""); err != nil {
		return nil, fmt.Errorf("load lua: %w", err)
	}
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return nil, fmt.Errorf("run lua: %w", err)
	}

	if state.TypeOf(-1) != lua.TypeUserData {
		state.Pop(1)
		return nil, fmt.Errorf("scenario script must return Scenario")
	}
	ud := state.ToUserData(-1)
	state.Pop(1)
	scenario, ok := ud.(*Scenario)
	if !ok || scenario == nil {
		return nil, fmt.Errorf("scenario script returned invalid Scenario")
	}
	if strings.TrimSpace(scenario.Name) == "" {
		scenario.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return scenario, nil
}

func registerScenarioType(state *lua.State) {
	lua.NewMetaTable(state, scenarioTypeName)
	state.NewTable()
	lua.SetFunctions(state, scenarioMethods, 0)
	state.SetField(-2, "__index")
	state.Pop(1)
}

func registerScenarioConstructor(state *lua.State) {
	state.NewTable()
	lua.SetFunctions(state, scenarioConstructor, 0)
	state.SetGlobal("Scenario")
}

var scenarioConstructor = []lua.RegistryFunction{
	{Name: "new", Function: scenarioNew},
}

func scenarioNew(state *lua.State) int {
	name := lua.OptString(state, 1, "")
	scenario := &Scenario{Name: name}
	state.PushUserData(scenario)
	lua.SetMetaTableNamed(state, scenarioTypeName)
	return 1
}

var scenarioMethods = []lua.RegistryFunction{
	{Name: "seed", Function: scenarioSeed},
	{Name: "max_turns", Function: scenarioMaxTurns},
	{Name: "directive", Function: scenarioDirective},
	{Name: "expect_status", Function: scenarioExpectStatus},
	{Name: "expect_outcome", Function: scenarioExpectOutcome},
	{Name: "expect_event", Function: scenarioExpectEvent},
	{Name: "expect_turn", Function: scenarioExpectTurn},
	{Name: "expect_defcon", Function: scenarioExpectDefcon},
}

func checkScenario(state *lua.State) *Scenario {
	ud := lua.CheckUserData(state, 1, scenarioTypeName)
	if scenario, ok := ud.(*Scenario); ok && scenario != nil {
		return scenario
	}
	lua.ArgumentError(state, 1, "scenario expected")
	return nil
}

func scenarioSeed(state *lua.State) int {
	scenario := checkScenario(state)
	scenario.Seed = int64(lua.CheckInteger(state, 2))
	return 0
}

func scenarioMaxTurns(state *lua.State) int {
	scenario := checkScenario(state)
	scenario.MaxTurns = lua.CheckInteger(state, 2)
	return 0
}

func scenarioDirective(state *lua.State) int {
	scenario := checkScenario(state)
	scenario.Steps = append(scenario.Steps, Step{
		Directive: lua.CheckString(state, 2),
		Target:    lua.OptString(state, 3, ""),
	})
	return 0
}

func appendExpect(state *lua.State, kind, value string) int {
	scenario := checkScenario(state)
	scenario.Expects = append(scenario.Expects, Expect{Kind: kind, Value: value})
	return 0
}

func scenarioExpectStatus(state *lua.State) int {
	return appendExpect(state, "status", lua.CheckString(state, 2))
}

func scenarioExpectOutcome(state *lua.State) int {
	return appendExpect(state, "outcome", lua.CheckString(state, 2))
}

func scenarioExpectEvent(state *lua.State) int {
	return appendExpect(state, "event", lua.CheckString(state, 2))
}

func scenarioExpectTurn(state *lua.State) int {
	return appendExpect(state, "turn", fmt.Sprintf("%d", lua.CheckInteger(state, 2)))
}

func scenarioExpectDefcon(state *lua.State) int {
	return appendExpect(state, "defcon", fmt.Sprintf("%d", lua.CheckInteger(state, 2)))
}
