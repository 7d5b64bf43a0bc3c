package game

import (
	"fmt"
	"io"
	"time"
)

// Step is one planned action with the state it is expected to produce.
type Step struct {
	Index  int        `json:"index"`
	Action Action     `json:"action"`
	State  *GameState `json:"state"`
}

// SearchStats describes the work done by one search.
type SearchStats struct {
	Expanded  int           `json:"expanded"`
	Generated int           `json:"generated"`
	Pruned    bool          `json:"pruned"`
	Elapsed   time.Duration `json:"elapsed"`
}

// Plan is the ordered output of the planner, traversed front to back.
type Plan struct {
	Goal    Goal        `json:"goal"`
	Initial *GameState  `json:"initial"`
	Steps   []Step      `json:"steps"`
	Bounded bool        `json:"bounded"`
	Stats   SearchStats `json:"stats"`
}

// newPlan walks parent handles from terminal back to the root.
func newPlan(arena []*GameState, terminal int, goal Goal, bounded bool, stats SearchStats) *Plan {
	var chain []*GameState
	for h := terminal; h != NoParent; h = arena[h].Parent {
		chain = append(chain, arena[h])
	}

	plan := &Plan{
		Goal:    goal,
		Initial: chain[len(chain)-1],
		Steps:   make([]Step, 0, len(chain)-1),
		Bounded: bounded,
		Stats:   stats,
	}
	for i := len(chain) - 2; i >= 0; i-- {
		plan.Steps = append(plan.Steps, Step{
			Index:  len(plan.Steps) + 1,
			Action: chain[i].Action,
			State:  chain[i],
		})
	}
	return plan
}

// Len returns the number of steps.
func (p *Plan) Len() int {
	return len(p.Steps)
}

// Final returns the state after the last step.
func (p *Plan) Final() *GameState {
	if len(p.Steps) == 0 {
		return p.Initial
	}
	return p.Steps[len(p.Steps)-1].State
}

// Before returns the state a step starts from.
func (p *Plan) Before(i int) *GameState {
	if i == 0 {
		return p.Initial
	}
	return p.Steps[i-1].State
}

// Cost is the accumulated make-span of the plan.
func (p *Plan) Cost() int {
	return p.Final().Cost
}

// Actions returns the planned actions in order.
func (p *Plan) Actions() []Action {
	actions := make([]Action, len(p.Steps))
	for i, s := range p.Steps {
		actions[i] = s.Action
	}
	return actions
}

// WriteTo renders one "<index>: ACTION(...)" line per step.
func (p *Plan) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, s := range p.Steps {
		n, err := fmt.Fprintf(w, "%d: %s\n", s.Index, s.Action)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// PlanSummary is the JSON export of a plan.
type PlanSummary struct {
	Goal    Goal        `json:"goal"`
	Steps   []string    `json:"steps"`
	Cost    int         `json:"cost"`
	Gold    int         `json:"gold"`
	Wood    int         `json:"wood"`
	Workers int         `json:"workers"`
	Bounded bool        `json:"bounded"`
	Stats   SearchStats `json:"stats"`
}

// Summary condenses the plan for export.
func (p *Plan) Summary() PlanSummary {
	final := p.Final()
	steps := make([]string, len(p.Steps))
	for i, s := range p.Steps {
		steps[i] = s.Action.String()
	}
	return PlanSummary{
		Goal:    p.Goal,
		Steps:   steps,
		Cost:    final.Cost,
		Gold:    final.Gold,
		Wood:    final.Wood,
		Workers: len(final.Peasants),
		Bounded: p.Bounded,
		Stats:   p.Stats,
	}
}
