package game

import (
	"fmt"
	"strings"

	"harvest-planner/core"
)

// NoParent is the parent handle of a search root.
const NoParent = -1

// GameState is a node of the planning search. Peasants and Resources are
// owned by the state; successors always work on a Clone.
type GameState struct {
	Gold      int        `json:"gold"`
	Wood      int        `json:"wood"`
	Peasants  []Peasant  `json:"peasants"`
	Resources []Resource `json:"resources"`

	// Search bookkeeping. Parent is a handle into the solver's arena.
	Action    Action `json:"action"`
	Parent    int    `json:"-"`
	Depth     int    `json:"depth"`
	Cost      int    `json:"cost"`
	Heuristic int    `json:"heuristic"`
	Total     int    `json:"total"`
}

// Goal is the target a plan must reach. It is never expanded.
type Goal struct {
	Gold    int       `json:"gold"`
	Wood    int       `json:"wood"`
	Workers int       `json:"workers"`
	Primary CargoKind `json:"primary"`
}

// Satisfied reports whether s holds at least the required totals.
func (g Goal) Satisfied(s *GameState) bool {
	return s.Gold >= g.Gold && s.Wood >= g.Wood
}

// Target returns the required total for a cargo kind.
func (g Goal) Target(kind CargoKind) int {
	if kind == CargoWood {
		return g.Wood
	}
	return g.Gold
}

// Secondary is the resource that is not prioritized.
func (g Goal) Secondary() CargoKind {
	if g.Primary == CargoWood {
		return CargoGold
	}
	return CargoWood
}

func (g Goal) String() string {
	return fmt.Sprintf("gold=%d wood=%d workers=%d primary=%s", g.Gold, g.Wood, g.Workers, g.Primary)
}

// Banked returns the state's total for a cargo kind.
func (s *GameState) Banked(kind CargoKind) int {
	if kind == CargoWood {
		return s.Wood
	}
	return s.Gold
}

func (s *GameState) bank(kind CargoKind, amount int) {
	switch kind {
	case CargoGold:
		s.Gold += amount
	case CargoWood:
		s.Wood += amount
	}
}

// Clone returns a copy that shares no mutable data with s.
func (s *GameState) Clone() *GameState {
	next := *s
	next.Peasants = append([]Peasant(nil), s.Peasants...)
	next.Resources = append([]Resource(nil), s.Resources...)
	return &next
}

// ResourceByID looks up a resource of this state.
func (s *GameState) ResourceByID(id int) (*Resource, bool) {
	for i := range s.Resources {
		if s.Resources[i].ID == id {
			return &s.Resources[i], true
		}
	}
	return nil, false
}

// Key is the closed-set identity of the state: totals, worker count, and per
// worker its cargo and the kind of node it stands at. Which node of a kind,
// and how much is left in it, is not part of the key.
func (s *GameState) Key() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d:%d:%d|", s.Gold, s.Wood, len(s.Peasants))
	for i := range s.Peasants {
		p := &s.Peasants[i]
		at := "D"
		if !p.Unattached() {
			if r, ok := s.ResourceByID(p.Adjacent); ok {
				at = r.Kind.String()
			} else {
				at = "?"
			}
		}
		fmt.Fprintf(&b, "%d/%d/%s;", p.Cargo, p.CargoAmount, at)
	}
	return b.String()
}

// Estimate scores the remaining effort towards goal: the missing workers, the
// harvest cycles still needed with the current workforce, and a small credit
// for the secondary resource already banked.
func (s *GameState) Estimate(goal Goal, w core.HeuristicConfig) int {
	workers := len(s.Peasants)
	h := max(0, goal.Workers-workers) * w.WorkerWeight

	perCycle := HarvestQuantum * max(1, workers)
	h += w.CycleWeight * ceilDiv(max(0, goal.Gold-s.Gold), perCycle)
	h += w.CycleWeight * ceilDiv(max(0, goal.Wood-s.Wood), perCycle)

	secondary := goal.Secondary()
	h -= min(s.Banked(secondary), goal.Target(secondary)) / HarvestQuantum * w.SecondaryCredit
	return h
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

func (s *GameState) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "gold=%d wood=%d g=%d h=%d depth=%d", s.Gold, s.Wood, s.Cost, s.Heuristic, s.Depth)
	for i := range s.Peasants {
		b.WriteString("\n  ")
		b.WriteString(s.Peasants[i].String())
	}
	return b.String()
}
