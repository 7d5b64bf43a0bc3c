package game

import "fmt"

// ActionGenerator holds the grounded action universe of one search run.
type ActionGenerator struct {
	actions []Action
	pruned  bool
	missing map[int]bool
	logger  func(string)
}

// NewActionGenerator grounds every schema against the resources of the
// initial state, for worker counts 1 to goal.Workers.
func NewActionGenerator(initial *GameState, goal Goal, logger func(string)) *ActionGenerator {
	if logger == nil {
		logger = func(string) {}
	}
	ag := &ActionGenerator{
		missing: make(map[int]bool),
		logger:  logger,
	}

	workers := max(1, goal.Workers)
	for i := range initial.Resources {
		res := &initial.Resources[i]
		for k := 1; k <= workers; k++ {
			ag.actions = append(ag.actions,
				NewMove(k, res, false),
				NewHarvest(k, res),
				NewMove(k, res, true),
			)
		}
	}
	for k := 1; k <= workers; k++ {
		ag.actions = append(ag.actions, NewDeposit(k))
	}
	if goal.Workers > 1 {
		ag.actions = append(ag.actions, NewBuildWorker())
	}
	return ag
}

// Actions returns the current universe.
func (ag *ActionGenerator) Actions() []Action {
	return ag.actions
}

// Pruned reports whether Prune has taken effect.
func (ag *ActionGenerator) Pruned() bool {
	return ag.pruned
}

// Prune drops every action that moves fewer than minK workers. Only the first
// call has an effect.
func (ag *ActionGenerator) Prune(minK int) {
	if ag.pruned {
		return
	}
	ag.pruned = true

	kept := ag.actions[:0]
	dropped := 0
	for _, a := range ag.actions {
		if a.Kind != ActionBuildWorker && a.K < minK {
			dropped++
			continue
		}
		kept = append(kept, a)
	}
	ag.actions = kept
	ag.logger(fmt.Sprintf("Pruned %d actions using fewer than %d workers, %d left", dropped, minK, len(kept)))
}

// GenerateActionsFromState returns the actions applicable to state, in
// universe order. Actions bound to a resource the state does not track are
// skipped and logged once per id.
func (ag *ActionGenerator) GenerateActionsFromState(state *GameState, goal Goal) []Action {
	var actions []Action
	for _, a := range ag.actions {
		if a.Resource != NoResource {
			if _, ok := state.ResourceByID(a.Resource); !ok {
				if !ag.missing[a.Resource] {
					ag.missing[a.Resource] = true
					ag.logger(fmt.Sprintf("Resource %d is not tracked, skipping %s", a.Resource, a))
				}
				continue
			}
		}
		if a.Applicable(state, goal) {
			actions = append(actions, a)
		}
	}
	return actions
}
