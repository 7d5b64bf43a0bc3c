package game

import (
	"fmt"

	"harvest-planner/core"
)

// Planner ties a validated configuration to the search.
type Planner struct {
	cfg    core.PlannerConfig
	goal   Goal
	solver *AStarSolver
	logger func(string)
}

// NewPlanner validates cfg and derives the goal. A depth bound too small to
// reach the goal is reported through logger but accepted.
func NewPlanner(cfg core.PlannerConfig, logger func(string)) (*Planner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to create planner: %w", err)
	}
	if logger == nil {
		logger = func(string) {}
	}
	p := &Planner{
		cfg:    cfg,
		goal:   NewStrategyManager(cfg).GenerateGoal(),
		solver: NewAStarSolver(cfg, logger),
		logger: logger,
	}
	if need := MinSteps(p.goal, 0, 0); cfg.MaxDepth > 0 && cfg.MaxDepth < need {
		logger(fmt.Sprintf("Warning: max depth %d is below the %d steps needed for %s, plans will be partial", cfg.MaxDepth, need, p.goal))
	}
	return p, nil
}

// Goal returns the goal plans are searched for.
func (p *Planner) Goal() Goal {
	return p.goal
}

// Plan searches a plan from the observed state.
func (p *Planner) Plan(snap Snapshot) (*Plan, error) {
	initial, err := NewInitialState(snap)
	if err != nil {
		return nil, err
	}
	p.logger(fmt.Sprintf("Planning for %s from gold=%d wood=%d with %d workers and %d resources",
		p.goal, initial.Gold, initial.Wood, len(initial.Peasants), len(initial.Resources)))

	plan, err := p.solver.FindOptimalPlan(initial, p.goal)
	if err != nil {
		return nil, err
	}
	if plan.Bounded {
		p.logger(fmt.Sprintf("Plan is bound-terminated after %d steps, goal not reached", plan.Len()))
	} else {
		p.logger(fmt.Sprintf("Plan found: %d steps, cost %d, %d expansions", plan.Len(), plan.Cost(), plan.Stats.Expanded))
	}
	return plan, nil
}

// MinSteps is a lower bound on the plan length: each batch of goal.Workers
// quanta needs a move out, a harvest, a move back and a deposit.
func MinSteps(goal Goal, gold, wood int) int {
	quanta := ceilDiv(max(0, goal.Gold-gold), HarvestQuantum) + ceilDiv(max(0, goal.Wood-wood), HarvestQuantum)
	return 4 * ceilDiv(quanta, max(1, goal.Workers))
}
