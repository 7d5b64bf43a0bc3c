package game

import (
	"container/heap"
	"errors"
	"fmt"
	"time"

	"harvest-planner/core"
)

// ErrNoPlan is returned when the open set runs empty before a goal state is
// reached. A caller must not execute anything in that case.
var ErrNoPlan = errors.New("no plan found")

// AStarSolver is the core A* search algorithm.
type AStarSolver struct {
	weights       core.HeuristicConfig
	maxDepth      int
	maxExpansions int
	logger        func(string)
}

// NewAStarSolver creates a new AStarSolver. Zero bounds disable the
// corresponding limit.
func NewAStarSolver(cfg core.PlannerConfig, logger func(string)) *AStarSolver {
	if logger == nil {
		logger = func(string) {}
	}
	return &AStarSolver{
		weights:       cfg.Heuristic,
		maxDepth:      cfg.MaxDepth,
		maxExpansions: cfg.MaxExpansions,
		logger:        logger,
	}
}

// FindOptimalPlan searches from start towards goal. It returns a plan ending
// in a goal state, or a bounded plan ending in the state being expanded when
// a depth or expansion limit is hit. ErrNoPlan means the state space was
// exhausted.
func (s *AStarSolver) FindOptimalPlan(start *GameState, goal Goal) (*Plan, error) {
	began := time.Now()

	root := start.Clone()
	root.Action = Action{}
	root.Parent = NoParent
	root.Depth = 0
	root.Cost = 0
	root.Heuristic = root.Estimate(goal, s.weights)
	root.Total = root.Heuristic

	generator := NewActionGenerator(root, goal, s.logger)
	arena := []*GameState{root}
	openSet := &PriorityQueue{}
	heap.Init(openSet)
	seq := 0
	heap.Push(openSet, &SearchNode{Handle: 0, Priority: root.Total, seq: seq})

	bestCost := map[string]int{root.Key(): 0}
	closedSet := make(map[string]bool)
	var stats SearchStats

	finish := func(handle int, bounded bool) *Plan {
		stats.Elapsed = time.Since(began)
		stats.Pruned = generator.Pruned()
		return newPlan(arena, handle, goal, bounded, stats)
	}

	for openSet.Len() > 0 {
		node := heap.Pop(openSet).(*SearchNode)
		current := arena[node.Handle]
		key := current.Key()

		if closedSet[key] {
			continue
		}
		if goal.Satisfied(current) {
			return finish(node.Handle, false), nil
		}
		if s.maxDepth > 0 && current.Depth >= s.maxDepth {
			s.logger(fmt.Sprintf("Depth bound %d reached at g=%d, returning partial plan", s.maxDepth, current.Cost))
			return finish(node.Handle, true), nil
		}
		if s.maxExpansions > 0 && stats.Expanded >= s.maxExpansions {
			s.logger(fmt.Sprintf("Expansion bound %d reached at depth %d, returning partial plan", s.maxExpansions, current.Depth))
			return finish(node.Handle, true), nil
		}
		closedSet[key] = true
		stats.Expanded++

		if len(current.Peasants) >= goal.Workers {
			generator.Prune(goal.Workers - 1)
		}

		for _, action := range generator.GenerateActionsFromState(current, goal) {
			next := action.Apply(current)
			nextKey := next.Key()
			if closedSet[nextKey] {
				continue
			}
			if cost, seen := bestCost[nextKey]; seen && next.Cost >= cost {
				continue
			}
			bestCost[nextKey] = next.Cost

			next.Parent = node.Handle
			next.Heuristic = next.Estimate(goal, s.weights)
			next.Total = next.Cost + next.Heuristic
			arena = append(arena, next)

			seq++
			heap.Push(openSet, &SearchNode{Handle: len(arena) - 1, Priority: next.Total, seq: seq})
			stats.Generated++
		}
	}

	s.logger(fmt.Sprintf("Open set exhausted after %d expansions", stats.Expanded))
	return nil, fmt.Errorf("%w: open set exhausted after %d expansions for goal %s", ErrNoPlan, stats.Expanded, goal)
}
