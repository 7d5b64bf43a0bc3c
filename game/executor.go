package game

import (
	"context"
	"errors"
	"fmt"
)

// ErrPlanFinished is returned by Tick once every step has completed.
var ErrPlanFinished = errors.New("plan already finished")

// Progress reports where the executor stands after a tick.
type Progress struct {
	Step    int    `json:"step"`
	Total   int    `json:"total"`
	Action  string `json:"action"`
	Tick    int    `json:"tick"`
	Gold    int    `json:"gold"`
	Wood    int    `json:"wood"`
	Workers int    `json:"workers"`
	Done    bool   `json:"done"`
}

// Executor drives a plan on a live engine. The i-th planned worker is the
// i-th unit the engine reports. A unit is never commanded while busy, and is
// commanded at most once per step.
type Executor struct {
	engine   Engine
	plan     *Plan
	step     int
	issued   map[int]bool
	produced bool
	done     bool
	logger   func(string)
}

// NewExecutor creates an executor positioned at the first step of plan.
func NewExecutor(engine Engine, plan *Plan, logger func(string)) *Executor {
	if logger == nil {
		logger = func(string) {}
	}
	return &Executor{
		engine: engine,
		plan:   plan,
		issued: make(map[int]bool),
		logger: logger,
	}
}

// Done reports whether every step has completed.
func (e *Executor) Done() bool {
	return e.done
}

// Tick observes the engine, advances past completed steps, commands the idle
// workers of the current step and lets the engine run one tick.
func (e *Executor) Tick(ctx context.Context) (Progress, error) {
	if e.done {
		return Progress{Step: e.plan.Len(), Total: e.plan.Len(), Done: true}, ErrPlanFinished
	}

	snap, err := e.engine.Observe(ctx)
	if err != nil {
		return Progress{}, fmt.Errorf("failed to observe engine: %w", err)
	}

	for e.step < e.plan.Len() {
		complete, err := e.complete(snap)
		if err != nil {
			return e.progress(snap), err
		}
		if !complete {
			break
		}
		e.logger(fmt.Sprintf("Tick %d: step %d/%d done: %s", snap.Tick, e.step+1, e.plan.Len(), e.plan.Steps[e.step].Action))
		e.step++
		e.issued = make(map[int]bool)
		e.produced = false
	}
	if e.step == e.plan.Len() {
		e.done = true
		e.logger(fmt.Sprintf("Tick %d: plan complete, gold=%d wood=%d", snap.Tick, snap.Gold, snap.Wood))
		return e.progress(snap), nil
	}

	cmds, err := e.commands(snap)
	if err != nil {
		return e.progress(snap), err
	}
	if len(cmds) > 0 {
		for _, cmd := range cmds {
			e.logger(fmt.Sprintf("Tick %d: %s", snap.Tick, cmd))
		}
		if err := e.engine.Issue(ctx, cmds); err != nil {
			return e.progress(snap), fmt.Errorf("failed to issue commands for %s: %w", e.plan.Steps[e.step].Action, err)
		}
	}
	if err := e.engine.Advance(ctx); err != nil {
		return e.progress(snap), fmt.Errorf("failed to advance engine: %w", err)
	}
	return e.progress(snap), nil
}

func (e *Executor) progress(snap Snapshot) Progress {
	p := Progress{
		Step:    e.step,
		Total:   e.plan.Len(),
		Tick:    snap.Tick,
		Gold:    snap.Gold,
		Wood:    snap.Wood,
		Workers: len(snap.Units),
		Done:    e.done,
	}
	if e.step < e.plan.Len() {
		p.Action = e.plan.Steps[e.step].Action.String()
	}
	return p
}

// touched returns the indices of the workers the current step changes.
func (e *Executor) touched() []int {
	before, after := e.plan.Before(e.step), e.plan.Steps[e.step].State
	var idx []int
	for i := range before.Peasants {
		if before.Peasants[i] != after.Peasants[i] {
			idx = append(idx, i)
		}
	}
	return idx
}

func (e *Executor) unit(snap Snapshot, i int) (UnitSnapshot, error) {
	if i >= len(snap.Units) {
		return UnitSnapshot{}, fmt.Errorf("planned worker %d has no live unit, %d observed", i, len(snap.Units))
	}
	return snap.Units[i], nil
}

func (e *Executor) target(snap Snapshot, id int) (ResourceSnapshot, error) {
	res, ok := snap.Resource(id)
	if !ok {
		return ResourceSnapshot{}, fmt.Errorf("%w: %d", ErrUnknownResource, id)
	}
	return res, nil
}

// complete checks the post-condition of the current step against snap.
func (e *Executor) complete(snap Snapshot) (bool, error) {
	step := e.plan.Steps[e.step]
	if step.Action.Kind == ActionBuildWorker {
		return len(snap.Units) >= len(step.State.Peasants), nil
	}

	for _, i := range e.touched() {
		u, err := e.unit(snap, i)
		if err != nil {
			return false, err
		}
		if u.Busy {
			return false, nil
		}
		var ok bool
		switch step.Action.Kind {
		case ActionMove:
			if step.Action.ToDepot {
				ok = u.Position.Adjacent(snap.Depot)
				break
			}
			res, err := e.target(snap, step.Action.Resource)
			if err != nil {
				return false, err
			}
			ok = u.Position.Adjacent(res.Position)
		case ActionHarvest:
			ok = u.CargoAmount > 0
		case ActionDeposit:
			ok = u.CargoAmount == 0
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// commands builds the orders for idle, not yet commanded workers of the
// current step.
func (e *Executor) commands(snap Snapshot) ([]Command, error) {
	action := e.plan.Steps[e.step].Action
	if action.Kind == ActionBuildWorker {
		if e.produced {
			return nil, nil
		}
		e.produced = true
		return []Command{{Unit: NoResource, Kind: CommandProduce, Target: NoResource}}, nil
	}

	var cmds []Command
	for _, i := range e.touched() {
		u, err := e.unit(snap, i)
		if err != nil {
			return nil, err
		}
		if u.Busy || e.issued[u.ID] {
			continue
		}
		cmd := Command{Unit: u.ID, Target: NoResource}
		switch action.Kind {
		case ActionMove:
			if action.ToDepot {
				cmd.Kind, cmd.X, cmd.Y = CommandMove, snap.Depot.X, snap.Depot.Y
				break
			}
			res, err := e.target(snap, action.Resource)
			if err != nil {
				return nil, err
			}
			cmd.Kind, cmd.X, cmd.Y = CommandMove, res.Position.X, res.Position.Y
		case ActionHarvest:
			if _, err := e.target(snap, action.Resource); err != nil {
				return nil, err
			}
			cmd.Kind, cmd.Target = CommandGather, action.Resource
		case ActionDeposit:
			cmd.Kind = CommandDeposit
		}
		e.issued[u.ID] = true
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}
