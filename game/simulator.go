package game

import (
	"context"
	"fmt"
	"sync"

	"harvest-planner/core"
)

type simUnit struct {
	UnitSnapshot
	order    *Command
	progress int
}

// SimEngine is a deterministic tick simulation of the live game. Units walk
// one tile per tick, diagonals included.
type SimEngine struct {
	cfg       core.EngineConfig
	depot     Position
	gold      int
	wood      int
	units     []*simUnit
	resources []ResourceSnapshot
	producing int
	tick      int
	logger    func(string)
	lock      sync.Mutex
}

// NewSimEngine starts a simulation from snap.
func NewSimEngine(snap Snapshot, cfg core.EngineConfig, logger func(string)) *SimEngine {
	if logger == nil {
		logger = func(string) {}
	}
	se := &SimEngine{
		cfg:       cfg,
		depot:     snap.Depot,
		gold:      snap.Gold,
		wood:      snap.Wood,
		resources: append([]ResourceSnapshot(nil), snap.Resources...),
		tick:      snap.Tick,
		logger:    logger,
	}
	for _, u := range snap.Units {
		u.Busy = false
		se.units = append(se.units, &simUnit{UnitSnapshot: u})
	}
	return se
}

// Observe implements Engine.
func (se *SimEngine) Observe(ctx context.Context) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	se.lock.Lock()
	defer se.lock.Unlock()

	snap := Snapshot{
		Tick:      se.tick,
		Depot:     se.depot,
		Gold:      se.gold,
		Wood:      se.wood,
		Resources: append([]ResourceSnapshot(nil), se.resources...),
	}
	for _, u := range se.units {
		unit := u.UnitSnapshot
		unit.Busy = u.order != nil
		snap.Units = append(snap.Units, unit)
	}
	return snap, nil
}

// Issue implements Engine.
func (se *SimEngine) Issue(ctx context.Context, cmds []Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	se.lock.Lock()
	defer se.lock.Unlock()

	for _, cmd := range cmds {
		if cmd.Kind == CommandProduce {
			if se.producing > 0 {
				return fmt.Errorf("depot is already producing a worker")
			}
			if se.gold < WorkerCost {
				return fmt.Errorf("not enough gold to produce a worker: have %d, need %d", se.gold, WorkerCost)
			}
			se.gold -= WorkerCost
			se.producing = max(1, se.cfg.ProduceTicks)
			continue
		}

		u := se.unit(cmd.Unit)
		if u == nil {
			return fmt.Errorf("unknown unit %d", cmd.Unit)
		}
		if cmd.Kind == CommandGather {
			if _, ok := se.resource(cmd.Target); !ok {
				return fmt.Errorf("%w: gather target %d", ErrUnknownResource, cmd.Target)
			}
		}
		order := cmd
		u.order = &order
		u.progress = 0
	}
	return nil
}

// Advance implements Engine.
func (se *SimEngine) Advance(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	se.lock.Lock()
	defer se.lock.Unlock()

	se.tick++
	for _, u := range se.units {
		if u.order != nil {
			se.step(u)
		}
	}
	if se.producing > 0 {
		se.producing--
		if se.producing == 0 {
			se.spawn()
		}
	}
	return nil
}

func (se *SimEngine) step(u *simUnit) {
	switch u.order.Kind {
	case CommandMove:
		target := Position{X: u.order.X, Y: u.order.Y}
		if !u.Position.Adjacent(target) {
			u.Position = u.Position.StepToward(target)
		}
		if u.Position.Adjacent(target) {
			u.order = nil
		}

	case CommandGather:
		res, ok := se.resource(u.order.Target)
		if !ok {
			u.order = nil
			return
		}
		if !u.Position.Adjacent(res.Position) {
			u.Position = u.Position.StepToward(res.Position)
			return
		}
		u.progress++
		if u.progress < se.cfg.GatherTicks {
			return
		}
		amount := min(HarvestQuantum, res.Remaining)
		res.Remaining -= amount
		if amount > 0 {
			u.Cargo = res.Kind.Cargo()
			u.CargoAmount = amount
		}
		u.order = nil

	case CommandDeposit:
		if !u.Position.Adjacent(se.depot) {
			u.Position = u.Position.StepToward(se.depot)
			return
		}
		u.progress++
		if u.progress < se.cfg.DepositTicks {
			return
		}
		switch u.Cargo {
		case CargoGold:
			se.gold += u.CargoAmount
		case CargoWood:
			se.wood += u.CargoAmount
		}
		u.Cargo = CargoNone
		u.CargoAmount = 0
		u.order = nil

	default:
		u.order = nil
	}
}

func (se *SimEngine) spawn() {
	id := 0
	for _, u := range se.units {
		id = max(id, u.ID)
	}
	for _, r := range se.resources {
		id = max(id, r.ID)
	}
	unit := &simUnit{UnitSnapshot: UnitSnapshot{
		ID:       id + 1,
		Position: Position{X: se.depot.X, Y: se.depot.Y + 1},
	}}
	se.units = append(se.units, unit)
	se.logger(fmt.Sprintf("Tick %d: worker %d produced", se.tick, unit.ID))
}

func (se *SimEngine) unit(id int) *simUnit {
	for _, u := range se.units {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (se *SimEngine) resource(id int) (*ResourceSnapshot, bool) {
	for i := range se.resources {
		if se.resources[i].ID == id {
			return &se.resources[i], true
		}
	}
	return nil, false
}
