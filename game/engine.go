package game

import (
	"context"
	"fmt"
)

// CommandKind discriminates the commands a live engine accepts.
type CommandKind int

const (
	CommandMove CommandKind = iota
	CommandGather
	CommandDeposit
	CommandProduce
)

func (k CommandKind) String() string {
	switch k {
	case CommandMove:
		return "move"
	case CommandGather:
		return "gather"
	case CommandDeposit:
		return "deposit"
	case CommandProduce:
		return "produce"
	}
	return fmt.Sprintf("CommandKind(%d)", int(k))
}

// Command is a compound order for one unit. Move walks until the unit is
// next to (X, Y). Gather walks to Target and harvests one load. Deposit walks
// to the depot and unloads. Produce queues a new worker at the depot and
// ignores Unit.
type Command struct {
	Unit   int         `json:"unit"`
	Kind   CommandKind `json:"kind"`
	Target int         `json:"target"`
	X      int         `json:"x"`
	Y      int         `json:"y"`
}

func (c Command) String() string {
	switch c.Kind {
	case CommandMove:
		return fmt.Sprintf("unit %d: move to (%d,%d)", c.Unit, c.X, c.Y)
	case CommandGather:
		return fmt.Sprintf("unit %d: gather %d", c.Unit, c.Target)
	case CommandDeposit:
		return fmt.Sprintf("unit %d: deposit", c.Unit)
	}
	return "depot: produce worker"
}

// Engine is the live game the executor drives.
type Engine interface {
	// Observe returns the current state of the game.
	Observe(ctx context.Context) (Snapshot, error)
	// Issue hands commands to units. A command given to a busy unit replaces
	// its current one.
	Issue(ctx context.Context, cmds []Command) error
	// Advance lets the game run for one tick.
	Advance(ctx context.Context) error
}
