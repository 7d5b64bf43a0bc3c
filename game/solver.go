package game

import "fmt"

const (
	// WorkerCost is the gold spent on each new worker.
	WorkerCost = 400
	// MaxWorkers caps the workforce a plan can build up to.
	MaxWorkers = 3
)

// ActionKind discriminates the grounded actions.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionMove
	ActionHarvest
	ActionDeposit
	ActionBuildWorker
)

func (k ActionKind) String() string {
	switch k {
	case ActionNone:
		return "NONE"
	case ActionMove:
		return "MOVE"
	case ActionHarvest:
		return "HARVEST"
	case ActionDeposit:
		return "DEPOSIT"
	case ActionBuildWorker:
		return "BUILD_WORKER"
	}
	return fmt.Sprintf("ActionKind(%d)", int(k))
}

// Action is a grounded action: a schema bound to a worker count and, for
// Move and Harvest, a resource id. A Move with ToDepot set goes from
// Resource back to the depot; otherwise it goes from the depot to Resource.
type Action struct {
	Kind     ActionKind `json:"kind"`
	K        int        `json:"k"`
	Resource int        `json:"resource"`
	ToDepot  bool       `json:"to_depot,omitempty"`
	Span     int        `json:"span"`
}

// NewMove binds a move of k workers between the depot and res.
func NewMove(k int, res *Resource, toDepot bool) Action {
	return Action{Kind: ActionMove, K: k, Resource: res.ID, ToDepot: toDepot, Span: res.Distance}
}

// NewHarvest binds a harvest of k workers at res.
func NewHarvest(k int, res *Resource) Action {
	return Action{Kind: ActionHarvest, K: k, Resource: res.ID, Span: 1}
}

// NewDeposit binds a deposit of k workers at the depot.
func NewDeposit(k int) Action {
	return Action{Kind: ActionDeposit, K: k, Resource: NoResource, Span: 1}
}

// NewBuildWorker returns the worker production action.
func NewBuildWorker() Action {
	return Action{Kind: ActionBuildWorker, Resource: NoResource, Span: 1}
}

// Cost is the make-span of the action.
func (a Action) Cost() int {
	return a.Span
}

// Applicable checks the preconditions of a against s. The goal decides which
// resource kind workers may be sent to.
func (a Action) Applicable(s *GameState, goal Goal) bool {
	switch a.Kind {
	case ActionMove:
		res, ok := s.ResourceByID(a.Resource)
		if !ok {
			return false
		}
		if a.ToDepot {
			return countWorkers(s, returning(res.ID)) >= a.K
		}
		if !kindAllowed(s, goal, res.Kind) || !res.CanSupply(a.K) {
			return false
		}
		return countWorkers(s, idle) >= a.K
	case ActionHarvest:
		res, ok := s.ResourceByID(a.Resource)
		if !ok || !res.CanSupply(a.K) {
			return false
		}
		return countWorkers(s, gathering(res.ID)) >= a.K
	case ActionDeposit:
		return countWorkers(s, unloading) >= a.K
	case ActionBuildWorker:
		return s.Gold >= WorkerCost && len(s.Peasants) < min(MaxWorkers, goal.Workers)
	}
	return false
}

// Apply returns the successor of s. s is left untouched. Callers check
// Applicable first.
func (a Action) Apply(s *GameState) *GameState {
	next := s.Clone()
	next.Action = a
	next.Parent = NoParent
	next.Depth = s.Depth + 1
	next.Cost = s.Cost + a.Cost()

	switch a.Kind {
	case ActionMove:
		if a.ToDepot {
			forFirst(next, a.K, returning(a.Resource), func(p *Peasant) {
				p.Adjacent = NoResource
			})
		} else {
			forFirst(next, a.K, idle, func(p *Peasant) {
				p.Adjacent = a.Resource
			})
		}
	case ActionHarvest:
		res, ok := next.ResourceByID(a.Resource)
		if !ok {
			break
		}
		forFirst(next, a.K, gathering(a.Resource), func(p *Peasant) {
			if amount := res.Harvest(); amount > 0 {
				p.Cargo = res.Kind.Cargo()
				p.CargoAmount = amount
			}
		})
	case ActionDeposit:
		forFirst(next, a.K, unloading, func(p *Peasant) {
			next.bank(p.Cargo, p.CargoAmount)
			p.clearCargo()
		})
	case ActionBuildWorker:
		next.Gold -= WorkerCost
		next.Peasants = append(next.Peasants, Peasant{
			ID:       nextUnitID(next),
			Adjacent: NoResource,
		})
	}
	return next
}

func (a Action) String() string {
	switch a.Kind {
	case ActionMove:
		if a.ToDepot {
			return fmt.Sprintf("MOVE(k=%d, from=%d, to=depot)", a.K, a.Resource)
		}
		return fmt.Sprintf("MOVE(k=%d, from=depot, to=%d)", a.K, a.Resource)
	case ActionHarvest:
		return fmt.Sprintf("HARVEST(k=%d, id=%d)", a.K, a.Resource)
	case ActionDeposit:
		return fmt.Sprintf("DEPOSIT(k=%d)", a.K)
	case ActionBuildWorker:
		return "BUILD_WORKER()"
	}
	return "NONE()"
}

// kindAllowed keeps workers on the primary resource until its target is
// met, and off it once the target is exceeded.
func kindAllowed(s *GameState, goal Goal, kind ResourceKind) bool {
	banked, target := s.Banked(goal.Primary), goal.Target(goal.Primary)
	isPrimary := kind.Cargo() == goal.Primary
	if banked < target {
		return isPrimary
	}
	if banked > target {
		return !isPrimary
	}
	return true
}

type peasantFilter func(p *Peasant) bool

func idle(p *Peasant) bool {
	return p.Unattached() && !p.Carrying()
}

func unloading(p *Peasant) bool {
	return p.Unattached() && p.Carrying()
}

func gathering(id int) peasantFilter {
	return func(p *Peasant) bool {
		return p.Adjacent == id && !p.Carrying()
	}
}

func returning(id int) peasantFilter {
	return func(p *Peasant) bool {
		return p.Adjacent == id && p.Carrying()
	}
}

func countWorkers(s *GameState, f peasantFilter) int {
	n := 0
	for i := range s.Peasants {
		if f(&s.Peasants[i]) {
			n++
		}
	}
	return n
}

// forFirst applies fn to the first k workers, in stored order, that match f.
func forFirst(s *GameState, k int, f peasantFilter, fn func(p *Peasant)) {
	for i := range s.Peasants {
		if k == 0 {
			return
		}
		if f(&s.Peasants[i]) {
			fn(&s.Peasants[i])
			k--
		}
	}
}

func nextUnitID(s *GameState) int {
	id := 0
	for _, p := range s.Peasants {
		id = max(id, p.ID)
	}
	for _, r := range s.Resources {
		id = max(id, r.ID)
	}
	return id + 1
}
