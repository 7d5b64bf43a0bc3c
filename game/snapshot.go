package game

import (
	"errors"
	"fmt"

	"harvest-planner/core"
)

var (
	// ErrInvalidSnapshot is returned for observations that cannot seed a search.
	ErrInvalidSnapshot = errors.New("invalid snapshot")
	// ErrUnknownResource is returned when a resource id is not part of an observation.
	ErrUnknownResource = errors.New("unknown resource")
)

// UnitSnapshot is a worker as observed in the live game.
type UnitSnapshot struct {
	ID          int       `json:"id"`
	Position    Position  `json:"position"`
	Cargo       CargoKind `json:"cargo"`
	CargoAmount int       `json:"cargo_amount"`
	Busy        bool      `json:"busy"`
}

// ResourceSnapshot is a resource node as observed in the live game.
type ResourceSnapshot struct {
	ID        int          `json:"id"`
	Kind      ResourceKind `json:"kind"`
	Position  Position     `json:"position"`
	Remaining int          `json:"remaining"`
}

// Snapshot is one observation of the live game.
type Snapshot struct {
	Tick      int                `json:"tick"`
	Depot     Position           `json:"depot"`
	Gold      int                `json:"gold"`
	Wood      int                `json:"wood"`
	Units     []UnitSnapshot     `json:"units"`
	Resources []ResourceSnapshot `json:"resources"`
}

// Resource looks up a resource node by id.
func (s Snapshot) Resource(id int) (ResourceSnapshot, bool) {
	for _, r := range s.Resources {
		if r.ID == id {
			return r, true
		}
	}
	return ResourceSnapshot{}, false
}

// SnapshotFromConfig converts a scenario description.
func SnapshotFromConfig(sc *core.ScenarioConfig) (Snapshot, error) {
	if err := sc.Validate(); err != nil {
		return Snapshot{}, err
	}
	snap := Snapshot{
		Depot: Position{X: sc.Depot.X, Y: sc.Depot.Y},
		Gold:  sc.Gold,
		Wood:  sc.Wood,
	}
	for _, w := range sc.Workers {
		cargo, err := ParseCargoKind(w.Cargo)
		if err != nil {
			return Snapshot{}, fmt.Errorf("%w: worker %d: %v", ErrInvalidSnapshot, w.ID, err)
		}
		snap.Units = append(snap.Units, UnitSnapshot{
			ID:          w.ID,
			Position:    Position{X: w.X, Y: w.Y},
			Cargo:       cargo,
			CargoAmount: w.CargoAmount,
		})
	}
	for _, r := range sc.Resources {
		kind, err := ParseResourceKind(r.Kind)
		if err != nil {
			return Snapshot{}, fmt.Errorf("%w: resource %d: %v", ErrInvalidSnapshot, r.ID, err)
		}
		snap.Resources = append(snap.Resources, ResourceSnapshot{
			ID:        r.ID,
			Kind:      kind,
			Position:  Position{X: r.X, Y: r.Y},
			Remaining: r.Remaining,
		})
	}
	return snap, nil
}

// NewInitialState builds the search root from an observation. Every worker
// starts unattached; resource distances to the depot are computed here.
func NewInitialState(snap Snapshot) (*GameState, error) {
	if snap.Gold < 0 || snap.Wood < 0 {
		return nil, fmt.Errorf("%w: negative totals gold=%d wood=%d", ErrInvalidSnapshot, snap.Gold, snap.Wood)
	}

	state := &GameState{
		Gold:   snap.Gold,
		Wood:   snap.Wood,
		Parent: NoParent,
	}
	seen := make(map[int]bool)
	for _, u := range snap.Units {
		if seen[u.ID] {
			return nil, fmt.Errorf("%w: duplicate unit id %d", ErrInvalidSnapshot, u.ID)
		}
		seen[u.ID] = true
		if u.CargoAmount < 0 || (u.CargoAmount > 0) != (u.Cargo != CargoNone) {
			return nil, fmt.Errorf("%w: unit %d carries %d of %s", ErrInvalidSnapshot, u.ID, u.CargoAmount, u.Cargo)
		}
		state.Peasants = append(state.Peasants, Peasant{
			ID:          u.ID,
			Position:    u.Position,
			Cargo:       u.Cargo,
			CargoAmount: u.CargoAmount,
			Adjacent:    NoResource,
		})
	}
	for _, r := range snap.Resources {
		if r.ID < 0 {
			return nil, fmt.Errorf("%w: resource id %d", ErrInvalidSnapshot, r.ID)
		}
		if seen[r.ID] {
			return nil, fmt.Errorf("%w: duplicate unit id %d", ErrInvalidSnapshot, r.ID)
		}
		seen[r.ID] = true
		if r.Remaining < 0 {
			return nil, fmt.Errorf("%w: resource %d has %d remaining", ErrInvalidSnapshot, r.ID, r.Remaining)
		}
		state.Resources = append(state.Resources, Resource{
			ID:        r.ID,
			Kind:      r.Kind,
			Position:  r.Position,
			Remaining: r.Remaining,
			Distance:  r.Position.DistanceTo(snap.Depot),
		})
	}
	return state, nil
}
