package game

import (
	"fmt"
	"strings"
)

// HarvestQuantum is the amount a single worker gathers per harvest.
const HarvestQuantum = 100

// ResourceKind identifies what a resource node yields.
type ResourceKind int

const (
	GoldMine ResourceKind = iota
	Forest
)

func (k ResourceKind) String() string {
	switch k {
	case GoldMine:
		return "GOLD_MINE"
	case Forest:
		return "FOREST"
	}
	return fmt.Sprintf("ResourceKind(%d)", int(k))
}

// Cargo returns the cargo a worker carries after harvesting this kind.
func (k ResourceKind) Cargo() CargoKind {
	if k == GoldMine {
		return CargoGold
	}
	return CargoWood
}

// ParseResourceKind accepts the names used in scenario files.
func ParseResourceKind(s string) (ResourceKind, error) {
	switch strings.ToLower(s) {
	case "gold_mine", "goldmine", "gold":
		return GoldMine, nil
	case "forest", "tree", "wood":
		return Forest, nil
	}
	return 0, fmt.Errorf("unknown resource kind %q", s)
}

// Resource is a harvestable node. Distance is the rounded-up distance to the
// depot, computed once when the initial state is built.
type Resource struct {
	ID        int          `json:"id"`
	Kind      ResourceKind `json:"kind"`
	Position  Position     `json:"position"`
	Remaining int          `json:"remaining"`
	Distance  int          `json:"distance"`
}

// CanSupply reports whether k workers can each take a full quantum.
func (r *Resource) CanSupply(k int) bool {
	return r.Remaining >= k*HarvestQuantum
}

// Harvest removes one quantum and returns the amount taken. A node holding
// less than a quantum yields nothing.
func (r *Resource) Harvest() int {
	if r.Remaining < HarvestQuantum {
		return 0
	}
	r.Remaining -= HarvestQuantum
	return HarvestQuantum
}
