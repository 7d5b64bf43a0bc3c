package game

import "fmt"

// NoResource marks a worker that is at the depot or not attached to any node.
const NoResource = -1

// CargoKind is what a worker is carrying.
type CargoKind int

const (
	CargoNone CargoKind = iota
	CargoGold
	CargoWood
)

func (c CargoKind) String() string {
	switch c {
	case CargoNone:
		return "NONE"
	case CargoGold:
		return "GOLD"
	case CargoWood:
		return "WOOD"
	}
	return fmt.Sprintf("CargoKind(%d)", int(c))
}

// ParseCargoKind accepts the names used in scenario files. An empty string
// means no cargo.
func ParseCargoKind(s string) (CargoKind, error) {
	switch s {
	case "", "none", "NONE":
		return CargoNone, nil
	case "gold", "GOLD":
		return CargoGold, nil
	case "wood", "WOOD":
		return CargoWood, nil
	}
	return CargoNone, fmt.Errorf("unknown cargo kind %q", s)
}

// Peasant is a worker in the planning abstraction. Adjacent holds the id of
// the resource the worker stands next to, or NoResource.
type Peasant struct {
	ID          int       `json:"id"`
	Position    Position  `json:"position"`
	Cargo       CargoKind `json:"cargo"`
	CargoAmount int       `json:"cargo_amount"`
	Adjacent    int       `json:"adjacent"`
}

// Unattached reports whether the worker is not next to any resource.
func (p *Peasant) Unattached() bool {
	return p.Adjacent == NoResource
}

// Carrying reports whether the worker holds cargo.
func (p *Peasant) Carrying() bool {
	return p.CargoAmount > 0
}

func (p *Peasant) clearCargo() {
	p.Cargo = CargoNone
	p.CargoAmount = 0
}

func (p *Peasant) String() string {
	at := "depot"
	if !p.Unattached() {
		at = fmt.Sprintf("%d", p.Adjacent)
	}
	return fmt.Sprintf("peasant %d [%s x%d @%s]", p.ID, p.Cargo, p.CargoAmount, at)
}
