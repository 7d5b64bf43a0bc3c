package game

import (
	"fmt"
	"math"
)

// Position is a tile on the game map.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// DistanceTo returns the Euclidean distance to o, rounded up.
func (p Position) DistanceTo(o Position) int {
	d := math.Sqrt(math.Pow(float64(p.X-o.X), 2) + math.Pow(float64(p.Y-o.Y), 2))
	return int(math.Ceil(d))
}

// Adjacent reports whether o is within one tile of p, diagonals included.
func (p Position) Adjacent(o Position) bool {
	return abs(p.X-o.X) <= 1 && abs(p.Y-o.Y) <= 1
}

// StepToward returns the tile one king move closer to o.
func (p Position) StepToward(o Position) Position {
	return Position{X: p.X + sign(o.X-p.X), Y: p.Y + sign(o.Y-p.Y)}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
