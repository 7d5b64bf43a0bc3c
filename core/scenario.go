package core

import "fmt"

// PositionConfig is a map coordinate.
type PositionConfig struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

// WorkerConfig describes a worker present when planning starts.
type WorkerConfig struct {
	ID          int    `yaml:"id" json:"id"`
	X           int    `yaml:"x" json:"x"`
	Y           int    `yaml:"y" json:"y"`
	Cargo       string `yaml:"cargo,omitempty" json:"cargo,omitempty"`
	CargoAmount int    `yaml:"cargo_amount,omitempty" json:"cargo_amount,omitempty"`
}

// ResourceConfig describes a harvestable node.
type ResourceConfig struct {
	ID        int    `yaml:"id" json:"id"`
	Kind      string `yaml:"kind" json:"kind"`
	X         int    `yaml:"x" json:"x"`
	Y         int    `yaml:"y" json:"y"`
	Remaining int    `yaml:"remaining" json:"remaining"`
}

// ScenarioConfig is the map a plan is computed for.
type ScenarioConfig struct {
	Name      string           `yaml:"name,omitempty" json:"name,omitempty"`
	Depot     PositionConfig   `yaml:"depot" json:"depot"`
	Gold      int              `yaml:"gold,omitempty" json:"gold,omitempty"`
	Wood      int              `yaml:"wood,omitempty" json:"wood,omitempty"`
	Workers   []WorkerConfig   `yaml:"workers" json:"workers"`
	Resources []ResourceConfig `yaml:"resources" json:"resources"`
}

// Validate checks ids and amounts of the scenario.
func (sc *ScenarioConfig) Validate() error {
	if sc.Gold < 0 || sc.Wood < 0 {
		return fmt.Errorf("%w: scenario totals must not be negative", ErrInvalidConfig)
	}
	seen := make(map[int]bool)
	for _, w := range sc.Workers {
		if seen[w.ID] {
			return fmt.Errorf("%w: duplicate unit id %d", ErrInvalidConfig, w.ID)
		}
		seen[w.ID] = true
		if w.CargoAmount < 0 {
			return fmt.Errorf("%w: worker %d has negative cargo", ErrInvalidConfig, w.ID)
		}
	}
	for _, r := range sc.Resources {
		if r.ID < 0 {
			return fmt.Errorf("%w: resource id must not be negative, got %d", ErrInvalidConfig, r.ID)
		}
		if seen[r.ID] {
			return fmt.Errorf("%w: duplicate unit id %d", ErrInvalidConfig, r.ID)
		}
		seen[r.ID] = true
		if r.Remaining < 0 {
			return fmt.Errorf("%w: resource %d has negative remaining amount", ErrInvalidConfig, r.ID)
		}
		switch r.Kind {
		case "gold_mine", "forest":
		default:
			return fmt.Errorf("%w: resource %d has unknown kind %q", ErrInvalidConfig, r.ID, r.Kind)
		}
	}
	return nil
}

// DefaultScenario is one worker next to the depot with a gold mine and a
// forest, both five tiles away.
func DefaultScenario() *ScenarioConfig {
	return &ScenarioConfig{
		Name:  "small",
		Depot: PositionConfig{X: 10, Y: 10},
		Workers: []WorkerConfig{
			{ID: 1, X: 11, Y: 10},
		},
		Resources: []ResourceConfig{
			{ID: 2, Kind: "gold_mine", X: 15, Y: 10, Remaining: 1000},
			{ID: 3, Kind: "forest", X: 10, Y: 5, Remaining: 1000},
		},
	}
}
