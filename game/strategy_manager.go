package game

import (
	"strings"

	"harvest-planner/core"
)

// StrategyManager turns the planner configuration into a goal.
type StrategyManager struct {
	cfg core.PlannerConfig
}

func NewStrategyManager(cfg core.PlannerConfig) *StrategyManager {
	return &StrategyManager{
		cfg: cfg,
	}
}

// MaxPeasants is the workforce worth building for the required totals.
func (sm *StrategyManager) MaxPeasants() int {
	total := sm.cfg.RequiredGold + sm.cfg.RequiredWood
	switch {
	case !sm.cfg.BuildWorkers || total <= 800:
		return 1
	case total <= 1200:
		return 2
	}
	return MaxWorkers
}

func (sm *StrategyManager) GenerateGoal() Goal {
	primary := CargoGold
	if strings.EqualFold(sm.cfg.Primary, "wood") {
		primary = CargoWood
	}
	return Goal{
		Gold:    sm.cfg.RequiredGold,
		Wood:    sm.cfg.RequiredWood,
		Workers: sm.MaxPeasants(),
		Primary: primary,
	}
}
