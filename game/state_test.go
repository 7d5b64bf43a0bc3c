package game

import (
	"testing"

	"harvest-planner/core"

	"github.com/stretchr/testify/assert"
)

func TestGameState_KeyIgnoresResourceIdentity(t *testing.T) {
	a := threeWorkerState()
	a.Resources = append(a.Resources, Resource{ID: 6, Kind: GoldMine, Remaining: 300, Distance: 2})
	b := a.Clone()

	a.Peasants[0].Adjacent = 4
	b.Peasants[0].Adjacent = 6
	b.Resources[0].Remaining = 100
	assert.Equal(t, a.Key(), b.Key(), "same kind of node, different mine")

	b.Peasants[0].Adjacent = 5
	assert.NotEqual(t, a.Key(), b.Key(), "gold mine and forest differ")

	b.Peasants[0].Adjacent = 4
	b.Gold = 100
	assert.NotEqual(t, a.Key(), b.Key())
}

func TestGameState_KeyIsPerWorkerOrdered(t *testing.T) {
	a := threeWorkerState()
	b := a.Clone()
	a.Peasants[0].Cargo, a.Peasants[0].CargoAmount = CargoGold, 100
	b.Peasants[1].Cargo, b.Peasants[1].CargoAmount = CargoGold, 100
	assert.NotEqual(t, a.Key(), b.Key())
}

func TestGameState_Clone(t *testing.T) {
	s := threeWorkerState()
	c := s.Clone()
	c.Peasants[0].CargoAmount = 100
	c.Resources[1].Remaining = 0

	assert.Equal(t, 0, s.Peasants[0].CargoAmount)
	assert.Equal(t, 1000, s.Resources[1].Remaining)
}

func TestGameState_Estimate(t *testing.T) {
	w := core.HeuristicConfig{WorkerWeight: 100, CycleWeight: 60, SecondaryCredit: 1}

	testCases := []struct {
		name     string
		gold     int
		wood     int
		workers  int
		goal     Goal
		expected int
	}{
		{"Single Worker Start", 0, 0, 1, Goal{Gold: 200, Wood: 200, Workers: 1}, 240},
		{"Missing Workers", 0, 0, 1, Goal{Gold: 800, Wood: 500, Workers: 3}, 200 + 60*13},
		{"Partial Cycle Rounds Up", 0, 0, 3, Goal{Gold: 800, Wood: 500, Workers: 3}, 60 * (3 + 2)},
		{"Secondary Credit", 200, 100, 1, Goal{Gold: 200, Wood: 200, Workers: 1}, 60 - 1},
		{"Credit Capped At Target", 300, 900, 1, Goal{Gold: 200, Wood: 200, Workers: 1}, -2},
		{"Wood Primary Credits Gold", 100, 0, 1, Goal{Gold: 200, Wood: 200, Workers: 1, Primary: CargoWood}, 60*3 - 1},
		{"No Workers", 0, 0, 0, Goal{Gold: 100, Workers: 1}, 100 + 60},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := &GameState{Gold: tc.gold, Wood: tc.wood, Peasants: make([]Peasant, tc.workers)}
			if tc.goal.Primary == CargoNone {
				tc.goal.Primary = CargoGold
			}
			assert.Equal(t, tc.expected, s.Estimate(tc.goal, w))
		})
	}
}

func TestGoal_Satisfied(t *testing.T) {
	goal := Goal{Gold: 200, Wood: 100}
	assert.False(t, goal.Satisfied(&GameState{Gold: 200, Wood: 0}))
	assert.True(t, goal.Satisfied(&GameState{Gold: 200, Wood: 100}))
	assert.True(t, goal.Satisfied(&GameState{Gold: 300, Wood: 400}))
	assert.True(t, Goal{}.Satisfied(&GameState{}))
}
