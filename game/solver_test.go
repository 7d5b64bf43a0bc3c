package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeWorkerState() *GameState {
	return &GameState{
		Peasants: []Peasant{
			{ID: 1, Adjacent: NoResource},
			{ID: 2, Adjacent: NoResource},
			{ID: 3, Adjacent: NoResource},
		},
		Resources: []Resource{
			{ID: 4, Kind: GoldMine, Remaining: 1000, Distance: 5},
			{ID: 5, Kind: Forest, Remaining: 1000, Distance: 7},
		},
		Parent: NoParent,
	}
}

func TestAction_String(t *testing.T) {
	res := &Resource{ID: 4, Kind: GoldMine, Distance: 5}

	testCases := []struct {
		action   Action
		expected string
	}{
		{NewMove(2, res, false), "MOVE(k=2, from=depot, to=4)"},
		{NewMove(1, res, true), "MOVE(k=1, from=4, to=depot)"},
		{NewHarvest(3, res), "HARVEST(k=3, id=4)"},
		{NewDeposit(1), "DEPOSIT(k=1)"},
		{NewBuildWorker(), "BUILD_WORKER()"},
		{Action{}, "NONE()"},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, tc.action.String())
	}
}

func TestAction_Cost(t *testing.T) {
	res := &Resource{ID: 4, Kind: GoldMine, Distance: 5}
	assert.Equal(t, 5, NewMove(3, res, false).Cost())
	assert.Equal(t, 5, NewMove(1, res, true).Cost())
	assert.Equal(t, 1, NewHarvest(2, res).Cost())
	assert.Equal(t, 1, NewDeposit(2).Cost())
	assert.Equal(t, 1, NewBuildWorker().Cost())
}

func TestMove_SelectsFirstEligibleWorkers(t *testing.T) {
	s := threeWorkerState()
	s.Peasants[0].Adjacent = 5 // busy in the forest
	goal := Goal{Gold: 500, Workers: 3, Primary: CargoGold}
	gold, _ := s.ResourceByID(4)

	move := NewMove(1, gold, false)
	require.True(t, move.Applicable(s, goal))
	next := move.Apply(s)

	assert.Equal(t, 5, next.Peasants[0].Adjacent)
	assert.Equal(t, 4, next.Peasants[1].Adjacent)
	assert.Equal(t, NoResource, next.Peasants[2].Adjacent, "workers beyond k stay put")
	assert.Equal(t, 5, next.Cost)
	assert.Equal(t, 1, next.Depth)
	assert.Equal(t, move, next.Action)

	assert.False(t, NewMove(3, gold, false).Applicable(s, goal), "only two workers are idle")
}

func TestMove_PrioritizesPrimaryResource(t *testing.T) {
	s := threeWorkerState()
	gold, _ := s.ResourceByID(4)
	forest, _ := s.ResourceByID(5)
	goal := Goal{Gold: 200, Wood: 200, Workers: 1, Primary: CargoGold}

	assert.True(t, NewMove(1, gold, false).Applicable(s, goal))
	assert.False(t, NewMove(1, forest, false).Applicable(s, goal), "wood while gold is short")

	s.Gold = 200
	assert.True(t, NewMove(1, gold, false).Applicable(s, goal))
	assert.True(t, NewMove(1, forest, false).Applicable(s, goal))

	s.Gold = 300
	assert.False(t, NewMove(1, gold, false).Applicable(s, goal), "gold past its target")
	assert.True(t, NewMove(1, forest, false).Applicable(s, goal))

	goal.Primary = CargoWood
	s.Gold = 0
	assert.False(t, NewMove(1, gold, false).Applicable(s, goal))
	assert.True(t, NewMove(1, forest, false).Applicable(s, goal))
}

func TestMove_RejectsResourceBelowQuantum(t *testing.T) {
	s := threeWorkerState()
	s.Resources[0].Remaining = 50
	goal := Goal{Gold: 200, Workers: 1, Primary: CargoGold}
	gold, _ := s.ResourceByID(4)

	assert.False(t, NewMove(1, gold, false).Applicable(s, goal))

	s.Peasants[0].Adjacent = 4
	assert.False(t, NewHarvest(1, gold).Applicable(s, goal))

	s.Resources[0].Remaining = 200
	assert.True(t, NewHarvest(1, gold).Applicable(s, goal))
	assert.False(t, NewMove(3, gold, false).Applicable(s, goal), "200 left cannot feed three workers")
}

func TestMove_ToDepot(t *testing.T) {
	s := threeWorkerState()
	goal := Goal{Gold: 200, Workers: 3}
	gold, _ := s.ResourceByID(4)
	back := NewMove(2, gold, true)

	s.Peasants[0].Adjacent = 4
	s.Peasants[0].Cargo, s.Peasants[0].CargoAmount = CargoGold, 100
	assert.False(t, back.Applicable(s, goal), "one loaded worker at the mine")

	s.Peasants[2].Adjacent = 4
	s.Peasants[2].Cargo, s.Peasants[2].CargoAmount = CargoGold, 100
	require.True(t, back.Applicable(s, goal))

	next := back.Apply(s)
	assert.True(t, next.Peasants[0].Unattached())
	assert.True(t, next.Peasants[2].Unattached())
	assert.Equal(t, 100, next.Peasants[2].CargoAmount)
}

func TestHarvest_LoadsWorkersAndDepletesResource(t *testing.T) {
	s := threeWorkerState()
	for i := range s.Peasants {
		s.Peasants[i].Adjacent = 5
	}
	forest, _ := s.ResourceByID(5)
	harvest := NewHarvest(2, forest)

	require.True(t, harvest.Applicable(s, Goal{}))
	next := harvest.Apply(s)

	assert.Equal(t, CargoWood, next.Peasants[0].Cargo)
	assert.Equal(t, 100, next.Peasants[1].CargoAmount)
	assert.Equal(t, 0, next.Peasants[2].CargoAmount)
	res, _ := next.ResourceByID(5)
	assert.Equal(t, 800, res.Remaining)
	assert.Equal(t, 1000, forest.Remaining, "parent resource untouched")
}

func TestDeposit_BanksCargo(t *testing.T) {
	s := threeWorkerState()
	s.Peasants[0].Cargo, s.Peasants[0].CargoAmount = CargoGold, 100
	s.Peasants[1].Cargo, s.Peasants[1].CargoAmount = CargoWood, 100
	s.Peasants[2].Cargo, s.Peasants[2].CargoAmount = CargoGold, 100
	s.Peasants[2].Adjacent = 4

	assert.False(t, NewDeposit(3).Applicable(s, Goal{}), "third worker is still at the mine")
	require.True(t, NewDeposit(2).Applicable(s, Goal{}))

	next := NewDeposit(2).Apply(s)
	assert.Equal(t, 100, next.Gold)
	assert.Equal(t, 100, next.Wood)
	assert.Equal(t, CargoNone, next.Peasants[0].Cargo)
	assert.Equal(t, 0, next.Peasants[1].CargoAmount)
	assert.Equal(t, 100, next.Peasants[2].CargoAmount)
}

func TestBuildWorker(t *testing.T) {
	s := threeWorkerState()
	s.Peasants = s.Peasants[:1]
	build := NewBuildWorker()

	assert.False(t, build.Applicable(s, Goal{Workers: 3}), "not enough gold")

	s.Gold = 450
	assert.False(t, build.Applicable(s, Goal{Workers: 1}), "policy wants a single worker")
	require.True(t, build.Applicable(s, Goal{Workers: 3}))

	next := build.Apply(s)
	require.Len(t, next.Peasants, 2)
	assert.Equal(t, 50, next.Gold)
	assert.Equal(t, 6, next.Peasants[1].ID, "one past the largest unit id")
	assert.True(t, next.Peasants[1].Unattached())
	assert.False(t, next.Peasants[1].Carrying())
	assert.Len(t, s.Peasants, 1)

	full := threeWorkerState()
	full.Gold = 1000
	assert.False(t, build.Applicable(full, Goal{Workers: 5}), "never past three workers")
}

func TestAction_ApplyIsIdempotent(t *testing.T) {
	s := threeWorkerState()
	goal := Goal{Gold: 500, Workers: 3, Primary: CargoGold}
	gold, _ := s.ResourceByID(4)
	move := NewMove(2, gold, false)
	require.True(t, move.Applicable(s, goal))

	a, b := move.Apply(s), move.Apply(s)
	assert.Equal(t, a.Key(), b.Key())
	assert.NotSame(t, a, b)

	a.Peasants[0].Adjacent = NoResource
	a.Resources[0].Remaining = 0
	assert.Equal(t, 4, b.Peasants[0].Adjacent)
	assert.Equal(t, 1000, b.Resources[0].Remaining)
	assert.Equal(t, NoResource, s.Peasants[0].Adjacent, "input state is never mutated")
}

func TestAction_UnknownResourceIsInapplicable(t *testing.T) {
	s := threeWorkerState()
	ghost := &Resource{ID: 99, Kind: GoldMine, Remaining: 1000}
	goal := Goal{Gold: 100, Workers: 1}

	assert.False(t, NewMove(1, ghost, false).Applicable(s, goal))
	assert.False(t, NewMove(1, ghost, true).Applicable(s, goal))
	assert.False(t, NewHarvest(1, ghost).Applicable(s, goal))
}
