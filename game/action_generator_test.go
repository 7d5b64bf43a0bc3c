package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionGenerator_Universe(t *testing.T) {
	s := threeWorkerState()

	single := NewActionGenerator(s, Goal{Workers: 1}, nil)
	assert.Len(t, single.Actions(), 2*3+1, "move out, harvest, move back per resource plus a deposit")
	for _, a := range single.Actions() {
		assert.NotEqual(t, ActionBuildWorker, a.Kind)
	}

	triple := NewActionGenerator(s, Goal{Workers: 3}, nil)
	actions := triple.Actions()
	assert.Len(t, actions, 2*3*3+3+1)
	assert.Equal(t, "MOVE(k=1, from=depot, to=4)", actions[0].String())
	assert.Equal(t, "HARVEST(k=1, id=4)", actions[1].String())
	assert.Equal(t, "MOVE(k=1, from=4, to=depot)", actions[2].String())
	assert.Equal(t, NewBuildWorker(), actions[len(actions)-1])
}

func TestActionGenerator_PruneOnce(t *testing.T) {
	var logs []string
	ag := NewActionGenerator(threeWorkerState(), Goal{Workers: 3}, func(msg string) { logs = append(logs, msg) })

	ag.Prune(2)
	require.True(t, ag.Pruned())
	assert.Len(t, ag.Actions(), 22-7)
	for _, a := range ag.Actions() {
		if a.Kind != ActionBuildWorker {
			assert.GreaterOrEqual(t, a.K, 2, "%s survived pruning", a)
		}
	}
	assert.Contains(t, ag.Actions(), NewBuildWorker())

	ag.Prune(3)
	assert.Len(t, ag.Actions(), 15, "second prune is a no-op")
	assert.Len(t, logs, 1)
}

func TestActionGenerator_GenerateActionsFromState(t *testing.T) {
	s := threeWorkerState()
	goal := Goal{Gold: 200, Wood: 200, Workers: 3, Primary: CargoGold}
	ag := NewActionGenerator(s, goal, nil)

	actions := ag.GenerateActionsFromState(s, goal)
	var names []string
	for _, a := range actions {
		names = append(names, a.String())
	}
	assert.Equal(t, []string{
		"MOVE(k=1, from=depot, to=4)",
		"MOVE(k=2, from=depot, to=4)",
		"MOVE(k=3, from=depot, to=4)",
	}, names)
}

func TestActionGenerator_SkipsUntrackedResources(t *testing.T) {
	var logs []string
	s := threeWorkerState()
	goal := Goal{Gold: 200, Workers: 1, Primary: CargoGold}
	ag := NewActionGenerator(s, goal, func(msg string) { logs = append(logs, msg) })

	lost := s.Clone()
	lost.Resources = lost.Resources[1:]

	assert.Empty(t, ag.GenerateActionsFromState(lost, goal))
	assert.Empty(t, ag.GenerateActionsFromState(lost, goal))
	require.Len(t, logs, 1, "each missing id is logged once")
	assert.Contains(t, logs[0], "Resource 4")
}
