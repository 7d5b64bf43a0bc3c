package game

import (
	"os"
	"path/filepath"
	"testing"

	"harvest-planner/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateManager_GetSnapshotFromTemplate(t *testing.T) {
	tmpDir := t.TempDir()
	scenario := `
depot: {x: 2, y: 2}
gold: 100
workers:
  - {id: 1, x: 3, y: 2}
  - {id: 2, x: 3, y: 3, cargo: wood, cargo_amount: 100}
resources:
  - {id: 10, kind: gold_mine, x: 8, y: 2, remaining: 2000}
  - {id: 11, kind: forest, x: 2, y: 9, remaining: 1500}
`
	err := os.WriteFile(filepath.Join(tmpDir, "twin.yaml"), []byte(scenario), 0644)
	require.NoError(t, err)

	tm := NewTemplateManager(tmpDir)
	snap, err := tm.GetSnapshotFromTemplate("twin")
	require.NoError(t, err)

	assert.Equal(t, Position{X: 2, Y: 2}, snap.Depot)
	assert.Equal(t, 100, snap.Gold)
	require.Len(t, snap.Units, 2)
	assert.Equal(t, CargoWood, snap.Units[1].Cargo)
	require.Len(t, snap.Resources, 2)
	assert.Equal(t, Forest, snap.Resources[1].Kind)

	loaded, err := tm.LoadScenario("twin")
	require.NoError(t, err)
	assert.Equal(t, "twin", loaded.Name)
}

func TestTemplateManager_Errors(t *testing.T) {
	tmpDir := t.TempDir()
	tm := NewTemplateManager(tmpDir)

	_, err := tm.GetSnapshotFromTemplate("missing")
	assert.Error(t, err)

	bad := "resources:\n  - {id: 1, kind: quarry, remaining: 10}\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "bad.yaml"), []byte(bad), 0644))
	_, err = tm.GetSnapshotFromTemplate("bad")
	assert.ErrorIs(t, err, core.ErrInvalidConfig)
}

func TestScenarioSnapshot(t *testing.T) {
	cfg := core.DefaultConfig()
	snap, err := ScenarioSnapshot(cfg)
	require.NoError(t, err)
	assert.Len(t, snap.Resources, 2)

	cfg.Scenario = &core.ScenarioConfig{
		Workers:   []core.WorkerConfig{{ID: 1}},
		Resources: []core.ResourceConfig{{ID: 2, Kind: "forest", X: 3, Y: 4, Remaining: 100}},
	}
	snap, err = ScenarioSnapshot(cfg)
	require.NoError(t, err)
	require.Len(t, snap.Resources, 1)
	assert.Equal(t, Forest, snap.Resources[0].Kind)

	state, err := NewInitialState(snap)
	require.NoError(t, err)
	assert.Equal(t, 5, state.Resources[0].Distance)
}
