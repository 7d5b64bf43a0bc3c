package game

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"harvest-planner/core"
)

// TemplateManager loads scenario templates, one YAML file per map.
type TemplateManager struct {
	templateDir string
}

// NewTemplateManager creates a new TemplateManager.
func NewTemplateManager(templateDir string) *TemplateManager {
	return &TemplateManager{
		templateDir: templateDir,
	}
}

// LoadScenario reads <dir>/<name>.yaml.
func (tm *TemplateManager) LoadScenario(name string) (*core.ScenarioConfig, error) {
	path := filepath.Join(tm.templateDir, fmt.Sprintf("%s.yaml", name))
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario template file: %w", err)
	}

	var scenario core.ScenarioConfig
	if err := yaml.Unmarshal(file, &scenario); err != nil {
		return nil, fmt.Errorf("failed to decode YAML from scenario template: %w", err)
	}
	if scenario.Name == "" {
		scenario.Name = name
	}
	return &scenario, nil
}

// GetSnapshotFromTemplate loads a scenario and converts it for planning.
func (tm *TemplateManager) GetSnapshotFromTemplate(name string) (Snapshot, error) {
	scenario, err := tm.LoadScenario(name)
	if err != nil {
		return Snapshot{}, err
	}
	snap, err := SnapshotFromConfig(scenario)
	if err != nil {
		return Snapshot{}, fmt.Errorf("scenario %s: %w", name, err)
	}
	return snap, nil
}

// ScenarioSnapshot picks the map a config describes: a named template, the
// inline scenario, or the built-in default.
func ScenarioSnapshot(cfg *core.Config) (Snapshot, error) {
	if cfg.ScenarioName != "" {
		return NewTemplateManager(cfg.ScenarioDir).GetSnapshotFromTemplate(cfg.ScenarioName)
	}
	if cfg.Scenario != nil {
		return SnapshotFromConfig(cfg.Scenario)
	}
	return SnapshotFromConfig(core.DefaultScenario())
}
