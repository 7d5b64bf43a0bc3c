package core

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a configuration value is out of range.
var ErrInvalidConfig = errors.New("invalid configuration")

// HeuristicConfig holds the weights of the planner's remaining-cost estimate.
type HeuristicConfig struct {
	WorkerWeight    int `yaml:"worker_weight"`
	CycleWeight     int `yaml:"cycle_weight"`
	SecondaryCredit int `yaml:"secondary_credit"`
}

// PlannerConfig holds the configuration for the Planner.
type PlannerConfig struct {
	RequiredGold  int             `yaml:"required_gold"`
	RequiredWood  int             `yaml:"required_wood"`
	BuildWorkers  bool            `yaml:"build_workers"`
	Primary       string          `yaml:"primary"`
	MaxDepth      int             `yaml:"max_depth"`
	MaxExpansions int             `yaml:"max_expansions"`
	Heuristic     HeuristicConfig `yaml:"heuristic"`
}

// OutputConfig controls where plans are written.
type OutputConfig struct {
	PlanFile  string `yaml:"plan_file"`
	JSONFile  string `yaml:"json_file"`
	TraceFile string `yaml:"trace_file"`
}

// EngineConfig holds the timings of the simulated engine.
type EngineConfig struct {
	GatherTicks  int `yaml:"gather_ticks"`
	DepositTicks int `yaml:"deposit_ticks"`
	ProduceTicks int `yaml:"produce_ticks"`
	MaxTicks     int `yaml:"max_ticks"`
}

// WebManagerConfig holds web UI related settings.
type WebManagerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Config corresponds to the structure of the YAML config file.
type Config struct {
	Planner      PlannerConfig    `yaml:"planner"`
	Output       OutputConfig     `yaml:"output"`
	Engine       EngineConfig     `yaml:"engine"`
	WebManager   WebManagerConfig `yaml:"webmanager"`
	ScenarioDir  string           `yaml:"scenario_dir"`
	ScenarioName string           `yaml:"scenario_name"`
	Scenario     *ScenarioConfig  `yaml:"scenario,omitempty"`
}

// ConfigManager handles loading and saving of the planner configuration.
type ConfigManager struct {
	configPath string
	config     *Config
	lock       sync.Mutex
}

// NewConfigManager loads the configuration at path. A missing file is
// replaced by the default configuration, which is written back to path.
func NewConfigManager(path string) (*ConfigManager, error) {
	cm := &ConfigManager{
		configPath: path,
	}

	exists, err := cm.LoadConfig()
	if err != nil {
		return nil, err
	}
	if !exists {
		cm.config = DefaultConfig()
		if err := cm.SaveConfig(); err != nil {
			return nil, fmt.Errorf("failed to save config: %w", err)
		}
	}
	if err := cm.Validate(); err != nil {
		return nil, err
	}
	return cm, nil
}

// DefaultConfig returns the configuration used when no file exists yet.
func DefaultConfig() *Config {
	return &Config{
		Planner: PlannerConfig{
			RequiredGold:  200,
			RequiredWood:  200,
			Primary:       "gold",
			MaxDepth:      400,
			MaxExpansions: 200000,
			Heuristic: HeuristicConfig{
				WorkerWeight:    100,
				CycleWeight:     60,
				SecondaryCredit: 1,
			},
		},
		Output: OutputConfig{
			PlanFile: "saves/plan.txt",
		},
		Engine: EngineConfig{
			GatherTicks:  2,
			DepositTicks: 1,
			ProduceTicks: 3,
			MaxTicks:     20000,
		},
		WebManager: WebManagerConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
	}
}

// applyDefaults fills zero values that have a meaningful default.
func (c *Config) applyDefaults() {
	d := DefaultConfig()
	if c.Planner.Primary == "" {
		c.Planner.Primary = d.Planner.Primary
	}
	if c.Planner.MaxDepth == 0 {
		c.Planner.MaxDepth = d.Planner.MaxDepth
	}
	if c.Planner.MaxExpansions == 0 {
		c.Planner.MaxExpansions = d.Planner.MaxExpansions
	}
	if c.Planner.Heuristic == (HeuristicConfig{}) {
		c.Planner.Heuristic = d.Planner.Heuristic
	}
	if c.Engine == (EngineConfig{}) {
		c.Engine = d.Engine
	}
	if c.WebManager.Host == "" {
		c.WebManager.Host = d.WebManager.Host
	}
	if c.WebManager.Port == 0 {
		c.WebManager.Port = d.WebManager.Port
	}
}

// Validate checks the planner configuration.
func (pc PlannerConfig) Validate() error {
	if pc.RequiredGold < 0 {
		return fmt.Errorf("%w: required gold must not be negative, got %d", ErrInvalidConfig, pc.RequiredGold)
	}
	if pc.RequiredWood < 0 {
		return fmt.Errorf("%w: required wood must not be negative, got %d", ErrInvalidConfig, pc.RequiredWood)
	}
	if pc.MaxDepth < 0 {
		return fmt.Errorf("%w: max depth must not be negative, got %d", ErrInvalidConfig, pc.MaxDepth)
	}
	if pc.MaxExpansions < 0 {
		return fmt.Errorf("%w: max expansions must not be negative, got %d", ErrInvalidConfig, pc.MaxExpansions)
	}
	switch strings.ToLower(pc.Primary) {
	case "", "gold", "wood":
	default:
		return fmt.Errorf("%w: primary resource must be gold or wood, got %q", ErrInvalidConfig, pc.Primary)
	}
	h := pc.Heuristic
	if h.WorkerWeight < 0 || h.CycleWeight <= 0 || h.SecondaryCredit < 0 {
		return fmt.Errorf("%w: heuristic weights out of range: %+v", ErrInvalidConfig, h)
	}
	return nil
}

// Validate checks if the essential configuration values are set.
func (cm *ConfigManager) Validate() error {
	cm.lock.Lock()
	defer cm.lock.Unlock()

	if err := cm.config.Planner.Validate(); err != nil {
		return err
	}
	e := cm.config.Engine
	if e.GatherTicks < 1 || e.DepositTicks < 1 || e.ProduceTicks < 1 {
		return fmt.Errorf("%w: engine ticks must be positive: %+v", ErrInvalidConfig, e)
	}
	if cm.config.Scenario != nil {
		if err := cm.config.Scenario.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// LoadConfig loads the configuration from the specified YAML file.
func (cm *ConfigManager) LoadConfig() (bool, error) {
	cm.lock.Lock()
	defer cm.lock.Unlock()

	file, err := os.ReadFile(cm.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(file, &config); err != nil {
		return false, fmt.Errorf("failed to decode YAML from config file: %w", err)
	}
	config.applyDefaults()
	cm.config = &config
	return true, nil
}

// saveConfig is the internal, non-locking implementation of saving the configuration.
func (cm *ConfigManager) saveConfig() error {
	data, err := yaml.Marshal(cm.config)
	if err != nil {
		return fmt.Errorf("failed to encode config to YAML: %w", err)
	}

	if err := os.WriteFile(cm.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write to config file: %w", err)
	}
	return nil
}

// SaveConfig saves the current configuration to the YAML file.
func (cm *ConfigManager) SaveConfig() error {
	cm.lock.Lock()
	defer cm.lock.Unlock()
	return cm.saveConfig()
}

// GetConfig returns the entire configuration.
func (cm *ConfigManager) GetConfig() *Config {
	return cm.config
}

// SetConfig sets the configuration for testing purposes.
func (cm *ConfigManager) SetConfig(config *Config) {
	cm.config = config
}

// UpdateRequirements overrides the required totals and the worker-building
// policy, validates them and saves the config.
func (cm *ConfigManager) UpdateRequirements(wood, gold int, buildWorkers bool) error {
	cm.lock.Lock()
	defer cm.lock.Unlock()

	next := cm.config.Planner
	next.RequiredWood = wood
	next.RequiredGold = gold
	next.BuildWorkers = buildWorkers
	if err := next.Validate(); err != nil {
		return err
	}
	cm.config.Planner = next
	return cm.saveConfig()
}
