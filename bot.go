package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"harvest-planner/core"
	"harvest-planner/game"
	"harvest-planner/store"
	"harvest-planner/web"
)

var pausePoll = 100 * time.Millisecond

// ErrTickLimit is returned when execution does not finish within max_ticks.
var ErrTickLimit = errors.New("tick limit reached")

// Bot represents the main bot application: it plans against the engine's
// current state and then drives the plan tick by tick.
type Bot struct {
	ConfigManager *core.ConfigManager
	Files         *core.FileManager
	Engine        game.Engine
	Hub           *web.Hub
	planner       *game.Planner
	plan          *game.Plan
	executor      *game.Executor
	progress      game.Progress
	paused        bool
	lock          sync.Mutex
}

// NewBot creates a new Bot.
func NewBot(configPath string) (*Bot, error) {
	cm, err := core.NewConfigManager(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create config manager: %w", err)
	}
	return NewBotWithDeps(cm, nil)
}

// NewBotWithDeps creates a new Bot with dependencies. A nil engine is
// replaced by a simulation of the configured scenario.
func NewBotWithDeps(cm *core.ConfigManager, engine game.Engine) (*Bot, error) {
	config := cm.GetConfig()
	planner, err := game.NewPlanner(config.Planner, logf)
	if err != nil {
		return nil, err
	}
	if engine == nil {
		snap, err := game.ScenarioSnapshot(config)
		if err != nil {
			return nil, fmt.Errorf("failed to load scenario: %w", err)
		}
		engine = game.NewSimEngine(snap, config.Engine, logf)
	}
	return &Bot{
		ConfigManager: cm,
		Files:         core.NewFileManager("."),
		Engine:        engine,
		planner:       planner,
	}, nil
}

func logf(msg string) {
	log.Println(msg)
}

// Plan observes the engine, searches a plan and writes the configured
// outputs. The executor is reset to the new plan.
func (b *Bot) Plan(ctx context.Context) (*game.Plan, error) {
	snap, err := b.Engine.Observe(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to observe engine: %w", err)
	}
	plan, err := b.planner.Plan(snap)
	if err != nil {
		return nil, err
	}
	if err := b.writeOutputs(plan); err != nil {
		return nil, err
	}

	b.lock.Lock()
	b.plan = plan
	b.executor = game.NewExecutor(b.Engine, plan, logf)
	b.progress = game.Progress{Total: plan.Len()}
	b.lock.Unlock()
	return plan, nil
}

func (b *Bot) writeOutputs(plan *game.Plan) error {
	out := b.ConfigManager.GetConfig().Output
	if out.PlanFile != "" {
		if err := b.Files.WriteText(out.PlanFile, plan); err != nil {
			return fmt.Errorf("failed to save plan: %w", err)
		}
	}
	if out.JSONFile != "" {
		if err := b.Files.SaveJSONFile(plan.Summary(), out.JSONFile); err != nil {
			return fmt.Errorf("failed to save plan summary: %w", err)
		}
	}
	if out.TraceFile != "" {
		path := b.Files.GetPath(out.TraceFile)
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if _, err := store.WriteTrace(filepath.Dir(path), name, plan); err != nil {
			return fmt.Errorf("failed to save plan trace: %w", err)
		}
	}
	return nil
}

// Run plans if needed and executes the plan until it completes, ctx is
// done, or the configured tick limit is reached.
func (b *Bot) Run(ctx context.Context) error {
	b.lock.Lock()
	planned := b.executor != nil
	b.lock.Unlock()
	if !planned {
		if _, err := b.Plan(ctx); err != nil {
			return err
		}
	}

	maxTicks := b.ConfigManager.GetConfig().Engine.MaxTicks
	for ticks := 0; ; {
		if b.IsPaused() {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(pausePoll):
			}
			continue
		}
		if maxTicks > 0 && ticks >= maxTicks {
			return fmt.Errorf("%w: %d ticks", ErrTickLimit, maxTicks)
		}

		progress, err := b.executor.Tick(ctx)
		ticks++
		b.lock.Lock()
		b.progress = progress
		b.lock.Unlock()
		b.Hub.BroadcastFullState()
		if err != nil {
			return err
		}
		if progress.Done {
			log.Printf("Plan executed in %d ticks", ticks)
			return nil
		}
	}
}

// Pause pauses the bot.
func (b *Bot) Pause() {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.paused = true
}

// Resume resumes the bot.
func (b *Bot) Resume() {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.paused = false
}

// IsPaused returns true if the bot is paused.
func (b *Bot) IsPaused() bool {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.paused
}

type botState struct {
	Paused   bool              `json:"paused"`
	Goal     game.Goal         `json:"goal"`
	Plan     *game.PlanSummary `json:"plan,omitempty"`
	Progress game.Progress     `json:"progress"`
}

// State returns a JSON-encoded representation of the current bot state.
func (b *Bot) State() ([]byte, error) {
	b.lock.Lock()
	defer b.lock.Unlock()

	state := botState{
		Paused:   b.paused,
		Goal:     b.planner.Goal(),
		Progress: b.progress,
	}
	if b.plan != nil {
		summary := b.plan.Summary()
		state.Plan = &summary
	}
	return json.Marshal(state)
}
