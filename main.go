package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"harvest-planner/core"
	"harvest-planner/game"
	"harvest-planner/web"
)

var (
	configFile string
	planFile   string
	jsonFile   string
	traceFile  string
	webAddr    string
	quiet      bool
	save       bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "harvest",
		Short: "Resource gathering planner",
		Long: `Plans the shortest sequence of worker actions that banks the
required gold and wood, optionally building extra workers on the way.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "config.yaml", "Path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&planFile, "out", "", "Write the text plan to this file")
	rootCmd.PersistentFlags().StringVar(&jsonFile, "json", "", "Write the plan summary as JSON to this file")
	rootCmd.PersistentFlags().StringVar(&traceFile, "trace", "", "Write a parquet plan trace to this file")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Minimal output")
	rootCmd.PersistentFlags().BoolVar(&save, "save", false, "Persist the requirements given as arguments")

	planCmd := &cobra.Command{
		Use:   "plan [wood gold build]",
		Short: "Search a plan and print it",
		Args:  requirementArgs,
		RunE:  runPlan,
	}
	runCmd := &cobra.Command{
		Use:   "run [wood gold build]",
		Short: "Search a plan and execute it on the simulated engine",
		Args:  requirementArgs,
		RunE:  runExecute,
	}
	runCmd.Flags().StringVar(&webAddr, "web", "", "Serve live progress on this address (host:port)")

	rootCmd.AddCommand(planCmd, runCmd)
	if err := rootCmd.Execute(); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func requirementArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 0 && len(args) != 3 {
		return fmt.Errorf("expected 0 or 3 arguments (wood gold build), got %d", len(args))
	}
	return nil
}

// newBot loads the config and applies the command line overrides.
func newBot(args []string) (*Bot, error) {
	cm, err := core.NewConfigManager(configFile)
	if err != nil {
		return nil, err
	}
	if len(args) == 3 {
		wood, gold, build, err := parseRequirements(args)
		if err != nil {
			return nil, err
		}
		if save {
			if err := cm.UpdateRequirements(wood, gold, build); err != nil {
				return nil, err
			}
		} else {
			config := *cm.GetConfig()
			config.Planner.RequiredWood = wood
			config.Planner.RequiredGold = gold
			config.Planner.BuildWorkers = build
			cm.SetConfig(&config)
			if err := cm.Validate(); err != nil {
				return nil, err
			}
		}
	}

	config := *cm.GetConfig()
	if planFile != "" {
		config.Output.PlanFile = planFile
	}
	if jsonFile != "" {
		config.Output.JSONFile = jsonFile
	}
	if traceFile != "" {
		config.Output.TraceFile = traceFile
	}
	cm.SetConfig(&config)
	return NewBotWithDeps(cm, nil)
}

func parseRequirements(args []string) (wood, gold int, build bool, err error) {
	if wood, err = strconv.Atoi(args[0]); err != nil {
		return 0, 0, false, fmt.Errorf("invalid wood amount %q: %w", args[0], err)
	}
	if gold, err = strconv.Atoi(args[1]); err != nil {
		return 0, 0, false, fmt.Errorf("invalid gold amount %q: %w", args[1], err)
	}
	if build, err = strconv.ParseBool(args[2]); err != nil {
		return 0, 0, false, fmt.Errorf("invalid build flag %q: %w", args[2], err)
	}
	return wood, gold, build, nil
}

func runPlan(cmd *cobra.Command, args []string) error {
	bot, err := newBot(args)
	if err != nil {
		return err
	}
	printHeader(bot)

	plan, err := bot.Plan(cmd.Context())
	if err != nil {
		return err
	}
	printPlan(plan)
	return nil
}

func runExecute(cmd *cobra.Command, args []string) error {
	bot, err := newBot(args)
	if err != nil {
		return err
	}
	printHeader(bot)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if webAddr != "" {
		bot.Hub = web.NewHub(bot)
		go func() {
			if err := web.StartServer(ctx, webAddr, bot.Hub); err != nil {
				color.Red("Web server stopped: %v", err)
			}
		}()
	}

	plan, err := bot.Plan(ctx)
	if err != nil {
		return err
	}
	printPlan(plan)

	if err := bot.Run(ctx); err != nil {
		return err
	}
	if !quiet {
		snap, err := bot.Engine.Observe(ctx)
		if err != nil {
			return err
		}
		color.New(color.FgGreen, color.Bold).Printf("✓ Executed at tick %d: gold=%d wood=%d workers=%d\n",
			snap.Tick, snap.Gold, snap.Wood, len(snap.Units))
	}
	return nil
}

func printHeader(bot *Bot) {
	if quiet {
		return
	}
	titleColor := color.New(color.FgCyan, color.Bold)
	titleColor.Println("\n╭───────────────────────────╮")
	titleColor.Println("│  Harvest Planner          │")
	titleColor.Println("╰───────────────────────────╯")
	color.New(color.FgYellow).Printf("Goal: %s\n\n", bot.planner.Goal())
}

func printPlan(plan *game.Plan) {
	if quiet {
		for _, step := range plan.Steps {
			fmt.Printf("%d: %s\n", step.Index, step.Action)
		}
		return
	}

	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"#", "Action", "Gold", "Wood", "Workers", "Cost"}),
	)
	for _, step := range plan.Steps {
		_ = table.Append([]string{
			strconv.Itoa(step.Index),
			step.Action.String(),
			strconv.Itoa(step.State.Gold),
			strconv.Itoa(step.State.Wood),
			strconv.Itoa(len(step.State.Peasants)),
			strconv.Itoa(step.State.Cost),
		})
	}
	_ = table.Render()

	fmt.Println()
	stats := plan.Stats
	if plan.Bounded {
		color.Yellow("⚠ Search stopped at a bound; the plan is partial")
	} else {
		color.New(color.FgGreen, color.Bold).Printf("✓ Plan found: %d steps, cost %d\n", plan.Len(), plan.Cost())
	}
	fmt.Printf("  expanded %d states, generated %d, pruned=%t, %s\n",
		stats.Expanded, stats.Generated, stats.Pruned, stats.Elapsed)
}
