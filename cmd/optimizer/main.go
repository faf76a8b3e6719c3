package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/napolitain/solver-slayer/internal/api"
	"github.com/napolitain/solver-slayer/internal/loader"
	"github.com/napolitain/solver-slayer/internal/logger"
	"github.com/napolitain/solver-slayer/internal/models"
	"github.com/napolitain/solver-slayer/internal/solver/policy"
	"github.com/napolitain/solver-slayer/internal/sweep"
)

var (
	taskFile   string
	revenue    float64
	blockSlots int
	skipPrice  float64
	quiet      bool
	jsonOutput bool
	logLevel   string

	sweepRevenues    []float64
	sweepMaxSlots    int
	sweepConcurrency int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "optimizer",
		Short: "Task assignment policy optimizer",
		Long: `Decides for every task on the menu whether to always do it, skip it
or block it, maximizing the long-run value rate while keeping task points
sustainable.`,
		Run: runOptimize,
	}

	rootCmd.PersistentFlags().StringVarP(&taskFile, "file", "f", "", "Path to task file (.yaml, .toml or .json)")
	rootCmd.PersistentFlags().Float64Var(&revenue, "revenue", 0, "Override task point revenue")
	rootCmd.PersistentFlags().IntVar(&blockSlots, "slots", 0, "Override block slots")
	rootCmd.PersistentFlags().Float64Var(&skipPrice, "skip-price", models.DefaultSkipPrice, "Override skip price")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Minimal output")
	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the result as JSON")
	_ = rootCmd.MarkPersistentFlagRequired("file")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "Solve over a grid of revenues and block slots",
		Run:   runSweep,
	}
	sweepCmd.Flags().Float64SliceVar(&sweepRevenues, "revenues", nil, "Task point revenues to evaluate (default: file value)")
	sweepCmd.Flags().IntVar(&sweepMaxSlots, "max-slots", -1, "Evaluate block slots 0..N (default: file value)")
	sweepCmd.Flags().IntVar(&sweepConcurrency, "concurrency", 0, "Parallel solves (0 = number of CPUs)")
	rootCmd.AddCommand(sweepCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadTaskFile reads the task file and applies flag overrides.
func loadTaskFile(cmd *cobra.Command) *loader.TaskFile {
	tf, err := loader.Load(taskFile)
	if err != nil {
		color.Red("Error loading task file: %v", err)
		os.Exit(1)
	}

	flags := cmd.Flags()
	if flags.Changed("revenue") {
		tf.Settings.TaskPointRevenue = revenue
	}
	if flags.Changed("slots") {
		tf.Settings.BlockSlots = blockSlots
	}
	if flags.Changed("skip-price") {
		tf.Settings.SkipPrice = skipPrice
	}
	return tf
}

func runOptimize(cmd *cobra.Command, args []string) {
	titleColor := color.New(color.FgCyan, color.Bold)
	successColor := color.New(color.FgGreen, color.Bold)
	infoColor := color.New(color.FgYellow)

	tf := loadTaskFile(cmd)

	solver := policy.NewSolver(tf.Tasks, tf.Settings)
	solver.Logger = logger.Default(logLevel)
	result, err := solver.Solve()
	if err != nil {
		color.Red("Invalid input: %v", err)
		os.Exit(1)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(api.NewResultResponse(result)); err != nil {
			color.Red("Error encoding result: %v", err)
			os.Exit(1)
		}
		return
	}

	if quiet {
		fmt.Print(policy.FormatResult(result))
		return
	}

	titleColor.Println("\n╭───────────────────────────╮")
	titleColor.Println("│  Task Policy Optimizer    │")
	titleColor.Println("╰───────────────────────────╯")
	fmt.Println()

	infoColor.Printf("📦 Loaded %d tasks from %s\n", len(tf.Tasks), taskFile)
	fmt.Printf("   Task point revenue: %.2f\n", tf.Settings.TaskPointRevenue)
	fmt.Printf("   Skip price: %.2f\n", tf.Settings.SkipPrice)
	fmt.Printf("   Block slots: %d\n", tf.Settings.BlockSlots)
	fmt.Printf("   Sustainability threshold: %.4f\n\n", result.SustainabilityThreshold)

	printTaskTable(tf.Tasks, result)

	successColor.Println("\n✓ Policy found!")
	fmt.Print(policy.FormatResult(result))

	fmt.Println("\n📊 Diagnostics:")
	fmt.Printf("   Accept probability: %.4f\n", result.AcceptProbability)
	fmt.Printf("   Points per assignment: %.4f\n", result.PointsPerAssignment)
	fmt.Printf("   Rate solver runs: %d\n", result.SolverRuns)
}

func printTaskTable(tasks []*models.Task, result *models.Result) {
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Task", "Value/h", "Weight", "Hours", "Boss", "Action"}),
	)

	for _, t := range tasks {
		hours := fmt.Sprintf("%.2f", t.MinHours())
		if t.IsBoss() {
			hours = fmt.Sprintf("%.2f-%.2f", t.MinHours(), t.MaxHours())
		}
		boss := ""
		if t.IsBoss() {
			boss = "yes"
		}
		action, _ := result.ActionOf(t.Name())
		row := []string{
			t.Name(),
			fmt.Sprintf("%.2f", t.ValuePerHour()),
			fmt.Sprintf("%.2f", t.Weight()),
			hours,
			boss,
			string(action),
		}
		table.Append(row)
	}
	table.Render()
}

func runSweep(cmd *cobra.Command, args []string) {
	infoColor := color.New(color.FgYellow)

	tf := loadTaskFile(cmd)

	grid := sweep.Grid{Revenues: sweepRevenues}
	if sweepMaxSlots >= 0 {
		slots, err := sweep.SlotRange(sweepMaxSlots)
		if err != nil {
			color.Red("Invalid --max-slots: %v", err)
			os.Exit(1)
		}
		grid.BlockSlots = slots
	}

	runner := &sweep.Runner{Limit: sweepConcurrency, Logger: logger.Default(logLevel)}
	rows, err := runner.Run(context.Background(), tf.Tasks, tf.Settings, grid)
	if err != nil {
		color.Red("Sweep failed: %v", err)
		os.Exit(1)
	}

	infoColor.Printf("🔄 Evaluated %d settings for %d tasks\n\n", len(rows), len(tf.Tasks))

	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Revenue", "Slots", "Value/h", "Points/h", "Blocked"}),
	)
	for _, row := range rows {
		blocked := "-"
		if len(row.Result.Block) > 0 {
			blocked = strings.Join(row.Result.Block, ", ")
		}
		table.Append([]string{
			fmt.Sprintf("%.2f", row.TaskPointRevenue),
			fmt.Sprintf("%d", row.BlockSlots),
			fmt.Sprintf("%.2f", row.Result.AchievedValuePerHour),
			fmt.Sprintf("%.4f", row.Result.PointsPerHour),
			blocked,
		})
	}
	table.Render()
}
