package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/joshharrison/latepack/internal/claude"
	"github.com/joshharrison/latepack/internal/config"
	"github.com/joshharrison/latepack/internal/planner"
	"github.com/joshharrison/latepack/internal/reporter"
	"github.com/joshharrison/latepack/internal/task"
	"github.com/joshharrison/latepack/internal/taskfile"
	"github.com/joshharrison/latepack/internal/ui"
	"github.com/joshharrison/latepack/internal/viewer"
)

var (
	flagConfig  string
	flagTasks   string
	flagFromCmd string
	flagAlpha   float64
	flagJSON    bool
	flagOutput  string
	flagAlphas  string
	flagPort    int
	flagModel   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "latepack",
		Short: "Deadline-anchored planning for interdependent tasks",
		Long: `Latepack orders a set of interdependent tasks so that dependencies come
first and urgent work (earlier deadline, higher priority) comes early, then
packs each task as late as its deadline allows, working backward from the
latest deadline. Negative start times mean the deadlines cannot all be met.`,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", ".", "Project directory containing .latepack/")
	rootCmd.PersistentFlags().StringVar(&flagTasks, "tasks", "", "Task file (JSON array)")
	rootCmd.PersistentFlags().StringVar(&flagFromCmd, "from-cmd", "", "Shell command whose JSON output is the task set")
	rootCmd.PersistentFlags().Float64Var(&flagAlpha, "alpha", -1, "Priority weight (default from config)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Machine-readable JSON output")

	rootCmd.AddCommand(planCmd())
	rootCmd.AddCommand(orderCmd())
	rootCmd.AddCommand(sweepCmd())
	rootCmd.AddCommand(vizCmd())
	rootCmd.AddCommand(inferDepsCmd())
	rootCmd.AddCommand(explainCmd())
	rootCmd.AddCommand(initCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadTasks resolves the task source: --from-cmd, then --tasks, then the
// configured task file.
func loadTasks(cfg *config.Config) ([]*task.Task, error) {
	if flagFromCmd != "" {
		// Through the shell, so quoted arguments survive.
		return taskfile.LoadCommand("sh", "-c", flagFromCmd)
	}

	path := flagTasks
	if path == "" {
		path = cfg.Tasks
	}
	tasks, err := taskfile.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	return tasks, nil
}

// alphaOrConfig resolves the effective alpha: the flag wins when set.
func alphaOrConfig(cfg *config.Config) float64 {
	if flagAlpha >= 0 {
		return flagAlpha
	}
	return cfg.Alpha
}

// buildPlan is shared logic for plan, viz and explain.
func buildPlan() (*planner.ExecutionPlan, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}

	tasks, err := loadTasks(cfg)
	if err != nil {
		return nil, err
	}

	plan, err := planner.Generate(tasks, planner.PlanConfig{
		Alpha:    alphaOrConfig(cfg),
		Statuses: cfg.StatusSet(),
	})
	if err != nil {
		return nil, fmt.Errorf("generate plan: %w", err)
	}
	return plan, nil
}

func planCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Compute the schedule and print it",
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := buildPlan()
			if err != nil {
				return err
			}

			rpt := reporter.New(plan)

			if flagJSON {
				data, err := rpt.JSON()
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			if flagOutput != "" {
				data, err := rpt.JSON()
				if err != nil {
					return err
				}
				return os.WriteFile(flagOutput, data, 0644)
			}

			rpt.PrintPlan(os.Stdout)
			fmt.Println()
			fmt.Println(ui.Dim(rpt.Summary()))
			return nil
		},
	}

	cmd.Flags().StringVar(&flagOutput, "output", "", "Save plan JSON to file")

	return cmd
}

func orderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "order",
		Short: "Print the execution order without time windows",
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := buildPlan()
			if err != nil {
				return err
			}

			if flagJSON {
				ids := make([]string, 0, len(plan.Entries))
				for _, e := range plan.Entries {
					ids = append(ids, e.TaskID)
				}
				data, err := json.Marshal(ids)
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			for i, e := range plan.Entries {
				fmt.Printf("%3d. %s %s  %s\n", i+1, ui.StatusIcon(e.Status), ui.BoldMagenta(e.TaskID), e.Title)
			}
			return nil
		},
	}
}

func sweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Compare execution orders across several alphas",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flagConfig)
			if err != nil {
				return err
			}

			tasks, err := loadTasks(cfg)
			if err != nil {
				return err
			}

			alphas := cfg.SweepAlphas
			if flagAlphas != "" {
				alphas, err = parseAlphas(flagAlphas)
				if err != nil {
					return err
				}
			}

			plans, err := planner.Sweep(tasks, planner.PlanConfig{Statuses: cfg.StatusSet()}, alphas)
			if err != nil {
				return fmt.Errorf("sweep: %w", err)
			}

			if flagJSON {
				data, err := json.MarshalIndent(plans, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			reporter.PrintSweep(os.Stdout, plans)
			return nil
		},
	}

	cmd.Flags().StringVar(&flagAlphas, "alphas", "", "Comma-separated alphas (e.g. 0,1,5)")

	return cmd
}

func parseAlphas(s string) ([]float64, error) {
	var alphas []float64
	for _, part := range strings.Split(s, ",") {
		a, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("parse alphas %q: %w", s, err)
		}
		alphas = append(alphas, a)
	}
	return alphas, nil
}

func vizCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "viz",
		Short: "Serve the plan graph over HTTP for visualisers",
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := buildPlan()
			if err != nil {
				return err
			}

			// Reuse a viewer already listening on the port instead of
			// failing to bind it.
			if viewer.IsPortOpen(fmt.Sprintf("localhost:%d", flagPort)) {
				addr := fmt.Sprintf("http://localhost:%d", flagPort)
				if err := viewer.PostPlan(addr, plan); err != nil {
					return err
				}
				fmt.Printf("🕸  %s updated plan %s at %s/graph\n",
					ui.BoldCyan("Latepack:"), ui.Dim(plan.ID), ui.Bold(addr))
				return nil
			}

			addr, err := viewer.Start(flagPort)
			if err != nil {
				return err
			}
			if err := viewer.PostPlan(addr, plan); err != nil {
				return err
			}

			fmt.Printf("🕸  %s serving plan %s at %s/graph\n",
				ui.BoldCyan("Latepack:"), ui.Dim(plan.ID), ui.Bold(addr))
			fmt.Println(ui.Dim("Press Ctrl-C to stop."))

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			<-sigCh
			return nil
		},
	}

	cmd.Flags().IntVar(&flagPort, "port", 7171, "Viewer port")

	return cmd
}

func inferDepsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "infer-deps",
		Short: "Ask Claude to propose dependency edges for the task set",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flagConfig)
			if err != nil {
				return err
			}

			tasks, err := loadTasks(cfg)
			if err != nil {
				return err
			}

			summaries := make([]claude.TaskSummary, 0, len(tasks))
			for _, t := range tasks {
				summaries = append(summaries, claude.TaskSummary{
					ID:       t.ID,
					Title:    t.Title,
					Deadline: t.Deadline,
					Priority: t.Priority,
				})
			}

			client, err := claude.NewClient("", flagModel)
			if err != nil {
				return err
			}

			result, err := client.InferDeps(cmd.Context(), summaries)
			if err != nil {
				return fmt.Errorf("infer deps: %w", err)
			}

			if flagJSON {
				data, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			if len(result.Edges) == 0 {
				fmt.Println("No dependencies suggested.")
				return nil
			}
			for _, e := range result.Edges {
				fmt.Printf("  %s %s %s  %s\n",
					ui.BoldMagenta(e.DepID), ui.Dim("→"), ui.BoldMagenta(e.TaskID), ui.Dim(e.Reason))
			}
			fmt.Printf("\n%s\n", result.Summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&flagModel, "model", "", "Claude model override")

	return cmd
}

func explainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explain",
		Short: "Compute the schedule and have Claude narrate it",
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := buildPlan()
			if err != nil {
				return err
			}

			data, err := reporter.New(plan).JSON()
			if err != nil {
				return err
			}

			client, err := claude.NewClient("", flagModel)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				<-sigCh
				cancel()
			}()

			narrative, err := client.ExplainPlan(ctx, string(data))
			if err != nil {
				return fmt.Errorf("explain plan: %w", err)
			}

			fmt.Println(narrative)
			return nil
		},
	}

	cmd.Flags().StringVar(&flagModel, "model", "", "Claude model override")

	return cmd
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write the default .latepack/config.yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.EnsureDefault(".")
			if err != nil {
				return err
			}
			ui.PrintLogo()
			fmt.Printf("⧗ %s config at %s\n", ui.BoldCyan("Latepack:"), ui.Bold(path))
			return nil
		},
	}
}
