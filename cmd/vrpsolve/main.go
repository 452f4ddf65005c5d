// Command vrpsolve runs the refinement engine over a problem fixture and
// prints the best solution's statistic. It exists as a runnable
// demonstration of the full wiring — problem model, constraint pipeline,
// initial builders, mutation, termination — not as the production
// adapter surface (readers/writers for wire formats live outside this
// repository).
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/burikinc/vrp/pkg/vrp/builder"
	"github.com/burikinc/vrp/pkg/vrp/solution"
	"github.com/burikinc/vrp/pkg/vrp/solver"
	"github.com/burikinc/vrp/pkg/vrp/termination"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		maxTime    time.Duration
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "vrpsolve",
		Short: "Refine a vehicle-routing demo problem and print the best solution",
		RunE: func(cmd *cobra.Command, args []string) error {
			fileCfg, err := solver.LoadFileConfig(configPath)
			if err != nil {
				return err
			}

			cfg := solver.Config{
				InitialMethods: []builder.WeightedMethod{
					{Builder: builder.NewNaiveInsertionBuilder(), Weight: 1},
				},
			}
			if err := fileCfg.ApplyTo(&cfg); err != nil {
				return err
			}
			if verbose {
				cfg.Telemetry = solver.NewSlogTelemetry(slog.Default())
			}
			if maxTime > 0 {
				cfg.Quota = termination.NewTimeQuota(maxTime)
			}

			problem := demoProblem()
			sim, err := solver.NewSimulator(problem, cfg)
			if err != nil {
				return err
			}

			pop, err := sim.Run()
			if err != nil {
				return err
			}

			best := pop.Select()
			if best == nil {
				return fmt.Errorf("no solution produced")
			}

			stat, tours := solution.Calculate(best)
			fmt.Printf("cost=%.2f distance=%.2f duration=%.2f\n", stat.Cost, stat.Distance, stat.Duration)
			fmt.Printf("times driving=%.2f serving=%.2f waiting=%.2f break=%.2f\n",
				stat.Times.Driving, stat.Times.Serving, stat.Times.Waiting, stat.Times.Break)
			for _, tour := range tours {
				fmt.Printf("tour %s:", tour.VehicleID)
				for _, stop := range tour.Stops {
					if stop.JobID != "" {
						fmt.Printf(" %s[%.0f..%.0f]", stop.JobID, stop.Arrival, stop.Departure)
					}
				}
				fmt.Println()
			}
			unassigned := len(best.Solution.Unassigned)
			if unassigned > 0 {
				fmt.Printf("unassigned: %d\n", unassigned)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "engine config file (yaml/toml/json)")
	cmd.Flags().DurationVar(&maxTime, "max-time", 0, "wall-clock quota for the whole run")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log every generation")

	return cmd
}
