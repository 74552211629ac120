package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/saltyorg/ktx/internal/batch"
	"github.com/saltyorg/ktx/internal/cache"
	"github.com/saltyorg/ktx/internal/config"
	"github.com/saltyorg/ktx/internal/executor"
	"github.com/saltyorg/ktx/internal/logging"
	"github.com/saltyorg/ktx/internal/spinners"
	"github.com/saltyorg/ktx/internal/styles"
	"github.com/saltyorg/ktx/internal/table"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	batchJobs      int
	batchForce     bool
	batchKeepGoing bool
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Build every job in the profile file",
	Long: `Build every job in the profile file concurrently.

Outputs whose inputs and options have not changed since the last build are
skipped. Fingerprints are kept in the cache file next to the profile file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBatch(cmd.Context(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().IntVarP(&batchJobs, "jobs", "j", 0, "number of toktx processes to run at once (default: number of CPUs)")
	batchCmd.Flags().BoolVarP(&batchForce, "force", "f", false, "rebuild outputs that are up to date")
	batchCmd.Flags().BoolVarP(&batchKeepGoing, "keep-going", "k", false, "keep building after a job fails")
}

func runBatch(ctx context.Context, w io.Writer) error {
	f, err := loadConfig()
	if err != nil {
		return err
	}
	if len(f.Jobs) == 0 {
		spinners.RunWarningSpinner("No jobs defined")
		return nil
	}

	jobs, err := batchJobsFrom(f)
	if err != nil {
		return err
	}
	c, err := cache.New(f.CachePath())
	if err != nil {
		return err
	}

	runner := &batch.Runner{
		Pool:      executor.NewPool(batchJobs),
		Cache:     c,
		Force:     batchForce,
		KeepGoing: batchKeepGoing,
		OnDone: func(o batch.Outcome) {
			logging.Debug("%s finished in %s (skipped: %t, error: %v)", o.Job.Label, o.Duration.Round(time.Millisecond), o.Skipped, o.Err)
		},
	}
	logging.Debug("Running %d job(s), %d at a time", len(jobs), runner.Pool.Size())

	var outcomes []batch.Outcome
	runErr := spinners.RunTaskWithSpinnerContext(ctx, fmt.Sprintf("Building %d texture(s)", len(jobs)), func() error {
		var err error
		outcomes, err = runner.Run(ctx, jobs)
		return err
	})
	if outcomes != nil {
		printOutcomes(w, outcomes)
	}
	if runErr != nil {
		handleInterruptError(runErr)
		return runErr
	}
	return nil
}

// batchJobsFrom resolves every job's profile and paths.
func batchJobsFrom(f *config.File) ([]batch.Job, error) {
	jobs := make([]batch.Job, 0, len(f.Jobs))
	for _, j := range f.Jobs {
		profile, err := resolveProfile(f, j.Profile, nil)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", j.Label(), err)
		}
		inputs := make([]string, len(j.Input))
		for i, in := range j.Input {
			inputs[i] = f.Resolve(in)
		}
		jobs = append(jobs, batch.Job{
			Label:  j.Label(),
			Config: profile,
			Inputs: inputs,
			Output: f.Resolve(j.Output),
		})
	}
	return jobs, nil
}

func printOutcomes(w io.Writer, outcomes []batch.Outcome) {
	styled := isTerminal(w)
	t := table.New(w, styled)
	t.SetHeaders("Job", "Output", "Status", "Time")
	t.SetAlignment(table.AlignLeft, table.AlignLeft, table.AlignLeft, table.AlignRight)
	t.SetCellMaxWidth(48)

	render := func(s string, style lipgloss.Style) string {
		if styled {
			return style.Render(s)
		}
		return s
	}

	var built, skipped, failed int
	for _, o := range outcomes {
		status := render("built", styles.SuccessStyle)
		elapsed := o.Duration.Round(time.Millisecond).String()
		switch {
		case errors.Is(o.Err, context.Canceled):
			status = render("cancelled", styles.WarningStyle)
			elapsed = "-"
		case o.Err != nil:
			status = render("failed", styles.ErrorStyle)
			failed++
		case o.Skipped:
			status = render("up to date", styles.DimStyle)
			elapsed = "-"
			skipped++
		default:
			built++
		}
		t.AddRow(o.Job.Label, o.Job.Output, status, elapsed)
	}
	t.Render()
	fmt.Fprintf(w, "%d built, %d up to date, %d failed\n", built, skipped, failed)
}
