// Package batch runs many toktx conversions concurrently, skipping outputs
// that are already up to date.
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/saltyorg/ktx/internal/cache"
	"github.com/saltyorg/ktx/internal/executor"
	"github.com/saltyorg/ktx/internal/logging"
	"github.com/saltyorg/ktx/toktx"
)

// Job is one conversion from files on disk to a file on disk.
type Job struct {
	Label  string
	Config *toktx.ToKtx
	Inputs []string
	Output string
}

// Outcome is the result of one Job.
type Outcome struct {
	Job      Job
	Skipped  bool
	Duration time.Duration
	Err      error
}

// Runner executes jobs on a shared Pool.
type Runner struct {
	// Pool bounds the number of toktx processes. Defaults to one per CPU.
	Pool *executor.Pool
	// Cache, if set, is consulted and updated with job fingerprints.
	Cache *cache.Cache
	// Force reruns every job regardless of the cache.
	Force bool
	// KeepGoing runs remaining jobs after a failure instead of cancelling
	// them.
	KeepGoing bool
	// OnDone is called once per job as it finishes, from the job's
	// goroutine. Calls are serialized.
	OnDone func(Outcome)

	mu sync.Mutex
}

// Run executes jobs and returns their outcomes in input order. The error
// joins every job failure; with KeepGoing unset, jobs still running when the
// first failure happens are cancelled and their outcomes carry
// context.Canceled without being counted as failures.
func (r *Runner) Run(ctx context.Context, jobs []Job) ([]Outcome, error) {
	pool := r.Pool
	if pool == nil {
		pool = executor.NewPool(0)
	}

	outcomes := make([]Outcome, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(pool.Size())

	for i, job := range jobs {
		runCtx := gctx
		if r.KeepGoing {
			runCtx = ctx
		}
		g.Go(func() error {
			start := time.Now()
			skipped, err := r.runJob(runCtx, pool, job)
			outcomes[i] = Outcome{Job: job, Skipped: skipped, Duration: time.Since(start), Err: err}
			r.report(outcomes[i])
			if err != nil && !r.KeepGoing {
				return err
			}
			return nil
		})
	}
	_ = g.Wait()

	if r.Cache != nil {
		if err := r.Cache.Save(); err != nil {
			logging.Debug("Failed to save cache: %v", err)
		}
	}

	var errs []error
	for _, o := range outcomes {
		if o.Err == nil {
			continue
		}
		// Jobs cancelled because another one failed are not failures of
		// their own.
		if ctx.Err() == nil && errors.Is(o.Err, context.Canceled) {
			continue
		}
		errs = append(errs, fmt.Errorf("%s: %w", o.Job.Label, o.Err))
	}
	return outcomes, errors.Join(errs...)
}

func (r *Runner) runJob(ctx context.Context, pool *executor.Pool, job Job) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	conv := job.Config.Convert(toktx.Paths(job.Inputs))

	var fingerprint string
	if r.Cache != nil {
		argv, err := conv.Argv(job.Output)
		if err != nil {
			return false, err
		}
		fingerprint, err = cache.Fingerprint(argv, job.Inputs)
		if err != nil {
			return false, err
		}
		if !r.Force && r.Cache.Fresh(job.Output, fingerprint) {
			logging.Debug("%s is up to date", job.Output)
			return true, nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(job.Output), 0o755); err != nil {
		return false, err
	}
	logging.Trace("Running %s", job.Label)
	if err := conv.ToPathWith(ctx, pool, job.Output); err != nil {
		if r.Cache != nil {
			r.Cache.Forget(job.Output)
		}
		// A child killed by cancellation reports a signal; report the
		// cancellation instead.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return false, ctxErr
		}
		return false, err
	}
	if r.Cache != nil {
		r.Cache.Record(job.Output, fingerprint)
	}
	return false, nil
}

func (r *Runner) report(o Outcome) {
	if r.OnDone == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.OnDone(o)
}
