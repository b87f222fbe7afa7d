package dispatch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/op/go-logging"

	"github.com/prayujt/distributed-streaming/internal/model"
)

var log = logging.MustGetLogger("log")

// JobSpec describes one execution job: a uniquely named carrier for a
// batch of unit identifiers. The orchestrator fills in image, volume and
// credential plumbing from its own configuration.
type JobSpec struct {
	// Name is the unique job name, "downloader-" plus a random suffix.
	Name string

	// Kind says whether IDs are track ids or episode ids; the worker
	// receives them through TRACK_IDS or EPISODE_IDS accordingly.
	Kind model.UnitKind

	// IDs is the batch's unit identifiers joined with commas.
	IDs string
}

// EnvName returns the environment parameter the worker reads the ids
// from.
func (s JobSpec) EnvName() string {
	if s.Kind == model.UnitEpisode {
		return "EPISODE_IDS"
	}
	return "TRACK_IDS"
}

// Dispatcher admits and submits batches to the orchestrator.
//
// Submission never gives up: a failed submit sleeps the retry cooldown
// and restarts from the admission query, since capacity may have changed
// while the submit was failing. A permanently broken orchestrator
// therefore retries one batch forever; that is the accepted trade-off
// for a batch that has already been expanded.
type Dispatcher struct {
	orch      Orchestrator
	admission *Admission
	cooldown  time.Duration
	sleep     func(time.Duration)

	// skip disables both the admission query and the submission. Set in
	// development environments so the pipeline can run without a
	// reachable orchestrator.
	skip bool
}

// Options configures a Dispatcher.
type Options struct {
	MaxJobs       int
	PollInterval  time.Duration
	RetryCooldown time.Duration

	// Sleep replaces time.Sleep in tests. Nil means real sleeping.
	Sleep func(time.Duration)

	// SkipSubmission turns Dispatch into an expand-and-log no-op.
	SkipSubmission bool
}

// NewDispatcher creates a dispatcher over the given orchestrator.
func NewDispatcher(orch Orchestrator, opts Options) *Dispatcher {
	sleep := opts.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	return &Dispatcher{
		orch:      orch,
		admission: NewAdmission(orch, opts.MaxJobs, opts.PollInterval, sleep),
		cooldown:  opts.RetryCooldown,
		sleep:     sleep,
		skip:      opts.SkipSubmission,
	}
}

// Dispatch admits and submits one batch. It returns only once the batch
// has been accepted by the orchestrator (or immediately when submission
// is skipped).
func (d *Dispatcher) Dispatch(ctx context.Context, batch []model.Unit) {
	if len(batch) == 0 {
		return
	}

	spec := buildSpec(batch)

	if d.skip {
		log.Infof("development environment, skipping job %s (%s=%s)", spec.Name, spec.EnvName(), spec.IDs)
		return
	}

	for {
		d.admission.Wait(ctx)

		if err := d.orch.Submit(ctx, spec); err != nil {
			log.Errorf("submitting job %s: %v", spec.Name, err)
			d.sleep(d.cooldown)
			continue
		}

		log.Infof("submitted job %s with %d unit(s)", spec.Name, len(batch))
		return
	}
}

func buildSpec(batch []model.Unit) JobSpec {
	ids := make([]string, len(batch))
	for i, unit := range batch {
		ids[i] = unit.ID
	}

	return JobSpec{
		Name: fmt.Sprintf("downloader-%s", uuid.NewString()),
		Kind: batch[0].Kind,
		IDs:  strings.Join(ids, ","),
	}
}
