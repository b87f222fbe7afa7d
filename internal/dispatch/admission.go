package dispatch

import (
	"context"
	"time"
)

// Orchestrator is the slice of the execution backend the dispatcher
// drives. The real implementation lives in internal/orchestrator; tests
// substitute a fake with scripted counts.
type Orchestrator interface {
	// ActiveJobs returns the point-in-time count of currently running
	// execution jobs.
	ActiveJobs(ctx context.Context) (int, error)

	// Submit creates one execution job for a batch.
	Submit(ctx context.Context, spec JobSpec) error
}

// Admission gates batch submission on the orchestrator's reported
// active-job count staying under a global ceiling.
//
// The design is a polling loop: the orchestrator's state is observed
// only through point-in-time queries, and no local counter is kept, so
// there is nothing to drift. The count is re-queried on every attempt
// and no lock is held across the call.
type Admission struct {
	orch     Orchestrator
	maxJobs  int
	interval time.Duration
	sleep    func(time.Duration)
}

// NewAdmission creates an admission controller polling at the given
// interval. sleep may be nil, in which case time.Sleep is used; tests
// pass a recorder instead.
func NewAdmission(orch Orchestrator, maxJobs int, interval time.Duration, sleep func(time.Duration)) *Admission {
	if sleep == nil {
		sleep = time.Sleep
	}
	return &Admission{
		orch:     orch,
		maxJobs:  maxJobs,
		interval: interval,
		sleep:    sleep,
	}
}

// Wait blocks until the orchestrator reports spare capacity. There is no
// retry cap: a full pool simply polls until a slot frees up, and a query
// error counts as "no capacity" so a flapping orchestrator cannot let a
// batch through unchecked.
func (a *Admission) Wait(ctx context.Context) {
	for {
		active, err := a.orch.ActiveJobs(ctx)
		if err == nil && active < a.maxJobs {
			return
		}
		if err != nil {
			log.Errorf("querying active jobs: %v", err)
		} else {
			log.Debugf("pool full (%d/%d active), waiting", active, a.maxJobs)
		}
		a.sleep(a.interval)
	}
}
