// internal/janitor/janitor.go
//
// Periodic eviction of idle game sessions.
// A gocron scheduler calls Store.Sweep on a fixed interval so sessions whose
// browser went away do not accumulate in memory.

package janitor

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/rps/internal/store"
)

// Janitor owns the sweep scheduler.
type Janitor struct {
	sched gocron.Scheduler
	st    store.Store
	idle  time.Duration
}

// Start schedules a sweep every interval, evicting sessions idle longer than idle.
func Start(st store.Store, interval, idle time.Duration) (*Janitor, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("new scheduler: %w", err)
	}
	j := &Janitor{sched: sched, st: st, idle: idle}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(j.Sweep),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, fmt.Errorf("schedule sweep: %w", err)
	}
	sched.Start()
	log.Info().Dur("interval", interval).Dur("idle", idle).Msg("session janitor started")
	return j, nil
}

// Sweep runs one eviction pass.
func (j *Janitor) Sweep() {
	n := j.st.Sweep(context.Background(), j.idle)
	if n > 0 {
		log.Info().Int("evicted", n).Int("live", j.st.Len()).Msg("swept idle sessions")
		return
	}
	log.Debug().Int("live", j.st.Len()).Msg("sweep: nothing idle")
}

// Stop shuts the scheduler down, waiting for a running sweep to finish.
func (j *Janitor) Stop() error {
	return j.sched.Shutdown()
}
