// Package scheduler wires up the cron job that periodically recalculates
// strict matches for all active jobs with required skills.
//
// The primary recalculation trigger stays with the Gateway (job publish and
// reopen); this sweep is the safety net that keeps rankings fresh as skill
// scores expire between those events.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"jobmate/matching-service/internal/matching"
)

// Scheduler wraps robfig/cron and manages the recalculation loop.
type Scheduler struct {
	cron *cron.Cron
	svc  *matching.Service
	spec string // cron spec, e.g. "@every 6h"
}

// New creates a Scheduler that fires every intervalHours hours.
func New(svc *matching.Service, intervalHours int) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithLogger(cron.DefaultLogger)),
		svc:  svc,
		spec: fmt.Sprintf("@every %dh", intervalHours),
	}
}

// Start registers the job and starts the scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runSweep(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	log.Printf("[scheduler] Cron started — spec: %s", s.spec)
	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[scheduler] Cron stopped")
}

// runSweep recalculates matches for every eligible job. A failed job leaves
// its prior matches untouched and the sweep continues with the next one.
func (s *Scheduler) runSweep(ctx context.Context) {
	log.Println("[scheduler] Recalculation sweep started")

	jobIDs, err := s.svc.ActiveJobIDsWithRequiredSkills(ctx)
	if err != nil {
		log.Printf("[scheduler] ActiveJobIDsWithRequiredSkills error: %v", err)
		return
	}

	if len(jobIDs) == 0 {
		log.Println("[scheduler] No active jobs with required skills — nothing to recalculate")
		return
	}

	var recalculated, failed int
	for _, jobID := range jobIDs {
		_, err := s.svc.CalculateMatches(ctx, jobID)
		switch {
		case err == nil:
			recalculated++
		case errors.Is(err, matching.ErrNoSkillsConfigured), errors.Is(err, matching.ErrNoRequiredSkills):
			// Requirements changed since the ID listing; skip quietly.
		default:
			failed++
			log.Printf("[scheduler] CalculateMatches error for job %s: %v — continuing", jobID, err)
		}
	}

	log.Printf("[scheduler] Sweep complete — recalculated=%d failed=%d", recalculated, failed)
}
