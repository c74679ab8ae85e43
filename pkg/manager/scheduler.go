package manager

import (
	"context"
	"time"

	"github.com/kasuboski/episodez/pkg/logger"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Run reconciles downloads on the cron schedule until ctx is done. An empty schedule only waits.
func (m *Manager) Run(ctx context.Context, schedule string) error {
	log := logger.FromCtx(ctx)

	if schedule == "" {
		log.Info("download reconciliation is not scheduled")
		<-ctx.Done()
		return nil
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	_, err := c.AddFunc(schedule, func() {
		m.reconcileJob(ctx)
	})
	if err != nil {
		return err
	}

	log.Info("scheduled download reconciliation", zap.String("schedule", schedule))
	c.Start()

	<-ctx.Done()
	<-c.Stop().Done()
	log.Debug("scheduler stopped")

	return nil
}

func (m *Manager) reconcileJob(ctx context.Context) {
	log := logger.FromCtx(ctx)

	if err := m.job.Transition(JobRunning); err != nil {
		log.Warn("download reconciliation not started", zap.Error(err))
		return
	}

	started := time.Now()
	m.setJobStatus(func(s *JobStatus) {
		*s = JobStatus{StartedAt: &started}
	})

	decisions, err := m.ReconcileDownloads(ctx)
	finished := time.Now()
	if err != nil {
		log.Error("download reconciliation failed", zap.Error(err))
		m.setJobStatus(func(s *JobStatus) {
			s.FinishedAt = &finished
			s.Error = err.Error()
		})
		if err := m.job.Transition(JobError); err != nil {
			log.Error("failed to record job state", zap.Error(err))
		}
		return
	}

	needed := 0
	for _, d := range decisions {
		if d.Needed {
			needed++
		}
	}

	m.setJobStatus(func(s *JobStatus) {
		s.FinishedAt = &finished
		s.Entries = len(decisions)
		s.Needed = needed
	})
	if err := m.job.Transition(JobDone); err != nil {
		log.Error("failed to record job state", zap.Error(err))
	}

	log.Info("reconciled downloads", zap.Int("entries", len(decisions)), zap.Int("needed", needed), zap.Duration("took", finished.Sub(started)))
}
