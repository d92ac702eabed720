package reminder

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/doodlesbykumbi/substack-in-go/pkg/model"
)

const lockTTL = 23 * time.Hour

// Job is the work a Scheduler triggers once per day.
type Job interface {
	Run(ctx context.Context, today model.Date) (Summary, error)
}

// Scheduler runs a Job every day at a UTC hour.
type Scheduler struct {
	job    Job
	hour   func() int
	locker Locker

	now   func() time.Time
	after func(time.Duration) <-chan time.Time
}

// NewScheduler returns a Scheduler for job. hour is read before every wait
// so that a reloaded configuration applies from the next run.
func NewScheduler(job Job, hour func() int, locker Locker) *Scheduler {
	if locker == nil {
		locker = LocalLocker{}
	}
	return &Scheduler{
		job:    job,
		hour:   hour,
		locker: locker,
		now:    func() time.Time { return time.Now().UTC() },
		after:  time.After,
	}
}

// NextRun returns the first hour:00 UTC strictly after now.
func NextRun(now time.Time, hour int) time.Time {
	now = now.UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Run blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	logrus.Infof("scheduler started, renewal check scheduled for %d:00 UTC daily", s.hour())
	for {
		current := s.now()
		next := NextRun(current, s.hour())

		select {
		case <-ctx.Done():
			logrus.Info("scheduler stopped")
			return
		case <-s.after(next.Sub(current)):
		}

		s.RunOnce(ctx, model.NewDate(next))
	}
}

// RunOnce runs the job for day unless another holder has its lock.
func (s *Scheduler) RunOnce(ctx context.Context, day model.Date) {
	key := "substack:reminders:" + day.String()
	ok, err := s.locker.Acquire(ctx, key, lockTTL)
	if err != nil {
		logrus.WithError(err).WithField("key", key).Error("failed to acquire reminder lock")
		return
	}
	if !ok {
		logrus.WithField("key", key).Info("reminder job already claimed by another replica")
		return
	}

	if _, err := s.job.Run(ctx, day); err != nil {
		logrus.WithError(err).Error("error in renewal reminder job")
	}
}
