package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/doodlesbykumbi/substack-in-go/pkg/model"
)

func TestNextRun(t *testing.T) {
	at := func(h, m int) time.Time { return time.Date(2025, 3, 15, h, m, 0, 0, time.UTC) }

	assert.Equal(t, at(9, 0), NextRun(at(8, 59), 9))
	assert.Equal(t, at(9, 0).AddDate(0, 0, 1), NextRun(at(9, 0), 9))
	assert.Equal(t, at(9, 0).AddDate(0, 0, 1), NextRun(at(23, 30), 9))
	assert.Equal(t, at(0, 0).AddDate(0, 0, 1), NextRun(at(12, 0), 0))
}

type mockJob struct {
	mock.Mock
}

func (m *mockJob) Run(ctx context.Context, today model.Date) (Summary, error) {
	args := m.Called(ctx, today)
	return Summary{}, args.Error(0)
}

type mockLocker struct {
	mock.Mock
}

func (m *mockLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0), args.Error(1)
}

func TestSchedulerRunOnce(t *testing.T) {
	day := model.NewDate(time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC))

	t.Run("runs when the lock is granted", func(t *testing.T) {
		job, locker := &mockJob{}, &mockLocker{}
		locker.On("Acquire", mock.Anything, "substack:reminders:2025-03-15", lockTTL).Return(true, nil)
		job.On("Run", mock.Anything, day).Return(nil)

		NewScheduler(job, func() int { return 9 }, locker).RunOnce(context.Background(), day)

		job.AssertExpectations(t)
	})

	t.Run("does nothing when another replica holds the lock", func(t *testing.T) {
		job, locker := &mockJob{}, &mockLocker{}
		locker.On("Acquire", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)

		NewScheduler(job, func() int { return 9 }, locker).RunOnce(context.Background(), day)

		job.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)
	})

	t.Run("does nothing when the lock errors", func(t *testing.T) {
		job, locker := &mockJob{}, &mockLocker{}
		locker.On("Acquire", mock.Anything, mock.Anything, mock.Anything).Return(false, errors.New("redis down"))

		NewScheduler(job, func() int { return 9 }, locker).RunOnce(context.Background(), day)

		job.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)
	})
}

func TestSchedulerRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	job := &mockJob{}
	job.On("Run", mock.Anything, model.NewDate(time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC))).
		Run(func(mock.Arguments) { cancel() }).
		Return(nil).Once()

	s := NewScheduler(job, func() int { return 9 }, nil)
	s.now = func() time.Time { return time.Date(2025, 3, 15, 8, 0, 0, 0, time.UTC) }
	var waited []time.Duration
	s.after = func(d time.Duration) <-chan time.Time {
		waited = append(waited, d)
		if len(waited) > 1 {
			return nil
		}
		ch := make(chan time.Time, 1)
		ch <- time.Time{}
		return ch
	}

	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop after cancel")
	}
	assert.Equal(t, time.Hour, waited[0])
	job.AssertExpectations(t)
}
