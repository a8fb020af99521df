package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-shift-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RunsImmediatelyAndStops(t *testing.T) {
	s := NewScheduler()
	var runs atomic.Int32
	s.AddJob("count", time.Hour, 0, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	s.Start(context.Background())
	require.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 5*time.Millisecond)
	s.Stop()

	assert.Equal(t, int32(1), runs.Load())
}

func TestScheduler_RunOnceContinuesAfterFailure(t *testing.T) {
	s := NewScheduler()
	var order []string
	s.AddJob("fails", time.Hour, 0, func(ctx context.Context) error {
		order = append(order, "fails")
		return errors.New("boom")
	})
	s.AddJob("runs", time.Hour, 0, func(ctx context.Context) error {
		order = append(order, "runs")
		return nil
	})

	s.RunOnce(context.Background())
	assert.Equal(t, []string{"fails", "runs"}, order)
}

func TestScheduler_StopWithoutStart(t *testing.T) {
	assert.NotPanics(t, NewScheduler().Stop)
}

type stubAttendanceService struct {
	attendance.AttendanceService
	closed int
	err    error
	calls  int
}

func (s *stubAttendanceService) CloseExpired(ctx context.Context) (int, error) {
	s.calls++
	return s.closed, s.err
}

func TestAttendanceJobs_CloseExpired(t *testing.T) {
	svc := &stubAttendanceService{closed: 3}
	jobs := NewAttendanceJobs(svc)

	s := NewScheduler()
	jobs.RegisterJobs(s)
	s.RunOnce(context.Background())
	assert.Equal(t, 1, svc.calls)

	svc.err = errors.New("db down")
	assert.Error(t, jobs.CloseExpiredAttendances(context.Background()))
}
