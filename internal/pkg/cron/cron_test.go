package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempreco/ponto-backend-go/internal/domain/attendance"
	"github.com/tempreco/ponto-backend-go/internal/domain/employee"
	"github.com/tempreco/ponto-backend-go/internal/pkg/logger"
	"github.com/tempreco/ponto-backend-go/internal/pkg/sse"
)

func TestScheduler_RunsUntilStopped(t *testing.T) {
	s := NewScheduler(logger.Discard())
	var runs atomic.Int32
	s.AddJob("tick", 10*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	s.Start()
	require.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, 5*time.Millisecond)
	s.Stop()

	after := runs.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, runs.Load())
}

func TestScheduler_RunOnceContinuesAfterFailure(t *testing.T) {
	s := NewScheduler(logger.Discard())
	var second bool
	s.AddJob("fails", time.Hour, func(ctx context.Context) error { return errors.New("boom") })
	s.AddJob("ok", time.Hour, func(ctx context.Context) error {
		second = true
		return nil
	})

	s.RunOnce(context.Background())
	assert.True(t, second)
}

// liveStub is the part of the attendance service the job uses.
type liveStub struct {
	attendance.AttendanceService
	hours map[string]attendance.LiveHours
}

func (l liveStub) Live(ctx context.Context, employeeID string) (attendance.LiveHours, error) {
	h, ok := l.hours[employeeID]
	if !ok {
		return attendance.LiveHours{}, employee.ErrEmployeeNotFound
	}
	return h, nil
}

func TestPublishLiveHours(t *testing.T) {
	hub := sse.NewHub()
	stub := liveStub{hours: map[string]attendance.LiveHours{
		"e1": {EmployeeID: "e1", Status: attendance.StatusClockedIn, TotalHours: 2},
	}}
	job := NewLiveHoursJobs(stub, hub, time.Second, logger.Discard())

	ch, cleanup := hub.Subscribe("e1")
	defer cleanup()
	gone, cleanupGone := hub.Subscribe("deleted")
	defer cleanupGone()

	require.NoError(t, job.PublishLiveHours(context.Background()))

	select {
	case ev := <-ch:
		assert.Equal(t, sse.EventLiveHours, ev.Event)
		live, ok := ev.Data.(attendance.LiveHours)
		require.True(t, ok)
		assert.Equal(t, 2.0, live.TotalHours)
	default:
		t.Fatal("expected a live_hours event")
	}
	assert.Len(t, gone, 0)
}

func TestRegisterJobs(t *testing.T) {
	s := NewScheduler(logger.Discard())
	NewLiveHoursJobs(liveStub{}, sse.NewHub(), time.Second, logger.Discard()).RegisterJobs(s)

	require.Len(t, s.jobs, 1)
	assert.Equal(t, "publish_live_hours", s.jobs[0].Name)
	assert.Equal(t, time.Second, s.jobs[0].Interval)
}
