package cron

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/tempreco/ponto-backend-go/internal/domain/attendance"
	"github.com/tempreco/ponto-backend-go/internal/domain/employee"
	"github.com/tempreco/ponto-backend-go/internal/pkg/sse"
)

// LiveHoursJobs pushes the live projection of every employee with an open
// stream. Nothing is persisted.
type LiveHoursJobs struct {
	attendanceSvc attendance.AttendanceService
	hub           *sse.Hub
	interval      time.Duration
	logger        *slog.Logger
}

func NewLiveHoursJobs(attendanceSvc attendance.AttendanceService, hub *sse.Hub, interval time.Duration, logger *slog.Logger) *LiveHoursJobs {
	return &LiveHoursJobs{
		attendanceSvc: attendanceSvc,
		hub:           hub,
		interval:      interval,
		logger:        logger,
	}
}

func (j *LiveHoursJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("publish_live_hours", j.interval, j.PublishLiveHours)
}

func (j *LiveHoursJobs) PublishLiveHours(ctx context.Context) error {
	for _, employeeID := range j.hub.EmployeeIDs() {
		live, err := j.attendanceSvc.Live(ctx, employeeID)
		if err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			j.logger.Warn("failed to compute live hours", "employee_id", employeeID, "error", err)
			continue
		}

		j.hub.Publish(employeeID, sse.Event{
			EmployeeID: employeeID,
			Event:      sse.EventLiveHours,
			Data:       live,
		})
	}
	return nil
}
