package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gestipresence/presence-backend-go/internal/domain/absence"
)

// AbsenceJobs keeps employee statuses in line with the absence ledger as
// days roll over.
type AbsenceJobs struct {
	absenceService absence.AbsenceService
	location       *time.Location
	now            func() time.Time
}

func NewAbsenceJobs(absenceService absence.AbsenceService, loc *time.Location) *AbsenceJobs {
	if loc == nil {
		loc = time.Local
	}
	return &AbsenceJobs{
		absenceService: absenceService,
		location:       loc,
		now:            time.Now,
	}
}

func (j *AbsenceJobs) RegisterJobs(scheduler *Scheduler, spec string) error {
	return scheduler.AddCronJob("apply_active_absences", spec, j.ApplyActiveAbsences)
}

func (j *AbsenceJobs) ApplyActiveAbsences(ctx context.Context) error {
	today := j.now().In(j.location)
	slog.Info("Cron: applying active absences", "date", today.Format("02/01/2006"))

	updated, err := j.absenceService.ApplyActiveAbsences(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to apply active absences: %w", err)
	}

	slog.Info("Cron: active absences applied", "employees_updated", updated)
	return nil
}
