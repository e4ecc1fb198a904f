package appointment

import (
	"time"

	"github.com/BruksfildServices01/barber-timeline/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-timeline/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Confirm(ap *models.Appointment, now time.Time) error {
	if err := CanTransition(Status(ap.Status), StatusConfirmed); err != nil {
		return err
	}

	ap.Status = string(StatusConfirmed)
	ap.ConfirmedAt = &now
	return nil
}

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanTransition(Status(ap.Status), StatusCancelled); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanTransition(Status(ap.Status), StatusCompleted); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

func MarkNoShow(ap *models.Appointment) error {
	if err := CanTransition(Status(ap.Status), StatusNoShow); err != nil {
		return err
	}

	ap.Status = string(StatusNoShow)
	return nil
}

// Reschedule troca início e fim juntos; o guard já deve ter aprovado r
func Reschedule(ap *models.Appointment, r schedule.Range) error {
	if err := CanReschedule(Status(ap.Status)); err != nil {
		return err
	}

	ap.StartAt = r.Start.UTC()
	ap.EndAt = r.End.UTC()
	return nil
}
