package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-timeline/internal/audit"
	domain "github.com/BruksfildServices01/barber-timeline/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-timeline/internal/models"
)

type CompleteAppointment struct {
	statusChange
}

func NewCompleteAppointment(
	repo domain.Repository,
	auditor *audit.Dispatcher,
) *CompleteAppointment {
	return &CompleteAppointment{statusChange{
		repo:   repo,
		audit:  auditor,
		now:    time.Now,
		action: audit.ActionAppointmentCompleted,
		apply:  domain.Complete,
	}}
}

func (uc *CompleteAppointment) Execute(ctx context.Context, in StatusChangeInput) (*models.Appointment, error) {
	return uc.execute(ctx, in)
}
