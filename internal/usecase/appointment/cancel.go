package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-timeline/internal/audit"
	domain "github.com/BruksfildServices01/barber-timeline/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-timeline/internal/models"
	"github.com/BruksfildServices01/barber-timeline/internal/notify"
)

// CancelAppointment libera o horário: CANCELLED sai do filtro de ativos.
type CancelAppointment struct {
	statusChange
}

func NewCancelAppointment(
	repo domain.Repository,
	auditor *audit.Dispatcher,
	events *notify.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{statusChange{
		repo:   repo,
		audit:  auditor,
		events: events,
		now:    time.Now,
		action: audit.ActionAppointmentCancelled,
		event:  notify.EventAppointmentCancelled,
		apply:  domain.Cancel,
	}}
}

func (uc *CancelAppointment) Execute(ctx context.Context, in StatusChangeInput) (*models.Appointment, error) {
	return uc.execute(ctx, in)
}
