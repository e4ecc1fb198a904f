package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-timeline/internal/audit"
	domain "github.com/BruksfildServices01/barber-timeline/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-timeline/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-timeline/internal/models"
	"github.com/BruksfildServices01/barber-timeline/internal/notify"
)

type StatusChangeInput struct {
	BarbershopID    uint
	BarberProfileID uint
	ActorUserID     *uint
	AppointmentID   uint
}

// statusChange é o fluxo comum de confirmar, cancelar, concluir e faltar.
type statusChange struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	events *notify.Dispatcher
	now    func() time.Time

	action string
	event  string
	apply  func(ap *models.Appointment, now time.Time) error
}

func (sc *statusChange) execute(
	ctx context.Context,
	in StatusChangeInput,
) (*models.Appointment, error) {

	shop, profile, err := schedule.LoadBarber(ctx, sc.repo, in.BarbershopID, in.BarberProfileID)
	if err != nil {
		return nil, err
	}

	now := sc.now().UTC()
	var (
		ap   *models.Appointment
		from string
	)

	err = sc.repo.Transaction(ctx, func(tx domain.Repository) error {
		current, err := tx.GetAppointmentForBarber(ctx, in.AppointmentID, profile.UserID)
		if err != nil {
			return err
		}

		from = current.Status
		if err := sc.apply(current, now); err != nil {
			return err
		}
		if err := tx.UpdateAppointment(ctx, current); err != nil {
			return err
		}

		ap = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	sc.audit.Dispatch(audit.Event{
		BarbershopID: shop.ID,
		UserID:       in.ActorUserID,
		Action:       sc.action,
		Entity:       "appointment",
		EntityID:     audit.UintID(ap.ID),
		Metadata: map[string]any{
			"from": from,
			"to":   ap.Status,
		},
	})
	if sc.event != "" {
		sc.events.Dispatch(eventFor(sc.event, ap, &ap.Customer))
	}

	return ap, nil
}

// ======================================================
// CONFIRM
// ======================================================

type ConfirmAppointment struct {
	statusChange
}

func NewConfirmAppointment(
	repo domain.Repository,
	auditor *audit.Dispatcher,
) *ConfirmAppointment {
	return &ConfirmAppointment{statusChange{
		repo:   repo,
		audit:  auditor,
		now:    time.Now,
		action: audit.ActionAppointmentConfirmed,
		apply:  domain.Confirm,
	}}
}

func (uc *ConfirmAppointment) Execute(ctx context.Context, in StatusChangeInput) (*models.Appointment, error) {
	return uc.execute(ctx, in)
}

// ======================================================
// NO-SHOW
// ======================================================

type MarkNoShow struct {
	statusChange
}

func NewMarkNoShow(
	repo domain.Repository,
	auditor *audit.Dispatcher,
) *MarkNoShow {
	return &MarkNoShow{statusChange{
		repo:   repo,
		audit:  auditor,
		now:    time.Now,
		action: audit.ActionAppointmentNoShow,
		apply: func(ap *models.Appointment, _ time.Time) error {
			return domain.MarkNoShow(ap)
		},
	}}
}

func (uc *MarkNoShow) Execute(ctx context.Context, in StatusChangeInput) (*models.Appointment, error) {
	return uc.execute(ctx, in)
}
