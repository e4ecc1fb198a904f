package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-timeline/internal/audit"
	domain "github.com/BruksfildServices01/barber-timeline/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-timeline/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-timeline/internal/metrics"
	"github.com/BruksfildServices01/barber-timeline/internal/models"
	"github.com/BruksfildServices01/barber-timeline/internal/notify"
)

type RescheduleAppointmentInput struct {
	BarbershopID    uint
	BarberProfileID uint
	ActorUserID     *uint

	AppointmentID uint
	Date          string
	Time          string
}

type RescheduleAppointment struct {
	repo    domain.Repository
	guard   schedule.Guard
	audit   *audit.Dispatcher
	events  *notify.Dispatcher
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewRescheduleAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	events *notify.Dispatcher,
	m *metrics.Metrics,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:    repo,
		audit:   audit,
		events:  events,
		metrics: m,
		now:     time.Now,
	}
}

// Execute move o agendamento mantendo a duração. O próprio agendamento é
// ignorado na checagem de sobreposição.
func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleAppointmentInput,
) (*models.Appointment, error) {

	shop, profile, err := schedule.LoadBarber(ctx, uc.repo, in.BarbershopID, in.BarberProfileID)
	if err != nil {
		return nil, err
	}
	loc := shopLocation(shop)

	start, err := parseLocalStart(in.Date, in.Time, loc)
	if err != nil {
		return nil, err
	}
	if err := checkAdvance(shop, start, uc.now().In(loc)); err != nil {
		return nil, err
	}

	var (
		ap       *models.Appointment
		previous schedule.Range
		window   schedule.Range
	)

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if err := tx.LockBarber(ctx, profile.ID); err != nil {
			return err
		}

		current, err := tx.GetAppointmentForBarber(ctx, in.AppointmentID, profile.UserID)
		if err != nil {
			return err
		}
		if err := domain.CanReschedule(domain.Status(current.Status)); err != nil {
			return err
		}

		previous = schedule.Range{Start: current.StartAt, End: current.EndAt}
		window = schedule.Range{Start: start, End: start.Add(previous.Duration())}

		if err := uc.guard.Check(ctx, tx, schedule.Proposal{
			Profile:              profile,
			Location:             loc,
			Range:                window,
			ExcludeAppointmentID: current.ID,
		}); err != nil {
			return err
		}

		if err := domain.Reschedule(current, window); err != nil {
			return err
		}
		if err := tx.UpdateAppointment(ctx, current); err != nil {
			return err
		}

		ap = current
		return nil
	})

	if window.Valid() {
		recordGuard(uc.metrics, uc.audit, shop.ID, in.ActorUserID, audit.UintID(in.AppointmentID), window, err)
	}
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: shop.ID,
		UserID:       in.ActorUserID,
		Action:       audit.ActionAppointmentRescheduled,
		Entity:       "appointment",
		EntityID:     audit.UintID(ap.ID),
		Metadata: map[string]any{
			"from_start": previous.Start.UTC(),
			"from_end":   previous.End.UTC(),
			"to_start":   ap.StartAt,
			"to_end":     ap.EndAt,
		},
	})
	uc.events.Dispatch(eventFor(notify.EventAppointmentRescheduled, ap, &ap.Customer))

	return ap, nil
}
