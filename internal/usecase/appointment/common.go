package appointment

import (
	"errors"
	"strings"
	"time"

	"github.com/BruksfildServices01/barber-timeline/internal/audit"
	"github.com/BruksfildServices01/barber-timeline/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-timeline/internal/metrics"
	"github.com/BruksfildServices01/barber-timeline/internal/models"
	"github.com/BruksfildServices01/barber-timeline/internal/notify"
	"github.com/BruksfildServices01/barber-timeline/internal/timezone"
)

const defaultMinAdvanceMinutes = 120

// parseLocalStart interpreta data + hora no timezone da barbearia.
func parseLocalStart(date, hm string, loc *time.Location) (time.Time, error) {
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		strings.TrimSpace(date)+" "+strings.TrimSpace(hm),
		loc,
	)
	if err != nil {
		return time.Time{}, schedule.Invalid(schedule.KindInvalidDate, "invalid date or time %q %q", date, hm)
	}
	return start, nil
}

func checkAdvance(shop *models.Barbershop, start, now time.Time) error {
	minAdvance := shop.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = defaultMinAdvanceMinutes
	}

	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return schedule.Invalid(schedule.KindTooSoon, "appointments need %d minutes of advance", minAdvance)
	}
	return nil
}

func shopLocation(shop *models.Barbershop) *time.Location {
	return timezone.Location(shop.Timezone)
}

// --------------------------------------------------
// Guard outcome
// --------------------------------------------------

// recordGuard registra métrica e, em caso de conflito, a trilha de auditoria.
func recordGuard(
	m *metrics.Metrics,
	d *audit.Dispatcher,
	shopID uint,
	actor *uint,
	entityID *string,
	p schedule.Range,
	err error,
) {
	if err == nil {
		m.GuardApproved()
		return
	}

	var ce *schedule.ConflictError
	if !errors.As(err, &ce) {
		return
	}

	m.GuardRejected(ce.Reason.Error())

	d.Dispatch(audit.Event{
		BarbershopID: shopID,
		UserID:       actor,
		Action:       audit.ActionAppointmentConflict,
		Entity:       "appointment",
		EntityID:     entityID,
		Metadata: map[string]any{
			"reason":         ce.Reason.Error(),
			"proposed_start": p.Start.UTC(),
			"proposed_end":   p.End.UTC(),
			"conflict_start": ce.Start.UTC(),
			"conflict_end":   ce.End.UTC(),
		},
	})
}

func eventFor(kind string, ap *models.Appointment, customer *models.Customer) notify.Event {
	ev := notify.Event{
		Type:          kind,
		AppointmentID: ap.ID,
		BarbershopID:  ap.BarbershopID,
		BarberID:      ap.BarberID,
		StartAt:       ap.StartAt,
		EndAt:         ap.EndAt,
		Status:        ap.Status,
	}
	if customer != nil {
		ev.CustomerName = customer.Name
		ev.CustomerPhone = customer.Phone
	}
	return ev
}
