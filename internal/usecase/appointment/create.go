package appointment

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/barber-timeline/internal/audit"
	domain "github.com/BruksfildServices01/barber-timeline/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-timeline/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-timeline/internal/metrics"
	"github.com/BruksfildServices01/barber-timeline/internal/models"
	"github.com/BruksfildServices01/barber-timeline/internal/notify"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	BarbershopID    uint
	BarberProfileID uint

	// nil quando o agendamento vem da página pública
	ActorUserID *uint

	CustomerName  string
	CustomerPhone string
	CustomerEmail string

	ServiceID uint

	Date  string
	Time  string
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo    domain.Repository
	guard   schedule.Guard
	audit   *audit.Dispatcher
	events  *notify.Dispatcher
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	events *notify.Dispatcher,
	m *metrics.Metrics,
) *CreateAppointment {
	return &CreateAppointment{
		repo:    repo,
		audit:   audit,
		events:  events,
		metrics: m,
		now:     time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.CustomerPhone = strings.TrimSpace(in.CustomerPhone)
	if in.CustomerName == "" || in.CustomerPhone == "" {
		return nil, schedule.Invalid(schedule.KindMissingField, "customer name and phone are required")
	}

	// --------------------------------------------------
	// 1. Barbearia + barbeiro
	// --------------------------------------------------
	shop, profile, err := schedule.LoadBarber(ctx, uc.repo, in.BarbershopID, in.BarberProfileID)
	if err != nil {
		return nil, err
	}
	loc := shopLocation(shop)

	// --------------------------------------------------
	// 2. Data / hora no timezone da barbearia
	// --------------------------------------------------
	start, err := parseLocalStart(in.Date, in.Time, loc)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3. Antecedência mínima
	// --------------------------------------------------
	if err := checkAdvance(shop, start, uc.now().In(loc)); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4. Serviço
	// --------------------------------------------------
	service, err := uc.repo.GetService(ctx, shop.ID, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if service.DurationMin <= 0 {
		return nil, schedule.Invalid(schedule.KindInvalidDuration, "service %d has no duration", service.ID)
	}

	window := schedule.Range{
		Start: start,
		End:   start.Add(time.Duration(service.DurationMin) * time.Minute),
	}

	// --------------------------------------------------
	// 5. Lock → guard → escrita, tudo na mesma transação
	// --------------------------------------------------
	var (
		ap       *models.Appointment
		customer *models.Customer
	)

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if err := tx.LockBarber(ctx, profile.ID); err != nil {
			return err
		}

		if err := uc.guard.Check(ctx, tx, schedule.Proposal{
			Profile:  profile,
			Location: loc,
			Range:    window,
		}); err != nil {
			return err
		}

		c, err := tx.GetOrCreateCustomer(ctx, shop.ID, in.CustomerName, in.CustomerPhone, in.CustomerEmail)
		if err != nil {
			return err
		}
		customer = c

		ap = &models.Appointment{
			BarbershopID: shop.ID,
			BarberID:     profile.UserID,
			CustomerID:   c.ID,
			ServiceID:    service.ID,
			StartAt:      window.Start.UTC(),
			EndAt:        window.End.UTC(),
			Status:       string(domain.InitialStatus()),
			Notes:        in.Notes,
		}
		return tx.CreateAppointment(ctx, ap)
	})

	recordGuard(uc.metrics, uc.audit, shop.ID, in.ActorUserID, nil, window, err)
	if err != nil {
		return nil, err
	}

	ap.Customer = *customer
	ap.Service = *service

	// --------------------------------------------------
	// 6. Auditoria + evento
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		BarbershopID: shop.ID,
		UserID:       in.ActorUserID,
		Action:       audit.ActionAppointmentCreated,
		Entity:       "appointment",
		EntityID:     audit.UintID(ap.ID),
		Metadata: map[string]any{
			"barber_profile_id": profile.ID,
			"service_id":        service.ID,
			"start_at":          ap.StartAt,
			"public":            in.ActorUserID == nil,
		},
	})
	uc.events.Dispatch(eventFor(notify.EventAppointmentCreated, ap, customer))

	return ap, nil
}
