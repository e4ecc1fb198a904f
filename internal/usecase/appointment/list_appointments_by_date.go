package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-timeline/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-timeline/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-timeline/internal/dto"
	"github.com/BruksfildServices01/barber-timeline/internal/models"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(
	repo domain.Repository,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
	}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	barbershopID uint,
	profileID uint,
	date string,
) ([]dto.AppointmentListDTO, error) {

	shop, profile, err := schedule.LoadBarber(ctx, uc.repo, barbershopID, profileID)
	if err != nil {
		return nil, err
	}

	loc := shopLocation(shop)
	d, err := schedule.ParseDate(date, loc)
	if err != nil {
		return nil, err
	}
	day := schedule.LocalDay(d, loc)

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		profile.UserID,
		day.Start,
		day.End,
	)
	if err != nil {
		return nil, err
	}

	return toListDTO(appointments, loc), nil
}

func toListDTO(appointments []models.Appointment, loc *time.Location) []dto.AppointmentListDTO {
	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		local := ap.StartAt.In(loc)
		out = append(out, dto.AppointmentListDTO{
			ID:            ap.ID,
			Date:          local.Format("2006-01-02"),
			Time:          local.Format("15:04"),
			StartAt:       ap.StartAt.UTC(),
			EndAt:         ap.EndAt.UTC(),
			Status:        ap.Status,
			Active:        domain.Status(ap.Status).Active(),
			CustomerName:  ap.Customer.Name,
			CustomerPhone: ap.Customer.Phone,
			ServiceName:   ap.Service.Name,
			DurationMin:   ap.Service.DurationMin,
			Price:         ap.Service.Price,
			Notes:         ap.Notes,
		})
	}
	return out
}
