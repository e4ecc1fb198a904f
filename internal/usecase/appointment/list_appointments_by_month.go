package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-timeline/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-timeline/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-timeline/internal/dto"
)

type ListAppointmentsByMonth struct {
	repo domain.Repository
}

func NewListAppointmentsByMonth(
	repo domain.Repository,
) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{
		repo: repo,
	}
}

func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	barbershopID uint,
	profileID uint,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	if month < 1 || month > 12 || year < 1970 {
		return nil, schedule.Invalid(schedule.KindInvalidDate, "invalid month %04d-%02d", year, month)
	}

	shop, profile, err := schedule.LoadBarber(ctx, uc.repo, barbershopID, profileID)
	if err != nil {
		return nil, err
	}

	loc := shopLocation(shop)

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		profile.UserID,
		start,
		end,
	)
	if err != nil {
		return nil, err
	}

	return toListDTO(appointments, loc), nil
}
