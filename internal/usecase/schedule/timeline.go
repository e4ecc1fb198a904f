package schedule

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-timeline/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-timeline/internal/metrics"
	"github.com/BruksfildServices01/barber-timeline/internal/timezone"
)

const daysPerWeek = 7

// ======================================================
// DAY
// ======================================================

type GetDayTimeline struct {
	repo    domain.Source
	metrics *metrics.Metrics
}

func NewGetDayTimeline(repo domain.Source, m *metrics.Metrics) *GetDayTimeline {
	return &GetDayTimeline{repo: repo, metrics: m}
}

// Execute monta os slots de um dia local da barbearia. Leitura pura:
// nenhuma trava é tomada.
func (uc *GetDayTimeline) Execute(
	ctx context.Context,
	barbershopID uint,
	profileID uint,
	date string,
) (*domain.DaySlots, error) {

	started := time.Now()
	defer uc.metrics.ObserveCompose("day", started)

	shop, profile, err := domain.LoadBarber(ctx, uc.repo, barbershopID, profileID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(shop.Timezone)
	d, err := domain.ParseDate(date, loc)
	if err != nil {
		return nil, err
	}
	day := domain.LocalDay(d, loc)

	row, err := uc.repo.GetRule(ctx, profile.ID, day.Weekday())
	if err != nil {
		return nil, err
	}
	rule, err := domain.RuleFromModel(row)
	if err != nil {
		return nil, err
	}

	blocks, err := uc.repo.ListBlocksInRange(ctx, profile.ID, day.Start, day.End)
	if err != nil {
		return nil, err
	}
	appts, err := uc.repo.ListActiveAppointmentsInRange(ctx, profile.UserID, day.Start, day.End, 0)
	if err != nil {
		return nil, err
	}

	return &domain.DaySlots{
		Date: day.Format(),
		Slots: domain.ComposeDay(domain.DayInput{
			Day:          day,
			Rule:         rule,
			ShopHours:    domain.ShopHours(shop.OpensAt, shop.ClosesAt),
			Blocks:       blocks,
			Appointments: appts,
		}),
	}, nil
}

// ======================================================
// WEEK
// ======================================================

type GetWeekTimeline struct {
	repo    domain.Source
	metrics *metrics.Metrics
}

func NewGetWeekTimeline(repo domain.Source, m *metrics.Metrics) *GetWeekTimeline {
	return &GetWeekTimeline{repo: repo, metrics: m}
}

// Execute devolve 7 dias consecutivos a partir de weekStart. Regras,
// bloqueios e agendamentos são lidos uma única vez para a semana.
func (uc *GetWeekTimeline) Execute(
	ctx context.Context,
	barbershopID uint,
	profileID uint,
	weekStart string,
) ([]domain.DaySlots, error) {

	started := time.Now()
	defer uc.metrics.ObserveCompose("week", started)

	shop, profile, err := domain.LoadBarber(ctx, uc.repo, barbershopID, profileID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(shop.Timezone)
	first, err := domain.ParseDate(weekStart, loc)
	if err != nil {
		return nil, err
	}

	days := make([]domain.Day, daysPerWeek)
	for i := range days {
		days[i] = domain.LocalDay(first.AddDate(0, 0, i), loc)
	}
	from, to := days[0].Start, days[daysPerWeek-1].End

	rows, err := uc.repo.ListRules(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	week, err := domain.NewWeekMap(rows)
	if err != nil {
		return nil, err
	}

	blocks, err := uc.repo.ListBlocksInRange(ctx, profile.ID, from, to)
	if err != nil {
		return nil, err
	}
	appts, err := uc.repo.ListActiveAppointmentsInRange(ctx, profile.UserID, from, to, 0)
	if err != nil {
		return nil, err
	}

	shopHours := domain.ShopHours(shop.OpensAt, shop.ClosesAt)

	out := make([]domain.DaySlots, 0, daysPerWeek)
	for _, day := range days {
		out = append(out, domain.DaySlots{
			Date: day.Format(),
			Slots: domain.ComposeDay(domain.DayInput{
				Day:          day,
				Rule:         week[day.Start.Weekday()],
				ShopHours:    shopHours,
				Blocks:       blocks,
				Appointments: appts,
			}),
		})
	}

	return out, nil
}

// ======================================================
// FREE SLOTS
// ======================================================

type GetFreeSlots struct {
	repo    domain.Source
	metrics *metrics.Metrics
}

func NewGetFreeSlots(repo domain.Source, m *metrics.Metrics) *GetFreeSlots {
	return &GetFreeSlots{repo: repo, metrics: m}
}

// Execute devolve só os horários livres ("HH:MM") dentro do expediente.
func (uc *GetFreeSlots) Execute(
	ctx context.Context,
	barbershopID uint,
	profileID uint,
	date string,
) ([]string, error) {

	started := time.Now()
	defer uc.metrics.ObserveCompose("free_slots", started)

	shop, profile, err := domain.LoadBarber(ctx, uc.repo, barbershopID, profileID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(shop.Timezone)
	d, err := domain.ParseDate(date, loc)
	if err != nil {
		return nil, err
	}
	day := domain.LocalDay(d, loc)

	row, err := uc.repo.GetRule(ctx, profile.ID, day.Weekday())
	if err != nil {
		return nil, err
	}
	rule, err := domain.RuleFromModel(row)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return []string{}, nil
	}

	blocks, err := uc.repo.ListBlocksInRange(ctx, profile.ID, day.Start, day.End)
	if err != nil {
		return nil, err
	}
	appts, err := uc.repo.ListActiveAppointmentsInRange(ctx, profile.UserID, day.Start, day.End, 0)
	if err != nil {
		return nil, err
	}

	return domain.FreeSlots(domain.DayInput{
		Day:          day,
		Rule:         rule,
		Blocks:       blocks,
		Appointments: appts,
	}), nil
}
