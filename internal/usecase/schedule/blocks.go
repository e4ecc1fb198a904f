package schedule

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-timeline/internal/audit"
	domain "github.com/BruksfildServices01/barber-timeline/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-timeline/internal/models"
	"github.com/BruksfildServices01/barber-timeline/internal/timezone"
)

// maxBlockListDays limita a janela de listagem de bloqueios
const maxBlockListDays = 92

type CreateBlockInput struct {
	BarbershopID    uint
	BarberProfileID uint
	ActorUserID     *uint

	// Faixa absoluta, ou data local + horários no timezone da barbearia
	Start     time.Time
	End       time.Time
	Date      string
	StartTime string
	EndTime   string

	Type string
	Note *string
}

type CreateBlock struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateBlock(
	repo domain.Repository,
	auditor *audit.Dispatcher,
) *CreateBlock {
	return &CreateBlock{repo: repo, audit: auditor}
}

// Execute grava um bloqueio. Agendamentos já existentes na faixa não são
// tocados: na linha do tempo o agendamento continua vencendo o bloqueio.
func (uc *CreateBlock) Execute(
	ctx context.Context,
	in CreateBlockInput,
) (*models.Block, error) {

	shop, profile, err := domain.LoadBarber(ctx, uc.repo, in.BarbershopID, in.BarberProfileID)
	if err != nil {
		return nil, err
	}

	start, end := in.Start, in.End
	if in.Date != "" {
		start, end, err = localRange(in.Date, in.StartTime, in.EndTime, timezone.Location(shop.Timezone))
		if err != nil {
			return nil, err
		}
	}

	r, kind, note, err := domain.ValidateBlock(domain.BlockInput{
		Start: start,
		End:   end,
		Type:  in.Type,
		Note:  in.Note,
	})
	if err != nil {
		return nil, err
	}

	b := &models.Block{
		BarberProfileID: profile.ID,
		BarbershopID:    shop.ID,
		StartAt:         r.Start,
		EndAt:           r.End,
		Type:            string(kind),
		Note:            note,
		CreatedBy:       in.ActorUserID,
	}

	if err := uc.repo.CreateBlock(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: shop.ID,
		UserID:       in.ActorUserID,
		Action:       audit.ActionBlockCreated,
		Entity:       "block",
		EntityID:     &b.ID,
		Metadata: map[string]any{
			"start_at": b.StartAt,
			"end_at":   b.EndAt,
			"type":     b.Type,
		},
	})

	return b, nil
}

// ======================================================
// LIST
// ======================================================

type ListBlocks struct {
	repo domain.Source
}

func NewListBlocks(repo domain.Source) *ListBlocks {
	return &ListBlocks{repo: repo}
}

// Execute lista bloqueios que tocam as datas locais [from, to], inclusive.
func (uc *ListBlocks) Execute(
	ctx context.Context,
	barbershopID uint,
	profileID uint,
	from string,
	to string,
) ([]models.Block, error) {

	shop, profile, err := domain.LoadBarber(ctx, uc.repo, barbershopID, profileID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(shop.Timezone)

	first, err := domain.ParseDate(from, loc)
	if err != nil {
		return nil, err
	}
	last, err := domain.ParseDate(to, loc)
	if err != nil {
		return nil, err
	}
	if last.Before(first) {
		return nil, domain.Invalid(domain.KindInvalidRange, "to must not be before from")
	}
	if last.Sub(first) > maxBlockListDays*24*time.Hour {
		return nil, domain.Invalid(domain.KindInvalidRange, "range longer than %d days", maxBlockListDays)
	}

	start := domain.LocalDay(first, loc).Start
	end := domain.LocalDay(last, loc).End

	return uc.repo.ListBlocksInRange(ctx, profile.ID, start, end)
}

// localRange resolve horários "HH:MM" de uma data local da barbearia.
func localRange(date, startHM, endHM string, loc *time.Location) (time.Time, time.Time, error) {
	d, err := domain.ParseDate(date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	from, err := domain.TimeToMinutes(startHM)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := domain.TimeToMinutes(endHM)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	day := domain.LocalDay(d, loc)
	return day.At(from), day.At(to), nil
}
