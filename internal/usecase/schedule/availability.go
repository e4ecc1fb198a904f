package schedule

import (
	"context"

	"github.com/BruksfildServices01/barber-timeline/internal/audit"
	domain "github.com/BruksfildServices01/barber-timeline/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-timeline/internal/models"
)

type ReplaceAvailabilityInput struct {
	BarbershopID    uint
	BarberProfileID uint
	ActorUserID     *uint
	Rules           []domain.RuleInput
}

type ReplaceAvailability struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewReplaceAvailability(
	repo domain.Repository,
	auditor *audit.Dispatcher,
) *ReplaceAvailability {
	return &ReplaceAvailability{repo: repo, audit: auditor}
}

// Execute troca o expediente semanal inteiro. O lote é validado antes de
// qualquer escrita; conjunto vazio deixa o barbeiro de folga a semana toda.
func (uc *ReplaceAvailability) Execute(
	ctx context.Context,
	in ReplaceAvailabilityInput,
) ([]models.AvailabilityRule, error) {

	rules, err := domain.ValidateRules(in.Rules)
	if err != nil {
		return nil, err
	}

	shop, profile, err := domain.LoadBarber(ctx, uc.repo, in.BarbershopID, in.BarberProfileID)
	if err != nil {
		return nil, err
	}

	rows := make([]models.AvailabilityRule, 0, len(rules))
	for _, r := range rules {
		rows = append(rows, r.ToModel(profile.ID))
	}

	if err := uc.repo.ReplaceRules(ctx, profile.ID, rows); err != nil {
		return nil, err
	}

	days := make([]int, 0, len(rules))
	for _, r := range rules {
		days = append(days, r.DayOfWeek)
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: shop.ID,
		UserID:       in.ActorUserID,
		Action:       audit.ActionAvailabilityReplaced,
		Entity:       "barber_profile",
		EntityID:     audit.UintID(profile.ID),
		Metadata:     map[string]any{"days": days},
	})

	return rows, nil
}

// ======================================================
// READ
// ======================================================

type GetAvailability struct {
	repo domain.Source
}

func NewGetAvailability(repo domain.Source) *GetAvailability {
	return &GetAvailability{repo: repo}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	barbershopID uint,
	profileID uint,
) ([]models.AvailabilityRule, error) {

	_, profile, err := domain.LoadBarber(ctx, uc.repo, barbershopID, profileID)
	if err != nil {
		return nil, err
	}

	return uc.repo.ListRules(ctx, profile.ID)
}
