package schedule

import (
	"context"
	"errors"
	"time"

	domain "github.com/BruksfildServices01/barber-timeline/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-timeline/internal/timezone"
)

type CheckSlotInput struct {
	BarbershopID    uint
	BarberProfileID uint

	Date        string
	Time        string
	DurationMin int
}

type CheckSlotResult struct {
	Available     bool       `json:"available"`
	Reason        string     `json:"reason,omitempty"`
	ConflictStart *time.Time `json:"conflict_start,omitempty"`
	ConflictEnd   *time.Time `json:"conflict_end,omitempty"`
}

// CheckSlot roda o guard sem reservar. O resultado pode mudar até a
// reserva de fato, que repete a checagem sob trava.
type CheckSlot struct {
	repo  domain.Source
	guard domain.Guard
}

func NewCheckSlot(repo domain.Source) *CheckSlot {
	return &CheckSlot{repo: repo}
}

func (uc *CheckSlot) Execute(
	ctx context.Context,
	in CheckSlotInput,
) (*CheckSlotResult, error) {

	if in.DurationMin <= 0 {
		return nil, domain.Invalid(domain.KindInvalidDuration, "duration_min must be positive")
	}

	shop, profile, err := domain.LoadBarber(ctx, uc.repo, in.BarbershopID, in.BarberProfileID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(shop.Timezone)
	start, err := time.ParseInLocation("2006-01-02 15:04", in.Date+" "+in.Time, loc)
	if err != nil {
		return nil, domain.Invalid(domain.KindInvalidDate, "invalid date or time %q %q", in.Date, in.Time)
	}

	err = uc.guard.Check(ctx, uc.repo, domain.Proposal{
		Profile:  profile,
		Location: loc,
		Range: domain.Range{
			Start: start,
			End:   start.Add(time.Duration(in.DurationMin) * time.Minute),
		},
	})
	if err == nil {
		return &CheckSlotResult{Available: true}, nil
	}

	var ce *domain.ConflictError
	if !errors.As(err, &ce) {
		return nil, err
	}

	cs, cend := ce.Start, ce.End
	return &CheckSlotResult{
		Reason:        ce.Reason.Error(),
		ConflictStart: &cs,
		ConflictEnd:   &cend,
	}, nil
}
