package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/BruksfildServices01/barber-timeline/internal/models"
)

// Proposal é a janela candidata a virar (ou continuar sendo) um agendamento.
type Proposal struct {
	Profile  *models.BarberProfile
	Location *time.Location
	Range    Range

	// ExcludeAppointmentID ignora o próprio agendamento no remarcar
	ExcludeAppointmentID uint
}

// Guard revalida uma janela contra expediente, almoço, bloqueios e outros
// agendamentos. Deve rodar dentro da mesma transação da escrita, com o
// barbeiro já travado, para que duas reservas concorrentes não passem juntas.
type Guard struct{}

func (Guard) Check(ctx context.Context, src Source, p Proposal) error {
	if !p.Range.Valid() {
		return Invalid(KindInvalidRange, "end must be after start")
	}

	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}
	start, end := p.Range.Start, p.Range.End

	// --------------------------------------------------
	// 1. Expediente
	// --------------------------------------------------
	day := LocalDay(start.In(loc), loc)

	row, err := src.GetRule(ctx, p.Profile.ID, day.Weekday())
	if err != nil {
		return fmt.Errorf("load availability rule: %w", err)
	}
	rule, err := RuleFromModel(row)
	if err != nil {
		return fmt.Errorf("resolve availability rule: %w", err)
	}
	if rule == nil {
		return conflict(ErrOutsideWorkingHours, start, end, "no availability on "+day.Start.Weekday().String())
	}

	proposed := day.Span(start, end)
	if end.After(day.End) || !rule.Work.Contains(proposed) {
		return conflict(ErrOutsideWorkingHours, day.At(rule.Work.Start), day.At(rule.Work.End), "working hours")
	}

	// --------------------------------------------------
	// 2. Almoço
	// --------------------------------------------------
	if rule.Lunch != nil && rule.Lunch.Overlaps(proposed) {
		return conflict(ErrLunchOverlap, day.At(rule.Lunch.Start), day.At(rule.Lunch.End), "lunch")
	}

	// --------------------------------------------------
	// 3. Bloqueios
	// --------------------------------------------------
	blocks, err := src.ListBlocksInRange(ctx, p.Profile.ID, start, end)
	if err != nil {
		return fmt.Errorf("load blocks: %w", err)
	}
	for _, b := range blocks {
		if p.Range.Overlaps(Range{Start: b.StartAt, End: b.EndAt}) {
			return conflict(ErrBlockedTime, b.StartAt, b.EndAt, b.Type)
		}
	}

	// --------------------------------------------------
	// 4. Outros agendamentos
	// --------------------------------------------------
	appts, err := src.ListActiveAppointmentsInRange(ctx, p.Profile.UserID, start, end, p.ExcludeAppointmentID)
	if err != nil {
		return fmt.Errorf("load appointments: %w", err)
	}
	for _, ap := range appts {
		if p.ExcludeAppointmentID != 0 && ap.ID == p.ExcludeAppointmentID {
			continue
		}
		if p.Range.Overlaps(Range{Start: ap.StartAt, End: ap.EndAt}) {
			return conflict(ErrDoubleBooking, ap.StartAt, ap.EndAt, fmt.Sprintf("appointment %d", ap.ID))
		}
	}

	return nil
}
