package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/BruksfildServices01/barber-timeline/internal/models"
)

// Rule é a forma resolvida (em minutos) de um AvailabilityRule.
type Rule struct {
	DayOfWeek    int
	Work         Window
	Lunch        *Window
	SlotInterval int
}

// RuleInput é a forma crua recebida para substituir o expediente semanal.
type RuleInput struct {
	DayOfWeek    int     `json:"day_of_week"`
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
	LunchStart   *string `json:"lunch_start"`
	LunchEnd     *string `json:"lunch_end"`
	SlotInterval int     `json:"slot_interval"`
}

// ValidateRules valida o lote inteiro antes de qualquer escrita.
// Nada é parcialmente aceito: o primeiro problema encontrado rejeita tudo.
func ValidateRules(in []RuleInput) ([]Rule, error) {
	seen := make(map[int]bool, len(in))
	out := make([]Rule, 0, len(in))

	for _, ri := range in {
		if ri.DayOfWeek < 0 || ri.DayOfWeek > 6 {
			return nil, Invalid(KindInvalidWeekday, "day_of_week %d outside 0..6", ri.DayOfWeek)
		}
		if seen[ri.DayOfWeek] {
			return nil, Invalid(KindDuplicateWeekday, "day_of_week %d appears more than once", ri.DayOfWeek)
		}
		seen[ri.DayOfWeek] = true

		r, err := resolveRule(ri)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].DayOfWeek < out[j].DayOfWeek })
	return out, nil
}

func resolveRule(ri RuleInput) (Rule, error) {
	start, err := TimeToMinutes(ri.StartTime)
	if err != nil {
		return Rule{}, err
	}
	end, err := TimeToMinutes(ri.EndTime)
	if err != nil {
		return Rule{}, err
	}
	if end <= start {
		return Rule{}, Invalid(KindInvalidWindow, "day %d: end %s must be after start %s", ri.DayOfWeek, ri.EndTime, ri.StartTime)
	}

	r := Rule{
		DayOfWeek:    ri.DayOfWeek,
		Work:         Window{Start: start, End: end},
		SlotInterval: ri.SlotInterval,
	}

	if (ri.LunchStart == nil) != (ri.LunchEnd == nil) {
		return Rule{}, Invalid(KindInvalidLunch, "day %d: lunch_start and lunch_end must be set together", ri.DayOfWeek)
	}
	if ri.LunchStart != nil {
		ls, err := TimeToMinutes(*ri.LunchStart)
		if err != nil {
			return Rule{}, err
		}
		le, err := TimeToMinutes(*ri.LunchEnd)
		if err != nil {
			return Rule{}, err
		}
		lunch := Window{Start: ls, End: le}
		if lunch.Empty() || !r.Work.Contains(lunch) {
			return Rule{}, Invalid(KindInvalidLunch, "day %d: lunch %s-%s must be a non-empty range inside %s-%s",
				ri.DayOfWeek, *ri.LunchStart, *ri.LunchEnd, ri.StartTime, ri.EndTime)
		}
		r.Lunch = &lunch
	}

	if ri.SlotInterval <= 0 || ri.SlotInterval > r.Work.Len() {
		return Rule{}, Invalid(KindInvalidInterval, "day %d: slot_interval %d must be in 1..%d", ri.DayOfWeek, ri.SlotInterval, r.Work.Len())
	}

	return r, nil
}

// RuleFromModel resolve uma linha persistida. slot_interval ausente (0 em
// linhas antigas) vira o padrão. Qualquer outra falha é dado corrompido, não
// erro de quem chamou.
func RuleFromModel(m *models.AvailabilityRule) (*Rule, error) {
	if m == nil {
		return nil, nil
	}

	in := RuleInput{
		DayOfWeek:    m.DayOfWeek,
		StartTime:    m.StartTime,
		EndTime:      m.EndTime,
		LunchStart:   m.LunchStart,
		LunchEnd:     m.LunchEnd,
		SlotInterval: m.SlotInterval,
	}
	if in.SlotInterval <= 0 {
		in.SlotInterval = DefaultSlotInterval
		start, err1 := TimeToMinutes(m.StartTime)
		end, err2 := TimeToMinutes(m.EndTime)
		if err1 == nil && err2 == nil && end > start && end-start < in.SlotInterval {
			in.SlotInterval = end - start
		}
	}

	r, err := resolveRule(in)
	if err != nil {
		return nil, fmt.Errorf("%w: rule %d: %v", ErrStoredRule, m.ID, err)
	}
	return &r, nil
}

// ToModel gera a linha a persistir para o perfil informado.
func (r Rule) ToModel(barberProfileID uint) models.AvailabilityRule {
	m := models.AvailabilityRule{
		BarberProfileID: barberProfileID,
		DayOfWeek:       r.DayOfWeek,
		StartTime:       MinutesToTime(r.Work.Start),
		EndTime:         MinutesToTime(r.Work.End),
		SlotInterval:    r.SlotInterval,
	}
	if r.Lunch != nil {
		ls := MinutesToTime(r.Lunch.Start)
		le := MinutesToTime(r.Lunch.End)
		m.LunchStart = &ls
		m.LunchEnd = &le
	}
	return m
}

// Interval devolve o passo de slot, com o padrão quando não há regra.
func (r *Rule) Interval() int {
	if r == nil {
		return DefaultSlotInterval
	}
	return r.SlotInterval
}

// WeekMap indexa regras por dia da semana.
type WeekMap map[time.Weekday]*Rule

func NewWeekMap(rows []models.AvailabilityRule) (WeekMap, error) {
	wm := make(WeekMap, len(rows))
	for i := range rows {
		r, err := RuleFromModel(&rows[i])
		if err != nil {
			return nil, err
		}
		wm[time.Weekday(r.DayOfWeek)] = r
	}
	return wm, nil
}
