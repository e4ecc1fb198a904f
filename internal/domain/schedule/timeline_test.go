package schedule

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-timeline/internal/models"
)

// monday devolve a segunda-feira 2025-01-06 em São Paulo.
func monday(t *testing.T) Day {
	t.Helper()
	sp := mustLoc(t, "America/Sao_Paulo")
	return LocalDay(time.Date(2025, 1, 6, 0, 0, 0, 0, sp), sp)
}

func clock(t *testing.T, d Day, hhmm string) time.Time {
	t.Helper()
	m, err := TimeToMinutes(hhmm)
	require.NoError(t, err)
	return d.At(m)
}

func mustRule(t *testing.T, in RuleInput) *Rule {
	t.Helper()
	rules, err := ValidateRules([]RuleInput{in})
	require.NoError(t, err)
	return &rules[0]
}

func block(t *testing.T, d Day, id, start, end string) models.Block {
	return models.Block{
		ID:      id,
		StartAt: clock(t, d, start).UTC(),
		EndAt:   clock(t, d, end).UTC(),
		Type:    string(BlockManual),
	}
}

func appointment(t *testing.T, d Day, id uint, start, end string) models.Appointment {
	return models.Appointment{
		ID:       id,
		StartAt:  clock(t, d, start).UTC(),
		EndAt:    clock(t, d, end).UTC(),
		Status:   "CONFIRMED",
		Customer: models.Customer{Name: "Ana", Phone: "11988887777"},
		Service:  models.Service{Name: "Corte", DurationMin: 30, Price: 45},
	}
}

func times(entries []SlotEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Time
	}
	return out
}

func byTime(entries []SlotEntry) map[string]SlotEntry {
	out := make(map[string]SlotEntry, len(entries))
	for _, e := range entries {
		out[e.Time] = e
	}
	return out
}

// ===============================
// Cenários de referência
// ===============================

func TestFreeSlotsMorningRule(t *testing.T) {
	d := monday(t)
	rule := mustRule(t, ruleInput(1, "09:00", "12:00", 30))

	got := FreeSlots(DayInput{Day: d, Rule: rule})
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}, got)
}

func TestComposeDayManualBlock(t *testing.T) {
	d := monday(t)
	rule := mustRule(t, ruleInput(1, "09:00", "12:00", 30))

	entries := ComposeDay(DayInput{
		Day:    d,
		Rule:   rule,
		Blocks: []models.Block{block(t, d, "b1", "10:00", "10:30")},
	})
	require.Len(t, entries, 6)

	for _, e := range entries {
		if e.Time == "10:00" {
			assert.Equal(t, StatusBlocked, e.Status)
			require.NotNil(t, e.Block)
			assert.Equal(t, SourceBarberBlock, e.Block.Source)
			assert.Equal(t, BlockManual, e.Block.Type)
			assert.Equal(t, "b1", e.Block.ID)
			continue
		}
		assert.Equal(t, StatusFree, e.Status, e.Time)
		assert.Nil(t, e.Block)
	}
}

func TestComposeDayLunch(t *testing.T) {
	d := monday(t)
	in := ruleInput(1, "09:00", "18:00", 30)
	in.LunchStart = strPtr("12:00")
	in.LunchEnd = strPtr("13:00")
	rule := mustRule(t, in)

	entries := byTime(ComposeDay(DayInput{Day: d, Rule: rule}))
	require.Len(t, entries, 18)

	for _, at := range []string{"12:00", "12:30"} {
		e := entries[at]
		assert.Equal(t, StatusBlocked, e.Status, at)
		require.NotNil(t, e.Block, at)
		assert.Equal(t, SourceLunch, e.Block.Source)
		assert.Equal(t, BlockBreak, e.Block.Type)
		assert.Empty(t, e.Block.ID)
	}
	assert.Equal(t, StatusFree, entries["11:30"].Status)
	assert.Equal(t, StatusFree, entries["13:00"].Status)

	assert.NotContains(t, FreeSlots(DayInput{Day: d, Rule: rule}), "12:00")
	assert.NotContains(t, FreeSlots(DayInput{Day: d, Rule: rule}), "12:30")
}

// ===============================
// Precedência e janelas
// ===============================

func TestComposeDayPrecedence(t *testing.T) {
	d := monday(t)
	in := ruleInput(1, "09:00", "12:00", 30)
	in.LunchStart = strPtr("11:00")
	in.LunchEnd = strPtr("11:30")
	rule := mustRule(t, in)

	entries := byTime(ComposeDay(DayInput{
		Day:  d,
		Rule: rule,
		Blocks: []models.Block{
			block(t, d, "b1", "09:00", "10:00"),
			block(t, d, "b2", "10:30", "11:30"),
		},
		Appointments: []models.Appointment{
			appointment(t, d, 7, "09:30", "10:00"),
			appointment(t, d, 8, "11:00", "11:30"),
		},
	}))

	assert.Equal(t, StatusBlocked, entries["09:00"].Status)

	// agendamento vence bloqueio
	e := entries["09:30"]
	assert.Equal(t, StatusAppointment, e.Status)
	require.NotNil(t, e.Appointment)
	assert.Equal(t, uint(7), e.Appointment.ID)
	assert.Equal(t, "Ana", e.Appointment.Customer.Name)
	assert.Equal(t, "Corte", e.Appointment.Service.Name)
	assert.Nil(t, e.Block)

	assert.Equal(t, StatusFree, entries["10:00"].Status)
	assert.Equal(t, StatusBlocked, entries["10:30"].Status)

	// agendamento vence almoço
	assert.Equal(t, StatusAppointment, entries["11:00"].Status)
	assert.Equal(t, StatusFree, entries["11:30"].Status)
}

func TestComposeDayWithoutRule(t *testing.T) {
	d := monday(t)

	entries := ComposeDay(DayInput{Day: d})
	require.Len(t, entries, 48)
	assert.Equal(t, "00:00", entries[0].Time)
	assert.Equal(t, "23:30", entries[47].Time)
	for _, e := range entries {
		assert.Equal(t, StatusUnavailable, e.Status)
	}

	assert.Equal(t, []string{}, FreeSlots(DayInput{Day: d}))
}

func TestComposeDayWithoutRuleStillShowsClaims(t *testing.T) {
	d := monday(t)

	entries := byTime(ComposeDay(DayInput{
		Day:          d,
		Blocks:       []models.Block{block(t, d, "b1", "08:00", "08:30")},
		Appointments: []models.Appointment{appointment(t, d, 3, "10:00", "10:30")},
	}))
	assert.Equal(t, StatusBlocked, entries["08:00"].Status)
	assert.Equal(t, StatusAppointment, entries["10:00"].Status)
	assert.Equal(t, StatusUnavailable, entries["09:00"].Status)
}

func TestComposeDayShopHoursWiderThanRule(t *testing.T) {
	d := monday(t)
	rule := mustRule(t, ruleInput(1, "09:00", "18:00", 30))

	entries := ComposeDay(DayInput{
		Day:       d,
		Rule:      rule,
		ShopHours: ShopHours(strPtr("08:00"), strPtr("20:00")),
	})
	require.Len(t, entries, 24)

	idx := byTime(entries)
	assert.Equal(t, StatusUnavailable, idx["08:00"].Status)
	assert.Equal(t, StatusUnavailable, idx["08:30"].Status)
	assert.Equal(t, StatusFree, idx["09:00"].Status)
	assert.Equal(t, StatusFree, idx["17:30"].Status)
	assert.Equal(t, StatusUnavailable, idx["18:00"].Status)
	assert.Equal(t, StatusUnavailable, idx["19:30"].Status)
}

func TestShopHours(t *testing.T) {
	assert.Nil(t, ShopHours(nil, strPtr("18:00")))
	assert.Nil(t, ShopHours(strPtr(""), strPtr("18:00")))
	assert.Nil(t, ShopHours(strPtr("8h"), strPtr("18:00")))

	assert.Equal(t, &Window{Start: 480, End: 1080}, ShopHours(strPtr("08:00"), strPtr("18:00")))

	// fechamento <= abertura vira o dia inteiro
	assert.Equal(t, &Window{Start: 0, End: MinutesPerDay}, ShopHours(strPtr("20:00"), strPtr("08:00")))
	assert.Equal(t, &Window{Start: 0, End: MinutesPerDay}, ShopHours(strPtr("09:00"), strPtr("09:00")))
}

func TestComposeDayDegenerateShopHours(t *testing.T) {
	d := monday(t)
	rule := mustRule(t, ruleInput(1, "09:00", "18:00", 60))

	entries := ComposeDay(DayInput{
		Day:       d,
		Rule:      rule,
		ShopHours: ShopHours(strPtr("22:00"), strPtr("06:00")),
	})
	require.Len(t, entries, 24)
	assert.Equal(t, "00:00", entries[0].Time)
	assert.Equal(t, StatusFree, entries[9].Status)
}

func TestComposeDayOffGridWindow(t *testing.T) {
	d := monday(t)
	rule := mustRule(t, ruleInput(1, "09:00", "10:45", 30))

	entries := ComposeDay(DayInput{Day: d, Rule: rule})
	assert.Equal(t, []string{"09:00", "09:30", "10:00"}, times(entries))
	assert.Equal(t, []string{"09:00", "09:30", "10:00"}, FreeSlots(DayInput{Day: d, Rule: rule}))
}

func TestComposeDayPartialOverlapMarksSlot(t *testing.T) {
	d := monday(t)
	rule := mustRule(t, ruleInput(1, "09:00", "12:00", 30))

	entries := byTime(ComposeDay(DayInput{
		Day:          d,
		Rule:         rule,
		Blocks:       []models.Block{block(t, d, "b1", "09:50", "10:10")},
		Appointments: []models.Appointment{appointment(t, d, 1, "10:45", "11:15")},
	}))

	assert.Equal(t, StatusBlocked, entries["09:30"].Status)
	assert.Equal(t, StatusBlocked, entries["10:00"].Status)
	assert.Equal(t, StatusAppointment, entries["10:30"].Status)
	assert.Equal(t, StatusAppointment, entries["11:00"].Status)
	assert.Equal(t, StatusFree, entries["11:30"].Status)
}

func TestComposeDayBackToBackDoesNotBleed(t *testing.T) {
	d := monday(t)
	rule := mustRule(t, ruleInput(1, "09:00", "12:00", 30))

	entries := byTime(ComposeDay(DayInput{
		Day:          d,
		Rule:         rule,
		Appointments: []models.Appointment{appointment(t, d, 1, "10:00", "10:30")},
	}))
	assert.Equal(t, StatusFree, entries["09:30"].Status)
	assert.Equal(t, StatusAppointment, entries["10:00"].Status)
	assert.Equal(t, StatusFree, entries["10:30"].Status)
}

func TestComposeDayBlockTieBreak(t *testing.T) {
	d := monday(t)
	rule := mustRule(t, ruleInput(1, "09:00", "12:00", 30))

	// a lista chega fora de ordem: vence o de início mais cedo
	entries := byTime(ComposeDay(DayInput{
		Day:  d,
		Rule: rule,
		Blocks: []models.Block{
			block(t, d, "late", "10:15", "11:00"),
			block(t, d, "early", "09:45", "10:30"),
		},
	}))
	assert.Equal(t, "early", entries["10:00"].Block.ID)
	assert.Equal(t, "late", entries["10:30"].Block.ID)

	// mesmo início: mantém a ordem de entrada
	entries = byTime(ComposeDay(DayInput{
		Day:  d,
		Rule: rule,
		Blocks: []models.Block{
			block(t, d, "first", "10:00", "10:30"),
			block(t, d, "second", "10:00", "11:00"),
		},
	}))
	assert.Equal(t, "first", entries["10:00"].Block.ID)
	assert.Equal(t, "second", entries["10:30"].Block.ID)
}

func TestComposeDayClampsCrossMidnightClaims(t *testing.T) {
	d := monday(t)
	rule := mustRule(t, ruleInput(1, "00:00", "23:59", 60))

	prevEvening := d.Start.Add(-2 * time.Hour)
	nextMorning := d.End.Add(2 * time.Hour)

	entries := ComposeDay(DayInput{
		Day:  d,
		Rule: rule,
		Blocks: []models.Block{
			{ID: "overnight", StartAt: prevEvening.UTC(), EndAt: d.Start.Add(90 * time.Minute).UTC(), Type: "MANUAL"},
			{ID: "outside", StartAt: nextMorning.UTC(), EndAt: nextMorning.Add(time.Hour).UTC(), Type: "MANUAL"},
		},
		Appointments: []models.Appointment{
			{ID: 1, StartAt: d.End.Add(-90 * time.Minute).UTC(), EndAt: d.End.Add(30 * time.Minute).UTC(), Status: "PENDING"},
		},
	})

	require.Len(t, entries, 23)
	idx := byTime(entries)
	assert.Equal(t, StatusBlocked, idx["00:00"].Status)
	assert.Equal(t, StatusBlocked, idx["01:00"].Status)
	assert.Equal(t, StatusFree, idx["02:00"].Status)
	assert.Equal(t, StatusAppointment, idx["22:00"].Status)
}

func TestComposeDayFloorsSeconds(t *testing.T) {
	d := monday(t)
	rule := mustRule(t, ruleInput(1, "09:00", "12:00", 30))

	ap := appointment(t, d, 1, "10:00", "10:30")
	ap.StartAt = ap.StartAt.Add(-30 * time.Second)

	entries := byTime(ComposeDay(DayInput{Day: d, Rule: rule, Appointments: []models.Appointment{ap}}))
	assert.Equal(t, StatusAppointment, entries["09:30"].Status)
	assert.Equal(t, StatusAppointment, entries["10:00"].Status)
}

func TestComposeDayUsesLocalDayBoundaries(t *testing.T) {
	d := monday(t)
	rule := mustRule(t, ruleInput(1, "20:00", "23:00", 30))

	// 2025-01-07 01:00Z ainda é 22:00 de segunda em São Paulo
	ap := models.Appointment{
		ID:      5,
		StartAt: time.Date(2025, 1, 7, 1, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2025, 1, 7, 1, 30, 0, 0, time.UTC),
		Status:  "CONFIRMED",
	}
	entries := byTime(ComposeDay(DayInput{Day: d, Rule: rule, Appointments: []models.Appointment{ap}}))
	assert.Equal(t, StatusAppointment, entries["22:00"].Status)
}

func TestComposeDayOnDSTDay(t *testing.T) {
	ny := mustLoc(t, "America/New_York")
	d := LocalDay(time.Date(2024, 3, 10, 0, 0, 0, 0, ny), ny)
	rule := mustRule(t, RuleInput{DayOfWeek: 0, StartTime: "09:00", EndTime: "12:00", SlotInterval: 30})

	// 14:00Z = 10:00 EDT depois da troca
	ap := models.Appointment{
		ID:      1,
		StartAt: time.Date(2024, 3, 10, 14, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC),
		Status:  "PENDING",
	}
	entries := byTime(ComposeDay(DayInput{Day: d, Rule: rule, Appointments: []models.Appointment{ap}}))
	assert.Equal(t, StatusAppointment, entries["10:00"].Status)
	assert.Equal(t, StatusFree, entries["09:30"].Status)
}

func TestComposeDayKeepsClaimsInRepeatedHour(t *testing.T) {
	ny := mustLoc(t, "America/New_York")
	d := LocalDay(time.Date(2024, 11, 3, 0, 0, 0, 0, ny), ny)
	rule := mustRule(t, RuleInput{DayOfWeek: 0, StartTime: "00:00", EndTime: "04:00", SlotInterval: 30})

	// 05:00Z-06:00Z = 01:00 EDT até 01:00 EST
	start := time.Date(2024, 11, 3, 5, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	withAppointment := DayInput{
		Day:          d,
		Rule:         rule,
		Appointments: []models.Appointment{{ID: 9, StartAt: start, EndAt: end, Status: "CONFIRMED"}},
	}
	entries := byTime(ComposeDay(withAppointment))
	assert.Equal(t, StatusAppointment, entries["01:00"].Status)
	assert.Equal(t, StatusAppointment, entries["01:30"].Status)
	assert.Equal(t, StatusFree, entries["00:30"].Status)
	assert.Equal(t, StatusFree, entries["02:00"].Status)
	assert.Equal(t, []string{"00:00", "00:30", "02:00", "02:30", "03:00", "03:30"}, FreeSlots(withAppointment))

	// segunda passagem (01:00 EST)
	withBlock := DayInput{
		Day:    d,
		Rule:   rule,
		Blocks: []models.Block{{ID: "b", StartAt: end, EndAt: end.Add(time.Hour), Type: "MANUAL"}},
	}
	entries = byTime(ComposeDay(withBlock))
	assert.Equal(t, StatusBlocked, entries["01:00"].Status)
	assert.Equal(t, StatusBlocked, entries["01:30"].Status)
	assert.NotContains(t, FreeSlots(withBlock), "01:00")
	assert.NotContains(t, FreeSlots(withBlock), "01:30")
}

// ===============================
// Propriedades
// ===============================

func TestComposeDayOrderedAndStepped(t *testing.T) {
	d := monday(t)
	rnd := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		start := rnd.Intn(MinutesPerDay - 60)
		end := start + 1 + rnd.Intn(MinutesPerDay-1-start)
		window := end - start
		interval := 1 + rnd.Intn(window)
		if interval > 120 {
			interval = 5 + rnd.Intn(116)
		}
		if interval > window {
			interval = window
		}

		rule := mustRule(t, RuleInput{
			DayOfWeek:    1,
			StartTime:    MinutesToTime(start),
			EndTime:      MinutesToTime(end),
			SlotInterval: interval,
		})

		entries := ComposeDay(DayInput{Day: d, Rule: rule})
		require.NotEmpty(t, entries)

		prev := -1
		for _, e := range entries {
			m, err := TimeToMinutes(e.Time)
			require.NoError(t, err)
			if prev >= 0 {
				require.Equal(t, interval, m-prev)
			}
			require.LessOrEqual(t, m+interval, end)
			require.Equal(t, StatusFree, e.Status)
			prev = m
		}
		require.Equal(t, start, mustMinutes(t, entries[0].Time))
	}
}

func TestComposeDayFreeSlotsAvoidClaims(t *testing.T) {
	ny := mustLoc(t, "America/New_York")
	days := []Day{
		monday(t),
		LocalDay(time.Date(2024, 11, 3, 0, 0, 0, 0, ny), ny),
		LocalDay(time.Date(2024, 3, 10, 0, 0, 0, 0, ny), ny),
	}
	rnd := rand.New(rand.NewSource(7))

	for _, d := range days {
		loc := d.Start.Location()
		length := int(d.End.Sub(d.Start) / time.Minute)

		for i := 0; i < 150; i++ {
			start := rnd.Intn(MinutesPerDay - 120)
			end := start + 60 + rnd.Intn(MinutesPerDay-60-start)
			interval := 5 + rnd.Intn(56)

			in := RuleInput{
				DayOfWeek:    d.Weekday(),
				StartTime:    MinutesToTime(start),
				EndTime:      MinutesToTime(end),
				SlotInterval: interval,
			}
			if rnd.Intn(2) == 0 {
				ls := start + rnd.Intn(end-start-30)
				in.LunchStart = strPtr(MinutesToTime(ls))
				in.LunchEnd = strPtr(MinutesToTime(ls + 1 + rnd.Intn(30)))
			}
			rule := mustRule(t, in)

			claim := func() (time.Time, time.Time) {
				from := d.Start.Add(time.Duration(rnd.Intn(length+120)-60) * time.Minute)
				if rnd.Intn(4) == 0 {
					from = from.Add(30 * time.Second)
				}
				return from.UTC(), from.Add(time.Duration(1+rnd.Intn(180)) * time.Minute).UTC()
			}

			input := DayInput{Day: d, Rule: rule}
			for n := rnd.Intn(4); n > 0; n-- {
				a, b := claim()
				input.Appointments = append(input.Appointments, models.Appointment{ID: uint(n), StartAt: a, EndAt: b, Status: "PENDING"})
			}
			for n := rnd.Intn(4); n > 0; n-- {
				a, b := claim()
				input.Blocks = append(input.Blocks, models.Block{StartAt: a, EndAt: b, Type: "MANUAL"})
			}

			entries := ComposeDay(input)
			free := map[string]bool{}
			for _, f := range FreeSlots(input) {
				free[f] = true
			}

			// slot de relógio que contém o instante, se houver
			slotAt := func(at time.Time) *SlotEntry {
				local := at.In(loc)
				w := local.Hour()*60 + local.Minute()
				for k := range entries {
					m := mustMinutes(t, entries[k].Time)
					if w >= m && w < m+interval {
						return &entries[k]
					}
				}
				return nil
			}

			for _, e := range entries {
				if e.Status != StatusFree {
					assert.False(t, free[e.Time], "%s listed free but is %s", e.Time, e.Status)
					continue
				}
				m := mustMinutes(t, e.Time)
				slot := Window{Start: m, End: m + interval}
				require.True(t, rule.Work.Contains(slot), "free slot %s outside rule", e.Time)
				if rule.Lunch != nil {
					require.False(t, rule.Lunch.Overlaps(slot), "free slot %s over lunch", e.Time)
				}
				require.True(t, free[e.Time], "%s free in timeline but not in free slots", e.Time)
			}

			check := func(from, to time.Time, allowed ...SlotStatus) {
				if from.Before(d.Start) {
					from = d.Start
				}
				for at := from; at.Before(to) && at.Before(d.End); at = at.Add(time.Minute) {
					if e := slotAt(at); e != nil {
						require.Contains(t, allowed, e.Status, "%s on %s covers %s", e.Time, d.Format(), at)
					}
				}
			}
			for _, ap := range input.Appointments {
				check(ap.StartAt, ap.EndAt, StatusAppointment)
			}
			for _, b := range input.Blocks {
				check(b.StartAt, b.EndAt, StatusAppointment, StatusBlocked)
			}
		}
	}
}

func mustMinutes(t *testing.T, s string) int {
	t.Helper()
	m, err := TimeToMinutes(s)
	require.NoError(t, err)
	return m
}

func TestComposeDayIsIdempotent(t *testing.T) {
	d := monday(t)
	in := ruleInput(1, "09:00", "18:00", 30)
	in.LunchStart = strPtr("12:00")
	in.LunchEnd = strPtr("13:00")

	input := DayInput{
		Day:          d,
		Rule:         mustRule(t, in),
		Blocks:       []models.Block{block(t, d, "b1", "15:00", "16:00")},
		Appointments: []models.Appointment{appointment(t, d, 1, "10:00", "10:30")},
	}

	assert.Equal(t, ComposeDay(input), ComposeDay(input))
	assert.Equal(t, FreeSlots(input), FreeSlots(input))
}
