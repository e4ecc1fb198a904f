package schedule

import (
	"fmt"
	"time"
)

const (
	MinutesPerDay       = 24 * 60
	DefaultSlotInterval = 30

	clockLayout = "15:04"
	DateLayout  = "2006-01-02"
)

// TimeToMinutes converte "HH:MM" em minutos desde a meia-noite.
// Exige dois dígitos em cada grupo, hora 00-23 e minuto 00-59.
func TimeToMinutes(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, Invalid(KindInvalidTime, "%q is not HH:MM", s)
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, Invalid(KindInvalidTime, "%q is not HH:MM", s)
		}
	}

	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	if h > 23 || m > 59 {
		return 0, Invalid(KindInvalidTime, "%q is out of range", s)
	}
	return h*60 + m, nil
}

// MinutesToTime formata minutos do dia como "HH:MM".
// Não valida: valores fora de [0, 1439] são truncados para o limite.
func MinutesToTime(m int) string {
	if m < 0 {
		m = 0
	}
	if m > MinutesPerDay-1 {
		m = MinutesPerDay - 1
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// ===============================
// Dia local
// ===============================

// Day é um dia civil no timezone da barbearia, com seus limites absolutos.
// Em dias de troca de horário de verão End-Start pode ser 23h ou 25h.
type Day struct {
	Date  time.Time
	Start time.Time
	End   time.Time
}

func LocalDay(date time.Time, loc *time.Location) Day {
	y, m, d := date.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return Day{
		Date:  start,
		Start: start,
		End:   start.AddDate(0, 0, 1),
	}
}

func (d Day) Weekday() int {
	return int(d.Start.Weekday())
}

func (d Day) Format() string {
	return d.Start.Format(DateLayout)
}

// MinuteOf devolve o minuto de relógio de t dentro do dia, limitado a [0, 1440].
// Segundos são descartados (floor).
func (d Day) MinuteOf(t time.Time) int {
	if !t.After(d.Start) {
		return 0
	}
	if !t.Before(d.End) {
		return MinutesPerDay
	}
	local := t.In(d.Start.Location())
	return local.Hour()*60 + local.Minute()
}

// Span converte a faixa absoluta [start, end) na janela de relógio que a
// cobre dentro do dia. Na volta do horário de verão a hora repetida aparece
// duas vezes no relógio: a janela cobre as duas passagens. Uma faixa de
// duração positiva nunca vira janela vazia.
func (d Day) Span(start, end time.Time) Window {
	if start.Before(d.Start) {
		start = d.Start
	}
	if end.After(d.End) {
		end = d.End
	}
	if !end.After(start) {
		return Window{}
	}

	w := Window{Start: d.MinuteOf(start), End: d.endMinuteOf(end)}

	if fold, ok := d.foldWithin(start, end); ok {
		w.Start = min(w.Start, d.MinuteOf(fold))
		w.End = max(w.End, d.endMinuteOf(fold))
	}
	if w.End <= w.Start {
		w.End = min(w.Start+1, MinutesPerDay)
	}
	return w
}

// endMinuteOf lê t como fim de faixa: no relógio que valia logo antes de t.
func (d Day) endMinuteOf(t time.Time) int {
	if !t.After(d.Start) {
		return 0
	}
	if !t.Before(d.End) {
		return MinutesPerDay
	}
	_, offset := t.Add(-time.Nanosecond).In(d.Start.Location()).Zone()
	local := t.In(time.FixedZone("", offset))

	y, m, dd := d.Start.Date()
	if ly, lm, ld := local.Date(); ly != y || lm != m || ld != dd {
		return MinutesPerDay
	}
	return local.Hour()*60 + local.Minute()
}

// foldWithin devolve o instante em (start, end) em que o relógio volta.
func (d Day) foldWithin(start, end time.Time) (time.Time, bool) {
	local := start.In(d.Start.Location())
	_, zoneEnd := local.ZoneBounds()
	if zoneEnd.IsZero() || !zoneEnd.Before(end) {
		return time.Time{}, false
	}
	_, before := local.Zone()
	_, after := zoneEnd.In(d.Start.Location()).Zone()
	if after >= before {
		return time.Time{}, false
	}
	return zoneEnd, true
}

// At devolve o instante absoluto do minuto de relógio informado.
func (d Day) At(minute int) time.Time {
	if minute >= MinutesPerDay {
		return d.End
	}
	y, m, dd := d.Start.Date()
	return time.Date(y, m, dd, minute/60, minute%60, 0, 0, d.Start.Location())
}

// ParseDate interpreta "YYYY-MM-DD" no timezone informado.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, Invalid(KindInvalidDate, "%q is not YYYY-MM-DD", s)
	}
	return t, nil
}
