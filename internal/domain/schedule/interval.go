package schedule

import "time"

// Window é um intervalo semiaberto [Start, End) em minutos do dia.
type Window struct {
	Start int
	End   int
}

func (w Window) Len() int { return w.End - w.Start }

func (w Window) Empty() bool { return w.End <= w.Start }

// Overlaps: [a,b) e [c,d) se sobrepõem sse a < d && b > c.
func (w Window) Overlaps(o Window) bool {
	return w.Start < o.End && w.End > o.Start
}

// Contains reporta se o está inteiro dentro de w (limites inclusivos).
func (w Window) Contains(o Window) bool {
	return o.Start >= w.Start && o.End <= w.End
}

func (w Window) Clamp(lo, hi int) Window {
	if w.Start < lo {
		w.Start = lo
	}
	if w.End > hi {
		w.End = hi
	}
	return w
}

// Range é um intervalo semiaberto absoluto.
type Range struct {
	Start time.Time
	End   time.Time
}

func (r Range) Valid() bool { return r.End.After(r.Start) }

func (r Range) Overlaps(o Range) bool {
	return r.Start.Before(o.End) && r.End.After(o.Start)
}

func (r Range) Duration() time.Duration { return r.End.Sub(r.Start) }
