package schedule

import (
	"sort"
	"time"

	"github.com/BruksfildServices01/barber-timeline/internal/models"
)

type SlotStatus string

const (
	StatusFree        SlotStatus = "FREE"
	StatusBlocked     SlotStatus = "BLOCKED"
	StatusUnavailable SlotStatus = "UNAVAILABLE"
	StatusAppointment SlotStatus = "APPOINTMENT"
)

type BlockInfo struct {
	ID     string      `json:"id,omitempty"`
	Type   BlockType   `json:"type"`
	Source BlockSource `json:"source"`
	Note   *string     `json:"note,omitempty"`
}

type CustomerInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type ServiceInfo struct {
	Name        string  `json:"name"`
	DurationMin int     `json:"duration_min"`
	Price       float64 `json:"price"`
}

type AppointmentInfo struct {
	ID       uint         `json:"id"`
	Status   string       `json:"status"`
	StartAt  time.Time    `json:"start_at"`
	EndAt    time.Time    `json:"end_at"`
	Customer CustomerInfo `json:"customer"`
	Service  ServiceInfo  `json:"service"`
}

// SlotEntry é derivado, nunca persistido.
type SlotEntry struct {
	Time        string           `json:"time"`
	Status      SlotStatus       `json:"status"`
	Block       *BlockInfo       `json:"block,omitempty"`
	Appointment *AppointmentInfo `json:"appointment,omitempty"`
}

type DaySlots struct {
	Date  string      `json:"date"`
	Slots []SlotEntry `json:"slots"`
}

// DayInput reúne as três fontes para um dia local.
// Blocks e Appointments podem conter itens fora do dia: são descartados no recorte.
type DayInput struct {
	Day          Day
	Rule         *Rule
	ShopHours    *Window
	Blocks       []models.Block
	Appointments []models.Appointment
}

type claim struct {
	window      Window
	block       *BlockInfo
	appointment *AppointmentInfo
}

// ShopHours resolve o horário de funcionamento da barbearia.
// nil quando não configurado (ou ilegível); dia inteiro quando fechamento <= abertura.
func ShopHours(opensAt, closesAt *string) *Window {
	if opensAt == nil || closesAt == nil || *opensAt == "" || *closesAt == "" {
		return nil
	}
	open, err := TimeToMinutes(*opensAt)
	if err != nil {
		return nil
	}
	closing, err := TimeToMinutes(*closesAt)
	if err != nil {
		return nil
	}
	if closing <= open {
		return &Window{Start: 0, End: MinutesPerDay}
	}
	return &Window{Start: open, End: closing}
}

// BusinessWindow: horário da barbearia, senão expediente da regra, senão o dia inteiro.
func BusinessWindow(shop *Window, rule *Rule) Window {
	if shop != nil {
		return *shop
	}
	if rule != nil {
		return rule.Work
	}
	return Window{Start: 0, End: MinutesPerDay}
}

// ComposeDay produz a linha do tempo de um dia.
//
// Precedência por slot [t, t+intervalo): agendamento, bloqueio (manual ou
// almoço), livre quando inteiro dentro do expediente, senão indisponível.
func ComposeDay(in DayInput) []SlotEntry {
	appts, blocks := collectClaims(in)
	return walk(BusinessWindow(in.ShopHours, in.Rule), in.Rule, appts, blocks)
}

// FreeSlots é a visão legada: só slots livres dentro do expediente da regra.
func FreeSlots(in DayInput) []string {
	out := []string{}
	if in.Rule == nil {
		return out
	}

	appts, blocks := collectClaims(in)
	for _, e := range walk(in.Rule.Work, in.Rule, appts, blocks) {
		if e.Status == StatusFree {
			out = append(out, e.Time)
		}
	}
	return out
}

func walk(window Window, rule *Rule, appts, blocks []claim) []SlotEntry {
	interval := rule.Interval()
	entries := make([]SlotEntry, 0, window.Len()/interval)

	for t := window.Start; t+interval <= window.End; t += interval {
		slot := Window{Start: t, End: t + interval}
		entry := SlotEntry{Time: MinutesToTime(t)}

		if c := firstOverlap(appts, slot); c != nil {
			entry.Status = StatusAppointment
			entry.Appointment = c.appointment
		} else if c := firstOverlap(blocks, slot); c != nil {
			entry.Status = StatusBlocked
			entry.Block = c.block
		} else if rule != nil && rule.Work.Contains(slot) {
			entry.Status = StatusFree
		} else {
			entry.Status = StatusUnavailable
		}

		entries = append(entries, entry)
	}

	return entries
}

func firstOverlap(claims []claim, slot Window) *claim {
	for i := range claims {
		if claims[i].window.Overlaps(slot) {
			return &claims[i]
		}
	}
	return nil
}

func collectClaims(in DayInput) (appts, blocks []claim) {
	for i := range in.Appointments {
		ap := &in.Appointments[i]
		w := in.Day.Span(ap.StartAt, ap.EndAt)
		if w.Empty() {
			continue
		}
		appts = append(appts, claim{window: w, appointment: appointmentInfo(ap)})
	}

	for i := range in.Blocks {
		b := &in.Blocks[i]
		w := in.Day.Span(b.StartAt, b.EndAt)
		if w.Empty() {
			continue
		}
		blocks = append(blocks, claim{
			window: w,
			block: &BlockInfo{
				ID:     b.ID,
				Type:   BlockType(b.Type),
				Source: SourceBarberBlock,
				Note:   b.Note,
			},
		})
	}

	if in.Rule != nil && in.Rule.Lunch != nil {
		blocks = append(blocks, claim{
			window: *in.Rule.Lunch,
			block:  &BlockInfo{Type: BlockBreak, Source: SourceLunch},
		})
	}

	sort.SliceStable(appts, func(i, j int) bool { return appts[i].window.Start < appts[j].window.Start })
	sort.SliceStable(blocks, func(i, j int) bool { return blocks[i].window.Start < blocks[j].window.Start })
	return appts, blocks
}

func appointmentInfo(ap *models.Appointment) *AppointmentInfo {
	return &AppointmentInfo{
		ID:      ap.ID,
		Status:  ap.Status,
		StartAt: ap.StartAt,
		EndAt:   ap.EndAt,
		Customer: CustomerInfo{
			Name:  ap.Customer.Name,
			Phone: ap.Customer.Phone,
		},
		Service: ServiceInfo{
			Name:        ap.Service.Name,
			DurationMin: ap.Service.DurationMin,
			Price:       ap.Service.Price,
		},
	}
}
