package audit

import (
	"context"
	"log/slog"
	"strconv"
	"time"
)

const (
	ActionAppointmentCreated     = "appointment_created"
	ActionAppointmentRescheduled = "appointment_rescheduled"
	ActionAppointmentConfirmed   = "appointment_confirmed"
	ActionAppointmentCancelled   = "appointment_cancelled"
	ActionAppointmentCompleted   = "appointment_completed"
	ActionAppointmentNoShow      = "appointment_no_show"
	ActionAppointmentConflict    = "appointment_conflict"
	ActionAvailabilityReplaced   = "availability_replaced"
	ActionBlockCreated           = "block_created"
)

type Event struct {
	BarbershopID uint
	UserID       *uint
	Action       string
	Entity       string
	EntityID     *string
	Metadata     any
}

// UintID formata ids numéricos para a coluna entity_id.
func UintID(id uint) *string {
	s := strconv.FormatUint(uint64(id), 10)
	return &s
}

type Sink interface {
	Log(ctx context.Context, ev Event) error
}

type Dispatcher struct {
	sink   Sink
	logger *slog.Logger
	queue  chan Event
	done   chan struct{}
}

func NewDispatcher(sink Sink, logger *slog.Logger) *Dispatcher {
	d := &Dispatcher{
		sink:   sink,
		logger: logger,
		queue:  make(chan Event, 100), // buffer seguro
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := d.sink.Log(ctx, ev); err != nil {
			d.logger.Error("audit error", "action", ev.Action, "err", err)
		}
		cancel()
	}
}

// Dispatch nunca bloqueia a requisição. Um dispatcher nil descarta.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	select {
	case d.queue <- ev:
		// enviado
	default:
		// fila cheia → descartamos audit (nunca quebrar API)
		d.logger.Warn("audit queue full, dropping event", "action", ev.Action)
	}
}

// Close drena a fila pendente; usado no shutdown.
func (d *Dispatcher) Close() {
	close(d.queue)
	<-d.done
}
