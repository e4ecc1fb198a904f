package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	EventAppointmentCreated     = "appointment.created"
	EventAppointmentRescheduled = "appointment.rescheduled"
	EventAppointmentCancelled   = "appointment.cancelled"
)

// Event é o contrato consumido pelos serviços de lembrete e WhatsApp.
type Event struct {
	Type          string    `json:"type"`
	AppointmentID uint      `json:"appointment_id"`
	BarbershopID  uint      `json:"barbershop_id"`
	BarberID      uint      `json:"barber_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone"`
	StartAt       time.Time `json:"start_at"`
	EndAt         time.Time `json:"end_at"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}

// ===============================
// Kafka
// ===============================

type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 50 * time.Millisecond,
		},
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	// chave por barbeiro mantém a ordem dos eventos de uma mesma agenda
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(ev.BarberID), 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(ev.Type)},
		},
	})
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// ===============================
// Noop
// ===============================

type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }
func (NoopPublisher) Close() error                         { return nil }

// ===============================
// Dispatcher assíncrono
// ===============================

// Dispatcher desacopla a publicação da requisição. Falha de broker
// nunca derruba a reserva já gravada.
type Dispatcher struct {
	pub    Publisher
	logger *slog.Logger
	queue  chan Event
	done   chan struct{}
}

func NewDispatcher(pub Publisher, logger *slog.Logger) *Dispatcher {
	d := &Dispatcher{
		pub:    pub,
		logger: logger,
		queue:  make(chan Event, 100),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := d.pub.Publish(ctx, ev); err != nil {
			d.logger.Error("notify publish failed",
				"type", ev.Type,
				"appointment_id", ev.AppointmentID,
				"err", err,
			)
		}
		cancel()
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}

	select {
	case d.queue <- ev:
	default:
		d.logger.Warn("notify queue full, dropping event", "type", ev.Type)
	}
}

// Close drena a fila e fecha o publisher.
func (d *Dispatcher) Close() error {
	close(d.queue)
	<-d.done
	return d.pub.Close()
}
