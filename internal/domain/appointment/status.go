package appointment

import (
	"fmt"

	"github.com/BruksfildServices01/barber-timeline/internal/domain/schedule"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
	StatusNoShow    Status = "NO_SHOW"
)

// Active reporta se o agendamento ocupa a agenda (participa dos conflitos)
func (s Status) Active() bool {
	return s == StatusPending || s == StatusConfirmed
}

func (s Status) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted || s == StatusNoShow
}

// ActiveStatuses é o filtro usado nas consultas de sobreposição
func ActiveStatuses() []string {
	return []string{string(StatusPending), string(StatusConfirmed)}
}

// ===============================
// Validations
// ===============================

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow},
	StatusConfirmed: {StatusCancelled, StatusCompleted, StatusNoShow},
}

// CanTransition define se um agendamento pode ir de current para next
func CanTransition(current, next Status) error {
	for _, allowed := range transitions[current] {
		if allowed == next {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", schedule.ErrInvalidState, current, next)
}

// CanReschedule só aceita agendamentos ainda ativos
func CanReschedule(current Status) error {
	if !current.Active() {
		return fmt.Errorf("%w: cannot reschedule %s appointment", schedule.ErrInvalidState, current)
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
