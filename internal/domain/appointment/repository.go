package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-timeline/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-timeline/internal/models"
)

type Repository interface {
	// Leituras de expediente, bloqueios e agendamentos ativos
	schedule.Source

	// LockBarber serializa escritas concorrentes na agenda de um barbeiro
	LockBarber(
		ctx context.Context,
		profileID uint,
	) error

	// -------- Service --------
	GetService(
		ctx context.Context,
		barbershopID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Customer --------
	GetOrCreateCustomer(
		ctx context.Context,
		barbershopID uint,
		name string,
		phone string,
		email string,
	) (*models.Customer, error)

	// -------- Appointment --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointmentForBarber(
		ctx context.Context,
		appointmentID uint,
		barberID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	ListAppointmentsForPeriod(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// Transaction executa fn com um repositório ligado à mesma transação
	Transaction(
		ctx context.Context,
		fn func(tx Repository) error,
	) error
}
