package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barber-timeline/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-timeline/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-timeline/internal/models"
)

// exclusion_violation, disparado pela constraint appointments_no_overlap
const pgExclusionViolation = "23P01"

type AppointmentGormRepository struct {
	gormSource
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{gormSource{db: db}}
}

// --------------------------------------------------
// Transaction / Lock
// --------------------------------------------------

func (r *AppointmentGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{gormSource{db: tx, forUpdate: true}})
	})
}

func (r *AppointmentGormRepository) LockBarber(
	ctx context.Context,
	profileID uint,
) error {

	var profile models.BarberProfile
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", profileID).
		First(&profile).Error; err != nil {
		return notFound(err, "barber profile %d", profileID)
	}
	return nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	barbershopID uint,
	serviceID uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ? AND active = ?", serviceID, barbershopID, true).
		First(&service).Error; err != nil {
		return nil, notFound(err, "service %d", serviceID)
	}
	return &service, nil
}

// --------------------------------------------------
// Customer
// --------------------------------------------------

func (r *AppointmentGormRepository) GetOrCreateCustomer(
	ctx context.Context,
	barbershopID uint,
	name string,
	phone string,
	email string,
) (*models.Customer, error) {

	var customer models.Customer
	err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND phone = ?", barbershopID, phone).
		First(&customer).Error

	if err == nil {
		return &customer, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	customer = models.Customer{
		BarbershopID: barbershopID,
		Name:         name,
		Phone:        phone,
		Email:        email,
	}

	if err := r.db.WithContext(ctx).Create(&customer).Error; err != nil {
		return nil, err
	}

	return &customer, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return translateWriteError(r.db.WithContext(ctx).Create(ap).Error, ap)
}

func (r *AppointmentGormRepository) GetAppointmentForBarber(
	ctx context.Context,
	appointmentID uint,
	barberID uint,
) (*models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Service").
		Where("id = ? AND barber_id = ?", appointmentID, barberID)
	if r.forUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var ap models.Appointment
	if err := q.First(&ap).Error; err != nil {
		return nil, notFound(err, "appointment %d", appointmentID)
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return translateWriteError(
		r.db.WithContext(ctx).
			Model(&models.Appointment{}).
			Where("id = ?", ap.ID).
			Updates(map[string]any{
				"start_at":     ap.StartAt,
				"end_at":       ap.EndAt,
				"status":       ap.Status,
				"notes":        ap.Notes,
				"confirmed_at": ap.ConfirmedAt,
				"cancelled_at": ap.CancelledAt,
				"completed_at": ap.CompletedAt,
			}).Error,
		ap,
	)
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Service").
		Where(
			"barber_id = ? AND start_at >= ? AND start_at < ?",
			barberID,
			start.UTC(),
			end.UTC(),
		).
		Order("start_at ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

// translateWriteError converte a violação da constraint de exclusão do
// Postgres em conflito de agenda.
func translateWriteError(err error, ap *models.Appointment) error {
	if err == nil {
		return nil
	}
	if IsExclusionConflict(err) {
		return &schedule.ConflictError{
			Reason: schedule.ErrDoubleBooking,
			Start:  ap.StartAt,
			End:    ap.EndAt,
			Detail: "overlapping appointment",
		}
	}
	return err
}

func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
