package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barber-timeline/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-timeline/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-timeline/internal/models"
)

// gormSource implementa schedule.Source. Dentro de uma transação de escrita
// (forUpdate) as linhas de agendamento lidas ficam travadas até o commit.
type gormSource struct {
	db        *gorm.DB
	forUpdate bool
}

// --------------------------------------------------
// Barber / Barbershop
// --------------------------------------------------

func (s gormSource) GetBarberProfile(
	ctx context.Context,
	profileID uint,
) (*models.BarberProfile, error) {

	var profile models.BarberProfile
	if err := s.db.WithContext(ctx).First(&profile, profileID).Error; err != nil {
		return nil, notFound(err, "barber profile %d", profileID)
	}
	return &profile, nil
}

func (s gormSource) GetBarbershopByID(
	ctx context.Context,
	id uint,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := s.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		return nil, notFound(err, "barbershop %d", id)
	}
	return &shop, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (s gormSource) GetRule(
	ctx context.Context,
	profileID uint,
	weekday int,
) (*models.AvailabilityRule, error) {

	var rules []models.AvailabilityRule
	if err := s.db.WithContext(ctx).
		Where("barber_profile_id = ? AND day_of_week = ?", profileID, weekday).
		Limit(1).
		Find(&rules).Error; err != nil {
		return nil, err
	}

	if len(rules) == 0 {
		return nil, nil
	}
	return &rules[0], nil
}

func (s gormSource) ListRules(
	ctx context.Context,
	profileID uint,
) ([]models.AvailabilityRule, error) {

	var rules []models.AvailabilityRule
	if err := s.db.WithContext(ctx).
		Where("barber_profile_id = ?", profileID).
		Order("day_of_week ASC").
		Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

// --------------------------------------------------
// Blocks
// --------------------------------------------------

func (s gormSource) ListBlocksInRange(
	ctx context.Context,
	profileID uint,
	start time.Time,
	end time.Time,
) ([]models.Block, error) {

	var blocks []models.Block
	if err := s.db.WithContext(ctx).
		Where(
			"barber_profile_id = ? AND start_at < ? AND end_at > ?",
			profileID, end.UTC(), start.UTC(),
		).
		Order("start_at ASC").
		Find(&blocks).Error; err != nil {
		return nil, err
	}
	return blocks, nil
}

// --------------------------------------------------
// Appointments
// --------------------------------------------------

func (s gormSource) ListActiveAppointmentsInRange(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
	excludeID uint,
) ([]models.Appointment, error) {

	q := s.db.WithContext(ctx).
		Preload("Customer").
		Preload("Service").
		Where(
			"barber_id = ? AND status IN ? AND start_at < ? AND end_at > ?",
			barberID, domain.ActiveStatuses(), end.UTC(), start.UTC(),
		)

	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if s.forUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var apps []models.Appointment
	if err := q.Order("start_at ASC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func notFound(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: "+format, append([]any{schedule.ErrNotFound}, args...)...)
	}
	return err
}

var _ schedule.Source = gormSource{}
