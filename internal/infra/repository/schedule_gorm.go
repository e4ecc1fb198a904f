package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-timeline/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-timeline/internal/models"
)

type ScheduleGormRepository struct {
	gormSource
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{gormSource{db: db}}
}

// ReplaceRules troca o expediente semanal inteiro: apaga e recria na mesma
// transação, nunca deixando dias órfãos ou duplicados.
func (r *ScheduleGormRepository) ReplaceRules(
	ctx context.Context,
	profileID uint,
	rules []models.AvailabilityRule,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("barber_profile_id = ?", profileID).
			Delete(&models.AvailabilityRule{}).Error; err != nil {
			return fmt.Errorf("clear availability: %w", err)
		}

		if len(rules) == 0 {
			return nil
		}

		for i := range rules {
			rules[i].ID = 0
			rules[i].BarberProfileID = profileID
		}
		if err := tx.Create(&rules).Error; err != nil {
			return fmt.Errorf("insert availability: %w", err)
		}
		return nil
	})
}

func (r *ScheduleGormRepository) CreateBlock(
	ctx context.Context,
	b *models.Block,
) error {
	return r.db.WithContext(ctx).Create(b).Error
}

// Compile-time check
var _ schedule.Repository = (*ScheduleGormRepository)(nil)
