package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Block é um intervalo absoluto (UTC) em que o barbeiro não atende.
// Imutável depois de criado.
type Block struct {
	ID string `gorm:"type:varchar(36);primaryKey" json:"id"`

	BarberProfileID uint `gorm:"not null;index:idx_block_profile_range" json:"barber_profile_id"`
	BarbershopID    uint `gorm:"not null;index" json:"barbershop_id"`

	StartAt time.Time `gorm:"not null;index:idx_block_profile_range" json:"start_at"`
	EndAt   time.Time `gorm:"not null" json:"end_at"`

	Type string  `gorm:"size:20;not null;default:'MANUAL'" json:"type"`
	Note *string `gorm:"size:255" json:"note"`

	CreatedBy *uint     `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

func (b *Block) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
