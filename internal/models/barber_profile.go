package models

import "time"

// BarberProfile liga um usuário barbeiro à barbearia onde atende.
// Regras de expediente e bloqueios são indexados pelo perfil;
// agendamentos pelo usuário.
type BarberProfile struct {
	ID           uint `gorm:"primaryKey" json:"id"`
	UserID       uint `gorm:"not null;uniqueIndex" json:"user_id"`
	User         User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	BarbershopID uint `gorm:"not null;index" json:"barbershop_id"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
