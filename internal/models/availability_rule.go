package models

import "time"

// AvailabilityRule é o expediente semanal de um barbeiro em um dia da semana.
// Horários no formato "HH:MM", relativos ao timezone da barbearia.
type AvailabilityRule struct {
	ID              uint `gorm:"primaryKey" json:"id"`
	BarberProfileID uint `gorm:"not null;uniqueIndex:idx_rule_profile_weekday" json:"barber_profile_id"`

	DayOfWeek int `gorm:"not null;uniqueIndex:idx_rule_profile_weekday" json:"day_of_week"`

	StartTime    string  `gorm:"size:5;not null" json:"start_time"`
	EndTime      string  `gorm:"size:5;not null" json:"end_time"`
	LunchStart   *string `gorm:"size:5" json:"lunch_start"`
	LunchEnd     *string `gorm:"size:5" json:"lunch_end"`
	SlotInterval int     `gorm:"not null;default:30" json:"slot_interval"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
