package dto

import "time"

// AppointmentListDTO é a linha da agenda do barbeiro. Date e Time vêm no
// fuso da barbearia; StartAt/EndAt continuam em UTC.
type AppointmentListDTO struct {
	ID      uint      `json:"id"`
	Date    string    `json:"date"`
	Time    string    `json:"time"`
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
	Status  string    `json:"status"`
	Active  bool      `json:"active"`

	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`

	ServiceName string  `json:"service_name"`
	DurationMin int     `json:"duration_min"`
	Price       float64 `json:"price"`
	Notes       string  `json:"notes,omitempty"`
}
