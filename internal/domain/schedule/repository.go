package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/BruksfildServices01/barber-timeline/internal/models"
)

// Source é o lado de leitura compartilhado pela linha do tempo e pelo guard.
type Source interface {
	// -------- Colaboradores --------
	GetBarberProfile(
		ctx context.Context,
		profileID uint,
	) (*models.BarberProfile, error)

	GetBarbershopByID(
		ctx context.Context,
		id uint,
	) (*models.Barbershop, error)

	// -------- Expediente --------
	// GetRule devolve nil, nil quando não há regra para o dia
	GetRule(
		ctx context.Context,
		profileID uint,
		weekday int,
	) (*models.AvailabilityRule, error)

	ListRules(
		ctx context.Context,
		profileID uint,
	) ([]models.AvailabilityRule, error)

	// -------- Bloqueios --------
	ListBlocksInRange(
		ctx context.Context,
		profileID uint,
		start time.Time,
		end time.Time,
	) ([]models.Block, error)

	// -------- Agendamentos (somente PENDING/CONFIRMED) --------
	ListActiveAppointmentsInRange(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
		excludeID uint,
	) ([]models.Appointment, error)
}

type Repository interface {
	Source

	// ReplaceRules apaga e recria o expediente semanal em uma transação
	ReplaceRules(
		ctx context.Context,
		profileID uint,
		rules []models.AvailabilityRule,
	) error

	CreateBlock(
		ctx context.Context,
		b *models.Block,
	) error
}

// LoadBarber carrega barbearia e perfil, garantindo que o perfil pertence
// (ainda) à barbearia de quem chama. Perfil de outra barbearia ou inativo
// é tratado como inexistente.
func LoadBarber(
	ctx context.Context,
	src Source,
	barbershopID uint,
	profileID uint,
) (*models.Barbershop, *models.BarberProfile, error) {

	shop, err := src.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		return nil, nil, err
	}

	profile, err := src.GetBarberProfile(ctx, profileID)
	if err != nil {
		return nil, nil, err
	}

	if profile.BarbershopID != shop.ID || !profile.Active {
		return nil, nil, fmt.Errorf("%w: barber profile %d", ErrNotFound, profileID)
	}

	return shop, profile, nil
}
