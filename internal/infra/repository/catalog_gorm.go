package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-timeline/internal/models"
)

// CatalogGormRepository atende a página pública: barbearia por slug,
// serviços ativos e barbeiros que atendem.
type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

func (r *CatalogGormRepository) GetBarbershopBySlug(
	ctx context.Context,
	slug string,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&shop).Error; err != nil {
		return nil, notFound(err, "barbershop %q", slug)
	}
	return &shop, nil
}

func (r *CatalogGormRepository) ListServices(
	ctx context.Context,
	barbershopID uint,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND active = ?", barbershopID, true).
		Order("id ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *CatalogGormRepository) ListBarbers(
	ctx context.Context,
	barbershopID uint,
) ([]models.BarberProfile, error) {

	var profiles []models.BarberProfile
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("barbershop_id = ? AND active = ?", barbershopID, true).
		Order("id ASC").
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}
