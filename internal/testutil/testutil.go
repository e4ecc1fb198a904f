// Package testutil monta bancos sqlite em memória e fixtures para os testes
// de repositório e casos de uso.
package testutil

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	dbpkg "github.com/BruksfildServices01/barber-timeline/internal/db"
	"github.com/BruksfildServices01/barber-timeline/internal/models"
)

const Timezone = "America/Sao_Paulo"

// NewDB abre um sqlite em memória com o schema migrado. Uma única conexão:
// cada conexão nova de ":memory:" seria um banco vazio.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, dbpkg.Migrate(db))
	return db
}

func Location(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(Timezone)
	require.NoError(t, err)
	return loc
}

// Fixture é uma barbearia com um barbeiro e um serviço de 30 minutos.
type Fixture struct {
	Shop    models.Barbershop
	Barber  models.User
	Profile models.BarberProfile
	Service models.Service
}

func Seed(t *testing.T, db *gorm.DB, slug string) *Fixture {
	t.Helper()

	f := &Fixture{}
	f.Shop = models.Barbershop{
		Name:              "Barbearia " + slug,
		Slug:              slug,
		Timezone:          Timezone,
		MinAdvanceMinutes: 120,
	}
	require.NoError(t, db.Create(&f.Shop).Error)

	f.Barber = models.User{
		BarbershopID: f.Shop.ID,
		Name:         "Barbeiro " + slug,
		Email:        slug + "@barber.test",
		Role:         models.RoleBarber,
	}
	require.NoError(t, db.Create(&f.Barber).Error)

	f.Profile = models.BarberProfile{
		UserID:       f.Barber.ID,
		BarbershopID: f.Shop.ID,
		Active:       true,
	}
	require.NoError(t, db.Create(&f.Profile).Error)

	f.Service = models.Service{
		BarbershopID: f.Shop.ID,
		Name:         "Corte",
		DurationMin:  30,
		Price:        45,
		Active:       true,
	}
	require.NoError(t, db.Create(&f.Service).Error)

	return f
}

// AddRule grava um expediente sem passar pela validação.
// lunch, quando informado, é {início, fim}.
func (f *Fixture) AddRule(t *testing.T, db *gorm.DB, weekday int, start, end string, interval int, lunch ...string) models.AvailabilityRule {
	t.Helper()

	r := models.AvailabilityRule{
		BarberProfileID: f.Profile.ID,
		DayOfWeek:       weekday,
		StartTime:       start,
		EndTime:         end,
		SlotInterval:    interval,
	}
	if len(lunch) == 2 {
		r.LunchStart = &lunch[0]
		r.LunchEnd = &lunch[1]
	}
	require.NoError(t, db.Create(&r).Error)
	return r
}

func (f *Fixture) AddBlock(t *testing.T, db *gorm.DB, start, end time.Time, kind string) models.Block {
	t.Helper()

	b := models.Block{
		BarberProfileID: f.Profile.ID,
		BarbershopID:    f.Shop.ID,
		StartAt:         start.UTC(),
		EndAt:           end.UTC(),
		Type:            kind,
	}
	require.NoError(t, db.Create(&b).Error)
	return b
}

func (f *Fixture) AddAppointment(t *testing.T, db *gorm.DB, start, end time.Time, status string) models.Appointment {
	t.Helper()

	c := models.Customer{
		BarbershopID: f.Shop.ID,
		Name:         "Cliente",
		Phone:        "11999990000",
	}
	require.NoError(t, db.Where(models.Customer{BarbershopID: f.Shop.ID, Phone: c.Phone}).FirstOrCreate(&c).Error)

	ap := models.Appointment{
		BarbershopID: f.Shop.ID,
		BarberID:     f.Barber.ID,
		CustomerID:   c.ID,
		ServiceID:    f.Service.ID,
		StartAt:      start.UTC(),
		EndAt:        end.UTC(),
		Status:       status,
	}
	require.NoError(t, db.Create(&ap).Error)
	return ap
}
