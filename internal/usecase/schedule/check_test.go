package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barber-timeline/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-timeline/internal/infra/repository"
	"github.com/BruksfildServices01/barber-timeline/internal/models"
	"github.com/BruksfildServices01/barber-timeline/internal/testutil"
)

func TestCheckSlot(t *testing.T) {
	db := testutil.NewDB(t)
	f := testutil.Seed(t, db, "centro")
	f.AddRule(t, db, 1, "09:00", "18:00", 30, "12:00", "13:00")
	loc := testutil.Location(t)
	f.AddAppointment(t, db, time.Date(2025, 1, 6, 10, 0, 0, 0, loc), time.Date(2025, 1, 6, 10, 30, 0, 0, loc), "PENDING")

	uc := NewCheckSlot(repository.NewScheduleGormRepository(db))
	ctx := context.Background()
	in := func(hm string, dur int) CheckSlotInput {
		return CheckSlotInput{
			BarbershopID:    f.Shop.ID,
			BarberProfileID: f.Profile.ID,
			Date:            "2025-01-06",
			Time:            hm,
			DurationMin:     dur,
		}
	}

	res, err := uc.Execute(ctx, in("10:30", 30))
	require.NoError(t, err)
	assert.True(t, res.Available)
	assert.Nil(t, res.ConflictStart)

	res, err = uc.Execute(ctx, in("09:45", 30))
	require.NoError(t, err)
	assert.False(t, res.Available)
	assert.Equal(t, domain.ErrDoubleBooking.Error(), res.Reason)
	require.NotNil(t, res.ConflictStart)
	assert.True(t, res.ConflictStart.Equal(time.Date(2025, 1, 6, 13, 0, 0, 0, time.UTC)))

	res, err = uc.Execute(ctx, in("11:30", 60))
	require.NoError(t, err)
	assert.Equal(t, domain.ErrLunchOverlap.Error(), res.Reason)

	_, err = uc.Execute(ctx, in("10:30", 0))
	assert.True(t, domain.IsValidationKind(err, domain.KindInvalidDuration))

	_, err = uc.Execute(ctx, in("ten", 30))
	assert.True(t, domain.IsValidationKind(err, domain.KindInvalidDate))

	// a checagem não grava nada
	var count int64
	require.NoError(t, db.Model(&models.Appointment{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
