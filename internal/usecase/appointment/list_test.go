package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-timeline/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-timeline/internal/testutil"
)

func TestListAppointmentsByDateUsesLocalDay(t *testing.T) {
	e := newEnv(t)
	loc := testutil.Location(t)

	// 22:00 de segunda em São Paulo já é terça em UTC
	e.f.AddAppointment(t, e.db, time.Date(2025, 1, 6, 22, 0, 0, 0, loc), time.Date(2025, 1, 6, 22, 30, 0, 0, loc), "CONFIRMED")
	e.f.AddAppointment(t, e.db, time.Date(2025, 1, 6, 9, 0, 0, 0, loc), time.Date(2025, 1, 6, 9, 30, 0, 0, loc), "CANCELLED")
	e.f.AddAppointment(t, e.db, time.Date(2025, 1, 7, 0, 0, 0, 0, loc), time.Date(2025, 1, 7, 0, 30, 0, 0, loc), "PENDING")

	out, err := NewListAppointmentsByDate(e.repo).Execute(context.Background(), e.f.Shop.ID, e.f.Profile.ID, monday)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "CANCELLED", out[0].Status)
	assert.Equal(t, "CONFIRMED", out[1].Status)
	assert.Equal(t, "Corte", out[1].ServiceName)
	assert.Equal(t, 30, out[1].DurationMin)
	assert.Equal(t, "2025-01-06", out[1].Date)
	assert.Equal(t, "22:00", out[1].Time)
	assert.True(t, out[1].Active)
	assert.False(t, out[0].Active)

	_, err = NewListAppointmentsByDate(e.repo).Execute(context.Background(), e.f.Shop.ID, e.f.Profile.ID, "06/01/2025")
	assert.True(t, schedule.IsValidationKind(err, schedule.KindInvalidDate))
}

func TestListAppointmentsByMonth(t *testing.T) {
	e := newEnv(t)
	loc := testutil.Location(t)

	e.f.AddAppointment(t, e.db, time.Date(2025, 1, 31, 22, 0, 0, 0, loc), time.Date(2025, 1, 31, 22, 30, 0, 0, loc), "PENDING")
	e.f.AddAppointment(t, e.db, time.Date(2025, 1, 1, 0, 0, 0, 0, loc), time.Date(2025, 1, 1, 0, 30, 0, 0, loc), "PENDING")
	e.f.AddAppointment(t, e.db, time.Date(2025, 2, 1, 0, 0, 0, 0, loc), time.Date(2025, 2, 1, 0, 30, 0, 0, loc), "PENDING")

	uc := NewListAppointmentsByMonth(e.repo)

	out, err := uc.Execute(context.Background(), e.f.Shop.ID, e.f.Profile.ID, 2025, 1)
	require.NoError(t, err)
	assert.Len(t, out, 2)

	_, err = uc.Execute(context.Background(), e.f.Shop.ID, e.f.Profile.ID, 2025, 13)
	assert.True(t, schedule.IsValidationKind(err, schedule.KindInvalidDate))
}
