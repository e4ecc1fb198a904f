package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-timeline/internal/audit"
	domain "github.com/BruksfildServices01/barber-timeline/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-timeline/internal/infra/repository"
	"github.com/BruksfildServices01/barber-timeline/internal/logs"
	"github.com/BruksfildServices01/barber-timeline/internal/testutil"
)

type captureSink struct {
	events []audit.Event
}

func (s *captureSink) Log(_ context.Context, ev audit.Event) error {
	s.events = append(s.events, ev)
	return nil
}

func strPtr(s string) *string { return &s }

func TestReplaceAvailability(t *testing.T) {
	db := testutil.NewDB(t)
	f := testutil.Seed(t, db, "centro")
	f.AddRule(t, db, 0, "10:00", "14:00", 30)
	repo := repository.NewScheduleGormRepository(db)
	ctx := context.Background()

	uc := NewReplaceAvailability(repo, nil)
	rows, err := uc.Execute(ctx, ReplaceAvailabilityInput{
		BarbershopID:    f.Shop.ID,
		BarberProfileID: f.Profile.ID,
		Rules: []domain.RuleInput{
			{DayOfWeek: 2, StartTime: "09:00", EndTime: "18:00", LunchStart: strPtr("12:00"), LunchEnd: strPtr("13:00"), SlotInterval: 30},
			{DayOfWeek: 1, StartTime: "09:00", EndTime: "18:00", SlotInterval: 45},
		},
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].DayOfWeek)

	stored, err := NewGetAvailability(repo).Execute(ctx, f.Shop.ID, f.Profile.ID)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, 1, stored[0].DayOfWeek)
	assert.Equal(t, 45, stored[0].SlotInterval)
	require.NotNil(t, stored[1].LunchEnd)
	assert.Equal(t, "13:00", *stored[1].LunchEnd)
}

func TestReplaceAvailabilityDuplicateWeekdayWritesNothing(t *testing.T) {
	db := testutil.NewDB(t)
	f := testutil.Seed(t, db, "centro")
	f.AddRule(t, db, 1, "09:00", "18:00", 30)
	f.AddRule(t, db, 4, "09:00", "12:00", 30)
	repo := repository.NewScheduleGormRepository(db)
	ctx := context.Background()

	sink := &captureSink{}
	dispatcher := audit.NewDispatcher(sink, logs.Discard())

	_, err := NewReplaceAvailability(repo, dispatcher).Execute(ctx, ReplaceAvailabilityInput{
		BarbershopID:    f.Shop.ID,
		BarberProfileID: f.Profile.ID,
		Rules: []domain.RuleInput{
			{DayOfWeek: 1, StartTime: "08:00", EndTime: "12:00", SlotInterval: 30},
			{DayOfWeek: 1, StartTime: "13:00", EndTime: "17:00", SlotInterval: 30},
		},
	})
	assert.True(t, domain.IsValidationKind(err, domain.KindDuplicateWeekday))

	stored, err := repo.ListRules(ctx, f.Profile.ID)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "09:00", stored[0].StartTime)
	assert.Equal(t, "18:00", stored[0].EndTime)
	assert.Equal(t, 4, stored[1].DayOfWeek)

	dispatcher.Close()
	assert.Empty(t, sink.events)
}

func TestReplaceAvailabilityAudits(t *testing.T) {
	db := testutil.NewDB(t)
	f := testutil.Seed(t, db, "centro")
	repo := repository.NewScheduleGormRepository(db)

	sink := &captureSink{}
	dispatcher := audit.NewDispatcher(sink, logs.Discard())
	actor := f.Barber.ID

	_, err := NewReplaceAvailability(repo, dispatcher).Execute(context.Background(), ReplaceAvailabilityInput{
		BarbershopID:    f.Shop.ID,
		BarberProfileID: f.Profile.ID,
		ActorUserID:     &actor,
		Rules:           nil,
	})
	require.NoError(t, err)

	dispatcher.Close()
	require.Len(t, sink.events, 1)
	assert.Equal(t, audit.ActionAvailabilityReplaced, sink.events[0].Action)
	assert.Equal(t, &actor, sink.events[0].UserID)
}
