package appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-timeline/internal/audit"
	"github.com/BruksfildServices01/barber-timeline/internal/infra/repository"
	"github.com/BruksfildServices01/barber-timeline/internal/logs"
	"github.com/BruksfildServices01/barber-timeline/internal/metrics"
	"github.com/BruksfildServices01/barber-timeline/internal/notify"
	"github.com/BruksfildServices01/barber-timeline/internal/testutil"
)

const monday = "2025-01-06"

type recordingSink struct {
	mu     sync.Mutex
	events []audit.Event
}

func (s *recordingSink) Log(_ context.Context, ev audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

func (s *recordingSink) actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.events))
	for i, ev := range s.events {
		out[i] = ev.Action
	}
	return out
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []notify.Event
}

func (p *recordingPublisher) Publish(_ context.Context, ev notify.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, ev := range p.events {
		out[i] = ev.Type
	}
	return out
}

// env é uma barbearia com expediente de segunda 09:00-18:00, almoço
// 12:00-13:00 e relógio parado no domingo anterior ao meio-dia.
type env struct {
	db      *gorm.DB
	f       *testutil.Fixture
	repo    *repository.AppointmentGormRepository
	sink    *recordingSink
	audit   *audit.Dispatcher
	pub     *recordingPublisher
	events  *notify.Dispatcher
	metrics *metrics.Metrics
	now     time.Time
}

func newEnv(t *testing.T) *env {
	t.Helper()

	db := testutil.NewDB(t)
	f := testutil.Seed(t, db, "centro")
	f.AddRule(t, db, 1, "09:00", "18:00", 30, "12:00", "13:00")

	e := &env{
		db:      db,
		f:       f,
		repo:    repository.NewAppointmentGormRepository(db),
		sink:    &recordingSink{},
		pub:     &recordingPublisher{},
		metrics: metrics.New(prometheus.NewRegistry()),
		now:     time.Date(2025, 1, 5, 12, 0, 0, 0, testutil.Location(t)),
	}
	e.audit = audit.NewDispatcher(e.sink, logs.Discard())
	e.events = notify.NewDispatcher(e.pub, logs.Discard())
	return e
}

// flush drena os dispatchers; depois dele nada mais pode ser despachado.
func (e *env) flush(t *testing.T) {
	t.Helper()
	e.audit.Close()
	require.NoError(t, e.events.Close())
}

func (e *env) create() *CreateAppointment {
	uc := NewCreateAppointment(e.repo, e.audit, e.events, e.metrics)
	uc.now = func() time.Time { return e.now }
	return uc
}

func (e *env) reschedule() *RescheduleAppointment {
	uc := NewRescheduleAppointment(e.repo, e.audit, e.events, e.metrics)
	uc.now = func() time.Time { return e.now }
	return uc
}

func (e *env) booking(hm string) CreateAppointmentInput {
	return CreateAppointmentInput{
		BarbershopID:    e.f.Shop.ID,
		BarberProfileID: e.f.Profile.ID,
		CustomerName:    "Ana",
		CustomerPhone:   "11988887777",
		ServiceID:       e.f.Service.ID,
		Date:            monday,
		Time:            hm,
	}
}

func (e *env) statusInput(id uint) StatusChangeInput {
	return StatusChangeInput{
		BarbershopID:    e.f.Shop.ID,
		BarberProfileID: e.f.Profile.ID,
		AppointmentID:   id,
	}
}
