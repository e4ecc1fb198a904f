package routes

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-timeline/internal/audit"
	"github.com/BruksfildServices01/barber-timeline/internal/config"
	"github.com/BruksfildServices01/barber-timeline/internal/handlers"
	infraRepo "github.com/BruksfildServices01/barber-timeline/internal/infra/repository"
	"github.com/BruksfildServices01/barber-timeline/internal/metrics"
	"github.com/BruksfildServices01/barber-timeline/internal/middleware"
	"github.com/BruksfildServices01/barber-timeline/internal/notify"
	ucAppointment "github.com/BruksfildServices01/barber-timeline/internal/usecase/appointment"
	ucSchedule "github.com/BruksfildServices01/barber-timeline/internal/usecase/schedule"
)

// Deps são os singletons montados no main.
type Deps struct {
	DB          *gorm.DB
	Config      *config.Config
	Logger      *slog.Logger
	AuditLogger *audit.Logger
	Audit       *audit.Dispatcher
	Events      *notify.Dispatcher
	Metrics     *metrics.Metrics
	RateLimiter *middleware.RateLimiter
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(d.Config.CORSOrigins))
	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(d.Metrics.Middleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	scheduleRepo := infraRepo.NewScheduleGormRepository(d.DB)
	catalogRepo := infraRepo.NewCatalogGormRepository(d.DB)

	// ======================================================
	// USE CASES: SCHEDULE
	// ======================================================
	dayUC := ucSchedule.NewGetDayTimeline(scheduleRepo, d.Metrics)
	weekUC := ucSchedule.NewGetWeekTimeline(scheduleRepo, d.Metrics)
	freeUC := ucSchedule.NewGetFreeSlots(scheduleRepo, d.Metrics)
	checkUC := ucSchedule.NewCheckSlot(scheduleRepo)

	getAvailabilityUC := ucSchedule.NewGetAvailability(scheduleRepo)
	replaceAvailabilityUC := ucSchedule.NewReplaceAvailability(scheduleRepo, d.Audit)

	createBlockUC := ucSchedule.NewCreateBlock(scheduleRepo, d.Audit)
	listBlocksUC := ucSchedule.NewListBlocks(scheduleRepo)

	// ======================================================
	// USE CASES: APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(appointmentRepo, d.Audit, d.Events, d.Metrics)

	appointmentUCs := handlers.AppointmentUseCases{
		Create:     createAppointmentUC,
		Reschedule: ucAppointment.NewRescheduleAppointment(appointmentRepo, d.Audit, d.Events, d.Metrics),
		Confirm:    ucAppointment.NewConfirmAppointment(appointmentRepo, d.Audit),
		Cancel:     ucAppointment.NewCancelAppointment(appointmentRepo, d.Audit, d.Events),
		Complete:   ucAppointment.NewCompleteAppointment(appointmentRepo, d.Audit),
		NoShow:     ucAppointment.NewMarkNoShow(appointmentRepo, d.Audit),
		ByDate:     ucAppointment.NewListAppointmentsByDate(appointmentRepo),
		ByMonth:    ucAppointment.NewListAppointmentsByMonth(appointmentRepo),
	}

	// ======================================================
	// HANDLERS
	// ======================================================
	timelineHandler := handlers.NewTimelineHandler(dayUC, weekUC, freeUC, checkUC)
	availabilityHandler := handlers.NewAvailabilityHandler(getAvailabilityUC, replaceAvailabilityUC)
	blockHandler := handlers.NewBlockHandler(createBlockUC, listBlocksUC)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentUCs)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditLogger)
	publicHandler := handlers.NewPublicHandler(catalogRepo, freeUC, createAppointmentUC)
	meHandler := handlers.NewMeHandler(scheduleRepo)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		publicAPI.Use(d.RateLimiter.Middleware())
		{
			publicAPI.GET("/:slug", publicHandler.Overview)
			publicAPI.GET("/:slug/barbers/:profileId/free-slots", publicHandler.FreeSlots)
			publicAPI.POST("/:slug/appointments", publicHandler.CreateAppointment)
		}

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("")
		secured.Use(middleware.AuthMiddleware(d.Config.JWTSecret))

		secured.GET("/me", meHandler.GetMe)

		read := secured.Group("", middleware.RequirePermission(middleware.PermScheduleRead))
		{
			read.GET("/me/timeline/day", timelineHandler.MyDay)
			read.GET("/me/timeline/week", timelineHandler.MyWeek)
			read.GET("/me/free-slots", timelineHandler.MyFreeSlots)

			read.GET("/barbers/:profileId/timeline/day", timelineHandler.BarberDay)
			read.GET("/barbers/:profileId/timeline/week", timelineHandler.BarberWeek)
			read.GET("/barbers/:profileId/free-slots", timelineHandler.BarberFreeSlots)

			read.GET("/me/availability", availabilityHandler.Get)
			read.GET("/me/blocks", blockHandler.List)

			read.GET("/me/appointments", appointmentHandler.ListByDate)
			read.GET("/me/appointments/month", appointmentHandler.ListByMonth)
		}

		write := secured.Group("", middleware.RequirePermission(middleware.PermScheduleWrite))
		{
			write.PUT("/me/availability", availabilityHandler.Replace)
			write.POST("/me/blocks", blockHandler.Create)
			write.POST("/me/schedule/check", timelineHandler.Check)
		}

		booking := secured.Group("", middleware.RequirePermission(middleware.PermAppointments))
		{
			booking.POST("/me/appointments", appointmentHandler.Create)
			booking.PATCH("/me/appointments/:id/reschedule", appointmentHandler.Reschedule)
			booking.PATCH("/me/appointments/:id/confirm", appointmentHandler.Confirm)
			booking.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			booking.PATCH("/me/appointments/:id/complete", appointmentHandler.Complete)
			booking.PATCH("/me/appointments/:id/no-show", appointmentHandler.NoShow)
		}

		secured.GET("/me/audit-logs",
			middleware.RequirePermission(middleware.PermAuditRead),
			auditLogsHandler.List,
		)
	}
}
