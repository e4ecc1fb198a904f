package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-timeline/internal/httperr"
	"github.com/BruksfildServices01/barber-timeline/internal/httpresp"
	"github.com/BruksfildServices01/barber-timeline/internal/models"
	ucappointment "github.com/BruksfildServices01/barber-timeline/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create     *ucappointment.CreateAppointment
	reschedule *ucappointment.RescheduleAppointment
	confirm    *ucappointment.ConfirmAppointment
	cancel     *ucappointment.CancelAppointment
	complete   *ucappointment.CompleteAppointment
	noShow     *ucappointment.MarkNoShow
	byDate     *ucappointment.ListAppointmentsByDate
	byMonth    *ucappointment.ListAppointmentsByMonth
}

type AppointmentUseCases struct {
	Create     *ucappointment.CreateAppointment
	Reschedule *ucappointment.RescheduleAppointment
	Confirm    *ucappointment.ConfirmAppointment
	Cancel     *ucappointment.CancelAppointment
	Complete   *ucappointment.CompleteAppointment
	NoShow     *ucappointment.MarkNoShow
	ByDate     *ucappointment.ListAppointmentsByDate
	ByMonth    *ucappointment.ListAppointmentsByMonth
}

func NewAppointmentHandler(uc AppointmentUseCases) *AppointmentHandler {
	return &AppointmentHandler{
		create:     uc.Create,
		reschedule: uc.Reschedule,
		confirm:    uc.Confirm,
		cancel:     uc.Cancel,
		complete:   uc.Complete,
		noShow:     uc.NoShow,
		byDate:     uc.ByDate,
		byMonth:    uc.ByMonth,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
	CustomerEmail string `json:"customer_email"`
	ServiceID     uint   `json:"service_id" binding:"required"`
	Date          string `json:"date" binding:"required"` // YYYY-MM-DD
	Time          string `json:"time" binding:"required"` // HH:MM
	Notes         string `json:"notes"`
}

type RescheduleAppointmentRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	actor, profileID, ok := myProfile(c)
	if !ok {
		return
	}

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucappointment.CreateAppointmentInput{
		BarbershopID:    actor.BarbershopID,
		BarberProfileID: profileID,
		ActorUserID:     &actor.UserID,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerEmail:   req.CustomerEmail,
		ServiceID:       req.ServiceID,
		Date:            req.Date,
		Time:            req.Time,
		Notes:           req.Notes,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// RESCHEDULE
// ======================================================

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	actor, profileID, ok := myProfile(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.reschedule.Execute(c.Request.Context(), ucappointment.RescheduleAppointmentInput{
		BarbershopID:    actor.BarbershopID,
		BarberProfileID: profileID,
		ActorUserID:     &actor.UserID,
		AppointmentID:   id,
		Date:            req.Date,
		Time:            req.Time,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// STATUS
// ======================================================

type statusExecutor interface {
	Execute(ctx context.Context, in ucappointment.StatusChangeInput) (*models.Appointment, error)
}

func (h *AppointmentHandler) Confirm(c *gin.Context)  { h.changeStatus(c, h.confirm) }
func (h *AppointmentHandler) Cancel(c *gin.Context)   { h.changeStatus(c, h.cancel) }
func (h *AppointmentHandler) Complete(c *gin.Context) { h.changeStatus(c, h.complete) }
func (h *AppointmentHandler) NoShow(c *gin.Context)   { h.changeStatus(c, h.noShow) }

func (h *AppointmentHandler) changeStatus(c *gin.Context, uc statusExecutor) {
	actor, profileID, ok := myProfile(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	ap, err := uc.Execute(c.Request.Context(), ucappointment.StatusChangeInput{
		BarbershopID:    actor.BarbershopID,
		BarberProfileID: profileID,
		ActorUserID:     &actor.UserID,
		AppointmentID:   id,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	actor, profileID, ok := myProfile(c)
	if !ok {
		return
	}
	date, ok := requiredQuery(c, "date")
	if !ok {
		return
	}

	out, err := h.byDate.Execute(c.Request.Context(), actor.BarbershopID, profileID, date)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, out)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	actor, profileID, ok := myProfile(c)
	if !ok {
		return
	}

	year, err1 := strconv.Atoi(c.Query("year"))
	month, err2 := strconv.Atoi(c.Query("month"))
	if err1 != nil || err2 != nil {
		httperr.BadRequest(c, "invalid_month", "Ano e mês obrigatórios.")
		return
	}

	out, err := h.byMonth.Execute(c.Request.Context(), actor.BarbershopID, profileID, year, month)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, out)
}
