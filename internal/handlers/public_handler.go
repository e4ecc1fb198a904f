package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-timeline/internal/httperr"
	"github.com/BruksfildServices01/barber-timeline/internal/models"
	ucappointment "github.com/BruksfildServices01/barber-timeline/internal/usecase/appointment"
	ucschedule "github.com/BruksfildServices01/barber-timeline/internal/usecase/schedule"
)

// Catalog é o que a página pública precisa além da agenda.
type Catalog interface {
	GetBarbershopBySlug(ctx context.Context, slug string) (*models.Barbershop, error)
	ListServices(ctx context.Context, barbershopID uint) ([]models.Service, error)
	ListBarbers(ctx context.Context, barbershopID uint) ([]models.BarberProfile, error)
}

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	catalog Catalog
	free    *ucschedule.GetFreeSlots
	create  *ucappointment.CreateAppointment
}

func NewPublicHandler(
	catalog Catalog,
	free *ucschedule.GetFreeSlots,
	create *ucappointment.CreateAppointment,
) *PublicHandler {
	return &PublicHandler{catalog: catalog, free: free, create: create}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	BarberProfileID uint   `json:"barber_profile_id" binding:"required"`
	CustomerName    string `json:"customer_name" binding:"required"`
	CustomerPhone   string `json:"customer_phone" binding:"required"`
	CustomerEmail   string `json:"customer_email"`
	ServiceID       uint   `json:"service_id" binding:"required"`
	Date            string `json:"date" binding:"required"` // YYYY-MM-DD
	Time            string `json:"time" binding:"required"` // HH:MM
	Notes           string `json:"notes"`
}

type publicBarber struct {
	ProfileID uint   `json:"profile_id"`
	Name      string `json:"name"`
}

func (h *PublicHandler) shop(c *gin.Context) (*models.Barbershop, bool) {
	shop, err := h.catalog.GetBarbershopBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		httperr.FromError(c, err)
		return nil, false
	}
	return shop, true
}

////////////////////////////////////////////////////////
// CATALOG
////////////////////////////////////////////////////////

func (h *PublicHandler) Overview(c *gin.Context) {
	shop, ok := h.shop(c)
	if !ok {
		return
	}

	services, err := h.catalog.ListServices(c.Request.Context(), shop.ID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	profiles, err := h.catalog.ListBarbers(c.Request.Context(), shop.ID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	barbers := make([]publicBarber, 0, len(profiles))
	for _, p := range profiles {
		barbers = append(barbers, publicBarber{ProfileID: p.ID, Name: p.User.Name})
	}

	c.JSON(http.StatusOK, gin.H{
		"barbershop": shop,
		"services":   services,
		"barbers":    barbers,
	})
}

////////////////////////////////////////////////////////
// FREE SLOTS
////////////////////////////////////////////////////////

func (h *PublicHandler) FreeSlots(c *gin.Context) {
	shop, ok := h.shop(c)
	if !ok {
		return
	}
	profileID, ok := uintParam(c, "profileId")
	if !ok {
		return
	}
	date, ok := requiredQuery(c, "date")
	if !ok {
		return
	}

	slots, err := h.free.Execute(c.Request.Context(), shop.ID, profileID, date)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"date": date, "slots": slots})
}

////////////////////////////////////////////////////////
// CREATE
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	shop, ok := h.shop(c)
	if !ok {
		return
	}

	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucappointment.CreateAppointmentInput{
		BarbershopID:    shop.ID,
		BarberProfileID: req.BarberProfileID,
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

	c.JSON(http.StatusCreated, gin.H{
		"id":       ap.ID,
		"start_at": ap.StartAt,
		"end_at":   ap.EndAt,
		"status":   ap.Status,
	})
}
