package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-timeline/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-timeline/internal/httperr"
	"github.com/BruksfildServices01/barber-timeline/internal/httpresp"
	ucschedule "github.com/BruksfildServices01/barber-timeline/internal/usecase/schedule"
)

type AvailabilityHandler struct {
	get     *ucschedule.GetAvailability
	replace *ucschedule.ReplaceAvailability
}

func NewAvailabilityHandler(
	get *ucschedule.GetAvailability,
	replace *ucschedule.ReplaceAvailability,
) *AvailabilityHandler {
	return &AvailabilityHandler{get: get, replace: replace}
}

// ReplaceAvailabilityRequest substitui a semana inteira; dias ausentes
// ficam sem expediente.
type ReplaceAvailabilityRequest struct {
	Rules []domain.RuleInput `json:"rules"`
}

func (h *AvailabilityHandler) Get(c *gin.Context) {
	actor, profileID, ok := myProfile(c)
	if !ok {
		return
	}

	rules, err := h.get.Execute(c.Request.Context(), actor.BarbershopID, profileID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, rules)
}

func (h *AvailabilityHandler) Replace(c *gin.Context) {
	actor, profileID, ok := myProfile(c)
	if !ok {
		return
	}

	var req ReplaceAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	rules, err := h.replace.Execute(c.Request.Context(), ucschedule.ReplaceAvailabilityInput{
		BarbershopID:    actor.BarbershopID,
		BarberProfileID: profileID,
		ActorUserID:     &actor.UserID,
		Rules:           req.Rules,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, rules)
}
