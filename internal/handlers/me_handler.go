package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-timeline/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-timeline/internal/httperr"
	"github.com/BruksfildServices01/barber-timeline/internal/middleware"
	"github.com/BruksfildServices01/barber-timeline/internal/timezone"
)

// MeHandler descreve quem chama: identidade do token, barbearia e o perfil
// de barbeiro usado pelas rotas /me.
type MeHandler struct {
	src schedule.Source
}

func NewMeHandler(src schedule.Source) *MeHandler {
	return &MeHandler{src: src}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	actor := middleware.GetActor(c)
	if actor == nil {
		httperr.Unauthorized(c, "unauthorized", "Não autenticado.")
		return
	}

	shop, err := h.src.GetBarbershopByID(c.Request.Context(), actor.BarbershopID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	out := gin.H{
		"user": gin.H{
			"id":          actor.UserID,
			"role":        actor.Role,
			"permissions": actor.Permissions,
		},
		"barbershop": gin.H{
			"id":                  shop.ID,
			"name":                shop.Name,
			"slug":                shop.Slug,
			"timezone":            timezone.Location(shop.Timezone).String(),
			"opens_at":            shop.OpensAt,
			"closes_at":           shop.ClosesAt,
			"min_advance_minutes": shop.MinAdvanceMinutes,
		},
		"barber_profile": nil,
	}

	if actor.BarberProfileID != 0 {
		profile, err := h.src.GetBarberProfile(c.Request.Context(), actor.BarberProfileID)
		if err == nil && profile.BarbershopID == shop.ID {
			out["barber_profile"] = gin.H{
				"id":     profile.ID,
				"active": profile.Active,
			}
		}
	}

	c.JSON(http.StatusOK, out)
}
