package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-timeline/internal/httperr"
	"github.com/BruksfildServices01/barber-timeline/internal/middleware"
)

// myProfile resolve o perfil de barbeiro de quem chama (rotas /me).
func myProfile(c *gin.Context) (*middleware.Actor, uint, bool) {
	actor := middleware.GetActor(c)
	if actor == nil {
		httperr.Unauthorized(c, "unauthorized", "Não autenticado.")
		return nil, 0, false
	}
	if actor.BarberProfileID == 0 {
		httperr.Forbidden(c, "no_barber_profile", "Usuário não possui perfil de barbeiro.")
		return nil, 0, false
	}
	return actor, actor.BarberProfileID, true
}

// barberFromPath resolve o perfil informado em :profileId; a barbearia
// continua sendo a do token.
func barberFromPath(c *gin.Context) (*middleware.Actor, uint, bool) {
	actor := middleware.GetActor(c)
	if actor == nil {
		httperr.Unauthorized(c, "unauthorized", "Não autenticado.")
		return nil, 0, false
	}

	id, ok := uintParam(c, "profileId")
	if !ok {
		return nil, 0, false
	}
	return actor, id, true
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		httperr.BadRequest(c, "invalid_"+name, "Parâmetro inválido: "+name+".")
		return 0, false
	}
	return uint(v), true
}

func requiredQuery(c *gin.Context, name string) (string, bool) {
	v := c.Query(name)
	if v == "" {
		httperr.BadRequest(c, "missing_"+name, "Parâmetro obrigatório: "+name+".")
		return "", false
	}
	return v, true
}
