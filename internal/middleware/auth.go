package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/barber-timeline/internal/httperr"
	"github.com/BruksfildServices01/barber-timeline/internal/models"
)

const ContextActor = "actor"

// Capacidades checadas por grupo de rotas
const (
	PermScheduleRead  = "schedule:read"
	PermScheduleWrite = "schedule:write"
	PermAppointments  = "appointments:write"
	PermAuditRead     = "audit:read"
)

var rolePermissions = map[string][]string{
	models.RoleOwner:  {PermScheduleRead, PermScheduleWrite, PermAppointments, PermAuditRead},
	models.RoleBarber: {PermScheduleRead, PermScheduleWrite, PermAppointments},
}

// Actor é quem chama, como emitido pelo serviço de identidade.
type Actor struct {
	UserID          uint
	BarbershopID    uint
	BarberProfileID uint
	Role            string
	Permissions     []string
}

func (a *Actor) Can(perm string) bool {
	for _, p := range a.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}

func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Token ausente.")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Cabeçalho Authorization inválido.")
			return
		}

		actor, err := ParseToken(parts[1], secret)
		if err != nil {
			httperr.Unauthorized(c, "invalid_token", "Token inválido.")
			return
		}

		c.Set(ContextActor, actor)
		c.Next()
	}
}

// ParseToken valida a assinatura HMAC e extrai o Actor das claims.
func ParseToken(tokenString, secret string) (*Actor, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}

	userID, ok1 := claims["sub"].(float64)
	barbershopID, ok2 := claims["barbershopId"].(float64)
	if !ok1 || !ok2 {
		return nil, jwt.ErrTokenInvalidClaims
	}

	actor := &Actor{
		UserID:       uint(userID),
		BarbershopID: uint(barbershopID),
	}
	if v, ok := claims["barberProfileId"].(float64); ok {
		actor.BarberProfileID = uint(v)
	}
	actor.Role, _ = claims["role"].(string)

	if raw, ok := claims["permissions"].([]any); ok {
		for _, p := range raw {
			if s, ok := p.(string); ok {
				actor.Permissions = append(actor.Permissions, s)
			}
		}
	} else {
		actor.Permissions = rolePermissions[actor.Role]
	}

	return actor, nil
}

// RequirePermission é o único passo de autorização por grupo de rotas.
func RequirePermission(perm string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := GetActor(c)
		if actor == nil {
			httperr.Unauthorized(c, "unauthorized", "Não autenticado.")
			return
		}
		if !actor.Can(perm) {
			httperr.Forbidden(c, "forbidden", "Sem permissão para esta operação.")
			return
		}
		c.Next()
	}
}

func GetActor(c *gin.Context) *Actor {
	v, ok := c.Get(ContextActor)
	if !ok {
		return nil
	}
	actor, _ := v.(*Actor)
	return actor
}
