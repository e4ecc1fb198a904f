package httperr

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-timeline/internal/domain/schedule"
)

var conflictMessages = map[error]string{
	schedule.ErrOutsideWorkingHours: "Horário fora do expediente do barbeiro.",
	schedule.ErrLunchOverlap:        "Horário coincide com o almoço do barbeiro.",
	schedule.ErrBlockedTime:         "Horário bloqueado pelo barbeiro.",
	schedule.ErrDoubleBooking:       "Já existe um agendamento neste horário.",
}

// ConflictBody acompanha o 409 de agenda com a janela conflitante.
type ConflictBody struct {
	HTTPError
	ConflictStart string `json:"conflict_start"`
	ConflictEnd   string `json:"conflict_end"`
}

// Resolve traduz um erro de domínio em status, código e mensagem.
func Resolve(err error) (int, string, string) {
	var ve *schedule.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, strings.ToLower(string(ve.Kind)), validationMessage(ve)
	}

	var ce *schedule.ConflictError
	if errors.As(err, &ce) {
		return http.StatusConflict, ce.Reason.Error(), conflictMessages[ce.Reason]
	}

	for sentinel, msg := range conflictMessages {
		if errors.Is(err, sentinel) {
			return http.StatusConflict, sentinel.Error(), msg
		}
	}

	switch {
	case errors.Is(err, schedule.ErrInvalidState):
		return http.StatusConflict, "invalid_state", "O agendamento não permite esta operação no status atual."
	case errors.Is(err, schedule.ErrNotFound):
		return http.StatusNotFound, "not_found", "Registro não encontrado."
	}

	return http.StatusInternalServerError, "internal_error", "Erro interno."
}

// FromError escreve a resposta de erro. 5xx nunca expõem o erro original.
func FromError(c *gin.Context, err error) {
	status, code, msg := Resolve(err)

	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}

	var ce *schedule.ConflictError
	if errors.As(err, &ce) {
		c.AbortWithStatusJSON(status, ConflictBody{
			HTTPError:     HTTPError{Code: code, Message: msg},
			ConflictStart: ce.Start.UTC().Format(time.RFC3339),
			ConflictEnd:   ce.End.UTC().Format(time.RFC3339),
		})
		return
	}

	Write(c, status, code, msg)
}

func validationMessage(ve *schedule.ValidationError) string {
	switch ve.Kind {
	case schedule.KindTooSoon:
		return "Agendamento precisa respeitar a antecedência mínima."
	case schedule.KindInvalidDate:
		return "Data ou horário inválido."
	case schedule.KindDuplicateWeekday:
		return "Dia da semana repetido no expediente."
	case schedule.KindInvalidNote:
		return "Observação longa demais."
	case schedule.KindInvalidLunch:
		return "Almoço inválido: precisa estar dentro do expediente."
	}
	return ve.Error()
}
