package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-timeline/internal/httperr"
	"github.com/BruksfildServices01/barber-timeline/internal/httpresp"
	ucschedule "github.com/BruksfildServices01/barber-timeline/internal/usecase/schedule"
)

type BlockHandler struct {
	create *ucschedule.CreateBlock
	list   *ucschedule.ListBlocks
}

func NewBlockHandler(
	create *ucschedule.CreateBlock,
	list *ucschedule.ListBlocks,
) *BlockHandler {
	return &BlockHandler{create: create, list: list}
}

// CreateBlockRequest aceita faixa absoluta (start_at/end_at, RFC3339) ou
// data local com horários (date + start_time/end_time).
type CreateBlockRequest struct {
	StartAt   *time.Time `json:"start_at"`
	EndAt     *time.Time `json:"end_at"`
	Date      string     `json:"date"`
	StartTime string     `json:"start_time"`
	EndTime   string     `json:"end_time"`
	Type      string     `json:"type"`
	Note      *string    `json:"note"`
}

func (h *BlockHandler) Create(c *gin.Context) {
	actor, profileID, ok := myProfile(c)
	if !ok {
		return
	}

	var req CreateBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	in := ucschedule.CreateBlockInput{
		BarbershopID:    actor.BarbershopID,
		BarberProfileID: profileID,
		ActorUserID:     &actor.UserID,
		Date:            req.Date,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Type:            req.Type,
		Note:            req.Note,
	}
	if req.StartAt != nil {
		in.Start = *req.StartAt
	}
	if req.EndAt != nil {
		in.End = *req.EndAt
	}

	block, err := h.create.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, block)
}

func (h *BlockHandler) List(c *gin.Context) {
	actor, profileID, ok := myProfile(c)
	if !ok {
		return
	}

	from, ok := requiredQuery(c, "from")
	if !ok {
		return
	}
	to := c.DefaultQuery("to", from)

	blocks, err := h.list.Execute(c.Request.Context(), actor.BarbershopID, profileID, from, to)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.List(c, blocks)
}
