package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-timeline/internal/httperr"
	"github.com/BruksfildServices01/barber-timeline/internal/middleware"
	ucschedule "github.com/BruksfildServices01/barber-timeline/internal/usecase/schedule"
)

// ======================================================
// HANDLER
// ======================================================

type TimelineHandler struct {
	day   *ucschedule.GetDayTimeline
	week  *ucschedule.GetWeekTimeline
	free  *ucschedule.GetFreeSlots
	check *ucschedule.CheckSlot
}

func NewTimelineHandler(
	day *ucschedule.GetDayTimeline,
	week *ucschedule.GetWeekTimeline,
	free *ucschedule.GetFreeSlots,
	check *ucschedule.CheckSlot,
) *TimelineHandler {
	return &TimelineHandler{day: day, week: week, free: free, check: check}
}

type resolver func(c *gin.Context) (*middleware.Actor, uint, bool)

// ======================================================
// DAY
// ======================================================

func (h *TimelineHandler) MyDay(c *gin.Context)     { h.dayFor(c, myProfile) }
func (h *TimelineHandler) BarberDay(c *gin.Context) { h.dayFor(c, barberFromPath) }

func (h *TimelineHandler) dayFor(c *gin.Context, resolve resolver) {
	actor, profileID, ok := resolve(c)
	if !ok {
		return
	}
	date, ok := requiredQuery(c, "date")
	if !ok {
		return
	}

	out, err := h.day.Execute(c.Request.Context(), actor.BarbershopID, profileID, date)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

// ======================================================
// WEEK
// ======================================================

func (h *TimelineHandler) MyWeek(c *gin.Context)     { h.weekFor(c, myProfile) }
func (h *TimelineHandler) BarberWeek(c *gin.Context) { h.weekFor(c, barberFromPath) }

func (h *TimelineHandler) weekFor(c *gin.Context, resolve resolver) {
	actor, profileID, ok := resolve(c)
	if !ok {
		return
	}
	start, ok := requiredQuery(c, "start")
	if !ok {
		return
	}

	days, err := h.week.Execute(c.Request.Context(), actor.BarbershopID, profileID, start)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": days})
}

// ======================================================
// FREE SLOTS
// ======================================================

func (h *TimelineHandler) MyFreeSlots(c *gin.Context)     { h.freeFor(c, myProfile) }
func (h *TimelineHandler) BarberFreeSlots(c *gin.Context) { h.freeFor(c, barberFromPath) }

func (h *TimelineHandler) freeFor(c *gin.Context, resolve resolver) {
	actor, profileID, ok := resolve(c)
	if !ok {
		return
	}
	date, ok := requiredQuery(c, "date")
	if !ok {
		return
	}

	slots, err := h.free.Execute(c.Request.Context(), actor.BarbershopID, profileID, date)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"date": date, "slots": slots})
}

// ======================================================
// CHECK (dry run)
// ======================================================

type CheckSlotRequest struct {
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	DurationMin int    `json:"duration_min" binding:"required"`
}

func (h *TimelineHandler) Check(c *gin.Context) {
	actor, profileID, ok := myProfile(c)
	if !ok {
		return
	}

	var req CheckSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	res, err := h.check.Execute(c.Request.Context(), ucschedule.CheckSlotInput{
		BarbershopID:    actor.BarbershopID,
		BarberProfileID: profileID,
		Date:            req.Date,
		Time:            req.Time,
		DurationMin:     req.DurationMin,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
