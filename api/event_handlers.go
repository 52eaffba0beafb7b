package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"xaty/domain"
	"xaty/services"
)

type EventHandler struct {
	log    *slog.Logger
	events services.IEventService
}

func NewEventHandler(log *slog.Logger, events services.IEventService) *EventHandler {
	return &EventHandler{log: log, events: events}
}

type createEventRequest struct {
	Title         string    `json:"title" form:"title"`
	Description   string    `json:"description" form:"description"`
	Category      string    `json:"category" form:"category"`
	ScheduledDate time.Time `json:"scheduled_date" form:"scheduled_date"`
}

type updateStatusRequest struct {
	Status string `json:"status" form:"status"`
}

// eventView is the JSON projection of an event.
type eventView struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Creator       string    `json:"creator"`
	Status        string    `json:"status"`
	ScheduledDate time.Time `json:"scheduled_date"`
	CreatedAt     time.Time `json:"created_at"`
}

func toEventView(event domain.Event) eventView {
	return eventView{
		ID:            event.ID.String(),
		Title:         event.Title,
		Description:   event.Description,
		Category:      event.Category,
		Creator:       event.CreatorID.String(),
		Status:        string(event.Status),
		ScheduledDate: event.ScheduledDate,
		CreatedAt:     event.CreatedAt,
	}
}

func (h *EventHandler) Create(c *gin.Context) {
	var req createEventRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Cos de petició invàlid"})
		return
	}

	event, err := h.events.Create(CurrentActor(c), services.CreateEventCommand{
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		ScheduledDate: req.ScheduledDate,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	h.log.Info("event created", "event_id", event.ID, "creator", event.CreatorID)
	c.JSON(http.StatusCreated, gin.H{"success": true, "event": toEventView(event)})
}

func (h *EventHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Event no trobat"})
		return
	}

	event, err := h.events.Get(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "event": toEventView(event)})
}

func (h *EventHandler) List(c *gin.Context) {
	events, err := h.events.List()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"events":  lo.Map(events, func(e domain.Event, _ int) eventView { return toEventView(e) }),
	})
}

func (h *EventHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Event no trobat"})
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Cos de petició invàlid"})
		return
	}

	event, err := h.events.UpdateStatus(id, CurrentActor(c), domain.EventStatus(req.Status))
	if err != nil {
		writeError(c, err)
		return
	}

	h.log.Info("event status updated", "event_id", event.ID, "status", event.Status)
	c.JSON(http.StatusOK, gin.H{"success": true, "event": toEventView(event)})
}
