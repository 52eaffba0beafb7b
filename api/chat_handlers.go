package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"xaty/services"
)

type ChatHandler struct {
	log  *slog.Logger
	chat services.IChatService
}

func NewChatHandler(log *slog.Logger, chat services.IChatService) *ChatHandler {
	return &ChatHandler{log: log, chat: chat}
}

type sendMessageRequest struct {
	Message string `json:"message" form:"message"`
}

// Send handles POST /api/events/:id/chat/send.
func (h *ChatHandler) Send(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Event no trobat"})
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Cos de petició invàlid"})
		return
	}

	view, err := h.chat.Send(eventID, CurrentActor(c), req.Message)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": view,
	})
}

// Load handles GET /api/events/:id/chat/messages, the polling refresh.
func (h *ChatHandler) Load(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Event no trobat"})
		return
	}

	views, err := h.chat.Load(eventID, CurrentActor(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"messages": views,
	})
}

// Delete handles POST /api/chat/messages/:id/delete.
func (h *ChatHandler) Delete(c *gin.Context) {
	messageID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Missatge no trobat"})
		return
	}

	if err := h.chat.Delete(messageID, CurrentActor(c)); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
