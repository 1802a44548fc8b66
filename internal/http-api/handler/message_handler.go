package handler

import (
	"errors"
	"net/http"

	"comnibus/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	messageService service.MessageService
}

func NewMessageHandler(messageService service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

func (h *MessageHandler) RegisterRoutes(authed *gin.RouterGroup) {
	authed.GET("/inbox", h.Inbox)
	authed.GET("/inbox/:id", h.Get)
	authed.PUT("/inbox/:id/read", h.MarkRead)
	authed.DELETE("/inbox/:id", h.Delete)
}

func (h *MessageHandler) Inbox(c *gin.Context) {
	username, _ := identity(c)

	inbox, err := h.messageService.Inbox(c.Request.Context(), username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch inbox"})
		return
	}
	c.JSON(http.StatusOK, inbox)
}

func (h *MessageHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	message, err := h.messageService.Get(c.Request.Context(), id)
	if errors.Is(err, service.ErrMessageNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch message"})
		return
	}
	c.JSON(http.StatusOK, message)
}

func (h *MessageHandler) MarkRead(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	err := h.messageService.MarkRead(c.Request.Context(), id)
	if errors.Is(err, service.ErrMessageNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not mark message read"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "message marked as read"})
}

func (h *MessageHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	err := h.messageService.Delete(c.Request.Context(), id)
	if errors.Is(err, service.ErrMessageNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete message"})
		return
	}
	c.Status(http.StatusNoContent)
}
