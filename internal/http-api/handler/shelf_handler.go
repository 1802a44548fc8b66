package handler

import (
	"errors"
	"net/http"

	"comnibus/internal/http-api/dto"
	"comnibus/internal/http-api/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ShelfHandler struct {
	shelfService service.ShelfService
	authService  service.AuthService
}

func NewShelfHandler(shelfService service.ShelfService, authService service.AuthService) *ShelfHandler {
	return &ShelfHandler{shelfService: shelfService, authService: authService}
}

func (h *ShelfHandler) RegisterRoutes(authed *gin.RouterGroup) {
	authed.POST("/books/:book_id/have-read", h.AddHaveRead)
	authed.POST("/books/:book_id/want-to-read", h.AddWantToRead)
	authed.POST("/books/:book_id/start-reading", h.StartReading)
	authed.POST("/currently-reading/:book_id", h.UpdateProgress)
}

// viewerID resolves the authenticated username to a user id. Shelf updates
// key off the user document, not the token.
func (h *ShelfHandler) viewerID(c *gin.Context) (primitive.ObjectID, bool) {
	username, _ := identity(c)

	user, err := h.authService.GetUserByUsername(c.Request.Context(), username)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
		return primitive.NilObjectID, false
	}
	return user.ID, true
}

func (h *ShelfHandler) AddHaveRead(c *gin.Context) {
	bookID, ok := pathID(c, "book_id")
	if !ok {
		return
	}

	var req dto.AddHaveReadRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := h.viewerID(c)
	if !ok {
		return
	}

	entry, err := h.shelfService.AddHaveRead(c.Request.Context(), userID, bookID, req.Stars, req.DateRead)
	switch {
	case errors.Is(err, service.ErrBookNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "invalid book id"})
	case errors.Is(err, service.ErrAlreadyRead):
		c.JSON(http.StatusConflict, gin.H{"error": "book is already on your have read shelf"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update shelf"})
	default:
		c.JSON(http.StatusCreated, entry)
	}
}

func (h *ShelfHandler) AddWantToRead(c *gin.Context) {
	bookID, ok := pathID(c, "book_id")
	if !ok {
		return
	}
	userID, ok := h.viewerID(c)
	if !ok {
		return
	}

	entry, err := h.shelfService.AddWantToRead(c.Request.Context(), userID, bookID)
	switch {
	case errors.Is(err, service.ErrBookNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "invalid book id"})
	case errors.Is(err, service.ErrAlreadyWanted):
		c.JSON(http.StatusConflict, gin.H{"error": "book is already on your want to read shelf"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update shelf"})
	default:
		c.JSON(http.StatusCreated, entry)
	}
}

func (h *ShelfHandler) StartReading(c *gin.Context) {
	bookID, ok := pathID(c, "book_id")
	if !ok {
		return
	}
	userID, ok := h.viewerID(c)
	if !ok {
		return
	}

	entry, err := h.shelfService.StartReading(c.Request.Context(), userID, bookID)
	switch {
	case errors.Is(err, service.ErrBookNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "invalid book id"})
	case errors.Is(err, service.ErrAlreadyReading):
		c.JSON(http.StatusConflict, gin.H{"error": "you are already reading this book"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start reading"})
	default:
		c.JSON(http.StatusCreated, entry)
	}
}

func (h *ShelfHandler) UpdateProgress(c *gin.Context) {
	bookID, ok := pathID(c, "book_id")
	if !ok {
		return
	}

	var req dto.UpdateProgressRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := h.viewerID(c)
	if !ok {
		return
	}

	progress, err := h.shelfService.UpdateProgress(c.Request.Context(), userID, bookID, *req.CurrentPage)
	switch {
	case errors.Is(err, service.ErrNotReading):
		c.JSON(http.StatusNotFound, gin.H{"error": "book is not on your currently reading shelf"})
	case errors.Is(err, service.ErrInvalidPage):
		c.JSON(http.StatusBadRequest, gin.H{"error": "current page is out of range"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update progress"})
	default:
		c.JSON(http.StatusOK, dto.ProgressResponse{Progress: progress})
	}
}
