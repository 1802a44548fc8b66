package handler

import (
	"errors"
	"net/http"

	"comnibus/internal/http-api/dto"
	"comnibus/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type RequestHandler struct {
	requestService service.RequestService
}

func NewRequestHandler(requestService service.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

func (h *RequestHandler) RegisterRoutes(authed, admin *gin.RouterGroup) {
	authed.POST("/add-requests", h.Create)
	authed.GET("/requests/:id", h.Get)
	admin.GET("/requests", h.List)
	admin.POST("/requests/:id/approve", h.Approve)
	admin.POST("/requests/:id/reject", h.Reject)
	admin.DELETE("/requests/:id", h.Delete)
}

func (h *RequestHandler) Create(c *gin.Context) {
	var req dto.CreateBookRequestRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "you missed a required field"})
		return
	}
	username, _ := identity(c)

	request, err := h.requestService.Create(c.Request.Context(), service.RequestInput{
		Title:    req.Title,
		Series:   req.Series,
		Author:   req.Author,
		Genres:   req.Genres,
		Language: req.Language,
		ISBN:     req.ISBN,
		Username: username,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create request"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "your book request has been submitted and will be reviewed by our admins",
		"request": request,
	})
}

func (h *RequestHandler) List(c *gin.Context) {
	page, pageSize := pageParams(c, 20)

	requests, err := h.requestService.List(c.Request.Context(), page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list requests"})
		return
	}
	c.JSON(http.StatusOK, requests)
}

func (h *RequestHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	request, err := h.requestService.Get(c.Request.Context(), id)
	if errors.Is(err, service.ErrRequestNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "request not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch request"})
		return
	}
	c.JSON(http.StatusOK, request)
}

func (h *RequestHandler) Approve(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.ApproveBookRequestRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	book, err := h.requestService.Approve(c.Request.Context(), id, service.ApproveInput{
		Description:      req.Description,
		Genres:           req.Genres,
		Characters:       req.Characters,
		Triggers:         req.Triggers,
		Awards:           req.Awards,
		BookFormat:       req.BookFormat,
		Edition:          req.Edition,
		Pages:            req.Pages,
		Publisher:        req.Publisher,
		PublishDate:      req.PublishDate,
		FirstPublishDate: req.FirstPublishDate,
		CoverImg:         req.CoverImg,
		Price:            req.Price,
		ISBN:             req.ISBN,
	})
	if errors.Is(err, service.ErrRequestNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "request not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not approve request"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "request has been approved", "book": book})
}

func (h *RequestHandler) Reject(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	err := h.requestService.Reject(c.Request.Context(), id)
	if errors.Is(err, service.ErrRequestNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "request not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not reject request"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "request has been rejected"})
}

func (h *RequestHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	err := h.requestService.Delete(c.Request.Context(), id)
	if errors.Is(err, service.ErrRequestNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "invalid request id"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete request"})
		return
	}
	c.Status(http.StatusNoContent)
}
