package handler

import (
	"context"
	"errors"
	"net/http"

	"comnibus/internal/http-api/dto"
	"comnibus/internal/http-api/repository"
	"comnibus/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type BookHandler struct {
	catalogService service.CatalogService
}

func NewBookHandler(catalogService service.CatalogService) *BookHandler {
	return &BookHandler{catalogService: catalogService}
}

func (h *BookHandler) RegisterRoutes(public, authed *gin.RouterGroup) {
	public.GET("/books", h.List)
	public.GET("/books/:book_id", h.Get)
	public.GET("/genres", h.Genres)
	public.GET("/authors", h.Authors)
	public.GET("/triggers", h.Triggers)
	authed.POST("/books/:book_id/add-trigger", h.AddTriggers)
}

func (h *BookHandler) List(c *gin.Context) {
	page, pageSize := pageParams(c, 10)
	filter := repository.BookFilter{
		Title:  c.Query("title"),
		Author: c.Query("author"),
		Genre:  c.Query("genres"),
	}

	books, err := h.catalogService.List(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list books"})
		return
	}
	c.JSON(http.StatusOK, books)
}

func (h *BookHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "book_id")
	if !ok {
		return
	}

	detail, err := h.catalogService.Get(c.Request.Context(), id)
	if errors.Is(err, service.ErrBookNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "invalid book id"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch book"})
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *BookHandler) Genres(c *gin.Context) {
	h.distinct(c, h.catalogService.Genres)
}

func (h *BookHandler) Authors(c *gin.Context) {
	h.distinct(c, h.catalogService.Authors)
}

func (h *BookHandler) Triggers(c *gin.Context) {
	h.distinct(c, h.catalogService.Triggers)
}

func (h *BookHandler) distinct(c *gin.Context, fetch func(ctx context.Context) ([]string, error)) {
	values, err := fetch(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if values == nil {
		values = []string{}
	}
	c.JSON(http.StatusOK, values)
}

func (h *BookHandler) AddTriggers(c *gin.Context) {
	id, ok := pathID(c, "book_id")
	if !ok {
		return
	}

	var req dto.AddTriggersRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	added, err := h.catalogService.AddTriggers(c.Request.Context(), id, req.Triggers)
	if errors.Is(err, service.ErrBookNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "invalid book id"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not add triggers"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "trigger added successfully", "triggers": added})
}
