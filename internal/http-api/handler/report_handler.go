package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"comnibus/internal/http-api/dto"
	"comnibus/internal/http-api/models"
	"comnibus/internal/http-api/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) RegisterRoutes(authed, admin *gin.RouterGroup) {
	authed.POST("/reports", h.Create)
	admin.GET("/reports", h.List)
	admin.GET("/reports/:report_id", h.Get)
	admin.POST("/reports/:report_id/approve", h.Approve)
	admin.POST("/reports/:report_id/reject", h.Reject)
	admin.DELETE("/reports/:report_id", h.Delete)
}

func hexPtr(value string) (*primitive.ObjectID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := primitive.ObjectIDFromHex(value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func (h *ReportHandler) Create(c *gin.Context) {
	var req dto.CreateReportRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	itemID, err := primitive.ObjectIDFromHex(req.ItemID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}
	bookID, err := hexPtr(req.BookID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid book id"})
		return
	}
	thoughtID, err := hexPtr(req.ThoughtID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid thought id"})
		return
	}

	// Review kinds need the containing book, thought replies the containing
	// thought, or approval cannot locate the target.
	switch req.Type {
	case models.ReportTypeReview, models.ReportTypeReviewReply:
		if bookID == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "book_id is required for this report type"})
			return
		}
	case models.ReportTypeThoughtReply:
		if thoughtID == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "thought_id is required for this report type"})
			return
		}
	}

	username, _ := identity(c)

	report, err := h.reportService.Create(c.Request.Context(), service.ReportInput{
		Type:      req.Type,
		ItemID:    itemID,
		BookID:    bookID,
		ThoughtID: thoughtID,
		Reporter:  username,
		Reason:    req.Reason,
	})
	if errors.Is(err, service.ErrInvalidReportType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report type"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create report"})
		return
	}
	c.JSON(http.StatusCreated, report)
}

func (h *ReportHandler) List(c *gin.Context) {
	reports, err := h.reportService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list reports"})
		return
	}
	c.JSON(http.StatusOK, reports)
}

func (h *ReportHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "report_id")
	if !ok {
		return
	}

	report, err := h.reportService.Get(c.Request.Context(), id)
	if errors.Is(err, service.ErrReportNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch report"})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) Approve(c *gin.Context) {
	id, ok := pathID(c, "report_id")
	if !ok {
		return
	}

	label, err := h.reportService.Approve(c.Request.Context(), id)
	switch {
	case errors.Is(err, service.ErrReportNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
	case errors.Is(err, service.ErrReportTargetGone):
		c.JSON(http.StatusNotFound, gin.H{"error": "content not found or already removed"})
	case errors.Is(err, service.ErrInvalidReportType):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report type"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not approve report"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("%s and report deleted successfully", capitalize(label))})
	}
}

func (h *ReportHandler) Reject(c *gin.Context) {
	id, ok := pathID(c, "report_id")
	if !ok {
		return
	}

	err := h.reportService.Reject(c.Request.Context(), id)
	if errors.Is(err, service.ErrReportNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not reject report"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "report deleted successfully"})
}

func (h *ReportHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "report_id")
	if !ok {
		return
	}

	err := h.reportService.Delete(c.Request.Context(), id)
	if errors.Is(err, service.ErrReportNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete report"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "report deleted successfully"})
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
