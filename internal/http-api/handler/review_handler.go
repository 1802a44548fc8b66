package handler

import (
	"errors"
	"net/http"

	"comnibus/internal/http-api/dto"
	"comnibus/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

func (h *ReviewHandler) RegisterRoutes(public, authed *gin.RouterGroup) {
	public.GET("/books/:book_id/reviews", h.List)
	public.GET("/review/:review_id", h.Get)
	public.GET("/books/:book_id/reviews/:review_id/replies", h.ListReplies)
	public.GET("/books/:book_id/reviews/:review_id/replies/:reply_id", h.GetReply)

	authed.POST("/books/:book_id/reviews", h.Create)
	authed.POST("/books/:book_id/reviews/:review_id/like", h.Like)
	authed.POST("/books/:book_id/reviews/:review_id/dislike", h.Dislike)
	authed.DELETE("/books/:book_id/reviews/:review_id", h.Delete)
	authed.POST("/books/:book_id/reviews/:review_id/replies", h.CreateReply)
	authed.POST("/books/:book_id/reviews/:review_id/replies/:reply_id/like", h.LikeReply)
	authed.POST("/books/:book_id/reviews/:review_id/replies/:reply_id/dislike", h.DislikeReply)
	authed.DELETE("/books/:book_id/reviews/:review_id/replies/:reply_id", h.DeleteReply)
}

func (h *ReviewHandler) Create(c *gin.Context) {
	bookID, ok := pathID(c, "book_id")
	if !ok {
		return
	}

	var req dto.CreateReviewRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	username, _ := identity(c)

	review, err := h.reviewService.Create(c.Request.Context(), bookID, username, service.ReviewInput{
		Title:   req.Title,
		Comment: req.Comment,
		Stars:   req.Stars,
	})
	switch {
	case errors.Is(err, service.ErrBookNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "invalid book id"})
	case errors.Is(err, service.ErrAlreadyReviewed):
		c.JSON(http.StatusConflict, gin.H{"error": "you have already reviewed this book"})
	case errors.Is(err, service.ErrWeeklyLimit):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create review"})
	default:
		c.JSON(http.StatusCreated, review)
	}
}

func (h *ReviewHandler) List(c *gin.Context) {
	bookID, ok := pathID(c, "book_id")
	if !ok {
		return
	}

	reviews, err := h.reviewService.List(c.Request.Context(), bookID)
	if errors.Is(err, service.ErrBookNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "invalid book id"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list reviews"})
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// Get resolves a review by id alone, searching across books.
func (h *ReviewHandler) Get(c *gin.Context) {
	reviewID, ok := pathID(c, "review_id")
	if !ok {
		return
	}

	authored, err := h.reviewService.GetAnyBook(c.Request.Context(), reviewID)
	if errors.Is(err, service.ErrReviewNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch review"})
		return
	}
	c.JSON(http.StatusOK, authored)
}

func (h *ReviewHandler) vote(c *gin.Context, voteFn func(c *gin.Context, voter string) error, message string) {
	username, _ := identity(c)

	err := voteFn(c, username)
	switch {
	case errors.Is(err, service.ErrReviewNotFound), errors.Is(err, service.ErrReplyNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrSelfVote):
		c.JSON(http.StatusBadRequest, gin.H{"error": "you cannot vote on your own content"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "vote failed"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": message})
	}
}

func (h *ReviewHandler) Like(c *gin.Context) {
	bookID, ok := pathID(c, "book_id")
	if !ok {
		return
	}
	reviewID, ok := pathID(c, "review_id")
	if !ok {
		return
	}
	h.vote(c, func(c *gin.Context, voter string) error {
		return h.reviewService.Like(c.Request.Context(), bookID, reviewID, voter)
	}, "review liked")
}

func (h *ReviewHandler) Dislike(c *gin.Context) {
	bookID, ok := pathID(c, "book_id")
	if !ok {
		return
	}
	reviewID, ok := pathID(c, "review_id")
	if !ok {
		return
	}
	h.vote(c, func(c *gin.Context, voter string) error {
		return h.reviewService.Dislike(c.Request.Context(), bookID, reviewID, voter)
	}, "review disliked")
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	bookID, ok := pathID(c, "book_id")
	if !ok {
		return
	}
	reviewID, ok := pathID(c, "review_id")
	if !ok {
		return
	}
	username, admin := identity(c)

	err := h.reviewService.Delete(c.Request.Context(), bookID, reviewID, username, admin)
	switch {
	case errors.Is(err, service.ErrReviewNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
	case errors.Is(err, service.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "you can only delete your own reviews"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete review"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "review deleted successfully"})
	}
}

func (h *ReviewHandler) CreateReply(c *gin.Context) {
	bookID, ok := pathID(c, "book_id")
	if !ok {
		return
	}
	reviewID, ok := pathID(c, "review_id")
	if !ok {
		return
	}

	var req dto.CreateReplyRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	username, _ := identity(c)

	reply, err := h.reviewService.CreateReply(c.Request.Context(), bookID, reviewID, username, req.Content)
	if errors.Is(err, service.ErrReviewNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create reply"})
		return
	}
	c.JSON(http.StatusCreated, reply)
}

func (h *ReviewHandler) ListReplies(c *gin.Context) {
	bookID, ok := pathID(c, "book_id")
	if !ok {
		return
	}
	reviewID, ok := pathID(c, "review_id")
	if !ok {
		return
	}

	replies, err := h.reviewService.ListReplies(c.Request.Context(), bookID, reviewID)
	if errors.Is(err, service.ErrReviewNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list replies"})
		return
	}
	c.JSON(http.StatusOK, replies)
}

func (h *ReviewHandler) GetReply(c *gin.Context) {
	bookID, ok := pathID(c, "book_id")
	if !ok {
		return
	}
	reviewID, ok := pathID(c, "review_id")
	if !ok {
		return
	}
	replyID, ok := pathID(c, "reply_id")
	if !ok {
		return
	}

	reply, err := h.reviewService.GetReply(c.Request.Context(), bookID, reviewID, replyID)
	if errors.Is(err, service.ErrReplyNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "reply not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch reply"})
		return
	}
	c.JSON(http.StatusOK, reply)
}

func (h *ReviewHandler) LikeReply(c *gin.Context) {
	bookID, ok := pathID(c, "book_id")
	if !ok {
		return
	}
	reviewID, ok := pathID(c, "review_id")
	if !ok {
		return
	}
	replyID, ok := pathID(c, "reply_id")
	if !ok {
		return
	}
	h.vote(c, func(c *gin.Context, voter string) error {
		return h.reviewService.LikeReply(c.Request.Context(), bookID, reviewID, replyID, voter)
	}, "reply liked")
}

func (h *ReviewHandler) DislikeReply(c *gin.Context) {
	bookID, ok := pathID(c, "book_id")
	if !ok {
		return
	}
	reviewID, ok := pathID(c, "review_id")
	if !ok {
		return
	}
	replyID, ok := pathID(c, "reply_id")
	if !ok {
		return
	}
	h.vote(c, func(c *gin.Context, voter string) error {
		return h.reviewService.DislikeReply(c.Request.Context(), bookID, reviewID, replyID, voter)
	}, "reply disliked")
}

func (h *ReviewHandler) DeleteReply(c *gin.Context) {
	bookID, ok := pathID(c, "book_id")
	if !ok {
		return
	}
	reviewID, ok := pathID(c, "review_id")
	if !ok {
		return
	}
	replyID, ok := pathID(c, "reply_id")
	if !ok {
		return
	}
	username, admin := identity(c)

	err := h.reviewService.DeleteReply(c.Request.Context(), bookID, reviewID, replyID, username, admin)
	switch {
	case errors.Is(err, service.ErrReplyNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "reply not found"})
	case errors.Is(err, service.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "you can only delete your own replies"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete reply"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "reply deleted successfully"})
	}
}
