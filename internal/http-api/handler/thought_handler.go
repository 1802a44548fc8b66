package handler

import (
	"errors"
	"net/http"

	"comnibus/internal/http-api/dto"
	"comnibus/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type ThoughtHandler struct {
	thoughtService service.ThoughtService
}

func NewThoughtHandler(thoughtService service.ThoughtService) *ThoughtHandler {
	return &ThoughtHandler{thoughtService: thoughtService}
}

func (h *ThoughtHandler) RegisterRoutes(public, authed, admin *gin.RouterGroup) {
	public.GET("/thoughts", h.List)
	public.GET("/thoughts/:id", h.Get)
	public.GET("/thoughts/:id/replies", h.ListReplies)
	public.GET("/thoughts/:id/replies/:reply_id", h.GetReply)

	authed.POST("/thoughts", h.Create)
	authed.POST("/thoughts/:id/like", h.Like)
	authed.POST("/thoughts/:id/dislike", h.Dislike)
	authed.DELETE("/thoughts/:id", h.Delete)
	authed.POST("/thoughts/:id/replies", h.CreateReply)
	authed.POST("/thoughts/:id/replies/:reply_id/like", h.LikeReply)
	authed.POST("/thoughts/:id/replies/:reply_id/dislike", h.DislikeReply)
	authed.DELETE("/thoughts/:id/replies/:reply_id", h.DeleteReply)

	admin.DELETE("/thoughts", h.DeleteAll)
}

func (h *ThoughtHandler) Create(c *gin.Context) {
	var req dto.CreateThoughtRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	username, _ := identity(c)

	thought, err := h.thoughtService.Create(c.Request.Context(), username, req.Comment)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create thought"})
		return
	}
	c.JSON(http.StatusCreated, thought)
}

func (h *ThoughtHandler) List(c *gin.Context) {
	page, pageSize := pageParams(c, 10)

	thoughts, err := h.thoughtService.List(c.Request.Context(), page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list thoughts"})
		return
	}
	c.JSON(http.StatusOK, thoughts)
}

func (h *ThoughtHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	thought, err := h.thoughtService.Get(c.Request.Context(), id)
	if errors.Is(err, service.ErrThoughtNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "thought not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch thought"})
		return
	}
	c.JSON(http.StatusOK, thought)
}

func (h *ThoughtHandler) vote(c *gin.Context, voteFn func(voter string) error, message string) {
	username, _ := identity(c)

	err := voteFn(username)
	switch {
	case errors.Is(err, service.ErrThoughtNotFound), errors.Is(err, service.ErrReplyNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrSelfVote):
		c.JSON(http.StatusBadRequest, gin.H{"error": "you cannot vote on your own content"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "vote failed"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": message})
	}
}

func (h *ThoughtHandler) Like(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.vote(c, func(voter string) error {
		return h.thoughtService.Like(c.Request.Context(), id, voter)
	}, "thought liked")
}

func (h *ThoughtHandler) Dislike(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.vote(c, func(voter string) error {
		return h.thoughtService.Dislike(c.Request.Context(), id, voter)
	}, "thought disliked")
}

func (h *ThoughtHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	username, admin := identity(c)

	err := h.thoughtService.Delete(c.Request.Context(), id, username, admin)
	switch {
	case errors.Is(err, service.ErrThoughtNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "thought not found"})
	case errors.Is(err, service.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "you can only delete your own thoughts"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete thought"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "thought deleted successfully"})
	}
}

func (h *ThoughtHandler) DeleteAll(c *gin.Context) {
	deleted, err := h.thoughtService.DeleteAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete thoughts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "all thoughts deleted", "deleted": deleted})
}

func (h *ThoughtHandler) CreateReply(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateReplyRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	username, _ := identity(c)

	reply, err := h.thoughtService.CreateReply(c.Request.Context(), id, username, req.Content)
	if errors.Is(err, service.ErrThoughtNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "thought not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create reply"})
		return
	}
	c.JSON(http.StatusCreated, reply)
}

func (h *ThoughtHandler) ListReplies(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	replies, err := h.thoughtService.ListReplies(c.Request.Context(), id)
	if errors.Is(err, service.ErrThoughtNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "thought not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list replies"})
		return
	}
	c.JSON(http.StatusOK, replies)
}

func (h *ThoughtHandler) GetReply(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	replyID, ok := pathID(c, "reply_id")
	if !ok {
		return
	}

	reply, err := h.thoughtService.GetReply(c.Request.Context(), id, replyID)
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

func (h *ThoughtHandler) LikeReply(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	replyID, ok := pathID(c, "reply_id")
	if !ok {
		return
	}
	h.vote(c, func(voter string) error {
		return h.thoughtService.LikeReply(c.Request.Context(), id, replyID, voter)
	}, "reply liked")
}

func (h *ThoughtHandler) DislikeReply(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	replyID, ok := pathID(c, "reply_id")
	if !ok {
		return
	}
	h.vote(c, func(voter string) error {
		return h.thoughtService.DislikeReply(c.Request.Context(), id, replyID, voter)
	}, "reply disliked")
}

func (h *ThoughtHandler) DeleteReply(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	replyID, ok := pathID(c, "reply_id")
	if !ok {
		return
	}
	username, admin := identity(c)

	err := h.thoughtService.DeleteReply(c.Request.Context(), id, replyID, username, admin)
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
