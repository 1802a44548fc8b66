package handler

import (
	"errors"
	"net/http"

	"comnibus/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type SocialHandler struct {
	socialService service.SocialService
	feedService   service.FeedService
}

func NewSocialHandler(socialService service.SocialService, feedService service.FeedService) *SocialHandler {
	return &SocialHandler{socialService: socialService, feedService: feedService}
}

func (h *SocialHandler) RegisterRoutes(authed *gin.RouterGroup) {
	authed.POST("/users/:id/follow", h.Follow)
	authed.POST("/users/:id/unfollow", h.Unfollow)
	authed.GET("/feed", h.Feed)
}

func (h *SocialHandler) Follow(c *gin.Context) {
	targetID, ok := pathID(c, "id")
	if !ok {
		return
	}
	username, _ := identity(c)

	err := h.socialService.Follow(c.Request.Context(), username, targetID)
	switch {
	case errors.Is(err, service.ErrSelfFollow):
		c.JSON(http.StatusBadRequest, gin.H{"error": "you cannot follow yourself"})
	case errors.Is(err, service.ErrAlreadyFollowing):
		c.JSON(http.StatusConflict, gin.H{"error": "already following this user"})
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "follow failed"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "user followed successfully"})
	}
}

func (h *SocialHandler) Unfollow(c *gin.Context) {
	targetID, ok := pathID(c, "id")
	if !ok {
		return
	}
	username, _ := identity(c)

	err := h.socialService.Unfollow(c.Request.Context(), username, targetID)
	switch {
	case errors.Is(err, service.ErrSelfFollow):
		c.JSON(http.StatusBadRequest, gin.H{"error": "you cannot unfollow yourself"})
	case errors.Is(err, service.ErrNotFollowing):
		c.JSON(http.StatusConflict, gin.H{"error": "not following this user"})
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unfollow failed"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "user unfollowed successfully"})
	}
}

func (h *SocialHandler) Feed(c *gin.Context) {
	username, _ := identity(c)

	result, err := h.feedService.BuildFeed(c.Request.Context(), username)
	if errors.Is(err, service.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not build feed"})
		return
	}
	c.JSON(http.StatusOK, result)
}
