package handler

import (
	"errors"
	"net/http"
	"strings"

	"comnibus/internal/http-api/dto"
	"comnibus/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes wires authentication and account routes. Login stays
// reachable over GET for Basic auth clients.
func (h *AuthHandler) RegisterRoutes(public, authed, admin *gin.RouterGroup) {
	public.POST("/signup", h.Signup)
	public.GET("/login", h.Login)
	public.POST("/login", h.Login)
	authed.GET("/logout", h.Logout)
	admin.GET("/users", h.ListUsers)
	admin.GET("/users/:id", h.GetUser)
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authService.Signup(c.Request.Context(), service.SignupInput{
		Name:             req.Name,
		Username:         req.Username,
		Email:            req.Email,
		Password:         req.Password,
		UserType:         req.UserType,
		FavouriteGenres:  splitList(req.FavouriteGenres),
		FavouriteAuthors: splitList(req.FavouriteAuthors),
		FavouriteBooks:   splitList(req.FavouriteBooks),
	})
	if errors.Is(err, service.ErrNameInUse) || errors.Is(err, service.ErrEmailInUse) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "account creation failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"_id":      user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
}

// Login accepts Basic auth or a username/password body.
func (h *AuthHandler) Login(c *gin.Context) {
	username, password, ok := c.Request.BasicAuth()
	if !ok {
		var req dto.LoginRequest
		if err := c.ShouldBind(&req); err != nil || req.Username == "" || req.Password == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "credentials required"})
			return
		}
		username, password = req.Username, req.Password
	}

	token, err := h.authService.Login(c.Request.Context(), username, password)
	if errors.Is(err, service.ErrAccountSuspended) {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "bad username or password"})
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}

// Logout blacklists the presented token until it would have expired anyway.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := c.GetString("token")
	if err := h.authService.Logout(c.Request.Context(), token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "logout failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logout successful"})
}

func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.authService.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *AuthHandler) GetUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), id)
	if errors.Is(err, service.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch user"})
		return
	}
	c.JSON(http.StatusOK, user)
}
