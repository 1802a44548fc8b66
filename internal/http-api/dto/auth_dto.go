package dto

// Data Transfer Objects for authentication requests and responses

// SignupRequest: payload for account creation
type SignupRequest struct {
	Username         string `json:"username" form:"username" binding:"required,min=3,max=50"`
	Name             string `json:"name" form:"name" binding:"required"`
	Email            string `json:"email" form:"email" binding:"required,email"`
	Password         string `json:"password" form:"password" binding:"required,min=8"`
	UserType         string `json:"user_type" form:"user_type" binding:"omitempty,oneof=reader author"`
	FavouriteGenres  string `json:"favourite_genres" form:"favourite_genres"`
	FavouriteAuthors string `json:"favourite_authors" form:"favourite_authors"`
	FavouriteBooks   string `json:"favourite_books" form:"favourite_books"`
}

// LoginRequest: payload for login; Basic auth is also accepted at the route
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// TokenResponse: response payload after successful login
type TokenResponse struct {
	Token string `json:"token"`
}
