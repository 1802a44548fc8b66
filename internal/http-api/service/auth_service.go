package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"comnibus/internal/config"
	"comnibus/internal/http-api/middleware/auth"
	"comnibus/internal/http-api/models"
	"comnibus/internal/http-api/repository"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNameInUse          = errors.New("username already in use")
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenRevoked       = errors.New("token has been cancelled")
	ErrAccountSuspended   = errors.New("account is suspended")
	ErrUserNotFound       = errors.New("user not found")
)

// Claims is the identity carried by the token. The core trusts these values
// verbatim once the signature checks out.
type Claims struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Admin    bool   `json:"admin"`
	UserType string `json:"user_type"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Signup(ctx context.Context, req SignupInput) (*models.User, error)
	Login(ctx context.Context, username, password string) (token string, err error)
	Logout(ctx context.Context, token string) error
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// SignupInput carries the fields a new account starts from.
type SignupInput struct {
	Name             string
	Username         string
	Email            string
	Password         string
	UserType         string
	FavouriteGenres  []string
	FavouriteAuthors []string
	FavouriteBooks   []string
}

type authService struct {
	userRepo  repository.UserRepository
	blacklist repository.TokenBlacklist
	jwtSecret string
	jwtExpiry time.Duration
}

func NewAuthService(userRepo repository.UserRepository, blacklist repository.TokenBlacklist, cfg *config.Config) AuthService {
	return &authService{
		userRepo:  userRepo,
		blacklist: blacklist,
		jwtSecret: cfg.JWTSecret,
		jwtExpiry: cfg.JWTExpiry,
	}
}

// Signup registers a new user with empty shelves and social lists.
func (s *authService) Signup(ctx context.Context, req SignupInput) (*models.User, error) {
	// Check if user exists
	if _, err := s.userRepo.FindByUsername(ctx, req.Username); err == nil {
		return nil, ErrNameInUse
	}

	// Check if email exists
	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailInUse
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	userType := req.UserType
	if userType == "" {
		userType = models.UserTypeReader
	}

	user := &models.User{
		Username:         req.Username,
		Name:             req.Name,
		Email:            req.Email,
		Password:         hashedPassword,
		FavouriteGenres:  emptyIfNil(req.FavouriteGenres),
		FavouriteAuthors: emptyIfNil(req.FavouriteAuthors),
		FavouriteBooks:   emptyIfNil(req.FavouriteBooks),
		Followers:        []models.UserRef{},
		Following:        []models.UserRef{},
		HaveRead:         []models.ShelfBook{},
		WantToRead:       []models.ShelfBook{},
		CurrentlyReading: []models.CurrentlyReading{},
		Awards:           []string{},
		CreatedAt:        time.Now().UTC(),
		Admin:            false,
		UserType:         userType,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login authenticates a user and returns a signed token.
func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		// User not found: dummy compare to mitigate timing attacks (always take same time)
		auth.VerifyPassword("$2a$10$7EqJtq98hPqEX7fNZaFWoOHi6VbU5h6K9v8u5rO0m3j0h6dX5r8e", password)
		return "", ErrInvalidCredentials
	}

	if user.SuspensionEndDate != nil && time.Now().UTC().Before(*user.SuspensionEndDate) {
		remaining := int(time.Until(*user.SuspensionEndDate).Hours() / 24)
		return "", fmt.Errorf("%w: come back in %d days", ErrAccountSuspended, remaining)
	}

	if err := auth.VerifyPassword(user.Password, password); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.generateToken(user)
}

func (s *authService) generateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: user.Username,
		Name:     user.Name,
		Admin:    user.Admin,
		UserType: user.UserType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// Logout blacklists the presented token for the remainder of its lifetime.
func (s *authService) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.parseClaims(tokenString)
	if err != nil {
		return err
	}

	ttl := s.jwtExpiry
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	return s.blacklist.Revoke(ctx, tokenString, ttl)
}

// ValidateToken checks signature, expiry and the revocation blacklist.
func (s *authService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	claims, err := s.parseClaims(tokenString)
	if err != nil {
		return nil, err
	}

	revoked, err := s.blacklist.IsRevoked(ctx, tokenString)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	return claims, nil
}

func (s *authService) parseClaims(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *authService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.All(ctx)
}

func (s *authService) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	return user, err
}

func (s *authService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	return user, err
}
