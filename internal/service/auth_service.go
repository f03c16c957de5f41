package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"tenability/internal/models"
	"tenability/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultTokenTTL = time.Hour
	tokenIssuer     = "tenability"
	minPasswordLen  = 8
)

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidToken    = errors.New("invalid token")
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]{2,63}$`)

// AuthService signs up analysts and issues the tokens that scope their simulations.
type AuthService struct {
	users      repository.Authorization
	signingKey []byte
	tokenTTL   time.Duration
}

// NewAuthService signs tokens with key; a non-positive ttl falls back to one hour.
func NewAuthService(repo repository.Authorization, key string, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &AuthService{users: repo, signingKey: []byte(key), tokenTTL: ttl}
}

// SignUp creates an account. Usernames are case-insensitive.
func (s *AuthService) SignUp(ctx context.Context, username, password string) (int, error) {
	username = normalizeUsername(username)
	if !usernamePattern.MatchString(username) {
		return 0, fmt.Errorf("username %q: use 3-64 letters, digits, '.', '_' or '-': %w", username, ErrInvalidRequest)
	}
	if len(password) < minPasswordLen {
		return 0, fmt.Errorf("password shorter than %d characters: %w", minPasswordLen, ErrInvalidRequest)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	id, err := s.users.Create(ctx, username, string(hash))
	if errors.Is(err, repository.ErrUsernameTaken) {
		return 0, fmt.Errorf("%q: %w", username, ErrUsernameTaken)
	}
	return id, err
}

// Claims identify the user a token was issued to.
type Claims struct {
	jwt.RegisteredClaims
	UserID int `json:"user_id"`
}

// GenerateToken checks the credentials and returns a signed token.
func (s *AuthService) GenerateToken(ctx context.Context, username, password string) (string, error) {
	u, err := s.users.GetByUsername(ctx, normalizeUsername(username))
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidPassword
	}
	return s.issueToken(u)
}

// ParseToken validates an HS256 token from this service and returns its user ID.
func (s *AuthService) ParseToken(accessToken string) (int, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(accessToken, &claims,
		func(*jwt.Token) (interface{}, error) { return s.signingKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.UserID <= 0 {
		return 0, ErrInvalidToken
	}
	return claims.UserID, nil
}

// CurrentUser returns the account of the user carried by ctx.
func (s *AuthService) CurrentUser(ctx context.Context) (*models.User, error) {
	id := UserFrom(ctx)
	if id == 0 {
		return nil, ErrUserNotFound
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *AuthService) issueToken(u *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   u.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
		UserID: u.ID,
	})
	return token.SignedString(s.signingKey)
}

func normalizeUsername(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
