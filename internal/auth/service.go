package auth

import (
	"context"
	"crypto/subtle"
	"time"

	"seatbook/internal/shared/config"
	"seatbook/internal/shared/middleware"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	Login(ctx context.Context, req *LoginRequest) (*TokenResponse, error)
	ValidateToken(tokenString string) (*JWTClaims, error)
}

type service struct {
	config *config.Config
	now    func() time.Time
}

func NewService(cfg *config.Config) Service {
	return &service{config: cfg, now: time.Now}
}

// HashPassword returns the bcrypt hash to put in ADMIN_PASSWORD_HASH
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (s *service) Login(ctx context.Context, req *LoginRequest) (*TokenResponse, error) {
	admin := s.config.Admin
	if admin.PasswordHash == "" {
		return nil, ErrAdminDisabled
	}

	// Verify password even on a username mismatch so both cost the same
	passwordErr := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password))
	if subtle.ConstantTimeCompare([]byte(req.Username), []byte(admin.Username)) != 1 || passwordErr != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateAccessToken(admin.Username)
	if err != nil {
		return nil, err
	}

	return &TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.config.JWT.AccessExpiresIn.Seconds()),
		Role:        middleware.RoleAdmin,
	}, nil
}

func (s *service) ValidateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.config.JWT.Secret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid && claims.Type == "access" {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

func (s *service) generateAccessToken(username string) (string, error) {
	now := s.now()

	claims := JWTClaims{
		UserID: username,
		Role:   middleware.RoleAdmin,
		Type:   "access",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.JWT.AccessExpiresIn)),
			Issuer:    "seatbook",
			Subject:   username,
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.JWT.Secret))
}
