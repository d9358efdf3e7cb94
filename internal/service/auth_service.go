package service

import (
	"context"
	"fmt"
	"time"

	"github.com/cms-admin-api/internal/config"
	"github.com/cms-admin-api/internal/models"
	"github.com/cms-admin-api/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// sessionClaims is the JWT payload backing a session
type sessionClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// authService is the concrete implementation of AuthService
type authService struct {
	users repository.UserRepository
	audit Recorder
	cfg   *config.AuthConfig
	log   zerolog.Logger
}

func newAuthService(users repository.UserRepository, audit Recorder, cfg *config.AuthConfig, log zerolog.Logger) *authService {
	return &authService{
		users: users,
		audit: audit,
		cfg:   cfg,
		log:   log.With().Str("component", "auth").Logger(),
	}
}

// Login verifies credentials and issues a signed session token.
// Wrong email and wrong password fail identically so the endpoint
// does not leak which accounts exist.
func (s *authService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return "", nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	now := time.Now()
	claims := sessionClaims{
		Email: user.Email,
		Name:  user.Name,
		Role:  string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	s.audit.Record(ctx, models.AuditActionLogin, "user", user.ID, user.ID,
		fmt.Sprintf("logged in as %s", user.Email))

	return token, user, nil
}

// ParseToken validates a session token and extracts the session
func (s *authService) ParseToken(token string) (*Session, error) {
	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: invalid session token", ErrUnauthorized)
	}

	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || claims.Subject == "" {
		return nil, fmt.Errorf("%w: invalid session claims", ErrUnauthorized)
	}

	return &Session{
		UserID: claims.Subject,
		Email:  claims.Email,
		Name:   claims.Name,
		Role:   models.Role(claims.Role),
	}, nil
}
