package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/taskit-app/taskit/internal/domain"
	"github.com/taskit-app/taskit/internal/repository"
)

type contextKey string

// ContextKeyUser is the key for storing the authenticated user in request context.
const ContextKeyUser contextKey = "user"

// AuthMiddleware verifies bearer tokens issued by the external identity
// provider and resolves the subject against the user directory.
type AuthMiddleware struct {
	signingKey []byte
	userRepo   *repository.UserRepository
}

// NewAuthMiddleware creates a new AuthMiddleware.
func NewAuthMiddleware(jwtSecret string, userRepo *repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		signingKey: []byte(jwtSecret),
		userRepo:   userRepo,
	}
}

// parseSubject validates the token signature and expiry and returns the
// subject claim, the user id assigned by the identity subsystem.
func (m *AuthMiddleware) parseSubject(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", fmt.Errorf("%w: missing subject", domain.ErrInvalidToken)
	}

	return subject, nil
}

// Authenticate validates the Authorization header and adds the resolved user
// to the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "missing authorization header", http.StatusUnauthorized)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			http.Error(w, "invalid authorization header format", http.StatusUnauthorized)
			return
		}

		subject, err := m.parseSubject(parts[1])
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		user, err := m.userRepo.GetByID(r.Context(), subject)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				http.Error(w, "unknown user", http.StatusUnauthorized)
				return
			}
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyUser, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserFromContext retrieves the authenticated user from request context.
func GetUserFromContext(ctx context.Context) (*domain.User, error) {
	user, ok := ctx.Value(ContextKeyUser).(*domain.User)
	if !ok || user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}
