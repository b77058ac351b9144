package jwt

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("missing authorization token")
)

// ActorType discriminates the two identity collections behind one token format.
type ActorType string

const (
	ActorCustomer ActorType = "customer"
	ActorStaff    ActorType = "staff"
)

// Claims is the signed payload attached to every authenticated request.
type Claims struct {
	ActorID   uuid.UUID `json:"actor_id"`
	ActorType ActorType `json:"actor_type"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role,omitempty"` // staff only: employee | manager
	IsAdmin   bool      `json:"is_admin"`
	jwt.RegisteredClaims
}

func secretKey() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret-change-in-production"
	}
	return []byte(secret)
}

// GenerateToken signs a 24h HS256 token for the given actor.
func GenerateToken(actorID uuid.UUID, actorType ActorType, email, name, role string, isAdmin bool) (string, error) {
	claims := &Claims{
		ActorID:   actorID,
		ActorType: actorType,
		Email:     email,
		Name:      name,
		Role:      role,
		IsAdmin:   isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "go-restaurant-api",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// ValidateToken parses and validates a signed token string.
func ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secretKey(), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
