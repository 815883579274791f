package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	tokenTTL = 24 * time.Hour
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Identity is the caller as established from a bearer token.
type Identity struct {
	Email string
	Role  string
}

// Subject is the audit tag attached to actions this identity performs.
func (i Identity) Subject() string { return i.Email }

// CanManageOrders gates order status changes and the admin dashboard.
func (i Identity) CanManageOrders() bool { return i.Role == RoleAdmin }

// Service issues and validates bearer tokens (HS256, sub = email). The
// admin role is bound to one configured address, same as the storefront
// has always done it.
type Service struct {
	secret     []byte
	adminEmail string
}

func NewService(secret, adminEmail string) *Service {
	return &Service{secret: []byte(secret), adminEmail: adminEmail}
}

func (s *Service) IssueToken(email string) (string, error) {
	claims := jwt.MapClaims{
		"sub": email,
		"exp": jwt.NewNumericDate(time.Now().Add(tokenTTL)),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(s.secret)
}

// VerifyToken parses and validates a token and maps it to an Identity.
func (s *Service) VerifyToken(token string) (Identity, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return Identity{}, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidToken
	}
	email, _ := claims["sub"].(string)
	if email == "" {
		return Identity{}, ErrInvalidToken
	}
	role := RoleUser
	if email == s.adminEmail {
		role = RoleAdmin
	}
	return Identity{Email: email, Role: role}, nil
}
