package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Role string

const (
	RoleOwner Role = "owner"
	RoleStaff Role = "staff"
)

// StaffRoles is the set allowed to mutate orders.
var StaffRoles = []Role{RoleOwner, RoleStaff}

var (
	// ErrMissingToken covers absent and malformed bearer tokens alike: the
	// caller should log in again.
	ErrMissingToken = errors.New("missing or invalid bearer token")

	ErrExpiredToken = errors.New("token expired")

	// ErrInsufficientRole means a valid identity lacks permission. Denied,
	// not re-authenticated.
	ErrInsufficientRole = errors.New("insufficient role")
)

type Identity struct {
	UserID string
	Role   Role
}

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Gate verifies and issues the stateless HS256 bearer tokens staff use for
// mutating operations. No server-side revocation; expiry is the only
// lifecycle event.
type Gate struct {
	secret []byte
	ttl    time.Duration
}

func NewGate(secret string, ttl time.Duration) *Gate {
	return &Gate{secret: []byte(secret), ttl: ttl}
}

func (g *Gate) Issue(userID string, role Role) (string, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
		},
	})
	return token.SignedString(g.secret)
}

func (g *Gate) Authenticate(bearer string) (Identity, error) {
	if bearer == "" {
		return Identity{}, ErrMissingToken
	}

	var c claims
	token, err := jwt.ParseWithClaims(bearer, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrMissingToken
		}
		return g.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, ErrExpiredToken
		}
		return Identity{}, ErrMissingToken
	}
	if !token.Valid {
		return Identity{}, ErrMissingToken
	}

	role := Role(c.Role)
	if role != RoleOwner && role != RoleStaff {
		return Identity{}, ErrMissingToken
	}
	return Identity{UserID: c.Subject, Role: role}, nil
}

// RequireRole is the single authorization check applied before every mutating
// operation.
func RequireRole(id Identity, allowed ...Role) error {
	for _, role := range allowed {
		if id.Role == role {
			return nil
		}
	}
	return ErrInsufficientRole
}
