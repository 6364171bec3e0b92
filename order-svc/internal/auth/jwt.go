package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid token")
)

const (
	RoleCustomer = "customer"
	RoleKitchen  = "kitchen"
	RoleAdmin    = "admin"
)

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Identity is the authenticated caller injected into request contexts.
type Identity struct {
	UserID int64
	Role   string
}

func (i Identity) IsStaff() bool {
	return i.Role == RoleKitchen || i.Role == RoleAdmin
}

type TokenValidator interface {
	Validate(token string) (*Identity, error)
}

type JWTValidator struct {
	secret []byte
	now    func() time.Time
}

func NewJWTValidator(secret string) *JWTValidator {
	return &JWTValidator{secret: []byte(strings.TrimSpace(secret)), now: time.Now}
}

func (v *JWTValidator) Validate(token string) (*Identity, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrMissingToken
	}
	if len(v.secret) == 0 {
		return nil, fmt.Errorf("%w: jwt secret not configured", ErrInvalidToken)
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithLeeway(5*time.Second), jwt.WithTimeFunc(v.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return nil, fmt.Errorf("%w: subject must be a user id", ErrInvalidToken)
	}

	role := claims.Role
	if role == "" {
		role = RoleCustomer
	}
	switch role {
	case RoleCustomer, RoleKitchen, RoleAdmin:
	default:
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, role)
	}

	return &Identity{UserID: userID, Role: role}, nil
}

// Sign issues an HS256 token for userID. Used by tooling and tests; the
// platform's identity service issues production tokens.
func Sign(secret string, userID int64, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(strings.TrimSpace(secret)))
}

// ExtractBearerToken returns the token from an Authorization header value.
func ExtractBearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
