package tests

import (
	"testing"
	"time"

	"overcooked-ordering/order-svc/internal/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signClaims(t *testing.T, method jwt.SigningMethod, key any, claims auth.Claims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return tok
}

func TestJWTValidator_Validate(t *testing.T) {
	validator := auth.NewJWTValidator(testSecret)
	future := jwt.NewNumericDate(time.Now().Add(time.Hour))

	tests := []struct {
		name     string
		token    func(*testing.T) string
		wantErr  error
		wantUser int64
		wantRole string
	}{
		{
			name:     "kitchen token",
			token:    func(t *testing.T) string { return token(t, 50, auth.RoleKitchen) },
			wantUser: 50,
			wantRole: auth.RoleKitchen,
		},
		{
			name: "role defaults to customer",
			token: func(t *testing.T) string {
				return signClaims(t, jwt.SigningMethodHS256, []byte(testSecret), auth.Claims{
					RegisteredClaims: jwt.RegisteredClaims{Subject: "12", ExpiresAt: future},
				})
			},
			wantUser: 12,
			wantRole: auth.RoleCustomer,
		},
		{
			name:    "empty",
			token:   func(*testing.T) string { return "" },
			wantErr: auth.ErrMissingToken,
		},
		{
			name: "expired",
			token: func(t *testing.T) string {
				tok, err := auth.Sign(testSecret, 7, auth.RoleCustomer, -time.Minute)
				require.NoError(t, err)
				return tok
			},
			wantErr: auth.ErrInvalidToken,
		},
		{
			name: "wrong secret",
			token: func(t *testing.T) string {
				tok, err := auth.Sign("other", 7, auth.RoleCustomer, time.Hour)
				require.NoError(t, err)
				return tok
			},
			wantErr: auth.ErrInvalidToken,
		},
		{
			name: "non numeric subject",
			token: func(t *testing.T) string {
				return signClaims(t, jwt.SigningMethodHS256, []byte(testSecret), auth.Claims{
					RegisteredClaims: jwt.RegisteredClaims{Subject: "alice", ExpiresAt: future},
				})
			},
			wantErr: auth.ErrInvalidToken,
		},
		{
			name: "unknown role",
			token: func(t *testing.T) string {
				return signClaims(t, jwt.SigningMethodHS256, []byte(testSecret), auth.Claims{
					Role:             "root",
					RegisteredClaims: jwt.RegisteredClaims{Subject: "1", ExpiresAt: future},
				})
			},
			wantErr: auth.ErrInvalidToken,
		},
		{
			name: "unsigned token",
			token: func(t *testing.T) string {
				return signClaims(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, auth.Claims{
					Role:             auth.RoleAdmin,
					RegisteredClaims: jwt.RegisteredClaims{Subject: "1", ExpiresAt: future},
				})
			},
			wantErr: auth.ErrInvalidToken,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			identity, err := validator.Validate(testCase.token(t))

			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				assert.Nil(t, identity)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.wantUser, identity.UserID)
			assert.Equal(t, testCase.wantRole, identity.Role)
		})
	}
}

func TestJWTValidator_NoSecret(t *testing.T) {
	_, err := auth.NewJWTValidator("").Validate(token(t, 1, auth.RoleCustomer))
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestExtractBearerToken(t *testing.T) {
	assert.Equal(t, "abc", auth.ExtractBearerToken("Bearer abc"))
	assert.Equal(t, "abc", auth.ExtractBearerToken("bearer  abc "))
	assert.Empty(t, auth.ExtractBearerToken("Basic abc"))
	assert.Empty(t, auth.ExtractBearerToken(""))
}

func TestIdentity_IsStaff(t *testing.T) {
	assert.True(t, auth.Identity{Role: auth.RoleKitchen}.IsStaff())
	assert.True(t, auth.Identity{Role: auth.RoleAdmin}.IsStaff())
	assert.False(t, auth.Identity{Role: auth.RoleCustomer}.IsStaff())
}
