package auth

import (
	"net/http"
	"net/http/httptest"
	"pulse/errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "a-very-long-secret-used-only-in-tests"

func TestTokenIssuer_Generate_And_Validate(t *testing.T) {
	req := require.New(t)
	issuer := NewTokenIssuer(testSecret, time.Hour)

	// When a token is generated for alice
	token, err := issuer.GenerateToken("alice")
	req.NoError(err)

	// Then it validates back to alice
	claims, err := issuer.ValidateToken(token)
	req.NoError(err)
	req.Equal("alice", claims.UserID)
	req.Equal("alice", claims.Subject)
}

func TestTokenIssuer_Rejects_Expired_Token(t *testing.T) {
	req := require.New(t)
	issuer := NewTokenIssuer(testSecret, -time.Minute)

	token, err := issuer.GenerateToken("alice")
	req.NoError(err)

	_, err = issuer.ValidateToken(token)
	req.ErrorIs(err, errors.ErrUnauthorized)
}

func TestTokenIssuer_Rejects_Foreign_Signature(t *testing.T) {
	req := require.New(t)
	token, err := NewTokenIssuer("another-secret-of-a-reasonable-length", time.Hour).GenerateToken("alice")
	req.NoError(err)

	_, err = NewTokenIssuer(testSecret, time.Hour).ValidateToken(token)
	req.ErrorIs(err, errors.ErrUnauthorized)
}

func TestTokenIssuer_Rejects_Unsigned_Token(t *testing.T) {
	req := require.New(t)
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, &CustomClaims{UserID: "alice"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	req.NoError(err)

	_, err = NewTokenIssuer(testSecret, time.Hour).ValidateToken(token)
	req.ErrorIs(err, errors.ErrUnauthorized)
}

func TestMiddleware(t *testing.T) {
	req := require.New(t)
	issuer := NewTokenIssuer(testSecret, time.Hour)
	token, err := issuer.GenerateToken("alice")
	req.NoError(err)

	var caller string
	handler := issuer.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, _ = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name     string
		header   string
		expected int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"garbage token", "Bearer abc.def.ghi", http.StatusUnauthorized},
		{"valid token", "Bearer " + token, http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/v1/notifications", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)
			require.Equal(t, tt.expected, w.Code)
		})
	}
	req.Equal("alice", caller)
}

func TestUserIDFromContext_Missing(t *testing.T) {
	req := require.New(t)
	_, ok := UserIDFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	req.False(ok)
}
