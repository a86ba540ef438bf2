package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndValidate(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)

	tok, err := tokens.Issue("profile-1")
	require.NoError(t, err)

	id, err := tokens.Validate(tok)
	require.NoError(t, err)
	assert.Equal(t, "profile-1", id)
}

func TestValidateRejectsForeignSecret(t *testing.T) {
	tok, err := NewTokens("other", time.Hour).Issue("profile-1")
	require.NoError(t, err)

	_, err = NewTokens("secret", time.Hour).Validate(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsExpired(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "profile-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewTokens("secret", time.Hour).Validate(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssueRequiresProfile(t *testing.T) {
	_, err := NewTokens("secret", 0).Issue("")
	assert.Error(t, err)
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := NewTokens("secret", time.Hour)

	r := gin.New()
	r.GET("/me", Middleware(tokens), func(c *gin.Context) {
		c.String(http.StatusOK, UserID(c))
	})

	tok, err := tokens.Issue("profile-7")
	require.NoError(t, err)

	t.Run("header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "profile-7", w.Body.String())
	})

	t.Run("query", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me?token="+tok, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer nope")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
