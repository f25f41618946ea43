package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"howisyourday/auth"
)

const testSecret = "test-secret"

func protectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", RequireAdmin(testSecret), func(c *gin.Context) {
		userID, _ := c.Get("userID")
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	return r
}

func get(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/admin", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAdmin(t *testing.T) {
	r := protectedRouter()

	adminToken, err := auth.GenerateToken(testSecret, 1, "admin@example.com", true)
	require.NoError(t, err)
	userToken, err := auth.GenerateToken(testSecret, 2, "user@example.com", false)
	require.NoError(t, err)
	foreignToken, err := auth.GenerateToken("other-secret", 1, "admin@example.com", true)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc123", http.StatusUnauthorized},
		{"malformed token", "Bearer not-a-token", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + foreignToken, http.StatusUnauthorized},
		{"valid non-admin", "Bearer " + userToken, http.StatusUnauthorized},
		{"valid admin", "Bearer " + adminToken, http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := get(r, tc.header)
			assert.Equal(t, tc.want, w.Code)
			if tc.want == http.StatusUnauthorized {
				// Failure reason is never revealed.
				assert.Contains(t, w.Body.String(), "Unauthorized")
			}
		})
	}
}
