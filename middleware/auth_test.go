package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"marketplace/models"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, claims jwt.MapClaims, secret []byte) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return token
}

func authRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", append(handlers, func(c *gin.Context) {
		user, _ := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"userId": user.ID.Hex(), "role": user.Role})
	})...)
	return r
}

func TestAuthMiddleware(t *testing.T) {
	userID := primitive.NewObjectID()
	token := signToken(t, jwt.MapClaims{
		"userId": userID.Hex(),
		"role":   models.RoleUser,
		"exp":    time.Now().Add(time.Hour).Unix(),
	}, testSecret)

	r := authRouter(AuthMiddleware(testSecret))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.Hex())
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	userID := primitive.NewObjectID()
	r := authRouter(AuthMiddleware(testSecret))

	cases := map[string]string{
		"missing token": "",
		"garbage":       "Bearer not-a-token",
		"wrong secret": "Bearer " + signToken(t, jwt.MapClaims{
			"userId": userID.Hex(),
			"exp":    time.Now().Add(time.Hour).Unix(),
		}, []byte("other")),
		"expired": "Bearer " + signToken(t, jwt.MapClaims{
			"userId": userID.Hex(),
			"exp":    time.Now().Add(-time.Hour).Unix(),
		}, testSecret),
		"bad user id": "Bearer " + signToken(t, jwt.MapClaims{
			"userId": "nope",
			"exp":    time.Now().Add(time.Hour).Unix(),
		}, testSecret),
	}

	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestAdminMiddleware(t *testing.T) {
	r := authRouter(AuthMiddleware(testSecret), AdminMiddleware())

	adminToken := signToken(t, jwt.MapClaims{
		"userId": primitive.NewObjectID().Hex(),
		"role":   models.RoleAdmin,
		"exp":    time.Now().Add(time.Hour).Unix(),
	}, testSecret)
	userToken := signToken(t, jwt.MapClaims{
		"userId": primitive.NewObjectID().Hex(),
		"role":   models.RoleUser,
		"exp":    time.Now().Add(time.Hour).Unix(),
	}, testSecret)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
