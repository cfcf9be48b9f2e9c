package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/student-enlistment-api/internal/models"
	appErrors "github.com/noah-isme/student-enlistment-api/pkg/errors"
	"github.com/noah-isme/student-enlistment-api/pkg/logger"
)

type fakeTokens struct {
	claims *models.JWTClaims
	err    error
	seen   []string
}

func (f *fakeTokens) ValidateToken(token string) (*models.JWTClaims, error) {
	f.seen = append(f.seen, token)
	return f.claims, f.err
}

type recordedRequest struct {
	method string
	path   string
	status int
}

type fakeObserver struct {
	requests []recordedRequest
}

func (f *fakeObserver) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	f.requests = append(f.requests, recordedRequest{method: method, path: path, status: status})
}

func studentClaims() *models.JWTClaims {
	return &models.JWTClaims{
		UserID:           "u-1",
		Role:             models.RoleStudent,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "2024-0001"},
	}
}

func protectedRouter(tokens tokenValidator, roles ...models.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", JWT(tokens), RequireRoles(roles...), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"subject": c.GetString(logger.SubjectContextKey)})
	})
	return r
}

func TestJWTRejectsMissingOrMalformedHeader(t *testing.T) {
	tokens := &fakeTokens{claims: studentClaims()}
	r := protectedRouter(tokens, models.RoleStudent)

	for _, header := range []string{"", "Token abc", "Bearer "} {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, header)
	}
	assert.Empty(t, tokens.seen)
}

func TestJWTPropagatesValidationError(t *testing.T) {
	tokens := &fakeTokens{err: appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")}
	r := protectedRouter(tokens, models.RoleStudent)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer expired")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, []string{"expired"}, tokens.seen)
}

func TestJWTAndRolesAllowStudent(t *testing.T) {
	r := protectedRouter(&fakeTokens{claims: studentClaims()}, models.RoleStudent)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "bearer good-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"subject":"2024-0001"}`, w.Body.String())
}

func TestRequireRolesForbidsOtherRoles(t *testing.T) {
	claims := studentClaims()
	claims.Role = models.RoleRegistrar
	r := protectedRouter(&fakeTokens{claims: claims}, models.RoleStudent)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRolesWithoutClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", RequireRoles(models.RoleStudent), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMetricsRecordsRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	observer := &fakeObserver{}
	r := gin.New()
	r.Use(Metrics(observer))
	r.DELETE("/selections/:code/:section", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/selections/CS101/A", nil))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, []recordedRequest{
		{method: http.MethodDelete, path: "/selections/:code/:section", status: http.StatusNoContent},
		{method: http.MethodGet, path: "unmatched", status: http.StatusNotFound},
	}, observer.requests)
}

func TestMetricsNilObserver(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Metrics(nil))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
