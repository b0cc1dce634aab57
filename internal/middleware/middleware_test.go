package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hams-server/internal/logger"
	"hams-server/internal/metrics"
	"hams-server/internal/models"
	"hams-server/internal/utils"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(handlers...)
	r.GET("/whoami", func(c *gin.Context) {
		actor, _ := GetActorFromContext(c)
		c.JSON(http.StatusOK, actor)
	})
	return r
}

func tokenFor(t *testing.T, account *models.Account) string {
	t.Helper()
	token, err := utils.GenerateAccessToken(account, testSecret, time.Minute)
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware(t *testing.T) {
	r := setupTestRouter(AuthMiddleware(testSecret))
	valid := tokenFor(t, &models.Account{ID: "5", Role: models.RolePatient, PatientID: "2"})

	tests := []struct {
		name   string
		header string
		code   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer " + valid, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.code, w.Code)
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+valid)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var actor models.Actor
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &actor))
	assert.Equal(t, "5", actor.UserID)
	assert.Equal(t, models.RolePatient, actor.Role)
	assert.Equal(t, "2", actor.PatientID)
}

func TestRoleAuthMiddleware(t *testing.T) {
	as := func(role models.Role) gin.HandlerFunc {
		return func(c *gin.Context) { SetActor(c, models.Actor{UserID: "1", Role: role}) }
	}

	tests := []struct {
		role models.Role
		code int
	}{
		{models.RoleAdmin, http.StatusOK},
		{models.RoleDoctor, http.StatusOK},
		{models.RolePatient, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			r := setupTestRouter(as(tt.role), RoleAuthMiddleware(models.RoleAdmin, models.RoleDoctor))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
			assert.Equal(t, tt.code, w.Code)
		})
	}

	r := setupTestRouter(RoleAuthMiddleware(models.RoleAdmin))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code, "actor missing")
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	r := setupTestRouter(RequestLogger(logger.NewWithOutput("info", &buf)))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "http", line["component"])
	assert.Equal(t, "/whoami", line["path"])
	assert.Equal(t, float64(http.StatusOK), line["status_code"])
}

func TestMetrics(t *testing.T) {
	collector := metrics.NewCollector()
	r := setupTestRouter(Metrics(collector))

	for _, path := range []string{"/whoami", "/whoami", "/missing"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	w := httptest.NewRecorder()
	collector.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := w.Body.String()
	assert.Contains(t, body, `hams_http_requests_total{endpoint="/whoami",method="GET",status_code="200"} 2`)
	assert.Contains(t, body, `hams_http_requests_total{endpoint="unmatched",method="GET",status_code="404"} 1`)
}
