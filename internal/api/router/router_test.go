package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/TheBadshahKid/unolo-field-force-tracker/config"
	"github.com/TheBadshahKid/unolo-field-force-tracker/internal/api/handler"
	"github.com/TheBadshahKid/unolo-field-force-tracker/internal/repository"
	"github.com/TheBadshahKid/unolo-field-force-tracker/internal/seed"
	"github.com/TheBadshahKid/unolo-field-force-tracker/internal/service"
	"github.com/TheBadshahKid/unolo-field-force-tracker/pkg/database"
	"github.com/TheBadshahKid/unolo-field-force-tracker/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	ctx := context.Background()
	logger := zap.NewNop()

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:        3000,
			BodyLimit:   1 << 20,
			CORS:        config.CORSConfig{AllowOrigins: []string{"http://localhost:5173"}},
			LoginLimit:  10,
			LoginWindow: time.Minute,
		},
		Database: config.DatabaseConfig{
			Path:            filepath.Join(t.TempDir(), "api.sqlite"),
			SerializeWrites: true,
		},
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret-key-for-unit-testing-2026",
			AccessTokenTTL:  time.Hour,
			RefreshTokenTTL: 24 * time.Hour,
		},
	}

	gw, err := database.NewGateway(&cfg.Database, logger)
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(ctx, gw, logger))
	hash, err := seed.HashPassword(seed.DefaultPassword, bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, seed.Run(ctx, gw, seed.Default(hash), false, logger))

	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := service.NewService(repository.NewRepository(gw), jwtMgr, nil, logger)
	return Setup(cfg, handler.NewHandler(svc), jwtMgr, nil, logger)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Code    int             `json:"code"`
	Data    json.RawMessage `json:"data"`
}

func call(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w.Code, env
}

func login(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	status, env := call(t, r, "POST", "/api/auth/login", "", map[string]string{"email": email, "password": seed.DefaultPassword})
	require.Equal(t, http.StatusOK, status)
	var tok struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &tok))
	return tok.AccessToken
}

func TestHealth(t *testing.T) {
	r := newTestEngine(t)
	status, _ := call(t, r, "GET", "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestEmployeeCheckinFlow(t *testing.T) {
	r := newTestEngine(t)
	token := login(t, r, "priya@unolo.com")

	status, env := call(t, r, "GET", "/api/checkin/active", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "null", string(env.Data))

	status, env = call(t, r, "POST", "/api/checkin", token, map[string]interface{}{"client_id": 5})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, 12001, env.Code)

	status, _ = call(t, r, "POST", "/api/checkin", token, map[string]interface{}{
		"client_id": 2, "latitude": 28.4595, "longitude": 77.0266, "notes": "Demo",
	})
	require.Equal(t, http.StatusCreated, status)

	status, env = call(t, r, "POST", "/api/checkin", token, map[string]interface{}{"client_id": 4})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, 12002, env.Code)

	status, _ = call(t, r, "PUT", "/api/checkin/checkout", token, nil)
	assert.Equal(t, http.StatusOK, status)

	status, env = call(t, r, "PUT", "/api/checkin/checkout", token, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, 12003, env.Code)
}

func TestSeededOpenCheckinIsActive(t *testing.T) {
	r := newTestEngine(t)
	token := login(t, r, "rahul@unolo.com")

	status, env := call(t, r, "GET", "/api/checkin/active", token, nil)
	require.Equal(t, http.StatusOK, status)
	var active struct {
		ClientID   int64  `json:"client_id"`
		ClientName string `json:"client_name"`
		Status     string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &active))
	assert.Equal(t, int64(1), active.ClientID)
	assert.Equal(t, "ABC Corp", active.ClientName)
	assert.Equal(t, "checked_in", active.Status)
}

func TestDailySummaryAccess(t *testing.T) {
	r := newTestEngine(t)

	status, _ := call(t, r, "GET", "/api/reports/daily-summary?date=2024-01-15", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	employee := login(t, r, "rahul@unolo.com")
	status, env := call(t, r, "GET", "/api/reports/daily-summary?date=2024-01-15", employee, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, 10003, env.Code)

	manager := login(t, r, "manager@unolo.com")
	status, env = call(t, r, "GET", "/api/reports/daily-summary?date=15-01-2024", manager, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid date format. Use YYYY-MM-DD format", env.Message)

	status, env = call(t, r, "GET", "/api/reports/daily-summary?date=2024-01-15", manager, nil)
	require.Equal(t, http.StatusOK, status)

	var summary struct {
		TeamSummary struct {
			TotalCheckins int64   `json:"total_checkins"`
			TotalHours    float64 `json:"total_hours"`
			UniqueClients int64   `json:"unique_clients"`
		} `json:"team_summary"`
		EmployeeBreakdown []json.RawMessage `json:"employee_breakdown"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, int64(5), summary.TeamSummary.TotalCheckins)
	assert.Equal(t, 12.25, summary.TeamSummary.TotalHours)
	assert.Equal(t, int64(4), summary.TeamSummary.UniqueClients)
	assert.Len(t, summary.EmployeeBreakdown, 3)
}

func TestDailySummaryExport(t *testing.T) {
	r := newTestEngine(t)
	manager := login(t, r, "manager@unolo.com")

	req := httptest.NewRequest("GET", "/api/reports/daily-summary/export?date=2024-01-15&employee_id=2", nil)
	req.Header.Set("Authorization", "Bearer "+manager)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "daily-summary_2024-01-15_employee-2.xlsx")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Greater(t, w.Body.Len(), 0)
}
