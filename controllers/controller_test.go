package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/svenriksen/syncshack-2025/middleware"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	return db, mock
}

func newTestContext(t *testing.T, method, path, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(method, path, strings.NewReader(body))
	ctx.Request.Header.Set("Content-Type", "application/json")
	return ctx, w
}

func TestCompleteTripAvgSpeedIsNumeric(t *testing.T) {
	db, mock := newMockDB(t)
	ctrl := NewTripController(db)

	// Invalid trip: recorded with zero coins, no reward writes follow.
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `trips`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	ctx, w := newTestContext(t, http.MethodPost, "/api/v1/trips",
		`{"start_lat":0,"start_lng":0,"end_lat":0,"end_lng":0,"distance_m":100,"duration_s":600}`)
	ctx.Set(middleware.ContextUserIDKey, uint(1))

	ctrl.CompleteTrip(ctx)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Code int `json:"code"`
		Data struct {
			Valid        bool    `json:"valid"`
			CoinsAwarded int     `json:"coins_awarded"`
			AvgSpeedKmh  float64 `json:"avg_speed_kmh"`
		} `json:"data"`
	}
	// Unmarshal into float64 fails if the field regresses to a string.
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Code)
	assert.False(t, resp.Data.Valid)
	assert.Equal(t, 0, resp.Data.CoinsAwarded)
	assert.InDelta(t, 0.6, resp.Data.AvgSpeedKmh, 1e-9)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterConcurrentDuplicateConflicts(t *testing.T) {
	db, mock := newMockDB(t)
	ctrl := NewAuthController(db)

	// Pre-check sees no user; the insert then trips the unique index, as a
	// concurrent registration of the same name would.
	mock.ExpectQuery("SELECT \\* FROM `users` WHERE username = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `users`").
		WillReturnError(gorm.ErrDuplicatedKey)
	mock.ExpectRollback()

	ctx, w := newTestContext(t, http.MethodPost, "/api/v1/auth/register",
		`{"username":"ada","email":"ada@example.com","password":"hunter22"}`)

	ctrl.Register(ctx)

	require.Equal(t, http.StatusConflict, w.Code)
	var resp struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 40901, resp.Code)
	assert.Equal(t, "username already exists", resp.Message)
	require.NoError(t, mock.ExpectationsWereMet())
}
