package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nwestberg/lectio/internal/database/streaks"
)

func newStreaksRouter(store StreakStore, userID uint) *gin.Engine {
	controller := NewStreaksController(store)
	router := gin.New()
	router.Use(asUser(userID))
	router.GET("/api/streak", controller.GetStreak)
	router.POST("/api/streak/advance", controller.AdvanceStreak)
	return router
}

func TestStreaksController_GetStreak(t *testing.T) {
	t.Run("creates an empty streak on first read", func(t *testing.T) {
		db, cleanup := setupTestDatabase(t)
		defer cleanup()

		user := createTestUser(t, db, "reader")
		router := newStreaksRouter(streaks.NewRepository(db.DB), user.ID)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/streak", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response streakResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, 0, response.CurrentStreak)
		assert.Equal(t, 0, response.LongestStreak)
		assert.Equal(t, 0, response.TotalDaysRead)
		assert.Nil(t, response.LastReadDate)
		assert.False(t, response.ReadToday)
	})

	t.Run("reflects previous advances", func(t *testing.T) {
		db, cleanup := setupTestDatabase(t)
		defer cleanup()

		user := createTestUser(t, db, "reader")
		repo := streaks.NewRepository(db.DB)
		_, err := repo.CreateForUser(user.ID)
		require.NoError(t, err)
		_, err = repo.Advance(user.ID, time.Now())
		require.NoError(t, err)

		router := newStreaksRouter(repo, user.ID)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/streak", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response streakResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, 1, response.CurrentStreak)
		assert.Equal(t, 1, response.TotalDaysRead)
		assert.True(t, response.ReadToday)
	})
}

func TestStreaksController_AdvanceStreak(t *testing.T) {
	t.Run("records a day of reading", func(t *testing.T) {
		db, cleanup := setupTestDatabase(t)
		defer cleanup()

		user := createTestUser(t, db, "reader")
		router := newStreaksRouter(streaks.NewRepository(db.DB), user.ID)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/streak/advance", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response streakResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, 1, response.CurrentStreak)
		assert.Equal(t, 1, response.LongestStreak)
		assert.Equal(t, 1, response.TotalDaysRead)
		assert.True(t, response.ReadToday)
	})

	t.Run("repeated advance on the same day is idempotent", func(t *testing.T) {
		db, cleanup := setupTestDatabase(t)
		defer cleanup()

		user := createTestUser(t, db, "reader")
		router := newStreaksRouter(streaks.NewRepository(db.DB), user.ID)

		for i := 0; i < 3; i++ {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest("POST", "/api/streak/advance", nil)
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
		}

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/streak", nil)
		router.ServeHTTP(w, req)

		var response streakResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, 1, response.CurrentStreak)
		assert.Equal(t, 1, response.TotalDaysRead)
	})

	t.Run("streaks are scoped per user", func(t *testing.T) {
		db, cleanup := setupTestDatabase(t)
		defer cleanup()

		alice := createTestUser(t, db, "alice")
		bob := createTestUser(t, db, "bob")
		repo := streaks.NewRepository(db.DB)

		aliceRouter := newStreaksRouter(repo, alice.ID)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/streak/advance", nil)
		aliceRouter.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)

		bobRouter := newStreaksRouter(repo, bob.ID)
		w = httptest.NewRecorder()
		req, _ = http.NewRequest("GET", "/api/streak", nil)
		bobRouter.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)

		var response streakResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, 0, response.CurrentStreak)
		assert.Equal(t, 0, response.TotalDaysRead)
	})
}
