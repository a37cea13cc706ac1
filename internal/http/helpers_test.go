package http

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nwestberg/lectio/internal/auth"
	"github.com/nwestberg/lectio/internal/database"
	"github.com/nwestberg/lectio/internal/entities"
)

func setupTestDatabase(t *testing.T) (*database.Database, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return db, cleanup
}

func createTestUser(t *testing.T, db *database.Database, username string) *entities.User {
	t.Helper()
	user := &entities.User{Username: username, PasswordHash: "x"}
	require.NoError(t, db.DB.Create(user).Error)
	return user
}

// asUser injects an authenticated user the way the auth middleware would.
func asUser(id uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(auth.ContextKeyUserID, id)
		c.Next()
	}
}

func TestParseQueryInt(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		query      string
		wantOK     bool
		wantValue  int
		wantStatus int
	}{
		{name: "valid value", query: "chapter=3", wantOK: true, wantValue: 3},
		{name: "missing value", query: "", wantOK: false, wantStatus: http.StatusBadRequest},
		{name: "non-numeric value", query: "chapter=three", wantOK: false, wantStatus: http.StatusBadRequest},
		{name: "zero is rejected", query: "chapter=0", wantOK: false, wantStatus: http.StatusBadRequest},
		{name: "negative is rejected", query: "chapter=-2", wantOK: false, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request, _ = http.NewRequest("GET", "/?"+tt.query, nil)

			got, ok := parseQueryInt(c, "chapter")
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantValue, got)
			} else {
				assert.Equal(t, tt.wantStatus, w.Code)
			}
		})
	}
}

func TestParseIDParam(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("valid ID", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: "42"}}

		id, ok := parseIDParam(c, "id")
		assert.True(t, ok)
		assert.Equal(t, uint(42), id)
	})

	t.Run("invalid ID", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: "abc"}}

		_, ok := parseIDParam(c, "id")
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
