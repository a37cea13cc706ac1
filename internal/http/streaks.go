package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nwestberg/lectio/internal/database/streaks"
	"github.com/nwestberg/lectio/internal/entities"
)

// StreakStore defines database operations for streak tracking.
type StreakStore interface {
	GetByUserID(userID uint) (*entities.Streak, error)
	CreateForUser(userID uint) (*entities.Streak, error)
	Advance(userID uint, today time.Time) (*entities.Streak, error)
}

type StreaksController struct {
	store StreakStore
}

func NewStreaksController(store StreakStore) *StreaksController {
	return &StreaksController{store: store}
}

// streakResponse shapes the streak for API clients.
type streakResponse struct {
	CurrentStreak int     `json:"current_streak"`
	LongestStreak int     `json:"longest_streak"`
	LastReadDate  *string `json:"last_read_date"`
	TotalDaysRead int     `json:"total_days_read"`
	ReadToday     bool    `json:"read_today"`
}

func toStreakResponse(s *entities.Streak, now time.Time) streakResponse {
	resp := streakResponse{
		CurrentStreak: s.CurrentStreak,
		LongestStreak: s.LongestStreak,
		TotalDaysRead: s.TotalDaysRead,
	}
	if s.LastReadDate != nil {
		formatted := s.LastReadDate.Format("2006-01-02")
		resp.LastReadDate = &formatted
		resp.ReadToday = formatted == now.Format("2006-01-02")
	}
	return resp
}

// GetStreak returns the user's reading streak.
// GET /api/streak
func (sc *StreaksController) GetStreak(c *gin.Context) {
	userID := GetUserID(c)

	streak, err := sc.store.GetByUserID(userID)
	if errors.Is(err, streaks.ErrNotFound) {
		// Accounts created before streak rows existed get one lazily
		streak, err = sc.store.CreateForUser(userID)
	}
	if err != nil {
		respondInternalError(c, err, "get streak")
		return
	}

	c.JSON(http.StatusOK, toStreakResponse(streak, time.Now()))
}

// AdvanceStreak records a day of reading. Repeated calls on the same
// day leave the streak unchanged.
// POST /api/streak/advance
func (sc *StreaksController) AdvanceStreak(c *gin.Context) {
	userID := GetUserID(c)
	now := time.Now()

	streak, err := sc.store.Advance(userID, now)
	if errors.Is(err, streaks.ErrNotFound) {
		if _, createErr := sc.store.CreateForUser(userID); createErr != nil {
			respondInternalError(c, createErr, "create streak")
			return
		}
		streak, err = sc.store.Advance(userID, now)
	}
	if err != nil {
		respondInternalError(c, err, "advance streak")
		return
	}

	c.JSON(http.StatusOK, toStreakResponse(streak, now))
}
