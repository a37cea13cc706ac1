package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nwestberg/lectio/internal/database/verselikes"
	"github.com/nwestberg/lectio/internal/verseofday"
)

// LikeStore defines database operations for verse-of-the-day likes.
type LikeStore interface {
	Toggle(userID uint, c verselikes.Coordinate) (bool, error)
	IsLiked(userID uint, c verselikes.Coordinate) (bool, error)
	Count(c verselikes.Coordinate) (int64, error)
}

type VerseOfDayController struct {
	service *verseofday.Service
	likes   LikeStore

	// requireAuth is false in single-user mode, where every request
	// maps to the default user id and likes need no account.
	requireAuth bool
}

func NewVerseOfDayController(service *verseofday.Service, likes LikeStore, requireAuth bool) *VerseOfDayController {
	return &VerseOfDayController{
		service:     service,
		likes:       likes,
		requireAuth: requireAuth,
	}
}

// GetVerseOfDay returns today's featured verse with its like state.
// GET /api/verse-of-day
func (vc *VerseOfDayController) GetVerseOfDay(c *gin.Context) {
	now := time.Now()

	daily, err := vc.service.Get(c.Request.Context(), now)
	if err != nil {
		respondUpstreamError(c, err, "get verse of day")
		return
	}

	resp := gin.H{"verse": daily}

	if vc.likes != nil {
		coord := vc.service.Coordinate(now)
		if count, err := vc.likes.Count(coord); err == nil {
			resp["likes"] = count
		}
		userID := GetUserID(c)
		if !vc.requireAuth || userID != 0 {
			if liked, err := vc.likes.IsLiked(userID, coord); err == nil {
				resp["liked"] = liked
			}
		}
	}

	c.JSON(http.StatusOK, resp)
}

// ToggleLike toggles the authenticated user's like on today's verse.
// POST /api/verse-of-day/like
func (vc *VerseOfDayController) ToggleLike(c *gin.Context) {
	userID := GetUserID(c)
	if vc.requireAuth && userID == 0 {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	coord := vc.service.Coordinate(time.Now())

	liked, err := vc.likes.Toggle(userID, coord)
	if err != nil {
		respondInternalError(c, err, "toggle verse like")
		return
	}

	count, err := vc.likes.Count(coord)
	if err != nil {
		respondInternalError(c, err, "count verse likes")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"liked": liked,
		"likes": count,
	})
}
