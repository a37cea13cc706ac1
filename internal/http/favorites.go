package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nwestberg/lectio/internal/database/favorites"
	"github.com/nwestberg/lectio/internal/entities"
	"github.com/nwestberg/lectio/internal/tasks"
)

// FavoritesStore defines database operations for favorite verses.
type FavoritesStore interface {
	ListByUser(userID uint) ([]entities.Favorite, error)
	Add(userID uint, c favorites.Coordinate, verseText string) (*entities.Favorite, error)
	Remove(userID uint, c favorites.Coordinate) error
	IsFavorite(userID uint, c favorites.Coordinate) (bool, error)
	Toggle(userID uint, c favorites.Coordinate, verseText string) (bool, error)
}

type FavoritesController struct {
	store              FavoritesStore
	taskClient         *tasks.Client
	defaultTranslation string
}

func NewFavoritesController(store FavoritesStore, taskClient *tasks.Client, defaultTranslation string) *FavoritesController {
	return &FavoritesController{
		store:              store,
		taskClient:         taskClient,
		defaultTranslation: defaultTranslation,
	}
}

type favoriteRequest struct {
	Book        string `json:"book" binding:"required"`
	Chapter     int    `json:"chapter" binding:"required,min=1"`
	Verse       int    `json:"verse" binding:"required,min=1"`
	Translation string `json:"translation"`
	VerseText   string `json:"verse_text"`
}

func (fc *FavoritesController) coordinate(req favoriteRequest) favorites.Coordinate {
	translation := req.Translation
	if translation == "" {
		translation = fc.defaultTranslation
	}
	return favorites.Coordinate{
		Book:        req.Book,
		Chapter:     req.Chapter,
		Verse:       req.Verse,
		Translation: translation,
	}
}

// queryCoordinate reads a verse coordinate from query parameters.
func (fc *FavoritesController) queryCoordinate(c *gin.Context) (favorites.Coordinate, bool) {
	book := c.Query("book")
	if book == "" {
		respondBadRequest(c, "book is required")
		return favorites.Coordinate{}, false
	}
	chapter, ok := parseQueryInt(c, "chapter")
	if !ok {
		return favorites.Coordinate{}, false
	}
	verse, ok := parseQueryInt(c, "verse")
	if !ok {
		return favorites.Coordinate{}, false
	}
	translation := c.Query("translation")
	if translation == "" {
		translation = fc.defaultTranslation
	}
	return favorites.Coordinate{
		Book:        book,
		Chapter:     chapter,
		Verse:       verse,
		Translation: translation,
	}, true
}

// enqueueBackfill schedules a verse text fetch for favorites saved without one.
func (fc *FavoritesController) enqueueBackfill(fav *entities.Favorite) {
	if fc.taskClient == nil || fav.VerseText != "" {
		return
	}
	_, _ = fc.taskClient.Add(tasks.BackfillVerseTextTask{
		FavoriteID:  fav.ID,
		Book:        fav.Book,
		Chapter:     fav.Chapter,
		Verse:       fav.Verse,
		Translation: fav.Translation,
	}).Save()
}

// ListFavorites returns the user's favorites, most recent first.
// GET /api/favorites
func (fc *FavoritesController) ListFavorites(c *gin.Context) {
	favs, err := fc.store.ListByUser(GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "list favorites")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"favorites": favs,
		"total":     len(favs),
	})
}

// AddFavorite saves a verse to the user's favorites.
// POST /api/favorites
func (fc *FavoritesController) AddFavorite(c *gin.Context) {
	var req favoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "book, chapter and verse are required")
		return
	}

	fav, err := fc.store.Add(GetUserID(c), fc.coordinate(req), req.VerseText)
	if err != nil {
		if errors.Is(err, favorites.ErrDuplicate) {
			respondConflict(c, "verse is already favorited")
			return
		}
		respondInternalError(c, err, "add favorite")
		return
	}

	fc.enqueueBackfill(fav)

	respondCreated(c, fav)
}

// RemoveFavorite deletes a favorite identified by its verse coordinate.
// DELETE /api/favorites
func (fc *FavoritesController) RemoveFavorite(c *gin.Context) {
	var req favoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "book, chapter and verse are required")
		return
	}

	err := fc.store.Remove(GetUserID(c), fc.coordinate(req))
	if err != nil {
		if errors.Is(err, favorites.ErrNotFound) {
			respondNotFound(c, "favorite")
			return
		}
		respondInternalError(c, err, "remove favorite")
		return
	}

	respondSuccess(c, "favorite removed")
}

// CheckFavorite reports whether a verse is favorited.
// GET /api/favorites/check
func (fc *FavoritesController) CheckFavorite(c *gin.Context) {
	coord, ok := fc.queryCoordinate(c)
	if !ok {
		return
	}

	isFavorite, err := fc.store.IsFavorite(GetUserID(c), coord)
	if err != nil {
		respondInternalError(c, err, "check favorite")
		return
	}

	c.JSON(http.StatusOK, gin.H{"is_favorite": isFavorite})
}

// ToggleFavorite favorites the verse if it isn't saved and removes it if it is.
// POST /api/favorites/toggle
func (fc *FavoritesController) ToggleFavorite(c *gin.Context) {
	var req favoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "book, chapter and verse are required")
		return
	}

	userID := GetUserID(c)
	coord := fc.coordinate(req)

	favorited, err := fc.store.Toggle(userID, coord, req.VerseText)
	if err != nil {
		respondInternalError(c, err, "toggle favorite")
		return
	}

	if favorited && fc.taskClient != nil && req.VerseText == "" {
		// Toggle doesn't return the row, so look it up for the backfill
		if favs, err := fc.store.ListByUser(userID); err == nil {
			for i := range favs {
				f := &favs[i]
				if f.Book == coord.Book && f.Chapter == coord.Chapter &&
					f.Verse == coord.Verse && f.Translation == coord.Translation {
					fc.enqueueBackfill(f)
					break
				}
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"is_favorite": favorited})
}
