package http

import (
	"github.com/gin-gonic/gin"

	"github.com/nwestberg/lectio/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(auth.SecurityHeadersMiddleware())

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies, cfg.AuthService))
	}

	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	if cfg.AuthMiddleware != nil {
		router.Use(cfg.AuthMiddleware.Handler())
	} else {
		// No auth - inject default user ID
		router.Use(func(c *gin.Context) {
			c.Set(auth.ContextKeyUserID, auth.DefaultUserID)
			c.Set(auth.ContextKeyAuthType, auth.AuthTypeNone)
			c.Next()
		})
	}

	// Auth routes
	if cfg.AuthService != nil && cfg.AuthService.IsAuthEnabled() {
		authController := auth.NewController(cfg.AuthService, cfg.SessionManager, cfg.AuthConfig)
		authController.RegisterRoutes(router)
	}

	health := NewHealthController(cfg.Database, cfg.Version)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Bible reading endpoints
	if cfg.BibleClient != nil {
		bibleController := NewBibleController(cfg.BibleClient, cfg.DefaultTranslation)
		router.GET("/api/bible/books", bibleController.ListBooks)
		router.GET("/api/bible/translations", bibleController.ListTranslations)
		router.GET("/api/bible/chapter/:book/:chapter", bibleController.GetChapter)
	}

	// Streak endpoints
	if cfg.StreakStore != nil {
		streaksController := NewStreaksController(cfg.StreakStore)
		router.GET("/api/streak", streaksController.GetStreak)
		router.POST("/api/streak/advance", streaksController.AdvanceStreak)
	}

	// Favorites endpoints
	if cfg.FavoritesStore != nil {
		favoritesController := NewFavoritesController(cfg.FavoritesStore, cfg.TaskClient, cfg.DefaultTranslation)
		router.GET("/api/favorites", favoritesController.ListFavorites)
		router.POST("/api/favorites", favoritesController.AddFavorite)
		router.DELETE("/api/favorites", favoritesController.RemoveFavorite)
		router.GET("/api/favorites/check", favoritesController.CheckFavorite)
		router.POST("/api/favorites/toggle", favoritesController.ToggleFavorite)
	}

	// Notes endpoints
	if cfg.NotesStore != nil {
		notesController := NewNotesController(cfg.NotesStore)
		router.GET("/api/notes", notesController.ListNotes)
		router.GET("/api/notes/verse", notesController.ListVerseNotes)
		router.GET("/api/notes/:id", notesController.GetNote)
		router.POST("/api/notes", notesController.SaveNote)
		router.PUT("/api/notes/:id", notesController.UpdateNote)
		router.DELETE("/api/notes/:id", notesController.DeleteNote)
	}

	// Verse of the day endpoints
	if cfg.VerseOfDay != nil {
		requireAuth := cfg.AuthService != nil && cfg.AuthService.IsAuthEnabled()
		verseOfDayController := NewVerseOfDayController(cfg.VerseOfDay, cfg.LikeStore, requireAuth)
		router.GET("/api/verse-of-day", verseOfDayController.GetVerseOfDay)
		router.POST("/api/verse-of-day/like", verseOfDayController.ToggleLike)
	}

	return router
}
