package http

import (
	"context"

	"github.com/nwestberg/lectio/internal/auth"
	"github.com/nwestberg/lectio/internal/bible"
	"github.com/nwestberg/lectio/internal/config"
	"github.com/nwestberg/lectio/internal/database"
	"github.com/nwestberg/lectio/internal/tasks"
	"github.com/nwestberg/lectio/internal/verseofday"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Database *database.Database

	// Stores
	StreakStore    StreakStore
	FavoritesStore FavoritesStore
	NotesStore     NotesStore
	LikeStore      LikeStore

	// Bible API
	BibleClient        ChapterFetcher
	DefaultTranslation string

	// Verse of the day
	VerseOfDay *verseofday.Service

	// Task queue client (optional)
	TaskClient *tasks.Client

	// Authentication
	AuthService    *auth.Service
	SessionManager *auth.SessionManager
	AuthMiddleware *auth.Middleware
	AuthConfig     config.Auth
	CSRFSecret     []byte
	SecureCookies  bool

	// Application info
	Version string
}

// ChapterFetcher is the subset of the Bible API client the HTTP layer needs.
type ChapterFetcher interface {
	GetChapter(ctx context.Context, translation, bookID string, chapter int) (*bible.Chapter, error)
	ListTranslations(ctx context.Context) ([]bible.Translation, error)
}
