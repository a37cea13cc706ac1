package entities

import (
	"time"
)

// User is an account holder. Every Streak, Favorite, Note and VerseLike
// belongs to exactly one user and is removed with it.
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex;size:100" json:"username"`
	PasswordHash string `gorm:"size:100" json:"-"`

	// API token (hash only; plaintext is shown to the user once)
	TokenHash      string     `gorm:"index;size:64" json:"-"`
	TokenCreatedAt *time.Time `json:"-"`

	LastLoginAt      *time.Time `json:"last_login_at,omitempty"`
	FailedLoginCount int        `gorm:"default:0" json:"-"`
	LockedUntil      *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Streak     *Streak     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Favorites  []Favorite  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Notes      []Note      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	VerseLikes []VerseLike `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// Streak tracks consecutive-day reading for a user. One row per user,
// created zeroed at registration and mutated only through the streak engine.
type Streak struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	UserID        uint       `gorm:"uniqueIndex" json:"user_id"`
	CurrentStreak int        `gorm:"default:0" json:"current_streak"`
	LongestStreak int        `gorm:"default:0" json:"longest_streak"`
	LastReadDate  *time.Time `gorm:"type:date" json:"last_read_date"`
	TotalDaysRead int        `gorm:"default:0" json:"total_days_read"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Favorite is a saved verse. The composite unique index enforces at most one
// row per (user, verse coordinate) even under concurrent toggles.
type Favorite struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;uniqueIndex:idx_favorite_coord" json:"user_id"`
	Book        string    `gorm:"size:64;uniqueIndex:idx_favorite_coord" json:"book"`
	Chapter     int       `gorm:"uniqueIndex:idx_favorite_coord" json:"chapter"`
	Verse       int       `gorm:"uniqueIndex:idx_favorite_coord" json:"verse"`
	Translation string    `gorm:"size:16;default:'web';uniqueIndex:idx_favorite_coord" json:"translation"`
	VerseText   string    `gorm:"type:text" json:"verse_text,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Note is free-form text attached to a verse coordinate. The schema allows
// several notes per verse; the save operation replaces the ones already there.
type Note struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	Book      string    `gorm:"index;size:64" json:"book"`
	Chapter   int       `json:"chapter"`
	Verse     int       `json:"verse"`
	Content   string    `gorm:"type:text" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// VerseLike records a like on the verse of the day, one per (user, coordinate).
type VerseLike struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;uniqueIndex:idx_verselike_coord" json:"user_id"`
	Book        string    `gorm:"size:64;uniqueIndex:idx_verselike_coord" json:"book"`
	Chapter     int       `gorm:"uniqueIndex:idx_verselike_coord" json:"chapter"`
	Verse       int       `gorm:"uniqueIndex:idx_verselike_coord" json:"verse"`
	Translation string    `gorm:"size:16;default:'web';uniqueIndex:idx_verselike_coord" json:"translation"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Streak) TableName() string    { return "streaks" }
func (Favorite) TableName() string  { return "favorites" }
func (Note) TableName() string      { return "notes" }
func (VerseLike) TableName() string { return "verse_likes" }
