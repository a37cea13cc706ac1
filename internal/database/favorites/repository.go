// Package favorites provides database operations for saved verses.
//
// The favorites table carries a composite unique index over
// (user_id, book, chapter, verse, translation); the service layer alone
// cannot prevent duplicate inserts under concurrent toggles, so the
// constraint is enforced here at the storage layer.
package favorites

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/nwestberg/lectio/internal/entities"
)

var (
	ErrDuplicate = errors.New("verse is already favorited")
	ErrNotFound  = errors.New("favorite not found")
)

// Coordinate addresses a single verse in a specific translation.
type Coordinate struct {
	Book        string
	Chapter     int
	Verse       int
	Translation string
}

// Repository handles all favorites database operations.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func coordScope(db *gorm.DB, userID uint, c Coordinate) *gorm.DB {
	return db.Where(
		"user_id = ? AND book = ? AND chapter = ? AND verse = ? AND translation = ?",
		userID, c.Book, c.Chapter, c.Verse, c.Translation,
	)
}

func isUniqueViolation(err error) bool {
	return err != nil && (errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint failed"))
}

// ListByUser returns all favorites for a user, newest first.
func (r *Repository) ListByUser(userID uint) ([]entities.Favorite, error) {
	var favs []entities.Favorite
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favs).Error
	return favs, err
}

// Add inserts a favorite. A second insert for the same coordinate reports
// ErrDuplicate; the stored count for the tuple never exceeds one.
func (r *Repository) Add(userID uint, c Coordinate, verseText string) (*entities.Favorite, error) {
	fav := &entities.Favorite{
		UserID:      userID,
		Book:        c.Book,
		Chapter:     c.Chapter,
		Verse:       c.Verse,
		Translation: c.Translation,
		VerseText:   verseText,
	}
	if err := r.db.Create(fav).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return fav, nil
}

// Remove deletes the favorite at the coordinate. ErrNotFound if absent.
func (r *Repository) Remove(userID uint, c Coordinate) error {
	res := coordScope(r.db, userID, c).Delete(&entities.Favorite{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// IsFavorite reports whether the coordinate is favorited by the user.
func (r *Repository) IsFavorite(userID uint, c Coordinate) (bool, error) {
	var count int64
	err := coordScope(r.db.Model(&entities.Favorite{}), userID, c).Count(&count).Error
	return count > 0, err
}

// Toggle flips the favorite state in a single transaction and reports the
// resulting state. An insert that loses a race to a concurrent toggle hits
// the unique index and is treated as already-favorited.
func (r *Repository) Toggle(userID uint, c Coordinate, verseText string) (favorited bool, err error) {
	err = r.db.Transaction(func(tx *gorm.DB) error {
		res := coordScope(tx, userID, c).Delete(&entities.Favorite{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			favorited = false
			return nil
		}

		fav := &entities.Favorite{
			UserID:      userID,
			Book:        c.Book,
			Chapter:     c.Chapter,
			Verse:       c.Verse,
			Translation: c.Translation,
			VerseText:   verseText,
		}
		if err := tx.Create(fav).Error; err != nil {
			if isUniqueViolation(err) {
				favorited = true
				return nil
			}
			return err
		}
		favorited = true
		return nil
	})
	return favorited, err
}

// ListMissingText returns favorites saved without cached verse text, oldest
// first, for the backfill task.
func (r *Repository) ListMissingText(limit int) ([]entities.Favorite, error) {
	var favs []entities.Favorite
	q := r.db.Where("verse_text = '' OR verse_text IS NULL").Order("created_at ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&favs).Error
	return favs, err
}

// UpdateText stores fetched verse text on an existing favorite.
func (r *Repository) UpdateText(id uint, verseText string) error {
	res := r.db.Model(&entities.Favorite{}).Where("id = ?", id).Update("verse_text", verseText)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
