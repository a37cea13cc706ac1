// Package verselikes provides database operations for verse-of-the-day likes.
package verselikes

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/nwestberg/lectio/internal/entities"
)

// Coordinate addresses a single verse in a specific translation.
type Coordinate struct {
	Book        string
	Chapter     int
	Verse       int
	Translation string
}

// Repository handles verse-like database operations.
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

// Toggle flips the like state in one transaction and reports the new state.
func (r *Repository) Toggle(userID uint, c Coordinate) (liked bool, err error) {
	err = r.db.Transaction(func(tx *gorm.DB) error {
		res := coordScope(tx, userID, c).Delete(&entities.VerseLike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			liked = false
			return nil
		}

		like := &entities.VerseLike{
			UserID:      userID,
			Book:        c.Book,
			Chapter:     c.Chapter,
			Verse:       c.Verse,
			Translation: c.Translation,
		}
		if err := tx.Create(like).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) ||
				strings.Contains(err.Error(), "UNIQUE constraint failed") {
				liked = true
				return nil
			}
			return err
		}
		liked = true
		return nil
	})
	return liked, err
}

// IsLiked reports whether the user has liked the coordinate.
func (r *Repository) IsLiked(userID uint, c Coordinate) (bool, error) {
	var count int64
	err := coordScope(r.db.Model(&entities.VerseLike{}), userID, c).Count(&count).Error
	return count > 0, err
}

// Count returns how many users have liked the coordinate.
func (r *Repository) Count(c Coordinate) (int64, error) {
	var count int64
	err := r.db.Model(&entities.VerseLike{}).
		Where("book = ? AND chapter = ? AND verse = ? AND translation = ?",
			c.Book, c.Chapter, c.Verse, c.Translation).
		Count(&count).Error
	return count, err
}
