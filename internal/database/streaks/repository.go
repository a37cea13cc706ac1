// Package streaks provides database operations for reading-streak records.
//
// Advance is the only mutation path: it loads the user's row, runs the streak
// engine, and writes the result back inside a single transaction, so two
// concurrent advances for the same user on the same day cannot
// double-increment the counters.
package streaks

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/nwestberg/lectio/internal/entities"
	"github.com/nwestberg/lectio/internal/streak"
)

var ErrNotFound = errors.New("streak record not found")

// Repository handles all streak database operations.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateForUser inserts a zeroed streak record. Called once at registration.
func (r *Repository) CreateForUser(userID uint) (*entities.Streak, error) {
	s := &entities.Streak{UserID: userID}
	if err := r.db.Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

// GetByUserID returns the user's streak record.
func (r *Repository) GetByUserID(userID uint) (*entities.Streak, error) {
	var s entities.Streak
	err := r.db.Where("user_id = ?", userID).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Advance records a reading for the given day and returns the updated record.
// The read-modify-write runs in one transaction; re-reading on the same day
// leaves the row untouched.
func (r *Repository) Advance(userID uint, today time.Time) (*entities.Streak, error) {
	var updated entities.Streak

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var s entities.Streak
		if err := tx.Where("user_id = ?", userID).First(&s).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		next := streak.Advance(streak.State{
			Current:  s.CurrentStreak,
			Longest:  s.LongestStreak,
			LastRead: s.LastReadDate,
			Total:    s.TotalDaysRead,
		}, today)

		s.CurrentStreak = next.Current
		s.LongestStreak = next.Longest
		s.LastReadDate = next.LastRead
		s.TotalDaysRead = next.Total

		if err := tx.Save(&s).Error; err != nil {
			return err
		}

		updated = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}
