// Package notes provides database operations for verse notes.
//
// Notes have no uniqueness constraint: a verse may carry several notes.
// Save implements the replace-on-save contract used by the reader UI:
// notes already present on the exact coordinate are deleted before the new
// one is inserted, all inside one transaction.
//
// Mutations verify ownership. A user touching someone else's note gets
// ErrNotOwner, which the HTTP layer reports as an authorization failure
// rather than a not-found.
package notes

import (
	"errors"

	"gorm.io/gorm"

	"github.com/nwestberg/lectio/internal/entities"
)

var (
	ErrNotFound = errors.New("note not found")
	ErrNotOwner = errors.New("note belongs to another user")
)

// Coordinate addresses a verse for note purposes. Notes are keyed by
// book/chapter/verse only; translation does not partition them.
type Coordinate struct {
	Book    string
	Chapter int
	Verse   int
}

// Repository handles all notes database operations.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListByUser returns all of a user's notes, newest first.
func (r *Repository) ListByUser(userID uint) ([]entities.Note, error) {
	var ns []entities.Note
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&ns).Error
	return ns, err
}

// ListByVerse returns the user's notes on a single verse, newest first.
func (r *Repository) ListByVerse(userID uint, c Coordinate) ([]entities.Note, error) {
	var ns []entities.Note
	err := r.db.Where(
		"user_id = ? AND book = ? AND chapter = ? AND verse = ?",
		userID, c.Book, c.Chapter, c.Verse,
	).Order("created_at DESC").Find(&ns).Error
	return ns, err
}

// GetByID fetches a note and checks ownership.
func (r *Repository) GetByID(id, userID uint) (*entities.Note, error) {
	var n entities.Note
	err := r.db.First(&n, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if n.UserID != userID {
		return nil, ErrNotOwner
	}
	return &n, nil
}

// Create inserts a note without touching existing ones on the coordinate.
func (r *Repository) Create(userID uint, c Coordinate, content string) (*entities.Note, error) {
	n := &entities.Note{
		UserID:  userID,
		Book:    c.Book,
		Chapter: c.Chapter,
		Verse:   c.Verse,
		Content: content,
	}
	if err := r.db.Create(n).Error; err != nil {
		return nil, err
	}
	return n, nil
}

// Save replaces the user's notes on the coordinate with a single new note.
func (r *Repository) Save(userID uint, c Coordinate, content string) (*entities.Note, error) {
	var saved *entities.Note

	err := r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where(
			"user_id = ? AND book = ? AND chapter = ? AND verse = ?",
			userID, c.Book, c.Chapter, c.Verse,
		).Delete(&entities.Note{}).Error
		if err != nil {
			return err
		}

		n := &entities.Note{
			UserID:  userID,
			Book:    c.Book,
			Chapter: c.Chapter,
			Verse:   c.Verse,
			Content: content,
		}
		if err := tx.Create(n).Error; err != nil {
			return err
		}
		saved = n
		return nil
	})
	if err != nil {
		return nil, err
	}

	return saved, nil
}

// Update changes a note's text after verifying ownership.
func (r *Repository) Update(id, userID uint, content string) (*entities.Note, error) {
	n, err := r.GetByID(id, userID)
	if err != nil {
		return nil, err
	}

	n.Content = content
	if err := r.db.Save(n).Error; err != nil {
		return nil, err
	}
	return n, nil
}

// Delete removes a note after verifying ownership.
func (r *Repository) Delete(id, userID uint) error {
	n, err := r.GetByID(id, userID)
	if err != nil {
		return err
	}
	return r.db.Delete(n).Error
}
