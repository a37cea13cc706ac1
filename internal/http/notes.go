package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nwestberg/lectio/internal/database/notes"
	"github.com/nwestberg/lectio/internal/entities"
)

// NotesStore defines database operations for verse notes.
type NotesStore interface {
	ListByUser(userID uint) ([]entities.Note, error)
	ListByVerse(userID uint, c notes.Coordinate) ([]entities.Note, error)
	GetByID(id, userID uint) (*entities.Note, error)
	Save(userID uint, c notes.Coordinate, content string) (*entities.Note, error)
	Update(id, userID uint, content string) (*entities.Note, error)
	Delete(id, userID uint) error
}

type NotesController struct {
	store NotesStore
}

func NewNotesController(store NotesStore) *NotesController {
	return &NotesController{store: store}
}

type noteRequest struct {
	Book    string `json:"book" binding:"required"`
	Chapter int    `json:"chapter" binding:"required,min=1"`
	Verse   int    `json:"verse" binding:"required,min=1"`
	Content string `json:"content" binding:"required"`
}

// respondNoteError maps repository errors to API responses.
func respondNoteError(c *gin.Context, err error, context string) {
	switch {
	case errors.Is(err, notes.ErrNotFound):
		respondNotFound(c, "note")
	case errors.Is(err, notes.ErrNotOwner):
		respondForbidden(c, "note belongs to another user")
	default:
		respondInternalError(c, err, context)
	}
}

// ListNotes returns all of the user's notes, most recent first.
// GET /api/notes
func (nc *NotesController) ListNotes(c *gin.Context) {
	userNotes, err := nc.store.ListByUser(GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "list notes")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notes": userNotes,
		"total": len(userNotes),
	})
}

// ListVerseNotes returns the user's notes on a single verse.
// GET /api/notes/verse
func (nc *NotesController) ListVerseNotes(c *gin.Context) {
	book := c.Query("book")
	if book == "" {
		respondBadRequest(c, "book is required")
		return
	}
	chapter, ok := parseQueryInt(c, "chapter")
	if !ok {
		return
	}
	verse, ok := parseQueryInt(c, "verse")
	if !ok {
		return
	}

	coord := notes.Coordinate{Book: book, Chapter: chapter, Verse: verse}
	verseNotes, err := nc.store.ListByVerse(GetUserID(c), coord)
	if err != nil {
		respondInternalError(c, err, "list verse notes")
		return
	}

	c.JSON(http.StatusOK, gin.H{"notes": verseNotes})
}

// GetNote returns a single note by ID.
// GET /api/notes/:id
func (nc *NotesController) GetNote(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	note, err := nc.store.GetByID(id, GetUserID(c))
	if err != nil {
		respondNoteError(c, err, "get note")
		return
	}

	c.JSON(http.StatusOK, note)
}

// SaveNote writes the user's note for a verse, replacing any notes
// already stored on that verse.
// POST /api/notes
func (nc *NotesController) SaveNote(c *gin.Context) {
	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "book, chapter, verse and content are required")
		return
	}

	coord := notes.Coordinate{Book: req.Book, Chapter: req.Chapter, Verse: req.Verse}
	note, err := nc.store.Save(GetUserID(c), coord, req.Content)
	if err != nil {
		respondInternalError(c, err, "save note")
		return
	}

	respondCreated(c, note)
}

// UpdateNote changes the content of an existing note.
// PUT /api/notes/:id
func (nc *NotesController) UpdateNote(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "content is required")
		return
	}

	note, err := nc.store.Update(id, GetUserID(c), req.Content)
	if err != nil {
		respondNoteError(c, err, "update note")
		return
	}

	c.JSON(http.StatusOK, note)
}

// DeleteNote removes a note.
// DELETE /api/notes/:id
func (nc *NotesController) DeleteNote(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := nc.store.Delete(id, GetUserID(c)); err != nil {
		respondNoteError(c, err, "delete note")
		return
	}

	respondSuccess(c, "note deleted")
}
