package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nwestberg/lectio/internal/database/notes"
	"github.com/nwestberg/lectio/internal/entities"
)

func newNotesRouter(store NotesStore, userID uint) *gin.Engine {
	controller := NewNotesController(store)
	router := gin.New()
	router.Use(asUser(userID))
	router.GET("/api/notes", controller.ListNotes)
	router.POST("/api/notes", controller.SaveNote)
	router.GET("/api/notes/verse", controller.ListVerseNotes)
	router.GET("/api/notes/:id", controller.GetNote)
	router.PUT("/api/notes/:id", controller.UpdateNote)
	router.DELETE("/api/notes/:id", controller.DeleteNote)
	return router
}

func noteBody(t *testing.T, req noteRequest) *bytes.Reader {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)
	return bytes.NewReader(body)
}

func TestNotesController_SaveNote(t *testing.T) {
	t.Run("creates a note", func(t *testing.T) {
		db, cleanup := setupTestDatabase(t)
		defer cleanup()

		user := createTestUser(t, db, "reader")
		router := newNotesRouter(notes.NewRepository(db.DB), user.ID)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/notes", noteBody(t, noteRequest{
			Book: "JHN", Chapter: 3, Verse: 16, Content: "For God so loved the world",
		}))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var note entities.Note
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &note))
		assert.Equal(t, "JHN", note.Book)
		assert.Equal(t, "For God so loved the world", note.Content)
		assert.NotZero(t, note.ID)
	})

	t.Run("saving again replaces the note on that verse", func(t *testing.T) {
		db, cleanup := setupTestDatabase(t)
		defer cleanup()

		user := createTestUser(t, db, "reader")
		repo := notes.NewRepository(db.DB)
		router := newNotesRouter(repo, user.ID)

		first := noteRequest{Book: "JHN", Chapter: 3, Verse: 16, Content: "first draft"}
		second := noteRequest{Book: "JHN", Chapter: 3, Verse: 16, Content: "revised"}

		for _, body := range []noteRequest{first, second} {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest("POST", "/api/notes", noteBody(t, body))
			router.ServeHTTP(w, req)
			require.Equal(t, http.StatusCreated, w.Code)
		}

		verseNotes, err := repo.ListByVerse(user.ID, notes.Coordinate{Book: "JHN", Chapter: 3, Verse: 16})
		require.NoError(t, err)
		require.Len(t, verseNotes, 1)
		assert.Equal(t, "revised", verseNotes[0].Content)
	})

	t.Run("rejects empty content", func(t *testing.T) {
		db, cleanup := setupTestDatabase(t)
		defer cleanup()

		user := createTestUser(t, db, "reader")
		router := newNotesRouter(notes.NewRepository(db.DB), user.ID)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/notes", bytes.NewReader([]byte(`{"book":"JHN","chapter":3,"verse":16}`)))
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestNotesController_ListNotes(t *testing.T) {
	t.Run("only lists the user's own notes", func(t *testing.T) {
		db, cleanup := setupTestDatabase(t)
		defer cleanup()

		alice := createTestUser(t, db, "alice")
		bob := createTestUser(t, db, "bob")
		repo := notes.NewRepository(db.DB)

		_, err := repo.Save(alice.ID, notes.Coordinate{Book: "PSA", Chapter: 23, Verse: 1}, "shepherd")
		require.NoError(t, err)
		_, err = repo.Save(bob.ID, notes.Coordinate{Book: "JHN", Chapter: 3, Verse: 16}, "love")
		require.NoError(t, err)

		router := newNotesRouter(repo, alice.ID)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/notes", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response struct {
			Notes []entities.Note `json:"notes"`
			Total int             `json:"total"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Len(t, response.Notes, 1)
		assert.Equal(t, "shepherd", response.Notes[0].Content)
	})
}

func TestNotesController_ListVerseNotes(t *testing.T) {
	t.Run("filters by verse coordinate", func(t *testing.T) {
		db, cleanup := setupTestDatabase(t)
		defer cleanup()

		user := createTestUser(t, db, "reader")
		repo := notes.NewRepository(db.DB)

		_, err := repo.Save(user.ID, notes.Coordinate{Book: "JHN", Chapter: 3, Verse: 16}, "on the verse")
		require.NoError(t, err)
		_, err = repo.Save(user.ID, notes.Coordinate{Book: "JHN", Chapter: 3, Verse: 17}, "next verse")
		require.NoError(t, err)

		router := newNotesRouter(repo, user.ID)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/notes/verse?book=JHN&chapter=3&verse=16", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response struct {
			Notes []entities.Note `json:"notes"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Len(t, response.Notes, 1)
		assert.Equal(t, "on the verse", response.Notes[0].Content)
	})
}

func TestNotesController_GetNote(t *testing.T) {
	t.Run("returns 404 for a missing note", func(t *testing.T) {
		db, cleanup := setupTestDatabase(t)
		defer cleanup()

		user := createTestUser(t, db, "reader")
		router := newNotesRouter(notes.NewRepository(db.DB), user.ID)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/notes/999", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("returns 403 for another user's note", func(t *testing.T) {
		db, cleanup := setupTestDatabase(t)
		defer cleanup()

		alice := createTestUser(t, db, "alice")
		bob := createTestUser(t, db, "bob")
		repo := notes.NewRepository(db.DB)

		note, err := repo.Save(bob.ID, notes.Coordinate{Book: "JHN", Chapter: 3, Verse: 16}, "private")
		require.NoError(t, err)

		router := newNotesRouter(repo, alice.ID)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", fmt.Sprintf("/api/notes/%d", note.ID), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestNotesController_UpdateNote(t *testing.T) {
	t.Run("changes the content", func(t *testing.T) {
		db, cleanup := setupTestDatabase(t)
		defer cleanup()

		user := createTestUser(t, db, "reader")
		repo := notes.NewRepository(db.DB)
		note, err := repo.Save(user.ID, notes.Coordinate{Book: "JHN", Chapter: 3, Verse: 16}, "draft")
		require.NoError(t, err)

		router := newNotesRouter(repo, user.ID)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PUT", fmt.Sprintf("/api/notes/%d", note.ID),
			bytes.NewReader([]byte(`{"content":"final"}`)))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		updated, err := repo.GetByID(note.ID, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "final", updated.Content)
	})

	t.Run("cannot update another user's note", func(t *testing.T) {
		db, cleanup := setupTestDatabase(t)
		defer cleanup()

		alice := createTestUser(t, db, "alice")
		bob := createTestUser(t, db, "bob")
		repo := notes.NewRepository(db.DB)

		note, err := repo.Save(bob.ID, notes.Coordinate{Book: "JHN", Chapter: 3, Verse: 16}, "private")
		require.NoError(t, err)

		router := newNotesRouter(repo, alice.ID)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PUT", fmt.Sprintf("/api/notes/%d", note.ID),
			bytes.NewReader([]byte(`{"content":"hijacked"}`)))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)

		unchanged, err := repo.GetByID(note.ID, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, "private", unchanged.Content)
	})
}

func TestNotesController_DeleteNote(t *testing.T) {
	t.Run("removes the note", func(t *testing.T) {
		db, cleanup := setupTestDatabase(t)
		defer cleanup()

		user := createTestUser(t, db, "reader")
		repo := notes.NewRepository(db.DB)
		note, err := repo.Save(user.ID, notes.Coordinate{Book: "JHN", Chapter: 3, Verse: 16}, "to delete")
		require.NoError(t, err)

		router := newNotesRouter(repo, user.ID)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", fmt.Sprintf("/api/notes/%d", note.ID), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		_, err = repo.GetByID(note.ID, user.ID)
		assert.ErrorIs(t, err, notes.ErrNotFound)
	})
}
