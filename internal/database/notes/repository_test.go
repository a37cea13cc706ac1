package notes

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nwestberg/lectio/internal/entities"
)

func setupTestDB(t *testing.T) (*gorm.DB, *Repository, func()) {
	dbPath := "./test_notes_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.User{}, &entities.Note{})
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return db, repo, cleanup
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *entities.User {
	user := &entities.User{Username: username, PasswordHash: "x"}
	require.NoError(t, db.Create(user).Error)
	return user
}

var john316 = Coordinate{Book: "John", Chapter: 3, Verse: 16}

func TestRepository_CreateAndListByVerse(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	user := createTestUser(t, db, "reader")

	n, err := repo.Create(user.ID, john316, "what a verse")
	require.NoError(t, err)
	assert.NotZero(t, n.ID)

	ns, err := repo.ListByVerse(user.ID, john316)
	require.NoError(t, err)
	require.Len(t, ns, 1)
	assert.Equal(t, "what a verse", ns[0].Content)
}

func TestRepository_MultipleNotesPerVerseAllowed(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	user := createTestUser(t, db, "reader")

	_, err := repo.Create(user.ID, john316, "first")
	require.NoError(t, err)
	_, err = repo.Create(user.ID, john316, "second")
	require.NoError(t, err)

	ns, err := repo.ListByVerse(user.ID, john316)
	require.NoError(t, err)
	assert.Len(t, ns, 2)
}

func TestRepository_Save_ReplacesExistingNotes(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	user := createTestUser(t, db, "reader")

	_, err := repo.Create(user.ID, john316, "first")
	require.NoError(t, err)
	_, err = repo.Create(user.ID, john316, "second")
	require.NoError(t, err)

	saved, err := repo.Save(user.ID, john316, "replacement")
	require.NoError(t, err)

	ns, err := repo.ListByVerse(user.ID, john316)
	require.NoError(t, err)
	require.Len(t, ns, 1)
	assert.Equal(t, saved.ID, ns[0].ID)
	assert.Equal(t, "replacement", ns[0].Content)
}

func TestRepository_Save_DoesNotTouchOtherVerses(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	user := createTestUser(t, db, "reader")
	other := Coordinate{Book: "John", Chapter: 3, Verse: 17}

	_, err := repo.Create(user.ID, other, "keep me")
	require.NoError(t, err)

	_, err = repo.Save(user.ID, john316, "new")
	require.NoError(t, err)

	ns, err := repo.ListByVerse(user.ID, other)
	require.NoError(t, err)
	assert.Len(t, ns, 1)
}

func TestRepository_Save_DoesNotTouchOtherUsers(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	_, err := repo.Create(bob.ID, john316, "bob's note")
	require.NoError(t, err)

	_, err = repo.Save(alice.ID, john316, "alice's note")
	require.NoError(t, err)

	ns, err := repo.ListByVerse(bob.ID, john316)
	require.NoError(t, err)
	require.Len(t, ns, 1)
	assert.Equal(t, "bob's note", ns[0].Content)
}

func TestRepository_ListByUser(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	user := createTestUser(t, db, "reader")

	_, err := repo.Create(user.ID, john316, "one")
	require.NoError(t, err)
	_, err = repo.Create(user.ID, Coordinate{Book: "Psalms", Chapter: 23, Verse: 1}, "two")
	require.NoError(t, err)

	ns, err := repo.ListByUser(user.ID)
	require.NoError(t, err)
	assert.Len(t, ns, 2)
}

func TestRepository_GetByID_OwnershipEnforced(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	n, err := repo.Create(alice.ID, john316, "private")
	require.NoError(t, err)

	_, err = repo.GetByID(n.ID, bob.ID)
	assert.ErrorIs(t, err, ErrNotOwner)

	_, err = repo.GetByID(9999, bob.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_Update(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	user := createTestUser(t, db, "reader")
	n, err := repo.Create(user.ID, john316, "draft")
	require.NoError(t, err)

	updated, err := repo.Update(n.ID, user.ID, "final")
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Content)
}

func TestRepository_Update_RejectsNonOwner(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	n, err := repo.Create(alice.ID, john316, "private")
	require.NoError(t, err)

	_, err = repo.Update(n.ID, bob.ID, "hijacked")
	assert.ErrorIs(t, err, ErrNotOwner)

	kept, err := repo.GetByID(n.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "private", kept.Content)
}

func TestRepository_Delete_RejectsNonOwner(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	n, err := repo.Create(alice.ID, john316, "private")
	require.NoError(t, err)

	assert.ErrorIs(t, repo.Delete(n.ID, bob.ID), ErrNotOwner)
	require.NoError(t, repo.Delete(n.ID, alice.ID))

	_, err = repo.GetByID(n.ID, alice.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
