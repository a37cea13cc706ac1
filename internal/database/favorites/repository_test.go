package favorites

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
	dbPath := "./test_favorites_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.User{}, &entities.Favorite{})
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

func john316(translation string) Coordinate {
	return Coordinate{Book: "John", Chapter: 3, Verse: 16, Translation: translation}
}

func TestRepository_AddAndList(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	user := createTestUser(t, db, "reader")

	fav, err := repo.Add(user.ID, john316("web"), "For God so loved the world...")
	require.NoError(t, err)
	assert.NotZero(t, fav.ID)

	favs, err := repo.ListByUser(user.ID)
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, "John", favs[0].Book)
	assert.Equal(t, "web", favs[0].Translation)
}

func TestRepository_Add_DuplicateRejected(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	user := createTestUser(t, db, "reader")

	_, err := repo.Add(user.ID, john316("web"), "text")
	require.NoError(t, err)

	_, err = repo.Add(user.ID, john316("web"), "text")
	assert.ErrorIs(t, err, ErrDuplicate)

	var count int64
	db.Model(&entities.Favorite{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRepository_Add_DifferentTranslationAllowed(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	user := createTestUser(t, db, "reader")

	_, err := repo.Add(user.ID, john316("web"), "text")
	require.NoError(t, err)
	_, err = repo.Add(user.ID, john316("kjv"), "text")
	require.NoError(t, err)

	favs, err := repo.ListByUser(user.ID)
	require.NoError(t, err)
	assert.Len(t, favs, 2)
}

func TestRepository_Add_ScopedPerUser(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	_, err := repo.Add(alice.ID, john316("web"), "text")
	require.NoError(t, err)
	_, err = repo.Add(bob.ID, john316("web"), "text")
	require.NoError(t, err)

	favs, err := repo.ListByUser(alice.ID)
	require.NoError(t, err)
	assert.Len(t, favs, 1)
}

func TestRepository_Remove(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	user := createTestUser(t, db, "reader")
	_, err := repo.Add(user.ID, john316("web"), "text")
	require.NoError(t, err)

	require.NoError(t, repo.Remove(user.ID, john316("web")))

	favs, err := repo.ListByUser(user.ID)
	require.NoError(t, err)
	assert.Empty(t, favs)
}

func TestRepository_Remove_Missing(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	user := createTestUser(t, db, "reader")

	err := repo.Remove(user.ID, john316("web"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_IsFavorite(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	user := createTestUser(t, db, "reader")

	fav, err := repo.IsFavorite(user.ID, john316("web"))
	require.NoError(t, err)
	assert.False(t, fav)

	_, err = repo.Add(user.ID, john316("web"), "text")
	require.NoError(t, err)

	fav, err = repo.IsFavorite(user.ID, john316("web"))
	require.NoError(t, err)
	assert.True(t, fav)
}

func TestRepository_Toggle(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	user := createTestUser(t, db, "reader")

	favorited, err := repo.Toggle(user.ID, john316("web"), "text")
	require.NoError(t, err)
	assert.True(t, favorited)

	favorited, err = repo.Toggle(user.ID, john316("web"), "text")
	require.NoError(t, err)
	assert.False(t, favorited)

	var count int64
	db.Model(&entities.Favorite{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestRepository_ListMissingText(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	user := createTestUser(t, db, "reader")

	_, err := repo.Add(user.ID, john316("web"), "has text")
	require.NoError(t, err)
	empty, err := repo.Add(user.ID, Coordinate{Book: "Psalms", Chapter: 23, Verse: 1, Translation: "web"}, "")
	require.NoError(t, err)

	missing, err := repo.ListMissingText(10)
	require.NoError(t, err)
	require.Len(t, missing, 1)
	assert.Equal(t, empty.ID, missing[0].ID)
}

func TestRepository_UpdateText(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	user := createTestUser(t, db, "reader")
	fav, err := repo.Add(user.ID, john316("web"), "")
	require.NoError(t, err)

	require.NoError(t, repo.UpdateText(fav.ID, "For God so loved the world..."))

	var updated entities.Favorite
	db.First(&updated, fav.ID)
	assert.Equal(t, "For God so loved the world...", updated.VerseText)

	assert.ErrorIs(t, repo.UpdateText(9999, "x"), ErrNotFound)
}
