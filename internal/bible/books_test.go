package bible

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBooksCatalogue(t *testing.T) {
	require.Len(t, Books, 66)

	ot, nt := 0, 0
	for _, b := range Books {
		assert.NotEmpty(t, b.Name)
		assert.Len(t, b.ID, 3)
		assert.Greater(t, b.Chapters, 0)
		switch b.Testament {
		case OldTestament:
			ot++
		case NewTestament:
			nt++
		default:
			t.Fatalf("book %s has unknown testament %q", b.Name, b.Testament)
		}
	}
	assert.Equal(t, 39, ot)
	assert.Equal(t, 27, nt)
}

func TestFindBook(t *testing.T) {
	b := FindBook("Genesis")
	require.NotNil(t, b)
	assert.Equal(t, "GEN", b.ID)
	assert.Equal(t, 50, b.Chapters)

	b = FindBook("psa")
	require.NotNil(t, b)
	assert.Equal(t, "Psalms", b.Name)

	b = FindBook("JOHN")
	require.NotNil(t, b)
	assert.Equal(t, "JHN", b.ID)

	assert.Nil(t, FindBook("Hezekiah"))
}

func TestValidChapter(t *testing.T) {
	b := FindBook("JHN")
	require.NotNil(t, b)

	assert.True(t, b.ValidChapter(1))
	assert.True(t, b.ValidChapter(21))
	assert.False(t, b.ValidChapter(0))
	assert.False(t, b.ValidChapter(22))
	assert.False(t, b.ValidChapter(-3))
}
