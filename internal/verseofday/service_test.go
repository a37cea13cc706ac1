package verseofday

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nwestberg/lectio/internal/bible"
)

func TestPickForDate_Deterministic(t *testing.T) {
	date := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)
	sameDayLater := time.Date(2024, 3, 15, 23, 59, 0, 0, time.UTC)

	assert.Equal(t, PickForDate(date), PickForDate(sameDayLater))
}

func TestPickForDate_ChangesAcrossDays(t *testing.T) {
	d1 := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 1)

	assert.NotEqual(t, PickForDate(d1), PickForDate(d2))
}

func TestReferences_AllResolveToKnownBooks(t *testing.T) {
	for _, ref := range references {
		book := bible.FindBook(ref.Book)
		require.NotNil(t, book, "unknown book %q", ref.Book)
		assert.True(t, book.ValidChapter(ref.Chapter), "%s has no chapter %d", ref.Book, ref.Chapter)
	}
}

func TestService_GetCachesWithinDay(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chapterWithEveryVerse())
	}))
	defer server.Close()

	svc := NewService(newTestBibleClient(server.URL), "web")
	now := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)

	first, err := svc.Get(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", first.Date)
	assert.NotEmpty(t, first.Text)

	second, err := svc.Get(context.Background(), now.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, first.Reference, second.Reference)

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "second call should be served from cache")
}

func TestService_GetRefetchesOnNewDay(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chapterWithEveryVerse())
	}))
	defer server.Close()

	svc := NewService(newTestBibleClient(server.URL), "web")
	day1 := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)

	_, err := svc.Get(context.Background(), day1)
	require.NoError(t, err)

	next, err := svc.Get(context.Background(), day1.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, "2024-03-16", next.Date)

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestService_GetPropagatesUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	svc := NewService(newTestBibleClient(server.URL), "web")

	_, err := svc.Get(context.Background(), time.Now())
	require.Error(t, err)
}

func newTestBibleClient(baseURL string) *bible.Client {
	return bible.NewClient(
		bible.WithBaseURL(baseURL),
		bible.WithRateLimitInterval(0),
	)
}

// chapterWithEveryVerse builds a chapter response dense enough that any
// picked reference finds its verse number.
func chapterWithEveryVerse() bible.Chapter {
	ch := bible.Chapter{
		Translation: bible.Translation{Identifier: "web"},
	}
	for i := 1; i <= 200; i++ {
		ch.Verses = append(ch.Verses, bible.Verse{
			Chapter: 1,
			Verse:   i,
			Text:    "verse text",
		})
	}
	return ch
}
