// Package verseofday selects and serves a daily featured verse.
package verseofday

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nwestberg/lectio/internal/bible"
	"github.com/nwestberg/lectio/internal/database/verselikes"
)

// DailyVerse is the verse of the day with its fetched text.
type DailyVerse struct {
	Reference   string `json:"reference"`
	Book        string `json:"book"`
	Chapter     int    `json:"chapter"`
	Verse       int    `json:"verse"`
	Translation string `json:"translation"`
	Text        string `json:"text"`
	Date        string `json:"date"`
}

// Service picks the verse of the day and caches its text so only the
// first request of a day (or the scheduler) hits the Bible API.
type Service struct {
	client      *bible.Client
	translation string

	mu     sync.RWMutex
	cached *DailyVerse
}

// NewService creates a verse-of-the-day service.
func NewService(client *bible.Client, translation string) *Service {
	return &Service{
		client:      client,
		translation: translation,
	}
}

// PickForDate returns the reference chosen for a calendar date.
// The same date always yields the same reference.
func PickForDate(date time.Time) Reference {
	idx := (date.Year()*366 + date.YearDay()) % len(references)
	return references[idx]
}

// Coordinate returns the like coordinate for the date's verse.
func (s *Service) Coordinate(date time.Time) verselikes.Coordinate {
	ref := PickForDate(date)
	return verselikes.Coordinate{
		Book:        ref.Book,
		Chapter:     ref.Chapter,
		Verse:       ref.Verse,
		Translation: s.translation,
	}
}

// Get returns the verse of the day for now, fetching and caching its
// text on the first call of the day.
func (s *Service) Get(ctx context.Context, now time.Time) (*DailyVerse, error) {
	day := now.Format("2006-01-02")

	s.mu.RLock()
	if s.cached != nil && s.cached.Date == day {
		cached := *s.cached
		s.mu.RUnlock()
		return &cached, nil
	}
	s.mu.RUnlock()

	return s.fetch(ctx, now)
}

// Refresh fetches today's verse unconditionally, replacing the cache.
// Called by the scheduler at the start of each day.
func (s *Service) Refresh(ctx context.Context, now time.Time) error {
	_, err := s.fetch(ctx, now)
	return err
}

func (s *Service) fetch(ctx context.Context, now time.Time) (*DailyVerse, error) {
	ref := PickForDate(now)

	book := bible.FindBook(ref.Book)
	if book == nil {
		return nil, fmt.Errorf("verse of day references unknown book %q", ref.Book)
	}

	verse, err := s.client.GetVerse(ctx, s.translation, book.ID, ref.Chapter, ref.Verse)
	if err != nil {
		return nil, fmt.Errorf("fetch verse of day: %w", err)
	}

	daily := &DailyVerse{
		Reference:   fmt.Sprintf("%s %d:%d", ref.Book, ref.Chapter, ref.Verse),
		Book:        ref.Book,
		Chapter:     ref.Chapter,
		Verse:       ref.Verse,
		Translation: s.translation,
		Text:        verse.Text,
		Date:        now.Format("2006-01-02"),
	}

	s.mu.Lock()
	s.cached = daily
	s.mu.Unlock()

	out := *daily
	return &out, nil
}
