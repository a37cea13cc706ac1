package tasks

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/mikestefanello/backlite"

	"github.com/nwestberg/lectio/internal/bible"
	"github.com/nwestberg/lectio/internal/database/favorites"
)

// BackfillVerseTextTask fetches the text of a favorited verse from the
// Bible API and caches it on the favorite row. Favorites saved while the
// API was unreachable get their text filled in here instead of blocking
// the save request.
type BackfillVerseTextTask struct {
	FavoriteID  uint   `json:"favorite_id"`
	Book        string `json:"book"`
	Chapter     int    `json:"chapter"`
	Verse       int    `json:"verse"`
	Translation string `json:"translation"`
}

// Config returns the queue configuration for verse text backfill tasks.
func (t BackfillVerseTextTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "backfill_verse_text",
		MaxAttempts: queueSettings.MaxRetries,
		Backoff:     queueSettings.RetryDelay,
		Timeout:     queueSettings.TaskTimeout,
		Retention: &backlite.Retention{
			Duration:   queueSettings.RetentionDuration,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// BackfillVerseTextProcessor creates a processor function for BackfillVerseTextTask.
func BackfillVerseTextProcessor(repo *favorites.Repository, client *bible.Client) backlite.QueueProcessor[BackfillVerseTextTask] {
	return func(ctx context.Context, task BackfillVerseTextTask) error {
		book := bible.FindBook(task.Book)
		if book == nil {
			// Unknown book name cannot succeed on retry
			log.Printf("[TASK] Skipping backfill for favorite %d: unknown book %q", task.FavoriteID, task.Book)
			return nil
		}

		verse, err := client.GetVerse(ctx, task.Translation, book.ID, task.Chapter, task.Verse)
		if err != nil {
			if apiErr, ok := bible.AsAPIError(err); ok && apiErr.StatusCode == 404 {
				log.Printf("[TASK] Skipping backfill for favorite %d: verse not found upstream", task.FavoriteID)
				return nil
			}
			return fmt.Errorf("fetch verse for favorite %d: %w", task.FavoriteID, err)
		}

		if err := repo.UpdateText(task.FavoriteID, verse.Text); err != nil {
			if errors.Is(err, favorites.ErrNotFound) {
				// Favorite was removed while the task was queued
				return nil
			}
			return fmt.Errorf("update favorite %d: %w", task.FavoriteID, err)
		}

		log.Printf("[TASK] Backfilled verse text for favorite %d (%s %d:%d)",
			task.FavoriteID, task.Book, task.Chapter, task.Verse)
		return nil
	}
}

// NewBackfillVerseTextQueue creates a backlite queue for verse text backfill tasks.
func NewBackfillVerseTextQueue(repo *favorites.Repository, client *bible.Client) backlite.Queue {
	return backlite.NewQueue(BackfillVerseTextProcessor(repo, client))
}

// BackfillSweepTask scans for favorites missing cached verse text and
// enqueues a backfill task for each. Run at startup and from the scheduler.
type BackfillSweepTask struct{}

// Config returns the queue configuration for backfill sweep tasks.
// Sweeps only enqueue work, so they get fewer attempts than the
// backfills themselves.
func (t BackfillSweepTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "backfill_sweep",
		MaxAttempts: 2,
		Backoff:     queueSettings.RetryDelay,
		Timeout:     queueSettings.TaskTimeout,
		Retention: &backlite.Retention{
			Duration: queueSettings.RetentionDuration,
		},
	}
}

// BackfillSweepProcessor creates a processor function for BackfillSweepTask.
func BackfillSweepProcessor(repo *favorites.Repository, taskClient *Client) backlite.QueueProcessor[BackfillSweepTask] {
	return func(ctx context.Context, task BackfillSweepTask) error {
		missing, err := repo.ListMissingText(100)
		if err != nil {
			return fmt.Errorf("list favorites missing text: %w", err)
		}
		if len(missing) == 0 {
			return nil
		}

		for _, fav := range missing {
			_, err := taskClient.Add(BackfillVerseTextTask{
				FavoriteID:  fav.ID,
				Book:        fav.Book,
				Chapter:     fav.Chapter,
				Verse:       fav.Verse,
				Translation: fav.Translation,
			}).Save()
			if err != nil {
				return fmt.Errorf("enqueue backfill for favorite %d: %w", fav.ID, err)
			}
		}

		log.Printf("[TASK] Enqueued %d verse text backfills", len(missing))
		return nil
	}
}

// NewBackfillSweepQueue creates a backlite queue for backfill sweep tasks.
func NewBackfillSweepQueue(repo *favorites.Repository, taskClient *Client) backlite.Queue {
	return backlite.NewQueue(BackfillSweepProcessor(repo, taskClient))
}
