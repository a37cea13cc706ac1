// Package bible is a client for the bible-api.com verse content service.
//
// Chapter text is fetched on demand and never persisted locally; callers get
// the upstream payload or an APIError carrying the upstream HTTP status so
// the request layer can pass it through.
package bible

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"
)

const userAgent = "Lectio/1.0 (https://github.com/nwestberg/lectio)"

// APIError is a non-success response from the upstream verse provider.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("bible api: HTTP %d: %s", e.StatusCode, e.Message)
}

// AsAPIError unwraps an APIError from err, if there is one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// Verse is a single verse as returned by the data endpoints.
type Verse struct {
	BookID  string `json:"book_id"`
	Book    string `json:"book"`
	Chapter int    `json:"chapter"`
	Verse   int    `json:"verse"`
	Text    string `json:"text"`
}

// Translation describes an available text edition.
type Translation struct {
	Identifier   string `json:"identifier"`
	Name         string `json:"name"`
	Language     string `json:"language"`
	LanguageCode string `json:"language_code"`
	License      string `json:"license"`
}

// Chapter is a full chapter of verses in one translation.
type Chapter struct {
	Translation Translation `json:"translation"`
	Verses      []Verse     `json:"verses"`
}

type randomVerseResponse struct {
	Translation Translation `json:"translation"`
	RandomVerse Verse       `json:"random_verse"`
}

type translationsResponse struct {
	Translations []Translation `json:"translations"`
}

// Client fetches verse content from bible-api.com.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rateLimiter
}

type rateLimiter struct {
	mu       sync.Mutex
	lastCall time.Time
	interval time.Duration
}

func newRateLimiter(interval time.Duration) *rateLimiter {
	return &rateLimiter{interval: interval}
}

func (r *rateLimiter) wait() {
	r.mu.Lock()
	defer r.mu.Unlock()

	since := time.Since(r.lastCall)
	if since < r.interval {
		time.Sleep(r.interval - since)
	}
	r.lastCall = time.Now()
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the upstream URL (used by tests and proxies).
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithTimeout overrides the request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = timeout }
}

// WithRateLimitInterval overrides the minimum spacing between calls.
func WithRateLimitInterval(interval time.Duration) Option {
	return func(c *Client) { c.rateLimiter = newRateLimiter(interval) }
}

// NewClient creates a bible-api.com client with a bounded request timeout
// and polite rate limiting.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:     "https://bible-api.com",
		rateLimiter: newRateLimiter(time.Second),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) get(ctx context.Context, url string, out any) error {
	c.rateLimiter.wait()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// GetChapter fetches a full chapter. The book parameter is the API book ID
// (e.g. "JHN"); use FindBook to map display names.
func (c *Client) GetChapter(ctx context.Context, translation, bookID string, chapter int) (*Chapter, error) {
	url := fmt.Sprintf("%s/data/%s/%s/%d", c.baseURL, translation, bookID, chapter)

	var ch Chapter
	if err := c.get(ctx, url, &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

// GetVerse fetches a single verse out of its chapter.
func (c *Client) GetVerse(ctx context.Context, translation, bookID string, chapter, verse int) (*Verse, error) {
	ch, err := c.GetChapter(ctx, translation, bookID, chapter)
	if err != nil {
		return nil, err
	}
	for i := range ch.Verses {
		if ch.Verses[i].Verse == verse {
			return &ch.Verses[i], nil
		}
	}
	return nil, &APIError{StatusCode: http.StatusNotFound, Message: "verse not found in chapter"}
}

// GetRandomVerse fetches one random verse in the translation.
func (c *Client) GetRandomVerse(ctx context.Context, translation string) (*Verse, error) {
	url := fmt.Sprintf("%s/data/%s/random", c.baseURL, translation)

	var resp randomVerseResponse
	if err := c.get(ctx, url, &resp); err != nil {
		return nil, err
	}
	return &resp.RandomVerse, nil
}

// ListTranslations fetches the editions the upstream service offers.
func (c *Client) ListTranslations(ctx context.Context) ([]Translation, error) {
	var resp translationsResponse
	if err := c.get(ctx, c.baseURL+"/data", &resp); err != nil {
		return nil, err
	}
	return resp.Translations, nil
}
