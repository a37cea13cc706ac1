package http

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nwestberg/lectio/internal/bible"
)

type BibleController struct {
	client             ChapterFetcher
	defaultTranslation string
}

func NewBibleController(client ChapterFetcher, defaultTranslation string) *BibleController {
	return &BibleController{
		client:             client,
		defaultTranslation: defaultTranslation,
	}
}

// respondUpstreamError passes the upstream status code through to the
// client; transport failures become 502.
func respondUpstreamError(c *gin.Context, err error, context string) {
	if apiErr, ok := bible.AsAPIError(err); ok {
		c.JSON(apiErr.StatusCode, ErrorResponse{Error: apiErr.Message})
		return
	}
	log.Printf("Upstream error (%s): %v", context, err)
	c.JSON(http.StatusBadGateway, ErrorResponse{Error: "bible service unavailable"})
}

// ListBooks returns the canonical book catalogue.
// GET /api/bible/books
func (bc *BibleController) ListBooks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"books": bible.Books})
}

// ListTranslations returns the translations offered upstream.
// GET /api/bible/translations
func (bc *BibleController) ListTranslations(c *gin.Context) {
	translations, err := bc.client.ListTranslations(c.Request.Context())
	if err != nil {
		respondUpstreamError(c, err, "list translations")
		return
	}

	c.JSON(http.StatusOK, gin.H{"translations": translations})
}

// GetChapter proxies a chapter read from the Bible API.
// GET /api/bible/chapter/:book/:chapter
func (bc *BibleController) GetChapter(c *gin.Context) {
	book := bible.FindBook(c.Param("book"))
	if book == nil {
		respondNotFound(c, "book")
		return
	}

	chapter, err := strconv.Atoi(c.Param("chapter"))
	if err != nil {
		respondBadRequest(c, "invalid chapter")
		return
	}
	if !book.ValidChapter(chapter) {
		respondBadRequest(c, "chapter out of range")
		return
	}

	translation := c.Query("translation")
	if translation == "" {
		translation = bc.defaultTranslation
	}

	ch, err := bc.client.GetChapter(c.Request.Context(), translation, book.ID, chapter)
	if err != nil {
		respondUpstreamError(c, err, "get chapter")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"book":        book.Name,
		"book_id":     book.ID,
		"chapter":     chapter,
		"translation": ch.Translation,
		"verses":      ch.Verses,
	})
}
