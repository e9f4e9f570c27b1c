package extractor

import (
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/ledongthuc/pdf"
	log "github.com/sirupsen/logrus"

	"github.com/UmerFruit/umers-expense-buddy-sub000/internal/models"
)

var initOnce sync.Once

// EnsureInit performs the one-time setup of the underlying PDF library.
// Safe to call from multiple goroutines; ExtractGlyphs calls it implicitly.
func EnsureInit() {
	initOnce.Do(func() {
		pdf.DebugOn = false
	})
}

// ExtractGlyphs reads a PDF file and returns the positioned text fragments
// of each page, in page order. The runs are unordered within a page; the
// reconstructor is responsible for recovering line structure.
func ExtractGlyphs(filePath string) (pages [][]models.GlyphRun, err error) {
	EnsureInit()

	// The pdf library panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("PDF library crashed: %v", r)
		}
	}()

	f, r, openErr := pdf.Open(filePath)
	if openErr != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", openErr)
	}
	defer f.Close()

	numPages := r.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("PDF has no pages")
	}

	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content := page.Content()
		runs := make([]models.GlyphRun, 0, len(content.Text))
		for _, t := range content.Text {
			runs = append(runs, models.GlyphRun{Text: t.S, X: t.X, Y: t.Y})
		}
		pages = append(pages, runs)
	}

	log.WithFields(log.Fields{"file": filePath, "pages": len(pages)}).
		Debug("extracted glyph runs from PDF")

	return pages, nil
}

// commonWords that appear in virtually all bank and wallet statements.
// If reconstructed text contains none of these, extraction likely produced
// garbage (custom font encodings, image-based pages).
var commonWords = []string{
	"bank", "account", "balance", "date", "statement", "total", "amount",
	"credit", "debit", "transaction", "transfer", "paid", "received",
	"opening", "closing", "fee", "rs", "pkr", "iban",
}

// IsReadableText checks that reconstructed text is long enough, consists
// mostly of plain ASCII, and contains at least one word expected in a
// statement. Identity-encoded fonts decode into byte soup that would
// otherwise reach the parsers.
func IsReadableText(text string) bool {
	if len(strings.TrimSpace(text)) <= 50 {
		return false
	}
	if textQuality(text) <= 0.6 {
		return false
	}
	lower := strings.ToLower(text)
	for _, word := range commonWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

// textQuality returns the ratio of basic readable characters to total
// characters. unicode.IsLetter would also count the accented garbage
// produced by identity-encoded fonts, so the check stays at plain ASCII.
func textQuality(text string) float64 {
	total := 0
	readable := 0
	for _, r := range text {
		total++
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || unicode.IsSpace(r) ||
			strings.ContainsRune(".,-/:;()'\"%&@#!?+=*", r) ||
			r == '£' || r == '$' || r == '€' {
			readable++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(readable) / float64(total)
}
