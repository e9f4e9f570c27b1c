package extractor

import (
	"math"
	"sort"
	"strings"

	"github.com/UmerFruit/umers-expense-buddy-sub000/internal/models"
)

// yTolerance is the vertical band (in page units) within which glyph runs
// are treated as belonging to the same visual row. PDF content streams do
// not guarantee reading order, and runs on one row rarely share an exact
// baseline.
const yTolerance = 5.0

// Reconstruct orders the glyph runs of a single page into logical lines:
// top of page first (descending Y), left to right within a row. Runs whose
// Y coordinates differ by at most yTolerance are merged into one line,
// joined with single spaces. Returns "" for an empty page; empty-document
// detection happens downstream, not here.
func Reconstruct(runs []models.GlyphRun) string {
	items := make([]models.GlyphRun, 0, len(runs))
	for _, r := range runs {
		if strings.TrimSpace(r.Text) != "" {
			items = append(items, r)
		}
	}
	if len(items) == 0 {
		return ""
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if math.Abs(a.Y-b.Y) <= yTolerance {
			return a.X < b.X
		}
		return a.Y > b.Y
	})

	var lines []string
	var current []string
	refY := items[0].Y

	flush := func() {
		if line := strings.TrimSpace(strings.Join(current, " ")); line != "" {
			lines = append(lines, line)
		}
		current = current[:0]
	}

	for _, it := range items {
		if math.Abs(it.Y-refY) > yTolerance {
			flush()
			refY = it.Y
		}
		current = append(current, strings.TrimSpace(it.Text))
	}
	flush()

	return strings.Join(lines, "\n")
}

// ReconstructPages reconstructs every page and concatenates the results in
// page order, one page's lines after the previous page's.
func ReconstructPages(pages [][]models.GlyphRun) string {
	var parts []string
	for _, runs := range pages {
		if text := Reconstruct(runs); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n")
}
