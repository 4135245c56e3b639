// Package readtime derives "N min read" labels from article text or blocks.
package readtime

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"fairway-content-backend/internal/models"
	"fairway-content-backend/internal/sanitizer"
)

const DefaultWordsPerMinute = 200

// tagPattern matches tag markers only; it does not understand markup and is
// used purely to keep tag names out of the word count.
var tagPattern = regexp.MustCompile(`<[^>]+>`)

type Estimate struct {
	Words   int `json:"words"`
	Minutes int `json:"minutes"`
}

func (e Estimate) Label() string {
	return strconv.Itoa(e.Minutes) + " min read"
}

type Estimator struct {
	WordsPerMinute int
}

func New(wordsPerMinute int) Estimator {
	return Estimator{WordsPerMinute: wordsPerMinute}
}

func (e Estimator) FromText(text string) Estimate {
	return e.fromWords(CountWords(text))
}

func (e Estimator) FromBlocks(blocks []models.Block) Estimate {
	return e.FromText(ExtractText(blocks))
}

func (e Estimator) fromWords(words int) Estimate {
	wpm := e.WordsPerMinute
	if wpm <= 0 {
		wpm = DefaultWordsPerMinute
	}
	minutes := int(math.Round(float64(words) / float64(wpm)))
	if minutes < 1 {
		minutes = 1
	}
	return Estimate{Words: words, Minutes: minutes}
}

// EstimateText returns the label for raw text at the default reading speed.
func EstimateText(text string) string {
	return Estimator{}.FromText(text).Label()
}

// EstimateBlocks returns the label for a block sequence at the default reading speed.
func EstimateBlocks(blocks []models.Block) string {
	return Estimator{}.FromBlocks(blocks).Label()
}

func CountWords(text string) int {
	return len(strings.Fields(text))
}

// ExtractText flattens blocks into the plain text that counts towards reading time.
func ExtractText(blocks []models.Block) string {
	parts := make([]string, 0, len(blocks))
	for _, block := range blocks {
		parts = append(parts, blockText(block))
	}
	return strings.Join(parts, " ")
}

func blockText(block models.Block) string {
	switch b := block.(type) {
	case models.HeadingBlock:
		return b.Text
	case models.ParagraphBlock:
		// Counts what the reader sees: markup is sanitized before the tags are
		// stripped, so script and style bodies add no words.
		return StripTags(sanitizer.Sanitize(b.HTML))
	case models.ListBlock:
		return strings.Join(b.Items, " ")
	case models.QuoteBlock:
		if b.Caption == "" {
			return b.Text
		}
		return b.Text + " " + b.Caption
	case models.CodeBlock:
		return b.Code
	case models.ImageBlock:
		return b.Caption
	case models.EmbedBlock:
		return b.Caption
	default:
		return ""
	}
}

// StripTags replaces every tag marker in s with a single space.
func StripTags(s string) string {
	return tagPattern.ReplaceAllString(s, " ")
}
