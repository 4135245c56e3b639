package service

import (
	"context"
	"html"
	"html/template"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"fairway-content-backend/internal/blocks"
	"fairway-content-backend/internal/models"
	"fairway-content-backend/internal/readtime"
	"fairway-content-backend/internal/sanitizer"
	"fairway-content-backend/pkg/logger"
	"fairway-content-backend/pkg/utils"
	"fairway-content-backend/pkg/validator"
)

type ContentServiceOptions struct {
	Development    bool
	Logger         logrus.FieldLogger
	ClassPrefix    string
	WordsPerMinute int
	MaxBlocks      int
	ExcerptLength  int
}

// Heading is one table-of-contents entry. Anchor matches the id rendered on
// the heading element.
type Heading struct {
	Level  int    `json:"level"`
	Text   string `json:"text"`
	Anchor string `json:"anchor,omitempty"`
}

type Document struct {
	Units    []blocks.Unit `json:"units"`
	HTML     template.HTML `json:"html"`
	ReadTime string        `json:"read_time"`
	Minutes  int           `json:"minutes"`
	Words    int           `json:"words"`
	Excerpt  string        `json:"excerpt,omitempty"`
	Headings []Heading     `json:"headings"`
	Skipped  int           `json:"skipped"`
}

type ContentService struct {
	dispatcher    *blocks.Dispatcher
	sanitizer     *sanitizer.Sanitizer
	estimator     readtime.Estimator
	maxBlocks     int
	excerptLength int
}

func NewContentService(registry *blocks.Registry, opts ContentServiceOptions) *ContentService {
	initMetrics()

	clean := &sanitizer.Sanitizer{OnSanitize: func() { sanitizedFragments.Inc() }}
	dispatcher := blocks.NewDispatcher(registry, blocks.Options{
		Development: opts.Development,
		Logger:      opts.Logger,
		ClassPrefix: opts.ClassPrefix,
		Sanitizer:   clean,
	})

	return &ContentService{
		dispatcher:    dispatcher,
		sanitizer:     clean,
		estimator:     readtime.New(opts.WordsPerMinute),
		maxBlocks:     opts.MaxBlocks,
		excerptLength: opts.ExcerptLength,
	}
}

func (s *ContentService) RenderDocument(ctx context.Context, content []models.Block) (*Document, error) {
	if err := s.checkLimit(content); err != nil {
		documentsRenderTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	units, report := s.dispatcher.RenderWithReport(content)
	s.observe(report)
	documentBlocks.Observe(float64(len(content)))
	documentsRenderTotal.WithLabelValues("rendered").Inc()

	if report.Failed > 0 || report.Unknown > 0 {
		logger.FromContext(ctx).WithFields(logrus.Fields{
			"blocks":  len(content),
			"failed":  report.Failed,
			"unknown": report.Unknown,
		}).Debug("Document rendered with omitted blocks")
	}

	var body strings.Builder
	for _, unit := range units {
		body.WriteString(string(unit.HTML))
	}

	estimate := s.estimator.FromBlocks(content)

	return &Document{
		Units:    units,
		HTML:     template.HTML(body.String()),
		ReadTime: estimate.Label(),
		Minutes:  estimate.Minutes,
		Words:    estimate.Words,
		Excerpt:  s.excerpt(content, report),
		Headings: tableOfContents(content, report),
		Skipped:  len(content) - len(units),
	}, nil
}

func (s *ContentService) Sanitize(_ context.Context, input string) string {
	return s.sanitizer.SanitizeHTML(input)
}

func (s *ContentService) EstimateText(_ context.Context, text string) readtime.Estimate {
	return s.estimator.FromText(text)
}

func (s *ContentService) EstimateBlocks(_ context.Context, content []models.Block) (readtime.Estimate, error) {
	if err := s.checkLimit(content); err != nil {
		return readtime.Estimate{}, err
	}
	return s.estimator.FromBlocks(content), nil
}

func (s *ContentService) BlockTypes() []string {
	return s.dispatcher.Registry().Types()
}

// AllowedTags lists the markup tags paragraph and list HTML may keep.
func (s *ContentService) AllowedTags() []string {
	return sanitizer.AllowedTags()
}

func (s *ContentService) checkLimit(content []models.Block) error {
	if s.maxBlocks > 0 && len(content) > s.maxBlocks {
		return newTooManyBlocksError(len(content), s.maxBlocks)
	}
	return nil
}

func (s *ContentService) observe(report blocks.Report) {
	for _, outcome := range report.Outcomes {
		blockType := outcome.Type
		if outcome.Status == blocks.StatusUnknown || outcome.Status == blocks.StatusSkipped {
			blockType = string(models.BlockUnknown)
		}
		blocksTotal.WithLabelValues(blockType, string(outcome.Status)).Inc()
	}
}

// excerpt uses the first rendered paragraph that has any visible text.
func (s *ContentService) excerpt(content []models.Block, report blocks.Report) string {
	for _, outcome := range report.Outcomes {
		if outcome.Status != blocks.StatusRendered {
			continue
		}
		paragraph, ok := content[outcome.Index].(models.ParagraphBlock)
		if !ok {
			continue
		}
		text := html.UnescapeString(validator.SanitizeString(sanitizer.Sanitize(paragraph.HTML)))
		text = validator.NormalizeSpaces(text)
		if text != "" {
			return truncateWords(text, s.excerptLength)
		}
	}
	return ""
}

// tableOfContents replays anchor generation in render order so anchors match
// the ids on the rendered headings.
func tableOfContents(content []models.Block, report blocks.Report) []Heading {
	anchors := utils.NewSlugSet()
	headings := make([]Heading, 0)
	for _, outcome := range report.Outcomes {
		if outcome.Status != blocks.StatusRendered {
			continue
		}
		heading, ok := content[outcome.Index].(models.HeadingBlock)
		if !ok {
			continue
		}
		headings = append(headings, Heading{
			Level:  heading.Level,
			Text:   heading.Text,
			Anchor: anchors.Next(heading.Text),
		})
	}
	return headings
}

func truncateWords(text string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}

	cut := string([]rune(text)[:limit])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}
