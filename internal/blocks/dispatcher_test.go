package blocks

import (
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"fairway-content-backend/internal/models"
)

func newTestDispatcher(development bool) (*Dispatcher, *logtest.Hook) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return NewDispatcher(nil, Options{Development: development, Logger: logger}), hook
}

func TestRenderEmptySequence(t *testing.T) {
	d, _ := newTestDispatcher(false)
	if units := d.Render(nil); len(units) != 0 {
		t.Fatalf("expected no units for nil input, got %d", len(units))
	}
	if units := d.Render([]models.Block{}); len(units) != 0 {
		t.Fatalf("expected no units for empty input, got %d", len(units))
	}
}

func TestRenderSingleBlock(t *testing.T) {
	d, _ := newTestDispatcher(false)
	unit, ok := d.RenderBlock(models.DividerBlock{})
	if !ok {
		t.Fatalf("expected divider to render")
	}
	if unit.Type != "divider" || unit.Key != "divider" {
		t.Fatalf("unexpected unit identity: %+v", unit)
	}
	if string(unit.HTML) != `<hr class="article__divider" />` {
		t.Fatalf("unexpected divider markup: %s", unit.HTML)
	}

	units := d.Render([]models.Block{models.QuoteBlock{Text: "Drive for show"}})
	if len(units) != 1 {
		t.Fatalf("expected exactly one unit, got %d", len(units))
	}
}

func TestUnknownBlockInProductionIsSkipped(t *testing.T) {
	d, hook := newTestDispatcher(false)
	units, report := d.RenderWithReport([]models.Block{
		models.UnknownBlock{Type: "table", Fields: map[string]interface{}{"rows": 2}},
	})
	if len(units) != 0 {
		t.Fatalf("expected unknown block to be skipped, got %d units", len(units))
	}
	if report.Unknown != 1 {
		t.Fatalf("expected report to count one unknown block, got %+v", report)
	}
	if len(hook.AllEntries()) != 0 {
		t.Fatalf("expected no logging in production mode")
	}

	if _, ok := d.RenderBlock(models.UnknownBlock{Type: "table"}); ok {
		t.Fatalf("expected single unknown block to produce nothing")
	}
}

func TestUnknownBlockInDevelopmentShowsDiagnostic(t *testing.T) {
	d, hook := newTestDispatcher(true)
	units := d.Render([]models.Block{models.UnknownBlock{Type: "<table>"}})
	if len(units) != 1 {
		t.Fatalf("expected diagnostic unit, got %d", len(units))
	}
	if !units[0].Diagnostic {
		t.Fatalf("expected unit to be flagged as diagnostic")
	}
	html := string(units[0].HTML)
	if !strings.Contains(html, "[Unknown block: &lt;table&gt;]") {
		t.Fatalf("expected escaped type name in diagnostic, got %s", html)
	}
	if entry := hook.LastEntry(); entry == nil || entry.Level != logrus.WarnLevel {
		t.Fatalf("expected a warning to be logged, got %+v", entry)
	}
}

func TestMalformedBlockIsIsolated(t *testing.T) {
	d, hook := newTestDispatcher(true)
	blocks := []models.Block{
		models.HeadingBlock{Level: 2, Text: "Before"},
		models.HeadingBlock{Level: 9, Text: "Broken"},
		models.UnknownBlock{Type: "list", Err: errors.New("items: cannot unmarshal number")},
		models.ImageBlock{},
		models.ParagraphBlock{HTML: "After"},
	}

	units, report := d.RenderWithReport(blocks)
	if len(units) != 2 {
		t.Fatalf("expected 2 surviving units, got %d", len(units))
	}
	if units[0].Type != "heading" || units[1].Type != "paragraph" {
		t.Fatalf("expected order to be preserved, got %s then %s", units[0].Type, units[1].Type)
	}
	if report.Failed != 3 || report.Rendered != 2 {
		t.Fatalf("unexpected report: %+v", report)
	}
	for _, outcome := range report.Outcomes {
		if outcome.Status == StatusFailed && !errors.Is(outcome.Err, ErrMalformedBlock) {
			t.Fatalf("expected malformed error for block %d, got %v", outcome.Index, outcome.Err)
		}
	}
	if got := len(hook.AllEntries()); got != 3 {
		t.Fatalf("expected 3 logged failures in development mode, got %d", got)
	}
}

func TestMalformedBlockNotLoggedInProduction(t *testing.T) {
	d, hook := newTestDispatcher(false)
	units := d.Render([]models.Block{models.HeadingBlock{Level: 0}})
	if len(units) != 0 {
		t.Fatalf("expected malformed heading to be dropped")
	}
	if len(hook.AllEntries()) != 0 {
		t.Fatalf("expected failures to stay silent in production")
	}
}

func TestPanickingRendererIsIsolated(t *testing.T) {
	reg := DefaultRegistry()
	reg.MustRegister("scorecard", func(RenderContext, string, models.Block) (string, error) {
		panic("boom")
	})
	d := NewDispatcher(reg, Options{})

	units, report := d.RenderWithReport([]models.Block{
		models.UnknownBlock{Type: "scorecard"},
		models.DividerBlock{},
	})
	if len(units) != 1 || units[0].Type != "divider" {
		t.Fatalf("expected only the divider to survive, got %+v", units)
	}
	if report.Failed != 1 || !errors.Is(report.Outcomes[0].Err, ErrRenderFailed) {
		t.Fatalf("expected panic to be reported as render failure, got %+v", report)
	}
}

func TestNilBlocksAreSkipped(t *testing.T) {
	d, _ := newTestDispatcher(true)
	units, report := d.RenderWithReport([]models.Block{nil, models.DividerBlock{}})
	if len(units) != 1 || report.Skipped != 1 {
		t.Fatalf("expected nil block to be skipped, units=%d report=%+v", len(units), report)
	}
}

func TestEndToEndHeadingAndParagraph(t *testing.T) {
	d, _ := newTestDispatcher(false)
	units := d.Render([]models.Block{
		models.HeadingBlock{Level: 1, Text: "Title"},
		models.ParagraphBlock{HTML: "<p>Hello <script>evil()</script>world</p>"},
	})
	if len(units) != 2 {
		t.Fatalf("expected 2 units, got %d", len(units))
	}
	if got := string(units[0].HTML); got != `<h1 id="title" class="article__heading article__heading--1">Title</h1>` {
		t.Fatalf("unexpected heading markup: %s", got)
	}
	paragraph := string(units[1].HTML)
	if !strings.Contains(paragraph, "<p>Hello world</p>") {
		t.Fatalf("expected sanitized paragraph, got %s", paragraph)
	}
	if strings.Contains(paragraph, "evil") || strings.Contains(paragraph, "script") {
		t.Fatalf("script content leaked: %s", paragraph)
	}
}

func TestUnitKeyPrefersBlockID(t *testing.T) {
	d, _ := newTestDispatcher(false)
	unit, _ := d.RenderBlock(models.DividerBlock{BlockBase: models.BlockBase{ID: "b-7"}})
	if unit.Key != "b-7" {
		t.Fatalf("expected block id as key, got %q", unit.Key)
	}
}

func TestRenderPreservesOrderAcrossTypes(t *testing.T) {
	d, _ := newTestDispatcher(false)
	blocks := []models.Block{
		models.CodeBlock{Code: "x"},
		models.UnknownBlock{Type: "table"},
		models.EmbedBlock{URL: "https://example.com"},
		models.ListBlock{Items: []string{"a"}},
		models.ImageBlock{URL: "https://example.com/a.png"},
	}
	units := d.Render(blocks)
	want := []string{"code", "embed", "list", "image"}
	if len(units) != len(want) {
		t.Fatalf("expected %d units, got %d", len(want), len(units))
	}
	for i, unit := range units {
		if unit.Type != want[i] {
			t.Fatalf("unit %d: expected %s, got %s", i, want[i], unit.Type)
		}
	}
}

func TestCustomClassPrefixAndSanitizer(t *testing.T) {
	calls := 0
	d := NewDispatcher(nil, Options{
		ClassPrefix: "post-body",
		Sanitizer:   sanitizerFunc(func(s string) string { calls++; return strings.ToUpper(s) }),
	})
	unit, _ := d.RenderBlock(models.ParagraphBlock{HTML: "hi"})
	if string(unit.HTML) != `<p class="post-body__paragraph">HI</p>` {
		t.Fatalf("unexpected markup: %s", unit.HTML)
	}
	if calls != 1 {
		t.Fatalf("expected injected sanitizer to be used once, got %d", calls)
	}

	invalid := NewDispatcher(nil, Options{ClassPrefix: `x" onclick="y`})
	unit, _ = invalid.RenderBlock(models.DividerBlock{})
	if string(unit.HTML) != `<hr class="article__divider" />` {
		t.Fatalf("expected invalid prefix to fall back to default, got %s", unit.HTML)
	}
}

type sanitizerFunc func(string) string

func (f sanitizerFunc) SanitizeHTML(s string) string { return f(s) }

func TestBlockTypeMatchingIgnoresCaseAndSpace(t *testing.T) {
	d, _ := newTestDispatcher(false)
	units := d.Render([]models.Block{
		models.DecodeBlock([]byte(`{"type":" Heading ","level":2,"text":"Back nine"}`)),
		models.UnknownBlock{Type: "DIVIDER"},
	})
	if len(units) != 1 || units[0].Type != "heading" {
		t.Fatalf("expected case-folded heading to render, got %+v", units)
	}
}
