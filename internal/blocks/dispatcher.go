package blocks

import (
	"fmt"
	"html/template"
	"io"

	"github.com/sirupsen/logrus"

	"fairway-content-backend/internal/models"
	"fairway-content-backend/internal/sanitizer"
	"fairway-content-backend/pkg/utils"
)

// HTMLSanitizer is the markup cleaning capability handed to renderers.
type HTMLSanitizer interface {
	SanitizeHTML(input string) string
}

// Options configures a Dispatcher.
type Options struct {
	// Development turns on inline diagnostics for unknown block types and
	// logging of isolated render failures.
	Development bool
	// Logger receives development diagnostics. Nothing is logged when nil.
	Logger logrus.FieldLogger
	// ClassPrefix is the BEM block name used for generated classes.
	ClassPrefix string
	// Sanitizer defaults to the allow-list sanitizer.
	Sanitizer HTMLSanitizer
}

// Unit is one rendered block. Units come out in input order, at most one per block.
type Unit struct {
	Key        string        `json:"key"`
	Type       string        `json:"type"`
	HTML       template.HTML `json:"html"`
	Diagnostic bool          `json:"diagnostic,omitempty"`
}

type Status string

const (
	StatusRendered Status = "rendered"
	StatusUnknown  Status = "unknown"
	StatusFailed   Status = "failed"
	StatusSkipped  Status = "skipped"
)

// Outcome records what happened to the block at Index.
type Outcome struct {
	Index  int
	Type   string
	Status Status
	Err    error
}

// Report summarises one Render pass.
type Report struct {
	Outcomes []Outcome
	Rendered int
	Unknown  int
	Failed   int
	Skipped  int
}

func (r *Report) add(outcome Outcome) {
	r.Outcomes = append(r.Outcomes, outcome)
	switch outcome.Status {
	case StatusRendered:
		r.Rendered++
	case StatusUnknown:
		r.Unknown++
	case StatusFailed:
		r.Failed++
	case StatusSkipped:
		r.Skipped++
	}
}

// Dispatcher maps each block to its registered renderer.
type Dispatcher struct {
	registry *Registry
	opts     Options
}

// NewDispatcher creates a dispatcher over registry; a nil registry means the defaults.
func NewDispatcher(registry *Registry, opts Options) *Dispatcher {
	if registry == nil {
		registry = DefaultRegistry()
	}
	opts.ClassPrefix = normalizeClassPrefix(opts.ClassPrefix)
	if opts.Sanitizer == nil {
		opts.Sanitizer = sanitizer.New()
	}
	return &Dispatcher{registry: registry, opts: opts}
}

// Registry returns the registry the dispatcher renders with.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Render renders blocks in order. Unknown and malformed blocks contribute no
// unit, except for the unknown-type diagnostic in development mode.
func (d *Dispatcher) Render(blocks []models.Block) []Unit {
	units, _ := d.RenderWithReport(blocks)
	return units
}

// RenderBlock renders a single block. The boolean is false when the block
// produced no output.
func (d *Dispatcher) RenderBlock(block models.Block) (Unit, bool) {
	unit, emitted, _ := d.renderOne(d.newContext(), 0, block)
	return unit, emitted
}

// RenderWithReport is Render plus a per-block account of what happened.
func (d *Dispatcher) RenderWithReport(blocks []models.Block) ([]Unit, Report) {
	ctx := d.newContext()
	units := make([]Unit, 0, len(blocks))
	report := Report{Outcomes: make([]Outcome, 0, len(blocks))}

	for i, block := range blocks {
		unit, emitted, outcome := d.renderOne(ctx, i, block)
		report.add(outcome)
		if emitted {
			units = append(units, unit)
		}
	}
	return units, report
}

func (d *Dispatcher) renderOne(ctx *renderContext, index int, block models.Block) (unit Unit, emitted bool, outcome Outcome) {
	outcome = Outcome{Index: index}
	if block == nil {
		outcome.Status = StatusSkipped
		return Unit{}, false, outcome
	}

	blockType := string(block.BlockType())
	outcome.Type = blockType
	key := block.BlockID()
	if key == "" {
		key = blockType
	}

	renderer, ok := d.registry.Get(blockType)
	if !ok {
		outcome.Status = StatusUnknown
		if !d.opts.Development {
			return Unit{}, false, outcome
		}
		d.devLog(logrus.Fields{"index": index, "type": blockType}).Warn("Unknown block type")
		return Unit{
			Key:        key,
			Type:       blockType,
			HTML:       template.HTML(`<div class="` + className(d.opts.ClassPrefix, "unknown-block") + `">[Unknown block: ` + template.HTMLEscapeString(blockType) + `]</div>`),
			Diagnostic: true,
		}, true, outcome
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			err := fmt.Errorf("%w: %v", ErrRenderFailed, recovered)
			d.devLog(logrus.Fields{"index": index, "type": blockType}).WithError(err).Error("Error rendering block")
			unit, emitted = Unit{}, false
			outcome.Status = StatusFailed
			outcome.Err = err
		}
	}()

	html, err := renderer(ctx, d.opts.ClassPrefix, block)
	if err != nil {
		d.devLog(logrus.Fields{"index": index, "type": blockType}).WithError(err).Error("Error rendering block")
		outcome.Status = StatusFailed
		outcome.Err = err
		return Unit{}, false, outcome
	}

	outcome.Status = StatusRendered
	return Unit{Key: key, Type: blockType, HTML: template.HTML(html)}, true, outcome
}

func (d *Dispatcher) devLog(fields logrus.Fields) logrus.FieldLogger {
	if !d.opts.Development || d.opts.Logger == nil {
		return discardLogger
	}
	return d.opts.Logger.WithFields(fields)
}

var discardLogger = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}()

type renderContext struct {
	sanitizer HTMLSanitizer
	anchors   *utils.SlugSet
}

func (d *Dispatcher) newContext() *renderContext {
	return &renderContext{sanitizer: d.opts.Sanitizer, anchors: utils.NewSlugSet()}
}

func (c *renderContext) SanitizeHTML(input string) string {
	return c.sanitizer.SanitizeHTML(input)
}

func (c *renderContext) AnchorFor(text string) string {
	return c.anchors.Next(text)
}
