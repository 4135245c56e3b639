package blocks

import (
	"html/template"
	"strings"

	"fairway-content-backend/internal/models"
)

// RegisterQuote registers the default pull-quote renderer on the provided registry.
func RegisterQuote(reg *Registry) {
	if reg == nil {
		return
	}
	reg.MustRegister(string(models.BlockQuote), typed(renderQuote))
}

func renderQuote(_ RenderContext, prefix string, block models.QuoteBlock) (string, error) {
	var sb strings.Builder
	sb.WriteString(`<blockquote class="` + className(prefix, "quote") + `">`)
	sb.WriteString(`<p>` + template.HTMLEscapeString(block.Text) + `</p>`)
	if caption := strings.TrimSpace(block.Caption); caption != "" {
		sb.WriteString(`<cite class="` + className(prefix, "quote-caption") + `">&mdash; ` + template.HTMLEscapeString(caption) + `</cite>`)
	}
	sb.WriteString(`</blockquote>`)
	return sb.String(), nil
}
