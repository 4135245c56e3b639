package blocks

import (
	"html/template"
	"strings"

	"fairway-content-backend/internal/models"
	"fairway-content-backend/pkg/validator"
)

// RegisterEmbed registers the default external embed renderer on the provided registry.
func RegisterEmbed(reg *Registry) {
	if reg == nil {
		return
	}
	reg.MustRegister(string(models.BlockEmbed), typed(renderEmbed))
}

// renderEmbed only links URLs that pass the http/https check, regardless of
// what sanitization did to the rest of the document.
func renderEmbed(_ RenderContext, prefix string, block models.EmbedBlock) (string, error) {
	linkClass := className(prefix, "embed-link")

	var sb strings.Builder
	sb.WriteString(`<div class="` + className(prefix, "embed") + `">`)
	sb.WriteString(`<p class="` + className(prefix, "embed-label") + `">External embed</p>`)
	if target := strings.TrimSpace(block.URL); validator.IsSafeLinkURL(target) {
		escaped := template.HTMLEscapeString(target)
		sb.WriteString(`<a class="` + linkClass + `" href="` + escaped + `" target="_blank" rel="noopener noreferrer">` + escaped + `</a>`)
	} else {
		sb.WriteString(`<span class="` + linkClass + ` ` + linkClass + `--invalid">Invalid URL</span>`)
	}
	if caption := strings.TrimSpace(block.Caption); caption != "" {
		sb.WriteString(`<p class="` + className(prefix, "embed-caption") + `">` + template.HTMLEscapeString(caption) + `</p>`)
	}
	sb.WriteString(`</div>`)
	return sb.String(), nil
}
