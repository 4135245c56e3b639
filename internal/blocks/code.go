package blocks

import (
	"html/template"
	"strings"

	"fairway-content-backend/internal/models"
	"fairway-content-backend/pkg/utils"
)

// RegisterCode registers the default code listing renderer on the provided registry.
func RegisterCode(reg *Registry) {
	if reg == nil {
		return
	}
	reg.MustRegister(string(models.BlockCode), typed(renderCode))
}

func renderCode(_ RenderContext, prefix string, block models.CodeBlock) (string, error) {
	language := strings.TrimSpace(block.Language)

	var sb strings.Builder
	sb.WriteString(`<div class="` + className(prefix, "code") + `">`)
	if language != "" {
		sb.WriteString(`<div class="` + className(prefix, "code-language") + `">` + template.HTMLEscapeString(language) + `</div>`)
	}
	sb.WriteString(`<pre class="` + className(prefix, "code-pre") + `"><code`)
	if slug := utils.GenerateSlug(language); slug != "" {
		sb.WriteString(` class="language-` + slug + `"`)
	}
	sb.WriteString(`>` + template.HTMLEscapeString(block.Code) + `</code></pre></div>`)
	return sb.String(), nil
}
