package blocks

import (
	"html/template"
	"strings"

	"fairway-content-backend/internal/models"
)

// RegisterImage registers the default image renderer on the provided registry.
func RegisterImage(reg *Registry) {
	if reg == nil {
		return
	}
	reg.MustRegister(string(models.BlockImage), typed(renderImage))
}

func renderImage(_ RenderContext, prefix string, block models.ImageBlock) (string, error) {
	var sb strings.Builder
	sb.WriteString(`<figure class="` + className(prefix, "image") + `">`)
	sb.WriteString(`<img class="` + className(prefix, "image-img") + `" src="` + template.HTMLEscapeString(block.URL) + `" alt="` + template.HTMLEscapeString(block.Alt) + `" loading="lazy" />`)
	if caption := strings.TrimSpace(block.Caption); caption != "" {
		sb.WriteString(`<figcaption class="` + className(prefix, "image-caption") + `">` + template.HTMLEscapeString(caption) + `</figcaption>`)
	}
	sb.WriteString(`</figure>`)

	return sb.String(), nil
}
