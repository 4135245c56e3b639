package blocks

import (
	"fairway-content-backend/internal/models"
)

// RegisterParagraph registers the default paragraph renderer on the provided registry.
func RegisterParagraph(reg *Registry) {
	if reg == nil {
		return
	}
	reg.MustRegister(string(models.BlockParagraph), typed(renderParagraph))
}

func renderParagraph(ctx RenderContext, prefix string, block models.ParagraphBlock) (string, error) {
	sanitized := ctx.SanitizeHTML(block.HTML)
	return `<p class="` + className(prefix, "paragraph") + `">` + sanitized + `</p>`, nil
}
