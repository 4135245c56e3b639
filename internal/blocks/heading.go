package blocks

import (
	"fmt"
	"html/template"
	"strings"

	"fairway-content-backend/internal/models"
)

// RegisterHeading registers the default heading renderer on the provided registry.
func RegisterHeading(reg *Registry) {
	if reg == nil {
		return
	}
	reg.MustRegister(string(models.BlockHeading), typed(renderHeading))
}

func renderHeading(ctx RenderContext, prefix string, block models.HeadingBlock) (string, error) {
	tag := fmt.Sprintf("h%d", block.Level)
	headingClass := className(prefix, "heading")

	var sb strings.Builder
	sb.WriteString(`<` + tag)
	if anchor := ctx.AnchorFor(block.Text); anchor != "" {
		sb.WriteString(` id="` + template.HTMLEscapeString(anchor) + `"`)
	}
	sb.WriteString(fmt.Sprintf(` class="%s %s--%d">`, headingClass, headingClass, block.Level))
	sb.WriteString(template.HTMLEscapeString(block.Text))
	sb.WriteString(`</` + tag + `>`)
	return sb.String(), nil
}
