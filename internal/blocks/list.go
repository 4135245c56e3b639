package blocks

import (
	"strings"

	"fairway-content-backend/internal/models"
)

// RegisterList registers the default list renderer on the provided registry.
func RegisterList(reg *Registry) {
	if reg == nil {
		return
	}
	reg.MustRegister(string(models.BlockList), typed(renderList))
}

func renderList(ctx RenderContext, prefix string, block models.ListBlock) (string, error) {
	listTag := "ul"
	listClass := className(prefix, "list")
	if block.Ordered() {
		listTag = "ol"
		listClass += " " + listClass + "--ordered"
	}

	itemClass := className(prefix, "list-item")

	var sb strings.Builder
	sb.WriteString(`<` + listTag + ` class="` + listClass + `">`)
	for _, item := range block.Items {
		sb.WriteString(`<li class="` + itemClass + `">` + ctx.SanitizeHTML(item) + `</li>`)
	}
	sb.WriteString(`</` + listTag + `>`)

	return sb.String(), nil
}
