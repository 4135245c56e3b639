package blocks

import "fairway-content-backend/internal/models"

// RegisterDivider registers the default divider renderer on the provided registry.
func RegisterDivider(reg *Registry) {
	if reg == nil {
		return
	}
	reg.MustRegister(string(models.BlockDivider), typed(renderDivider))
}

func renderDivider(_ RenderContext, prefix string, _ models.DividerBlock) (string, error) {
	return `<hr class="` + className(prefix, "divider") + `" />`, nil
}
