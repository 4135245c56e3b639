package blocks

// DefaultRegistry returns a registry pre-populated with the built-in block renderers.
func DefaultRegistry() *Registry {
	reg := NewRegistry()
	RegisterDefaults(reg)
	return reg
}

// RegisterDefaults adds the built-in block renderers to the provided registry.
func RegisterDefaults(reg *Registry) {
	if reg == nil {
		return
	}

	// Text
	RegisterHeading(reg)
	RegisterParagraph(reg)
	RegisterList(reg)
	RegisterQuote(reg)
	RegisterCode(reg)

	// Media and layout
	RegisterImage(reg)
	RegisterDivider(reg)
	RegisterEmbed(reg)
}
