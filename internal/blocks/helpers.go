package blocks

import (
	"fmt"
	"regexp"

	"fairway-content-backend/internal/models"
	"fairway-content-backend/pkg/validator"
)

const DefaultClassPrefix = "article"

var classPrefixPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)

func className(prefix, element string) string {
	return prefix + "__" + element
}

// typed adapts a variant-specific render function to a Renderer. The block is
// only handed over once its concrete type matches and its fields validate.
func typed[T models.Block](render func(ctx RenderContext, prefix string, block T) (string, error)) Renderer {
	return func(ctx RenderContext, prefix string, block models.Block) (string, error) {
		variant, ok := block.(T)
		if !ok {
			if unknown, isUnknown := block.(models.UnknownBlock); isUnknown && unknown.Err != nil {
				return "", fmt.Errorf("%w: %v", ErrMalformedBlock, unknown.Err)
			}
			return "", fmt.Errorf("%w: unexpected %T for %s block", ErrMalformedBlock, block, block.BlockType())
		}
		if err := validator.Validate(variant); err != nil {
			return "", fmt.Errorf("%w: %s: %v", ErrMalformedBlock, block.BlockType(), err)
		}
		return render(ctx, prefix, variant)
	}
}
