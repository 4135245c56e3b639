package models

import (
	"encoding/json"
	"fmt"
)

type blockEnvelope struct {
	Type string   `json:"type"`
	ID   BlockKey `json:"id"`
}

// DecodeBlocks decodes a JSON array of content blocks. Only a document that is
// not an array is an error; each element decodes on its own and a bad element
// becomes an UnknownBlock carrying the decode error.
func DecodeBlocks(data []byte) ([]Block, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode block sequence: %w", err)
	}
	return DecodeRawBlocks(raw), nil
}

// DecodeRawBlocks decodes already-split block payloads, preserving order.
func DecodeRawBlocks(raw []json.RawMessage) []Block {
	blocks := make([]Block, 0, len(raw))
	for _, item := range raw {
		blocks = append(blocks, DecodeBlock(item))
	}
	return blocks
}

// DecodeBlock decodes a single block payload into its variant.
func DecodeBlock(raw json.RawMessage) Block {
	var env blockEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return UnknownBlock{Type: env.Type, Err: fmt.Errorf("invalid block envelope: %w", err)}
	}

	var (
		block Block
		err   error
	)
	switch NormalizeBlockType(env.Type) {
	case BlockHeading:
		block, err = decodeVariant[HeadingBlock](raw)
	case BlockParagraph:
		block, err = decodeVariant[ParagraphBlock](raw)
	case BlockList:
		block, err = decodeVariant[ListBlock](raw)
	case BlockQuote:
		block, err = decodeVariant[QuoteBlock](raw)
	case BlockImage:
		block, err = decodeVariant[ImageBlock](raw)
	case BlockDivider:
		block, err = decodeVariant[DividerBlock](raw)
	case BlockCode:
		block, err = decodeVariant[CodeBlock](raw)
	case BlockEmbed:
		block, err = decodeVariant[EmbedBlock](raw)
	default:
		return UnknownBlock{
			BlockBase: BlockBase{ID: env.ID},
			Type:      env.Type,
			Fields:    decodeFields(raw),
		}
	}

	if err != nil {
		return UnknownBlock{
			BlockBase: BlockBase{ID: env.ID},
			Type:      env.Type,
			Fields:    decodeFields(raw),
			Err:       fmt.Errorf("invalid %s payload: %w", NormalizeBlockType(env.Type), err),
		}
	}
	return block
}

func decodeVariant[T Block](raw json.RawMessage) (Block, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func decodeFields(raw json.RawMessage) map[string]interface{} {
	fields := make(map[string]interface{})
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil
	}
	return fields
}
