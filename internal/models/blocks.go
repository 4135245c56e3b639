package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type BlockType string

const (
	BlockHeading   BlockType = "heading"
	BlockParagraph BlockType = "paragraph"
	BlockList      BlockType = "list"
	BlockQuote     BlockType = "quote"
	BlockImage     BlockType = "image"
	BlockDivider   BlockType = "divider"
	BlockCode      BlockType = "code"
	BlockEmbed     BlockType = "embed"
	BlockUnknown   BlockType = "unknown"
)

// NormalizeBlockType lower-cases and trims a raw type tag.
func NormalizeBlockType(value string) BlockType {
	return BlockType(strings.TrimSpace(strings.ToLower(value)))
}

const (
	ListOrdered   = "ordered"
	ListUnordered = "unordered"
)

// Block is one unit of stored article content. The set of implementations is
// closed: variant fields are only reachable through a type assertion.
type Block interface {
	BlockType() BlockType
	BlockID() string
	isBlock()
}

// BlockKey is the optional producer-supplied identity of a block. Producers
// send it as either a JSON string or a number.
type BlockKey string

func (k *BlockKey) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*k = ""
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*k = BlockKey(s)
		return nil
	}
	if _, err := strconv.ParseFloat(trimmed, 64); err != nil {
		return fmt.Errorf("block id must be a string or number, got %s", trimmed)
	}
	*k = BlockKey(trimmed)
	return nil
}

type BlockBase struct {
	ID BlockKey `json:"id,omitempty"`
}

func (b BlockBase) BlockID() string { return string(b.ID) }

func (BlockBase) isBlock() {}

type HeadingBlock struct {
	BlockBase
	Level int    `json:"level" validate:"min=1,max=6"`
	Text  string `json:"text"`
}

func (HeadingBlock) BlockType() BlockType { return BlockHeading }

// ParagraphBlock carries an untrusted markup fragment.
type ParagraphBlock struct {
	BlockBase
	HTML string `json:"html"`
}

func (ParagraphBlock) BlockType() BlockType { return BlockParagraph }

// ListBlock items are untrusted markup fragments, one per list entry.
type ListBlock struct {
	BlockBase
	Style string   `json:"style"`
	Items []string `json:"items" validate:"required"`
}

func (ListBlock) BlockType() BlockType { return BlockList }

func (b ListBlock) Ordered() bool { return b.Style == ListOrdered }

type QuoteBlock struct {
	BlockBase
	Text    string `json:"text"`
	Caption string `json:"caption,omitempty"`
}

func (QuoteBlock) BlockType() BlockType { return BlockQuote }

type ImageBlock struct {
	BlockBase
	URL     string `json:"url" validate:"required"`
	Alt     string `json:"alt,omitempty"`
	Caption string `json:"caption,omitempty"`
}

func (ImageBlock) BlockType() BlockType { return BlockImage }

type DividerBlock struct {
	BlockBase
}

func (DividerBlock) BlockType() BlockType { return BlockDivider }

type CodeBlock struct {
	BlockBase
	Code     string `json:"code"`
	Language string `json:"language,omitempty"`
}

func (CodeBlock) BlockType() BlockType { return BlockCode }

// EmbedBlock.URL must pass a scheme check before it becomes a link target.
type EmbedBlock struct {
	BlockBase
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

func (EmbedBlock) BlockType() BlockType { return BlockEmbed }

// UnknownBlock holds any block whose type tag is not recognised, as well as a
// recognised tag whose payload did not decode into its variant. In the latter
// case Err records why.
type UnknownBlock struct {
	BlockBase
	Type   string
	Fields map[string]interface{}
	Err    error
}

func (b UnknownBlock) BlockType() BlockType { return NormalizeBlockType(b.Type) }

// Malformed reports whether the block declared a known type but failed to decode.
func (b UnknownBlock) Malformed() bool { return b.Err != nil }
