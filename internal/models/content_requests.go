package models

import "encoding/json"

type RenderContentRequest struct {
	Blocks []json.RawMessage `json:"blocks" binding:"required"`
}

type SanitizeContentRequest struct {
	HTML *string `json:"html" binding:"required"`
}

// ReadTimeRequest estimates either free text or a block sequence. Blocks win
// when both are present.
type ReadTimeRequest struct {
	Text   string            `json:"text"`
	Blocks []json.RawMessage `json:"blocks"`
}
