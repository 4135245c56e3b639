package service

import (
	"context"

	"fairway-content-backend/internal/models"
	"fairway-content-backend/internal/readtime"
)

type ContentUseCase interface {
	RenderDocument(context.Context, []models.Block) (*Document, error)
	Sanitize(context.Context, string) string
	EstimateText(context.Context, string) readtime.Estimate
	EstimateBlocks(context.Context, []models.Block) (readtime.Estimate, error)
	BlockTypes() []string
	AllowedTags() []string
}
