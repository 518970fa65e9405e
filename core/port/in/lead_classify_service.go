package in

import (
	"context"

	"leadfilter/core/domain"
)

// BatchClassifyService runs a classification batch over an ordered record
// list. Results preserve input order regardless of worker completion order.
type BatchClassifyService interface {
	Run(ctx context.Context, records []*domain.EmailRecord, cfg *domain.FilterConfiguration) (*domain.BatchResult, error)
}
