package expiration

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ExpirationService runs the daily expiration scan: it finds stored
// perishable units past their expiration date and raises a notification
// per affected section. It never mutates allocation state.
type ExpirationService struct {
	productRepo    catalog.ProductRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewExpirationService creates a new ExpirationService
func NewExpirationService(
	productRepo catalog.ProductRepository,
	eventPublisher shared.EventPublisher,
	logger *zap.Logger,
) *ExpirationService {
	return &ExpirationService{
		productRepo:    productRepo,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

// ExpiredProductNotice describes one expired unit
type ExpiredProductNotice struct {
	ProductID      uuid.UUID  `json:"product_id"`
	Name           string     `json:"name"`
	Kind           string     `json:"kind"`
	SectionID      uuid.UUID  `json:"section_id"`
	LotID          uuid.UUID  `json:"lot_id"`
	ExpirationDate *time.Time `json:"expiration_date"`
}

// ScanStats summarizes one expiration scan
type ScanStats struct {
	TotalExpired int                    `json:"total_expired"`
	Notices      []ExpiredProductNotice `json:"notices"`
	ProcessedAt  time.Time              `json:"processed_at"`
}

// Scan finds every stored perishable unit past its expiration date
func (s *ExpirationService) Scan(ctx context.Context) (*ScanStats, error) {
	stats := &ScanStats{
		ProcessedAt: time.Now(),
		Notices:     make([]ExpiredProductNotice, 0),
	}

	expired, err := s.productRepo.FindExpired(ctx, stats.ProcessedAt)
	if err != nil {
		s.logger.Error("Failed to scan for expired products", zap.Error(err))
		return nil, err
	}

	stats.TotalExpired = len(expired)
	if stats.TotalExpired == 0 {
		s.logger.Debug("No expired products found")
		return stats, nil
	}

	for i := range expired {
		product := &expired[i]
		stats.Notices = append(stats.Notices, ExpiredProductNotice{
			ProductID:      product.ID,
			Name:           product.Name,
			Kind:           product.Kind.String(),
			SectionID:      product.SectionID,
			LotID:          product.LotID,
			ExpirationDate: product.Details.ExpirationDate,
		})
	}

	s.logger.Info("Expiration scan found expired products",
		zap.Int("count", stats.TotalExpired),
	)

	if s.eventPublisher != nil {
		event := NewProductsExpiredEvent(stats)
		// Notification failures never fail the scan
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("Failed to publish expiration notice", zap.Error(err))
		}
	}

	return stats, nil
}
