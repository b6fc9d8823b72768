package expiration

import (
	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/shared"
)

// ProductsExpiredEvent is raised once per scan that finds expired units
type ProductsExpiredEvent struct {
	shared.BaseDomainEvent
	TotalExpired int                    `json:"total_expired"`
	Notices      []ExpiredProductNotice `json:"notices"`
}

// NewProductsExpiredEvent creates a new ProductsExpiredEvent
func NewProductsExpiredEvent(stats *ScanStats) *ProductsExpiredEvent {
	return &ProductsExpiredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("products.expired", "Product", uuid.Nil),
		TotalExpired:    stats.TotalExpired,
		Notices:         stats.Notices,
	}
}
