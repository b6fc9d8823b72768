package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/shared"
)

// StockMovementRepository is append-only: movements are recorded once and
// never changed
type StockMovementRepository interface {
	// Record persists a movement
	Record(ctx context.Context, movement *StockMovement) error

	// FindBySource finds the movements recorded from one document
	FindBySource(ctx context.Context, sourceType SourceType, sourceID uuid.UUID) ([]StockMovement, error)

	// FindBySection finds the movements touching a section
	FindBySection(ctx context.Context, sectionID uuid.UUID, filter shared.Filter) ([]StockMovement, error)

	// FindRecent lists movements newest first
	FindRecent(ctx context.Context, filter shared.Filter) ([]StockMovement, error)
}
