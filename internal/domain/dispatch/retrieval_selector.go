package dispatch

import (
	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/intake"
	"github.com/wms/backend/internal/domain/shared"
)

// RetrievalSelector is a domain service that picks the physical units
// fulfilling one retrieval line. The pool is narrowed to units
// interchangeable with the reference (full detail-signature equality, not
// just the same id) and still available, then ordered by the lot's
// rotation policy.
type RetrievalSelector struct {
	strategyFactory func(intake.RotationPolicy) (RotationStrategy, error)
}

// RetrievalSelectorOption configures a RetrievalSelector
type RetrievalSelectorOption func(*RetrievalSelector)

// WithStrategyFactory overrides strategy construction, used by tests to
// inject a seeded RANDOM strategy
func WithStrategyFactory(factory func(intake.RotationPolicy) (RotationStrategy, error)) RetrievalSelectorOption {
	return func(s *RetrievalSelector) {
		if factory != nil {
			s.strategyFactory = factory
		}
	}
}

// NewRetrievalSelector creates a retrieval selector
func NewRetrievalSelector(opts ...RetrievalSelectorOption) *RetrievalSelector {
	s := &RetrievalSelector{strategyFactory: NewRotationStrategy}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Select returns the quantity units that fulfill the line, in retrieval
// order. It fails with INSUFFICIENT_STOCK when the matching pool is
// smaller than the requested quantity.
func (s *RetrievalSelector) Select(reference *catalog.Product, pool []Candidate, quantity int, policy intake.RotationPolicy) ([]Candidate, error) {
	if reference == nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Reference product cannot be nil")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	matching := make([]Candidate, 0, len(pool))
	for _, candidate := range pool {
		if candidate.Product == nil || !candidate.Product.IsAvailable() {
			continue
		}
		if !candidate.Product.MatchesSignature(reference) {
			continue
		}
		matching = append(matching, candidate)
	}
	if len(matching) < quantity {
		return nil, shared.ErrInsufficientStock
	}

	strategy, err := s.strategyFactory(policy)
	if err != nil {
		return nil, err
	}

	return strategy.Order(matching)[:quantity], nil
}
