package dispatch

import (
	"math/rand"
	"sort"
	"time"

	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/intake"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/shared/strategy"
)

// Candidate is one retrievable unit together with the lot context the
// rotation strategies order on.
type Candidate struct {
	Product       *catalog.Product
	LotImportDate time.Time
}

// RotationStrategy orders a candidate pool according to an inventory
// rotation policy. Order never mutates its input.
type RotationStrategy interface {
	strategy.Strategy
	// Policy returns the rotation policy this strategy implements
	Policy() intake.RotationPolicy
	// Order returns the candidates in retrieval order
	Order(candidates []Candidate) []Candidate
}

// NewRotationStrategy returns the strategy for a lot's rotation policy.
// RANDOM strategies built here are seeded from the clock; tests inject
// their own source through NewRandomRotationStrategy.
func NewRotationStrategy(policy intake.RotationPolicy) (RotationStrategy, error) {
	switch policy {
	case intake.RotationFIFO:
		return NewFIFORotationStrategy(), nil
	case intake.RotationLIFO:
		return NewLIFORotationStrategy(), nil
	case intake.RotationFEFO:
		return NewFEFORotationStrategy(), nil
	case intake.RotationRandom:
		return NewRandomRotationStrategy(rand.New(rand.NewSource(time.Now().UnixNano()))), nil
	}
	return nil, shared.NewDomainError("INVALID_ROTATION", "Unknown rotation policy: "+string(policy))
}

// FIFORotationStrategy retrieves the oldest stock first
type FIFORotationStrategy struct {
	strategy.BaseStrategy
}

// NewFIFORotationStrategy creates a new FIFO rotation strategy
func NewFIFORotationStrategy() *FIFORotationStrategy {
	return &FIFORotationStrategy{
		BaseStrategy: strategy.NewBaseStrategy(
			"fifo_rotation",
			strategy.StrategyTypeRotation,
			"FIFO rotation - retrieves units from the earliest-imported lots first",
		),
	}
}

// Policy returns the rotation policy
func (s *FIFORotationStrategy) Policy() intake.RotationPolicy {
	return intake.RotationFIFO
}

// Order sorts candidates by lot import date ascending
func (s *FIFORotationStrategy) Order(candidates []Candidate) []Candidate {
	ordered := make([]Candidate, len(candidates))
	copy(ordered, candidates)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].LotImportDate.Equal(ordered[j].LotImportDate) {
			return ordered[i].LotImportDate.Before(ordered[j].LotImportDate)
		}
		return ordered[i].Product.CreatedAt.Before(ordered[j].Product.CreatedAt)
	})
	return ordered
}

// LIFORotationStrategy retrieves the newest stock first
type LIFORotationStrategy struct {
	strategy.BaseStrategy
}

// NewLIFORotationStrategy creates a new LIFO rotation strategy
func NewLIFORotationStrategy() *LIFORotationStrategy {
	return &LIFORotationStrategy{
		BaseStrategy: strategy.NewBaseStrategy(
			"lifo_rotation",
			strategy.StrategyTypeRotation,
			"LIFO rotation - retrieves units from the latest-imported lots first",
		),
	}
}

// Policy returns the rotation policy
func (s *LIFORotationStrategy) Policy() intake.RotationPolicy {
	return intake.RotationLIFO
}

// Order sorts candidates by lot import date descending
func (s *LIFORotationStrategy) Order(candidates []Candidate) []Candidate {
	ordered := make([]Candidate, len(candidates))
	copy(ordered, candidates)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].LotImportDate.Equal(ordered[j].LotImportDate) {
			return ordered[i].LotImportDate.After(ordered[j].LotImportDate)
		}
		return ordered[i].Product.CreatedAt.After(ordered[j].Product.CreatedAt)
	})
	return ordered
}

// FEFORotationStrategy retrieves the stock closest to expiry first
type FEFORotationStrategy struct {
	strategy.BaseStrategy
}

// NewFEFORotationStrategy creates a new FEFO rotation strategy
func NewFEFORotationStrategy() *FEFORotationStrategy {
	return &FEFORotationStrategy{
		BaseStrategy: strategy.NewBaseStrategy(
			"fefo_rotation",
			strategy.StrategyTypeRotation,
			"FEFO rotation - retrieves units closest to expiry first; units without an expiration date go last",
		),
	}
}

// Policy returns the rotation policy
func (s *FEFORotationStrategy) Policy() intake.RotationPolicy {
	return intake.RotationFEFO
}

// Order sorts candidates by expiration date ascending, units without an
// expiration date last, falling back to FIFO order
func (s *FEFORotationStrategy) Order(candidates []Candidate) []Candidate {
	ordered := make([]Candidate, len(candidates))
	copy(ordered, candidates)
	sort.SliceStable(ordered, func(i, j int) bool {
		expI := ordered[i].Product.Details.ExpirationDate
		expJ := ordered[j].Product.Details.ExpirationDate
		if expI != nil && expJ != nil {
			if !expI.Equal(*expJ) {
				return expI.Before(*expJ)
			}
		} else if expI != nil {
			return true
		} else if expJ != nil {
			return false
		}
		return ordered[i].LotImportDate.Before(ordered[j].LotImportDate)
	})
	return ordered
}

// RandomRotationStrategy retrieves uniformly shuffled stock
type RandomRotationStrategy struct {
	strategy.BaseStrategy
	rng *rand.Rand
}

// NewRandomRotationStrategy creates a random rotation strategy using the
// given source. A nil source falls back to a clock seed.
func NewRandomRotationStrategy(rng *rand.Rand) *RandomRotationStrategy {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &RandomRotationStrategy{
		BaseStrategy: strategy.NewBaseStrategy(
			"random_rotation",
			strategy.StrategyTypeRotation,
			"Random rotation - retrieves a uniform shuffle of the candidate pool",
		),
		rng: rng,
	}
}

// Policy returns the rotation policy
func (s *RandomRotationStrategy) Policy() intake.RotationPolicy {
	return intake.RotationRandom
}

// Order returns a uniform shuffle of the candidates
func (s *RandomRotationStrategy) Order(candidates []Candidate) []Candidate {
	ordered := make([]Candidate, len(candidates))
	copy(ordered, candidates)
	s.rng.Shuffle(len(ordered), func(i, j int) {
		ordered[i], ordered[j] = ordered[j], ordered[i]
	})
	return ordered
}
