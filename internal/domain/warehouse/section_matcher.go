package warehouse

import (
	"sort"

	"github.com/wms/backend/internal/domain/shared"
)

// SectionMatcher is a domain service that picks the section an incoming
// batch item will land in. Candidates are filtered by layout mode, live
// free capacity, and condition coverage, then taken in coordinate order so
// repeated calls with the same state pick the same section.
type SectionMatcher struct{}

// NewSectionMatcher creates a section matcher
func NewSectionMatcher() *SectionMatcher {
	return &SectionMatcher{}
}

// MatchSection returns the first active section that stores goods in the
// requested layout, has at least quantity free slots, and covers every
// requested condition. The sections' slot grids must be loaded for the
// live occupancy count.
func (m *SectionMatcher) MatchSection(sections []Section, onShelf bool, quantity int, requirements []ConditionRequirement) (*Section, error) {
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	wantLayout := LayoutFlat
	if onShelf {
		wantLayout = LayoutShelved
	}

	candidates := make([]*Section, 0, len(sections))
	for i := range sections {
		section := &sections[i]
		if !section.IsActive() || section.Layout != wantLayout {
			continue
		}
		if section.AvailableSlots() < quantity {
			continue
		}
		if !section.SatisfiesAll(requirements) {
			continue
		}
		candidates = append(candidates, section)
	}
	if len(candidates) == 0 {
		return nil, shared.ErrNoSuitableSection
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.CoordinateX != b.CoordinateX {
			return a.CoordinateX < b.CoordinateX
		}
		return a.CoordinateY < b.CoordinateY
	})

	return candidates[0], nil
}
