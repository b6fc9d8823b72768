package warehouse

import (
	"context"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/warehouse"
)

// SectionService handles warehouse layout operations: leasing sections,
// terminating them, and reporting capacity.
type SectionService struct {
	warehouseID    uuid.UUID
	warehouseRepo  warehouse.WarehouseRepository
	sectionRepo    warehouse.SectionRepository
	planner        *warehouse.SectionPlanner
	eventPublisher shared.EventPublisher
}

// NewSectionService creates a new SectionService. The warehouse ID is the
// bootstrap warehouse every section belongs to.
func NewSectionService(
	warehouseID uuid.UUID,
	warehouseRepo warehouse.WarehouseRepository,
	sectionRepo warehouse.SectionRepository,
	planner *warehouse.SectionPlanner,
) *SectionService {
	return &SectionService{
		warehouseID:   warehouseID,
		warehouseRepo: warehouseRepo,
		sectionRepo:   sectionRepo,
		planner:       planner,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *SectionService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateSection leases a new section: capacity check against the warehouse
// budget, coordinate assignment, slot grid construction, condition
// attachment.
func (s *SectionService) CreateSection(ctx context.Context, req CreateSectionRequest) (*SectionResponse, error) {
	wh, err := s.warehouseRepo.FindByID(ctx, s.warehouseID)
	if err != nil {
		return nil, err
	}

	// Planning needs every section: pagination would hide occupied cells
	existing, err := s.sectionRepo.FindByWarehouse(ctx, s.warehouseID, shared.UnboundedFilter())
	if err != nil {
		return nil, err
	}

	plan := warehouse.PlanSectionRequest{
		Name:           req.Name,
		MaintenanceFee: req.MaintenanceFee,
		Conditions:     make([]warehouse.ConditionRequirement, 0, len(req.Conditions)),
	}
	if req.ShelfHeight > 0 {
		plan.Layout = warehouse.LayoutShelved
		plan.NumShelves = req.RowCount
		plan.ShelfHeight = req.ShelfHeight
	} else {
		plan.Layout = warehouse.LayoutFlat
		plan.RowCount = req.RowCount
	}
	for _, cond := range req.Conditions {
		plan.Conditions = append(plan.Conditions, warehouse.ConditionRequirement{
			Type: warehouse.ConditionType(cond.Type),
			Min:  cond.Min,
			Max:  cond.Max,
			Unit: cond.Unit,
		})
	}

	section, err := s.planner.PlanSection(wh, existing, plan)
	if err != nil {
		return nil, err
	}

	if err := s.sectionRepo.Save(ctx, section); err != nil {
		return nil, err
	}
	if err := s.warehouseRepo.SaveWithLock(ctx, wh); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, section.GetDomainEvents())
	section.ClearDomainEvents()

	return ToSectionResponse(section), nil
}

// TerminateSection ends a section lease and returns its floor footprint to
// the warehouse budget. A section holding stock cannot be terminated.
func (s *SectionService) TerminateSection(ctx context.Context, sectionID uuid.UUID) (*SectionResponse, error) {
	section, err := s.sectionRepo.FindByIDWithSlots(ctx, sectionID)
	if err != nil {
		return nil, err
	}

	if err := section.Terminate(); err != nil {
		return nil, err
	}

	wh, err := s.warehouseRepo.FindByID(ctx, s.warehouseID)
	if err != nil {
		return nil, err
	}
	if err := wh.ReleaseSlots(section.FootprintSlots()); err != nil {
		return nil, err
	}

	if err := s.sectionRepo.SaveWithLock(ctx, section); err != nil {
		return nil, err
	}
	if err := s.warehouseRepo.SaveWithLock(ctx, wh); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, section.GetDomainEvents())
	section.ClearDomainEvents()

	return ToSectionResponse(section), nil
}

// ActivateSection reopens a terminated section, charging its footprint
// against the warehouse budget again.
func (s *SectionService) ActivateSection(ctx context.Context, sectionID uuid.UUID) (*SectionResponse, error) {
	section, err := s.sectionRepo.FindByIDWithSlots(ctx, sectionID)
	if err != nil {
		return nil, err
	}

	wh, err := s.warehouseRepo.FindByID(ctx, s.warehouseID)
	if err != nil {
		return nil, err
	}
	if err := wh.ReserveSlots(section.FootprintSlots()); err != nil {
		return nil, err
	}

	if err := section.Activate(); err != nil {
		return nil, err
	}

	if err := s.sectionRepo.SaveWithLock(ctx, section); err != nil {
		return nil, err
	}
	if err := s.warehouseRepo.SaveWithLock(ctx, wh); err != nil {
		return nil, err
	}

	return ToSectionResponse(section), nil
}

// GetSection returns one section
func (s *SectionService) GetSection(ctx context.Context, sectionID uuid.UUID) (*SectionResponse, error) {
	section, err := s.sectionRepo.FindByIDWithSlots(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	return ToSectionResponse(section), nil
}

// ListSections returns all sections of the warehouse
func (s *SectionService) ListSections(ctx context.Context) ([]SectionResponse, error) {
	sections, err := s.sectionRepo.FindByWarehouseWithSlots(ctx, s.warehouseID)
	if err != nil {
		return nil, err
	}
	responses := make([]SectionResponse, 0, len(sections))
	for i := range sections {
		responses = append(responses, *ToSectionResponse(&sections[i]))
	}
	return responses, nil
}

// GetSectionChildren returns shelf summaries for a shelved section and slot
// summaries for a flat one.
func (s *SectionService) GetSectionChildren(ctx context.Context, sectionID uuid.UUID) (*SectionChildrenResponse, error) {
	section, err := s.sectionRepo.FindByIDWithSlots(ctx, sectionID)
	if err != nil {
		return nil, err
	}

	resp := &SectionChildrenResponse{
		SectionID: section.ID,
		Layout:    string(section.Layout),
	}
	if section.Layout == warehouse.LayoutShelved {
		resp.Shelves = make([]ShelfSummary, 0, len(section.Shelves))
		for i := range section.Shelves {
			shelf := &section.Shelves[i]
			resp.Shelves = append(resp.Shelves, ShelfSummary{
				ID:            shelf.ID,
				Position:      shelf.Position,
				TotalSlots:    shelf.TotalSlots(),
				OccupiedSlots: shelf.OccupiedSlots(),
			})
		}
		return resp, nil
	}

	resp.Slots = make([]SlotSummary, 0, len(section.Slots))
	for i := range section.Slots {
		slot := &section.Slots[i]
		resp.Slots = append(resp.Slots, SlotSummary{
			ID:        slot.ID,
			X:         slot.X,
			Y:         slot.Y,
			Occupied:  slot.Occupied,
			ProductID: slot.ProductID,
		})
	}
	return resp, nil
}

// GetWarehouse returns the warehouse capacity summary
func (s *SectionService) GetWarehouse(ctx context.Context) (*WarehouseResponse, error) {
	wh, err := s.warehouseRepo.FindByID(ctx, s.warehouseID)
	if err != nil {
		return nil, err
	}
	sections, err := s.sectionRepo.FindByWarehouse(ctx, s.warehouseID, shared.UnboundedFilter())
	if err != nil {
		return nil, err
	}

	return &WarehouseResponse{
		ID:             wh.ID,
		Name:           wh.Name,
		TotalSlots:     wh.TotalSlots,
		UsedSlots:      wh.UsedSlots,
		AvailableSlots: wh.AvailableSlots(),
		SectionCount:   len(sections),
	}, nil
}

func (s *SectionService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	// Notification failures never fail the operation
	_ = s.eventPublisher.Publish(ctx, events...)
}
