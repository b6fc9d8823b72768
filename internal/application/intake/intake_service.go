package intake

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/intake"
	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/warehouse"
)

// IntakeService handles goods entering the warehouse: registering a batch
// as an unaccepted lot, and accepting a lot, which is when slots are
// actually bound.
type IntakeService struct {
	warehouseID    uuid.UUID
	scope          TransactionScope
	matcher        *warehouse.SectionMatcher
	allocator      *warehouse.SlotAllocator
	eventPublisher shared.EventPublisher
}

// NewIntakeService creates a new IntakeService
func NewIntakeService(
	warehouseID uuid.UUID,
	scope TransactionScope,
	matcher *warehouse.SectionMatcher,
	allocator *warehouse.SlotAllocator,
) *IntakeService {
	return &IntakeService{
		warehouseID: warehouseID,
		scope:       scope,
		matcher:     matcher,
		allocator:   allocator,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *IntakeService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// StoreBatch registers an intake batch. Every item is matched to a section
// by layout, live free capacity and storage conditions, and one product row
// is created per physical unit. No slot is bound here.
func (s *IntakeService) StoreBatch(ctx context.Context, req StoreBatchRequest) (*LotResponse, error) {
	kind := catalog.ProductKind(req.Kind)
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Unknown product kind: "+req.Kind)
	}

	requirements := make([]warehouse.ConditionRequirement, 0, len(req.Conditions))
	for _, cond := range req.Conditions {
		requirement := warehouse.ConditionRequirement{
			Type: warehouse.ConditionType(cond.Type),
			Min:  cond.Min,
			Max:  cond.Max,
			Unit: cond.Unit,
		}
		if err := requirement.Validate(); err != nil {
			return nil, err
		}
		requirements = append(requirements, requirement)
	}

	var lot *intake.Lot
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		sections, err := repos.SectionRepo().FindByWarehouseWithSlots(ctx, s.warehouseID)
		if err != nil {
			return err
		}

		lot, err = intake.NewLot(req.SupplierID, intake.RotationPolicy(req.Rotation), req.LotCode, time.Now(), req.Price)
		if err != nil {
			return err
		}

		products := make([]*catalog.Product, 0)
		for _, item := range req.Items {
			details, err := catalog.DetailsFromMap(kind, item.Details)
			if err != nil {
				return err
			}

			section, err := s.matcher.MatchSection(sections, item.OnShelf, item.Quantity, requirements)
			if err != nil {
				return err
			}

			for i := 0; i < item.Quantity; i++ {
				product, err := catalog.NewProduct(kind, item.Name, details, lot.ID, section.ID, item.OnShelf)
				if err != nil {
					return err
				}
				if err := lot.AddItem(product.ID); err != nil {
					return err
				}
				products = append(products, product)
			}
		}

		if err := repos.LotRepo().Save(ctx, lot); err != nil {
			return err
		}
		return repos.ProductRepo().SaveAll(ctx, products)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, lot.GetDomainEvents())
	lot.ClearDomainEvents()

	return ToLotResponse(lot), nil
}

// AcceptLot runs the allocation engine for a lot. It is idempotent: a lot
// that is already accepted reports success without touching any slot. The
// response's Accepted field is false only when the lot does not exist.
func (s *IntakeService) AcceptLot(ctx context.Context, lotID, operatorID uuid.UUID) (*AcceptLotResponse, error) {
	var lot *intake.Lot
	accepted := false

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		lot, err = repos.LotRepo().FindByIDWithItems(ctx, lotID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				lot = nil
				return nil
			}
			return err
		}

		if lot.Accepted {
			accepted = true
			return nil
		}

		products, err := repos.ProductRepo().FindUnstoredByLot(ctx, lotID)
		if err != nil {
			return err
		}

		bySection := make(map[uuid.UUID][]*catalog.Product)
		order := make([]uuid.UUID, 0)
		for i := range products {
			product := &products[i]
			if _, seen := bySection[product.SectionID]; !seen {
				order = append(order, product.SectionID)
			}
			bySection[product.SectionID] = append(bySection[product.SectionID], product)
		}

		for _, sectionID := range order {
			section, err := repos.SectionRepo().FindByIDWithSlots(ctx, sectionID)
			if err != nil {
				return err
			}

			for _, product := range bySection[sectionID] {
				slot, err := s.allocator.AllocateSlot(section, product.ID)
				if err != nil {
					return err
				}
				if err := product.BindSlot(slot.GetID(), catalog.SlotKind(slot.Kind())); err != nil {
					return err
				}
			}

			// The optimistic version check serializes concurrent
			// allocations targeting the same section
			section.IncrementVersion()
			if err := repos.SectionRepo().SaveWithLock(ctx, section); err != nil {
				return err
			}

			movement, err := inventory.NewStockMovement(
				inventory.MovementImport, inventory.SourceLot,
				lot.ID, sectionID, operatorID, len(bySection[sectionID]))
			if err != nil {
				return err
			}
			if err := repos.MovementRepo().Record(ctx, movement); err != nil {
				return err
			}
		}

		updated := make([]*catalog.Product, 0, len(products))
		for i := range products {
			updated = append(updated, &products[i])
		}
		if err := repos.ProductRepo().SaveAll(ctx, updated); err != nil {
			return err
		}

		lot.Accept()
		if err := repos.LotRepo().SaveWithLock(ctx, lot); err != nil {
			return err
		}
		accepted = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if lot == nil {
		return &AcceptLotResponse{LotID: lotID, Accepted: false}, nil
	}

	s.publishEvents(ctx, lot.GetDomainEvents())
	lot.ClearDomainEvents()

	return &AcceptLotResponse{LotID: lotID, Accepted: accepted}, nil
}

// GetLot returns one lot
func (s *IntakeService) GetLot(ctx context.Context, lotID uuid.UUID) (*LotResponse, error) {
	var lot *intake.Lot
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		lot, err = repos.LotRepo().FindByIDWithItems(ctx, lotID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ToLotResponse(lot), nil
}

// ListUnacceptedLots lists lots still waiting for acceptance
func (s *IntakeService) ListUnacceptedLots(ctx context.Context) ([]LotResponse, error) {
	var lots []intake.Lot
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		lots, err = repos.LotRepo().FindUnaccepted(ctx, shared.DefaultFilter())
		return err
	})
	if err != nil {
		return nil, err
	}
	responses := make([]LotResponse, 0, len(lots))
	for i := range lots {
		responses = append(responses, *ToLotResponse(&lots[i]))
	}
	return responses, nil
}

func (s *IntakeService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	// Notification failures never fail the operation
	_ = s.eventPublisher.Publish(ctx, events...)
}
