package dispatch

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/dispatch"
	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/warehouse"
)

// DispatchService handles goods leaving the warehouse: building a pending
// dispatch from a retrieval request, and the accept/reject/complete
// decisions that follow.
type DispatchService struct {
	scope          TransactionScope
	selector       *dispatch.RetrievalSelector
	allocator      *warehouse.SlotAllocator
	eventPublisher shared.EventPublisher
}

// NewDispatchService creates a new DispatchService
func NewDispatchService(
	scope TransactionScope,
	selector *dispatch.RetrievalSelector,
	allocator *warehouse.SlotAllocator,
) *DispatchService {
	return &DispatchService{
		scope:     scope,
		selector:  selector,
		allocator: allocator,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *DispatchService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateRetrieveRequest builds a pending dispatch. For every line it
// resolves the reference product, collects the interchangeable candidate
// pool, orders it by the originating lot's rotation policy and claims the
// selected units. Lines that resolve to the same signature draw from one
// shared pool, so each unit is picked by at most one line. The final claim
// is a conditional update on unreserved rows, so two overlapping requests
// can never reserve the same unit.
func (s *DispatchService) CreateRetrieveRequest(ctx context.Context, req CreateRetrieveRequest) (*DispatchResponse, error) {
	var created *dispatch.Dispatch

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		d, err := dispatch.NewDispatch(req.RequesterID)
		if err != nil {
			return err
		}

		now := time.Now()
		taken := make(map[uuid.UUID]bool)
		for _, line := range req.Lines {
			reference, err := repos.ProductRepo().FindByID(ctx, line.ProductID)
			if err != nil {
				return err
			}

			referenceLot, err := repos.LotRepo().FindByID(ctx, reference.LotID)
			if err != nil {
				return err
			}

			pool, err := repos.ProductRepo().FindAvailableByKindAndName(ctx, reference.Kind, reference.Name)
			if err != nil {
				return err
			}
			// Units picked by an earlier line of this request are not
			// reserved yet, so the repository still reports them available
			if len(taken) > 0 {
				remaining := make([]catalog.Product, 0, len(pool))
				for i := range pool {
					if !taken[pool[i].ID] {
						remaining = append(remaining, pool[i])
					}
				}
				pool = remaining
			}
			candidates, err := s.buildCandidates(ctx, repos, pool)
			if err != nil {
				return err
			}

			selected, err := s.selector.Select(reference, candidates, line.Quantity, referenceLot.Rotation)
			if err != nil {
				return err
			}

			selectedIDs := make([]uuid.UUID, 0, len(selected))
			for _, candidate := range selected {
				selectedIDs = append(selectedIDs, candidate.Product.ID)
				taken[candidate.Product.ID] = true
			}
			if err := d.AddItem(reference.Name, line.Quantity, now, selectedIDs); err != nil {
				return err
			}
		}

		// Claim-then-commit: the update only touches rows that are still
		// free, so a lost race surfaces as a short claim count
		allSelected := d.SelectedProductIDs()
		claimed, err := repos.ProductRepo().ReserveForDispatch(ctx, allSelected, d.ID)
		if err != nil {
			return err
		}
		if claimed != int64(len(allSelected)) {
			return shared.ErrConcurrencyConflict
		}

		if err := repos.DispatchRepo().Save(ctx, d); err != nil {
			return err
		}

		d.AddDomainEvent(dispatch.NewRetrievalRequestedEvent(d))
		created = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, created.GetDomainEvents())
	created.ClearDomainEvents()

	return ToDispatchResponse(created), nil
}

// buildCandidates joins each pool product with its lot's import date
func (s *DispatchService) buildCandidates(ctx context.Context, repos TransactionalRepositories, pool []catalog.Product) ([]dispatch.Candidate, error) {
	lotIDs := make([]uuid.UUID, 0, len(pool))
	seen := make(map[uuid.UUID]bool)
	for i := range pool {
		if !seen[pool[i].LotID] {
			seen[pool[i].LotID] = true
			lotIDs = append(lotIDs, pool[i].LotID)
		}
	}

	lots, err := repos.LotRepo().FindByIDs(ctx, lotIDs)
	if err != nil {
		return nil, err
	}
	importDates := make(map[uuid.UUID]time.Time, len(lots))
	for i := range lots {
		importDates[lots[i].ID] = lots[i].ImportDate
	}

	candidates := make([]dispatch.Candidate, 0, len(pool))
	for i := range pool {
		candidates = append(candidates, dispatch.Candidate{
			Product:       &pool[i],
			LotImportDate: importDates[pool[i].LotID],
		})
	}
	return candidates, nil
}

// AcceptDispatch confirms a pending dispatch: every selected unit gets its
// dispatch binding finalized, leaves its slot, and an EXPORT movement is
// recorded per section.
func (s *DispatchService) AcceptDispatch(ctx context.Context, dispatchID, operatorID uuid.UUID) (*DispatchResponse, error) {
	var accepted *dispatch.Dispatch

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		d, err := repos.DispatchRepo().FindByIDWithItems(ctx, dispatchID)
		if err != nil {
			return err
		}
		if err := d.Accept(); err != nil {
			return err
		}

		products, err := repos.ProductRepo().FindByPendingDispatch(ctx, dispatchID)
		if err != nil {
			return err
		}

		exportedBySection := make(map[uuid.UUID]int)
		for i := range products {
			product := &products[i]
			if err := product.ConfirmDispatch(dispatchID); err != nil {
				return err
			}

			if product.SlotID != nil {
				section, err := repos.SectionRepo().FindByIDWithSlots(ctx, product.SectionID)
				if err != nil {
					return err
				}
				if _, err := s.allocator.ReleaseSlot(section, product.ID); err != nil {
					return err
				}
				section.IncrementVersion()
				if err := repos.SectionRepo().SaveWithLock(ctx, section); err != nil {
					return err
				}
				product.UnbindSlot()
			}
			exportedBySection[product.SectionID]++
		}

		updated := make([]*catalog.Product, 0, len(products))
		for i := range products {
			updated = append(updated, &products[i])
		}
		if err := repos.ProductRepo().SaveAll(ctx, updated); err != nil {
			return err
		}

		for sectionID, quantity := range exportedBySection {
			movement, err := inventory.NewStockMovement(
				inventory.MovementExport, inventory.SourceDispatch,
				d.ID, sectionID, operatorID, quantity)
			if err != nil {
				return err
			}
			if err := repos.MovementRepo().Record(ctx, movement); err != nil {
				return err
			}
		}

		if err := repos.DispatchRepo().SaveWithLock(ctx, d); err != nil {
			return err
		}
		accepted = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, accepted.GetDomainEvents())
	accepted.ClearDomainEvents()

	return ToDispatchResponse(accepted), nil
}

// RejectDispatch declines a pending dispatch and returns every reserved
// unit to the available pool.
func (s *DispatchService) RejectDispatch(ctx context.Context, dispatchID uuid.UUID, reason string) (*DispatchResponse, error) {
	var rejected *dispatch.Dispatch

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		d, err := repos.DispatchRepo().FindByIDWithItems(ctx, dispatchID)
		if err != nil {
			return err
		}
		if err := d.Reject(reason); err != nil {
			return err
		}

		if err := repos.ProductRepo().ReleaseReservation(ctx, dispatchID); err != nil {
			return err
		}

		if err := repos.DispatchRepo().SaveWithLock(ctx, d); err != nil {
			return err
		}
		rejected = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, rejected.GetDomainEvents())
	rejected.ClearDomainEvents()

	return ToDispatchResponse(rejected), nil
}

// CompleteDispatch closes out an accepted dispatch
func (s *DispatchService) CompleteDispatch(ctx context.Context, dispatchID uuid.UUID) (*DispatchResponse, error) {
	var completed *dispatch.Dispatch

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		d, err := repos.DispatchRepo().FindByIDWithItems(ctx, dispatchID)
		if err != nil {
			return err
		}
		if err := d.Complete(); err != nil {
			return err
		}
		if err := repos.DispatchRepo().SaveWithLock(ctx, d); err != nil {
			return err
		}
		completed = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, completed.GetDomainEvents())
	completed.ClearDomainEvents()

	return ToDispatchResponse(completed), nil
}

// GetDispatch returns one dispatch
func (s *DispatchService) GetDispatch(ctx context.Context, dispatchID uuid.UUID) (*DispatchResponse, error) {
	var found *dispatch.Dispatch
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		found, err = repos.DispatchRepo().FindByIDWithItems(ctx, dispatchID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ToDispatchResponse(found), nil
}

// ListDispatchesByStatus lists dispatches in one state
func (s *DispatchService) ListDispatchesByStatus(ctx context.Context, status dispatch.DispatchStatus) ([]DispatchResponse, error) {
	var dispatches []dispatch.Dispatch
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		dispatches, err = repos.DispatchRepo().FindByStatus(ctx, status, shared.DefaultFilter())
		return err
	})
	if err != nil {
		return nil, err
	}
	responses := make([]DispatchResponse, 0, len(dispatches))
	for i := range dispatches {
		responses = append(responses, *ToDispatchResponse(&dispatches[i]))
	}
	return responses, nil
}

func (s *DispatchService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	// Notification failures never fail the operation
	_ = s.eventPublisher.Publish(ctx, events...)
}
