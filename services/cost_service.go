package services

import (
	"context"
	"strconv"

	"github.com/cusloyola/CAPSTONE-sub000/models"
	"github.com/cusloyola/CAPSTONE-sub000/utils"
)

// CostStore is the persistence surface the cost composition engine needs.
type CostStore interface {
	GetProposalLine(ctx context.Context, proposalLineID int) (*models.ProposalLine, error)
	GetWorkItem(ctx context.Context, workItemID int) (*models.WorkItem, error)

	// GetParentTotal returns nil (no error) when the row does not exist;
	// estimation may be viewed before quantities are entered.
	GetParentTotal(ctx context.Context, proposalLineID, parentWorkItemID int) (*models.ParentTotal, error)

	// Cached per-line cost inputs. Zero when no cache row exists.
	GetLaborUnitCost(ctx context.Context, proposalLineID int) (float64, error)
	GetMTOGrandTotal(ctx context.Context, proposalLineID int) (float64, error)

	// RebarWeightsByType sums rebar detail weights grouped by rebar type.
	RebarWeightsByType(ctx context.Context, proposalLineID int) (map[int]float64, error)
	// RebarUnitCosts sums the rebar resource unit costs per rebar type.
	RebarUnitCosts(ctx context.Context, rebarTypeIDs []int) (map[int]float64, error)

	// Labor entry and MTO row mutations, with aggregation inputs for the
	// recompute-after-write hooks.
	InsertLaborEntry(ctx context.Context, e *models.LaborEntry) error
	DeleteLaborEntry(ctx context.Context, laborEntryID int) (proposalLineID int, err error)
	SumLaborEntries(ctx context.Context, proposalLineID int) (float64, error)
	UpsertLaborCost(ctx context.Context, proposalLineID int, unitCost float64) error

	InsertMTORow(ctx context.Context, r *models.MTORow) error
	DeleteMTORow(ctx context.Context, mtoRowID int) (proposalLineID int, err error)
	SumMTORows(ctx context.Context, proposalLineID int) (float64, error)
	UpsertMTOGrandTotal(ctx context.Context, proposalLineID int, grandTotal float64) error
}

// CostService combines rolled-up quantities with labor and material/rebar
// costs into per-line amounts. Quantity sourcing is selected by the work
// item's kind, resolved when the item was defined.
type CostService struct {
	store CostStore
}

func NewCostService(store CostStore) *CostService {
	return &CostService{store: store}
}

// LineAmount computes the current amount of one proposal line. A missing
// parent total is not an error: the quantity defaults to 0 and the amount is
// the labor amount alone.
func (s *CostService) LineAmount(ctx context.Context, proposalLineID int) (*models.FinalCostLine, error) {
	line, err := s.store.GetProposalLine(ctx, proposalLineID)
	if err != nil {
		return nil, err
	}
	item, err := s.store.GetWorkItem(ctx, line.WorkItemID)
	if err != nil {
		return nil, err
	}

	out := &models.FinalCostLine{
		ItemNo:         line.ItemNo,
		ProposalLineID: line.ProposalLineID,
		WorkItemID:     item.WorkItemID,
		WorkItemName:   item.Name,
		WorkTypeName:   item.WorkTypeName,
		Unit:           item.Unit,
	}

	laborUnitCost, err := s.store.GetLaborUnitCost(ctx, proposalLineID)
	if err != nil {
		return nil, err
	}

	switch item.Kind {
	case models.WorkItemRebar:
		weight, rebarTotal, err := s.rebarGrandTotal(ctx, proposalLineID)
		if err != nil {
			return nil, err
		}
		out.Quantity = weight
		out.LaborAmount = utils.Round2(weight * laborUnitCost)
		out.MaterialAmount = rebarTotal
	default:
		qty, err := s.volumetricQuantity(ctx, proposalLineID, item.WorkItemID)
		if err != nil {
			return nil, err
		}
		material, err := s.store.GetMTOGrandTotal(ctx, proposalLineID)
		if err != nil {
			return nil, err
		}
		out.Quantity = qty
		out.LaborAmount = utils.Round2(qty * laborUnitCost)
		out.MaterialAmount = material
	}

	out.Amount = utils.Round2(out.LaborAmount + out.MaterialAmount)
	return out, nil
}

// volumetricQuantity prefers the allowance-adjusted total and falls back to
// the pure sum, then to zero when no parent total exists yet.
func (s *CostService) volumetricQuantity(ctx context.Context, proposalLineID, workItemID int) (float64, error) {
	pt, err := s.store.GetParentTotal(ctx, proposalLineID, workItemID)
	if err != nil {
		return 0, err
	}
	if pt == nil {
		return 0, nil
	}
	if pt.TotalWithAllowance != 0 {
		return pt.TotalWithAllowance, nil
	}
	return pt.TotalValue, nil
}

// rebarGrandTotal prices aggregated rebar weight per type against the rebar
// resource unit costs. Returns the total weight and the priced total.
func (s *CostService) rebarGrandTotal(ctx context.Context, proposalLineID int) (float64, float64, error) {
	weights, err := s.store.RebarWeightsByType(ctx, proposalLineID)
	if err != nil {
		return 0, 0, err
	}
	if len(weights) == 0 {
		return 0, 0, nil
	}

	typeIDs := make([]int, 0, len(weights))
	for typeID := range weights {
		typeIDs = append(typeIDs, typeID)
	}
	costs, err := s.store.RebarUnitCosts(ctx, typeIDs)
	if err != nil {
		return 0, 0, err
	}

	var totalWeight, grandTotal float64
	for typeID, weight := range weights {
		totalWeight += weight
		grandTotal += weight * costs[typeID]
	}
	return totalWeight, utils.Round2(grandTotal), nil
}

// AddLaborEntry inserts a labor entry and refreshes the line's cached labor
// unit cost. The cache is only ever written through this hook.
func (s *CostService) AddLaborEntry(ctx context.Context, e *models.LaborEntry) error {
	if e.ProposalLineID <= 0 {
		return &models.ValidationError{Field: "proposal_line_id", Reason: "required"}
	}
	if e.Rate < 0 || e.Quantity < 0 {
		return &models.ValidationError{Field: "rate", Reason: "rate and quantity must not be negative"}
	}
	e.Cost = utils.Round2(e.Rate * e.Quantity)
	if err := s.store.InsertLaborEntry(ctx, e); err != nil {
		return err
	}
	return s.RefreshLaborCost(ctx, e.ProposalLineID)
}

// RemoveLaborEntry deletes a labor entry and refreshes the cache.
func (s *CostService) RemoveLaborEntry(ctx context.Context, laborEntryID int) error {
	lineID, err := s.store.DeleteLaborEntry(ctx, laborEntryID)
	if err != nil {
		return err
	}
	return s.RefreshLaborCost(ctx, lineID)
}

// RefreshLaborCost recomputes the cached labor unit cost for a line from its
// entries.
func (s *CostService) RefreshLaborCost(ctx context.Context, proposalLineID int) error {
	total, err := s.store.SumLaborEntries(ctx, proposalLineID)
	if err != nil {
		return err
	}
	return s.store.UpsertLaborCost(ctx, proposalLineID, total)
}

// AddMTORow inserts a material take-off row and refreshes the line's cached
// grand total.
func (s *CostService) AddMTORow(ctx context.Context, r *models.MTORow) error {
	if r.ProposalLineID <= 0 {
		return &models.ValidationError{Field: "proposal_line_id", Reason: "required"}
	}
	if r.Quantity < 0 || r.UnitCost < 0 {
		return &models.ValidationError{Field: "quantity", Reason: "quantity and unit cost must not be negative"}
	}
	r.Total = utils.Round2(r.Quantity * r.UnitCost)
	if err := s.store.InsertMTORow(ctx, r); err != nil {
		return err
	}
	return s.RefreshMTOGrandTotal(ctx, r.ProposalLineID)
}

// RemoveMTORow deletes a material take-off row and refreshes the cache.
func (s *CostService) RemoveMTORow(ctx context.Context, mtoRowID int) error {
	lineID, err := s.store.DeleteMTORow(ctx, mtoRowID)
	if err != nil {
		return err
	}
	return s.RefreshMTOGrandTotal(ctx, lineID)
}

// RefreshMTOGrandTotal recomputes the cached material grand total for a line.
func (s *CostService) RefreshMTOGrandTotal(ctx context.Context, proposalLineID int) error {
	total, err := s.store.SumMTORows(ctx, proposalLineID)
	if err != nil {
		return err
	}
	return s.store.UpsertMTOGrandTotal(ctx, proposalLineID, utils.Round2(total))
}

func notFound(entity string, id int) error {
	return &models.NotFoundError{Entity: entity, Key: strconv.Itoa(id)}
}
