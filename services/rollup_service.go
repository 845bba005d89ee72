package services

import (
	"context"
	"log"
	"math"
	"sort"
	"strconv"
	"sync"

	"github.com/cusloyola/CAPSTONE-sub000/models"
	"github.com/cusloyola/CAPSTONE-sub000/utils"
)

// RollupStore is the persistence surface the quantity roll-up engine needs.
// Implemented by repository.SQLStore; tests use an in-memory fake.
type RollupStore interface {
	ListDimensionEntries(ctx context.Context, proposalLineID, workItemID int) ([]models.DimensionEntry, error)
	GetDimensionEntry(ctx context.Context, qtoID int) (*models.DimensionEntry, error)
	InsertDimensionEntry(ctx context.Context, e *models.DimensionEntry) error
	UpdateDimensionEntry(ctx context.Context, e *models.DimensionEntry) error
	DeleteDimensionEntry(ctx context.Context, qtoID int) error

	UpsertChildrenTotal(ctx context.Context, t models.ChildrenTotal) error
	ListChildrenTotals(ctx context.Context, proposalLineID int) ([]models.ChildrenTotal, error)

	// WorkItemParents maps each work item id to its parent work item id.
	// Work items without a parent are absent from the result.
	WorkItemParents(ctx context.Context, workItemIDs []int) (map[int]int, error)

	// UpsertParentTotalValue writes the pure sum and refreshes the cached
	// total_with_allowance from the stored allowance percent.
	UpsertParentTotalValue(ctx context.Context, proposalLineID, parentWorkItemID int, totalValue float64) error
	ListParentTotals(ctx context.Context, proposalLineID int) ([]models.ParentTotal, error)

	// UpdateAllowance bulk-sets allowance_percent for every parent total of
	// the line and recomputes total_with_allowance. Returns rows updated.
	UpdateAllowance(ctx context.Context, proposalLineID int, allowancePercent float64) (int64, error)

	// ListProposalLinesWithDimensions returns every proposal line id that has
	// at least one dimension entry. Used by the nightly consistency audit.
	ListProposalLinesWithDimensions(ctx context.Context) ([]int, error)
}

type pairKey struct {
	proposalLineID int
	workItemID     int
}

// RollupService recomputes children and parent totals after every dimension
// mutation. Children recomputes for the same (proposal line, work item) pair
// are serialized by a per-pair lock; parent recomputes are serialized by a
// per-line lock so no recompute can write a parent total based on a stale
// read of the children totals. Together the two locks guarantee the stored
// totals reflect the latest committed set of entries once every cascade
// returns.
type RollupService struct {
	store RollupStore

	mu        sync.Mutex
	pairLocks map[pairKey]*sync.Mutex
	lineLocks map[int]*sync.Mutex
}

func NewRollupService(store RollupStore) *RollupService {
	return &RollupService{
		store:     store,
		pairLocks: make(map[pairKey]*sync.Mutex),
		lineLocks: make(map[int]*sync.Mutex),
	}
}

func (s *RollupService) pairLock(key pairKey) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.pairLocks[key]
	if !ok {
		l = &sync.Mutex{}
		s.pairLocks[key] = l
	}
	return l
}

func (s *RollupService) lineLock(proposalLineID int) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.lineLocks[proposalLineID]
	if !ok {
		l = &sync.Mutex{}
		s.lineLocks[proposalLineID] = l
	}
	return l
}

// SubmitDimensions validates and inserts a batch of dimension entries, then
// runs the full roll-up cascade for every affected (line, work item) pair.
// Returns the refreshed parent totals of every affected proposal line.
func (s *RollupService) SubmitDimensions(ctx context.Context, entries []models.DimensionEntry) ([]models.ParentTotal, error) {
	if len(entries) == 0 {
		return nil, &models.ValidationError{Field: "entries", Reason: "at least one dimension entry is required"}
	}
	for i := range entries {
		if err := validateDimension(&entries[i]); err != nil {
			return nil, err
		}
	}

	affected := make(map[pairKey]bool)
	for i := range entries {
		e := &entries[i]
		e.ComputedValue = e.Compute()
		if err := s.store.InsertDimensionEntry(ctx, e); err != nil {
			return nil, err
		}
		affected[pairKey{e.ProposalLineID, e.WorkItemID}] = true
	}

	return s.cascadePairs(ctx, affected)
}

// UpdateDimensionInput carries the editable fields of a dimension entry.
type UpdateDimensionInput struct {
	Label  string   `json:"label"`
	Length float64  `json:"length"`
	Width  float64  `json:"width"`
	Depth  *float64 `json:"depth"`
	Units  float64  `json:"units"`
}

// UpdateDimension edits one entry and re-runs the cascade for its pair.
func (s *RollupService) UpdateDimension(ctx context.Context, qtoID int, in UpdateDimensionInput) ([]models.ParentTotal, error) {
	e, err := s.store.GetDimensionEntry(ctx, qtoID)
	if err != nil {
		return nil, err
	}

	e.Label = in.Label
	e.Length = in.Length
	e.Width = in.Width
	e.Depth = in.Depth
	e.Units = in.Units
	if err := validateDimension(e); err != nil {
		return nil, err
	}
	e.ComputedValue = e.Compute()

	if err := s.store.UpdateDimensionEntry(ctx, e); err != nil {
		return nil, err
	}

	return s.cascadePairs(ctx, map[pairKey]bool{{e.ProposalLineID, e.WorkItemID}: true})
}

// DeleteDimension removes one entry and re-runs the cascade for its pair.
func (s *RollupService) DeleteDimension(ctx context.Context, qtoID int) ([]models.ParentTotal, error) {
	e, err := s.store.GetDimensionEntry(ctx, qtoID)
	if err != nil {
		return nil, err
	}

	if err := s.store.DeleteDimensionEntry(ctx, qtoID); err != nil {
		return nil, err
	}

	return s.cascadePairs(ctx, map[pairKey]bool{{e.ProposalLineID, e.WorkItemID}: true})
}

// cascadePairs recomputes the children total of every affected pair, then the
// parent totals of every affected proposal line. Children before parents is a
// correctness invariant, not an optimization: a skipped parent recompute
// leaves stale parent totals.
func (s *RollupService) cascadePairs(ctx context.Context, affected map[pairKey]bool) ([]models.ParentTotal, error) {
	lines := make(map[int]bool)
	for key := range affected {
		if _, err := s.RecomputeChildrenTotal(ctx, key.proposalLineID, key.workItemID); err != nil {
			return nil, err
		}
		lines[key.proposalLineID] = true
	}

	var totals []models.ParentTotal
	for lineID := range lines {
		lineTotals, err := s.RecomputeParentTotals(ctx, lineID)
		if err != nil {
			return nil, err
		}
		totals = append(totals, lineTotals...)
	}

	sort.Slice(totals, func(i, j int) bool {
		if totals[i].ProposalLineID != totals[j].ProposalLineID {
			return totals[i].ProposalLineID < totals[j].ProposalLineID
		}
		return totals[i].ParentWorkItemID < totals[j].ParentWorkItemID
	})
	return totals, nil
}

// RecomputeChildrenTotal reads every dimension entry of the pair, sums the
// computed values and overwrites the children total row (0 when no entries
// remain). Idempotent: re-running with unchanged entries yields the same
// total.
func (s *RollupService) RecomputeChildrenTotal(ctx context.Context, proposalLineID, workItemID int) (float64, error) {
	lock := s.pairLock(pairKey{proposalLineID, workItemID})
	lock.Lock()
	defer lock.Unlock()

	entries, err := s.store.ListDimensionEntries(ctx, proposalLineID, workItemID)
	if err != nil {
		return 0, err
	}

	var total float64
	for i := range entries {
		total += entries[i].ComputedValue
	}

	err = s.store.UpsertChildrenTotal(ctx, models.ChildrenTotal{
		ProposalLineID: proposalLineID,
		WorkItemID:     workItemID,
		TotalVolume:    total,
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

// RecomputeParentTotals groups the line's children totals by the parent of
// each work item and upserts one parent total per parent. Parents whose
// membership set emptied out are zeroed rather than left stale. The per-line
// lock covers the read-then-write as a whole: without it, a concurrent
// cascade could commit newer children totals between this recompute's read
// and its write, and the later write would stick with the stale sum.
func (s *RollupService) RecomputeParentTotals(ctx context.Context, proposalLineID int) ([]models.ParentTotal, error) {
	lock := s.lineLock(proposalLineID)
	lock.Lock()
	defer lock.Unlock()

	children, err := s.store.ListChildrenTotals(ctx, proposalLineID)
	if err != nil {
		return nil, err
	}

	itemIDs := make([]int, 0, len(children))
	for i := range children {
		itemIDs = append(itemIDs, children[i].WorkItemID)
	}
	parents, err := s.store.WorkItemParents(ctx, itemIDs)
	if err != nil {
		return nil, err
	}

	sums := make(map[int]float64)
	for i := range children {
		parentID, ok := parents[children[i].WorkItemID]
		if !ok {
			// Top-level work item: it is its own roll-up target.
			parentID = children[i].WorkItemID
		}
		sums[parentID] += children[i].TotalVolume
	}

	existing, err := s.store.ListParentTotals(ctx, proposalLineID)
	if err != nil {
		return nil, err
	}
	for i := range existing {
		if _, ok := sums[existing[i].ParentWorkItemID]; !ok {
			sums[existing[i].ParentWorkItemID] = 0
		}
	}

	for parentID, total := range sums {
		if err := s.store.UpsertParentTotalValue(ctx, proposalLineID, parentID, total); err != nil {
			return nil, err
		}
	}

	return s.store.ListParentTotals(ctx, proposalLineID)
}

// ApplyAllowance bulk-updates every parent total of the proposal line with
// the allowance multiplier. Returns rows updated; NotFoundError when the line
// has no parent totals yet.
func (s *RollupService) ApplyAllowance(ctx context.Context, proposalLineID int, allowancePercent float64) (int64, error) {
	if allowancePercent <= 0 {
		return 0, &models.ValidationError{Field: "allowance_percent", Reason: "must be a positive multiplier"}
	}

	rows, err := s.store.UpdateAllowance(ctx, proposalLineID, allowancePercent)
	if err != nil {
		return 0, err
	}
	if rows == 0 {
		return 0, &models.NotFoundError{Entity: "parent totals", Key: strconv.Itoa(proposalLineID)}
	}
	return rows, nil
}

// AuditParentTotals re-runs the parent roll-up for every proposal line with
// dimension data and logs any stored-vs-recomputed drift. Recomputes are
// idempotent, so the audit is safe to re-run at any time.
func (s *RollupService) AuditParentTotals(ctx context.Context, logger *log.Logger) error {
	lineIDs, err := s.store.ListProposalLinesWithDimensions(ctx)
	if err != nil {
		return err
	}

	for _, lineID := range lineIDs {
		before, err := s.store.ListParentTotals(ctx, lineID)
		if err != nil {
			return err
		}
		stored := make(map[int]float64, len(before))
		for i := range before {
			stored[before[i].ParentWorkItemID] = before[i].TotalValue
		}

		after, err := s.RecomputeParentTotals(ctx, lineID)
		if err != nil {
			return err
		}
		for i := range after {
			prev, ok := stored[after[i].ParentWorkItemID]
			if !ok || math.Abs(prev-after[i].TotalValue) > 1e-9 {
				if logger != nil {
					logger.Printf("parent total drift on line %d parent %d: stored %.4f recomputed %.4f",
						lineID, after[i].ParentWorkItemID, prev, after[i].TotalValue)
				}
			}
		}
	}
	return nil
}

func validateDimension(e *models.DimensionEntry) error {
	switch {
	case e.ProposalLineID <= 0:
		return &models.ValidationError{Field: "proposal_line_id", Reason: "required"}
	case e.WorkItemID <= 0:
		return &models.ValidationError{Field: "work_item_id", Reason: "required"}
	case e.Length <= 0:
		return &models.ValidationError{Field: "length", Reason: "must be positive"}
	case e.Width <= 0:
		return &models.ValidationError{Field: "width", Reason: "must be positive"}
	case e.Depth != nil && *e.Depth < 0:
		return &models.ValidationError{Field: "depth", Reason: "must not be negative"}
	case e.Units <= 0:
		return &models.ValidationError{Field: "units", Reason: "must be positive"}
	}
	return nil
}

// allowanceTotal mirrors the SQL-side rounding of total_with_allowance.
func allowanceTotal(totalValue, allowancePercent float64) float64 {
	return utils.Round2(totalValue * allowancePercent)
}
