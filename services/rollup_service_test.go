package services

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/cusloyola/CAPSTONE-sub000/models"
	"github.com/cusloyola/CAPSTONE-sub000/utils"
)

type fakeRollupStore struct {
	mu      sync.Mutex
	nextID  int
	entries map[int]models.DimensionEntry

	children map[pairKey]float64
	parents  map[pairKey]models.ParentTotal

	// work item id -> parent work item id; absent means top-level
	itemParents map[int]int
}

func newFakeRollupStore() *fakeRollupStore {
	return &fakeRollupStore{
		entries:     make(map[int]models.DimensionEntry),
		children:    make(map[pairKey]float64),
		parents:     make(map[pairKey]models.ParentTotal),
		itemParents: make(map[int]int),
	}
}

func (f *fakeRollupStore) ListDimensionEntries(_ context.Context, proposalLineID, workItemID int) ([]models.DimensionEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.DimensionEntry
	for _, e := range f.entries {
		if e.ProposalLineID == proposalLineID && e.WorkItemID == workItemID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeRollupStore) GetDimensionEntry(_ context.Context, qtoID int) (*models.DimensionEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[qtoID]
	if !ok {
		return nil, &models.NotFoundError{Entity: "dimension entry", Key: strconv.Itoa(qtoID)}
	}
	return &e, nil
}

func (f *fakeRollupStore) InsertDimensionEntry(_ context.Context, e *models.DimensionEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	e.QTOID = f.nextID
	f.entries[e.QTOID] = *e
	return nil
}

func (f *fakeRollupStore) UpdateDimensionEntry(_ context.Context, e *models.DimensionEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.entries[e.QTOID]; !ok {
		return &models.NotFoundError{Entity: "dimension entry", Key: strconv.Itoa(e.QTOID)}
	}
	f.entries[e.QTOID] = *e
	return nil
}

func (f *fakeRollupStore) DeleteDimensionEntry(_ context.Context, qtoID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.entries[qtoID]; !ok {
		return &models.NotFoundError{Entity: "dimension entry", Key: strconv.Itoa(qtoID)}
	}
	delete(f.entries, qtoID)
	return nil
}

func (f *fakeRollupStore) UpsertChildrenTotal(_ context.Context, t models.ChildrenTotal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.children[pairKey{t.ProposalLineID, t.WorkItemID}] = t.TotalVolume
	return nil
}

func (f *fakeRollupStore) ListChildrenTotals(_ context.Context, proposalLineID int) ([]models.ChildrenTotal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ChildrenTotal
	for key, total := range f.children {
		if key.proposalLineID == proposalLineID {
			out = append(out, models.ChildrenTotal{
				ProposalLineID: key.proposalLineID,
				WorkItemID:     key.workItemID,
				TotalVolume:    total,
			})
		}
	}
	return out, nil
}

func (f *fakeRollupStore) WorkItemParents(_ context.Context, workItemIDs []int) (map[int]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[int]int)
	for _, id := range workItemIDs {
		if parent, ok := f.itemParents[id]; ok {
			out[id] = parent
		}
	}
	return out, nil
}

func (f *fakeRollupStore) UpsertParentTotalValue(_ context.Context, proposalLineID, parentWorkItemID int, totalValue float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := pairKey{proposalLineID, parentWorkItemID}
	pt, ok := f.parents[key]
	if !ok {
		pt = models.ParentTotal{ProposalLineID: proposalLineID, ParentWorkItemID: parentWorkItemID}
	}
	pt.TotalValue = totalValue
	pt.TotalWithAllowance = allowanceTotal(totalValue, pt.AllowancePercent)
	f.parents[key] = pt
	return nil
}

func (f *fakeRollupStore) ListParentTotals(_ context.Context, proposalLineID int) ([]models.ParentTotal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ParentTotal
	for key, pt := range f.parents {
		if key.proposalLineID == proposalLineID {
			out = append(out, pt)
		}
	}
	return out, nil
}

func (f *fakeRollupStore) UpdateAllowance(_ context.Context, proposalLineID int, allowancePercent float64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var rows int64
	for key, pt := range f.parents {
		if key.proposalLineID == proposalLineID {
			pt.AllowancePercent = allowancePercent
			pt.TotalWithAllowance = allowanceTotal(pt.TotalValue, allowancePercent)
			f.parents[key] = pt
			rows++
		}
	}
	return rows, nil
}

func (f *fakeRollupStore) ListProposalLinesWithDimensions(_ context.Context) ([]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := make(map[int]bool)
	var out []int
	for _, e := range f.entries {
		if !seen[e.ProposalLineID] {
			seen[e.ProposalLineID] = true
			out = append(out, e.ProposalLineID)
		}
	}
	return out, nil
}

func depth(v float64) *float64 { return &v }

func TestDimensionCompute(t *testing.T) {
	cases := []struct {
		name  string
		entry models.DimensionEntry
		want  float64
	}{
		{"no depth", models.DimensionEntry{Length: 2, Width: 3, Units: 1}, 6},
		{"zero depth treated as flat", models.DimensionEntry{Length: 4, Width: 1, Depth: depth(0), Units: 1}, 4},
		{"with depth", models.DimensionEntry{Length: 1, Width: 1, Depth: depth(2), Units: 5}, 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.entry.Compute(); got != tc.want {
				t.Fatalf("Compute() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSubmitDimensionsRollsUp(t *testing.T) {
	store := newFakeRollupStore()
	// Items 10 and 11 both roll up to parent 4.
	store.itemParents[10] = 4
	store.itemParents[11] = 4
	svc := NewRollupService(store)
	ctx := context.Background()

	totals, err := svc.SubmitDimensions(ctx, []models.DimensionEntry{
		{ProposalLineID: 101, WorkItemID: 10, Length: 2, Width: 3, Units: 1},
		{ProposalLineID: 101, WorkItemID: 10, Length: 4, Width: 1, Depth: depth(0), Units: 1},
		{ProposalLineID: 101, WorkItemID: 11, Length: 1, Width: 1, Depth: depth(2), Units: 5},
	})
	if err != nil {
		t.Fatalf("SubmitDimensions: %v", err)
	}

	if len(totals) != 1 {
		t.Fatalf("expected 1 parent total, got %d", len(totals))
	}
	if totals[0].ParentWorkItemID != 4 {
		t.Fatalf("parent work item = %d, want 4", totals[0].ParentWorkItemID)
	}
	if totals[0].TotalValue != 20 {
		t.Fatalf("parent total = %v, want 20", totals[0].TotalValue)
	}
	if store.children[pairKey{101, 10}] != 10 {
		t.Fatalf("children total of item 10 = %v, want 10", store.children[pairKey{101, 10}])
	}
	if store.children[pairKey{101, 11}] != 10 {
		t.Fatalf("children total of item 11 = %v, want 10", store.children[pairKey{101, 11}])
	}
}

func TestSubmitDimensionsValidation(t *testing.T) {
	svc := NewRollupService(newFakeRollupStore())
	ctx := context.Background()

	if _, err := svc.SubmitDimensions(ctx, nil); !models.IsValidation(err) {
		t.Fatalf("empty batch: got %v, want validation error", err)
	}

	_, err := svc.SubmitDimensions(ctx, []models.DimensionEntry{
		{ProposalLineID: 101, WorkItemID: 10, Length: -1, Width: 3, Units: 1},
	})
	if !models.IsValidation(err) {
		t.Fatalf("negative length: got %v, want validation error", err)
	}
}

func TestRecomputeIsIdempotent(t *testing.T) {
	store := newFakeRollupStore()
	store.itemParents[10] = 4
	svc := NewRollupService(store)
	ctx := context.Background()

	_, err := svc.SubmitDimensions(ctx, []models.DimensionEntry{
		{ProposalLineID: 101, WorkItemID: 10, Length: 2, Width: 5, Units: 3},
	})
	if err != nil {
		t.Fatalf("SubmitDimensions: %v", err)
	}

	first := store.parents[pairKey{101, 4}].TotalValue
	for i := 0; i < 3; i++ {
		if _, err := svc.RecomputeParentTotals(ctx, 101); err != nil {
			t.Fatalf("recompute %d: %v", i, err)
		}
	}
	if got := store.parents[pairKey{101, 4}].TotalValue; got != first {
		t.Fatalf("recompute changed a stable total: %v -> %v", first, got)
	}
}

func TestDeleteDimensionZeroesEmptiedTotals(t *testing.T) {
	store := newFakeRollupStore()
	store.itemParents[10] = 4
	svc := NewRollupService(store)
	ctx := context.Background()

	_, err := svc.SubmitDimensions(ctx, []models.DimensionEntry{
		{ProposalLineID: 101, WorkItemID: 10, Length: 2, Width: 5, Units: 3},
	})
	if err != nil {
		t.Fatalf("SubmitDimensions: %v", err)
	}
	qtoID := 1

	if _, err := svc.DeleteDimension(ctx, qtoID); err != nil {
		t.Fatalf("DeleteDimension: %v", err)
	}

	if got := store.children[pairKey{101, 10}]; got != 0 {
		t.Fatalf("children total after delete = %v, want 0", got)
	}
	if got := store.parents[pairKey{101, 4}].TotalValue; got != 0 {
		t.Fatalf("parent total after delete = %v, want 0 (stale total left behind)", got)
	}
}

func TestUpdateDimensionCascades(t *testing.T) {
	store := newFakeRollupStore()
	store.itemParents[10] = 4
	svc := NewRollupService(store)
	ctx := context.Background()

	_, err := svc.SubmitDimensions(ctx, []models.DimensionEntry{
		{ProposalLineID: 101, WorkItemID: 10, Length: 2, Width: 3, Units: 1},
	})
	if err != nil {
		t.Fatalf("SubmitDimensions: %v", err)
	}

	totals, err := svc.UpdateDimension(ctx, 1, UpdateDimensionInput{
		Length: 10, Width: 2, Units: 1,
	})
	if err != nil {
		t.Fatalf("UpdateDimension: %v", err)
	}
	if totals[0].TotalValue != 20 {
		t.Fatalf("parent total after update = %v, want 20", totals[0].TotalValue)
	}
}

func TestTopLevelItemRollsUpToItself(t *testing.T) {
	store := newFakeRollupStore()
	svc := NewRollupService(store)
	ctx := context.Background()

	totals, err := svc.SubmitDimensions(ctx, []models.DimensionEntry{
		{ProposalLineID: 101, WorkItemID: 12, Length: 3, Width: 3, Units: 2},
	})
	if err != nil {
		t.Fatalf("SubmitDimensions: %v", err)
	}
	if len(totals) != 1 || totals[0].ParentWorkItemID != 12 {
		t.Fatalf("top-level item should be its own roll-up target, got %+v", totals)
	}
	if totals[0].TotalValue != 18 {
		t.Fatalf("total = %v, want 18", totals[0].TotalValue)
	}
}

func TestApplyAllowance(t *testing.T) {
	store := newFakeRollupStore()
	store.itemParents[10] = 4
	svc := NewRollupService(store)
	ctx := context.Background()

	_, err := svc.SubmitDimensions(ctx, []models.DimensionEntry{
		{ProposalLineID: 101, WorkItemID: 10, Length: 10, Width: 10, Depth: depth(10), Units: 1},
	})
	if err != nil {
		t.Fatalf("SubmitDimensions: %v", err)
	}

	rows, err := svc.ApplyAllowance(ctx, 101, 1.05)
	if err != nil {
		t.Fatalf("ApplyAllowance: %v", err)
	}
	if rows != 1 {
		t.Fatalf("rows updated = %d, want 1", rows)
	}

	pt := store.parents[pairKey{101, 4}]
	if pt.TotalValue != 1000 {
		t.Fatalf("total value = %v, want 1000", pt.TotalValue)
	}
	if pt.TotalWithAllowance != 1050.00 {
		t.Fatalf("total with allowance = %v, want 1050.00", pt.TotalWithAllowance)
	}

	// A later quantity recompute refreshes the cached allowance total too.
	_, err = svc.SubmitDimensions(ctx, []models.DimensionEntry{
		{ProposalLineID: 101, WorkItemID: 10, Length: 10, Width: 10, Depth: depth(10), Units: 1},
	})
	if err != nil {
		t.Fatalf("second SubmitDimensions: %v", err)
	}
	pt = store.parents[pairKey{101, 4}]
	if pt.TotalWithAllowance != utils.Round2(2000*1.05) {
		t.Fatalf("allowance cache not refreshed: %v, want %v", pt.TotalWithAllowance, utils.Round2(2000*1.05))
	}

	if _, err := svc.ApplyAllowance(ctx, 101, 0); !models.IsValidation(err) {
		t.Fatalf("zero allowance: got %v, want validation error", err)
	}
	if _, err := svc.ApplyAllowance(ctx, 999, 1.1); !models.IsNotFound(err) {
		t.Fatalf("unknown line: got %v, want not found error", err)
	}
}

func TestConcurrentSubmitsSerializePerPair(t *testing.T) {
	store := newFakeRollupStore()
	store.itemParents[10] = 4
	svc := NewRollupService(store)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.SubmitDimensions(ctx, []models.DimensionEntry{
				{ProposalLineID: 101, WorkItemID: 10, Length: 1, Width: 1, Units: 1},
			})
			if err != nil {
				t.Errorf("SubmitDimensions: %v", err)
			}
		}()
	}
	wg.Wait()

	// Every goroutine's entry must be reflected in the children total; the
	// per-pair lock guarantees the last recompute saw all committed entries.
	if got := store.children[pairKey{101, 10}]; got != n {
		t.Fatalf("children total = %v, want %d", got, n)
	}

	// The per-line lock guarantees the same for the parent step: once all
	// cascades have returned, the stored parent total is the full sum.
	if got := store.parents[pairKey{101, 4}].TotalValue; got != n {
		t.Fatalf("parent total = %v, want %d", got, n)
	}
}

// stallingRollupStore holds the first parent-total read open until another
// cascade has written a parent total (or until it is clearly blocked waiting
// on this one), stretching the window between a parent recompute's read and
// its write as wide as possible.
type stallingRollupStore struct {
	*fakeRollupStore

	gateMu      sync.Mutex
	reads       int
	signaled    bool
	parentWrite chan struct{}
}

func newStallingRollupStore() *stallingRollupStore {
	return &stallingRollupStore{
		fakeRollupStore: newFakeRollupStore(),
		parentWrite:     make(chan struct{}),
	}
}

func (s *stallingRollupStore) ListChildrenTotals(ctx context.Context, proposalLineID int) ([]models.ChildrenTotal, error) {
	out, err := s.fakeRollupStore.ListChildrenTotals(ctx, proposalLineID)

	s.gateMu.Lock()
	s.reads++
	first := s.reads == 1
	s.gateMu.Unlock()
	if first {
		select {
		case <-s.parentWrite:
		case <-time.After(200 * time.Millisecond):
		}
	}
	return out, err
}

func (s *stallingRollupStore) UpsertParentTotalValue(ctx context.Context, proposalLineID, parentWorkItemID int, totalValue float64) error {
	err := s.fakeRollupStore.UpsertParentTotalValue(ctx, proposalLineID, parentWorkItemID, totalValue)

	s.gateMu.Lock()
	if !s.signaled {
		s.signaled = true
		close(s.parentWrite)
	}
	s.gateMu.Unlock()
	return err
}

func TestInterleavedCascadesKeepParentTotalFresh(t *testing.T) {
	store := newStallingRollupStore()
	store.itemParents[10] = 4
	svc := NewRollupService(store)
	ctx := context.Background()

	// Two cascades for the same pair. The store stalls whichever parent
	// recompute reads first; if the other cascade could slip its read and
	// write in between, the stalled one would later overwrite the parent
	// total with its stale snapshot.
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.SubmitDimensions(ctx, []models.DimensionEntry{
				{ProposalLineID: 101, WorkItemID: 10, Length: 1, Width: 1, Units: 1},
			})
			if err != nil {
				t.Errorf("SubmitDimensions: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := store.parents[pairKey{101, 4}].TotalValue; got != 2 {
		t.Fatalf("parent total after both cascades = %v, want 2", got)
	}
}
