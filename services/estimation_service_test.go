package services

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strconv"
	"strings"
	"testing"

	"github.com/cusloyola/CAPSTONE-sub000/models"
)

type fakeEstimationStore struct {
	summaries map[int]models.FinalEstimationSummary
	estLines  map[int][]models.FinalEstimationLine // proposal -> lines

	costLines map[int][]models.FinalCostLine // proposal -> ordered skeleton

	billings     map[int]models.Billing
	billingLines map[int][]models.WeightedLine

	failSave error
}

func newFakeEstimationStore() *fakeEstimationStore {
	return &fakeEstimationStore{
		summaries:    make(map[int]models.FinalEstimationSummary),
		estLines:     make(map[int][]models.FinalEstimationLine),
		costLines:    make(map[int][]models.FinalCostLine),
		billings:     make(map[int]models.Billing),
		billingLines: make(map[int][]models.WeightedLine),
	}
}

func (f *fakeEstimationStore) SummaryExists(_ context.Context, proposalID int) (bool, error) {
	_, ok := f.summaries[proposalID]
	return ok, nil
}

func (f *fakeEstimationStore) SaveEstimation(_ context.Context, summary models.FinalEstimationSummary, lines []models.FinalEstimationLine) error {
	if f.failSave != nil {
		return f.failSave
	}
	if _, ok := f.summaries[summary.ProposalID]; ok {
		return &models.DuplicateError{Entity: "final estimation", Key: strconv.Itoa(summary.ProposalID)}
	}
	f.summaries[summary.ProposalID] = summary
	f.estLines[summary.ProposalID] = lines
	return nil
}

func (f *fakeEstimationStore) ListProposalCostLines(_ context.Context, proposalID int) ([]models.FinalCostLine, error) {
	return f.costLines[proposalID], nil
}

func (f *fakeEstimationStore) GetBilling(_ context.Context, billingID int) (*models.Billing, error) {
	b, ok := f.billings[billingID]
	if !ok {
		return nil, &models.NotFoundError{Entity: "billing", Key: strconv.Itoa(billingID)}
	}
	return &b, nil
}

func (f *fakeEstimationStore) ListBillingLines(_ context.Context, billingID int) ([]models.WeightedLine, error) {
	return f.billingLines[billingID], nil
}

func newEstimationFixture(store *fakeEstimationStore) (*EstimationService, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)
	cost := NewCostService(newFakeCostStore())
	return NewEstimationService(store, cost, logger), &buf
}

func TestSaveFinalEstimation(t *testing.T) {
	store := newFakeEstimationStore()
	svc, _ := newEstimationFixture(store)
	ctx := context.Background()

	req := models.SaveFinalEstimationRequest{
		ProposalID:    7,
		MarkupPercent: 12,
		Lines: []models.FinalEstimationLineInput{
			{ProposalLineID: 101, Amount: 56000},
			{ProposalLineID: 102, Amount: 44000},
		},
	}

	summary, err := svc.SaveFinalEstimation(ctx, req)
	if err != nil {
		t.Fatalf("SaveFinalEstimation: %v", err)
	}
	if summary.Total != 100000 {
		t.Fatalf("total = %v, want 100000", summary.Total)
	}
	if summary.MarkupAmount != 12000 {
		t.Fatalf("markup amount = %v, want 12000", summary.MarkupAmount)
	}
	if summary.GrandTotal != 112000 {
		t.Fatalf("grand total = %v, want 112000", summary.GrandTotal)
	}

	lines := store.estLines[7]
	if len(lines) != 2 {
		t.Fatalf("stored lines = %d, want 2", len(lines))
	}
	for _, l := range lines {
		if l.RemainingAmount != l.Amount {
			t.Fatalf("line %d: remaining %v != amount %v at creation", l.ProposalLineID, l.RemainingAmount, l.Amount)
		}
	}

	// A second save for the same proposal writes nothing.
	_, err = svc.SaveFinalEstimation(ctx, req)
	if !models.IsDuplicate(err) {
		t.Fatalf("second save: got %v, want duplicate error", err)
	}
	if got := store.summaries[7].Total; got != 100000 {
		t.Fatalf("second save mutated the stored summary: total = %v", got)
	}
}

func TestSaveFinalEstimationValidation(t *testing.T) {
	svc, _ := newEstimationFixture(newFakeEstimationStore())
	ctx := context.Background()

	cases := []struct {
		name string
		req  models.SaveFinalEstimationRequest
	}{
		{"missing proposal", models.SaveFinalEstimationRequest{Lines: []models.FinalEstimationLineInput{{ProposalLineID: 1}}}},
		{"no lines", models.SaveFinalEstimationRequest{ProposalID: 7}},
		{"negative markup", models.SaveFinalEstimationRequest{ProposalID: 7, MarkupPercent: -1, Lines: []models.FinalEstimationLineInput{{ProposalLineID: 1}}}},
		{"negative amount", models.SaveFinalEstimationRequest{ProposalID: 7, Lines: []models.FinalEstimationLineInput{{ProposalLineID: 1, Amount: -5}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.SaveFinalEstimation(ctx, tc.req); !models.IsValidation(err) {
				t.Fatalf("got %v, want validation error", err)
			}
		})
	}
}

func TestSaveFinalEstimationWrapsStoreFailure(t *testing.T) {
	store := newFakeEstimationStore()
	store.failSave = context.DeadlineExceeded
	svc, _ := newEstimationFixture(store)

	_, err := svc.SaveFinalEstimation(context.Background(), models.SaveFinalEstimationRequest{
		ProposalID: 7,
		Lines:      []models.FinalEstimationLineInput{{ProposalLineID: 101, Amount: 100}},
	})
	var te *models.TransactionError
	if !errors.As(err, &te) {
		t.Fatalf("got %v, want transaction error", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("transaction error does not wrap the cause: %v", err)
	}
}

func TestGetFinalCostItemNumbering(t *testing.T) {
	store := newFakeEstimationStore()
	costStore := newFakeCostStore()

	// Two concrete lines, then one steel line: numbering restarts per type.
	costStore.lines[101] = models.ProposalLine{ProposalLineID: 101, WorkItemID: 11}
	costStore.lines[102] = models.ProposalLine{ProposalLineID: 102, WorkItemID: 12}
	costStore.lines[103] = models.ProposalLine{ProposalLineID: 103, WorkItemID: 16}
	costStore.items[11] = models.WorkItem{WorkItemID: 11, Name: "Footings", Kind: models.WorkItemVolumetric, WorkTypeName: "Concrete Works"}
	costStore.items[12] = models.WorkItem{WorkItemID: 12, Name: "Suspended Slab", Kind: models.WorkItemVolumetric, WorkTypeName: "Concrete Works"}
	costStore.items[16] = models.WorkItem{WorkItemID: 16, Name: "Rebars", Kind: models.WorkItemRebar, WorkTypeName: "Steel Works"}
	store.costLines[7] = []models.FinalCostLine{
		{ProposalLineID: 101}, {ProposalLineID: 102}, {ProposalLineID: 103},
	}

	var buf bytes.Buffer
	svc := NewEstimationService(store, NewCostService(costStore), log.New(&buf, "", 0))

	lines, err := svc.GetFinalCost(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetFinalCost: %v", err)
	}
	want := []string{"1.1", "1.2", "2.1"}
	if len(lines) != len(want) {
		t.Fatalf("lines = %d, want %d", len(lines), len(want))
	}
	for i, w := range want {
		if lines[i].ItemNo != w {
			t.Fatalf("line %d item no = %q, want %q", i, lines[i].ItemNo, w)
		}
	}
}

func TestWeightPercents(t *testing.T) {
	store := newFakeEstimationStore()
	store.billings[61] = models.Billing{BillingID: 61, ProposalID: 7}
	store.billingLines[61] = []models.WeightedLine{
		{ProposalLineID: 101, Amount: 105540},
		{ProposalLineID: 102, Amount: 56000},
		{ProposalLineID: 103, Amount: 0},
		{ProposalLineID: 104, Amount: 88460},
	}
	svc, buf := newEstimationFixture(store)

	lines, err := svc.WeightPercents(context.Background(), 61)
	if err != nil {
		t.Fatalf("WeightPercents: %v", err)
	}

	var sum float64
	for _, l := range lines {
		sum += l.WeightPercent
	}
	if sum < 100-weightTolerance || sum > 100+weightTolerance {
		t.Fatalf("weights sum to %v, want ~100", sum)
	}
	if lines[2].WeightPercent != 0 {
		t.Fatalf("zero-amount line weight = %v, want 0", lines[2].WeightPercent)
	}
	if strings.Contains(buf.String(), "expected ~100") {
		t.Fatalf("unexpected drift warning: %s", buf.String())
	}
}

func TestWeightPercentsWarnsOnDrift(t *testing.T) {
	store := newFakeEstimationStore()
	store.billings[62] = models.Billing{BillingID: 62, ProposalID: 7}

	// 600 equal lines: each weight rounds 1/6% up to 0.166667, so the sum
	// lands at 100.0002 — past the tolerance.
	for i := 0; i < 600; i++ {
		store.billingLines[62] = append(store.billingLines[62], models.WeightedLine{
			ProposalLineID: 1000 + i,
			Amount:         1,
		})
	}
	svc, buf := newEstimationFixture(store)

	lines, err := svc.WeightPercents(context.Background(), 62)
	if err != nil {
		t.Fatalf("WeightPercents: %v", err)
	}

	// Drift warns but never fails: every row still comes back weighted.
	if len(lines) != 600 {
		t.Fatalf("lines = %d, want 600", len(lines))
	}
	for _, l := range lines {
		if l.WeightPercent != 0.166667 {
			t.Fatalf("line %d weight = %v, want 0.166667", l.ProposalLineID, l.WeightPercent)
		}
	}
	if !strings.Contains(buf.String(), "expected ~100") {
		t.Fatalf("missing drift warning, log: %q", buf.String())
	}
}

func TestWeightPercentsZeroTotal(t *testing.T) {
	store := newFakeEstimationStore()
	store.billings[61] = models.Billing{BillingID: 61}
	store.billingLines[61] = []models.WeightedLine{
		{ProposalLineID: 101, Amount: 0},
		{ProposalLineID: 102, Amount: 0},
	}
	svc, _ := newEstimationFixture(store)

	lines, err := svc.WeightPercents(context.Background(), 61)
	if err != nil {
		t.Fatalf("WeightPercents: %v", err)
	}
	for _, l := range lines {
		if l.WeightPercent != 0 {
			t.Fatalf("zero-total billing produced weight %v", l.WeightPercent)
		}
	}
}

func TestWeightPercentsUnknownBilling(t *testing.T) {
	svc, _ := newEstimationFixture(newFakeEstimationStore())
	if _, err := svc.WeightPercents(context.Background(), 999); !models.IsNotFound(err) {
		t.Fatalf("got %v, want not found error", err)
	}
}
