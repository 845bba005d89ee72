package services

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/cusloyola/CAPSTONE-sub000/models"
)

type fakeBillingStore struct {
	nextID          int
	billings        map[int]models.Billing
	accomplishments map[int]map[int]models.Accomplishment // billing -> line -> row
	logs            []models.AccomplishmentLog
	monthly         []models.ProgressPoint
}

func newFakeBillingStore() *fakeBillingStore {
	return &fakeBillingStore{
		billings:        make(map[int]models.Billing),
		accomplishments: make(map[int]map[int]models.Accomplishment),
	}
}

func (f *fakeBillingStore) GetBilling(_ context.Context, billingID int) (*models.Billing, error) {
	b, ok := f.billings[billingID]
	if !ok {
		return nil, &models.NotFoundError{Entity: "billing", Key: strconv.Itoa(billingID)}
	}
	return &b, nil
}

func (f *fakeBillingStore) InsertBilling(_ context.Context, b *models.Billing) error {
	f.nextID++
	b.BillingID = f.nextID
	f.billings[b.BillingID] = *b
	return nil
}

func (f *fakeBillingStore) CountBillingCopies(_ context.Context, base string) (int, error) {
	count := 0
	for _, b := range f.billings {
		if strings.HasPrefix(b.BillingNo, base+"-copy-") {
			count++
		}
	}
	return count, nil
}

func (f *fakeBillingStore) ListAccomplishments(_ context.Context, billingID int) ([]models.Accomplishment, error) {
	var out []models.Accomplishment
	for _, a := range f.accomplishments[billingID] {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeBillingStore) UpsertAccomplishment(_ context.Context, a models.Accomplishment) error {
	if f.accomplishments[a.BillingID] == nil {
		f.accomplishments[a.BillingID] = make(map[int]models.Accomplishment)
	}
	f.accomplishments[a.BillingID][a.ProposalLineID] = a
	return nil
}

func (f *fakeBillingStore) InsertAccomplishmentLog(_ context.Context, l *models.AccomplishmentLog) error {
	l.LogID = len(f.logs) + 1
	f.logs = append(f.logs, *l)
	return nil
}

func (f *fakeBillingStore) MonthlyWeightedTotals(_ context.Context, projectID int) ([]models.ProgressPoint, error) {
	return f.monthly, nil
}

type fakeIDStore struct {
	seqs map[string]int
}

func (f *fakeIDStore) NextSequence(_ context.Context, entityCode string, year int) (int, error) {
	if f.seqs == nil {
		f.seqs = make(map[string]int)
	}
	key := entityCode + "-" + strconv.Itoa(year)
	f.seqs[key]++
	return f.seqs[key], nil
}

func newBillingFixture(store *fakeBillingStore) *BillingService {
	fixed := func() time.Time { return time.Date(2026, 2, 28, 12, 0, 0, 0, time.UTC) }
	ids := NewIDService(&fakeIDStore{})
	ids.now = fixed
	svc := NewBillingService(store, ids)
	svc.now = fixed
	return svc
}

func TestCreateBilling(t *testing.T) {
	store := newFakeBillingStore()
	svc := newBillingFixture(store)
	ctx := context.Background()

	billing, err := svc.CreateBilling(ctx, models.CreateBillingRequest{
		ProposalID:  7,
		ProjectID:   3,
		BillingDate: "2026-02-28",
	})
	if err != nil {
		t.Fatalf("CreateBilling: %v", err)
	}
	if billing.Status != "Draft" {
		t.Fatalf("status = %q, want Draft", billing.Status)
	}
	if billing.RevisionNo != 0 {
		t.Fatalf("revision = %d, want 0", billing.RevisionNo)
	}
	if !strings.HasPrefix(billing.BillingNo, "BLL-2026-") {
		t.Fatalf("billing no = %q, want BLL-2026-*", billing.BillingNo)
	}

	if _, err := svc.CreateBilling(ctx, models.CreateBillingRequest{ProjectID: 3}); !models.IsValidation(err) {
		t.Fatalf("missing proposal: got %v, want validation error", err)
	}
	_, err = svc.CreateBilling(ctx, models.CreateBillingRequest{
		ProposalID: 7, ProjectID: 3, BillingDate: "28-02-2026",
	})
	if !models.IsValidation(err) {
		t.Fatalf("bad date: got %v, want validation error", err)
	}
}

func TestCreateBillingCopyForward(t *testing.T) {
	store := newFakeBillingStore()
	svc := newBillingFixture(store)
	ctx := context.Background()

	first, err := svc.CreateBilling(ctx, models.CreateBillingRequest{ProposalID: 7, ProjectID: 3})
	if err != nil {
		t.Fatalf("first CreateBilling: %v", err)
	}
	for _, a := range []models.Accomplishment{
		{BillingID: first.BillingID, ProposalLineID: 101, PercentPrevious: 10, PercentPresent: 15},
		{BillingID: first.BillingID, ProposalLineID: 102, PercentPrevious: 0, PercentPresent: 40},
	} {
		if err := store.UpsertAccomplishment(ctx, a); err != nil {
			t.Fatalf("seed accomplishment: %v", err)
		}
	}

	second, err := svc.CreateBilling(ctx, models.CreateBillingRequest{
		ProposalID:        7,
		ProjectID:         3,
		PreviousBillingID: &first.BillingID,
	})
	if err != nil {
		t.Fatalf("second CreateBilling: %v", err)
	}
	if second.RevisionNo != first.RevisionNo+1 {
		t.Fatalf("revision = %d, want %d", second.RevisionNo, first.RevisionNo+1)
	}

	carried := store.accomplishments[second.BillingID]
	if len(carried) != 2 {
		t.Fatalf("carried rows = %d, want 2", len(carried))
	}
	if a := carried[101]; a.PercentPrevious != 25 || a.PercentPresent != 0 {
		t.Fatalf("line 101 carried as previous=%v present=%v, want 25/0", a.PercentPrevious, a.PercentPresent)
	}
	if a := carried[102]; a.PercentPrevious != 40 || a.PercentPresent != 0 {
		t.Fatalf("line 102 carried as previous=%v present=%v, want 40/0", a.PercentPrevious, a.PercentPresent)
	}

	// The source billing's rows are untouched.
	if a := store.accomplishments[first.BillingID][101]; a.PercentPresent != 15 {
		t.Fatalf("source accomplishment mutated: %+v", a)
	}

	missing := 999
	_, err = svc.CreateBilling(ctx, models.CreateBillingRequest{
		ProposalID: 7, ProjectID: 3, PreviousBillingID: &missing,
	})
	if !models.IsNotFound(err) {
		t.Fatalf("unknown previous billing: got %v, want not found error", err)
	}
}

func TestRecordAccomplishmentOverwrites(t *testing.T) {
	store := newFakeBillingStore()
	svc := newBillingFixture(store)
	ctx := context.Background()

	billing, err := svc.CreateBilling(ctx, models.CreateBillingRequest{ProposalID: 7, ProjectID: 3})
	if err != nil {
		t.Fatalf("CreateBilling: %v", err)
	}

	req := models.RecordAccomplishmentRequest{
		BillingID: billing.BillingID, ProposalLineID: 101, PercentPrevious: 25, PercentPresent: 10,
	}
	if err := svc.RecordAccomplishment(ctx, req); err != nil {
		t.Fatalf("RecordAccomplishment: %v", err)
	}

	req.PercentPresent = 12
	if err := svc.RecordAccomplishment(ctx, req); err != nil {
		t.Fatalf("second RecordAccomplishment: %v", err)
	}

	a := store.accomplishments[billing.BillingID][101]
	if a.PercentPresent != 12 {
		t.Fatalf("percent present = %v, want 12 (overwrite, not accumulate)", a.PercentPresent)
	}

	req.PercentPresent = -1
	if err := svc.RecordAccomplishment(ctx, req); !models.IsValidation(err) {
		t.Fatalf("negative percent: got %v, want validation error", err)
	}
	req.PercentPresent = 10
	req.BillingID = 999
	if err := svc.RecordAccomplishment(ctx, req); !models.IsNotFound(err) {
		t.Fatalf("unknown billing: got %v, want not found error", err)
	}
}

func TestCopyBilling(t *testing.T) {
	store := newFakeBillingStore()
	svc := newBillingFixture(store)
	ctx := context.Background()

	src, err := svc.CreateBilling(ctx, models.CreateBillingRequest{ProposalID: 7, ProjectID: 3, Notes: "February cycle"})
	if err != nil {
		t.Fatalf("CreateBilling: %v", err)
	}
	if err := store.UpsertAccomplishment(ctx, models.Accomplishment{
		BillingID: src.BillingID, ProposalLineID: 101, PercentPresent: 10,
	}); err != nil {
		t.Fatalf("seed accomplishment: %v", err)
	}

	dup, err := svc.CopyBilling(ctx, src.BillingID)
	if err != nil {
		t.Fatalf("CopyBilling: %v", err)
	}
	if dup.BillingNo != src.BillingNo+"-copy-1" {
		t.Fatalf("copy billing no = %q, want %q", dup.BillingNo, src.BillingNo+"-copy-1")
	}
	if dup.Status != "Draft" {
		t.Fatalf("copy status = %q, want Draft", dup.Status)
	}
	if len(store.accomplishments[dup.BillingID]) != 0 {
		t.Fatalf("copy carried %d accomplishments, want 0", len(store.accomplishments[dup.BillingID]))
	}

	second, err := svc.CopyBilling(ctx, src.BillingID)
	if err != nil {
		t.Fatalf("second CopyBilling: %v", err)
	}
	if second.BillingNo != src.BillingNo+"-copy-2" {
		t.Fatalf("second copy billing no = %q, want %q", second.BillingNo, src.BillingNo+"-copy-2")
	}
}

func TestAppendAccomplishmentLog(t *testing.T) {
	store := newFakeBillingStore()
	svc := newBillingFixture(store)
	ctx := context.Background()

	req := models.AppendAccomplishmentLogRequest{
		BillingID: 61, ProposalLineID: 101, PercentPresent: 10, UserID: 4, WeekNo: 9, Note: "rebar laying done",
	}
	if err := svc.AppendAccomplishmentLog(ctx, req); err != nil {
		t.Fatalf("AppendAccomplishmentLog: %v", err)
	}
	if err := svc.AppendAccomplishmentLog(ctx, req); err != nil {
		t.Fatalf("second AppendAccomplishmentLog: %v", err)
	}
	if len(store.logs) != 2 {
		t.Fatalf("log rows = %d, want 2 (append-only)", len(store.logs))
	}
}

func TestCumulativeProgress(t *testing.T) {
	store := newFakeBillingStore()
	// Out of order and with a duplicate month: the service must merge and
	// sort before the running sum.
	store.monthly = []models.ProgressPoint{
		{Month: "2026-03", Weighted: 12.5},
		{Month: "2026-01", Weighted: 6.25},
		{Month: "2026-02", Weighted: 20},
		{Month: "2026-01", Weighted: 3.75},
	}
	svc := newBillingFixture(store)

	points, err := svc.CumulativeProgress(context.Background(), 3)
	if err != nil {
		t.Fatalf("CumulativeProgress: %v", err)
	}

	wantMonths := []string{"2026-01", "2026-02", "2026-03"}
	wantCumulative := []float64{10, 30, 42.5}
	if len(points) != len(wantMonths) {
		t.Fatalf("points = %d, want %d", len(points), len(wantMonths))
	}
	for i := range points {
		if points[i].Month != wantMonths[i] {
			t.Fatalf("point %d month = %q, want %q", i, points[i].Month, wantMonths[i])
		}
		if points[i].Cumulative != wantCumulative[i] {
			t.Fatalf("point %d cumulative = %v, want %v", i, points[i].Cumulative, wantCumulative[i])
		}
	}

	if _, err := svc.CumulativeProgress(context.Background(), 0); !models.IsValidation(err) {
		t.Fatalf("zero project: got %v, want validation error", err)
	}
}

func TestNextIDFormat(t *testing.T) {
	svc := NewIDService(&fakeIDStore{})
	svc.now = func() time.Time { return time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	first, err := svc.NextID(ctx, "BLL")
	if err != nil {
		t.Fatalf("NextID: %v", err)
	}
	if first != "BLL-2026-00001" {
		t.Fatalf("id = %q, want BLL-2026-00001", first)
	}

	second, err := svc.NextID(ctx, "BLL")
	if err != nil {
		t.Fatalf("NextID: %v", err)
	}
	if second != "BLL-2026-00002" {
		t.Fatalf("id = %q, want BLL-2026-00002", second)
	}

	if _, err := svc.NextID(ctx, ""); !models.IsValidation(err) {
		t.Fatalf("empty code: got %v, want validation error", err)
	}
}
