package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/cusloyola/CAPSTONE-sub000/models"
	"github.com/cusloyola/CAPSTONE-sub000/utils"
)

// BillingStore is the persistence surface of the progress billing ledger.
type BillingStore interface {
	GetBilling(ctx context.Context, billingID int) (*models.Billing, error)
	InsertBilling(ctx context.Context, b *models.Billing) error

	// CountBillingCopies counts billings whose billing_no matches
	// base + "-copy-%".
	CountBillingCopies(ctx context.Context, base string) (int, error)

	ListAccomplishments(ctx context.Context, billingID int) ([]models.Accomplishment, error)
	UpsertAccomplishment(ctx context.Context, a models.Accomplishment) error
	InsertAccomplishmentLog(ctx context.Context, l *models.AccomplishmentLog) error

	// MonthlyWeightedTotals returns the project's weighted accomplishment
	// pre-aggregated to one row per month, ordered by month ascending.
	// Weighted = sum(percent_present * line_amount / proposal_total).
	MonthlyWeightedTotals(ctx context.Context, projectID int) ([]models.ProgressPoint, error)
}

// BillingService runs the accrual cycles: one billing per proposal revision,
// copy-forward of accomplishments into the next cycle, and the cumulative
// S-curve per project.
type BillingService struct {
	store BillingStore
	ids   *IDService
	now   func() time.Time
}

func NewBillingService(store BillingStore, ids *IDService) *BillingService {
	return &BillingService{store: store, ids: ids, now: time.Now}
}

// CreateBilling opens a new accrual cycle. When a previous billing is given,
// every accomplishment of that billing is copied forward with the present
// progress folded into the previous baseline: percent_previous becomes
// old previous + old present, percent_present resets to 0.
func (s *BillingService) CreateBilling(ctx context.Context, req models.CreateBillingRequest) (*models.Billing, error) {
	if req.ProposalID <= 0 {
		return nil, &models.ValidationError{Field: "proposal_id", Reason: "required"}
	}
	if req.ProjectID <= 0 {
		return nil, &models.ValidationError{Field: "project_id", Reason: "required"}
	}

	billingDate := s.now()
	if req.BillingDate != "" {
		parsed, err := time.Parse("2006-01-02", req.BillingDate)
		if err != nil {
			return nil, &models.ValidationError{Field: "billing_date", Reason: "expected YYYY-MM-DD"}
		}
		billingDate = parsed
	}

	var previous *models.Billing
	if req.PreviousBillingID != nil {
		var err error
		previous, err = s.store.GetBilling(ctx, *req.PreviousBillingID)
		if err != nil {
			return nil, err
		}
	}

	billingNo, err := s.ids.NextID(ctx, "BLL")
	if err != nil {
		return nil, err
	}

	billing := &models.Billing{
		ProposalID:        req.ProposalID,
		ProjectID:         req.ProjectID,
		BillingNo:         billingNo,
		BillingDate:       billingDate,
		Status:            "Draft",
		Notes:             req.Notes,
		PreviousBillingID: req.PreviousBillingID,
	}
	if previous != nil {
		billing.RevisionNo = previous.RevisionNo + 1
	}
	if err := s.store.InsertBilling(ctx, billing); err != nil {
		return nil, err
	}

	if previous != nil {
		carried, err := s.store.ListAccomplishments(ctx, previous.BillingID)
		if err != nil {
			return nil, err
		}
		for _, a := range carried {
			err := s.store.UpsertAccomplishment(ctx, models.Accomplishment{
				BillingID:       billing.BillingID,
				ProposalLineID:  a.ProposalLineID,
				PercentPrevious: a.PercentPrevious + a.PercentPresent,
				PercentPresent:  0,
			})
			if err != nil {
				return nil, err
			}
		}
	}

	return billing, nil
}

// GetBilling returns one billing by id.
func (s *BillingService) GetBilling(ctx context.Context, billingID int) (*models.Billing, error) {
	return s.store.GetBilling(ctx, billingID)
}

// RecordAccomplishment upserts the percent-complete of one line within one
// billing. Re-submitting the same (billing, line) pair overwrites; it never
// accumulates.
func (s *BillingService) RecordAccomplishment(ctx context.Context, req models.RecordAccomplishmentRequest) error {
	if req.BillingID <= 0 {
		return &models.ValidationError{Field: "billing_id", Reason: "required"}
	}
	if req.ProposalLineID <= 0 {
		return &models.ValidationError{Field: "proposal_line_id", Reason: "required"}
	}
	if req.PercentPresent < 0 || req.PercentPrevious < 0 {
		return &models.ValidationError{Field: "percent_present", Reason: "percents must not be negative"}
	}
	if _, err := s.store.GetBilling(ctx, req.BillingID); err != nil {
		return err
	}

	return s.store.UpsertAccomplishment(ctx, models.Accomplishment{
		BillingID:       req.BillingID,
		ProposalLineID:  req.ProposalLineID,
		PercentPrevious: req.PercentPrevious,
		PercentPresent:  req.PercentPresent,
	})
}

// AppendAccomplishmentLog appends one audit row. The log is append-only and
// deliberately not transactionally linked to the accomplishment upsert.
func (s *BillingService) AppendAccomplishmentLog(ctx context.Context, req models.AppendAccomplishmentLogRequest) error {
	if req.BillingID <= 0 {
		return &models.ValidationError{Field: "billing_id", Reason: "required"}
	}
	if req.ProposalLineID <= 0 {
		return &models.ValidationError{Field: "proposal_line_id", Reason: "required"}
	}

	return s.store.InsertAccomplishmentLog(ctx, &models.AccomplishmentLog{
		BillingID:      req.BillingID,
		ProposalLineID: req.ProposalLineID,
		PercentPresent: req.PercentPresent,
		UserID:         req.UserID,
		Note:           req.Note,
		WeekNo:         req.WeekNo,
		CreatedAt:      s.now(),
	})
}

// CopyBilling duplicates a billing under a derived number ("base-copy-N",
// N = existing copies + 1), status reset to Draft and date reset to now.
// Accomplishment rows are not copied.
func (s *BillingService) CopyBilling(ctx context.Context, billingID int) (*models.Billing, error) {
	src, err := s.store.GetBilling(ctx, billingID)
	if err != nil {
		return nil, err
	}

	copies, err := s.store.CountBillingCopies(ctx, src.BillingNo)
	if err != nil {
		return nil, err
	}

	dup := &models.Billing{
		ProposalID:  src.ProposalID,
		ProjectID:   src.ProjectID,
		BillingNo:   fmt.Sprintf("%s-copy-%d", src.BillingNo, copies+1),
		BillingDate: s.now(),
		Status:      "Draft",
		RevisionNo:  src.RevisionNo,
		Notes:       src.Notes,
	}
	if err := s.store.InsertBilling(ctx, dup); err != nil {
		return nil, err
	}
	return dup, nil
}

// CumulativeProgress returns the project's S-curve: one weighted
// accomplishment total per month with a running cumulative sum. The source
// rows are pre-aggregated to one total per month; the service still merges
// and orders defensively because an out-of-order or duplicate month would
// corrupt the whole curve.
func (s *BillingService) CumulativeProgress(ctx context.Context, projectID int) ([]models.ProgressPoint, error) {
	if projectID <= 0 {
		return nil, &models.ValidationError{Field: "project_id", Reason: "required"}
	}

	rows, err := s.store.MonthlyWeightedTotals(ctx, projectID)
	if err != nil {
		return nil, err
	}

	merged := make(map[string]float64)
	for i := range rows {
		merged[rows[i].Month] += rows[i].Weighted
	}
	months := make([]string, 0, len(merged))
	for month := range merged {
		months = append(months, month)
	}
	sort.Strings(months)

	points := make([]models.ProgressPoint, 0, len(months))
	var running float64
	for _, month := range months {
		running += merged[month]
		points = append(points, models.ProgressPoint{
			ProjectID:  projectID,
			Month:      month,
			Weighted:   utils.Round6(merged[month]),
			Cumulative: utils.Round6(running),
		})
	}
	return points, nil
}
