package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"strconv"
	"time"

	"github.com/cusloyola/CAPSTONE-sub000/models"
	"github.com/cusloyola/CAPSTONE-sub000/utils"
)

// weightTolerance is the absolute drift allowed on the sum of weight
// percents before a warning is logged. Drift is warned, never fatal.
const weightTolerance = 1e-4

// EstimationStore is the persistence surface of the final estimation engine.
type EstimationStore interface {
	SummaryExists(ctx context.Context, proposalID int) (bool, error)

	// SaveEstimation inserts the summary and its lines in one transaction.
	// A concurrent duplicate insert surfaces as *models.DuplicateError.
	SaveEstimation(ctx context.Context, summary models.FinalEstimationSummary, lines []models.FinalEstimationLine) error

	// ListProposalCostLines returns one skeleton row per proposal line with
	// work item and ordering info filled, ordered by (work type sequence,
	// item sequence). Amounts are recomputed by the service.
	ListProposalCostLines(ctx context.Context, proposalID int) ([]models.FinalCostLine, error)

	GetBilling(ctx context.Context, billingID int) (*models.Billing, error)

	// ListBillingLines returns one row per estimation line of the billing's
	// proposal with the stored amount and the billing's recorded percents.
	// WeightPercent is left zero for the service to fill.
	ListBillingLines(ctx context.Context, billingID int) ([]models.WeightedLine, error)
}

// EstimationService persists one point-in-time estimation per proposal and
// serves read-time recomputed costs and weight percents.
type EstimationService struct {
	store  EstimationStore
	cost   *CostService
	logger *log.Logger
	now    func() time.Time
}

func NewEstimationService(store EstimationStore, cost *CostService, logger *log.Logger) *EstimationService {
	return &EstimationService{
		store:  store,
		cost:   cost,
		logger: logger,
		now:    time.Now,
	}
}

// SaveFinalEstimation writes the summary and one line per input in a single
// atomic step. A proposal may have at most one estimation: a second save is
// rejected with DuplicateError and writes nothing.
func (s *EstimationService) SaveFinalEstimation(ctx context.Context, req models.SaveFinalEstimationRequest) (*models.FinalEstimationSummary, error) {
	if req.ProposalID <= 0 {
		return nil, &models.ValidationError{Field: "proposal_id", Reason: "required"}
	}
	if len(req.Lines) == 0 {
		return nil, &models.ValidationError{Field: "lines", Reason: "at least one line is required"}
	}
	if req.MarkupPercent < 0 {
		return nil, &models.ValidationError{Field: "markup_percent", Reason: "must not be negative"}
	}
	for _, line := range req.Lines {
		if line.ProposalLineID <= 0 {
			return nil, &models.ValidationError{Field: "lines", Reason: "every line needs a proposal_line_id"}
		}
		if line.Amount < 0 {
			return nil, &models.ValidationError{Field: "lines", Reason: "amounts must not be negative"}
		}
	}

	exists, err := s.store.SummaryExists(ctx, req.ProposalID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &models.DuplicateError{Entity: "final estimation", Key: strconv.Itoa(req.ProposalID)}
	}

	var total float64
	lines := make([]models.FinalEstimationLine, 0, len(req.Lines))
	for _, in := range req.Lines {
		amount := utils.Round2(in.Amount)
		total += amount
		lines = append(lines, models.FinalEstimationLine{
			ProposalLineID:  in.ProposalLineID,
			ProposalID:      req.ProposalID,
			Amount:          amount,
			RemainingAmount: amount,
		})
	}
	total = utils.Round2(total)

	summary := models.FinalEstimationSummary{
		ProposalID:    req.ProposalID,
		Total:         total,
		MarkupPercent: req.MarkupPercent,
		MarkupAmount:  utils.Round2(total * req.MarkupPercent / 100),
		CreatedAt:     s.now(),
	}
	summary.GrandTotal = utils.Round2(summary.Total + summary.MarkupAmount)

	if err := s.store.SaveEstimation(ctx, summary, lines); err != nil {
		if models.IsDuplicate(err) {
			return nil, err
		}
		return nil, &models.TransactionError{Op: "save final estimation", Err: err}
	}
	return &summary, nil
}

// GetFinalCost recomputes every line's amount at read time. The stored
// estimation amounts are a point-in-time snapshot and are deliberately not
// used here.
func (s *EstimationService) GetFinalCost(ctx context.Context, proposalID int) ([]models.FinalCostLine, error) {
	if proposalID <= 0 {
		return nil, &models.ValidationError{Field: "proposal_id", Reason: "required"}
	}

	skeleton, err := s.store.ListProposalCostLines(ctx, proposalID)
	if err != nil {
		return nil, err
	}

	lines := make([]models.FinalCostLine, 0, len(skeleton))
	lastType := ""
	typeNo, itemNo := 0, 0
	for i := range skeleton {
		computed, err := s.cost.LineAmount(ctx, skeleton[i].ProposalLineID)
		if err != nil {
			return nil, err
		}

		if computed.WorkTypeName != lastType {
			lastType = computed.WorkTypeName
			typeNo++
			itemNo = 0
		}
		itemNo++
		computed.ItemNo = fmt.Sprintf("%d.%d", typeNo, itemNo)
		lines = append(lines, *computed)
	}
	return lines, nil
}

// WeightPercents returns every line of the billing's proposal with its share
// of the total estimated amount. The shares are expected to renormalize to
// ~100; drift beyond the tolerance is logged as a warning and the rows are
// still returned. Zero amounts are valid and contribute 0%.
func (s *EstimationService) WeightPercents(ctx context.Context, billingID int) ([]models.WeightedLine, error) {
	if billingID <= 0 {
		return nil, &models.ValidationError{Field: "billing_id", Reason: "required"}
	}
	if _, err := s.store.GetBilling(ctx, billingID); err != nil {
		return nil, err
	}

	lines, err := s.store.ListBillingLines(ctx, billingID)
	if err != nil {
		return nil, err
	}

	var total float64
	for i := range lines {
		total += lines[i].Amount
	}
	if total == 0 {
		return lines, nil
	}

	var sum float64
	for i := range lines {
		lines[i].WeightPercent = utils.Round6(lines[i].Amount / total * 100)
		sum += lines[i].WeightPercent
	}

	if math.Abs(sum-100) >= weightTolerance && s.logger != nil {
		s.logger.Printf("weight percents for billing %d sum to %.6f, expected ~100", billingID, sum)
	}
	return lines, nil
}
