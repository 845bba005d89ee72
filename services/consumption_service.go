package services

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/cusloyola/CAPSTONE-sub000/models"
	"github.com/cusloyola/CAPSTONE-sub000/utils"
)

// ConsumptionTx is the per-transaction view of the consumption store. Row
// reads that feed a later write take row locks for the duration of the
// transaction so concurrent approvals of the same resource serialize.
type ConsumptionTx interface {
	GetRequestForUpdate(requestID int) (*models.MaterialRequest, error)
	MarkRequestStatus(requestID int, status string, approvedAt *time.Time) error

	GetResourceForUpdate(resourceID int) (*models.Resource, error)
	UpdateResourceStock(resourceID int, stock float64) error

	// GetEstimationLineForWorkItem locates the estimation line budgeting the
	// resource's owning work item within the request's proposal (the request
	// binds the project to its proposal).
	GetEstimationLineForWorkItem(proposalID, workItemID int) (*models.FinalEstimationLine, error)
	DecrementRemainingAmount(proposalLineID int, amount float64) (newRemaining float64, err error)

	InsertUsageEntry(e *models.UsageEntry) error
}

// ConsumptionStore runs a function inside one atomic transaction. Any error
// from the function rolls every change back.
type ConsumptionStore interface {
	Transact(ctx context.Context, fn func(tx ConsumptionTx) error) error
	GetRequest(ctx context.Context, requestID int) (*models.MaterialRequest, error)
	SetRequestStatus(ctx context.Context, requestID int, status string) error
}

// ConsumptionService posts approved material requests against stock and the
// lines' remaining budgets, all-or-nothing.
type ConsumptionService struct {
	store  ConsumptionStore
	logger *log.Logger
	now    func() time.Time
}

func NewConsumptionService(store ConsumptionStore, logger *log.Logger) *ConsumptionService {
	return &ConsumptionService{store: store, logger: logger, now: time.Now}
}

// ApproveRequest approves a material request and, for every requested item,
// decrements the resource stock and the estimation line's remaining amount
// and appends a usage entry — in one transaction. A failure on any item rolls
// the whole request back.
//
// Remaining amounts are deliberately not floor-clamped at zero: a negative
// remaining amount is kept as an over-budget signal and logged.
func (s *ConsumptionService) ApproveRequest(ctx context.Context, requestID int) error {
	if requestID <= 0 {
		return &models.ValidationError{Field: "request_id", Reason: "required"}
	}

	err := s.store.Transact(ctx, func(tx ConsumptionTx) error {
		req, err := tx.GetRequestForUpdate(requestID)
		if err != nil {
			return err
		}
		if req.Status != models.RequestStatusPending {
			return &models.ConflictError{Reason: "request " + strconv.Itoa(requestID) + " is already " + req.Status}
		}

		approvedAt := s.now()
		if err := tx.MarkRequestStatus(requestID, models.RequestStatusApproved, &approvedAt); err != nil {
			return err
		}

		for _, item := range req.Items {
			if item.Quantity <= 0 {
				return &models.ValidationError{Field: "quantity", Reason: "requested quantity must be positive"}
			}

			res, err := tx.GetResourceForUpdate(item.ResourceID)
			if err != nil {
				return err
			}

			totalCost := utils.Round2(item.Quantity * res.UnitCost)
			previousStock := res.Stock
			currentStock := previousStock - item.Quantity

			if err := tx.UpdateResourceStock(res.ResourceID, currentStock); err != nil {
				return err
			}

			line, err := tx.GetEstimationLineForWorkItem(req.ProposalID, res.WorkItemID)
			if err != nil {
				return err
			}
			remaining, err := tx.DecrementRemainingAmount(line.ProposalLineID, totalCost)
			if err != nil {
				return err
			}
			if remaining < 0 && s.logger != nil {
				s.logger.Printf("line %d is over budget: remaining amount %.2f after request %d",
					line.ProposalLineID, remaining, requestID)
			}

			err = tx.InsertUsageEntry(&models.UsageEntry{
				WorkItemID:    res.WorkItemID,
				ProjectID:     req.ProjectID,
				ResourceID:    res.ResourceID,
				QuantityUsed:  item.Quantity,
				TotalCost:     totalCost,
				PreviousStock: previousStock,
				CurrentStock:  currentStock,
				CreatedAt:     approvedAt,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// Typed rejections pass through untouched; infrastructure failures
		// surface as the transaction error wrapping the cause.
		if models.IsValidation(err) || models.IsNotFound(err) || models.IsConflict(err) {
			return err
		}
		return &models.TransactionError{Op: "approve material request", Err: err}
	}
	return nil
}

// RejectRequest flips the request status with no cascading effects.
func (s *ConsumptionService) RejectRequest(ctx context.Context, requestID int) error {
	if requestID <= 0 {
		return &models.ValidationError{Field: "request_id", Reason: "required"}
	}

	req, err := s.store.GetRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if req.Status != models.RequestStatusPending {
		return &models.ConflictError{Reason: "request " + strconv.Itoa(requestID) + " is already " + req.Status}
	}
	return s.store.SetRequestStatus(ctx, requestID, models.RequestStatusRejected)
}
