package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cusloyola/CAPSTONE-sub000/models"
	"github.com/cusloyola/CAPSTONE-sub000/services"
)

// GormConsumptionStore implements the material consumption store over GORM.
// Every approval runs inside one db.Transaction so stock, remaining-amount
// and usage writes commit or roll back together.
type GormConsumptionStore struct {
	db *gorm.DB
}

func NewGormConsumptionStore(db *gorm.DB) *GormConsumptionStore {
	return &GormConsumptionStore{db: db}
}

func (s *GormConsumptionStore) Transact(ctx context.Context, fn func(tx services.ConsumptionTx) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormConsumptionTx{tx: tx})
	})
}

func (s *GormConsumptionStore) GetRequest(ctx context.Context, requestID int) (*models.MaterialRequest, error) {
	var req models.MaterialRequest
	err := s.db.WithContext(ctx).Preload("Items").First(&req, "request_id = ?", requestID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &models.NotFoundError{Entity: "material request", Key: strconv.Itoa(requestID)}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get material request: %w", err)
	}
	return &req, nil
}

func (s *GormConsumptionStore) SetRequestStatus(ctx context.Context, requestID int, status string) error {
	result := s.db.WithContext(ctx).
		Model(&models.MaterialRequest{}).
		Where("request_id = ?", requestID).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to set request status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return &models.NotFoundError{Entity: "material request", Key: strconv.Itoa(requestID)}
	}
	return nil
}

type gormConsumptionTx struct {
	tx *gorm.DB
}

func (t *gormConsumptionTx) GetRequestForUpdate(requestID int) (*models.MaterialRequest, error) {
	var req models.MaterialRequest
	err := t.tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&req, "request_id = ?", requestID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &models.NotFoundError{Entity: "material request", Key: strconv.Itoa(requestID)}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock material request: %w", err)
	}

	if err := t.tx.Where("request_id = ?", requestID).Order("request_item_id").Find(&req.Items).Error; err != nil {
		return nil, fmt.Errorf("failed to load request items: %w", err)
	}
	return &req, nil
}

func (t *gormConsumptionTx) MarkRequestStatus(requestID int, status string, approvedAt *time.Time) error {
	result := t.tx.Model(&models.MaterialRequest{}).
		Where("request_id = ?", requestID).
		Updates(map[string]interface{}{"status": status, "approved_at": approvedAt})
	if result.Error != nil {
		return fmt.Errorf("failed to mark request %s: %w", status, result.Error)
	}
	if result.RowsAffected == 0 {
		return &models.NotFoundError{Entity: "material request", Key: strconv.Itoa(requestID)}
	}
	return nil
}

// GetResourceForUpdate takes a row lock on the resource so concurrent
// approvals of the same resource serialize on the stock read-then-write.
func (t *gormConsumptionTx) GetResourceForUpdate(resourceID int) (*models.Resource, error) {
	var res models.Resource
	err := t.tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&res, "resource_id = ?", resourceID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &models.NotFoundError{Entity: "resource", Key: strconv.Itoa(resourceID)}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock resource: %w", err)
	}
	return &res, nil
}

func (t *gormConsumptionTx) UpdateResourceStock(resourceID int, stock float64) error {
	result := t.tx.Model(&models.Resource{}).
		Where("resource_id = ?", resourceID).
		Updates(map[string]interface{}{"stock": stock, "updated_at": time.Now()})
	if result.Error != nil {
		return fmt.Errorf("failed to update resource stock: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return &models.NotFoundError{Entity: "resource", Key: strconv.Itoa(resourceID)}
	}
	return nil
}

func (t *gormConsumptionTx) GetEstimationLineForWorkItem(proposalID, workItemID int) (*models.FinalEstimationLine, error) {
	var line models.FinalEstimationLine
	err := t.tx.Raw(`
		SELECT l.proposal_line_id, l.proposal_id, l.amount, l.remaining_amount
		FROM final_estimation_lines l
		JOIN sow_proposal_lines pl ON pl.proposal_line_id = l.proposal_line_id
		WHERE l.proposal_id = ? AND pl.work_item_id = ?
		FOR UPDATE OF l`,
		proposalID, workItemID).Scan(&line).Error
	if err != nil {
		return nil, fmt.Errorf("failed to locate estimation line: %w", err)
	}
	if line.ProposalLineID == 0 {
		return nil, &models.NotFoundError{
			Entity: "estimation line",
			Key:    fmt.Sprintf("proposal %d work item %d", proposalID, workItemID),
		}
	}
	return &line, nil
}

// DecrementRemainingAmount never clamps at zero: a negative remaining amount
// is kept as an over-budget signal.
func (t *gormConsumptionTx) DecrementRemainingAmount(proposalLineID int, amount float64) (float64, error) {
	var remaining float64
	err := t.tx.Raw(`
		UPDATE final_estimation_lines
		SET remaining_amount = remaining_amount - ?
		WHERE proposal_line_id = ?
		RETURNING remaining_amount`,
		amount, proposalLineID).Scan(&remaining).Error
	if err != nil {
		return 0, fmt.Errorf("failed to decrement remaining amount: %w", err)
	}
	return remaining, nil
}

func (t *gormConsumptionTx) InsertUsageEntry(e *models.UsageEntry) error {
	if err := t.tx.Create(e).Error; err != nil {
		return fmt.Errorf("failed to insert usage entry: %w", err)
	}
	return nil
}
