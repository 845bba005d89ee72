package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/lib/pq"

	"github.com/cusloyola/CAPSTONE-sub000/models"
	"github.com/cusloyola/CAPSTONE-sub000/utils"
)

// SQLStore implements the engine store interfaces (roll-up, cost,
// estimation, billing, id sequences) over PostgreSQL.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

// uniqueViolation is the PostgreSQL error code for duplicate keys.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return string(pqErr.Code) == uniqueViolation
	}
	return false
}

// ---- dimension entries -------------------------------------------------

func (s *SQLStore) ListDimensionEntries(ctx context.Context, proposalLineID, workItemID int) ([]models.DimensionEntry, error) {
	qctx, cancel := utils.DefaultQueryContext(ctx)
	defer cancel()

	query := `
		SELECT qto_id, proposal_line_id, work_item_id, label, length, width, depth, units, computed_value, created_at, updated_at
		FROM qto_dimensions
		WHERE proposal_line_id = $1 AND work_item_id = $2
		ORDER BY qto_id`

	rows, err := s.db.QueryContext(qctx, query, proposalLineID, workItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list dimension entries: %w", err)
	}
	defer rows.Close()

	var entries []models.DimensionEntry
	for rows.Next() {
		e, err := scanDimension(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

func (s *SQLStore) GetDimensionEntry(ctx context.Context, qtoID int) (*models.DimensionEntry, error) {
	qctx, cancel := utils.DefaultQueryContext(ctx)
	defer cancel()

	query := `
		SELECT qto_id, proposal_line_id, work_item_id, label, length, width, depth, units, computed_value, created_at, updated_at
		FROM qto_dimensions
		WHERE qto_id = $1`

	e, err := scanDimension(s.db.QueryRowContext(qctx, query, qtoID))
	if err == sql.ErrNoRows {
		return nil, &models.NotFoundError{Entity: "dimension entry", Key: strconv.Itoa(qtoID)}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get dimension entry: %w", err)
	}
	return e, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDimension(r rowScanner) (*models.DimensionEntry, error) {
	var e models.DimensionEntry
	var label sql.NullString
	var depth sql.NullFloat64
	err := r.Scan(&e.QTOID, &e.ProposalLineID, &e.WorkItemID, &label, &e.Length, &e.Width, &depth, &e.Units, &e.ComputedValue, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	e.Label = label.String
	if depth.Valid {
		d := depth.Float64
		e.Depth = &d
	}
	return &e, nil
}

func (s *SQLStore) InsertDimensionEntry(ctx context.Context, e *models.DimensionEntry) error {
	qctx, cancel := utils.DefaultQueryContext(ctx)
	defer cancel()

	query := `
		INSERT INTO qto_dimensions (proposal_line_id, work_item_id, label, length, width, depth, units, computed_value, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
		RETURNING qto_id, created_at, updated_at`

	err := s.db.QueryRowContext(qctx, query,
		e.ProposalLineID, e.WorkItemID, e.Label, e.Length, e.Width, nullableFloat(e.Depth), e.Units, e.ComputedValue,
	).Scan(&e.QTOID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert dimension entry: %w", err)
	}
	return nil
}

func (s *SQLStore) UpdateDimensionEntry(ctx context.Context, e *models.DimensionEntry) error {
	qctx, cancel := utils.DefaultQueryContext(ctx)
	defer cancel()

	query := `
		UPDATE qto_dimensions
		SET label = $2, length = $3, width = $4, depth = $5, units = $6, computed_value = $7, updated_at = now()
		WHERE qto_id = $1`

	result, err := s.db.ExecContext(qctx, query, e.QTOID, e.Label, e.Length, e.Width, nullableFloat(e.Depth), e.Units, e.ComputedValue)
	if err != nil {
		return fmt.Errorf("failed to update dimension entry: %w", err)
	}
	return requireRows(result, "dimension entry", e.QTOID)
}

func (s *SQLStore) DeleteDimensionEntry(ctx context.Context, qtoID int) error {
	qctx, cancel := utils.DefaultQueryContext(ctx)
	defer cancel()

	result, err := s.db.ExecContext(qctx, `DELETE FROM qto_dimensions WHERE qto_id = $1`, qtoID)
	if err != nil {
		return fmt.Errorf("failed to delete dimension entry: %w", err)
	}
	return requireRows(result, "dimension entry", qtoID)
}

// ---- derived totals ----------------------------------------------------

func (s *SQLStore) UpsertChildrenTotal(ctx context.Context, t models.ChildrenTotal) error {
	qctx, cancel := utils.DefaultQueryContext(ctx)
	defer cancel()

	query := `
		INSERT INTO qto_children_totals (proposal_line_id, work_item_id, total_volume)
		VALUES ($1, $2, $3)
		ON CONFLICT (proposal_line_id, work_item_id)
		DO UPDATE SET total_volume = EXCLUDED.total_volume`

	if _, err := s.db.ExecContext(qctx, query, t.ProposalLineID, t.WorkItemID, t.TotalVolume); err != nil {
		return fmt.Errorf("failed to upsert children total: %w", err)
	}
	return nil
}

func (s *SQLStore) ListChildrenTotals(ctx context.Context, proposalLineID int) ([]models.ChildrenTotal, error) {
	qctx, cancel := utils.RollupQueryContext(ctx)
	defer cancel()

	query := `
		SELECT proposal_line_id, work_item_id, total_volume
		FROM qto_children_totals
		WHERE proposal_line_id = $1
		ORDER BY work_item_id`

	rows, err := s.db.QueryContext(qctx, query, proposalLineID)
	if err != nil {
		return nil, fmt.Errorf("failed to list children totals: %w", err)
	}
	defer rows.Close()

	var totals []models.ChildrenTotal
	for rows.Next() {
		var t models.ChildrenTotal
		if err := rows.Scan(&t.ProposalLineID, &t.WorkItemID, &t.TotalVolume); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

func (s *SQLStore) WorkItemParents(ctx context.Context, workItemIDs []int) (map[int]int, error) {
	parents := make(map[int]int)
	if len(workItemIDs) == 0 {
		return parents, nil
	}

	qctx, cancel := utils.DefaultQueryContext(ctx)
	defer cancel()

	query := `
		SELECT work_item_id, parent_id
		FROM work_items
		WHERE work_item_id = ANY($1) AND parent_id IS NOT NULL`

	rows, err := s.db.QueryContext(qctx, query, pq.Array(workItemIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to load work item parents: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var itemID, parentID int
		if err := rows.Scan(&itemID, &parentID); err != nil {
			return nil, err
		}
		parents[itemID] = parentID
	}
	return parents, rows.Err()
}

func (s *SQLStore) UpsertParentTotalValue(ctx context.Context, proposalLineID, parentWorkItemID int, totalValue float64) error {
	qctx, cancel := utils.DefaultQueryContext(ctx)
	defer cancel()

	// total_with_allowance is a cached derived column: it follows every
	// change of total_value using the stored allowance percent.
	query := `
		INSERT INTO qto_parent_totals (proposal_line_id, parent_work_item_id, total_value, allowance_percent, total_with_allowance)
		VALUES ($1, $2, $3, 0, 0)
		ON CONFLICT (proposal_line_id, parent_work_item_id)
		DO UPDATE SET
			total_value = EXCLUDED.total_value,
			total_with_allowance = ROUND((EXCLUDED.total_value * qto_parent_totals.allowance_percent)::numeric, 2)`

	if _, err := s.db.ExecContext(qctx, query, proposalLineID, parentWorkItemID, totalValue); err != nil {
		return fmt.Errorf("failed to upsert parent total: %w", err)
	}
	return nil
}

func (s *SQLStore) ListParentTotals(ctx context.Context, proposalLineID int) ([]models.ParentTotal, error) {
	qctx, cancel := utils.RollupQueryContext(ctx)
	defer cancel()

	query := `
		SELECT proposal_line_id, parent_work_item_id, total_value, allowance_percent, total_with_allowance
		FROM qto_parent_totals
		WHERE proposal_line_id = $1
		ORDER BY parent_work_item_id`

	rows, err := s.db.QueryContext(qctx, query, proposalLineID)
	if err != nil {
		return nil, fmt.Errorf("failed to list parent totals: %w", err)
	}
	defer rows.Close()

	var totals []models.ParentTotal
	for rows.Next() {
		var t models.ParentTotal
		if err := rows.Scan(&t.ProposalLineID, &t.ParentWorkItemID, &t.TotalValue, &t.AllowancePercent, &t.TotalWithAllowance); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

func (s *SQLStore) UpdateAllowance(ctx context.Context, proposalLineID int, allowancePercent float64) (int64, error) {
	qctx, cancel := utils.DefaultQueryContext(ctx)
	defer cancel()

	query := `
		UPDATE qto_parent_totals
		SET allowance_percent = $2,
		    total_with_allowance = ROUND((total_value * $2)::numeric, 2)
		WHERE proposal_line_id = $1`

	result, err := s.db.ExecContext(qctx, query, proposalLineID, allowancePercent)
	if err != nil {
		return 0, fmt.Errorf("failed to apply allowance: %w", err)
	}
	return result.RowsAffected()
}

func (s *SQLStore) ListProposalLinesWithDimensions(ctx context.Context) ([]int, error) {
	qctx, cancel := utils.RollupQueryContext(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(qctx, `SELECT DISTINCT proposal_line_id FROM qto_dimensions ORDER BY proposal_line_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list proposal lines with dimensions: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ---- cost composition inputs -------------------------------------------

func (s *SQLStore) GetProposalLine(ctx context.Context, proposalLineID int) (*models.ProposalLine, error) {
	qctx, cancel := utils.DefaultQueryContext(ctx)
	defer cancel()

	query := `
		SELECT proposal_line_id, proposal_id, work_item_id, COALESCE(item_no, ''), sequence_no
		FROM sow_proposal_lines
		WHERE proposal_line_id = $1`

	var line models.ProposalLine
	err := s.db.QueryRowContext(qctx, query, proposalLineID).Scan(
		&line.ProposalLineID, &line.ProposalID, &line.WorkItemID, &line.ItemNo, &line.SequenceNo)
	if err == sql.ErrNoRows {
		return nil, &models.NotFoundError{Entity: "proposal line", Key: strconv.Itoa(proposalLineID)}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get proposal line: %w", err)
	}
	return &line, nil
}

func (s *SQLStore) GetWorkItem(ctx context.Context, workItemID int) (*models.WorkItem, error) {
	qctx, cancel := utils.DefaultQueryContext(ctx)
	defer cancel()

	query := `
		SELECT wi.work_item_id, wi.name, wi.parent_id, wi.kind, wi.unit, wi.sequence_no, wi.work_type_id, wt.name
		FROM work_items wi
		JOIN work_types wt ON wt.work_type_id = wi.work_type_id
		WHERE wi.work_item_id = $1`

	var item models.WorkItem
	var parentID sql.NullInt64
	err := s.db.QueryRowContext(qctx, query, workItemID).Scan(
		&item.WorkItemID, &item.Name, &parentID, &item.Kind, &item.Unit, &item.SequenceNo, &item.WorkTypeID, &item.WorkTypeName)
	if err == sql.ErrNoRows {
		return nil, &models.NotFoundError{Entity: "work item", Key: strconv.Itoa(workItemID)}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get work item: %w", err)
	}
	if parentID.Valid {
		p := int(parentID.Int64)
		item.ParentID = &p
	}
	return &item, nil
}

func (s *SQLStore) GetParentTotal(ctx context.Context, proposalLineID, parentWorkItemID int) (*models.ParentTotal, error) {
	qctx, cancel := utils.DefaultQueryContext(ctx)
	defer cancel()

	query := `
		SELECT proposal_line_id, parent_work_item_id, total_value, allowance_percent, total_with_allowance
		FROM qto_parent_totals
		WHERE proposal_line_id = $1 AND parent_work_item_id = $2`

	var t models.ParentTotal
	err := s.db.QueryRowContext(qctx, query, proposalLineID, parentWorkItemID).Scan(
		&t.ProposalLineID, &t.ParentWorkItemID, &t.TotalValue, &t.AllowancePercent, &t.TotalWithAllowance)
	if err == sql.ErrNoRows {
		// Quantities may not be entered yet; the cost engine treats this
		// as quantity 0 rather than an error.
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get parent total: %w", err)
	}
	return &t, nil
}

func (s *SQLStore) GetLaborUnitCost(ctx context.Context, proposalLineID int) (float64, error) {
	qctx, cancel := utils.DefaultQueryContext(ctx)
	defer cancel()

	var cost float64
	err := s.db.QueryRowContext(qctx,
		`SELECT COALESCE((SELECT unit_cost FROM labor_costs WHERE proposal_line_id = $1), 0)`,
		proposalLineID).Scan(&cost)
	if err != nil {
		return 0, fmt.Errorf("failed to get labor unit cost: %w", err)
	}
	return cost, nil
}

func (s *SQLStore) GetMTOGrandTotal(ctx context.Context, proposalLineID int) (float64, error) {
	qctx, cancel := utils.DefaultQueryContext(ctx)
	defer cancel()

	var total float64
	err := s.db.QueryRowContext(qctx,
		`SELECT COALESCE((SELECT grand_total FROM mto_grand_totals WHERE proposal_line_id = $1), 0)`,
		proposalLineID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to get mto grand total: %w", err)
	}
	return total, nil
}

func (s *SQLStore) RebarWeightsByType(ctx context.Context, proposalLineID int) (map[int]float64, error) {
	qctx, cancel := utils.RollupQueryContext(ctx)
	defer cancel()

	query := `
		SELECT rebar_type_id, SUM(weight_kg)
		FROM rebar_details
		WHERE proposal_line_id = $1
		GROUP BY rebar_type_id`

	rows, err := s.db.QueryContext(qctx, query, proposalLineID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate rebar weights: %w", err)
	}
	defer rows.Close()

	weights := make(map[int]float64)
	for rows.Next() {
		var typeID int
		var weight float64
		if err := rows.Scan(&typeID, &weight); err != nil {
			return nil, err
		}
		weights[typeID] = weight
	}
	return weights, rows.Err()
}

func (s *SQLStore) RebarUnitCosts(ctx context.Context, rebarTypeIDs []int) (map[int]float64, error) {
	costs := make(map[int]float64)
	if len(rebarTypeIDs) == 0 {
		return costs, nil
	}

	qctx, cancel := utils.DefaultQueryContext(ctx)
	defer cancel()

	query := `
		SELECT rebar_type_id, SUM(unit_cost)
		FROM rebar_resources
		WHERE rebar_type_id = ANY($1)
		GROUP BY rebar_type_id`

	rows, err := s.db.QueryContext(qctx, query, pq.Array(rebarTypeIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to load rebar unit costs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var typeID int
		var cost float64
		if err := rows.Scan(&typeID, &cost); err != nil {
			return nil, err
		}
		costs[typeID] = cost
	}
	return costs, rows.Err()
}

func (s *SQLStore) InsertLaborEntry(ctx context.Context, e *models.LaborEntry) error {
	qctx, cancel := utils.DefaultQueryContext(ctx)
	defer cancel()

	query := `
		INSERT INTO labor_entries (proposal_line_id, crew, rate, quantity, cost)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING labor_entry_id`

	err := s.db.QueryRowContext(qctx, query, e.ProposalLineID, e.Crew, e.Rate, e.Quantity, e.Cost).Scan(&e.LaborEntryID)
	if err != nil {
		return fmt.Errorf("failed to insert labor entry: %w", err)
	}
	return nil
}

func (s *SQLStore) DeleteLaborEntry(ctx context.Context, laborEntryID int) (int, error) {
	qctx, cancel := utils.DefaultQueryContext(ctx)
	defer cancel()

	var proposalLineID int
	err := s.db.QueryRowContext(qctx,
		`DELETE FROM labor_entries WHERE labor_entry_id = $1 RETURNING proposal_line_id`,
		laborEntryID).Scan(&proposalLineID)
	if err == sql.ErrNoRows {
		return 0, &models.NotFoundError{Entity: "labor entry", Key: strconv.Itoa(laborEntryID)}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to delete labor entry: %w", err)
	}
	return proposalLineID, nil
}

func (s *SQLStore) SumLaborEntries(ctx context.Context, proposalLineID int) (float64, error) {
	qctx, cancel := utils.DefaultQueryContext(ctx)
	defer cancel()

	var total float64
	err := s.db.QueryRowContext(qctx,
		`SELECT COALESCE(SUM(cost), 0) FROM labor_entries WHERE proposal_line_id = $1`,
		proposalLineID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum labor entries: %w", err)
	}
	return total, nil
}

func (s *SQLStore) UpsertLaborCost(ctx context.Context, proposalLineID int, unitCost float64) error {
	qctx, cancel := utils.DefaultQueryContext(ctx)
	defer cancel()

	query := `
		INSERT INTO labor_costs (proposal_line_id, unit_cost, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (proposal_line_id)
		DO UPDATE SET unit_cost = EXCLUDED.unit_cost, updated_at = now()`

	if _, err := s.db.ExecContext(qctx, query, proposalLineID, unitCost); err != nil {
		return fmt.Errorf("failed to upsert labor cost: %w", err)
	}
	return nil
}

func (s *SQLStore) InsertMTORow(ctx context.Context, r *models.MTORow) error {
	qctx, cancel := utils.DefaultQueryContext(ctx)
	defer cancel()

	query := `
		INSERT INTO mto_rows (proposal_line_id, resource_id, quantity, unit_cost, total)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING mto_row_id`

	err := s.db.QueryRowContext(qctx, query, r.ProposalLineID, r.ResourceID, r.Quantity, r.UnitCost, r.Total).Scan(&r.MTORowID)
	if err != nil {
		return fmt.Errorf("failed to insert mto row: %w", err)
	}
	return nil
}

func (s *SQLStore) DeleteMTORow(ctx context.Context, mtoRowID int) (int, error) {
	qctx, cancel := utils.DefaultQueryContext(ctx)
	defer cancel()

	var proposalLineID int
	err := s.db.QueryRowContext(qctx,
		`DELETE FROM mto_rows WHERE mto_row_id = $1 RETURNING proposal_line_id`,
		mtoRowID).Scan(&proposalLineID)
	if err == sql.ErrNoRows {
		return 0, &models.NotFoundError{Entity: "mto row", Key: strconv.Itoa(mtoRowID)}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to delete mto row: %w", err)
	}
	return proposalLineID, nil
}

func (s *SQLStore) SumMTORows(ctx context.Context, proposalLineID int) (float64, error) {
	qctx, cancel := utils.DefaultQueryContext(ctx)
	defer cancel()

	var total float64
	err := s.db.QueryRowContext(qctx,
		`SELECT COALESCE(SUM(total), 0) FROM mto_rows WHERE proposal_line_id = $1`,
		proposalLineID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum mto rows: %w", err)
	}
	return total, nil
}

func (s *SQLStore) UpsertMTOGrandTotal(ctx context.Context, proposalLineID int, grandTotal float64) error {
	qctx, cancel := utils.DefaultQueryContext(ctx)
	defer cancel()

	query := `
		INSERT INTO mto_grand_totals (proposal_line_id, grand_total)
		VALUES ($1, $2)
		ON CONFLICT (proposal_line_id)
		DO UPDATE SET grand_total = EXCLUDED.grand_total`

	if _, err := s.db.ExecContext(qctx, query, proposalLineID, grandTotal); err != nil {
		return fmt.Errorf("failed to upsert mto grand total: %w", err)
	}
	return nil
}

// ---- final estimation --------------------------------------------------

func (s *SQLStore) SummaryExists(ctx context.Context, proposalID int) (bool, error) {
	qctx, cancel := utils.DefaultQueryContext(ctx)
	defer cancel()

	var exists bool
	err := s.db.QueryRowContext(qctx,
		`SELECT EXISTS(SELECT 1 FROM final_estimations WHERE proposal_id = $1)`,
		proposalID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check final estimation: %w", err)
	}
	return exists, nil
}

func (s *SQLStore) SaveEstimation(ctx context.Context, summary models.FinalEstimationSummary, lines []models.FinalEstimationLine) error {
	qctx, cancel := utils.DefaultQueryContext(ctx)
	defer cancel()

	tx, err := s.db.BeginTx(qctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(qctx, `
		INSERT INTO final_estimations (proposal_id, total, markup_percent, markup_amount, grand_total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		summary.ProposalID, summary.Total, summary.MarkupPercent, summary.MarkupAmount, summary.GrandTotal, summary.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return &models.DuplicateError{Entity: "final estimation", Key: strconv.Itoa(summary.ProposalID)}
		}
		return fmt.Errorf("failed to insert final estimation: %w", err)
	}

	for _, line := range lines {
		_, err = tx.ExecContext(qctx, `
			INSERT INTO final_estimation_lines (proposal_line_id, proposal_id, amount, remaining_amount)
			VALUES ($1, $2, $3, $4)`,
			line.ProposalLineID, line.ProposalID, line.Amount, line.RemainingAmount)
		if err != nil {
			return fmt.Errorf("failed to insert estimation line %d: %w", line.ProposalLineID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit final estimation: %w", err)
	}
	return nil
}

func (s *SQLStore) ListProposalCostLines(ctx context.Context, proposalID int) ([]models.FinalCostLine, error) {
	qctx, cancel := utils.RollupQueryContext(ctx)
	defer cancel()

	query := `
		SELECT pl.proposal_line_id, wi.work_item_id, wi.name, wt.name, wi.unit
		FROM sow_proposal_lines pl
		JOIN work_items wi ON wi.work_item_id = pl.work_item_id
		JOIN work_types wt ON wt.work_type_id = wi.work_type_id
		WHERE pl.proposal_id = $1
		ORDER BY wt.sequence_no, pl.sequence_no`

	rows, err := s.db.QueryContext(qctx, query, proposalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list proposal cost lines: %w", err)
	}
	defer rows.Close()

	var lines []models.FinalCostLine
	for rows.Next() {
		var l models.FinalCostLine
		if err := rows.Scan(&l.ProposalLineID, &l.WorkItemID, &l.WorkItemName, &l.WorkTypeName, &l.Unit); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// ---- progress billing --------------------------------------------------

func (s *SQLStore) GetBilling(ctx context.Context, billingID int) (*models.Billing, error) {
	qctx, cancel := utils.DefaultQueryContext(ctx)
	defer cancel()

	query := `
		SELECT billing_id, proposal_id, project_id, billing_no, billing_date, status, revision_no, COALESCE(notes, ''), previous_billing_id
		FROM progress_billings
		WHERE billing_id = $1`

	var b models.Billing
	var prev sql.NullInt64
	err := s.db.QueryRowContext(qctx, query, billingID).Scan(
		&b.BillingID, &b.ProposalID, &b.ProjectID, &b.BillingNo, &b.BillingDate, &b.Status, &b.RevisionNo, &b.Notes, &prev)
	if err == sql.ErrNoRows {
		return nil, &models.NotFoundError{Entity: "billing", Key: strconv.Itoa(billingID)}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get billing: %w", err)
	}
	if prev.Valid {
		p := int(prev.Int64)
		b.PreviousBillingID = &p
	}
	return &b, nil
}

func (s *SQLStore) InsertBilling(ctx context.Context, b *models.Billing) error {
	qctx, cancel := utils.DefaultQueryContext(ctx)
	defer cancel()

	query := `
		INSERT INTO progress_billings (proposal_id, project_id, billing_no, billing_date, status, revision_no, notes, previous_billing_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING billing_id`

	var prev interface{}
	if b.PreviousBillingID != nil {
		prev = *b.PreviousBillingID
	}
	err := s.db.QueryRowContext(qctx, query,
		b.ProposalID, b.ProjectID, b.BillingNo, b.BillingDate, b.Status, b.RevisionNo, b.Notes, prev,
	).Scan(&b.BillingID)
	if err != nil {
		return fmt.Errorf("failed to insert billing: %w", err)
	}
	return nil
}

func (s *SQLStore) CountBillingCopies(ctx context.Context, base string) (int, error) {
	qctx, cancel := utils.DefaultQueryContext(ctx)
	defer cancel()

	var count int
	err := s.db.QueryRowContext(qctx,
		`SELECT COUNT(*) FROM progress_billings WHERE billing_no LIKE $1`,
		base+"-copy-%").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count billing copies: %w", err)
	}
	return count, nil
}

func (s *SQLStore) ListAccomplishments(ctx context.Context, billingID int) ([]models.Accomplishment, error) {
	qctx, cancel := utils.DefaultQueryContext(ctx)
	defer cancel()

	query := `
		SELECT billing_id, proposal_line_id, percent_previous, percent_present
		FROM billing_accomplishments
		WHERE billing_id = $1
		ORDER BY proposal_line_id`

	rows, err := s.db.QueryContext(qctx, query, billingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accomplishments: %w", err)
	}
	defer rows.Close()

	var out []models.Accomplishment
	for rows.Next() {
		var a models.Accomplishment
		if err := rows.Scan(&a.BillingID, &a.ProposalLineID, &a.PercentPrevious, &a.PercentPresent); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *SQLStore) UpsertAccomplishment(ctx context.Context, a models.Accomplishment) error {
	qctx, cancel := utils.DefaultQueryContext(ctx)
	defer cancel()

	query := `
		INSERT INTO billing_accomplishments (billing_id, proposal_line_id, percent_previous, percent_present)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (billing_id, proposal_line_id)
		DO UPDATE SET percent_previous = EXCLUDED.percent_previous, percent_present = EXCLUDED.percent_present`

	if _, err := s.db.ExecContext(qctx, query, a.BillingID, a.ProposalLineID, a.PercentPrevious, a.PercentPresent); err != nil {
		return fmt.Errorf("failed to upsert accomplishment: %w", err)
	}
	return nil
}

func (s *SQLStore) InsertAccomplishmentLog(ctx context.Context, l *models.AccomplishmentLog) error {
	qctx, cancel := utils.DefaultQueryContext(ctx)
	defer cancel()

	query := `
		INSERT INTO accomplishment_logs (billing_id, proposal_line_id, percent_present, user_id, note, week_no, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING log_id`

	err := s.db.QueryRowContext(qctx, query,
		l.BillingID, l.ProposalLineID, l.PercentPresent, l.UserID, l.Note, l.WeekNo, l.CreatedAt).Scan(&l.LogID)
	if err != nil {
		return fmt.Errorf("failed to insert accomplishment log: %w", err)
	}
	return nil
}

func (s *SQLStore) ListBillingLines(ctx context.Context, billingID int) ([]models.WeightedLine, error) {
	qctx, cancel := utils.RollupQueryContext(ctx)
	defer cancel()

	query := `
		SELECT l.proposal_line_id, wi.name, l.amount,
		       COALESCE(a.percent_previous, 0), COALESCE(a.percent_present, 0)
		FROM progress_billings b
		JOIN final_estimation_lines l ON l.proposal_id = b.proposal_id
		JOIN sow_proposal_lines pl ON pl.proposal_line_id = l.proposal_line_id
		JOIN work_items wi ON wi.work_item_id = pl.work_item_id
		LEFT JOIN billing_accomplishments a
		       ON a.billing_id = b.billing_id AND a.proposal_line_id = l.proposal_line_id
		WHERE b.billing_id = $1
		ORDER BY pl.sequence_no`

	rows, err := s.db.QueryContext(qctx, query, billingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list billing lines: %w", err)
	}
	defer rows.Close()

	var out []models.WeightedLine
	for rows.Next() {
		var w models.WeightedLine
		if err := rows.Scan(&w.ProposalLineID, &w.WorkItemName, &w.Amount, &w.PercentPrevious, &w.PercentPresent); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (s *SQLStore) MonthlyWeightedTotals(ctx context.Context, projectID int) ([]models.ProgressPoint, error) {
	qctx, cancel := utils.RollupQueryContext(ctx)
	defer cancel()

	// Pre-aggregated to one row per project-month before the running sum is
	// applied in the service; a duplicate month here would corrupt the curve.
	query := `
		SELECT b.project_id,
		       to_char(date_trunc('month', b.billing_date), 'YYYY-MM') AS month,
		       SUM(a.percent_present * l.amount / s.total) AS weighted
		FROM progress_billings b
		JOIN billing_accomplishments a ON a.billing_id = b.billing_id
		JOIN final_estimation_lines l ON l.proposal_line_id = a.proposal_line_id
		JOIN final_estimations s ON s.proposal_id = b.proposal_id AND s.total > 0
		WHERE b.project_id = $1
		GROUP BY b.project_id, month
		ORDER BY month`

	rows, err := s.db.QueryContext(qctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly progress: %w", err)
	}
	defer rows.Close()

	var points []models.ProgressPoint
	for rows.Next() {
		var p models.ProgressPoint
		if err := rows.Scan(&p.ProjectID, &p.Month, &p.Weighted); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// ---- structured id sequences -------------------------------------------

func (s *SQLStore) NextSequence(ctx context.Context, entityCode string, year int) (int, error) {
	qctx, cancel := utils.DefaultQueryContext(ctx)
	defer cancel()

	query := `
		INSERT INTO id_sequences (entity_code, year, last_no)
		VALUES ($1, $2, 1)
		ON CONFLICT (entity_code, year)
		DO UPDATE SET last_no = id_sequences.last_no + 1
		RETURNING last_no`

	var seq int
	if err := s.db.QueryRowContext(qctx, query, entityCode, year).Scan(&seq); err != nil {
		return 0, fmt.Errorf("failed to advance id sequence %s: %w", entityCode, err)
	}
	return seq, nil
}

// ---- helpers -----------------------------------------------------------

func nullableFloat(f *float64) interface{} {
	if f == nil {
		return nil
	}
	return *f
}

func requireRows(result sql.Result, entity string, id int) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return &models.NotFoundError{Entity: entity, Key: strconv.Itoa(id)}
	}
	return nil
}
