package models

import (
	"time"
)

// LaborEntry is one crew/rate row for a proposal line. The per-line labor
// unit cost is the sum of all entry costs, cached in LaborCost and refreshed
// after every insert/update/delete.
type LaborEntry struct {
	LaborEntryID   int     `json:"labor_entry_id" example:"41"`
	ProposalLineID int     `json:"proposal_line_id" example:"101"`
	Crew           string  `json:"crew" example:"1 foreman, 4 laborers"`
	Rate           float64 `json:"rate" example:"650"`
	Quantity       float64 `json:"quantity" example:"2"`
	Cost           float64 `json:"cost" example:"1300"`
}

// LaborCost is the cached labor unit cost for a proposal line.
type LaborCost struct {
	ProposalLineID int       `json:"proposal_line_id" example:"101"`
	UnitCost       float64   `json:"unit_cost" example:"1300"`
	UpdatedAt      time.Time `json:"updated_at" example:"2025-03-11T10:00:00Z"`
}

// MTORow is one material take-off resource row for a proposal line. The
// per-line grand total is cached and refreshed after every mutation.
type MTORow struct {
	MTORowID       int     `json:"mto_row_id" example:"71"`
	ProposalLineID int     `json:"proposal_line_id" example:"101"`
	ResourceID     int     `json:"resource_id" example:"9"`
	Quantity       float64 `json:"quantity" example:"120"`
	UnitCost       float64 `json:"unit_cost" example:"255.50"`
	Total          float64 `json:"total" example:"30660"`
}

// MTOGrandTotal is the cached material grand total for a proposal line.
type MTOGrandTotal struct {
	ProposalLineID int     `json:"proposal_line_id" example:"101"`
	GrandTotal     float64 `json:"grand_total" example:"30660"`
}

// FinalEstimationSummary is the one-per-proposal estimation header, written
// atomically together with its lines.
type FinalEstimationSummary struct {
	ProposalID    int       `json:"proposal_id" example:"7"`
	Total         float64   `json:"total" example:"1250000"`
	MarkupPercent float64   `json:"markup_percent" example:"12"`
	MarkupAmount  float64   `json:"markup_amount" example:"150000"`
	GrandTotal    float64   `json:"grand_total" example:"1400000"`
	CreatedAt     time.Time `json:"created_at" example:"2025-03-12T09:00:00Z"`
}

// FinalEstimationLine is the stored point-in-time amount for one proposal
// line. RemainingAmount starts equal to Amount and only decreases through
// material consumption postings.
type FinalEstimationLine struct {
	ProposalLineID  int     `json:"proposal_line_id" example:"101"`
	ProposalID      int     `json:"proposal_id" example:"7"`
	Amount          float64 `json:"amount" example:"56000"`
	RemainingAmount float64 `json:"remaining_amount" example:"42500"`
}

// FinalCostLine is the read-time recomputed view of one proposal line's
// amount, ordered by (work type sequence, item sequence) and item-numbered.
type FinalCostLine struct {
	ItemNo         string  `json:"item_no" example:"2.3"`
	ProposalLineID int     `json:"proposal_line_id" example:"101"`
	WorkItemID     int     `json:"work_item_id" example:"12"`
	WorkItemName   string  `json:"work_item_name" example:"Suspended Slab"`
	WorkTypeName   string  `json:"work_type_name" example:"Concrete Works"`
	Unit           string  `json:"unit" example:"cu.m"`
	Quantity       float64 `json:"quantity" example:"57.6"`
	LaborAmount    float64 `json:"labor_amount" example:"74880"`
	MaterialAmount float64 `json:"material_amount" example:"30660"`
	Amount         float64 `json:"amount" example:"105540"`
}

// SaveFinalEstimationRequest is the payload for persisting an estimation.
type SaveFinalEstimationRequest struct {
	ProposalID    int                       `json:"proposal_id" binding:"required" example:"7"`
	MarkupPercent float64                   `json:"markup_percent" example:"12"`
	Lines         []FinalEstimationLineInput `json:"lines" binding:"required"`
}

// FinalEstimationLineInput is one line of a SaveFinalEstimationRequest.
type FinalEstimationLineInput struct {
	ProposalLineID int     `json:"proposal_line_id" binding:"required" example:"101"`
	Amount         float64 `json:"amount" example:"56000"`
}
