package models

import (
	"time"
)

// Billing is one periodic accrual cycle against a proposal's estimation.
// Status is a free-form persisted label; the engine copies it but never gates
// operations on it.
type Billing struct {
	BillingID         int       `json:"billing_id" example:"61"`
	ProposalID        int       `json:"proposal_id" example:"7"`
	ProjectID         int       `json:"project_id" example:"3"`
	BillingNo         string    `json:"billing_no" example:"BLL-2026-00042"`
	BillingDate       time.Time `json:"billing_date" example:"2026-02-28T00:00:00Z"`
	Status            string    `json:"status" example:"Draft"`
	RevisionNo        int       `json:"revision_no" example:"0"`
	Notes             string    `json:"notes,omitempty" example:"February cycle"`
	PreviousBillingID *int      `json:"previous_billing_id,omitempty" example:"55"`
}

// Accomplishment is the percent-complete recorded for a line within a billing
// cycle. Unique per (billing, proposal line); re-submitting overwrites.
type Accomplishment struct {
	BillingID       int     `json:"billing_id" example:"61"`
	ProposalLineID  int     `json:"proposal_line_id" example:"101"`
	PercentPrevious float64 `json:"percent_previous" example:"25"`
	PercentPresent  float64 `json:"percent_present" example:"10"`
}

// AccomplishmentLog is an append-only audit row. Never updated or deleted by
// the engine.
type AccomplishmentLog struct {
	LogID          int       `json:"log_id" example:"901"`
	BillingID      int       `json:"billing_id" example:"61"`
	ProposalLineID int       `json:"proposal_line_id" example:"101"`
	PercentPresent float64   `json:"percent_present" example:"10"`
	UserID         int       `json:"user_id" example:"4"`
	Note           string    `json:"note,omitempty" example:"rebar laying done"`
	WeekNo         int       `json:"week_no" example:"9"`
	CreatedAt      time.Time `json:"created_at" example:"2026-02-26T14:00:00Z"`
}

// WeightedLine is one line of a billing's weighted summary. WeightPercent is
// the line's share of the proposal's total estimated amount.
type WeightedLine struct {
	ProposalLineID  int     `json:"proposal_line_id" example:"101"`
	WorkItemName    string  `json:"work_item_name" example:"Suspended Slab"`
	Amount          float64 `json:"amount" example:"105540"`
	WeightPercent   float64 `json:"weight_percent" example:"8.443200"`
	PercentPrevious float64 `json:"percent_previous" example:"25"`
	PercentPresent  float64 `json:"percent_present" example:"10"`
}

// ProgressPoint is one month of a project's cumulative accomplishment curve.
type ProgressPoint struct {
	ProjectID  int     `json:"project_id" example:"3"`
	Month      string  `json:"month" example:"2026-02"`
	Weighted   float64 `json:"weighted_accomplishment" example:"6.25"`
	Cumulative float64 `json:"cumulative" example:"38.75"`
}

// CreateBillingRequest starts a new accrual cycle, optionally copying forward
// the accomplishments of a previous billing.
type CreateBillingRequest struct {
	ProposalID        int    `json:"proposal_id" binding:"required" example:"7"`
	ProjectID         int    `json:"project_id" binding:"required" example:"3"`
	BillingDate       string `json:"billing_date,omitempty" example:"2026-02-28"`
	Notes             string `json:"notes,omitempty" example:"February cycle"`
	PreviousBillingID *int   `json:"previous_billing_id,omitempty" example:"55"`
}

// RecordAccomplishmentRequest upserts one accomplishment row.
type RecordAccomplishmentRequest struct {
	BillingID       int     `json:"billing_id" binding:"required" example:"61"`
	ProposalLineID  int     `json:"proposal_line_id" binding:"required" example:"101"`
	PercentPresent  float64 `json:"percent_present" example:"10"`
	PercentPrevious float64 `json:"percent_previous" example:"25"`
}

// AppendAccomplishmentLogRequest appends one audit row; it is a separate call
// from the upsert and not transactionally linked to it.
type AppendAccomplishmentLogRequest struct {
	BillingID      int     `json:"billing_id" binding:"required" example:"61"`
	ProposalLineID int     `json:"proposal_line_id" binding:"required" example:"101"`
	PercentPresent float64 `json:"percent_present" example:"10"`
	UserID         int     `json:"user_id" example:"4"`
	Note           string  `json:"note,omitempty" example:"rebar laying done"`
	WeekNo         int     `json:"week_no" example:"9"`
}
