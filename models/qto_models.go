package models

import (
	"time"
)

// WorkItemKind discriminates how a work item's quantity feeds cost
// calculation. Resolved once when the work item is defined, never re-derived
// from ids at compute time.
type WorkItemKind string

const (
	WorkItemVolumetric WorkItemKind = "volumetric"
	WorkItemRebar      WorkItemKind = "rebar"
)

// WorkItem is a catalog entry describing a scope-of-work task. Parent work
// items group children for the parent-total roll-up.
type WorkItem struct {
	WorkItemID   int          `json:"work_item_id" example:"12"`
	Name         string       `json:"name" example:"Suspended Slab"`
	ParentID     *int         `json:"parent_id,omitempty" example:"4"`
	Kind         WorkItemKind `json:"kind" example:"volumetric"`
	Unit         string       `json:"unit" example:"cu.m"`
	SequenceNo   int          `json:"sequence_no" example:"3"`
	WorkTypeID   int          `json:"work_type_id" example:"2"`
	WorkTypeName string       `json:"work_type_name,omitempty" example:"Concrete Works"`
}

// ProposalLine is one work-item instance scoped to a specific proposal
// (sow_proposal). Most totals are keyed by it.
type ProposalLine struct {
	ProposalLineID int    `json:"proposal_line_id" example:"101"`
	ProposalID     int    `json:"proposal_id" example:"7"`
	WorkItemID     int    `json:"work_item_id" example:"12"`
	ItemNo         string `json:"item_no,omitempty" example:"2.3"`
	SequenceNo     int    `json:"sequence_no" example:"3"`
}

// DimensionEntry is one raw measured row for a work item under a proposal
// line. ComputedValue is length*width*units when depth is absent or zero,
// otherwise length*width*depth*units.
type DimensionEntry struct {
	QTOID          int       `json:"qto_id" example:"5001"`
	ProposalLineID int       `json:"proposal_line_id" example:"101"`
	WorkItemID     int       `json:"work_item_id" example:"12"`
	Label          string    `json:"label,omitempty" example:"Footing F1"`
	Length         float64   `json:"length" example:"2.5"`
	Width          float64   `json:"width" example:"1.2"`
	Depth          *float64  `json:"depth,omitempty" example:"0.4"`
	Units          float64   `json:"units" example:"8"`
	ComputedValue  float64   `json:"computed_value" example:"9.6"`
	CreatedAt      time.Time `json:"created_at" example:"2025-03-10T08:30:00Z"`
	UpdatedAt      time.Time `json:"updated_at" example:"2025-03-10T08:30:00Z"`
}

// Compute returns the measured volume (or area when depth is absent) for the
// entry. Depth in (nil, 0) means the item is two-dimensional.
func (d *DimensionEntry) Compute() float64 {
	if d.Depth == nil || *d.Depth == 0 {
		return d.Length * d.Width * d.Units
	}
	return d.Length * d.Width * *d.Depth * d.Units
}

// ChildrenTotal is the derived sum of computed values for one work item
// within one proposal line. Never edited directly, always overwritten by a
// recompute.
type ChildrenTotal struct {
	ProposalLineID int     `json:"proposal_line_id" example:"101"`
	WorkItemID     int     `json:"work_item_id" example:"12"`
	TotalVolume    float64 `json:"total_volume" example:"57.6"`
}

// ParentTotal is the derived sum of children totals across all child work
// items sharing a parent, within one proposal line. TotalValue is always the
// pure sum; TotalWithAllowance is a cached derived column recomputed whenever
// TotalValue or AllowancePercent changes.
type ParentTotal struct {
	ProposalLineID     int     `json:"proposal_line_id" example:"101"`
	ParentWorkItemID   int     `json:"parent_work_item_id" example:"4"`
	TotalValue         float64 `json:"total_value" example:"1000"`
	AllowancePercent   float64 `json:"allowance_percent" example:"1.05"`
	TotalWithAllowance float64 `json:"total_with_allowance" example:"1050.00"`
}

// RebarDetail is one rebar take-off row. Weights are aggregated per rebar
// type and priced against the rebar resource unit costs.
type RebarDetail struct {
	RebarDetailID  int     `json:"rebar_detail_id" example:"301"`
	ProposalLineID int     `json:"proposal_line_id" example:"101"`
	RebarTypeID    int     `json:"rebar_type_id" example:"16"`
	Weight         float64 `json:"weight_kg" example:"482.5"`
}

// SubmitDimensionsRequest is the payload for the bulk QTO entry endpoint.
type SubmitDimensionsRequest struct {
	Entries []DimensionEntry `json:"entries"`
}

// SubmitDimensionsResponse returns the parent totals refreshed by the
// roll-up cascade.
type SubmitDimensionsResponse struct {
	Message           string        `json:"message" example:"dimensions saved"`
	SavedParentTotals []ParentTotal `json:"saved_parent_totals"`
}

// ApplyAllowanceRequest sets the allowance multiplier for every parent total
// under a proposal line.
type ApplyAllowanceRequest struct {
	ProposalLineID   int     `json:"proposal_line_id" binding:"required" example:"101"`
	AllowancePercent float64 `json:"allowance_percent" binding:"required" example:"1.05"`
}
