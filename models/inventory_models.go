package models

import (
	"time"
)

// GORM-backed inventory models. The consumption ledger runs inside gorm
// transactions, so these carry column tags and explicit table names.

// Material request statuses.
const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

// Resource is a priced, stocked material owned by a work item.
type Resource struct {
	ResourceID int       `gorm:"primaryKey;column:resource_id" json:"resource_id"`
	Name       string    `gorm:"column:name;not null" json:"name"`
	Unit       string    `gorm:"column:unit;not null" json:"unit"`
	UnitCost   float64   `gorm:"column:unit_cost;type:numeric(14,2);not null" json:"unit_cost"`
	Stock      float64   `gorm:"column:stock;type:numeric(14,2);not null;default:0" json:"stock"`
	WorkItemID int       `gorm:"column:work_item_id;not null" json:"work_item_id"`
	UpdatedAt  time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName specifies the table name for Resource
func (Resource) TableName() string {
	return "resources"
}

// MaterialRequest is a site request for stocked materials, approved or
// rejected as a whole.
type MaterialRequest struct {
	RequestID   int                   `gorm:"primaryKey;column:request_id" json:"request_id"`
	RequestNo   string                `gorm:"column:request_no" json:"request_no"`
	ProjectID   int                   `gorm:"column:project_id;not null" json:"project_id"`
	ProposalID  int                   `gorm:"column:proposal_id;not null" json:"proposal_id"`
	Status      string                `gorm:"column:status;not null;default:'pending'" json:"status"`
	RequestedBy string                `gorm:"column:requested_by" json:"requested_by"`
	ApprovedAt  *time.Time            `gorm:"column:approved_at" json:"approved_at,omitempty"`
	CreatedAt   time.Time             `gorm:"column:created_at" json:"created_at"`
	Items       []MaterialRequestItem `gorm:"foreignKey:RequestID;references:RequestID" json:"items"`
}

// TableName specifies the table name for MaterialRequest
func (MaterialRequest) TableName() string {
	return "material_requests"
}

// MaterialRequestItem is one requested resource quantity.
type MaterialRequestItem struct {
	RequestItemID int     `gorm:"primaryKey;column:request_item_id" json:"request_item_id"`
	RequestID     int     `gorm:"column:request_id;not null;index" json:"request_id"`
	ResourceID    int     `gorm:"column:resource_id;not null" json:"resource_id"`
	Quantity      float64 `gorm:"column:quantity;type:numeric(14,2);not null" json:"quantity"`
}

// TableName specifies the table name for MaterialRequestItem
func (MaterialRequestItem) TableName() string {
	return "material_request_items"
}

// UsageEntry is an append-only record of one stock decrement. Always created
// together with the stock and remaining-amount decrements in one transaction.
type UsageEntry struct {
	UsageEntryID  int       `gorm:"primaryKey;column:usage_entry_id" json:"usage_entry_id"`
	WorkItemID    int       `gorm:"column:work_item_id;not null" json:"work_item_id"`
	ProjectID     int       `gorm:"column:project_id;not null" json:"project_id"`
	ResourceID    int       `gorm:"column:resource_id;not null" json:"resource_id"`
	QuantityUsed  float64   `gorm:"column:quantity_used;type:numeric(14,2);not null" json:"quantity_used"`
	TotalCost     float64   `gorm:"column:total_cost;type:numeric(14,2);not null" json:"total_cost"`
	PreviousStock float64   `gorm:"column:previous_stock;type:numeric(14,2);not null" json:"previous_stock"`
	CurrentStock  float64   `gorm:"column:current_stock;type:numeric(14,2);not null" json:"current_stock"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName specifies the table name for UsageEntry
func (UsageEntry) TableName() string {
	return "material_usage_entries"
}
