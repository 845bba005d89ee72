package models

import (
	"time"
)

// Swagger / API docs: common request and response models referenced by handler annotations

// ErrorResponse is used in @Failure for error responses
type ErrorResponse struct {
	Error   string `json:"error" example:"Invalid input"`
	Details string `json:"details,omitempty" example:""`
}

// MessageResponse is generic response for APIs that return only {"message": "..."}
type MessageResponse struct {
	Message string `json:"message" example:"Success"`
}

// SuccessResponse is used in @Success for generic success
type SuccessResponse struct {
	Message string      `json:"message" example:"Success"`
	Data    interface{} `json:"data,omitempty"`
}

// RowsUpdatedResponse is used by bulk update endpoints (allowance apply).
type RowsUpdatedResponse struct {
	Message     string `json:"message" example:"allowance applied"`
	RowsUpdated int64  `json:"rows_updated" example:"6"`
}

// CreateBillingResponse returns the id of a newly opened billing cycle.
type CreateBillingResponse struct {
	Message   string `json:"message" example:"billing created"`
	BillingID int    `json:"billing_id" example:"61"`
	BillingNo string `json:"billing_no" example:"BLL-2026-00042"`
}

// LoginRequest is used in @Param for login body
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"engineer@example.com"`
	Password string `json:"password" binding:"required" example:"password"`
}

// LoginResponse is used in @Success for login
type LoginResponse struct {
	Message      string `json:"message" example:"User successfully logged in"`
	AccessToken  string `json:"access_token" example:"eyJhbGc..."`
	RefreshToken string `json:"refresh_token" example:"eyJhbGc..."`
	SessionID    string `json:"session_id" example:"uuid"`
	Role         string `json:"role" example:"estimator"`
}

// User is a minimal account row for the thin auth layer.
type User struct {
	ID        int       `json:"id" example:"1"`
	Email     string    `json:"email" example:"engineer@example.com"`
	Password  string    `json:"-"`
	FirstName string    `json:"first_name" example:"Ana"`
	LastName  string    `json:"last_name" example:"Reyes"`
	Role      string    `json:"role" example:"estimator"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is one logged-in device for a user.
type Session struct {
	UserID    int       `json:"user_id"`
	SessionID string    `json:"session_id"`
	HostName  string    `json:"host_name"`
	IPAddress string    `json:"ip_address"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
