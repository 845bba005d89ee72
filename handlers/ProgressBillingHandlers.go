package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cusloyola/CAPSTONE-sub000/models"
	"github.com/cusloyola/CAPSTONE-sub000/services"
)

// CreateBilling opens a new accrual cycle, optionally copying forward the
// accomplishments of a previous billing as the new baseline.
// @Summary Create a progress billing
// @Description With previous_billing_id set, every accomplishment of that billing is carried forward: percent_previous becomes previous+present, percent_present resets to 0.
// @Tags Billing
// @Accept json
// @Produce json
// @Param body body models.CreateBillingRequest true "Billing cycle to open"
// @Success 201 {object} models.CreateBillingResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/billing [post]
func CreateBilling(svc *services.BillingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CreateBillingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		billing, err := svc.CreateBilling(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.CreateBillingResponse{
			Message:   "billing created",
			BillingID: billing.BillingID,
			BillingNo: billing.BillingNo,
		})
	}
}

// CopyBilling duplicates a billing under a derived billing number. The copy
// starts as a Draft dated now and carries no accomplishments.
// @Summary Copy a progress billing
// @Tags Billing
// @Produce json
// @Param billing_id path int true "Billing id to copy"
// @Success 201 {object} models.Billing
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/billing/copy/{billing_id} [post]
func CopyBilling(svc *services.BillingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		billingID, err := strconv.Atoi(c.Param("billing_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid billing_id"})
			return
		}

		dup, err := svc.CopyBilling(c.Request.Context(), billingID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, dup)
	}
}

// RecordAccomplishment upserts the percent-complete of one line within one
// billing cycle. Overwrites, never accumulates.
// @Summary Record a line's accomplishment for a billing
// @Tags Billing
// @Accept json
// @Produce json
// @Param body body models.RecordAccomplishmentRequest true "Accomplishment to record"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/billing/accomplishment [post]
func RecordAccomplishment(svc *services.BillingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.RecordAccomplishmentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := svc.RecordAccomplishment(c.Request.Context(), req); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.MessageResponse{Message: "accomplishment recorded"})
	}
}

// AppendAccomplishmentLog appends one append-only audit row. Separate from
// the accomplishment upsert on purpose.
// @Summary Append an accomplishment audit log row
// @Tags Billing
// @Accept json
// @Produce json
// @Param body body models.AppendAccomplishmentLogRequest true "Audit row"
// @Success 201 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/billing/accomplishment_log [post]
func AppendAccomplishmentLog(svc *services.BillingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.AppendAccomplishmentLogRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := svc.AppendAccomplishmentLog(c.Request.Context(), req); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, models.MessageResponse{Message: "accomplishment logged"})
	}
}

// CumulativeProgress returns the project's month-by-month S-curve.
// @Summary Get a project's cumulative accomplishment curve
// @Tags Billing
// @Produce json
// @Param project_id path int true "Project id"
// @Success 200 {array} models.ProgressPoint
// @Failure 400 {object} models.ErrorResponse
// @Router /api/projects/{project_id}/progress_curve [get]
func CumulativeProgress(svc *services.BillingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, err := strconv.Atoi(c.Param("project_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project_id"})
			return
		}

		points, err := svc.CumulativeProgress(c.Request.Context(), projectID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, points)
	}
}
