package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cusloyola/CAPSTONE-sub000/models"
	"github.com/cusloyola/CAPSTONE-sub000/services"
)

// SubmitDimensions saves a batch of QTO dimension entries and runs the full
// roll-up cascade for every affected (proposal line, work item) pair.
// @Summary Submit QTO dimension entries
// @Description Save measured dimension rows and recompute children totals, then parent totals, for every affected pair. Returns the refreshed parent totals.
// @Tags QTO
// @Accept json
// @Produce json
// @Param body body models.SubmitDimensionsRequest true "Dimension entries to save"
// @Success 201 {object} models.SubmitDimensionsResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/qto/dimensions [post]
func SubmitDimensions(svc *services.RollupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.SubmitDimensionsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		totals, err := svc.SubmitDimensions(c.Request.Context(), req.Entries)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SubmitDimensionsResponse{
			Message:           "dimensions saved",
			SavedParentTotals: totals,
		})
	}
}

// UpdateDimension edits one dimension entry and re-runs the cascade scoped
// to its pair.
// @Summary Update a QTO dimension entry
// @Tags QTO
// @Accept json
// @Produce json
// @Param qto_id path int true "Dimension entry id"
// @Param body body services.UpdateDimensionInput true "New dimension values"
// @Success 200 {object} models.SubmitDimensionsResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/qto/dimensions/{qto_id} [put]
func UpdateDimension(svc *services.RollupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		qtoID, err := strconv.Atoi(c.Param("qto_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid qto_id"})
			return
		}

		var in services.UpdateDimensionInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		totals, err := svc.UpdateDimension(c.Request.Context(), qtoID, in)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SubmitDimensionsResponse{
			Message:           "dimension updated",
			SavedParentTotals: totals,
		})
	}
}

// DeleteDimension removes one dimension entry and re-runs the cascade scoped
// to its pair.
// @Summary Delete a QTO dimension entry
// @Tags QTO
// @Produce json
// @Param qto_id path int true "Dimension entry id"
// @Success 200 {object} models.SubmitDimensionsResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/qto/dimensions/{qto_id} [delete]
func DeleteDimension(svc *services.RollupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		qtoID, err := strconv.Atoi(c.Param("qto_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid qto_id"})
			return
		}

		totals, err := svc.DeleteDimension(c.Request.Context(), qtoID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SubmitDimensionsResponse{
			Message:           "dimension deleted",
			SavedParentTotals: totals,
		})
	}
}

// ApplyAllowance bulk-updates the allowance multiplier for every parent
// total of a proposal line.
// @Summary Apply an allowance multiplier to a proposal line
// @Description Sets allowance_percent on every parent total of the line and recomputes the cached total_with_allowance.
// @Tags QTO
// @Accept json
// @Produce json
// @Param body body models.ApplyAllowanceRequest true "Proposal line and multiplier"
// @Success 200 {object} models.RowsUpdatedResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/qto/allowance [post]
func ApplyAllowance(svc *services.RollupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ApplyAllowanceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		rows, err := svc.ApplyAllowance(c.Request.Context(), req.ProposalLineID, req.AllowancePercent)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.RowsUpdatedResponse{
			Message:     "allowance applied",
			RowsUpdated: rows,
		})
	}
}
