package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cusloyola/CAPSTONE-sub000/models"
	"github.com/cusloyola/CAPSTONE-sub000/services"
)

// AddLaborEntry inserts one labor row and refreshes the line's cached labor
// unit cost through the recompute-after-write hook.
// @Summary Add a labor entry to a proposal line
// @Tags Cost
// @Accept json
// @Produce json
// @Param body body models.LaborEntry true "Labor entry (cost is computed server-side)"
// @Success 201 {object} models.LaborEntry
// @Failure 400 {object} models.ErrorResponse
// @Router /api/cost/labor [post]
func AddLaborEntry(svc *services.CostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var entry models.LaborEntry
		if err := c.ShouldBindJSON(&entry); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := svc.AddLaborEntry(c.Request.Context(), &entry); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, entry)
	}
}

// DeleteLaborEntry removes one labor row; the cache refresh runs inside the
// service.
// @Summary Delete a labor entry
// @Tags Cost
// @Produce json
// @Param labor_entry_id path int true "Labor entry id"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/cost/labor/{labor_entry_id} [delete]
func DeleteLaborEntry(svc *services.CostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("labor_entry_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid labor_entry_id"})
			return
		}

		if err := svc.RemoveLaborEntry(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.MessageResponse{Message: "labor entry deleted"})
	}
}

// AddMTORow inserts one material take-off row and refreshes the line's
// cached material grand total.
// @Summary Add a material take-off row to a proposal line
// @Tags Cost
// @Accept json
// @Produce json
// @Param body body models.MTORow true "MTO row (total is computed server-side)"
// @Success 201 {object} models.MTORow
// @Failure 400 {object} models.ErrorResponse
// @Router /api/cost/mto [post]
func AddMTORow(svc *services.CostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var row models.MTORow
		if err := c.ShouldBindJSON(&row); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := svc.AddMTORow(c.Request.Context(), &row); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, row)
	}
}

// DeleteMTORow removes one material take-off row.
// @Summary Delete a material take-off row
// @Tags Cost
// @Produce json
// @Param mto_row_id path int true "MTO row id"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/cost/mto/{mto_row_id} [delete]
func DeleteMTORow(svc *services.CostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("mto_row_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid mto_row_id"})
			return
		}

		if err := svc.RemoveMTORow(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.MessageResponse{Message: "mto row deleted"})
	}
}
