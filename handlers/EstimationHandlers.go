package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cusloyola/CAPSTONE-sub000/models"
	"github.com/cusloyola/CAPSTONE-sub000/services"
)

// GetFinalCost recomputes every line's amount at read time and returns the
// item-numbered list.
// @Summary Get the recomputed final cost of a proposal
// @Description Amounts are recomputed from current quantities and cost caches, not read from the stored estimation snapshot.
// @Tags Estimation
// @Produce json
// @Param proposal_id path int true "Proposal id"
// @Success 200 {array} models.FinalCostLine
// @Failure 400 {object} models.ErrorResponse
// @Router /api/estimation/{proposal_id}/final_cost [get]
func GetFinalCost(svc *services.EstimationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		proposalID, err := strconv.Atoi(c.Param("proposal_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid proposal_id"})
			return
		}

		lines, err := svc.GetFinalCost(c.Request.Context(), proposalID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, lines)
	}
}

// SaveFinalEstimation persists the one-per-proposal estimation summary and
// its lines atomically.
// @Summary Save the final estimation of a proposal
// @Description Writes the summary and one line per input in one transaction. A second save for the same proposal is rejected with 409; delete the existing estimation first.
// @Tags Estimation
// @Accept json
// @Produce json
// @Param body body models.SaveFinalEstimationRequest true "Estimation lines and markup"
// @Success 201 {object} models.FinalEstimationSummary
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/estimation/final [post]
func SaveFinalEstimation(svc *services.EstimationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.SaveFinalEstimationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		summary, err := svc.SaveFinalEstimation(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, summary)
	}
}

// GetWeightedSummary returns every line of the billing's proposal with its
// weight percent and recorded accomplishment.
// @Summary Get the weighted line summary of a billing
// @Tags Billing
// @Produce json
// @Param billing_id path int true "Billing id"
// @Success 200 {array} models.WeightedLine
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/billing/{billing_id}/weighted_summary [get]
func GetWeightedSummary(svc *services.EstimationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		billingID, err := strconv.Atoi(c.Param("billing_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid billing_id"})
			return
		}

		lines, err := svc.WeightPercents(c.Request.Context(), billingID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, lines)
	}
}
