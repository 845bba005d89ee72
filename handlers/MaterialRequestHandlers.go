package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cusloyola/CAPSTONE-sub000/models"
	"github.com/cusloyola/CAPSTONE-sub000/services"
)

// ApproveMaterialRequest approves a request and posts every item against
// stock and the line budgets in one transaction.
// @Summary Approve a material request
// @Description Flips the request to approved, decrements stock and remaining line budgets and appends usage entries, all-or-nothing. Any failure rolls the whole request back.
// @Tags Materials
// @Produce json
// @Param request_id path int true "Material request id"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/material_requests/{request_id}/approve [post]
func ApproveMaterialRequest(svc *services.ConsumptionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID, err := strconv.Atoi(c.Param("request_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request_id"})
			return
		}

		if err := svc.ApproveRequest(c.Request.Context(), requestID); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.MessageResponse{Message: "material request approved"})
	}
}

// RejectMaterialRequest flips the request status with no cascading effects.
// @Summary Reject a material request
// @Tags Materials
// @Produce json
// @Param request_id path int true "Material request id"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /api/material_requests/{request_id}/reject [post]
func RejectMaterialRequest(svc *services.ConsumptionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID, err := strconv.Atoi(c.Param("request_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request_id"})
			return
		}

		if err := svc.RejectRequest(c.Request.Context(), requestID); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.MessageResponse{Message: "material request rejected"})
	}
}
