package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/cusloyola/CAPSTONE-sub000/services"
)

// ExportFinalCost streams the recomputed final cost of a proposal as an
// Excel workbook.
// @Summary Export a proposal's final cost sheet
// @Tags Estimation
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param proposal_id path int true "Proposal id"
// @Success 200 "XLSX file"
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/estimation/{proposal_id}/export [get]
func ExportFinalCost(svc *services.EstimationService) gin.HandlerFunc {
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

		f := excelize.NewFile()
		sheet := "Final Cost"
		f.SetSheetName("Sheet1", sheet)

		headers := []string{"Item No", "Scope of Work", "Work Type", "Unit", "Quantity", "Labor", "Material", "Amount"}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, h)
		}

		printer := message.NewPrinter(language.English)
		var grandTotal float64
		for row, line := range lines {
			values := []interface{}{
				line.ItemNo,
				line.WorkItemName,
				line.WorkTypeName,
				line.Unit,
				line.Quantity,
				printer.Sprintf("%.2f", line.LaborAmount),
				printer.Sprintf("%.2f", line.MaterialAmount),
				printer.Sprintf("%.2f", line.Amount),
			}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
				f.SetCellValue(sheet, cell, v)
			}
			grandTotal += line.Amount
		}

		totalRow := len(lines) + 2
		labelCell, _ := excelize.CoordinatesToCellName(7, totalRow)
		valueCell, _ := excelize.CoordinatesToCellName(8, totalRow)
		f.SetCellValue(sheet, labelCell, "TOTAL")
		f.SetCellValue(sheet, valueCell, printer.Sprintf("%.2f", grandTotal))

		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="final_cost_proposal_%d.xlsx"`, proposalID))
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := f.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write workbook", "details": err.Error()})
		}
	}
}
