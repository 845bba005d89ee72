package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cusloyola/CAPSTONE-sub000/services"
)

// GenerateBillingPDF renders a billing summary PDF: header, the weighted
// accomplishment table and a QR code carrying the billing reference.
// @Summary Download a billing summary PDF
// @Tags Billing
// @Produce application/pdf
// @Param billing_id path int true "Billing id"
// @Success 200 "PDF file"
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/billing/{billing_id}/report [get]
func GenerateBillingPDF(billingSvc *services.BillingService, estimationSvc *services.EstimationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		billingID, err := strconv.Atoi(c.Param("billing_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid billing_id"})
			return
		}

		billing, err := billingSvc.GetBilling(c.Request.Context(), billingID)
		if err != nil {
			respondError(c, err)
			return
		}
		lines, err := estimationSvc.WeightPercents(c.Request.Context(), billingID)
		if err != nil {
			respondError(c, err)
			return
		}

		titleCaser := cases.Title(language.Und)

		pdf := gofpdf.New("P", "mm", "A4", "")
		pdf.AddPage()

		pdf.SetFont("Arial", "B", 16)
		pdf.Cell(0, 10, "Progress Billing Summary")
		pdf.Ln(12)

		pdf.SetFont("Arial", "", 11)
		pdf.Cell(0, 7, fmt.Sprintf("Billing No: %s", billing.BillingNo))
		pdf.Ln(7)
		pdf.Cell(0, 7, fmt.Sprintf("Billing Date: %s", billing.BillingDate.Format("January 2, 2006")))
		pdf.Ln(7)
		pdf.Cell(0, 7, fmt.Sprintf("Status: %s", titleCaser.String(billing.Status)))
		pdf.Ln(7)
		pdf.Cell(0, 7, fmt.Sprintf("Revision: %d", billing.RevisionNo))
		pdf.Ln(10)

		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(230, 230, 230)
		pdf.CellFormat(70, 8, "Scope of Work", "1", 0, "L", true, 0, "")
		pdf.CellFormat(35, 8, "Amount", "1", 0, "R", true, 0, "")
		pdf.CellFormat(25, 8, "Weight %", "1", 0, "R", true, 0, "")
		pdf.CellFormat(30, 8, "Previous %", "1", 0, "R", true, 0, "")
		pdf.CellFormat(30, 8, "Present %", "1", 1, "R", true, 0, "")

		pdf.SetFont("Arial", "", 10)
		var totalPrevious, totalPresent float64
		for _, line := range lines {
			pdf.CellFormat(70, 7, line.WorkItemName, "1", 0, "L", false, 0, "")
			pdf.CellFormat(35, 7, fmt.Sprintf("%.2f", line.Amount), "1", 0, "R", false, 0, "")
			pdf.CellFormat(25, 7, fmt.Sprintf("%.4f", line.WeightPercent), "1", 0, "R", false, 0, "")
			pdf.CellFormat(30, 7, fmt.Sprintf("%.2f", line.PercentPrevious), "1", 0, "R", false, 0, "")
			pdf.CellFormat(30, 7, fmt.Sprintf("%.2f", line.PercentPresent), "1", 1, "R", false, 0, "")
			totalPrevious += line.WeightPercent * line.PercentPrevious / 100
			totalPresent += line.WeightPercent * line.PercentPresent / 100
		}

		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(130, 8, "Weighted Accomplishment", "1", 0, "L", true, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%.4f", totalPrevious), "1", 0, "R", true, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%.4f", totalPresent), "1", 1, "R", true, 0, "")
		pdf.Ln(6)

		jsonData, err := json.Marshal(gin.H{
			"billing_id": billing.BillingID,
			"billing_no": billing.BillingNo,
			"project_id": billing.ProjectID,
		})
		if err == nil {
			if qr, qrErr := qrcode.New(string(jsonData), qrcode.Medium); qrErr == nil {
				if png, pngErr := qr.PNG(256); pngErr == nil {
					opts := gofpdf.ImageOptions{ImageType: "PNG"}
					pdf.RegisterImageOptionsReader("billing-qr", opts, bytes.NewReader(png))
					pdf.ImageOptions("billing-qr", 160, pdf.GetY(), 35, 35, false, opts, 0, "")
				}
			}
		}

		var buf bytes.Buffer
		if err := pdf.Output(&buf); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render PDF", "details": err.Error()})
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="billing_%s.pdf"`, billing.BillingNo))
		c.Data(http.StatusOK, "application/pdf", buf.Bytes())
	}
}
