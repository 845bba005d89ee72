package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cusloyola/CAPSTONE-sub000/models"
)

// respondError maps the engine error kinds onto HTTP statuses. Validation
// errors carry no side effects; transaction errors mean the whole operation
// was rolled back.
func respondError(c *gin.Context, err error) {
	var (
		ve *models.ValidationError
		nf *models.NotFoundError
		de *models.DuplicateError
		ce *models.ConflictError
		te *models.TransactionError
	)
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
	case errors.As(err, &nf):
		c.JSON(http.StatusNotFound, gin.H{"error": nf.Error()})
	case errors.As(err, &de):
		c.JSON(http.StatusConflict, gin.H{"error": de.Error()})
	case errors.As(err, &ce):
		c.JSON(http.StatusConflict, gin.H{"error": ce.Error()})
	case errors.As(err, &te):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed and was rolled back", "details": te.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
