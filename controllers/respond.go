package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cloud30/cloud30-sales-api/services"
)

// respondError writes the API error envelope.
func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// respondServiceError maps service-layer errors onto HTTP statuses and
// envelope codes.
func respondServiceError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	var upstreamErr *services.UpstreamError

	switch {
	case errors.As(err, &validationErr):
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", validationErr.Error())
	case errors.Is(err, services.ErrOrderNotFound):
		respondError(c, http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found")
	case errors.Is(err, services.ErrInvoiceNotFound):
		respondError(c, http.StatusNotFound, "INVOICE_NOT_FOUND", "Invoice not found")
	case errors.Is(err, services.ErrVerificationFailed):
		respondError(c, http.StatusBadRequest, "VERIFICATION_FAILED", err.Error())
	case errors.As(err, &upstreamErr):
		respondError(c, http.StatusBadGateway, "UPSTREAM_ERROR", upstreamErr.Error())
	default:
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}
