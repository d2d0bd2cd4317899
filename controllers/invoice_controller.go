package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GenerateInvoiceRequest represents the request body for generating an
// invoice
type GenerateInvoiceRequest struct {
	OrderID string `json:"orderId" binding:"required"`
}

// GenerateInvoice handles POST /api/v1/invoices - renders, stores, logs and
// emails an invoice for an order. A failed email after the document is
// stored and logged still counts as a generated invoice; the response says
// so instead of reporting the whole run as failed.
func GenerateInvoice(c *gin.Context) {
	var req GenerateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Missing required field: orderId",
				"details": err.Error(),
			},
		})
		return
	}

	ctx := c.Request.Context()
	result, err := invoiceService().GenerateInvoice(ctx, req.OrderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	logActivity(ctx, "Invoice "+result.Invoice.ID,
		fmt.Sprintf("order %s total %.2f email_sent=%t", req.OrderID, result.Invoice.Total, result.EmailSent))

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    result,
	})
}

// GetInvoiceLink handles GET /api/v1/invoices/:id/link - produces a
// time-limited download link for a logged invoice document
func GetInvoiceLink(c *gin.Context) {
	invoiceID := c.Param("id")
	if invoiceID == "" {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invoice ID is required")
		return
	}

	url, err := invoiceService().PresignInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"invoice_id": invoiceID,
			"url":        url,
		},
	})
}
