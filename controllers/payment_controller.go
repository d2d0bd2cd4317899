package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cloud30/cloud30-sales-api/services"
)

// RecordPaymentRequest represents the request body for recording a manual
// payment against an order
type RecordPaymentRequest struct {
	OrderID       string  `json:"orderId" binding:"required"`
	AmountPaid    float64 `json:"amountPaid" binding:"required,gt=0"`
	PaymentMethod string  `json:"paymentMethod" binding:"required"`
	PayerName     string  `json:"payerName" binding:"required"`
	Reference     string  `json:"reference"`
	Notes         string  `json:"notes"`
}

// RecordPayment handles POST /api/v1/payments - reconciles a payment amount
// against the order total and appends a payment row
func RecordPayment(c *gin.Context) {
	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	ctx := c.Request.Context()
	result, err := paymentService().RecordPayment(ctx, services.RecordPaymentInput{
		OrderID:    req.OrderID,
		AmountPaid: req.AmountPaid,
		Method:     req.PaymentMethod,
		PayerName:  req.PayerName,
		Reference:  req.Reference,
		Notes:      req.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	logActivity(ctx, "Payment "+result.Payment.ID,
		fmt.Sprintf("%.2f against %s by %s (verified=%t)", req.AmountPaid, req.OrderID, req.PayerName, result.Verified))

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    result,
	})
}

// VerifyPaymentRequest represents the request body for the gateway-verified
// payment path
type VerifyPaymentRequest struct {
	Reference string `json:"reference" binding:"required"`
	OrderID   string `json:"orderId"`
}

// VerifyPayment handles POST /api/v1/payments/verify - asks the payment
// gateway for the authoritative transaction state and logs the payment
func VerifyPayment(c *gin.Context) {
	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Payment reference is required",
				"details": err.Error(),
			},
		})
		return
	}

	ctx := c.Request.Context()
	result, err := paymentService().VerifyGatewayPayment(ctx, req.Reference, req.OrderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	logActivity(ctx, "Payment "+result.Payment.ID,
		fmt.Sprintf("gateway verified %s (%.2f via %s)", req.Reference, result.Payment.AmountPaid, result.Payment.Method))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}
