package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cloud30/cloud30-sales-api/services"
)

// CreateOrderRequest represents the request body for creating an order
type CreateOrderRequest struct {
	Product      string  `json:"product" binding:"required"`
	Quantity     int     `json:"quantity" binding:"required,gt=0"`
	Price        float64 `json:"price" binding:"required,gt=0"`
	Status       string  `json:"status"`
	CustomerName string  `json:"customerName" binding:"required"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	Address      string  `json:"address"`
}

// CreateOrder handles POST /api/v1/orders - resolves the customer and
// appends a new order to the ledger
func CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
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

	customerID, created, err := customerService().ResolveCustomer(ctx, req.CustomerName, req.Email, req.Phone, req.Address)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	order, err := orderService().CreateOrder(ctx, services.CreateOrderInput{
		CustomerID:   customerID,
		Product:      req.Product,
		Quantity:     req.Quantity,
		UnitPrice:    req.Price,
		Status:       req.Status,
		CustomerName: req.CustomerName,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	logActivity(ctx, "Order "+order.ID,
		fmt.Sprintf("%s x%d for %s (total %.2f)", order.Product, order.Quantity, order.CustomerName, order.Total()))

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"order":            order,
			"customer_id":      customerID,
			"customer_created": created,
		},
	})
}

// GetOrder handles GET /api/v1/orders/:id - reads an order back from the
// ledger
func GetOrder(c *gin.Context) {
	orderID := c.Param("id")
	if orderID == "" {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Order ID is required")
		return
	}

	order, err := orderService().GetOrder(c.Request.Context(), orderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}
