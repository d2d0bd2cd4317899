package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cloud30/cloud30-sales-api/services"
	"github.com/cloud30/cloud30-sales-api/utils"
)

// SendMessageRequest represents the request body for the contact form
type SendMessageRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// SendMessage handles POST /api/v1/messages - forwards a contact-form
// message to the sales inbox
func SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Missing required fields",
				"details": err.Error(),
			},
		})
		return
	}

	if !utils.ValidateEmail(req.Email) {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid email address")
		return
	}

	if err := services.GetMailService().SendContactMessage(c.Request.Context(), req.Name, req.Email, req.Message); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Message received successfully!",
	})
}
