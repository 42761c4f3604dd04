package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace/middleware"
	"marketplace/models"
	"marketplace/services"
)

type CheckoutController struct {
	checkout *services.CheckoutService
}

func NewCheckoutController(checkout *services.CheckoutService) *CheckoutController {
	return &CheckoutController{checkout: checkout}
}

// Intent registers the current cart total with the payment provider
// and returns what the client needs to open the payment widget.
func (ctl *CheckoutController) Intent(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	result, err := ctl.checkout.Intent(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Intent created", "data": result})
}

// Verify handles the provider's confirmation callback.
func (ctl *CheckoutController) Verify(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var body struct {
		ProviderOrderID string `json:"providerOrderId"`
		PaymentID       string `json:"paymentId"`
		Signature       string `json:"signature"`
	}
	if err := c.ShouldBindJSON(&body); err != nil ||
		body.ProviderOrderID == "" || body.PaymentID == "" || body.Signature == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	order, err := ctl.checkout.Confirm(c.Request.Context(), user, services.ConfirmInput{
		ProviderOrderID: body.ProviderOrderID,
		PaymentID:       body.PaymentID,
		Signature:       body.Signature,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "success",
		"order": gin.H{
			"id":     order.ID.Hex(),
			"price":  models.FormatPrice(order.PriceMinor),
			"status": order.Payment.Status,
		},
	})
}
