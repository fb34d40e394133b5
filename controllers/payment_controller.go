package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/5ecured/e-commerce/services"
)

// PaymentController fronts the external payment gateway: token generation and
// transaction submission. The captured transaction is what order assembly
// persists.
type PaymentController struct {
	gateway services.PaymentGateway
}

func NewPaymentController(gateway services.PaymentGateway) *PaymentController {
	return &PaymentController{gateway: gateway}
}

// Token handles GET /braintree/token/:userId.
func (pc *PaymentController) Token(c *gin.Context) {
	token, svcErr := pc.gateway.ClientToken(c.Request.Context())
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	c.JSON(http.StatusOK, gin.H{"clientToken": token})
}

type paymentRequest struct {
	PaymentMethodNonce string  `json:"paymentMethodNonce" binding:"required"`
	Amount             float64 `json:"amount" binding:"required,gt=0"`
}

// Payment handles POST /braintree/payment/:userId.
func (pc *PaymentController) Payment(c *gin.Context) {
	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	result, svcErr := pc.gateway.Sale(c.Request.Context(), req.PaymentMethodNonce, req.Amount)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	c.JSON(http.StatusOK, result)
}
