package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/5ecured/e-commerce/middleware"
	"github.com/5ecured/e-commerce/services"
)

// OrderController handles HTTP requests for order placement and the admin
// order views.
type OrderController struct {
	orders services.OrderService
}

func NewOrderController(orders services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// Create handles POST /order/create. The caller identity comes from the
// session token; payment must already have been captured.
func (oc *OrderController) Create(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.GetString(middleware.UserIDKey))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token subject"})
		return
	}

	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	order, svcErr := oc.orders.Create(c.Request.Context(), userID, &req)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	c.JSON(http.StatusOK, order)
}

// List handles GET /order/list (admin only), newest first.
func (oc *OrderController) List(c *gin.Context) {
	orders, svcErr := oc.orders.ListAll(c.Request.Context())
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// StatusValues handles GET /order/status-values (admin only).
func (oc *OrderController) StatusValues(c *gin.Context) {
	c.JSON(http.StatusOK, oc.orders.StatusValues())
}

type updateStatusRequest struct {
	OrderID string `json:"orderId" binding:"required"`
	Status  string `json:"status" binding:"required"`
}

// UpdateStatus handles PUT /order/status (admin only).
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	orderID, err := primitive.ObjectIDFromHex(req.OrderID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}
	if svcErr := oc.orders.SetStatus(c.Request.Context(), orderID, req.Status); svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order status updated"})
}

// PurchaseHistory handles GET /orders/by/user/:userId (self only).
func (oc *OrderController) PurchaseHistory(c *gin.Context) {
	userID, ok := objectIDParam(c, "userId")
	if !ok {
		return
	}
	orders, svcErr := oc.orders.PurchaseHistory(c.Request.Context(), userID)
	if svcErr != nil {
		c.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	c.JSON(http.StatusOK, orders)
}
