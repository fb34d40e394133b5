package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/5ecured/e-commerce/middleware"
	"github.com/5ecured/e-commerce/models"
	"github.com/5ecured/e-commerce/services"
)

type fakeOrderService struct {
	createdUser primitive.ObjectID
	createdReq  *services.CreateOrderRequest
	statusID    primitive.ObjectID
	status      string
	err         *services.ServiceError
}

func (f *fakeOrderService) Create(_ context.Context, userID primitive.ObjectID, req *services.CreateOrderRequest) (*models.Order, *services.ServiceError) {
	f.createdUser = userID
	f.createdReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.Order{ID: primitive.NewObjectID(), User: userID, Status: models.StatusNotProcessed}, nil
}

func (f *fakeOrderService) ListAll(_ context.Context) ([]services.OrderDetail, *services.ServiceError) {
	return []services.OrderDetail{}, f.err
}

func (f *fakeOrderService) StatusValues() []string {
	return models.OrderStatusValues()
}

func (f *fakeOrderService) SetStatus(_ context.Context, orderID primitive.ObjectID, status string) *services.ServiceError {
	f.statusID = orderID
	f.status = status
	return f.err
}

func (f *fakeOrderService) PurchaseHistory(_ context.Context, _ primitive.ObjectID) ([]services.OrderDetail, *services.ServiceError) {
	return []services.OrderDetail{}, f.err
}

func newOrderRouter(svc services.OrderService, userID string) *gin.Engine {
	oc := NewOrderController(svc)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set(middleware.UserIDKey, userID)
		}
	})
	r.POST("/order/create", oc.Create)
	r.PUT("/order/status", oc.UpdateStatus)
	r.GET("/order/status-values", oc.StatusValues)
	return r
}

func TestOrderCreateUsesTokenSubject(t *testing.T) {
	svc := &fakeOrderService{}
	userID := primitive.NewObjectID()
	r := newOrderRouter(svc, userID.Hex())

	productID := primitive.NewObjectID()
	body := `{
		"products": [{"_id": "` + productID.Hex() + `", "count": 2}],
		"transaction_id": "txn-9",
		"amount": 50
	}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/order/create", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID, svc.createdUser)
	require.NotNil(t, svc.createdReq)
	require.Len(t, svc.createdReq.Products, 1)
	assert.Equal(t, productID, svc.createdReq.Products[0].ProductID)
	assert.Equal(t, 2, svc.createdReq.Products[0].Count)
	assert.Equal(t, "txn-9", svc.createdReq.TransactionID)
}

func TestOrderCreateMissingTokenSubject(t *testing.T) {
	r := newOrderRouter(&fakeOrderService{}, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/order/create", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOrderCreateRejectsEmptyProducts(t *testing.T) {
	r := newOrderRouter(&fakeOrderService{}, primitive.NewObjectID().Hex())

	body := `{"products": [], "transaction_id": "txn-1", "amount": 10}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/order/create", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderUpdateStatus(t *testing.T) {
	svc := &fakeOrderService{}
	r := newOrderRouter(svc, primitive.NewObjectID().Hex())
	orderID := primitive.NewObjectID()

	body := `{"orderId": "` + orderID.Hex() + `", "status": "Shipped"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/order/status", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, orderID, svc.statusID)
	assert.Equal(t, "Shipped", svc.status)
}

func TestOrderUpdateStatusBadID(t *testing.T) {
	r := newOrderRouter(&fakeOrderService{}, primitive.NewObjectID().Hex())

	body := `{"orderId": "nope", "status": "Shipped"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/order/status", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid order id")
}

func TestOrderStatusValues(t *testing.T) {
	r := newOrderRouter(&fakeOrderService{}, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/order/status-values", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	for _, status := range models.OrderStatusValues() {
		assert.Contains(t, w.Body.String(), status)
	}
}
