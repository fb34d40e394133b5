package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/5ecured/e-commerce/models"
	"github.com/5ecured/e-commerce/repository"
)

// OrderLineInput is one requested product/quantity pair at checkout.
type OrderLineInput struct {
	ProductID primitive.ObjectID `json:"_id" binding:"required"`
	Count     int                `json:"count" binding:"required,min=1"`
}

// CreateOrderRequest is the checkout payload. The transaction reference and
// amount come from the already-captured payment.
type CreateOrderRequest struct {
	Products      []OrderLineInput `json:"products" binding:"required,min=1,dive"`
	TransactionID string           `json:"transaction_id" binding:"required"`
	Amount        float64          `json:"amount" binding:"required"`
}

// OrderUserView is the joined user summary on order listings.
type OrderUserView struct {
	ID      primitive.ObjectID `json:"_id"`
	Name    string             `json:"name"`
	Address string             `json:"address,omitempty"`
}

// OrderDetail is an order with its user reference resolved. The outer User
// shadows the embedded reference id in the JSON payload.
type OrderDetail struct {
	models.Order
	User OrderUserView `json:"user"`
}

// OrderService assembles and persists orders, and exposes the admin order
// views. Order creation runs strictly after payment capture and strictly
// before the stock ledger update; the steps are not one atomic transaction,
// so a crash between them can leave an order without a matching stock
// decrement.
type OrderService interface {
	Create(ctx context.Context, userID primitive.ObjectID, req *CreateOrderRequest) (*models.Order, *ServiceError)
	ListAll(ctx context.Context) ([]OrderDetail, *ServiceError)
	StatusValues() []string
	SetStatus(ctx context.Context, orderID primitive.ObjectID, status string) *ServiceError
	PurchaseHistory(ctx context.Context, userID primitive.ObjectID) ([]OrderDetail, *ServiceError)
}

type orderService struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	users    repository.UserRepository
	ledger   StockLedger
	logger   *zap.Logger
}

func NewOrderService(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	users repository.UserRepository,
	ledger StockLedger,
	logger *zap.Logger,
) OrderService {
	return &orderService{
		orders:   orders,
		products: products,
		users:    users,
		ledger:   ledger,
		logger:   logger,
	}
}

func (s *orderService) Create(ctx context.Context, userID primitive.ObjectID, req *CreateOrderRequest) (*models.Order, *ServiceError) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, errNotFound("User not found")
	}

	items, svcErr := s.snapshotLineItems(ctx, req.Products)
	if svcErr != nil {
		return nil, svcErr
	}

	now := time.Now().UTC()
	order := &models.Order{
		ID:            primitive.NewObjectID(),
		Products:      items,
		TransactionID: req.TransactionID,
		Amount:        req.Amount,
		Status:        models.StatusNotProcessed,
		User:          user.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.orders.Insert(ctx, order); err != nil {
		s.logger.Error("order insert failed", zap.Error(err))
		return nil, errBadRequest("Could not create order")
	}

	if err := s.users.AppendHistory(ctx, user.ID, purchaseRecords(order)); err != nil {
		// The order is already persisted; the missing history entry is an
		// accepted inconsistency, surfaced as an error all the same.
		s.logger.Error("purchase history update failed",
			zap.String("order_id", order.ID.Hex()), zap.Error(err))
		return nil, errBadRequest("Could not update user purchase history")
	}

	lineItems := make([]LineItem, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, LineItem{ProductID: item.Product, Count: item.Count})
	}
	if svcErr := s.ledger.Apply(ctx, lineItems); svcErr != nil {
		return nil, svcErr
	}

	return order, nil
}

// snapshotLineItems resolves each requested product and freezes its name,
// description and price at purchase time.
func (s *orderService) snapshotLineItems(ctx context.Context, lines []OrderLineInput) ([]models.OrderItem, *ServiceError) {
	ids := make([]primitive.ObjectID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}
	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("line item lookup failed", zap.Error(err))
		return nil, errBadRequest("Could not create order")
	}
	byID := make(map[primitive.ObjectID]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		product, ok := byID[line.ProductID]
		if !ok {
			return nil, errNotFound("Product not found")
		}
		items = append(items, models.OrderItem{
			Product:     product.ID,
			Name:        product.Name,
			Description: product.Description,
			Category:    product.Category,
			Price:       product.Price,
			Count:       line.Count,
		})
	}
	return items, nil
}

func purchaseRecords(order *models.Order) []models.PurchaseRecord {
	records := make([]models.PurchaseRecord, 0, len(order.Products))
	for _, item := range order.Products {
		records = append(records, models.PurchaseRecord{
			Product:       item.Product,
			Name:          item.Name,
			Description:   item.Description,
			Category:      item.Category,
			Quantity:      item.Count,
			TransactionID: order.TransactionID,
			Amount:        order.Amount,
		})
	}
	return records
}

func (s *orderService) ListAll(ctx context.Context) ([]OrderDetail, *ServiceError) {
	orders, err := s.orders.FindAll(ctx)
	if err != nil {
		s.logger.Error("order listing failed", zap.Error(err))
		return nil, errBadRequest("Orders not found")
	}
	return s.withUsers(ctx, orders)
}

func (s *orderService) StatusValues() []string {
	return models.OrderStatusValues()
}

func (s *orderService) SetStatus(ctx context.Context, orderID primitive.ObjectID, status string) *ServiceError {
	if !models.IsValidOrderStatus(status) {
		return errBadRequest("Invalid order status")
	}
	matched, err := s.orders.UpdateStatus(ctx, orderID, status)
	if err != nil {
		s.logger.Error("order status update failed", zap.Error(err))
		return errBadRequest("Could not update order status")
	}
	if matched == 0 {
		return errNotFound("Order not found")
	}
	return nil
}

func (s *orderService) PurchaseHistory(ctx context.Context, userID primitive.ObjectID) ([]OrderDetail, *ServiceError) {
	orders, err := s.orders.FindByUser(ctx, userID)
	if err != nil {
		s.logger.Error("purchase history lookup failed", zap.Error(err))
		return nil, errBadRequest("Orders not found")
	}
	return s.withUsers(ctx, orders)
}

// withUsers resolves the user reference of each order to an id/name/address
// summary in one batched lookup.
func (s *orderService) withUsers(ctx context.Context, orders []models.Order) ([]OrderDetail, *ServiceError) {
	seen := map[primitive.ObjectID]bool{}
	ids := []primitive.ObjectID{}
	for _, o := range orders {
		if !seen[o.User] {
			seen[o.User] = true
			ids = append(ids, o.User)
		}
	}

	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("order user resolution failed", zap.Error(err))
		return nil, errBadRequest("Orders not found")
	}
	byID := make(map[primitive.ObjectID]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	details := make([]OrderDetail, 0, len(orders))
	for _, o := range orders {
		u := byID[o.User]
		details = append(details, OrderDetail{
			Order: o,
			User:  OrderUserView{ID: u.ID, Name: u.Name, Address: u.Address},
		})
	}
	return details, nil
}
