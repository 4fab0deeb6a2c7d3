package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/SakshiBishnoi/eCommerce/internal/domain"
	"github.com/SakshiBishnoi/eCommerce/internal/events"
	"github.com/SakshiBishnoi/eCommerce/internal/repository"
)

type OrderStore interface {
	Create(ctx context.Context, order *domain.Order) error
	List(ctx context.Context) ([]domain.Order, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.OrderStatus) error
}

type CartStore interface {
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*domain.Cart, error)
	Clear(ctx context.Context, userID primitive.ObjectID) error
}

type ProductPricer interface {
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]domain.Product, error)
}

type OrderService struct {
	orders   OrderStore
	carts    CartStore
	products ProductPricer
	producer events.Publisher
	logger   *zap.Logger
}

func NewOrderService(orders OrderStore, carts CartStore, products ProductPricer, producer events.Publisher, logger *zap.Logger) *OrderService {
	return &OrderService{
		orders:   orders,
		carts:    carts,
		products: products,
		producer: producer,
		logger:   logger,
	}
}

// Checkout snapshots the user's cart into a pending order. The total is
// priced from the catalog once, at creation, and the cart is cleared
// afterwards.
func (s *OrderService) Checkout(ctx context.Context, userID primitive.ObjectID, requestID string) (*domain.Order, error) {
	cart, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEmptyCart
		}
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	ids := make([]primitive.ObjectID, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.Product)
	}
	priced, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	var total float64
	items := make([]domain.OrderItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		product, ok := priced[item.Product]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrProductUnavailable, item.Product.Hex())
		}
		total += product.Price * float64(item.Quantity)
		items = append(items, domain.OrderItem{
			Product:  item.Product,
			Quantity: item.Quantity,
		})
	}

	order := &domain.Order{
		User:     userID,
		Products: items,
		Total:    total,
		Status:   domain.OrderStatusPending,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		s.logger.Error("Failed to save order",
			zap.String("user_id", userID.Hex()),
			zap.Error(err))
		return nil, err
	}

	if err := s.carts.Clear(ctx, userID); err != nil {
		// The order is already placed; a stale cart is recoverable.
		s.logger.Error("Failed to clear cart after checkout",
			zap.String("order_id", order.ID.Hex()),
			zap.Error(err))
	}

	event := events.OrderCreatedEvent{
		EventID:   uuid.New().String(),
		OrderID:   order.ID.Hex(),
		UserID:    userID.Hex(),
		Total:     order.Total,
		Items:     order.Products,
		Status:    string(order.Status),
		Timestamp: time.Now(),
		RequestID: requestID,
	}
	if err := s.producer.PublishOrderCreated(event); err != nil {
		// Publish failure must not fail a placed order.
		s.logger.Error("Failed to publish event",
			zap.String("order_id", order.ID.Hex()),
			zap.Error(err))
	}

	s.logger.Info("Order created successfully",
		zap.String("order_id", order.ID.Hex()),
		zap.String("user_id", userID.Hex()),
		zap.Float64("total", order.Total))

	return order, nil
}

func (s *OrderService) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

func (s *OrderService) ListAll(ctx context.Context) ([]domain.Order, error) {
	return s.orders.List(ctx)
}

// UpdateStatus writes any valid enum value; there is no transition state
// machine.
func (s *OrderService) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.OrderStatus) error {
	if !domain.ValidStatus(status) {
		return ErrInvalidStatus
	}
	return s.orders.UpdateStatus(ctx, id, status)
}
