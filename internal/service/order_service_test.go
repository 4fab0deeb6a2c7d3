package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/SakshiBishnoi/eCommerce/internal/domain"
	"github.com/SakshiBishnoi/eCommerce/internal/events"
	"github.com/SakshiBishnoi/eCommerce/internal/repository"
)

type fakeOrderStore struct {
	created []domain.Order
	orders  []domain.Order
}

func (f *fakeOrderStore) Create(_ context.Context, order *domain.Order) error {
	order.ID = primitive.NewObjectID()
	f.created = append(f.created, *order)
	return nil
}

func (f *fakeOrderStore) List(context.Context) ([]domain.Order, error) {
	return f.orders, nil
}

func (f *fakeOrderStore) ListByUser(_ context.Context, userID primitive.ObjectID) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range f.orders {
		if o.User == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderStore) UpdateStatus(_ context.Context, id primitive.ObjectID, status domain.OrderStatus) error {
	for i := range f.orders {
		if f.orders[i].ID == id {
			f.orders[i].Status = status
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeCartStore struct {
	cart    *domain.Cart
	cleared bool
}

func (f *fakeCartStore) FindByUser(_ context.Context, userID primitive.ObjectID) (*domain.Cart, error) {
	if f.cart == nil {
		return nil, repository.ErrNotFound
	}
	return f.cart, nil
}

func (f *fakeCartStore) Clear(context.Context, primitive.ObjectID) error {
	f.cleared = true
	return nil
}

type fakePricer struct {
	products map[primitive.ObjectID]domain.Product
}

func (f *fakePricer) FindByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]domain.Product, error) {
	out := make(map[primitive.ObjectID]domain.Product)
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

type fakePublisher struct {
	events []events.OrderCreatedEvent
	err    error
}

func (f *fakePublisher) PublishOrderCreated(event events.OrderCreatedEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

func TestCheckout(t *testing.T) {
	userID := primitive.NewObjectID()
	p1 := domain.Product{ID: primitive.NewObjectID(), Name: "keyboard", Price: 25}
	p2 := domain.Product{ID: primitive.NewObjectID(), Name: "mouse", Price: 10}

	carts := &fakeCartStore{cart: &domain.Cart{
		User: userID,
		Items: []domain.CartItem{
			{Product: p1.ID, Quantity: 2},
			{Product: p2.ID, Quantity: 3},
		},
	}}
	orders := &fakeOrderStore{}
	pricer := &fakePricer{products: map[primitive.ObjectID]domain.Product{p1.ID: p1, p2.ID: p2}}
	publisher := &fakePublisher{}

	s := NewOrderService(orders, carts, pricer, publisher, zap.NewNop())

	order, err := s.Checkout(context.Background(), userID, "req-1")
	require.NoError(t, err)

	assert.Equal(t, float64(2*25+3*10), order.Total)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, userID, order.User)
	require.Len(t, order.Products, 2)
	assert.True(t, carts.cleared, "cart is cleared after checkout")

	require.Len(t, publisher.events, 1)
	assert.Equal(t, order.ID.Hex(), publisher.events[0].OrderID)
	assert.Equal(t, order.Total, publisher.events[0].Total)
	assert.Equal(t, "req-1", publisher.events[0].RequestID)
}

func TestCheckoutEmptyCart(t *testing.T) {
	userID := primitive.NewObjectID()
	s := NewOrderService(&fakeOrderStore{}, &fakeCartStore{cart: &domain.Cart{User: userID}}, &fakePricer{}, &fakePublisher{}, zap.NewNop())

	_, err := s.Checkout(context.Background(), userID, "")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutNoCart(t *testing.T) {
	s := NewOrderService(&fakeOrderStore{}, &fakeCartStore{}, &fakePricer{}, &fakePublisher{}, zap.NewNop())

	_, err := s.Checkout(context.Background(), primitive.NewObjectID(), "")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutMissingProduct(t *testing.T) {
	userID := primitive.NewObjectID()
	carts := &fakeCartStore{cart: &domain.Cart{
		User:  userID,
		Items: []domain.CartItem{{Product: primitive.NewObjectID(), Quantity: 1}},
	}}
	orders := &fakeOrderStore{}
	s := NewOrderService(orders, carts, &fakePricer{}, &fakePublisher{}, zap.NewNop())

	_, err := s.Checkout(context.Background(), userID, "")
	assert.ErrorIs(t, err, ErrProductUnavailable)
	assert.Empty(t, orders.created)
	assert.False(t, carts.cleared)
}

func TestCheckoutSurvivesPublishFailure(t *testing.T) {
	userID := primitive.NewObjectID()
	p := domain.Product{ID: primitive.NewObjectID(), Price: 5}
	carts := &fakeCartStore{cart: &domain.Cart{
		User:  userID,
		Items: []domain.CartItem{{Product: p.ID, Quantity: 1}},
	}}
	pricer := &fakePricer{products: map[primitive.ObjectID]domain.Product{p.ID: p}}
	publisher := &fakePublisher{err: errors.New("broker unavailable")}

	s := NewOrderService(&fakeOrderStore{}, carts, pricer, publisher, zap.NewNop())

	order, err := s.Checkout(context.Background(), userID, "")
	require.NoError(t, err)
	assert.Equal(t, float64(5), order.Total)
}

func TestUpdateStatus(t *testing.T) {
	order := domain.Order{ID: primitive.NewObjectID(), Status: domain.OrderStatusPending}
	orders := &fakeOrderStore{orders: []domain.Order{order}}
	s := NewOrderService(orders, &fakeCartStore{}, &fakePricer{}, &fakePublisher{}, zap.NewNop())

	require.NoError(t, s.UpdateStatus(context.Background(), order.ID, domain.OrderStatusShipped))
	assert.Equal(t, domain.OrderStatusShipped, orders.orders[0].Status)

	// Any stored enum value may be written; no transition constraints.
	require.NoError(t, s.UpdateStatus(context.Background(), order.ID, domain.OrderStatusPending))

	err := s.UpdateStatus(context.Background(), order.ID, domain.OrderStatus("refunded"))
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
