package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/SakshiBishnoi/eCommerce/internal/domain"
	"github.com/SakshiBishnoi/eCommerce/internal/repository"
)

type fakeCartRepo struct {
	cart *domain.Cart
}

func (f *fakeCartRepo) FindByUser(_ context.Context, userID primitive.ObjectID) (*domain.Cart, error) {
	if f.cart == nil {
		return nil, repository.ErrNotFound
	}
	return f.cart, nil
}

func (f *fakeCartRepo) SetItems(_ context.Context, userID primitive.ObjectID, items []domain.CartItem) (*domain.Cart, error) {
	if items == nil {
		items = []domain.CartItem{}
	}
	f.cart = &domain.Cart{User: userID, Items: items}
	return f.cart, nil
}

func (f *fakeCartRepo) Clear(ctx context.Context, userID primitive.ObjectID) error {
	_, err := f.SetItems(ctx, userID, nil)
	return err
}

func TestCartGetCreatesEmptyCart(t *testing.T) {
	repo := &fakeCartRepo{}
	s := NewCartService(repo)

	cart, err := s.Get(context.Background(), primitive.NewObjectID())
	require.NoError(t, err)
	assert.NotNil(t, cart.Items)
	assert.Empty(t, cart.Items)
}

func TestCartSet(t *testing.T) {
	repo := &fakeCartRepo{}
	s := NewCartService(repo)
	productID := primitive.NewObjectID()

	cart, err := s.Set(context.Background(), primitive.NewObjectID(), domain.SetCartRequest{
		Items: []domain.SetCartItem{{Product: productID.Hex(), Quantity: 2}},
	})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, productID, cart.Items[0].Product)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestCartSetInvalidProductID(t *testing.T) {
	s := NewCartService(&fakeCartRepo{})

	_, err := s.Set(context.Background(), primitive.NewObjectID(), domain.SetCartRequest{
		Items: []domain.SetCartItem{{Product: "not-an-id", Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrInvalidID)
}
