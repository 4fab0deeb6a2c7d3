package service

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/SakshiBishnoi/eCommerce/internal/domain"
	"github.com/SakshiBishnoi/eCommerce/internal/repository"
)

type CartRepository interface {
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*domain.Cart, error)
	SetItems(ctx context.Context, userID primitive.ObjectID, items []domain.CartItem) (*domain.Cart, error)
	Clear(ctx context.Context, userID primitive.ObjectID) error
}

type CartService struct {
	carts CartRepository
}

func NewCartService(carts CartRepository) *CartService {
	return &CartService{carts: carts}
}

// Get returns the user's cart, creating an empty one on first access.
func (s *CartService) Get(ctx context.Context, userID primitive.ObjectID) (*domain.Cart, error) {
	cart, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return s.carts.SetItems(ctx, userID, nil)
		}
		return nil, err
	}
	return cart, nil
}

// Set replaces the cart contents with the requested items.
func (s *CartService) Set(ctx context.Context, userID primitive.ObjectID, req domain.SetCartRequest) (*domain.Cart, error) {
	items := make([]domain.CartItem, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := primitive.ObjectIDFromHex(item.Product)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidID, item.Product)
		}
		items = append(items, domain.CartItem{
			Product:  productID,
			Quantity: item.Quantity,
		})
	}
	return s.carts.SetItems(ctx, userID, items)
}

func (s *CartService) Clear(ctx context.Context, userID primitive.ObjectID) error {
	return s.carts.Clear(ctx, userID)
}
