package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/SakshiBishnoi/eCommerce/internal/domain"
	"github.com/SakshiBishnoi/eCommerce/internal/repository"
)

// UserService backs the profile endpoint and the admin user management
// screens.
type UserService struct {
	users  *repository.UserRepository
	orders *repository.OrderRepository
}

func NewUserService(users *repository.UserRepository, orders *repository.OrderRepository) *UserService {
	return &UserService{users: users, orders: orders}
}

func (s *UserService) Get(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// ListWithOrderCounts returns every account together with how many orders
// it has placed.
func (s *UserService) ListWithOrderCounts(ctx context.Context) ([]domain.UserWithOrderCount, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.UserWithOrderCount, 0, len(users))
	for _, user := range users {
		count, err := s.orders.CountByUser(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, domain.UserWithOrderCount{User: user, OrderCount: count})
	}
	return result, nil
}

// GetWithOrders returns the account and its order history, newest first.
func (s *UserService) GetWithOrders(ctx context.Context, id primitive.ObjectID) (*domain.User, []domain.Order, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	orders, err := s.orders.ListByUser(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return user, orders, nil
}

func (s *UserService) Update(ctx context.Context, id primitive.ObjectID, req domain.UpdateUserRequest) (*domain.User, error) {
	update := bson.M{}
	if req.Name != "" {
		update["name"] = req.Name
	}
	if req.Email != "" {
		update["email"] = req.Email
	}
	if req.Role != "" {
		update["role"] = req.Role
	}
	if len(update) > 0 {
		if err := s.users.Update(ctx, id, update); err != nil {
			return nil, err
		}
	}
	return s.users.FindByID(ctx, id)
}

func (s *UserService) Block(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	if err := s.users.Update(ctx, id, bson.M{"blocked": true}); err != nil {
		return nil, err
	}
	return s.users.FindByID(ctx, id)
}

func (s *UserService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.users.Delete(ctx, id)
}
