package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/SakshiBishnoi/eCommerce/internal/domain"
	"github.com/SakshiBishnoi/eCommerce/internal/repository"
	"github.com/SakshiBishnoi/eCommerce/pkg/middleware"
)

type fakeAccountStore struct {
	byEmail map[string]*domain.User
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{byEmail: make(map[string]*domain.User)}
}

func (f *fakeAccountStore) Create(_ context.Context, user *domain.User) error {
	if _, exists := f.byEmail[user.Email]; exists {
		return repository.ErrDuplicateEmail
	}
	user.ID = primitive.NewObjectID()
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeAccountStore) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func TestRegisterAndLogin(t *testing.T) {
	store := newFakeAccountStore()
	s := NewAuthService(store, "test-secret", time.Hour, zap.NewNop())

	user, err := s.Register(context.Background(), domain.RegisterRequest{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.NotEqual(t, "hunter22", user.Password, "password must be stored hashed")

	token, err := s.Login(context.Background(), domain.LoginRequest{
		Email:    "asha@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	claims := &middleware.Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, "user", claims.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := newFakeAccountStore()
	s := NewAuthService(store, "test-secret", time.Hour, zap.NewNop())

	req := domain.RegisterRequest{Name: "A", Email: "a@example.com", Password: "secret1"}
	_, err := s.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = s.Register(context.Background(), req)
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestLoginWrongPassword(t *testing.T) {
	store := newFakeAccountStore()
	s := NewAuthService(store, "test-secret", time.Hour, zap.NewNop())

	_, err := s.Register(context.Background(), domain.RegisterRequest{
		Name: "A", Email: "a@example.com", Password: "secret1",
	})
	require.NoError(t, err)

	_, err = s.Login(context.Background(), domain.LoginRequest{Email: "a@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Login(context.Background(), domain.LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginBlockedAccount(t *testing.T) {
	store := newFakeAccountStore()
	s := NewAuthService(store, "test-secret", time.Hour, zap.NewNop())

	user, err := s.Register(context.Background(), domain.RegisterRequest{
		Name: "A", Email: "a@example.com", Password: "secret1",
	})
	require.NoError(t, err)
	user.Blocked = true

	_, err = s.Login(context.Background(), domain.LoginRequest{Email: "a@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrAccountBlocked)
}
