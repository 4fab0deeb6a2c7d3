package service

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/SakshiBishnoi/eCommerce/internal/domain"
	"github.com/SakshiBishnoi/eCommerce/internal/repository"
)

// CatalogService wraps product and category CRUD. No aggregation happens
// here; the dashboard reads the same collections through its own queries.
type CatalogService struct {
	products   *repository.ProductRepository
	categories *repository.CategoryRepository
}

func NewCatalogService(products *repository.ProductRepository, categories *repository.CategoryRepository) *CatalogService {
	return &CatalogService{products: products, categories: categories}
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.products.List(ctx)
}

func (s *CatalogService) GetProduct(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	return s.products.FindByID(ctx, id)
}

func (s *CatalogService) CreateProduct(ctx context.Context, req domain.CreateProductRequest) (*domain.Product, error) {
	categoryID, err := primitive.ObjectIDFromHex(req.Category)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidID, req.Category)
	}

	product := &domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    categoryID,
		Stock:       req.Stock,
		Images:      req.Images,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id primitive.ObjectID, req domain.CreateProductRequest) (*domain.Product, error) {
	categoryID, err := primitive.ObjectIDFromHex(req.Category)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidID, req.Category)
	}

	update := bson.M{
		"name":        req.Name,
		"description": req.Description,
		"price":       req.Price,
		"category":    categoryID,
		"stock":       req.Stock,
		"images":      req.Images,
	}
	if err := s.products.Update(ctx, id, update); err != nil {
		return nil, err
	}
	return s.products.FindByID(ctx, id)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	return s.products.Delete(ctx, id)
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

func (s *CatalogService) CreateCategory(ctx context.Context, req domain.CreateCategoryRequest) (*domain.Category, error) {
	category := &domain.Category{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}
