package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/SakshiBishnoi/eCommerce/internal/domain"
)

type OrderRepository struct {
	coll *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{coll: db.Collection("orders")}
}

func (r *OrderRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "user", Value: 1}}},
		{Keys: bson.D{{Key: "products.product", Value: 1}}},
	})
	return err
}

func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	now := time.Now().UTC()
	order.CreatedAt = now
	order.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, order)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	order.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	var order domain.Order
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	return &order, nil
}

func (r *OrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	return r.listByFilter(ctx, bson.M{})
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Order, error) {
	return r.listByFilter(ctx, bson.M{"user": userID})
}

func (r *OrderRepository) listByFilter(ctx context.Context, filter bson.M) ([]domain.Order, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	var orders []domain.Order
	if err := cur.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.OrderStatus) error {
	res, err := r.coll.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *OrderRepository) CountByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"user": userID})
	if err != nil {
		return 0, fmt.Errorf("failed to count user orders: %w", err)
	}
	return n, nil
}

// CountInRange counts orders created in [from, to). Nil bounds are open.
func (r *OrderRepository) CountInRange(ctx context.Context, from, to *time.Time) (int64, error) {
	filter := bson.M{}
	if created := rangeFilter(from, to); created != nil {
		filter["createdAt"] = created
	}
	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return n, nil
}

// SumTotalInRange sums the stored order totals over [from, to). Totals are
// taken as persisted, never recomputed from line items.
func (r *OrderRepository) SumTotalInRange(ctx context.Context, from, to *time.Time) (float64, error) {
	match := bson.M{}
	if created := rangeFilter(from, to); created != nil {
		match["createdAt"] = created
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":     nil,
			"revenue": bson.M{"$sum": "$total"},
		}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to sum order totals: %w", err)
	}
	var out []struct {
		Revenue float64 `bson:"revenue"`
	}
	if err := cur.All(ctx, &out); err != nil {
		return 0, fmt.Errorf("failed to decode revenue sum: %w", err)
	}
	if len(out) == 0 {
		return 0, nil
	}
	return out[0].Revenue, nil
}

// RecentWithUsers returns the most recently created orders with the owning
// user embedded. A deleted account leaves the user field null instead of
// dropping the order.
func (r *OrderRepository) RecentWithUsers(ctx context.Context, limit int) ([]domain.RecentOrder, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "user",
			"foreignField": "_id",
			"as":           "user",
		}}},
		{{Key: "$unwind", Value: bson.M{
			"path":                       "$user",
			"preserveNullAndEmptyArrays": true,
		}}},
		{{Key: "$project", Value: bson.M{
			"products":  1,
			"total":     1,
			"status":    1,
			"createdAt": 1,
			"user": bson.M{"$cond": bson.A{
				bson.M{"$gt": bson.A{"$user", nil}},
				bson.M{
					"_id":   "$user._id",
					"name":  "$user.name",
					"email": "$user.email",
				},
				nil,
			}},
		}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent orders: %w", err)
	}
	var orders []domain.RecentOrder
	if err := cur.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode recent orders: %w", err)
	}
	return orders, nil
}

// SalesByDay groups orders created at or after since into calendar days,
// each day carrying an order count and a revenue sum, ascending by date.
// Days without orders produce no entry.
func (r *OrderRepository) SalesByDay(ctx context.Context, since time.Time) ([]domain.DaySales, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"createdAt": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$dateToString": bson.M{
				"format": "%Y-%m-%d",
				"date":   "$createdAt",
			}},
			"orders":  bson.M{"$sum": 1},
			"revenue": bson.M{"$sum": "$total"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales by day: %w", err)
	}
	var sales []domain.DaySales
	if err := cur.All(ctx, &sales); err != nil {
		return nil, fmt.Errorf("failed to decode sales by day: %w", err)
	}
	return sales, nil
}

// TopProducts ranks products by cumulative ordered quantity across the
// whole order history, descending, with name and price joined in. A
// product deleted from the catalog yields a null join, not an error.
func (r *OrderRepository) TopProducts(ctx context.Context, limit int) ([]domain.TopProduct, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$products"}},
		{{Key: "$group", Value: bson.M{
			"_id":      "$products.product",
			"quantity": bson.M{"$sum": "$products.quantity"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "quantity", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "products",
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "product",
		}}},
		{{Key: "$unwind", Value: bson.M{
			"path":                       "$product",
			"preserveNullAndEmptyArrays": true,
		}}},
		{{Key: "$project", Value: bson.M{
			"quantity": 1,
			"product": bson.M{"$cond": bson.A{
				bson.M{"$gt": bson.A{"$product", nil}},
				bson.M{
					"name":  "$product.name",
					"price": "$product.price",
				},
				nil,
			}},
		}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to query top products: %w", err)
	}
	var top []domain.TopProduct
	if err := cur.All(ctx, &top); err != nil {
		return nil, fmt.Errorf("failed to decode top products: %w", err)
	}
	return top, nil
}
