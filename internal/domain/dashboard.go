package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DashboardSummary is the derived snapshot served by the admin dashboard.
// It is never persisted; the only live copy is the one held by the summary
// cache slot.
type DashboardSummary struct {
	TotalOrders   int64   `json:"totalOrders"`
	TotalUsers    int64   `json:"totalUsers"`
	TotalRevenue  float64 `json:"totalRevenue"`
	TotalProducts int64   `json:"totalProducts"`

	// Percentage deltas, previous full calendar month vs. the current one.
	// ProductsChange is always 0: monthly product counts are not tracked.
	OrdersChange   float64 `json:"ordersChange"`
	UsersChange    float64 `json:"usersChange"`
	RevenueChange  float64 `json:"revenueChange"`
	ProductsChange float64 `json:"productsChange"`

	RecentOrders []RecentOrder `json:"recentOrders"`
	SalesByDay   []DaySales    `json:"salesByDay"`
	TopProducts  []TopProduct  `json:"topProducts"`
}

// RecentOrder is an order with its owning user embedded in place of the
// raw reference. User is nil when the account no longer exists.
type RecentOrder struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	User      *OrderUser         `bson:"user" json:"user"`
	Products  []OrderItem        `bson:"products" json:"products"`
	Total     float64            `bson:"total" json:"total"`
	Status    OrderStatus        `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type OrderUser struct {
	ID    primitive.ObjectID `bson:"_id" json:"id"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email" json:"email"`
}

// DaySales is one calendar day of the trailing-30-day trend.
type DaySales struct {
	Date    string  `bson:"_id" json:"date"`
	Orders  int64   `bson:"orders" json:"orders"`
	Revenue float64 `bson:"revenue" json:"revenue"`
}

// TopProduct ranks a product by cumulative ordered quantity across all
// orders. Product is nil when the catalog entry has been deleted.
type TopProduct struct {
	ProductID primitive.ObjectID `bson:"_id" json:"productId"`
	Quantity  int64              `bson:"quantity" json:"quantity"`
	Product   *ProductSummary    `bson:"product" json:"product"`
}

type ProductSummary struct {
	Name  string  `bson:"name" json:"name"`
	Price float64 `bson:"price" json:"price"`
}
