package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/SakshiBishnoi/eCommerce/internal/cache"
	"github.com/SakshiBishnoi/eCommerce/internal/domain"
)

const (
	recentOrderLimit = 5
	topProductLimit  = 5
	trendWindow      = 30 * 24 * time.Hour
)

// OrderStats are the read-only query capabilities the aggregation needs
// from the order collection.
type OrderStats interface {
	CountInRange(ctx context.Context, from, to *time.Time) (int64, error)
	SumTotalInRange(ctx context.Context, from, to *time.Time) (float64, error)
	RecentWithUsers(ctx context.Context, limit int) ([]domain.RecentOrder, error)
	SalesByDay(ctx context.Context, since time.Time) ([]domain.DaySales, error)
	TopProducts(ctx context.Context, limit int) ([]domain.TopProduct, error)
}

type UserStats interface {
	CountInRange(ctx context.Context, from, to *time.Time) (int64, error)
}

type ProductStats interface {
	Count(ctx context.Context) (int64, error)
}

// DashboardService computes the admin summary and fronts it with the
// single-slot cache. The computation itself is a pure function of the
// collection contents and the reference time.
type DashboardService struct {
	orders   OrderStats
	users    UserStats
	products ProductStats
	cache    *cache.SummaryCache
	logger   *zap.Logger
	now      func() time.Time
}

func NewDashboardService(orders OrderStats, users UserStats, products ProductStats, cache *cache.SummaryCache, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		orders:   orders,
		users:    users,
		products: products,
		cache:    cache,
		logger:   logger,
		now:      time.Now,
	}
}

// Summary serves the cached snapshot when it is fresh enough, otherwise
// recomputes and stores it. A failed computation is never cached.
func (s *DashboardService) Summary(ctx context.Context) (*domain.DashboardSummary, error) {
	now := s.now().UTC()

	if summary, ok := s.cache.Get(now); ok {
		return summary, nil
	}

	summary, err := s.compute(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to compute dashboard summary: %w", err)
	}
	s.cache.Put(summary, now)

	s.logger.Info("Dashboard summary recomputed",
		zap.Int64("total_orders", summary.TotalOrders),
		zap.Float64("total_revenue", summary.TotalRevenue))

	return summary, nil
}

// compute runs the headline counts, the month-over-month windows, and the
// three pipeline queries concurrently and assembles the snapshot. The
// headline deltas compare the previous full calendar month with the
// current one; only the sales trend uses a rolling 30-day window.
func (s *DashboardService) compute(ctx context.Context, now time.Time) (*domain.DashboardSummary, error) {
	startOfThisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	startOfLastMonth := startOfThisMonth.AddDate(0, -1, 0)
	start30DaysAgo := now.Add(-trendWindow)

	var (
		totalOrders, thisMonthOrders, lastMonthOrders    int64
		totalRevenue, thisMonthRevenue, lastMonthRevenue float64
		totalUsers, thisMonthUsers, lastMonthUsers       int64
		totalProducts                                    int64
		recentOrders                                     []domain.RecentOrder
		salesByDay                                       []domain.DaySales
		topProducts                                      []domain.TopProduct
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		totalOrders, err = s.orders.CountInRange(ctx, nil, nil)
		return err
	})
	g.Go(func() (err error) {
		thisMonthOrders, err = s.orders.CountInRange(ctx, &startOfThisMonth, nil)
		return err
	})
	g.Go(func() (err error) {
		lastMonthOrders, err = s.orders.CountInRange(ctx, &startOfLastMonth, &startOfThisMonth)
		return err
	})
	g.Go(func() (err error) {
		totalRevenue, err = s.orders.SumTotalInRange(ctx, nil, nil)
		return err
	})
	g.Go(func() (err error) {
		thisMonthRevenue, err = s.orders.SumTotalInRange(ctx, &startOfThisMonth, nil)
		return err
	})
	g.Go(func() (err error) {
		lastMonthRevenue, err = s.orders.SumTotalInRange(ctx, &startOfLastMonth, &startOfThisMonth)
		return err
	})
	g.Go(func() (err error) {
		totalUsers, err = s.users.CountInRange(ctx, nil, nil)
		return err
	})
	g.Go(func() (err error) {
		thisMonthUsers, err = s.users.CountInRange(ctx, &startOfThisMonth, nil)
		return err
	})
	g.Go(func() (err error) {
		lastMonthUsers, err = s.users.CountInRange(ctx, &startOfLastMonth, &startOfThisMonth)
		return err
	})
	g.Go(func() (err error) {
		totalProducts, err = s.products.Count(ctx)
		return err
	})
	g.Go(func() (err error) {
		recentOrders, err = s.orders.RecentWithUsers(ctx, recentOrderLimit)
		return err
	})
	g.Go(func() (err error) {
		salesByDay, err = s.orders.SalesByDay(ctx, start30DaysAgo)
		return err
	})
	g.Go(func() (err error) {
		topProducts, err = s.orders.TopProducts(ctx, topProductLimit)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if recentOrders == nil {
		recentOrders = []domain.RecentOrder{}
	}
	if salesByDay == nil {
		salesByDay = []domain.DaySales{}
	}
	if topProducts == nil {
		topProducts = []domain.TopProduct{}
	}

	return &domain.DashboardSummary{
		TotalOrders:   totalOrders,
		TotalUsers:    totalUsers,
		TotalRevenue:  totalRevenue,
		TotalProducts: totalProducts,
		OrdersChange:  percentChange(float64(thisMonthOrders), float64(lastMonthOrders)),
		UsersChange:   percentChange(float64(thisMonthUsers), float64(lastMonthUsers)),
		RevenueChange: percentChange(thisMonthRevenue, lastMonthRevenue),
		// Monthly product counts are not tracked, so no delta is reported.
		ProductsChange: 0,
		RecentOrders:   recentOrders,
		SalesByDay:     salesByDay,
		TopProducts:    topProducts,
	}, nil
}

// percentChange returns the rounded month-over-month delta in percent.
// A zero prev short-circuits to 0; a fractional prev is floored to 1
// before dividing.
func percentChange(curr, prev float64) float64 {
	if prev == 0 {
		return 0
	}
	return math.Round((curr - prev) / math.Max(prev, 1) * 100)
}
