package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Lari-oliv/olive-beauty/models"
	"github.com/Lari-oliv/olive-beauty/reports"
	"github.com/Lari-oliv/olive-beauty/repository"
)

const (
	DefaultDashboardDays = 7
	MaxDashboardDays     = 365
	DefaultTopLimit      = 10
	MaxTopLimit          = 100

	dayLayout = "2006-01-02"
)

// DashboardCache stores computed aggregates. A nil cache disables caching.
type DashboardCache interface {
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any)
}

// DashboardService computes admin aggregates over a trailing window of days.
// Calendar days are taken in loc, and every aggregate of one call shares the
// same instant.
type DashboardService struct {
	repo  repository.DashboardRepository
	cache DashboardCache
	loc   *time.Location
	now   func() time.Time
	log   *zap.Logger
}

func NewDashboardService(repo repository.DashboardRepository, cache DashboardCache, loc *time.Location, log *zap.Logger) *DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardService{repo: repo, cache: cache, loc: loc, now: time.Now, log: log}
}

// NormalizeDays falls back to the default for non-positive values and caps
// the window.
func NormalizeDays(days int) int {
	if days <= 0 {
		return DefaultDashboardDays
	}
	if days > MaxDashboardDays {
		return MaxDashboardDays
	}
	return days
}

func NormalizeTopLimit(limit int) int {
	if limit <= 0 {
		return DefaultTopLimit
	}
	if limit > MaxTopLimit {
		return MaxTopLimit
	}
	return limit
}

// ParseTopProductMetric accepts "", "quantity" and "revenue".
func ParseTopProductMetric(raw string) (models.TopProductMetric, *ServiceError) {
	switch models.TopProductMetric(strings.ToLower(strings.TrimSpace(raw))) {
	case "", models.RankByQuantity:
		return models.RankByQuantity, nil
	case models.RankByRevenue:
		return models.RankByRevenue, nil
	}
	return "", validation("by must be quantity or revenue")
}

// window is the closed range [start, now], start being local midnight of
// the first day.
type window struct {
	start time.Time
	now   time.Time
	days  int
	loc   *time.Location
}

func newWindow(now time.Time, days int, loc *time.Location) window {
	local := now.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return window{start: today.AddDate(0, 0, -(days - 1)), now: now, days: days, loc: loc}
}

func (w window) dates() []string {
	out := make([]string, w.days)
	for i := 0; i < w.days; i++ {
		out[i] = w.start.AddDate(0, 0, i).Format(dayLayout)
	}
	return out
}

func (w window) day(t time.Time) string {
	return t.In(w.loc).Format(dayLayout)
}

func (w window) contains(t time.Time) bool {
	return !t.Before(w.start) && !t.After(w.now)
}

func (s *DashboardService) window(days int) window {
	return newWindow(s.now(), NormalizeDays(days), s.loc)
}

func (s *DashboardService) OrdersOverTime(ctx context.Context, days int) ([]models.DailyCount, *ServiceError) {
	w := s.window(days)
	orders, err := s.repo.ListOrdersSince(ctx, w.start)
	if err != nil {
		return nil, storeError(s.log, "dashboard.orders_over_time", err)
	}
	return ordersOverTime(w, orders), nil
}

func (s *DashboardService) RevenueOverTime(ctx context.Context, days int) ([]models.DailyRevenue, *ServiceError) {
	w := s.window(days)
	orders, err := s.repo.ListOrdersSince(ctx, w.start)
	if err != nil {
		return nil, storeError(s.log, "dashboard.revenue_over_time", err)
	}
	return revenueOverTime(w, orders), nil
}

func (s *DashboardService) OrdersByStatus(ctx context.Context, days int) ([]models.StatusCount, *ServiceError) {
	w := s.window(days)
	orders, err := s.repo.ListOrdersSince(ctx, w.start)
	if err != nil {
		return nil, storeError(s.log, "dashboard.orders_by_status", err)
	}
	return ordersByStatus(w, orders), nil
}

func (s *DashboardService) SalesByCategory(ctx context.Context, days int) ([]models.CategorySales, *ServiceError) {
	w := s.window(days)
	lines, err := s.repo.ListCategoryLines(ctx, w.start, w.now)
	if err != nil {
		return nil, storeError(s.log, "dashboard.sales_by_category", err)
	}
	return salesByCategory(lines), nil
}

func (s *DashboardService) TopProducts(ctx context.Context, limit int, by models.TopProductMetric) ([]models.TopProduct, *ServiceError) {
	limit = NormalizeTopLimit(limit)
	rows, err := s.repo.TopProducts(ctx, limit, by)
	if err != nil {
		return nil, storeError(s.log, "dashboard.top_products", err)
	}
	return rankTopProducts(rows, by, limit), nil
}

func (s *DashboardService) Stats(ctx context.Context) (*models.DashboardStats, *ServiceError) {
	row, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, storeError(s.log, "dashboard.stats", err)
	}
	stats := statsFromRow(row)
	return &stats, nil
}

// Overview computes every aggregate against a single instant. Results are
// cached per (days, limit, by) when a cache is configured.
func (s *DashboardService) Overview(ctx context.Context, days, limit int, by models.TopProductMetric) (*models.DashboardOverview, *ServiceError) {
	days = NormalizeDays(days)
	limit = NormalizeTopLimit(limit)
	key := fmt.Sprintf("overview:%d:%d:%s", days, limit, by)

	if s.cache != nil {
		var cached models.DashboardOverview
		if s.cache.Get(ctx, key, &cached) {
			return &cached, nil
		}
	}

	w := newWindow(s.now(), days, s.loc)

	orders, err := s.repo.ListOrdersSince(ctx, w.start)
	if err != nil {
		return nil, storeError(s.log, "dashboard.overview.orders", err)
	}
	lines, err := s.repo.ListCategoryLines(ctx, w.start, w.now)
	if err != nil {
		return nil, storeError(s.log, "dashboard.overview.categories", err)
	}
	top, err := s.repo.TopProducts(ctx, limit, by)
	if err != nil {
		return nil, storeError(s.log, "dashboard.overview.top_products", err)
	}
	row, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, storeError(s.log, "dashboard.overview.stats", err)
	}

	overview := &models.DashboardOverview{
		GeneratedAt:     w.now.UTC(),
		Days:            days,
		Stats:           statsFromRow(row),
		OrdersOverTime:  ordersOverTime(w, orders),
		RevenueOverTime: revenueOverTime(w, orders),
		OrdersByStatus:  ordersByStatus(w, orders),
		SalesByCategory: salesByCategory(lines),
		TopProducts:     rankTopProducts(top, by, limit),
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, overview)
	}
	return overview, nil
}

// ExportOrders renders the window's orders as an XLSX workbook.
func (s *DashboardService) ExportOrders(ctx context.Context, days int) ([]byte, string, *ServiceError) {
	w := s.window(days)

	rows, err := s.repo.ExportRows(ctx, w.start, w.now)
	if err != nil {
		return nil, "", storeError(s.log, "dashboard.export.rows", err)
	}
	orders, err := s.repo.ListOrdersSince(ctx, w.start)
	if err != nil {
		return nil, "", storeError(s.log, "dashboard.export.orders", err)
	}

	body, err := reports.OrdersWorkbook(rows, ordersOverTime(w, orders), revenueOverTime(w, orders), w.loc)
	if err != nil {
		return nil, "", storeError(s.log, "dashboard.export.render", err)
	}

	name := fmt.Sprintf("orders_%s_%s.xlsx", w.start.Format(dayLayout), w.now.In(w.loc).Format(dayLayout))
	return body, name, nil
}

func ordersOverTime(w window, orders []models.OrderSnapshot) []models.DailyCount {
	counts := make(map[string]int64, w.days)
	for _, o := range orders {
		if w.contains(o.CreatedAt) {
			counts[w.day(o.CreatedAt)]++
		}
	}

	out := make([]models.DailyCount, 0, w.days)
	for _, d := range w.dates() {
		out = append(out, models.DailyCount{Date: d, Count: counts[d]})
	}
	return out
}

// revenueOverTime never counts cancelled orders.
func revenueOverTime(w window, orders []models.OrderSnapshot) []models.DailyRevenue {
	sums := make(map[string]decimal.Decimal, w.days)
	for _, o := range orders {
		if o.Status == models.OrderStatusCancelled || !w.contains(o.CreatedAt) {
			continue
		}
		d := w.day(o.CreatedAt)
		sums[d] = sums[d].Add(o.Total)
	}

	out := make([]models.DailyRevenue, 0, w.days)
	for _, d := range w.dates() {
		out = append(out, models.DailyRevenue{Date: d, Revenue: sums[d]})
	}
	return out
}

func ordersByStatus(w window, orders []models.OrderSnapshot) []models.StatusCount {
	counts := make(map[models.OrderStatus]int64, len(models.OrderStatuses))
	for _, o := range orders {
		if w.contains(o.CreatedAt) {
			counts[o.Status]++
		}
	}

	out := make([]models.StatusCount, 0, len(models.OrderStatuses))
	for _, st := range models.OrderStatuses {
		out = append(out, models.StatusCount{Status: st, Count: counts[st]})
	}
	return out
}

// salesByCategory sums line values per category and counts the distinct
// orders touching each category. Every status counts.
func salesByCategory(lines []models.CategoryLine) []models.CategorySales {
	type acc struct {
		ref     models.CategoryRef
		revenue decimal.Decimal
		orders  map[uuid.UUID]struct{}
	}
	byCategory := make(map[uuid.UUID]*acc)

	for _, l := range lines {
		a, ok := byCategory[l.CategoryID]
		if !ok {
			a = &acc{
				ref:     models.CategoryRef{ID: l.CategoryID, Name: l.CategoryName, Description: l.CategoryDescription},
				revenue: decimal.Zero,
				orders:  make(map[uuid.UUID]struct{}),
			}
			byCategory[l.CategoryID] = a
		}
		a.revenue = a.revenue.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
		a.orders[l.OrderID] = struct{}{}
	}

	out := make([]models.CategorySales, 0, len(byCategory))
	for _, a := range byCategory {
		out = append(out, models.CategorySales{Category: a.ref, Revenue: a.revenue, Count: int64(len(a.orders))})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Revenue.Cmp(out[j].Revenue); c != 0 {
			return c > 0
		}
		if out[i].Category.Name != out[j].Category.Name {
			return out[i].Category.Name < out[j].Category.Name
		}
		return out[i].Category.ID.String() < out[j].Category.ID.String()
	})
	return out
}

// rankTopProducts orders by the chosen metric, breaking ties by product id.
func rankTopProducts(rows []models.TopProduct, by models.TopProductMetric, limit int) []models.TopProduct {
	out := append([]models.TopProduct(nil), rows...)
	sort.SliceStable(out, func(i, j int) bool {
		var c int
		if by == models.RankByRevenue {
			c = out[i].Revenue.Cmp(out[j].Revenue)
		} else {
			c = cmpInt64(out[i].Quantity, out[j].Quantity)
		}
		if c != 0 {
			return c > 0
		}
		return out[i].Product.ID.String() < out[j].Product.ID.String()
	})
	if len(out) > limit {
		out = out[:limit]
	}
	if out == nil {
		out = []models.TopProduct{}
	}
	return out
}

func cmpInt64(a, b int64) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	}
	return 0
}

func statsFromRow(row *repository.StatsRow) models.DashboardStats {
	stats := models.DashboardStats{
		TotalOrders:       row.TotalOrders,
		TotalRevenue:      row.TotalRevenue,
		AverageOrderValue: decimal.Zero,
		PendingOrders:     row.PendingOrders,
		TotalProducts:     row.TotalProducts,
		TotalCustomers:    row.TotalCustomers,
		TotalCategories:   row.TotalCategories,
	}
	if row.BillableOrders > 0 {
		stats.AverageOrderValue = row.TotalRevenue.Div(decimal.NewFromInt(row.BillableOrders)).Round(2)
	}
	return stats
}
