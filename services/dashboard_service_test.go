package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Lari-oliv/olive-beauty/models"
	"github.com/Lari-oliv/olive-beauty/repository"
)

var fixedNow = time.Date(2024, 5, 10, 15, 0, 0, 0, time.UTC)

func newDashboardServiceForTest(repo *fakeDashboardRepository, cache DashboardCache, loc *time.Location) *DashboardService {
	svc := NewDashboardService(repo, cache, loc, zap.NewNop())
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestDashboardService_OrdersOverTime_ZeroFilled(t *testing.T) {
	repo := &fakeDashboardRepository{orders: []models.OrderSnapshot{
		{Status: models.OrderStatusPending, CreatedAt: time.Date(2024, 5, 8, 9, 0, 0, 0, time.UTC)},
		{Status: models.OrderStatusSent, CreatedAt: time.Date(2024, 5, 8, 22, 0, 0, 0, time.UTC)},
		{Status: models.OrderStatusCancelled, CreatedAt: time.Date(2024, 5, 10, 1, 0, 0, 0, time.UTC)},
	}}
	svc := newDashboardServiceForTest(repo, nil, time.UTC)

	series, serr := svc.OrdersOverTime(context.Background(), 7)

	require.Nil(t, serr)
	require.Len(t, series, 7)
	assert.Equal(t, "2024-05-04", series[0].Date)
	assert.Equal(t, "2024-05-10", series[6].Date)
	assert.Equal(t, int64(2), series[4].Count)
	assert.Equal(t, int64(1), series[6].Count, "cancelled orders still count as placed")
	assert.Equal(t, int64(0), series[5].Count)
	assert.Equal(t, time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC), repo.sinceCalls[0])
}

func TestDashboardService_RevenueExcludesCancelled(t *testing.T) {
	day := time.Date(2024, 5, 9, 12, 0, 0, 0, time.UTC)
	repo := &fakeDashboardRepository{orders: []models.OrderSnapshot{
		{Status: models.OrderStatusDelivered, Total: dec("100"), CreatedAt: day},
		{Status: models.OrderStatusCancelled, Total: dec("50"), CreatedAt: day},
	}}
	svc := newDashboardServiceForTest(repo, nil, time.UTC)

	series, serr := svc.RevenueOverTime(context.Background(), 2)

	require.Nil(t, serr)
	require.Len(t, series, 2)
	assert.Equal(t, "2024-05-09", series[0].Date)
	assert.True(t, dec("100").Equal(series[0].Revenue), "got %s", series[0].Revenue)
	assert.True(t, series[1].Revenue.IsZero())
}

func TestDashboardService_DaysUseConfiguredTimezone(t *testing.T) {
	saoPaulo := time.FixedZone("BRT", -3*60*60)
	// 01:30 UTC on the 10th is still the 9th in UTC-3.
	repo := &fakeDashboardRepository{orders: []models.OrderSnapshot{
		{Status: models.OrderStatusPending, CreatedAt: time.Date(2024, 5, 10, 1, 30, 0, 0, time.UTC)},
	}}
	svc := newDashboardServiceForTest(repo, nil, saoPaulo)

	series, serr := svc.OrdersOverTime(context.Background(), 2)

	require.Nil(t, serr)
	assert.Equal(t, "2024-05-09", series[0].Date)
	assert.Equal(t, int64(1), series[0].Count)
	assert.Equal(t, int64(0), series[1].Count)
}

func TestDashboardService_OrdersByStatus_ListsEveryStatus(t *testing.T) {
	repo := &fakeDashboardRepository{orders: []models.OrderSnapshot{
		{Status: models.OrderStatusSent, CreatedAt: fixedNow.Add(-time.Hour)},
		{Status: models.OrderStatusSent, CreatedAt: fixedNow.Add(-2 * time.Hour)},
	}}
	svc := newDashboardServiceForTest(repo, nil, time.UTC)

	counts, serr := svc.OrdersByStatus(context.Background(), 0)

	require.Nil(t, serr)
	require.Len(t, counts, len(models.OrderStatuses))
	for i, st := range models.OrderStatuses {
		assert.Equal(t, st, counts[i].Status)
		if st == models.OrderStatusSent {
			assert.Equal(t, int64(2), counts[i].Count)
		} else {
			assert.Zero(t, counts[i].Count)
		}
	}
}

func TestDashboardService_SalesByCategory(t *testing.T) {
	skin, hair, nails := uuid.New(), uuid.New(), uuid.New()
	o1, o2, o3 := uuid.New(), uuid.New(), uuid.New()
	repo := &fakeDashboardRepository{lines: []models.CategoryLine{
		{OrderID: o1, OrderStatus: models.OrderStatusPending, CategoryID: skin, CategoryName: "Skin", Price: dec("10"), Quantity: 2},
		{OrderID: o1, OrderStatus: models.OrderStatusPending, CategoryID: skin, CategoryName: "Skin", Price: dec("5"), Quantity: 1},
		{OrderID: o2, OrderStatus: models.OrderStatusSent, CategoryID: hair, CategoryName: "Hair", Price: dec("30"), Quantity: 1},
		{OrderID: o2, OrderStatus: models.OrderStatusSent, CategoryID: skin, CategoryName: "Skin", Price: dec("5"), Quantity: 1},
		{OrderID: o3, OrderStatus: models.OrderStatusCancelled, CategoryID: nails, CategoryName: "Nails", Price: dec("12"), Quantity: 1},
	}}
	svc := newDashboardServiceForTest(repo, nil, time.UTC)

	sales, serr := svc.SalesByCategory(context.Background(), 30)

	require.Nil(t, serr)
	require.Len(t, sales, 3)
	assert.Equal(t, "Hair", sales[0].Category.Name)
	assert.Equal(t, "Skin", sales[1].Category.Name)
	assert.Equal(t, "Nails", sales[2].Category.Name, "cancelled orders still count toward category sales")
	assert.True(t, dec("30").Equal(sales[0].Revenue))
	assert.True(t, dec("30").Equal(sales[1].Revenue))
	assert.True(t, dec("12").Equal(sales[2].Revenue))
	assert.Equal(t, int64(2), sales[1].Count, "count is distinct orders")
	assert.Equal(t, []time.Time{fixedNow}, repo.untilCalls)
}

func TestDashboardService_SalesByCategory_CountsCancelledOrders(t *testing.T) {
	skin := uuid.New()
	repo := &fakeDashboardRepository{lines: []models.CategoryLine{
		{OrderID: uuid.New(), OrderStatus: models.OrderStatusDelivered, CategoryID: skin, CategoryName: "Skin", Price: dec("10"), Quantity: 1},
		{OrderID: uuid.New(), OrderStatus: models.OrderStatusCancelled, CategoryID: skin, CategoryName: "Skin", Price: dec("50"), Quantity: 1},
	}}
	svc := newDashboardServiceForTest(repo, nil, time.UTC)

	sales, serr := svc.SalesByCategory(context.Background(), 7)

	require.Nil(t, serr)
	require.Len(t, sales, 1)
	assert.True(t, dec("60").Equal(sales[0].Revenue))
	assert.Equal(t, int64(2), sales[0].Count)
}

func TestDashboardService_TopProducts(t *testing.T) {
	a := models.ProductRef{ID: uuid.MustParse("00000000-0000-0000-0000-00000000000a"), Name: "A"}
	b := models.ProductRef{ID: uuid.MustParse("00000000-0000-0000-0000-00000000000b"), Name: "B"}
	c := models.ProductRef{ID: uuid.MustParse("00000000-0000-0000-0000-00000000000c"), Name: "C"}
	repo := &fakeDashboardRepository{top: []models.TopProduct{
		{Product: b, Quantity: 5, Revenue: dec("50")},
		{Product: c, Quantity: 9, Revenue: dec("10")},
		{Product: a, Quantity: 5, Revenue: dec("80")},
	}}
	svc := newDashboardServiceForTest(repo, nil, time.UTC)

	byQty, serr := svc.TopProducts(context.Background(), 10, models.RankByQuantity)
	require.Nil(t, serr)
	require.Len(t, byQty, 3)
	assert.Equal(t, []string{"C", "A", "B"}, []string{byQty[0].Product.Name, byQty[1].Product.Name, byQty[2].Product.Name})

	byRevenue, serr := svc.TopProducts(context.Background(), 2, models.RankByRevenue)
	require.Nil(t, serr)
	require.Len(t, byRevenue, 2)
	assert.Equal(t, "A", byRevenue[0].Product.Name)
}

func TestParseTopProductMetric(t *testing.T) {
	by, serr := ParseTopProductMetric("")
	require.Nil(t, serr)
	assert.Equal(t, models.RankByQuantity, by)

	by, serr = ParseTopProductMetric("Revenue")
	require.Nil(t, serr)
	assert.Equal(t, models.RankByRevenue, by)

	_, serr = ParseTopProductMetric("profit")
	require.NotNil(t, serr)
	assert.Equal(t, KindValidation, serr.Kind)
}

func TestDashboardService_Stats_AverageOrderValue(t *testing.T) {
	repo := &fakeDashboardRepository{stats: repository.StatsRow{
		TotalOrders:    4,
		BillableOrders: 3,
		TotalRevenue:   dec("100"),
	}}
	svc := newDashboardServiceForTest(repo, nil, time.UTC)

	stats, serr := svc.Stats(context.Background())

	require.Nil(t, serr)
	assert.Equal(t, int64(4), stats.TotalOrders)
	assert.Equal(t, "33.33", stats.AverageOrderValue.StringFixed(2))

	repo.stats = repository.StatsRow{}
	stats, serr = svc.Stats(context.Background())
	require.Nil(t, serr)
	assert.True(t, stats.AverageOrderValue.IsZero())
}

func TestDashboardService_Overview_SingleInstantAndCache(t *testing.T) {
	repo := &fakeDashboardRepository{orders: []models.OrderSnapshot{
		{Status: models.OrderStatusPending, Total: dec("20"), CreatedAt: fixedNow.Add(-time.Hour)},
	}}
	cache := newMemoryCache()
	svc := newDashboardServiceForTest(repo, cache, time.UTC)

	calls := 0
	svc.now = func() time.Time {
		calls++
		return fixedNow
	}

	first, serr := svc.Overview(context.Background(), 3, 5, models.RankByQuantity)
	require.Nil(t, serr)
	assert.Equal(t, 1, calls)
	assert.Equal(t, fixedNow, first.GeneratedAt)
	assert.Len(t, first.OrdersOverTime, 3)
	assert.Len(t, first.RevenueOverTime, 3)
	for _, since := range repo.sinceCalls {
		assert.Equal(t, repo.sinceCalls[0], since)
	}
	assert.Equal(t, []time.Time{fixedNow}, repo.untilCalls, "category lines are bounded by the same instant")

	repo.err = errors.New("should not be queried")
	second, serr := svc.Overview(context.Background(), 3, 5, models.RankByQuantity)
	require.Nil(t, serr)
	assert.Equal(t, first.GeneratedAt, second.GeneratedAt)
}

func TestDashboardService_StoreFailure(t *testing.T) {
	svc := newDashboardServiceForTest(&fakeDashboardRepository{err: errors.New("boom")}, nil, time.UTC)

	_, serr := svc.OrdersOverTime(context.Background(), 7)

	require.NotNil(t, serr)
	assert.Equal(t, KindStore, serr.Kind)
	assert.Equal(t, "internal error", serr.Message)
}

func TestDashboardService_ExportOrders(t *testing.T) {
	repo := &fakeDashboardRepository{exportRows: []models.OrderExportRow{
		{ID: uuid.New(), CreatedAt: fixedNow, Status: models.OrderStatusPending, Total: dec("10")},
	}}
	svc := newDashboardServiceForTest(repo, nil, time.UTC)

	body, name, serr := svc.ExportOrders(context.Background(), 7)

	require.Nil(t, serr)
	assert.NotEmpty(t, body)
	assert.Equal(t, "orders_2024-05-04_2024-05-10.xlsx", name)
}

func TestNormalizeDays(t *testing.T) {
	assert.Equal(t, DefaultDashboardDays, NormalizeDays(0))
	assert.Equal(t, DefaultDashboardDays, NormalizeDays(-1))
	assert.Equal(t, 30, NormalizeDays(30))
	assert.Equal(t, MaxDashboardDays, NormalizeDays(10000))
	assert.Equal(t, DefaultTopLimit, NormalizeTopLimit(0))
	assert.Equal(t, MaxTopLimit, NormalizeTopLimit(500))
}
