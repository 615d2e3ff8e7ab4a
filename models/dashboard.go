package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DailyCount is one bucket of the orders-over-time series.
type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// DailyRevenue is one bucket of the revenue-over-time series.
type DailyRevenue struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
}

// StatusCount is the number of orders in one status.
type StatusCount struct {
	Status OrderStatus `json:"status"`
	Count  int64       `json:"count"`
}

// CategoryRef is the category summary embedded in dashboard rows.
type CategoryRef struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

// CategorySales is revenue and distinct order count for one category.
type CategorySales struct {
	Category CategoryRef     `json:"category"`
	Revenue  decimal.Decimal `json:"revenue"`
	Count    int64           `json:"count"`
}

// ProductRef is the product summary embedded in dashboard rows.
type ProductRef struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Brand string    `json:"brand"`
}

// TopProduct is one row of the best-sellers ranking.
type TopProduct struct {
	Product  ProductRef      `json:"product"`
	Quantity int64           `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// TopProductMetric selects how best sellers are ranked.
type TopProductMetric string

const (
	RankByQuantity TopProductMetric = "quantity"
	RankByRevenue  TopProductMetric = "revenue"
)

// DashboardStats are the all-time headline numbers.
type DashboardStats struct {
	TotalOrders       int64           `json:"totalOrders"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
	PendingOrders     int64           `json:"pendingOrders"`
	TotalProducts     int64           `json:"totalProducts"`
	TotalCustomers    int64           `json:"totalCustomers"`
	TotalCategories   int64           `json:"totalCategories"`
}

// DashboardOverview bundles every dashboard aggregate computed at one instant.
type DashboardOverview struct {
	GeneratedAt     time.Time       `json:"generatedAt"`
	Days            int             `json:"days"`
	Stats           DashboardStats  `json:"stats"`
	OrdersOverTime  []DailyCount    `json:"ordersOverTime"`
	RevenueOverTime []DailyRevenue  `json:"revenueOverTime"`
	OrdersByStatus  []StatusCount   `json:"ordersByStatus"`
	SalesByCategory []CategorySales `json:"salesByCategory"`
	TopProducts     []TopProduct    `json:"topProducts"`
}

// OrderSnapshot is the projection of an order used by time-series aggregates.
type OrderSnapshot struct {
	ID        uuid.UUID
	Status    OrderStatus
	Total     decimal.Decimal
	CreatedAt time.Time
}

// CategoryLine is one order item joined with its order and category.
type CategoryLine struct {
	OrderID             uuid.UUID
	OrderStatus         OrderStatus
	CategoryID          uuid.UUID
	CategoryName        string
	CategoryDescription string
	Price               decimal.Decimal
	Quantity            int
}

// OrderExportRow is one order flattened for spreadsheet export.
type OrderExportRow struct {
	ID            uuid.UUID
	CreatedAt     time.Time
	Status        OrderStatus
	CustomerName  string
	CustomerEmail string
	ShippingName  string
	ItemCount     int64
	Total         decimal.Decimal
}
