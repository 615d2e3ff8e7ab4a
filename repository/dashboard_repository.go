package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Lari-oliv/olive-beauty/models"
)

// StatsRow holds the raw all-time counters behind models.DashboardStats.
type StatsRow struct {
	TotalOrders     int64
	BillableOrders  int64
	TotalRevenue    decimal.Decimal
	PendingOrders   int64
	TotalProducts   int64
	TotalCustomers  int64
	TotalCategories int64
}

// DashboardRepository reads the projections the dashboard aggregates over.
type DashboardRepository interface {
	ListOrdersSince(ctx context.Context, since time.Time) ([]models.OrderSnapshot, error)
	ListCategoryLines(ctx context.Context, from, to time.Time) ([]models.CategoryLine, error)
	TopProducts(ctx context.Context, limit int, by models.TopProductMetric) ([]models.TopProduct, error)
	Stats(ctx context.Context) (*StatsRow, error)
	ExportRows(ctx context.Context, from, to time.Time) ([]models.OrderExportRow, error)
}

// GormDashboardRepository implements DashboardRepository using GORM.
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewGormDashboardRepository creates a new GormDashboardRepository.
func NewGormDashboardRepository(db *gorm.DB) DashboardRepository {
	return &GormDashboardRepository{db: db}
}

func (r *GormDashboardRepository) ListOrdersSince(ctx context.Context, since time.Time) ([]models.OrderSnapshot, error) {
	var rows []models.OrderSnapshot
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("id, status, total, created_at").
		Where("created_at >= ?", since).
		Order("created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

const categoryLinesSQL = `
SELECT oi.order_id,
       o.status       AS order_status,
       c.id           AS category_id,
       c.name         AS category_name,
       c.description  AS category_description,
       oi.price,
       oi.quantity
FROM order_items oi
JOIN orders o     ON o.id = oi.order_id
JOIN products p   ON p.id = oi.product_id
JOIN categories c ON c.id = p.category_id
WHERE o.created_at >= ? AND o.created_at <= ?`

// ListCategoryLines returns the items of every order created in [from, to],
// whatever its status.
func (r *GormDashboardRepository) ListCategoryLines(ctx context.Context, from, to time.Time) ([]models.CategoryLine, error) {
	var rows []models.CategoryLine
	if err := r.db.WithContext(ctx).Raw(categoryLinesSQL, from, to).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

type topProductRow struct {
	ProductID    uuid.UUID
	ProductName  string
	ProductBrand string
	Quantity     int64
	Revenue      decimal.Decimal
}

const topProductsSQL = `
SELECT p.id    AS product_id,
       p.name  AS product_name,
       p.brand AS product_brand,
       COALESCE(SUM(oi.quantity), 0)            AS quantity,
       COALESCE(SUM(oi.price * oi.quantity), 0) AS revenue
FROM order_items oi
JOIN orders o   ON o.id = oi.order_id
JOIN products p ON p.id = oi.product_id
WHERE o.status <> 'CANCELLED'
GROUP BY p.id, p.name, p.brand
ORDER BY `

// TopProducts ranks products over every non-cancelled order. Ties are broken
// by product id so the ranking is stable.
func (r *GormDashboardRepository) TopProducts(ctx context.Context, limit int, by models.TopProductMetric) ([]models.TopProduct, error) {
	order := "quantity DESC, p.id ASC"
	if by == models.RankByRevenue {
		order = "revenue DESC, p.id ASC"
	}

	var rows []topProductRow
	if err := r.db.WithContext(ctx).
		Raw(topProductsSQL+order+" LIMIT ?", limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]models.TopProduct, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.TopProduct{
			Product:  models.ProductRef{ID: row.ProductID, Name: row.ProductName, Brand: row.ProductBrand},
			Quantity: row.Quantity,
			Revenue:  row.Revenue,
		})
	}
	return out, nil
}

const statsSQL = `
SELECT
  (SELECT COUNT(*) FROM orders)                                          AS total_orders,
  (SELECT COUNT(*) FROM orders WHERE status <> 'CANCELLED')              AS billable_orders,
  (SELECT COALESCE(SUM(total), 0) FROM orders WHERE status <> 'CANCELLED') AS total_revenue,
  (SELECT COUNT(*) FROM orders WHERE status = 'PENDING')                 AS pending_orders,
  (SELECT COUNT(*) FROM products)                                        AS total_products,
  (SELECT COUNT(*) FROM users WHERE role = 'USER')                       AS total_customers,
  (SELECT COUNT(*) FROM categories)                                      AS total_categories`

func (r *GormDashboardRepository) Stats(ctx context.Context) (*StatsRow, error) {
	var row StatsRow
	if err := r.db.WithContext(ctx).Raw(statsSQL).Scan(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

const exportSQL = `
SELECT o.id,
       o.created_at,
       o.status,
       u.name  AS customer_name,
       u.email AS customer_email,
       o.shipping_name,
       COALESCE(SUM(oi.quantity), 0) AS item_count,
       o.total
FROM orders o
JOIN users u ON u.id = o.user_id
LEFT JOIN order_items oi ON oi.order_id = o.id
WHERE o.created_at >= ? AND o.created_at <= ?
GROUP BY o.id, u.name, u.email
ORDER BY o.created_at ASC`

// ExportRows flattens every order created in [from, to].
func (r *GormDashboardRepository) ExportRows(ctx context.Context, from, to time.Time) ([]models.OrderExportRow, error) {
	var rows []models.OrderExportRow
	if err := r.db.WithContext(ctx).Raw(exportSQL, from, to).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
