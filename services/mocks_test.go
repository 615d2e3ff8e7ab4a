package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Lari-oliv/olive-beauty/models"
	"github.com/Lari-oliv/olive-beauty/repository"
)

// MockCartRepository is a mock implementation of repository.CartRepository
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *MockCartRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Cart), args.Error(1)
}

func (m *MockCartRepository) ListItems(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error) {
	args := m.Called(ctx, cartID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CartItem), args.Error(1)
}

func (m *MockCartRepository) AddItem(ctx context.Context, cartID, productID, variantID uuid.UUID, quantity int) (*models.CartItem, error) {
	args := m.Called(ctx, cartID, productID, variantID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CartItem), args.Error(1)
}

func (m *MockCartRepository) SetItemQuantity(ctx context.Context, cartID, itemID uuid.UUID, quantity int) (*models.CartItem, error) {
	args := m.Called(ctx, cartID, itemID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CartItem), args.Error(1)
}

func (m *MockCartRepository) RemoveItem(ctx context.Context, cartID, itemID uuid.UUID) error {
	args := m.Called(ctx, cartID, itemID)
	return args.Error(0)
}

func (m *MockCartRepository) Clear(ctx context.Context, cartID uuid.UUID) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of repository.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) List(ctx context.Context, filter models.ProductFilter) ([]models.Product, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) ListVariants(ctx context.Context, productID uuid.UUID) ([]models.ProductVariant, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ProductVariant), args.Error(1)
}

func (m *MockProductRepository) FirstVariant(ctx context.Context, productID uuid.UUID) (*models.ProductVariant, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProductVariant), args.Error(1)
}

func (m *MockProductRepository) FindVariant(ctx context.Context, productID, variantID uuid.UUID) (*models.ProductVariant, error) {
	args := m.Called(ctx, productID, variantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProductVariant), args.Error(1)
}

func (m *MockProductRepository) CreateVariant(ctx context.Context, v *models.ProductVariant) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockProductRepository) UpdateVariant(ctx context.Context, v *models.ProductVariant) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockProductRepository) DeleteVariant(ctx context.Context, productID, variantID uuid.UUID) error {
	args := m.Called(ctx, productID, variantID)
	return args.Error(0)
}

func (m *MockProductRepository) AddImage(ctx context.Context, image *models.ProductImage) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}

func (m *MockProductRepository) SetCoverImage(ctx context.Context, productID, imageID uuid.UUID) error {
	args := m.Called(ctx, productID, imageID)
	return args.Error(0)
}

func (m *MockProductRepository) DeleteImage(ctx context.Context, productID, imageID uuid.UUID) error {
	args := m.Called(ctx, productID, imageID)
	return args.Error(0)
}

// MockCategoryRepository is a mock implementation of repository.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockOrderRepository is a mock implementation of repository.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Checkout(ctx context.Context, userID uuid.UUID, req models.CreateOrderRequest) (*models.Order, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByUserID(ctx context.Context, userID uuid.UUID, page, limit int) ([]models.Order, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter models.OrderFilter) ([]models.Order, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Order), args.Get(1).(int64), args.Error(2)
}

// UpdateStatus runs allow against the status configured as the second return
// value, the way the real repository does inside its transaction.
func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, next models.OrderStatus, allow func(current models.OrderStatus) error) (*models.Order, models.OrderStatus, error) {
	args := m.Called(ctx, id, next)
	previous := args.Get(1).(models.OrderStatus)
	if err := args.Error(2); err != nil {
		return nil, "", err
	}
	if err := allow(previous); err != nil {
		return nil, "", err
	}
	return args.Get(0).(*models.Order), previous, nil
}

// MockUserRepository is a mock implementation of repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Upsert(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockFavoriteRepository is a mock implementation of repository.FavoriteRepository
type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) List(ctx context.Context, userID uuid.UUID) ([]models.Favorite, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Favorite), args.Error(1)
}

func (m *MockFavoriteRepository) Add(ctx context.Context, userID, productID uuid.UUID) error {
	return m.Called(ctx, userID, productID).Error(0)
}

func (m *MockFavoriteRepository) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	return m.Called(ctx, userID, productID).Error(0)
}

func (m *MockFavoriteRepository) Exists(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, productID)
	return args.Bool(0), args.Error(1)
}

// fakeDashboardRepository serves fixed projections.
type fakeDashboardRepository struct {
	orders     []models.OrderSnapshot
	lines      []models.CategoryLine
	top        []models.TopProduct
	stats      repository.StatsRow
	exportRows []models.OrderExportRow
	err        error

	sinceCalls []time.Time
	untilCalls []time.Time
}

func (f *fakeDashboardRepository) ListOrdersSince(_ context.Context, since time.Time) ([]models.OrderSnapshot, error) {
	f.sinceCalls = append(f.sinceCalls, since)
	return f.orders, f.err
}

func (f *fakeDashboardRepository) ListCategoryLines(_ context.Context, from, to time.Time) ([]models.CategoryLine, error) {
	f.sinceCalls = append(f.sinceCalls, from)
	f.untilCalls = append(f.untilCalls, to)
	return f.lines, f.err
}

func (f *fakeDashboardRepository) TopProducts(context.Context, int, models.TopProductMetric) ([]models.TopProduct, error) {
	return f.top, f.err
}

func (f *fakeDashboardRepository) Stats(context.Context) (*repository.StatsRow, error) {
	if f.err != nil {
		return nil, f.err
	}
	row := f.stats
	return &row, nil
}

func (f *fakeDashboardRepository) ExportRows(_ context.Context, from, to time.Time) ([]models.OrderExportRow, error) {
	f.sinceCalls = append(f.sinceCalls, from)
	f.untilCalls = append(f.untilCalls, to)
	return f.exportRows, f.err
}

// recordingSink captures everything OrderEvents fans out.
type recordingSink struct {
	mu          sync.Mutex
	broadcasts  [][]byte
	invalidated int
	published   []map[string]string
	publishErr  error
}

func (r *recordingSink) Broadcast(payload []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.broadcasts = append(r.broadcasts, payload)
}

func (r *recordingSink) Invalidate(context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invalidated++
}

func (r *recordingSink) Publish(_ context.Context, _ string, _ []byte, attrs map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.published = append(r.published, attrs)
	return r.publishErr
}

// memoryCache is an in-process DashboardCache.
type memoryCache struct {
	values map[string]any
	gets   int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: make(map[string]any)}
}

func (c *memoryCache) Get(_ context.Context, key string, dest any) bool {
	c.gets++
	v, ok := c.values[key]
	if !ok {
		return false
	}
	*(dest.(*models.DashboardOverview)) = *(v.(*models.DashboardOverview))
	return true
}

func (c *memoryCache) Set(_ context.Context, key string, value any) {
	c.values[key] = value
}
