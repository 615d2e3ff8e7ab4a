package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Lari-oliv/olive-beauty/models"
	awspkg "github.com/Lari-oliv/olive-beauty/pkg/aws"
	"github.com/Lari-oliv/olive-beauty/services"
)

func serviceErr(args mock.Arguments, i int) *services.ServiceError {
	if e := args.Get(i); e != nil {
		return e.(*services.ServiceError)
	}
	return nil
}

type MockAuthService struct{ mock.Mock }

func (m *MockAuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, *services.ServiceError) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.AuthResponse)
	return resp, serviceErr(args, 1)
}

func (m *MockAuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, *services.ServiceError) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.AuthResponse)
	return resp, serviceErr(args, 1)
}

func (m *MockAuthService) Me(ctx context.Context, userID uuid.UUID) (*models.User, *services.ServiceError) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*models.User)
	return user, serviceErr(args, 1)
}

type MockProductService struct{ mock.Mock }

func (m *MockProductService) List(ctx context.Context, filter models.ProductFilter) (*services.ProductListResponse, *services.ServiceError) {
	args := m.Called(ctx, filter)
	resp, _ := args.Get(0).(*services.ProductListResponse)
	return resp, serviceErr(args, 1)
}

func (m *MockProductService) Get(ctx context.Context, id uuid.UUID) (*services.ProductView, *services.ServiceError) {
	args := m.Called(ctx, id)
	view, _ := args.Get(0).(*services.ProductView)
	return view, serviceErr(args, 1)
}

func (m *MockProductService) ResolveVariant(ctx context.Context, productID uuid.UUID, req models.ResolveVariantRequest) (*services.VariantResolution, *services.ServiceError) {
	args := m.Called(ctx, productID, req)
	res, _ := args.Get(0).(*services.VariantResolution)
	return res, serviceErr(args, 1)
}

func (m *MockProductService) Create(ctx context.Context, req models.ProductRequest) (*models.Product, *services.ServiceError) {
	args := m.Called(ctx, req)
	p, _ := args.Get(0).(*models.Product)
	return p, serviceErr(args, 1)
}

func (m *MockProductService) Update(ctx context.Context, id uuid.UUID, req models.ProductRequest) (*models.Product, *services.ServiceError) {
	args := m.Called(ctx, id, req)
	p, _ := args.Get(0).(*models.Product)
	return p, serviceErr(args, 1)
}

func (m *MockProductService) Delete(ctx context.Context, id uuid.UUID) *services.ServiceError {
	return serviceErr(m.Called(ctx, id), 0)
}

func (m *MockProductService) CreateVariant(ctx context.Context, productID uuid.UUID, req models.VariantRequest) (*models.ProductVariant, *services.ServiceError) {
	args := m.Called(ctx, productID, req)
	v, _ := args.Get(0).(*models.ProductVariant)
	return v, serviceErr(args, 1)
}

func (m *MockProductService) UpdateVariant(ctx context.Context, productID, variantID uuid.UUID, req models.VariantRequest) (*models.ProductVariant, *services.ServiceError) {
	args := m.Called(ctx, productID, variantID, req)
	v, _ := args.Get(0).(*models.ProductVariant)
	return v, serviceErr(args, 1)
}

func (m *MockProductService) DeleteVariant(ctx context.Context, productID, variantID uuid.UUID) *services.ServiceError {
	return serviceErr(m.Called(ctx, productID, variantID), 0)
}

func (m *MockProductService) AddImage(ctx context.Context, productID uuid.UUID, req models.ImageRequest) (*models.ProductImage, *services.ServiceError) {
	args := m.Called(ctx, productID, req)
	img, _ := args.Get(0).(*models.ProductImage)
	return img, serviceErr(args, 1)
}

func (m *MockProductService) SetCoverImage(ctx context.Context, productID, imageID uuid.UUID) *services.ServiceError {
	return serviceErr(m.Called(ctx, productID, imageID), 0)
}

func (m *MockProductService) DeleteImage(ctx context.Context, productID, imageID uuid.UUID) *services.ServiceError {
	return serviceErr(m.Called(ctx, productID, imageID), 0)
}

func (m *MockProductService) PresignImageUpload(ctx context.Context, productID uuid.UUID, req models.PresignImageRequest) (*awspkg.PresignedUpload, *services.ServiceError) {
	args := m.Called(ctx, productID, req)
	up, _ := args.Get(0).(*awspkg.PresignedUpload)
	return up, serviceErr(args, 1)
}

type MockCartService struct{ mock.Mock }

func (m *MockCartService) GetCart(ctx context.Context, userID uuid.UUID, pinned *uuid.UUID) (*models.CartView, *services.ServiceError) {
	args := m.Called(ctx, userID, pinned)
	view, _ := args.Get(0).(*models.CartView)
	return view, serviceErr(args, 1)
}

func (m *MockCartService) AddItem(ctx context.Context, userID uuid.UUID, req models.AddCartItemRequest) (*models.CartView, *services.ServiceError) {
	args := m.Called(ctx, userID, req)
	view, _ := args.Get(0).(*models.CartView)
	return view, serviceErr(args, 1)
}

func (m *MockCartService) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*models.CartView, *services.ServiceError) {
	args := m.Called(ctx, userID, itemID, quantity)
	view, _ := args.Get(0).(*models.CartView)
	return view, serviceErr(args, 1)
}

func (m *MockCartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) *services.ServiceError {
	return serviceErr(m.Called(ctx, userID, itemID), 0)
}

func (m *MockCartService) Clear(ctx context.Context, userID uuid.UUID) *services.ServiceError {
	return serviceErr(m.Called(ctx, userID), 0)
}

type MockFavoriteService struct{ mock.Mock }

func (m *MockFavoriteService) List(ctx context.Context, userID uuid.UUID) ([]models.Favorite, *services.ServiceError) {
	args := m.Called(ctx, userID)
	favs, _ := args.Get(0).([]models.Favorite)
	return favs, serviceErr(args, 1)
}

func (m *MockFavoriteService) Add(ctx context.Context, userID, productID uuid.UUID) *services.ServiceError {
	return serviceErr(m.Called(ctx, userID, productID), 0)
}

func (m *MockFavoriteService) Remove(ctx context.Context, userID, productID uuid.UUID) *services.ServiceError {
	return serviceErr(m.Called(ctx, userID, productID), 0)
}

func (m *MockFavoriteService) IsFavorite(ctx context.Context, userID, productID uuid.UUID) (bool, *services.ServiceError) {
	args := m.Called(ctx, userID, productID)
	return args.Bool(0), serviceErr(args, 1)
}

type MockOrderService struct{ mock.Mock }

func (m *MockOrderService) Checkout(ctx context.Context, userID uuid.UUID, req models.CreateOrderRequest) (*models.Order, *services.ServiceError) {
	args := m.Called(ctx, userID, req)
	o, _ := args.Get(0).(*models.Order)
	return o, serviceErr(args, 1)
}

func (m *MockOrderService) ListMine(ctx context.Context, userID uuid.UUID, page, limit int) (*services.OrderListResponse, *services.ServiceError) {
	args := m.Called(ctx, userID, page, limit)
	resp, _ := args.Get(0).(*services.OrderListResponse)
	return resp, serviceErr(args, 1)
}

func (m *MockOrderService) ListAll(ctx context.Context, filter models.OrderFilter) (*services.OrderListResponse, *services.ServiceError) {
	args := m.Called(ctx, filter)
	resp, _ := args.Get(0).(*services.OrderListResponse)
	return resp, serviceErr(args, 1)
}

func (m *MockOrderService) Get(ctx context.Context, userID uuid.UUID, isAdmin bool, id uuid.UUID) (*models.Order, *services.ServiceError) {
	args := m.Called(ctx, userID, isAdmin, id)
	o, _ := args.Get(0).(*models.Order)
	return o, serviceErr(args, 1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, id uuid.UUID, next models.OrderStatus) (*models.Order, *services.ServiceError) {
	args := m.Called(ctx, id, next)
	o, _ := args.Get(0).(*models.Order)
	return o, serviceErr(args, 1)
}

type MockDashboardService struct{ mock.Mock }

func (m *MockDashboardService) Stats(ctx context.Context) (*models.DashboardStats, *services.ServiceError) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(*models.DashboardStats)
	return s, serviceErr(args, 1)
}

func (m *MockDashboardService) TopProducts(ctx context.Context, limit int, by models.TopProductMetric) ([]models.TopProduct, *services.ServiceError) {
	args := m.Called(ctx, limit, by)
	top, _ := args.Get(0).([]models.TopProduct)
	return top, serviceErr(args, 1)
}

func (m *MockDashboardService) RevenueOverTime(ctx context.Context, days int) ([]models.DailyRevenue, *services.ServiceError) {
	args := m.Called(ctx, days)
	s, _ := args.Get(0).([]models.DailyRevenue)
	return s, serviceErr(args, 1)
}

func (m *MockDashboardService) OrdersOverTime(ctx context.Context, days int) ([]models.DailyCount, *services.ServiceError) {
	args := m.Called(ctx, days)
	s, _ := args.Get(0).([]models.DailyCount)
	return s, serviceErr(args, 1)
}

func (m *MockDashboardService) OrdersByStatus(ctx context.Context, days int) ([]models.StatusCount, *services.ServiceError) {
	args := m.Called(ctx, days)
	s, _ := args.Get(0).([]models.StatusCount)
	return s, serviceErr(args, 1)
}

func (m *MockDashboardService) SalesByCategory(ctx context.Context, days int) ([]models.CategorySales, *services.ServiceError) {
	args := m.Called(ctx, days)
	s, _ := args.Get(0).([]models.CategorySales)
	return s, serviceErr(args, 1)
}

func (m *MockDashboardService) Overview(ctx context.Context, days, limit int, by models.TopProductMetric) (*models.DashboardOverview, *services.ServiceError) {
	args := m.Called(ctx, days, limit, by)
	o, _ := args.Get(0).(*models.DashboardOverview)
	return o, serviceErr(args, 1)
}

func (m *MockDashboardService) ExportOrders(ctx context.Context, days int) ([]byte, string, *services.ServiceError) {
	args := m.Called(ctx, days)
	body, _ := args.Get(0).([]byte)
	return body, args.String(1), serviceErr(args, 2)
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

type stubFeed struct{ served int }

func (f *stubFeed) ServeWS(w http.ResponseWriter, _ *http.Request) {
	f.served++
	w.WriteHeader(http.StatusSwitchingProtocols)
}
