package controllers

import (
	"context"

	"github.com/google/uuid"

	"github.com/Lari-oliv/olive-beauty/models"
	awspkg "github.com/Lari-oliv/olive-beauty/pkg/aws"
	"github.com/Lari-oliv/olive-beauty/services"
)

// The interfaces below are the service methods each controller calls.

type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, *services.ServiceError)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, *services.ServiceError)
	Me(ctx context.Context, userID uuid.UUID) (*models.User, *services.ServiceError)
}

type CategoryService interface {
	List(ctx context.Context) ([]models.Category, *services.ServiceError)
	Get(ctx context.Context, id uuid.UUID) (*models.Category, *services.ServiceError)
	Create(ctx context.Context, req models.CategoryRequest) (*models.Category, *services.ServiceError)
	Update(ctx context.Context, id uuid.UUID, req models.CategoryRequest) (*models.Category, *services.ServiceError)
	Delete(ctx context.Context, id uuid.UUID) *services.ServiceError
}

type ProductService interface {
	List(ctx context.Context, filter models.ProductFilter) (*services.ProductListResponse, *services.ServiceError)
	Get(ctx context.Context, id uuid.UUID) (*services.ProductView, *services.ServiceError)
	ResolveVariant(ctx context.Context, productID uuid.UUID, req models.ResolveVariantRequest) (*services.VariantResolution, *services.ServiceError)
	Create(ctx context.Context, req models.ProductRequest) (*models.Product, *services.ServiceError)
	Update(ctx context.Context, id uuid.UUID, req models.ProductRequest) (*models.Product, *services.ServiceError)
	Delete(ctx context.Context, id uuid.UUID) *services.ServiceError
	CreateVariant(ctx context.Context, productID uuid.UUID, req models.VariantRequest) (*models.ProductVariant, *services.ServiceError)
	UpdateVariant(ctx context.Context, productID, variantID uuid.UUID, req models.VariantRequest) (*models.ProductVariant, *services.ServiceError)
	DeleteVariant(ctx context.Context, productID, variantID uuid.UUID) *services.ServiceError
	AddImage(ctx context.Context, productID uuid.UUID, req models.ImageRequest) (*models.ProductImage, *services.ServiceError)
	SetCoverImage(ctx context.Context, productID, imageID uuid.UUID) *services.ServiceError
	DeleteImage(ctx context.Context, productID, imageID uuid.UUID) *services.ServiceError
	PresignImageUpload(ctx context.Context, productID uuid.UUID, req models.PresignImageRequest) (*awspkg.PresignedUpload, *services.ServiceError)
}

type CartService interface {
	GetCart(ctx context.Context, userID uuid.UUID, pinned *uuid.UUID) (*models.CartView, *services.ServiceError)
	AddItem(ctx context.Context, userID uuid.UUID, req models.AddCartItemRequest) (*models.CartView, *services.ServiceError)
	UpdateItem(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*models.CartView, *services.ServiceError)
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) *services.ServiceError
	Clear(ctx context.Context, userID uuid.UUID) *services.ServiceError
}

type FavoriteService interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.Favorite, *services.ServiceError)
	Add(ctx context.Context, userID, productID uuid.UUID) *services.ServiceError
	Remove(ctx context.Context, userID, productID uuid.UUID) *services.ServiceError
	IsFavorite(ctx context.Context, userID, productID uuid.UUID) (bool, *services.ServiceError)
}

type OrderService interface {
	Checkout(ctx context.Context, userID uuid.UUID, req models.CreateOrderRequest) (*models.Order, *services.ServiceError)
	ListMine(ctx context.Context, userID uuid.UUID, page, limit int) (*services.OrderListResponse, *services.ServiceError)
	ListAll(ctx context.Context, filter models.OrderFilter) (*services.OrderListResponse, *services.ServiceError)
	Get(ctx context.Context, userID uuid.UUID, isAdmin bool, id uuid.UUID) (*models.Order, *services.ServiceError)
	UpdateStatus(ctx context.Context, id uuid.UUID, next models.OrderStatus) (*models.Order, *services.ServiceError)
}

type DashboardService interface {
	Stats(ctx context.Context) (*models.DashboardStats, *services.ServiceError)
	TopProducts(ctx context.Context, limit int, by models.TopProductMetric) ([]models.TopProduct, *services.ServiceError)
	RevenueOverTime(ctx context.Context, days int) ([]models.DailyRevenue, *services.ServiceError)
	OrdersOverTime(ctx context.Context, days int) ([]models.DailyCount, *services.ServiceError)
	OrdersByStatus(ctx context.Context, days int) ([]models.StatusCount, *services.ServiceError)
	SalesByCategory(ctx context.Context, days int) ([]models.CategorySales, *services.ServiceError)
	Overview(ctx context.Context, days, limit int, by models.TopProductMetric) (*models.DashboardOverview, *services.ServiceError)
	ExportOrders(ctx context.Context, days int) ([]byte, string, *services.ServiceError)
}
