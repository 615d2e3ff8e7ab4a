package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Lari-oliv/olive-beauty/models"
)

// ProductRepository defines data-access operations for products, their
// variants and their images.
type ProductRepository interface {
	List(ctx context.Context, filter models.ProductFilter) ([]models.Product, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error

	ListVariants(ctx context.Context, productID uuid.UUID) ([]models.ProductVariant, error)
	FirstVariant(ctx context.Context, productID uuid.UUID) (*models.ProductVariant, error)
	FindVariant(ctx context.Context, productID, variantID uuid.UUID) (*models.ProductVariant, error)
	CreateVariant(ctx context.Context, variant *models.ProductVariant) error
	UpdateVariant(ctx context.Context, variant *models.ProductVariant) error
	DeleteVariant(ctx context.Context, productID, variantID uuid.UUID) error

	AddImage(ctx context.Context, image *models.ProductImage) error
	SetCoverImage(ctx context.Context, productID, imageID uuid.UUID) error
	DeleteImage(ctx context.Context, productID, imageID uuid.UUID) error
}

// GormProductRepository implements ProductRepository using GORM.
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository.
func NewGormProductRepository(db *gorm.DB) ProductRepository {
	return &GormProductRepository{db: db}
}

func variantOrder(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC, id ASC")
}

func imageOrder(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC, created_at ASC")
}

// List returns one page of products matching the filter, newest first.
func (r *GormProductRepository) List(ctx context.Context, filter models.ProductFilter) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Product{})
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + s + "%"
		query = query.Where("name ILIKE ? OR brand ILIKE ?", like, like)
	}
	if filter.InStockOnly {
		query = query.Where("EXISTS (SELECT 1 FROM product_variants pv WHERE pv.product_id = products.id AND pv.stock > 0)")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Category").
		Preload("Variants", variantOrder).
		Preload("Images", imageOrder).
		Offset(offset(filter.Page, filter.Limit)).
		Limit(filter.Limit).
		Order("created_at DESC").
		Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var p models.Product
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Variants", variantOrder).
		Preload("Images", imageOrder).
		First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts the product together with any variants and images set on it.
func (r *GormProductRepository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// Update saves scalar columns only; variants and images have their own calls.
func (r *GormProductRepository) Update(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).
		Model(product).
		Select("name", "description", "base_price", "brand", "category_id").
		Updates(product).Error
}

func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormProductRepository) ListVariants(ctx context.Context, productID uuid.UUID) ([]models.ProductVariant, error) {
	var variants []models.ProductVariant
	if err := variantOrder(r.db.WithContext(ctx)).
		Where("product_id = ?", productID).
		Find(&variants).Error; err != nil {
		return nil, err
	}
	return variants, nil
}

// FirstVariant returns the product's earliest variant.
func (r *GormProductRepository) FirstVariant(ctx context.Context, productID uuid.UUID) (*models.ProductVariant, error) {
	var v models.ProductVariant
	if err := variantOrder(r.db.WithContext(ctx)).
		Where("product_id = ?", productID).
		Limit(1).
		Find(&v).Error; err != nil {
		return nil, err
	}
	if v.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &v, nil
}

func (r *GormProductRepository) FindVariant(ctx context.Context, productID, variantID uuid.UUID) (*models.ProductVariant, error) {
	var v models.ProductVariant
	if err := r.db.WithContext(ctx).
		First(&v, "id = ? AND product_id = ?", variantID, productID).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *GormProductRepository) CreateVariant(ctx context.Context, variant *models.ProductVariant) error {
	return r.db.WithContext(ctx).Create(variant).Error
}

func (r *GormProductRepository) UpdateVariant(ctx context.Context, variant *models.ProductVariant) error {
	return r.db.WithContext(ctx).
		Model(variant).
		Select("attributes", "price", "stock").
		Updates(variant).Error
}

func (r *GormProductRepository) DeleteVariant(ctx context.Context, productID, variantID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND product_id = ?", variantID, productID).
		Delete(&models.ProductVariant{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AddImage inserts an image. A new cover replaces the previous one.
func (r *GormProductRepository) AddImage(ctx context.Context, image *models.ProductImage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if image.IsCover {
			if err := clearCover(tx, image.ProductID); err != nil {
				return err
			}
		}
		return tx.Create(image).Error
	})
}

// SetCoverImage makes imageID the only cover of the product.
func (r *GormProductRepository) SetCoverImage(ctx context.Context, productID, imageID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := clearCover(tx, productID); err != nil {
			return err
		}
		res := tx.Model(&models.ProductImage{}).
			Where("id = ? AND product_id = ?", imageID, productID).
			Update("is_cover", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *GormProductRepository) DeleteImage(ctx context.Context, productID, imageID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND product_id = ?", imageID, productID).
		Delete(&models.ProductImage{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func clearCover(tx *gorm.DB, productID uuid.UUID) error {
	return tx.Model(&models.ProductImage{}).
		Where("product_id = ? AND is_cover = ?", productID, true).
		Update("is_cover", false).Error
}
