package services

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Lari-oliv/olive-beauty/models"
	awspkg "github.com/Lari-oliv/olive-beauty/pkg/aws"
	"github.com/Lari-oliv/olive-beauty/repository"
	"github.com/Lari-oliv/olive-beauty/variant"
)

const presignExpiry = 15 * time.Minute

// ProductView is a product as served to the storefront.
type ProductView struct {
	*models.Product
	CoverImage *models.ProductImage  `json:"coverImage"`
	TotalStock int                   `json:"totalStock"`
	Selected   models.Attributes     `json:"selected,omitempty"`
	Options    []variant.OptionGroup `json:"options,omitempty"`
}

func newProductView(p *models.Product) *ProductView {
	return &ProductView{Product: p, CoverImage: p.CoverImage(), TotalStock: p.TotalStock()}
}

// ProductListResponse is one page of products.
type ProductListResponse struct {
	Products []*ProductView `json:"products"`
	Meta     Meta           `json:"meta"`
}

// VariantResolution is the outcome of changing one attribute on a product page.
type VariantResolution struct {
	Variant  *models.ProductVariant `json:"variant"`
	Selected models.Attributes      `json:"selected"`
	Options  []variant.OptionGroup  `json:"options"`
}

type ProductService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	presigner  awspkg.Presigner
	log        *zap.Logger
}

// NewProductService wires the catalog service. presigner may be nil when no
// image bucket is configured.
func NewProductService(products repository.ProductRepository, categories repository.CategoryRepository, presigner awspkg.Presigner, log *zap.Logger) *ProductService {
	return &ProductService{products: products, categories: categories, presigner: presigner, log: log}
}

func (s *ProductService) List(ctx context.Context, filter models.ProductFilter) (*ProductListResponse, *ServiceError) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)

	products, total, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, storeError(s.log, "product.list", err)
	}

	views := make([]*ProductView, 0, len(products))
	for i := range products {
		views = append(views, newProductView(&products[i]))
	}
	return &ProductListResponse{Products: views, Meta: newMeta(filter.Page, filter.Limit, total)}, nil
}

// Get returns the product with its selector opened on the default selection.
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*ProductView, *ServiceError) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, fromStore(s.log, "product.get", err, "product not found")
	}

	view := newProductView(p)
	view.Selected = variant.DefaultSelection(p.Variants)
	view.Options = variant.Groups(p.Variants, view.Selected)
	return view, nil
}

// ResolveVariant applies one attribute change to the current selection.
// When nothing matches, Variant is nil and the selection is unchanged.
func (s *ProductService) ResolveVariant(ctx context.Context, productID uuid.UUID, req models.ResolveVariantRequest) (*VariantResolution, *ServiceError) {
	variants, err := s.products.ListVariants(ctx, productID)
	if err != nil {
		return nil, storeError(s.log, "product.list_variants", err)
	}
	if len(variants) == 0 {
		return nil, notFound("product has no variants")
	}

	selected := req.Selected
	if selected == nil {
		selected = models.Attributes{}
	}

	res := &VariantResolution{Selected: selected}
	if v := variant.Resolve(variants, selected, req.Key, req.Value); v != nil {
		res.Variant = v
		res.Selected = v.Attributes.With(req.Key, req.Value)
	}
	res.Options = variant.Groups(variants, res.Selected)
	return res, nil
}

// Create inserts a product with its initial variants and images.
func (s *ProductService) Create(ctx context.Context, req models.ProductRequest) (*models.Product, *ServiceError) {
	if req.BasePrice.IsNegative() {
		return nil, validation("basePrice must not be negative")
	}
	if serr := s.ensureCategory(ctx, req.CategoryID); serr != nil {
		return nil, serr
	}

	variants, serr := buildVariants(req)
	if serr != nil {
		return nil, serr
	}

	p := &models.Product{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		BasePrice:   req.BasePrice,
		Brand:       strings.TrimSpace(req.Brand),
		CategoryID:  req.CategoryID,
		Variants:    variants,
		Images:      buildImages(req.Images),
	}

	if err := s.products.Create(ctx, p); err != nil {
		return nil, fromStore(s.log, "product.create", err, "product not found")
	}
	s.log.Info("product created", zap.String("product_id", p.ID.String()), zap.Int("variants", len(p.Variants)))
	return p, nil
}

func buildVariants(req models.ProductRequest) ([]models.ProductVariant, *ServiceError) {
	seen := make(map[string]bool, len(req.Variants))
	out := make([]models.ProductVariant, 0, len(req.Variants))
	for _, vr := range req.Variants {
		v, serr := variantFromRequest(vr, req.BasePrice)
		if serr != nil {
			return nil, serr
		}
		key := v.Attributes.Canonical()
		if seen[key] {
			return nil, validation("two variants share the same attributes " + key)
		}
		seen[key] = true
		out = append(out, *v)
	}
	return out, nil
}

func variantFromRequest(vr models.VariantRequest, basePrice decimal.Decimal) (*models.ProductVariant, *ServiceError) {
	attrs := vr.Attributes
	if attrs == nil {
		attrs = models.Attributes{}
	}
	if err := attrs.Validate(); err != nil {
		return nil, validation(err.Error())
	}
	if vr.Stock < 0 {
		return nil, invalidQuantity("stock must not be negative")
	}

	price := basePrice
	if vr.Price != nil {
		if vr.Price.IsNegative() {
			return nil, validation("price must not be negative")
		}
		price = *vr.Price
	}
	return &models.ProductVariant{Attributes: attrs, Price: price, Stock: vr.Stock}, nil
}

// buildImages keeps at most one cover, defaulting to the first image.
func buildImages(reqs []models.ImageRequest) []models.ProductImage {
	images := make([]models.ProductImage, 0, len(reqs))
	cover := -1
	for i, ir := range reqs {
		if ir.IsCover && cover < 0 {
			cover = i
		}
		images = append(images, models.ProductImage{URL: ir.URL, Position: ir.Position})
	}
	if cover < 0 && len(images) > 0 {
		cover = 0
	}
	if cover >= 0 {
		images[cover].IsCover = true
	}
	return images
}

func (s *ProductService) ensureCategory(ctx context.Context, id uuid.UUID) *ServiceError {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		return fromStore(s.log, "product.find_category", err, "category not found")
	}
	return nil
}

func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req models.ProductRequest) (*models.Product, *ServiceError) {
	if req.BasePrice.IsNegative() {
		return nil, validation("basePrice must not be negative")
	}
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, fromStore(s.log, "product.get", err, "product not found")
	}
	if p.CategoryID != req.CategoryID {
		if serr := s.ensureCategory(ctx, req.CategoryID); serr != nil {
			return nil, serr
		}
	}

	p.Name = strings.TrimSpace(req.Name)
	p.Description = req.Description
	p.BasePrice = req.BasePrice
	p.Brand = strings.TrimSpace(req.Brand)
	p.CategoryID = req.CategoryID
	p.Category = nil

	if err := s.products.Update(ctx, p); err != nil {
		return nil, fromStore(s.log, "product.update", err, "product not found")
	}
	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) *ServiceError {
	if err := s.products.Delete(ctx, id); err != nil {
		serr := fromStore(s.log, "product.delete", err, "product not found")
		if serr.Kind == KindConflict {
			serr = conflict("product is referenced by existing orders")
		}
		return serr
	}
	return nil
}

// CreateVariant adds a variant, refusing an attribute mapping the product
// already has.
func (s *ProductService) CreateVariant(ctx context.Context, productID uuid.UUID, req models.VariantRequest) (*models.ProductVariant, *ServiceError) {
	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, fromStore(s.log, "product.get", err, "product not found")
	}

	v, serr := variantFromRequest(req, p.BasePrice)
	if serr != nil {
		return nil, serr
	}
	if duplicateAttributes(p.Variants, v.Attributes, uuid.Nil) {
		return nil, conflict("a variant with these attributes already exists")
	}

	v.ProductID = productID
	if err := s.products.CreateVariant(ctx, v); err != nil {
		serr := fromStore(s.log, "product.create_variant", err, "product not found")
		if serr.Kind == KindConflict {
			serr = conflict("a variant with these attributes already exists")
		}
		return nil, serr
	}
	return v, nil
}

func (s *ProductService) UpdateVariant(ctx context.Context, productID, variantID uuid.UUID, req models.VariantRequest) (*models.ProductVariant, *ServiceError) {
	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, fromStore(s.log, "product.get", err, "product not found")
	}

	var current *models.ProductVariant
	for i := range p.Variants {
		if p.Variants[i].ID == variantID {
			current = &p.Variants[i]
			break
		}
	}
	if current == nil {
		return nil, notFound("product variant not found")
	}

	next, serr := variantFromRequest(req, current.Price)
	if serr != nil {
		return nil, serr
	}
	if duplicateAttributes(p.Variants, next.Attributes, variantID) {
		return nil, conflict("a variant with these attributes already exists")
	}

	current.Attributes = next.Attributes
	current.Price = next.Price
	current.Stock = next.Stock
	if err := s.products.UpdateVariant(ctx, current); err != nil {
		serr := fromStore(s.log, "product.update_variant", err, "product variant not found")
		if serr.Kind == KindConflict {
			serr = conflict("a variant with these attributes already exists")
		}
		return nil, serr
	}
	return current, nil
}

func (s *ProductService) DeleteVariant(ctx context.Context, productID, variantID uuid.UUID) *ServiceError {
	if err := s.products.DeleteVariant(ctx, productID, variantID); err != nil {
		return fromStore(s.log, "product.delete_variant", err, "product variant not found")
	}
	return nil
}

func duplicateAttributes(variants []models.ProductVariant, attrs models.Attributes, except uuid.UUID) bool {
	for i := range variants {
		if variants[i].ID != except && variants[i].Attributes.Equal(attrs) {
			return true
		}
	}
	return false
}

func (s *ProductService) AddImage(ctx context.Context, productID uuid.UUID, req models.ImageRequest) (*models.ProductImage, *ServiceError) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, fromStore(s.log, "product.get", err, "product not found")
	}
	img := &models.ProductImage{ProductID: productID, URL: req.URL, IsCover: req.IsCover, Position: req.Position}
	if err := s.products.AddImage(ctx, img); err != nil {
		return nil, storeError(s.log, "product.add_image", err)
	}
	return img, nil
}

func (s *ProductService) SetCoverImage(ctx context.Context, productID, imageID uuid.UUID) *ServiceError {
	if err := s.products.SetCoverImage(ctx, productID, imageID); err != nil {
		return fromStore(s.log, "product.set_cover", err, "product image not found")
	}
	return nil
}

func (s *ProductService) DeleteImage(ctx context.Context, productID, imageID uuid.UUID) *ServiceError {
	if err := s.products.DeleteImage(ctx, productID, imageID); err != nil {
		return fromStore(s.log, "product.delete_image", err, "product image not found")
	}
	return nil
}

// PresignImageUpload returns a short-lived PUT URL for a new product image.
func (s *ProductService) PresignImageUpload(ctx context.Context, productID uuid.UUID, req models.PresignImageRequest) (*awspkg.PresignedUpload, *ServiceError) {
	if s.presigner == nil {
		return nil, unavailable("image uploads are not configured")
	}
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, fromStore(s.log, "product.get", err, "product not found")
	}

	key := imageKey(productID, req.FileName)
	upload, err := s.presigner.PresignPut(ctx, key, req.ContentType, presignExpiry)
	if err != nil {
		s.log.Error("presign failed", zap.String("key", key), zap.Error(err))
		return nil, unavailable("could not prepare the upload")
	}
	return upload, nil
}

func imageKey(productID uuid.UUID, fileName string) string {
	ext := strings.ToLower(path.Ext(path.Base(strings.ReplaceAll(fileName, "\\", "/"))))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp", ".gif":
	default:
		ext = ""
	}
	return fmt.Sprintf("products/%s/%s%s", productID, uuid.NewString(), ext)
}
