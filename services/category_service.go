package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Lari-oliv/olive-beauty/models"
	"github.com/Lari-oliv/olive-beauty/repository"
)

type CategoryService struct {
	repo repository.CategoryRepository
	log  *zap.Logger
}

func NewCategoryService(repo repository.CategoryRepository, log *zap.Logger) *CategoryService {
	return &CategoryService{repo: repo, log: log}
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, *ServiceError) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, storeError(s.log, "category.list", err)
	}
	return categories, nil
}

func (s *CategoryService) Get(ctx context.Context, id uuid.UUID) (*models.Category, *ServiceError) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fromStore(s.log, "category.get", err, "category not found")
	}
	return c, nil
}

func (s *CategoryService) Create(ctx context.Context, req models.CategoryRequest) (*models.Category, *ServiceError) {
	c := &models.Category{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		serr := fromStore(s.log, "category.create", err, "category not found")
		if serr.Kind == KindConflict {
			serr = conflict("a category with this name already exists")
		}
		return nil, serr
	}
	return c, nil
}

func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req models.CategoryRequest) (*models.Category, *ServiceError) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fromStore(s.log, "category.get", err, "category not found")
	}
	c.Name = strings.TrimSpace(req.Name)
	c.Description = strings.TrimSpace(req.Description)

	if err := s.repo.Update(ctx, c); err != nil {
		serr := fromStore(s.log, "category.update", err, "category not found")
		if serr.Kind == KindConflict {
			serr = conflict("a category with this name already exists")
		}
		return nil, serr
	}
	return c, nil
}

// Delete refuses categories that still have products.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) *ServiceError {
	if err := s.repo.Delete(ctx, id); err != nil {
		serr := fromStore(s.log, "category.delete", err, "category not found")
		if serr.Kind == KindConflict {
			serr = conflict("category still has products")
		}
		return serr
	}
	return nil
}
