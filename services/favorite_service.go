package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Lari-oliv/olive-beauty/models"
	"github.com/Lari-oliv/olive-beauty/repository"
)

type FavoriteService struct {
	favorites repository.FavoriteRepository
	products  repository.ProductRepository
	log       *zap.Logger
}

func NewFavoriteService(favorites repository.FavoriteRepository, products repository.ProductRepository, log *zap.Logger) *FavoriteService {
	return &FavoriteService{favorites: favorites, products: products, log: log}
}

func (s *FavoriteService) List(ctx context.Context, userID uuid.UUID) ([]models.Favorite, *ServiceError) {
	favorites, err := s.favorites.List(ctx, userID)
	if err != nil {
		return nil, storeError(s.log, "favorite.list", err)
	}
	return favorites, nil
}

// Add marks a product as favorite. Adding twice is fine.
func (s *FavoriteService) Add(ctx context.Context, userID, productID uuid.UUID) *ServiceError {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return fromStore(s.log, "favorite.find_product", err, "product not found")
	}
	if err := s.favorites.Add(ctx, userID, productID); err != nil {
		return storeError(s.log, "favorite.add", err)
	}
	return nil
}

func (s *FavoriteService) Remove(ctx context.Context, userID, productID uuid.UUID) *ServiceError {
	if err := s.favorites.Remove(ctx, userID, productID); err != nil {
		return storeError(s.log, "favorite.remove", err)
	}
	return nil
}

func (s *FavoriteService) IsFavorite(ctx context.Context, userID, productID uuid.UUID) (bool, *ServiceError) {
	ok, err := s.favorites.Exists(ctx, userID, productID)
	if err != nil {
		return false, storeError(s.log, "favorite.check", err)
	}
	return ok, nil
}
