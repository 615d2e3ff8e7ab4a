package repository_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Lari-oliv/olive-beauty/models"
	"github.com/Lari-oliv/olive-beauty/repository"
)

func TestCategoryDelete_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormCategoryRepository(gormDB)

	id := uuid.New()
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "categories" WHERE id = $1`)).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	assert.ErrorIs(t, repo.Delete(context.Background(), id), gorm.ErrRecordNotFound)
}

func TestProductFirstVariant_NoVariants(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormProductRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "product_variants" WHERE product_id = $1 ORDER BY created_at ASC, id ASC LIMIT $2`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	v, err := repo.FirstVariant(context.Background(), uuid.New())
	assert.Nil(t, v)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProductFindVariant_ParsesAttributes(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormProductRepository(gormDB)

	productID, variantID := uuid.New(), uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "product_variants" WHERE id = $1 AND product_id = $2`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "attributes", "price", "stock"}).
			AddRow(variantID.String(), productID.String(), `not json`, "9.90", 1))

	v, err := repo.FindVariant(context.Background(), productID, variantID)
	require.NoError(t, err)
	assert.Equal(t, models.Attributes{}, v.Attributes, "unparsable attributes degrade to an empty mapping")
}

func TestProductSetCoverImage_UnknownImage(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormProductRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "product_images" SET "is_cover"=$1 WHERE product_id = $2 AND is_cover = $3`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "product_images" SET "is_cover"=$1 WHERE id = $2 AND product_id = $3`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.SetCoverImage(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFavoriteAdd_IsIdempotent(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormFavoriteRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "favorites"`) + `.*` + regexp.QuoteMeta(`ON CONFLICT DO NOTHING`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectCommit()

	assert.NoError(t, repo.Add(context.Background(), uuid.New(), uuid.New()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
