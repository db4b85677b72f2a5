package repositories

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beton/internal/models"
)

func TestCategoryRepoCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCategoryRepo(mock)
	now := time.Now()
	category := &models.Category{Slug: "dry-mixes", Title: "Dry mixes"}

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO categories`)).
		WithArgs(category.Slug, category.Title, category.Description).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(1), now, now))

	require.NoError(t, repo.Create(context.Background(), category))
	assert.Equal(t, int64(1), category.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepoGetBySlugMissing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCategoryRepo(mock)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM categories WHERE slug = $1`)).
		WithArgs("nope").
		WillReturnError(ErrNoRows)

	_, err = repo.GetBySlug(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepoDeleteMissing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCategoryRepo(mock)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM categories WHERE slug = $1`)).
		WithArgs("nope").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), "nope"), ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
