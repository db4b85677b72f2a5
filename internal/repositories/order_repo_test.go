package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beton/internal/models"
)

func TestOrderRepoCreateWithItems(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepo(mock)
	now := time.Now()
	order := &models.Order{
		ID:            uuid.New(),
		Fullname:      "Ivan Petrov",
		Contact:       "@ivan",
		ContactMethod: "telegram",
		Status:        models.OrderStatusActive,
	}
	items := []models.OrderItemInput{{ID: 3, Quantity: 2}, {ID: 7, Quantity: 1}}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO orders`)).
		WithArgs(order.ID, order.Fullname, order.Contact, order.ContactMethod, order.Status, order.Deadline).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO order_items`)).
		WithArgs(order.ID, int64(3), 2).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO order_items`)).
		WithArgs(order.ID, int64(7), 1).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	err = repo.CreateWithItems(context.Background(), order, items)
	require.NoError(t, err)
	assert.Equal(t, now, order.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepoCreateWithItemsSkipsUnknownVariant(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepo(mock)
	now := time.Now()
	order := &models.Order{ID: uuid.New(), Fullname: "x", Contact: "y", ContactMethod: "phone", Status: models.OrderStatusActive}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO orders`)).
		WithArgs(order.ID, order.Fullname, order.Contact, order.ContactMethod, order.Status, order.Deadline).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO order_items`)).
		WithArgs(order.ID, int64(999), 4).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))
	mock.ExpectCommit()

	err = repo.CreateWithItems(context.Background(), order, []models.OrderItemInput{{ID: 999, Quantity: 4}})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepoCreateWithItemsRollsBack(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepo(mock)
	now := time.Now()
	order := &models.Order{ID: uuid.New(), Fullname: "x", Contact: "y", ContactMethod: "phone", Status: models.OrderStatusActive}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO orders`)).
		WithArgs(order.ID, order.Fullname, order.Contact, order.ContactMethod, order.Status, order.Deadline).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO order_items`)).
		WithArgs(order.ID, int64(3), 2).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err = repo.CreateWithItems(context.Background(), order, []models.OrderItemInput{{ID: 3, Quantity: 2}})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepoUpdateWithItems(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepo(mock)
	now := time.Now()
	order := &models.Order{ID: uuid.New(), Fullname: "Ivan", Contact: "@ivan", ContactMethod: "telegram", Status: models.OrderStatusActive}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE orders`)).
		WithArgs(order.Fullname, order.Contact, order.ContactMethod, order.Status, order.Deadline, order.ID).
		WillReturnRows(pgxmock.NewRows([]string{"updated_at"}).AddRow(now))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM order_items WHERE order_id = $1`)).
		WithArgs(order.ID).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO order_items`)).
		WithArgs(order.ID, int64(3), 2).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	err = repo.UpdateWithItems(context.Background(), order, []models.OrderItemInput{{ID: 3, Quantity: 2}})
	require.NoError(t, err)
	assert.Equal(t, now, order.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepoUpdateWithItemsRejectsUnknownVariant(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepo(mock)
	now := time.Now()
	order := &models.Order{ID: uuid.New(), Fullname: "Ivan", Contact: "@ivan", Status: models.OrderStatusActive}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE orders`)).
		WithArgs(order.Fullname, order.Contact, order.ContactMethod, order.Status, order.Deadline, order.ID).
		WillReturnRows(pgxmock.NewRows([]string{"updated_at"}).AddRow(now))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM order_items WHERE order_id = $1`)).
		WithArgs(order.ID).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO order_items`)).
		WithArgs(order.ID, int64(999), 1).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))
	mock.ExpectRollback()

	err = repo.UpdateWithItems(context.Background(), order, []models.OrderItemInput{{ID: 999, Quantity: 1}})
	assert.ErrorIs(t, err, ErrUnknownVariant)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepoUpdateWithItemsRollsBackTogether(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepo(mock)
	order := &models.Order{ID: uuid.New(), Fullname: "Ivan", Contact: "@ivan", Status: models.OrderStatusActive}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE orders`)).
		WithArgs(order.Fullname, order.Contact, order.ContactMethod, order.Status, order.Deadline, order.ID).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err = repo.UpdateWithItems(context.Background(), order, []models.OrderItemInput{{ID: 3, Quantity: 2}})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepoDeleteMissing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepo(mock)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM orders WHERE id = $1`)).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM orders WHERE id = $1`)).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), id), ErrNoRows)
	assert.ErrorIs(t, repo.Delete(context.Background(), id), ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepoListFilters(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewOrderRepo(mock)
	now := time.Now()
	status := models.OrderStatusActive
	contact := "@ivan"

	rows := pgxmock.NewRows([]string{"id", "fullname", "contact", "contact_method", "status", "deadline", "created_at", "updated_at"}).
		AddRow(uuid.New(), "Ivan Petrov", "@ivan", "telegram", "active", (*time.Time)(nil), now, now)
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE contact = $1 AND status = $2 ORDER BY created_at`)).
		WithArgs(contact, status).
		WillReturnRows(rows)

	orders, err := repo.List(context.Background(), models.OrderFilter{Contact: &contact, Status: &status})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "Ivan Petrov", orders[0].Fullname)
	assert.NoError(t, mock.ExpectationsWereMet())
}
