package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"beton/internal/models"
	"beton/internal/repositories"
)

type mockOrderRepo struct {
	mock.Mock
}

func (m *mockOrderRepo) CreateWithItems(ctx context.Context, order *models.Order, items []models.OrderItemInput) error {
	args := m.Called(ctx, order, items)
	return args.Error(0)
}

func (m *mockOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *mockOrderRepo) List(ctx context.Context, filter models.OrderFilter) ([]*models.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Order), args.Error(1)
}

func (m *mockOrderRepo) Update(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *mockOrderRepo) UpdateWithItems(ctx context.Context, order *models.Order, items []models.OrderItemInput) error {
	args := m.Called(ctx, order, items)
	return args.Error(0)
}

func (m *mockOrderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type recordingNotifier struct {
	orders  []*models.Order
	ctxErrs []error
}

func (r *recordingNotifier) Notify(ctx context.Context, order *models.Order) {
	r.orders = append(r.orders, order)
	r.ctxErrs = append(r.ctxErrs, ctx.Err())
}

func TestCreateOrderNotifiesOnceAfterCommit(t *testing.T) {
	repo := new(mockOrderRepo)
	notifier := &recordingNotifier{}
	svc := NewOrderService(repo, notifier)

	repo.On("CreateWithItems", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	repo.On("GetByID", mock.Anything, mock.Anything).
		Return(&models.Order{Fullname: "Ivan Petrov", Status: models.OrderStatusActive}, nil)

	_, err := svc.Create(context.Background(), CreateOrderInput{
		Fullname:      "Ivan Petrov",
		Contact:       "@ivan",
		ContactMethod: "telegram",
		Items:         []models.OrderItemInput{{ID: 1, Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Len(t, notifier.orders, 1)
	repo.AssertExpectations(t)
}

func TestCreateOrderNoNotifyOnFailure(t *testing.T) {
	repo := new(mockOrderRepo)
	notifier := &recordingNotifier{}
	svc := NewOrderService(repo, notifier)

	repo.On("CreateWithItems", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("deadlock detected"))

	_, err := svc.Create(context.Background(), CreateOrderInput{
		Fullname: "Ivan Petrov",
		Contact:  "@ivan",
		Items:    []models.OrderItemInput{{ID: 1, Quantity: 2}},
	})
	assert.Error(t, err)
	assert.Empty(t, notifier.orders)
}

func TestCreateOrderValidation(t *testing.T) {
	svc := NewOrderService(new(mockOrderRepo), nil)

	_, err := svc.Create(context.Background(), CreateOrderInput{Contact: "@ivan"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(context.Background(), CreateOrderInput{Fullname: "Ivan"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(context.Background(), CreateOrderInput{
		Fullname: "Ivan",
		Contact:  "@ivan",
		Items:    []models.OrderItemInput{{ID: 1, Quantity: 0}},
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateOrderMergesDuplicateItems(t *testing.T) {
	repo := new(mockOrderRepo)
	svc := NewOrderService(repo, nil)

	repo.On("CreateWithItems", mock.Anything, mock.Anything,
		[]models.OrderItemInput{{ID: 1, Quantity: 5}, {ID: 2, Quantity: 1}}).Return(nil)
	repo.On("GetByID", mock.Anything, mock.Anything).
		Return(&models.Order{Status: models.OrderStatusActive}, nil)

	_, err := svc.Create(context.Background(), CreateOrderInput{
		Fullname: "Ivan",
		Contact:  "@ivan",
		Items: []models.OrderItemInput{
			{ID: 1, Quantity: 2},
			{ID: 2, Quantity: 1},
			{ID: 1, Quantity: 3},
		},
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdateOrderUnknownVariantIsValidationError(t *testing.T) {
	repo := new(mockOrderRepo)
	svc := NewOrderService(repo, nil)
	id := uuid.New()

	repo.On("GetByID", mock.Anything, id).
		Return(&models.Order{ID: id, Fullname: "Ivan", Contact: "@ivan", Status: models.OrderStatusActive}, nil)
	repo.On("UpdateWithItems", mock.Anything, mock.Anything, mock.Anything).Return(repositories.ErrUnknownVariant)

	items := []models.OrderItemInput{{ID: 999, Quantity: 1}}
	_, err := svc.Update(context.Background(), id, UpdateOrderInput{Items: &items})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateOrderRejectsZeroQuantityBeforeWriting(t *testing.T) {
	repo := new(mockOrderRepo)
	svc := NewOrderService(repo, nil)
	id := uuid.New()

	repo.On("GetByID", mock.Anything, id).
		Return(&models.Order{ID: id, Fullname: "Ivan", Contact: "@ivan", Status: models.OrderStatusActive}, nil)

	items := []models.OrderItemInput{{ID: 1, Quantity: 0}}
	_, err := svc.Update(context.Background(), id, UpdateOrderInput{Items: &items})
	assert.ErrorIs(t, err, ErrValidation)
	repo.AssertNotCalled(t, "UpdateWithItems", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCreateOrderNotifiesAfterClientDisconnect(t *testing.T) {
	repo := new(mockOrderRepo)
	notifier := &recordingNotifier{}
	svc := NewOrderService(repo, notifier)

	ctx, cancel := context.WithCancel(context.Background())
	repo.On("CreateWithItems", mock.Anything, mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { cancel() }).
		Return(nil)
	repo.On("GetByID", mock.Anything, mock.Anything).
		Return(&models.Order{Fullname: "Ivan", Status: models.OrderStatusActive}, nil)

	_, err := svc.Create(ctx, CreateOrderInput{
		Fullname: "Ivan",
		Contact:  "@ivan",
		Items:    []models.OrderItemInput{{ID: 1, Quantity: 1}},
	})
	require.NoError(t, err)
	require.Len(t, notifier.orders, 1)
	assert.NoError(t, notifier.ctxErrs[0])
}

func TestUpdateOrderRejectsUnknownStatus(t *testing.T) {
	repo := new(mockOrderRepo)
	svc := NewOrderService(repo, nil)
	id := uuid.New()

	repo.On("GetByID", mock.Anything, id).
		Return(&models.Order{ID: id, Fullname: "Ivan", Contact: "@ivan", Status: models.OrderStatusActive}, nil)

	bad := "shipped"
	_, err := svc.Update(context.Background(), id, UpdateOrderInput{Status: &bad})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetOrderNotFound(t *testing.T) {
	repo := new(mockOrderRepo)
	svc := NewOrderService(repo, nil)
	id := uuid.New()

	repo.On("GetByID", mock.Anything, id).Return(nil, repositories.ErrNoRows)

	_, err := svc.Get(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListOrdersRejectsUnknownStatus(t *testing.T) {
	svc := NewOrderService(new(mockOrderRepo), nil)

	bad := "archived"
	_, err := svc.List(context.Background(), models.OrderFilter{Status: &bad})
	assert.ErrorIs(t, err, ErrValidation)
}
