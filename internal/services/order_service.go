package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"beton/internal/models"
	"beton/internal/repositories"
	"beton/internal/txhook"
)

type CreateOrderInput struct {
	Fullname      string                  `json:"fullname"`
	Contact       string                  `json:"contact"`
	ContactMethod string                  `json:"contact_method"`
	Deadline      *time.Time              `json:"deadline"`
	Items         []models.OrderItemInput `json:"items"`
}

type UpdateOrderInput struct {
	Fullname      *string                  `json:"fullname"`
	Contact       *string                  `json:"contact"`
	ContactMethod *string                  `json:"contact_method"`
	Status        *string                  `json:"status"`
	Deadline      *time.Time               `json:"deadline"`
	Items         *[]models.OrderItemInput `json:"items"`
}

type OrderService interface {
	Create(ctx context.Context, input CreateOrderInput) (*models.Order, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, filter models.OrderFilter) ([]*models.Order, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateOrderInput) (*models.Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type orderService struct {
	repo     repositories.OrderRepository
	notifier OrderNotifier
}

func NewOrderService(repo repositories.OrderRepository, notifier OrderNotifier) OrderService {
	return &orderService{repo: repo, notifier: notifier}
}

// mergeItems collapses duplicate variant references by summing their
// quantities, keeping first-seen order.
func mergeItems(items []models.OrderItemInput) []models.OrderItemInput {
	index := make(map[int64]int, len(items))
	merged := make([]models.OrderItemInput, 0, len(items))
	for _, item := range items {
		if i, ok := index[item.ID]; ok {
			merged[i].Quantity += item.Quantity
			continue
		}
		index[item.ID] = len(merged)
		merged = append(merged, item)
	}
	return merged
}

func validateItems(items []models.OrderItemInput) error {
	for _, item := range items {
		if item.Quantity < 1 {
			return fmt.Errorf("%w: quantity must be at least 1 for variant %d", ErrValidation, item.ID)
		}
	}
	return nil
}

func (s *orderService) Create(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	fullname := strings.TrimSpace(input.Fullname)
	contact := strings.TrimSpace(input.Contact)
	if fullname == "" {
		return nil, fmt.Errorf("%w: fullname is required", ErrValidation)
	}
	if contact == "" {
		return nil, fmt.Errorf("%w: contact is required", ErrValidation)
	}
	if err := validateItems(input.Items); err != nil {
		return nil, err
	}

	order := &models.Order{
		ID:            uuid.New(),
		Fullname:      fullname,
		Contact:       contact,
		ContactMethod: strings.TrimSpace(input.ContactMethod),
		Status:        models.OrderStatusActive,
		Deadline:      input.Deadline,
	}

	var hooks txhook.Hooks
	if s.notifier != nil {
		hooks.OnCommit(func(ctx context.Context) {
			created, err := s.repo.GetByID(ctx, order.ID)
			if err != nil {
				log.Printf("order %s: load for notification: %v", order.ID, err)
				return
			}
			s.notifier.Notify(ctx, created)
		})
	}

	if err := s.repo.CreateWithItems(ctx, order, mergeItems(input.Items)); err != nil {
		hooks.Discard()
		return nil, fmt.Errorf("create order: %w", err)
	}
	// The order is committed; notification must survive the request
	// being abandoned.
	hooks.Drain(context.WithoutCancel(ctx))

	return s.Get(ctx, order.ID)
}

func (s *orderService) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNoRows) {
		return nil, fmt.Errorf("%w: order %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

func (s *orderService) List(ctx context.Context, filter models.OrderFilter) ([]*models.Order, error) {
	if filter.Status != nil && !models.ValidOrderStatus(*filter.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, *filter.Status)
	}
	return s.repo.List(ctx, filter)
}

func (s *orderService) Update(ctx context.Context, id uuid.UUID, input UpdateOrderInput) (*models.Order, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Fullname != nil {
		fullname := strings.TrimSpace(*input.Fullname)
		if fullname == "" {
			return nil, fmt.Errorf("%w: fullname must not be blank", ErrValidation)
		}
		order.Fullname = fullname
	}
	if input.Contact != nil {
		contact := strings.TrimSpace(*input.Contact)
		if contact == "" {
			return nil, fmt.Errorf("%w: contact must not be blank", ErrValidation)
		}
		order.Contact = contact
	}
	if input.ContactMethod != nil {
		order.ContactMethod = strings.TrimSpace(*input.ContactMethod)
	}
	if input.Status != nil {
		if !models.ValidOrderStatus(*input.Status) {
			return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, *input.Status)
		}
		order.Status = *input.Status
	}
	if input.Deadline != nil {
		order.Deadline = input.Deadline
	}

	if input.Items != nil {
		items := mergeItems(*input.Items)
		if err := validateItems(items); err != nil {
			return nil, err
		}
		err := s.repo.UpdateWithItems(ctx, order, items)
		switch {
		case errors.Is(err, repositories.ErrUnknownVariant):
			return nil, fmt.Errorf("%w: item references unknown variant", ErrValidation)
		case errors.Is(err, repositories.ErrNoRows):
			return nil, fmt.Errorf("%w: order %s", ErrNotFound, id)
		case err != nil:
			return nil, fmt.Errorf("update order: %w", err)
		}
		return s.Get(ctx, id)
	}

	if err := s.repo.Update(ctx, order); err != nil {
		if errors.Is(err, repositories.ErrNoRows) {
			return nil, fmt.Errorf("%w: order %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("update order: %w", err)
	}
	return s.Get(ctx, id)
}

func (s *orderService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repositories.ErrNoRows) {
		return fmt.Errorf("%w: order %s", ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}
