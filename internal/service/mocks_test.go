package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/CameronXie/ecommerce-backend/commerce/orderaggregator"
	"github.com/CameronXie/ecommerce-backend/commerce/page"
)

type mockStore[T any] struct {
	mock.Mock
}

func (m *mockStore[T]) Get(ctx context.Context, id string) (*T, error) {
	args := m.Called(ctx, id)
	rec, _ := args.Get(0).(*T)
	return rec, args.Error(1)
}

func (m *mockStore[T]) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockStore[T]) Create(ctx context.Context, rec *T) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *mockStore[T]) Save(ctx context.Context, rec *T) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *mockStore[T]) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockStore[T]) List(ctx context.Context, p page.Pageable) (page.Page[T], error) {
	args := m.Called(ctx, p)
	return args.Get(0).(page.Page[T]), args.Error(1)
}

func (m *mockStore[T]) ListBy(ctx context.Context, field string, value any, p page.Pageable) (page.Page[T], error) {
	args := m.Called(ctx, field, value, p)
	return args.Get(0).(page.Page[T]), args.Error(1)
}

func (m *mockStore[T]) FindBy(ctx context.Context, field, value string) (*T, error) {
	args := m.Called(ctx, field, value)
	rec, _ := args.Get(0).(*T)
	return rec, args.Error(1)
}

func (m *mockStore[T]) GetByIDs(ctx context.Context, ids []string) ([]T, error) {
	args := m.Called(ctx, ids)
	recs, _ := args.Get(0).([]T)
	return recs, args.Error(1)
}

type mockOrderStore struct {
	mock.Mock
}

func (m *mockOrderStore) ListOrderIDsByUser(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

func (m *mockOrderStore) ListOrdersByIDs(ctx context.Context, ids []string) ([]orderaggregator.Order, error) {
	args := m.Called(ctx, ids)
	orders, _ := args.Get(0).([]orderaggregator.Order)
	return orders, args.Error(1)
}

type mockLineItemStore struct {
	mock.Mock
}

func (m *mockLineItemStore) ListLineItemsByOrder(
	ctx context.Context,
	orderID string,
	p page.Pageable,
) (page.Page[orderaggregator.LineItem], error) {
	args := m.Called(ctx, orderID, p)
	return args.Get(0).(page.Page[orderaggregator.LineItem]), args.Error(1)
}

func (m *mockLineItemStore) ListLineItemsByOrders(ctx context.Context, orderIDs []string) ([]orderaggregator.LineItem, error) {
	args := m.Called(ctx, orderIDs)
	items, _ := args.Get(0).([]orderaggregator.LineItem)
	return items, args.Error(1)
}
