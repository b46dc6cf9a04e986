package handlers

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/stretchr/testify/mock"

	"github.com/CameronXie/ecommerce-backend/commerce/orderaggregator"
	"github.com/CameronXie/ecommerce-backend/commerce/page"
	"github.com/CameronXie/ecommerce-backend/internal/domain"
	"github.com/CameronXie/ecommerce-backend/internal/service"
)

// testLogger captures log messages and levels for testing
type testLogger struct {
	messages []string
	levels   []slog.Level
	buffer   *bytes.Buffer
}

func newTestLogger() *testLogger {
	return &testLogger{buffer: &bytes.Buffer{}}
}

func (tl *testLogger) getLogger() *slog.Logger {
	return slog.New(&captureHandler{
		testLogger: tl,
		handler:    slog.NewTextHandler(tl.buffer, &slog.HandlerOptions{Level: slog.LevelDebug}),
	})
}

type captureHandler struct {
	testLogger *testLogger
	handler    slog.Handler
}

func (ch *captureHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return ch.handler.Enabled(ctx, level)
}

func (ch *captureHandler) Handle(ctx context.Context, record slog.Record) error { //nolint:gocritic // slog.Handler interface
	ch.testLogger.messages = append(ch.testLogger.messages, record.Message)
	ch.testLogger.levels = append(ch.testLogger.levels, record.Level)
	return ch.handler.Handle(ctx, record)
}

func (ch *captureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &captureHandler{testLogger: ch.testLogger, handler: ch.handler.WithAttrs(attrs)}
}

func (ch *captureHandler) WithGroup(name string) slog.Handler {
	return &captureHandler{testLogger: ch.testLogger, handler: ch.handler.WithGroup(name)}
}

type mockResourceService[T any] struct {
	mock.Mock
}

func (m *mockResourceService[T]) Create(ctx context.Context, rec *T) (*T, error) {
	args := m.Called(ctx, rec)
	created, _ := args.Get(0).(*T)
	return created, args.Error(1)
}

func (m *mockResourceService[T]) Get(ctx context.Context, id string) (*T, error) {
	args := m.Called(ctx, id)
	rec, _ := args.Get(0).(*T)
	return rec, args.Error(1)
}

func (m *mockResourceService[T]) List(ctx context.Context, p page.Pageable) (page.Page[T], error) {
	args := m.Called(ctx, p)
	return args.Get(0).(page.Page[T]), args.Error(1)
}

func (m *mockResourceService[T]) ListBy(ctx context.Context, field, value string, p page.Pageable) (page.Page[T], error) {
	args := m.Called(ctx, field, value, p)
	return args.Get(0).(page.Page[T]), args.Error(1)
}

func (m *mockResourceService[T]) FindBy(ctx context.Context, field, value string) (*T, error) {
	args := m.Called(ctx, field, value)
	rec, _ := args.Get(0).(*T)
	return rec, args.Error(1)
}

func (m *mockResourceService[T]) Update(ctx context.Context, id string, rec *T) (*T, error) {
	args := m.Called(ctx, id, rec)
	updated, _ := args.Get(0).(*T)
	return updated, args.Error(1)
}

func (m *mockResourceService[T]) Patch(ctx context.Context, id string, updates map[string]any) (*T, error) {
	args := m.Called(ctx, id, updates)
	patched, _ := args.Get(0).(*T)
	return patched, args.Error(1)
}

func (m *mockResourceService[T]) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *mockUserService) OrderedProducts(ctx context.Context, userID string, p page.Pageable) (page.Page[service.OrderedProduct], error) {
	args := m.Called(ctx, userID, p)
	return args.Get(0).(page.Page[service.OrderedProduct]), args.Error(1)
}

func (m *mockUserService) OrdersForUser(ctx context.Context, userID string) ([]orderaggregator.OrderData, error) {
	args := m.Called(ctx, userID)
	orders, _ := args.Get(0).([]orderaggregator.OrderData)
	return orders, args.Error(1)
}

type mockOrderItemsService struct {
	mock.Mock
}

func (m *mockOrderItemsService) OrderItems(ctx context.Context, orderID string, p page.Pageable) (page.Page[domain.OrderItem], error) {
	args := m.Called(ctx, orderID, p)
	return args.Get(0).(page.Page[domain.OrderItem]), args.Error(1)
}

type mockProductService struct {
	mock.Mock
}

func (m *mockProductService) GetByName(ctx context.Context, name string) (*domain.Product, error) {
	args := m.Called(ctx, name)
	product, _ := args.Get(0).(*domain.Product)
	return product, args.Error(1)
}

func (m *mockProductService) Export(ctx context.Context, req service.ExportRequest) ([]byte, error) {
	args := m.Called(ctx, req)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

type stubPinger struct {
	err error
}

func (p stubPinger) PingContext(context.Context) error {
	return p.err
}

type mockWishlistService struct {
	mock.Mock
}

func (m *mockWishlistService) ListByUser(ctx context.Context, userID string, p page.Pageable) (page.Page[domain.Wishlist], error) {
	args := m.Called(ctx, userID, p)
	return args.Get(0).(page.Page[domain.Wishlist]), args.Error(1)
}
