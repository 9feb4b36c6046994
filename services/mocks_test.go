package services

import (
	"context"

	"github.com/farmdirect/backend-go/models"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockOrderStore struct {
	mock.Mock
}

func (m *MockOrderStore) Insert(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderStore) FindByBuyer(ctx context.Context, buyerID primitive.ObjectID) ([]models.Order, error) {
	args := m.Called(ctx, buyerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderStore) FindByFarmer(ctx context.Context, farmerID primitive.ObjectID) ([]models.Order, error) {
	args := m.Called(ctx, farmerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderStore) FindByProductIDs(ctx context.Context, productIDs []primitive.ObjectID) ([]models.Order, error) {
	args := m.Called(ctx, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockOrderStore) UpdateItems(ctx context.Context, id primitive.ObjectID, items []models.OrderItem) error {
	args := m.Called(ctx, id, items)
	return args.Error(0)
}

type MockNotificationStore struct {
	mock.Mock
}

func (m *MockNotificationStore) Insert(ctx context.Context, n *models.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationStore) ListForUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.Notification, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *MockNotificationStore) ExistsForOrder(ctx context.Context, userID, orderID primitive.ObjectID, typ models.NotificationType) (bool, error) {
	args := m.Called(ctx, userID, orderID, typ)
	return args.Bool(0), args.Error(1)
}

func (m *MockNotificationStore) MarkRead(ctx context.Context, id, userID primitive.ObjectID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

type MockProductStore struct {
	mock.Mock
}

func (m *MockProductStore) IDsByFarmer(ctx context.Context, farmerID primitive.ObjectID) ([]primitive.ObjectID, error) {
	args := m.Called(ctx, farmerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]primitive.ObjectID), args.Error(1)
}

type MockCartStore struct {
	mock.Mock
}

func (m *MockCartStore) Clear(ctx context.Context, userID primitive.ObjectID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func newTestService() (*OrderService, *MockOrderStore, *MockNotificationStore, *MockProductStore, *MockCartStore) {
	orders := new(MockOrderStore)
	notifications := new(MockNotificationStore)
	products := new(MockProductStore)
	carts := new(MockCartStore)
	return NewOrderService(orders, notifications, products, carts), orders, notifications, products, carts
}
