package services

import (
	"context"
	"testing"
	"time"

	"github.com/farmdirect/backend-go/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestListNotifications_ConsumerSkipsReconciliation(t *testing.T) {
	svc, _, notifications, products, _ := newTestService()
	ctx := context.Background()

	userID := primitive.NewObjectID()
	existing := []models.Notification{
		{ID: primitive.NewObjectID(), UserID: userID, Type: models.NotificationOrder},
	}
	notifications.On("ListForUser", mock.Anything, userID, int64(50)).Return(existing, nil).Once()

	list, err := svc.ListNotifications(ctx, userID, models.RoleConsumer)

	assert.NoError(t, err)
	assert.Equal(t, existing, list)
	products.AssertNotCalled(t, "IDsByFarmer", mock.Anything, mock.Anything)
	notifications.AssertExpectations(t)
}

func TestListNotifications_FarmerWithNoProducts(t *testing.T) {
	svc, orders, notifications, products, _ := newTestService()
	ctx := context.Background()

	farmerID := primitive.NewObjectID()
	notifications.On("ListForUser", mock.Anything, farmerID, int64(50)).Return([]models.Notification{}, nil).Once()
	products.On("IDsByFarmer", mock.Anything, farmerID).Return([]primitive.ObjectID{}, nil)

	list, err := svc.ListNotifications(ctx, farmerID, models.RoleFarmer)

	assert.NoError(t, err)
	assert.Empty(t, list)
	orders.AssertNotCalled(t, "FindByProductIDs", mock.Anything, mock.Anything)
}

func TestReconcile_RepairsStaleFarmerAttribution(t *testing.T) {
	svc, orders, notifications, products, _ := newTestService()
	ctx := context.Background()

	farmerID := primitive.NewObjectID()
	staleFarmer := primitive.NewObjectID()
	productID := primitive.NewObjectID()
	otherProduct := primitive.NewObjectID()
	otherFarmer := primitive.NewObjectID()

	order := models.Order{
		ID:          primitive.NewObjectID(),
		OrderNumber: "FD-STALE001",
		Status:      models.OrderStatusPending,
		CreatedAt:   time.Now().Add(-48 * time.Hour),
		Items: []models.OrderItem{
			// Attribution drifted: the item names a different farmer than
			// the product's real owner.
			{ProductID: productID, FarmerID: staleFarmer, Quantity: 2, UnitPrice: 15},
			// Someone else's line item must be left untouched.
			{ProductID: otherProduct, FarmerID: otherFarmer, Quantity: 1, UnitPrice: 5},
		},
	}

	notifications.On("ListForUser", mock.Anything, farmerID, int64(50)).Return([]models.Notification{}, nil).Once()
	products.On("IDsByFarmer", mock.Anything, farmerID).Return([]primitive.ObjectID{productID}, nil)
	orders.On("FindByProductIDs", mock.Anything, []primitive.ObjectID{productID}).Return([]models.Order{order}, nil)

	orders.On("UpdateItems", mock.Anything, order.ID, mock.Anything).Return(nil).
		Run(func(args mock.Arguments) {
			items := args.Get(2).([]models.OrderItem)
			assert.Equal(t, farmerID, items[0].FarmerID)
			assert.Equal(t, otherFarmer, items[1].FarmerID)
		})

	notifications.On("ExistsForOrder", mock.Anything, farmerID, order.ID, models.NotificationActivity).Return(true, nil)
	notifications.On("ExistsForOrder", mock.Anything, farmerID, order.ID, models.NotificationOrder).Return(true, nil)

	list, err := svc.ListNotifications(ctx, farmerID, models.RoleFarmer)

	assert.NoError(t, err)
	assert.Empty(t, list)
	orders.AssertExpectations(t)
	// Nothing synthesized, so no second fetch and no inserts.
	notifications.AssertNumberOfCalls(t, "ListForUser", 1)
	notifications.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestReconcile_BackfillsMissingNotifications(t *testing.T) {
	svc, orders, notifications, products, _ := newTestService()
	ctx := context.Background()

	farmerID := primitive.NewObjectID()
	productID := primitive.NewObjectID()
	createdAt := time.Now().Add(-72 * time.Hour).Truncate(time.Millisecond)

	order := models.Order{
		ID:          primitive.NewObjectID(),
		OrderNumber: "FD-BACKFILL",
		Status:      models.OrderStatusPending,
		CreatedAt:   createdAt,
		Items: []models.OrderItem{
			{ProductID: productID, FarmerID: farmerID, Quantity: 1, UnitPrice: 25},
		},
	}

	baseline := []models.Notification{}
	refreshed := []models.Notification{
		{UserID: farmerID, OrderID: order.ID, Type: models.NotificationActivity, CreatedAt: createdAt},
		{UserID: farmerID, OrderID: order.ID, Type: models.NotificationOrder, CreatedAt: createdAt},
	}

	notifications.On("ListForUser", mock.Anything, farmerID, int64(50)).Return(baseline, nil).Once()
	products.On("IDsByFarmer", mock.Anything, farmerID).Return([]primitive.ObjectID{productID}, nil)
	orders.On("FindByProductIDs", mock.Anything, []primitive.ObjectID{productID}).Return([]models.Order{order}, nil)

	notifications.On("ExistsForOrder", mock.Anything, farmerID, order.ID, models.NotificationActivity).Return(false, nil)
	notifications.On("ExistsForOrder", mock.Anything, farmerID, order.ID, models.NotificationOrder).Return(false, nil)

	var synthesized []models.Notification
	notifications.On("Insert", mock.Anything, mock.AnythingOfType("*models.Notification")).Return(nil).
		Run(func(args mock.Arguments) {
			synthesized = append(synthesized, *args.Get(1).(*models.Notification))
		})

	// Something was synthesized, so the list is fetched again.
	notifications.On("ListForUser", mock.Anything, farmerID, int64(50)).Return(refreshed, nil).Once()

	list, err := svc.ListNotifications(ctx, farmerID, models.RoleFarmer)

	assert.NoError(t, err)
	assert.Equal(t, refreshed, list)

	assert.Len(t, synthesized, 2)
	for _, n := range synthesized {
		assert.Equal(t, farmerID, n.UserID)
		assert.Equal(t, order.ID, n.OrderID)
		// Backfilled entries are dated to the order, not to now.
		assert.Equal(t, createdAt, n.CreatedAt)
	}
	assert.Equal(t, models.NotificationActivity, synthesized[0].Type)
	assert.Equal(t, models.NotificationOrder, synthesized[1].Type)

	// Attribution was already correct, so no repair write.
	orders.AssertNotCalled(t, "UpdateItems", mock.Anything, mock.Anything, mock.Anything)
}

func TestReconcile_BackfillsOnlyTheMissingType(t *testing.T) {
	svc, orders, notifications, products, _ := newTestService()
	ctx := context.Background()

	farmerID := primitive.NewObjectID()
	productID := primitive.NewObjectID()
	order := models.Order{
		ID:        primitive.NewObjectID(),
		CreatedAt: time.Now().Add(-24 * time.Hour),
		Items: []models.OrderItem{
			{ProductID: productID, FarmerID: farmerID, Quantity: 1, UnitPrice: 10},
		},
	}

	notifications.On("ListForUser", mock.Anything, farmerID, int64(50)).Return([]models.Notification{}, nil)
	products.On("IDsByFarmer", mock.Anything, farmerID).Return([]primitive.ObjectID{productID}, nil)
	orders.On("FindByProductIDs", mock.Anything, mock.Anything).Return([]models.Order{order}, nil)

	notifications.On("ExistsForOrder", mock.Anything, farmerID, order.ID, models.NotificationActivity).Return(true, nil)
	notifications.On("ExistsForOrder", mock.Anything, farmerID, order.ID, models.NotificationOrder).Return(false, nil)

	notifications.On("Insert", mock.Anything, mock.MatchedBy(func(n *models.Notification) bool {
		return n.Type == models.NotificationOrder
	})).Return(nil).Once()

	_, err := svc.ListNotifications(ctx, farmerID, models.RoleFarmer)

	assert.NoError(t, err)
	notifications.AssertExpectations(t)
	notifications.AssertNumberOfCalls(t, "Insert", 1)
}

func TestReconcile_IdempotentOnConsistentData(t *testing.T) {
	svc, orders, notifications, products, _ := newTestService()
	ctx := context.Background()

	farmerID := primitive.NewObjectID()
	productID := primitive.NewObjectID()
	order := models.Order{
		ID:        primitive.NewObjectID(),
		CreatedAt: time.Now().Add(-24 * time.Hour),
		Items: []models.OrderItem{
			{ProductID: productID, FarmerID: farmerID, Quantity: 1, UnitPrice: 10},
		},
	}
	existing := []models.Notification{
		{UserID: farmerID, OrderID: order.ID, Type: models.NotificationActivity},
		{UserID: farmerID, OrderID: order.ID, Type: models.NotificationOrder},
	}

	notifications.On("ListForUser", mock.Anything, farmerID, int64(50)).Return(existing, nil)
	products.On("IDsByFarmer", mock.Anything, farmerID).Return([]primitive.ObjectID{productID}, nil)
	orders.On("FindByProductIDs", mock.Anything, mock.Anything).Return([]models.Order{order}, nil)
	notifications.On("ExistsForOrder", mock.Anything, farmerID, order.ID, mock.Anything).Return(true, nil)

	first, err := svc.ListNotifications(ctx, farmerID, models.RoleFarmer)
	assert.NoError(t, err)
	second, err := svc.ListNotifications(ctx, farmerID, models.RoleFarmer)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
	orders.AssertNotCalled(t, "UpdateItems", mock.Anything, mock.Anything, mock.Anything)
	notifications.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	// One baseline fetch per invocation, never a refresh.
	notifications.AssertNumberOfCalls(t, "ListForUser", 2)
}

func TestReconcile_ScanFailureStillServesBaseline(t *testing.T) {
	svc, _, notifications, products, _ := newTestService()
	ctx := context.Background()

	farmerID := primitive.NewObjectID()
	baseline := []models.Notification{
		{ID: primitive.NewObjectID(), UserID: farmerID, Type: models.NotificationSystem},
	}

	notifications.On("ListForUser", mock.Anything, farmerID, int64(50)).Return(baseline, nil).Once()
	products.On("IDsByFarmer", mock.Anything, farmerID).Return(nil, assert.AnError)

	list, err := svc.ListNotifications(ctx, farmerID, models.RoleFarmer)

	assert.NoError(t, err)
	assert.Equal(t, baseline, list)
}
