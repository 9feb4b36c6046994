// Package store holds the persistence interfaces used by the order and
// notification services, with MongoDB implementations alongside. Services
// depend on the interfaces so their logic is testable without a database.
package store

import (
	"context"
	"errors"

	"github.com/farmdirect/backend-go/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned when a lookup matches no document.
var ErrNotFound = errors.New("not found")

type OrderStore interface {
	Insert(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	FindByBuyer(ctx context.Context, buyerID primitive.ObjectID) ([]models.Order, error)
	FindByFarmer(ctx context.Context, farmerID primitive.ObjectID) ([]models.Order, error)
	// FindByProductIDs matches orders containing at least one line item
	// referencing any of the given products, regardless of the farmer
	// recorded on that item.
	FindByProductIDs(ctx context.Context, productIDs []primitive.ObjectID) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) error
	UpdateItems(ctx context.Context, id primitive.ObjectID, items []models.OrderItem) error
}

type NotificationStore interface {
	Insert(ctx context.Context, n *models.Notification) error
	// ListForUser returns the most recent notifications, newest first.
	ListForUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.Notification, error)
	ExistsForOrder(ctx context.Context, userID, orderID primitive.ObjectID, typ models.NotificationType) (bool, error)
	MarkRead(ctx context.Context, id, userID primitive.ObjectID) error
}

type ProductStore interface {
	IDsByFarmer(ctx context.Context, farmerID primitive.ObjectID) ([]primitive.ObjectID, error)
}

type CartStore interface {
	Clear(ctx context.Context, userID primitive.ObjectID) error
}
