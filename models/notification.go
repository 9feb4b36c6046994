package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationType string

const (
	NotificationOrder    NotificationType = "Order"
	NotificationSystem   NotificationType = "System"
	NotificationPacking  NotificationType = "Packing"
	NotificationDelivery NotificationType = "Delivery"
	NotificationActivity NotificationType = "Activity"
)

// Notification is write-once except for the read flag.
type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	SenderID  primitive.ObjectID `bson:"senderId,omitempty" json:"senderId,omitempty"`
	Message   string             `bson:"message" json:"message"`
	Type      NotificationType   `bson:"type" json:"type"`
	OrderID   primitive.ObjectID `bson:"orderId,omitempty" json:"orderId,omitempty"`
	Read      bool               `bson:"read" json:"read"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
