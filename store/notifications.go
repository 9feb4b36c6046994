package store

import (
	"context"
	"fmt"

	"github.com/farmdirect/backend-go/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NotificationStoreMongo struct {
	collection *mongo.Collection
}

func NewNotificationStore(db *mongo.Database) *NotificationStoreMongo {
	return &NotificationStoreMongo{collection: db.Collection("notifications")}
}

func (s *NotificationStoreMongo) Insert(ctx context.Context, n *models.Notification) error {
	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}
	if _, err := s.collection.InsertOne(ctx, n); err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

func (s *NotificationStoreMongo) ListForUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.Notification, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)
	cursor, err := s.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %w", err)
	}
	return notifications, nil
}

func (s *NotificationStoreMongo) ExistsForOrder(ctx context.Context, userID, orderID primitive.ObjectID, typ models.NotificationType) (bool, error) {
	count, err := s.collection.CountDocuments(ctx, bson.M{
		"userId":  userID,
		"orderId": orderID,
		"type":    typ,
	}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check notification existence: %w", err)
	}
	return count > 0, nil
}

func (s *NotificationStoreMongo) MarkRead(ctx context.Context, id, userID primitive.ObjectID) error {
	result, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": id, "userId": userID},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
