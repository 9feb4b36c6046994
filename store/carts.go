package store

import (
	"context"
	"fmt"
	"time"

	"github.com/farmdirect/backend-go/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type CartStoreMongo struct {
	collection *mongo.Collection
}

func NewCartStore(db *mongo.Database) *CartStoreMongo {
	return &CartStoreMongo{collection: db.Collection("carts")}
}

func (s *CartStoreMongo) Clear(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.collection.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$set": bson.M{"items": []models.CartItem{}, "updatedAt": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
