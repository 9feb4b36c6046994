package store

import (
	"context"
	"fmt"
	"time"

	"github.com/farmdirect/backend-go/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OrderStoreMongo struct {
	collection *mongo.Collection
}

func NewOrderStore(db *mongo.Database) *OrderStoreMongo {
	return &OrderStoreMongo{collection: db.Collection("orders")}
}

func (s *OrderStoreMongo) Insert(ctx context.Context, order *models.Order) error {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	if _, err := s.collection.InsertOne(ctx, order); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

func (s *OrderStoreMongo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}
	return &order, nil
}

func (s *OrderStoreMongo) FindByBuyer(ctx context.Context, buyerID primitive.ObjectID) ([]models.Order, error) {
	return s.find(ctx, bson.M{"buyerId": buyerID})
}

func (s *OrderStoreMongo) FindByFarmer(ctx context.Context, farmerID primitive.ObjectID) ([]models.Order, error) {
	return s.find(ctx, bson.M{"items.farmerId": farmerID})
}

func (s *OrderStoreMongo) FindByProductIDs(ctx context.Context, productIDs []primitive.ObjectID) ([]models.Order, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}
	return s.find(ctx, bson.M{"items.productId": bson.M{"$in": productIDs}})
}

func (s *OrderStoreMongo) find(ctx context.Context, filter bson.M) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, nil
}

func (s *OrderStoreMongo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus) error {
	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"status": status, "updatedAt": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *OrderStoreMongo) UpdateItems(ctx context.Context, id primitive.ObjectID, items []models.OrderItem) error {
	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"items": items, "updatedAt": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("failed to update order items: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
