package handlers

import (
	"net/http"
	"time"

	"github.com/farmdirect/backend-go/models"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (h *Handler) GetWishlist(c echo.Context) error {
	userID, ok := requesterID(c)
	if !ok {
		return unauthenticated(c)
	}

	var wishlist models.Wishlist
	err := h.wishlists().FindOne(c.Request().Context(), bson.M{"userId": userID}).Decode(&wishlist)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusOK, models.Wishlist{UserID: userID, ProductIDs: []primitive.ObjectID{}})
		}
		return errorJSON(c, http.StatusInternalServerError, "Failed to fetch wishlist")
	}

	return c.JSON(http.StatusOK, wishlist)
}

func (h *Handler) AddToWishlist(c echo.Context) error {
	userID, ok := requesterID(c)
	if !ok {
		return unauthenticated(c)
	}

	var req struct {
		ProductID string `json:"productId"`
	}
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request format")
	}

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid product ID")
	}

	update := bson.M{
		"$addToSet": bson.M{"productIds": productID},
		"$set":      bson.M{"updatedAt": time.Now()},
	}

	result := h.wishlists().FindOneAndUpdate(
		c.Request().Context(),
		bson.M{"userId": userID},
		update,
		options.FindOneAndUpdate().SetUpsert(true),
	)
	if result.Err() != nil && result.Err() != mongo.ErrNoDocuments {
		return errorJSON(c, http.StatusInternalServerError, "Failed to add item to wishlist")
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Item added to wishlist"})
}

func (h *Handler) RemoveFromWishlist(c echo.Context) error {
	userID, ok := requesterID(c)
	if !ok {
		return unauthenticated(c)
	}

	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid product ID")
	}

	update := bson.M{
		"$pull": bson.M{"productIds": productID},
		"$set":  bson.M{"updatedAt": time.Now()},
	}

	result, err := h.wishlists().UpdateOne(c.Request().Context(), bson.M{"userId": userID}, update)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to remove item")
	}
	if result.ModifiedCount == 0 {
		return errorJSON(c, http.StatusNotFound, "Item not found in wishlist")
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Item removed from wishlist"})
}
