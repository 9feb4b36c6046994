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

// GetCart retrieves the user's cart
func (h *Handler) GetCart(c echo.Context) error {
	userID, ok := requesterID(c)
	if !ok {
		return unauthenticated(c)
	}

	var cart models.Cart
	err := h.carts().FindOne(c.Request().Context(), bson.M{"userId": userID}).Decode(&cart)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusOK, models.Cart{UserID: userID, Items: []models.CartItem{}})
		}
		return errorJSON(c, http.StatusInternalServerError, "Failed to fetch cart")
	}

	return c.JSON(http.StatusOK, cart)
}

func (h *Handler) AddToCart(c echo.Context) error {
	userID, ok := requesterID(c)
	if !ok {
		return unauthenticated(c)
	}

	var req struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request format")
	}

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid product ID")
	}
	if req.Quantity <= 0 {
		return errorJSON(c, http.StatusBadRequest, "Quantity must be positive")
	}

	ctx := c.Request().Context()

	count, err := h.products().CountDocuments(ctx, bson.M{"_id": productID})
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to check product")
	}
	if count == 0 {
		return errorJSON(c, http.StatusNotFound, "Product not found")
	}

	update := bson.M{
		"$push": bson.M{
			"items": bson.M{"productId": productID, "quantity": req.Quantity},
		},
		"$set": bson.M{"updatedAt": time.Now()},
	}

	result := h.carts().FindOneAndUpdate(
		ctx,
		bson.M{"userId": userID},
		update,
		options.FindOneAndUpdate().SetUpsert(true),
	)
	if result.Err() != nil && result.Err() != mongo.ErrNoDocuments {
		return errorJSON(c, http.StatusInternalServerError, "Failed to add item to cart")
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Item added to cart"})
}

// UpdateCartItemQuantity updates the quantity of an item in the cart
func (h *Handler) UpdateCartItemQuantity(c echo.Context) error {
	userID, ok := requesterID(c)
	if !ok {
		return unauthenticated(c)
	}

	var req struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request format")
	}

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid product ID")
	}

	update := bson.M{
		"$set": bson.M{
			"items.$[elem].quantity": req.Quantity,
			"updatedAt":              time.Now(),
		},
	}

	arrayFilters := options.ArrayFilters{
		Filters: []interface{}{
			bson.M{"elem.productId": productID},
		},
	}

	result, err := h.carts().UpdateOne(
		c.Request().Context(),
		bson.M{"userId": userID},
		update,
		options.Update().SetArrayFilters(arrayFilters),
	)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to update quantity")
	}
	if result.ModifiedCount == 0 {
		return errorJSON(c, http.StatusNotFound, "Item not found in cart")
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Quantity updated successfully"})
}

// RemoveFromCart removes an item from the cart
func (h *Handler) RemoveFromCart(c echo.Context) error {
	userID, ok := requesterID(c)
	if !ok {
		return unauthenticated(c)
	}

	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid product ID")
	}

	update := bson.M{
		"$pull": bson.M{"items": bson.M{"productId": productID}},
		"$set":  bson.M{"updatedAt": time.Now()},
	}

	result, err := h.carts().UpdateOne(c.Request().Context(), bson.M{"userId": userID}, update)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to remove item")
	}
	if result.ModifiedCount == 0 {
		return errorJSON(c, http.StatusNotFound, "Item not found in cart")
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Item removed from cart"})
}
