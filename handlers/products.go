package handlers

import (
	"net/http"
	"time"

	"github.com/farmdirect/backend-go/models"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetProducts is the public marketplace browse endpoint with optional
// category and name-search filters.
func (h *Handler) GetProducts(c echo.Context) error {
	filter := bson.M{}
	if category := c.QueryParam("category"); category != "" {
		filter["category"] = category
	}
	if search := c.QueryParam("search"); search != "" {
		filter["name"] = bson.M{"$regex": search, "$options": "i"}
	}

	ctx := c.Request().Context()
	cursor, err := h.products().Find(ctx, filter)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to fetch products")
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to decode products")
	}

	return c.JSON(http.StatusOK, products)
}

func (h *Handler) GetProduct(c echo.Context) error {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid product ID")
	}

	var product models.Product
	err = h.products().FindOne(c.Request().Context(), bson.M{"_id": objID}).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return errorJSON(c, http.StatusNotFound, "Product not found")
		}
		return errorJSON(c, http.StatusInternalServerError, "Failed to fetch product")
	}

	return c.JSON(http.StatusOK, product)
}

// CreateProduct requires an approved farmer profile.
func (h *Handler) CreateProduct(c echo.Context) error {
	userID, ok := requesterID(c)
	if !ok {
		return unauthenticated(c)
	}

	ctx := c.Request().Context()

	var profile models.FarmerProfile
	err := h.farmers().FindOne(ctx, bson.M{"userId": userID}).Decode(&profile)
	if err != nil || profile.Status != models.FarmerStatusApproved {
		return errorJSON(c, http.StatusForbidden, "An approved farmer profile is required to list products")
	}

	var product models.Product
	if err := c.Bind(&product); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request format")
	}
	if product.Name == "" || product.Price <= 0 {
		return errorJSON(c, http.StatusBadRequest, "Product name and a positive price are required")
	}

	product.ID = primitive.NewObjectID()
	product.FarmerID = userID
	if product.Location == "" {
		product.Location = profile.Location
		product.Latitude = profile.Latitude
		product.Longitude = profile.Longitude
	}
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()

	if _, err := h.products().InsertOne(ctx, product); err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to create product")
	}

	return c.JSON(http.StatusCreated, product)
}

func (h *Handler) UpdateProduct(c echo.Context) error {
	userID, ok := requesterID(c)
	if !ok {
		return unauthenticated(c)
	}

	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid product ID")
	}

	var req models.Product
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request format")
	}

	update := bson.M{"updatedAt": time.Now()}
	if req.Name != "" {
		update["name"] = req.Name
	}
	if req.Description != "" {
		update["description"] = req.Description
	}
	if req.Category != "" {
		update["category"] = req.Category
	}
	if req.Price > 0 {
		update["price"] = req.Price
	}
	if req.Unit != "" {
		update["unit"] = req.Unit
	}
	if req.Quantity > 0 {
		update["quantity"] = req.Quantity
	}
	if req.ImageURL != "" {
		update["imageUrl"] = req.ImageURL
	}

	result, err := h.products().UpdateOne(
		c.Request().Context(),
		bson.M{"_id": objID, "farmerId": userID},
		bson.M{"$set": update},
	)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to update product")
	}
	if result.MatchedCount == 0 {
		return errorJSON(c, http.StatusNotFound, "Product not found")
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Product updated"})
}

func (h *Handler) DeleteProduct(c echo.Context) error {
	userID, ok := requesterID(c)
	if !ok {
		return unauthenticated(c)
	}

	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid product ID")
	}

	result, err := h.products().DeleteOne(c.Request().Context(), bson.M{"_id": objID, "farmerId": userID})
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to delete product")
	}
	if result.DeletedCount == 0 {
		return errorJSON(c, http.StatusNotFound, "Product not found")
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Product deleted"})
}

func (h *Handler) GetMyProducts(c echo.Context) error {
	userID, ok := requesterID(c)
	if !ok {
		return unauthenticated(c)
	}

	ctx := c.Request().Context()
	cursor, err := h.products().Find(ctx, bson.M{"farmerId": userID})
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to fetch products")
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to decode products")
	}

	return c.JSON(http.StatusOK, products)
}
