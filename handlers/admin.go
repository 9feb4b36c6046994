package handlers

import (
	"net/http"

	"github.com/farmdirect/backend-go/models"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (h *Handler) AdminListUsers(c echo.Context) error {
	ctx := c.Request().Context()

	opts := options.Find().SetProjection(bson.M{"password": 0})
	cursor, err := h.users().Find(ctx, bson.M{}, opts)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to fetch users")
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to decode users")
	}

	return c.JSON(http.StatusOK, users)
}

func (h *Handler) AdminListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := h.ordersColl().Find(ctx, bson.M{}, opts)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to fetch orders")
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to decode orders")
	}

	return c.JSON(http.StatusOK, orders)
}
