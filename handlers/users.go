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

func (h *Handler) GetUserProfile(c echo.Context) error {
	userID, ok := requesterID(c)
	if !ok {
		return unauthenticated(c)
	}

	var user models.User
	err := h.users().FindOne(c.Request().Context(), bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return errorJSON(c, http.StatusNotFound, "User not found")
		}
		return errorJSON(c, http.StatusInternalServerError, "Failed to fetch user")
	}

	return c.JSON(http.StatusOK, user)
}

func (h *Handler) UpdateUserProfile(c echo.Context) error {
	userID, ok := requesterID(c)
	if !ok {
		return unauthenticated(c)
	}

	var req struct {
		Name        string `json:"name"`
		PhoneNumber string `json:"phoneNumber"`
	}
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request format")
	}

	update := bson.M{"updatedAt": time.Now()}
	if req.Name != "" {
		update["name"] = req.Name
	}
	if req.PhoneNumber != "" {
		update["phoneNumber"] = req.PhoneNumber
	}

	result := h.users().FindOneAndUpdate(
		c.Request().Context(),
		bson.M{"_id": userID},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var user models.User
	if err := result.Decode(&user); err != nil {
		return errorJSON(c, http.StatusNotFound, "User not found")
	}

	return c.JSON(http.StatusOK, user)
}

func (h *Handler) GetUserAddresses(c echo.Context) error {
	userID, ok := requesterID(c)
	if !ok {
		return unauthenticated(c)
	}

	var user models.User
	err := h.users().FindOne(c.Request().Context(), bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		return errorJSON(c, http.StatusNotFound, "User not found")
	}

	return c.JSON(http.StatusOK, user.Addresses)
}

func (h *Handler) AddUserAddress(c echo.Context) error {
	userID, ok := requesterID(c)
	if !ok {
		return unauthenticated(c)
	}

	var address models.Address
	if err := c.Bind(&address); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request format")
	}
	address.ID = primitive.NewObjectID()

	_, err := h.users().UpdateOne(
		c.Request().Context(),
		bson.M{"_id": userID},
		bson.M{
			"$push": bson.M{"addresses": address},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to add address")
	}

	return c.JSON(http.StatusCreated, address)
}

func (h *Handler) UpdateUserAddress(c echo.Context) error {
	userID, ok := requesterID(c)
	if !ok {
		return unauthenticated(c)
	}

	addressID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid address ID")
	}

	var address models.Address
	if err := c.Bind(&address); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request format")
	}
	address.ID = addressID

	result, err := h.users().UpdateOne(
		c.Request().Context(),
		bson.M{"_id": userID, "addresses._id": addressID},
		bson.M{
			"$set": bson.M{
				"addresses.$": address,
				"updatedAt":   time.Now(),
			},
		},
	)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to update address")
	}
	if result.MatchedCount == 0 {
		return errorJSON(c, http.StatusNotFound, "Address not found")
	}

	return c.JSON(http.StatusOK, address)
}

func (h *Handler) DeleteUserAddress(c echo.Context) error {
	userID, ok := requesterID(c)
	if !ok {
		return unauthenticated(c)
	}

	addressID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid address ID")
	}

	result, err := h.users().UpdateOne(
		c.Request().Context(),
		bson.M{"_id": userID},
		bson.M{
			"$pull": bson.M{"addresses": bson.M{"_id": addressID}},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to delete address")
	}
	if result.ModifiedCount == 0 {
		return errorJSON(c, http.StatusNotFound, "Address not found")
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Address deleted"})
}
