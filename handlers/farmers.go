package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/farmdirect/backend-go/models"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type farmerProfileRequest struct {
	FarmName  string  `json:"farmName"`
	Bio       string  `json:"bio"`
	Location  string  `json:"location"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CreateFarmerProfile submits an onboarding profile. Rejected applicants
// may resubmit; a pending or approved profile blocks resubmission.
func (h *Handler) CreateFarmerProfile(c echo.Context) error {
	userID, ok := requesterID(c)
	if !ok {
		return unauthenticated(c)
	}

	var req farmerProfileRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request format")
	}
	if req.FarmName == "" || req.Location == "" {
		return errorJSON(c, http.StatusBadRequest, "Farm name and location are required")
	}

	ctx := c.Request().Context()

	var existing models.FarmerProfile
	err := h.farmers().FindOne(ctx, bson.M{"userId": userID}).Decode(&existing)
	if err == nil && existing.Status != models.FarmerStatusRejected {
		return errorJSON(c, http.StatusConflict, "Farmer profile already submitted")
	}
	if err != nil && err != mongo.ErrNoDocuments {
		return errorJSON(c, http.StatusInternalServerError, "Failed to check existing profile")
	}

	profile := models.FarmerProfile{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		FarmName:  req.FarmName,
		Bio:       req.Bio,
		Location:  req.Location,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Status:    models.FarmerStatusPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if existing.ID.IsZero() {
		if _, err := h.farmers().InsertOne(ctx, profile); err != nil {
			return errorJSON(c, http.StatusInternalServerError, "Failed to create farmer profile")
		}
	} else {
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
		if _, err := h.farmers().ReplaceOne(ctx, bson.M{"_id": existing.ID}, profile); err != nil {
			return errorJSON(c, http.StatusInternalServerError, "Failed to resubmit farmer profile")
		}
	}

	return c.JSON(http.StatusCreated, profile)
}

func (h *Handler) GetMyFarmerProfile(c echo.Context) error {
	userID, ok := requesterID(c)
	if !ok {
		return unauthenticated(c)
	}

	var profile models.FarmerProfile
	err := h.farmers().FindOne(c.Request().Context(), bson.M{"userId": userID}).Decode(&profile)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return errorJSON(c, http.StatusNotFound, "Farmer profile not found")
		}
		return errorJSON(c, http.StatusInternalServerError, "Failed to fetch farmer profile")
	}

	return c.JSON(http.StatusOK, profile)
}

// ListFarmers is the admin moderation queue, optionally filtered by
// status.
func (h *Handler) ListFarmers(c echo.Context) error {
	filter := bson.M{}
	if status := c.QueryParam("status"); status != "" {
		filter["status"] = status
	}

	ctx := c.Request().Context()
	cursor, err := h.farmers().Find(ctx, filter)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to fetch farmers")
	}
	defer cursor.Close(ctx)

	var profiles []models.FarmerProfile
	if err := cursor.All(ctx, &profiles); err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to decode farmers")
	}

	return c.JSON(http.StatusOK, profiles)
}

func (h *Handler) ApproveFarmer(c echo.Context) error {
	return h.moderateFarmer(c, models.FarmerStatusApproved, "Your farmer profile has been approved. You can now list products.")
}

func (h *Handler) RejectFarmer(c echo.Context) error {
	return h.moderateFarmer(c, models.FarmerStatusRejected, "Your farmer profile has been rejected.")
}

func (h *Handler) moderateFarmer(c echo.Context, status models.FarmerStatus, message string) error {
	adminID, ok := requesterID(c)
	if !ok {
		return unauthenticated(c)
	}

	profileID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid farmer ID")
	}

	var req struct {
		Reason string `json:"reason"`
	}
	_ = c.Bind(&req)

	update := bson.M{"status": status, "updatedAt": time.Now()}
	if status == models.FarmerStatusRejected && req.Reason != "" {
		update["rejectionReason"] = req.Reason
	}

	ctx := c.Request().Context()
	var profile models.FarmerProfile
	err = h.farmers().FindOneAndUpdate(
		ctx,
		bson.M{"_id": profileID},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&profile)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return errorJSON(c, http.StatusNotFound, "Farmer profile not found")
		}
		return errorJSON(c, http.StatusInternalServerError, "Failed to update farmer profile")
	}

	notification := models.Notification{
		ID:        primitive.NewObjectID(),
		UserID:    profile.UserID,
		SenderID:  adminID,
		Message:   message,
		Type:      models.NotificationSystem,
		CreatedAt: time.Now(),
	}
	if _, err := h.notifications().InsertOne(ctx, notification); err != nil {
		log.Printf("Failed to notify farmer %s of moderation result: %v", profile.UserID.Hex(), err)
	}

	return c.JSON(http.StatusOK, profile)
}
