package handlers

import (
	"net/http"

	"github.com/farmdirect/backend-go/services"
	"github.com/farmdirect/backend-go/store"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Handler carries the injected database handle and the order service.
// CRUD endpoints talk to collections directly; the order/notification
// endpoints go through the service so the fan-out and reconciliation
// logic stays testable.
type Handler struct {
	db     *mongo.Database
	orders *services.OrderService
}

func New(db *mongo.Database) *Handler {
	svc := services.NewOrderService(
		store.NewOrderStore(db),
		store.NewNotificationStore(db),
		store.NewProductStore(db),
		store.NewCartStore(db),
	)
	return &Handler{db: db, orders: svc}
}

func (h *Handler) users() *mongo.Collection         { return h.db.Collection("users") }
func (h *Handler) farmers() *mongo.Collection       { return h.db.Collection("farmers") }
func (h *Handler) products() *mongo.Collection      { return h.db.Collection("products") }
func (h *Handler) carts() *mongo.Collection         { return h.db.Collection("carts") }
func (h *Handler) wishlists() *mongo.Collection     { return h.db.Collection("wishlists") }
func (h *Handler) ordersColl() *mongo.Collection    { return h.db.Collection("orders") }
func (h *Handler) notifications() *mongo.Collection { return h.db.Collection("notifications") }

// requesterID pulls the authenticated user set by the auth middleware.
func requesterID(c echo.Context) (primitive.ObjectID, bool) {
	id, ok := c.Get("userID").(primitive.ObjectID)
	return id, ok
}

func errorJSON(c echo.Context, code int, message string) error {
	return c.JSON(code, map[string]string{"message": message})
}

func unauthenticated(c echo.Context) error {
	return errorJSON(c, http.StatusUnauthorized, "User not authenticated")
}
