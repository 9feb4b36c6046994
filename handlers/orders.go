package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/farmdirect/backend-go/models"
	"github.com/farmdirect/backend-go/services"
	"github.com/farmdirect/backend-go/store"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type createOrderRequest struct {
	Items           []orderItemRequest     `json:"items"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	Subtotal        float64                `json:"subtotal"`
	ShippingCharges float64                `json:"shippingCharges"`
	TotalAmount     float64                `json:"totalAmount"`
}

type orderItemRequest struct {
	ProductID string  `json:"productId"`
	FarmerID  string  `json:"farmerId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// CreateOrder places a cash-on-delivery order from the submitted line
// items and clears the buyer's cart. Notification fan-out failures are
// reported in the response but never fail the order.
func (h *Handler) CreateOrder(c echo.Context) error {
	buyerID, ok := requesterID(c)
	if !ok {
		return unauthenticated(c)
	}

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request format")
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			return errorJSON(c, http.StatusBadRequest, "Invalid product ID in line items")
		}
		farmerID, err := primitive.ObjectIDFromHex(item.FarmerID)
		if err != nil {
			return errorJSON(c, http.StatusBadRequest, "Invalid farmer ID in line items")
		}
		items = append(items, models.OrderItem{
			ProductID: productID,
			FarmerID:  farmerID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	order, results, err := h.orders.CreateOrder(c.Request().Context(), buyerID, services.CreateOrderInput{
		Items:           items,
		ShippingAddress: req.ShippingAddress,
		Subtotal:        req.Subtotal,
		ShippingCharges: req.ShippingCharges,
		TotalAmount:     req.TotalAmount,
	})
	if err != nil {
		if errors.Is(err, services.ErrEmptyItems) || errors.Is(err, services.ErrInvalidItem) {
			return errorJSON(c, http.StatusBadRequest, err.Error())
		}
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}

	response := map[string]interface{}{"order": order}
	if failed := services.FailedCount(results); failed > 0 {
		response["warning"] = fmt.Sprintf("%d of %d notifications could not be delivered", failed, len(results))
	}

	return c.JSON(http.StatusCreated, response)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus sets a new lifecycle status and notifies the buyer
// and the farmers on the order. Any known status value is accepted.
func (h *Handler) UpdateOrderStatus(c echo.Context) error {
	if _, ok := requesterID(c); !ok {
		return unauthenticated(c)
	}

	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid order ID")
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request format")
	}

	order, results, err := h.orders.UpdateStatus(c.Request().Context(), orderID, models.OrderStatus(req.Status))
	if err != nil {
		switch err {
		case services.ErrUnknownStatus:
			return errorJSON(c, http.StatusBadRequest, "Unknown order status")
		case store.ErrNotFound:
			return errorJSON(c, http.StatusNotFound, "Order not found")
		default:
			return errorJSON(c, http.StatusInternalServerError, err.Error())
		}
	}

	response := map[string]interface{}{"order": order}
	if failed := services.FailedCount(results); failed > 0 {
		response["warning"] = fmt.Sprintf("%d of %d notifications could not be delivered", failed, len(results))
	}

	return c.JSON(http.StatusOK, response)
}

func (h *Handler) GetMyOrders(c echo.Context) error {
	buyerID, ok := requesterID(c)
	if !ok {
		return unauthenticated(c)
	}

	orders, err := h.orders.OrdersForBuyer(c.Request().Context(), buyerID)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to fetch orders")
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *Handler) GetFarmerOrders(c echo.Context) error {
	farmerID, ok := requesterID(c)
	if !ok {
		return unauthenticated(c)
	}

	orders, err := h.orders.OrdersForFarmer(c.Request().Context(), farmerID)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "Failed to fetch orders")
	}

	return c.JSON(http.StatusOK, orders)
}

// GetOrder returns one order to its buyer, an involved farmer, or an
// admin.
func (h *Handler) GetOrder(c echo.Context) error {
	userID, ok := requesterID(c)
	if !ok {
		return unauthenticated(c)
	}

	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid order ID")
	}

	order, err := h.orders.GetOrder(c.Request().Context(), orderID)
	if err != nil {
		if err == store.ErrNotFound {
			return errorJSON(c, http.StatusNotFound, "Order not found")
		}
		return errorJSON(c, http.StatusInternalServerError, "Failed to fetch order")
	}

	role, _ := c.Get("role").(models.Role)
	if role != models.RoleAdmin && order.BuyerID != userID && !orderInvolvesFarmer(order, userID) {
		return errorJSON(c, http.StatusForbidden, "Not allowed to view this order")
	}

	return c.JSON(http.StatusOK, order)
}

func orderInvolvesFarmer(order *models.Order, farmerID primitive.ObjectID) bool {
	for _, item := range order.Items {
		if item.FarmerID == farmerID {
			return true
		}
	}
	return false
}
