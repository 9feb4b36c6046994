// Package services holds the order lifecycle logic: creation with
// notification fan-out, status transitions, and the reconciliation scan
// that runs on notification fetch for farmers.
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/farmdirect/backend-go/models"
	"github.com/farmdirect/backend-go/store"
	"github.com/farmdirect/backend-go/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrEmptyItems    = errors.New("order has no line items")
	ErrInvalidItem   = errors.New("invalid line item")
	ErrUnknownStatus = errors.New("unknown order status")
)

// FanoutResult records one notification attempt during fan-out. Failures
// are collected rather than aborting the loop; the primary write has
// already succeeded by the time fan-out runs.
type FanoutResult struct {
	Recipient primitive.ObjectID
	Type      models.NotificationType
	Err       error
}

// FailedCount returns how many attempts in results carry an error.
func FailedCount(results []FanoutResult) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

type OrderService struct {
	orders        store.OrderStore
	notifications store.NotificationStore
	products      store.ProductStore
	carts         store.CartStore
}

func NewOrderService(orders store.OrderStore, notifications store.NotificationStore, products store.ProductStore, carts store.CartStore) *OrderService {
	return &OrderService{
		orders:        orders,
		notifications: notifications,
		products:      products,
		carts:         carts,
	}
}

// CreateOrderInput carries the client-computed order figures. Totals are
// stored as submitted; they are not recomputed or checked against the
// line items.
type CreateOrderInput struct {
	Items           []models.OrderItem
	ShippingAddress models.ShippingAddress
	Subtotal        float64
	ShippingCharges float64
	TotalAmount     float64
}

// CreateOrder persists the order, clears the buyer's cart and emits two
// notifications per distinct farmer in the line items. Cart clearing and
// notification failures never fail the order itself.
func (s *OrderService) CreateOrder(ctx context.Context, buyerID primitive.ObjectID, input CreateOrderInput) (*models.Order, []FanoutResult, error) {
	if len(input.Items) == 0 {
		return nil, nil, ErrEmptyItems
	}
	for i, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, nil, fmt.Errorf("%w: item %d has invalid quantity", ErrInvalidItem, i)
		}
	}

	now := time.Now()
	order := &models.Order{
		ID:              primitive.NewObjectID(),
		OrderNumber:     utils.NewOrderNumber(),
		BuyerID:         buyerID,
		Items:           input.Items,
		ShippingAddress: input.ShippingAddress,
		Subtotal:        input.Subtotal,
		ShippingCharges: input.ShippingCharges,
		TotalAmount:     input.TotalAmount,
		PaymentMethod:   models.PaymentCashOnDelivery,
		Status:          models.OrderStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.orders.Insert(ctx, order); err != nil {
		return nil, nil, err
	}

	if err := s.carts.Clear(ctx, buyerID); err != nil {
		log.Printf("Failed to clear cart after order creation: %v", err)
	}

	var results []FanoutResult
	for _, farmerID := range order.DistinctFarmers() {
		results = append(results, s.notify(ctx, farmerID, buyerID, order, models.NotificationOrder,
			fmt.Sprintf("You have received a new order %s.", order.OrderNumber)))
		results = append(results, s.notify(ctx, farmerID, buyerID, order, models.NotificationActivity,
			fmt.Sprintf("Order %s was placed including your products.", order.OrderNumber)))
	}

	return order, results, nil
}

// UpdateStatus overwrites the order's status and notifies the buyer and
// each distinct farmer. The target only has to be a known status value;
// transitions are not checked against the lifecycle order.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID primitive.ObjectID, status models.OrderStatus) (*models.Order, []FanoutResult, error) {
	if !models.KnownStatus(status) {
		return nil, nil, ErrUnknownStatus
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}

	previous := order.Status
	if err := s.orders.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, nil, err
	}
	order.Status = status
	order.UpdatedAt = time.Now()

	var results []FanoutResult
	results = append(results, s.notify(ctx, order.BuyerID, primitive.NilObjectID, order,
		buyerStatusType(status), buyerStatusMessage(order.OrderNumber, status)))

	for _, farmerID := range order.DistinctFarmers() {
		results = append(results, s.notify(ctx, farmerID, primitive.NilObjectID, order, models.NotificationActivity,
			fmt.Sprintf("Order %s status changed from %s to %s.", order.OrderNumber, previous, status)))
	}

	return order, results, nil
}

// GetOrder loads a single order.
func (s *OrderService) GetOrder(ctx context.Context, orderID primitive.ObjectID) (*models.Order, error) {
	return s.orders.FindByID(ctx, orderID)
}

// OrdersForBuyer lists the buyer's orders, newest first.
func (s *OrderService) OrdersForBuyer(ctx context.Context, buyerID primitive.ObjectID) ([]models.Order, error) {
	return s.orders.FindByBuyer(ctx, buyerID)
}

// OrdersForFarmer lists orders containing line items attributed to the
// farmer.
func (s *OrderService) OrdersForFarmer(ctx context.Context, farmerID primitive.ObjectID) ([]models.Order, error) {
	return s.orders.FindByFarmer(ctx, farmerID)
}

func (s *OrderService) notify(ctx context.Context, recipient, sender primitive.ObjectID, order *models.Order, typ models.NotificationType, message string) FanoutResult {
	n := &models.Notification{
		UserID:    recipient,
		SenderID:  sender,
		Message:   message,
		Type:      typ,
		OrderID:   order.ID,
		CreatedAt: time.Now(),
	}
	err := s.notifications.Insert(ctx, n)
	if err != nil {
		log.Printf("Failed to notify %s for order %s: %v", recipient.Hex(), order.OrderNumber, err)
	}
	return FanoutResult{Recipient: recipient, Type: typ, Err: err}
}

func buyerStatusMessage(orderNumber string, status models.OrderStatus) string {
	if status == models.OrderStatusPacked {
		return fmt.Sprintf("Your order %s has been packed and sent to the delivery agent.", orderNumber)
	}
	return fmt.Sprintf("Your order %s status has been updated to %s.", orderNumber, status)
}

func buyerStatusType(status models.OrderStatus) models.NotificationType {
	switch status {
	case models.OrderStatusPacked:
		return models.NotificationPacking
	case models.OrderStatusShipped, models.OrderStatusDelivered:
		return models.NotificationDelivery
	default:
		return models.NotificationOrder
	}
}
