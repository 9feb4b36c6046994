package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusConfirmed OrderStatus = "Confirmed"
	OrderStatusPacked    OrderStatus = "Packed"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// KnownStatus reports whether s is one of the recognised lifecycle values.
// Transitions between known values are not otherwise restricted.
func KnownStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPacked,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderItem records the farmer attribution at order-creation time. The
// farmer reference is a denormalized copy of the product's owner and can
// drift; the notification reconciliation scan repairs it lazily.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	FarmerID  primitive.ObjectID `bson:"farmerId" json:"farmerId"`
	Name      string             `bson:"name" json:"name"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	UnitPrice float64            `bson:"unitPrice" json:"unitPrice"`
}

type ShippingAddress struct {
	Street     string `bson:"street" json:"street"`
	City       string `bson:"city" json:"city"`
	State      string `bson:"state" json:"state"`
	Country    string `bson:"country" json:"country"`
	PostalCode string `bson:"postalCode" json:"postalCode"`
	Phone      string `bson:"phone,omitempty" json:"phone,omitempty"`
}

const PaymentCashOnDelivery = "cash-on-delivery"

type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderNumber     string             `bson:"orderNumber" json:"orderNumber"`
	BuyerID         primitive.ObjectID `bson:"buyerId" json:"buyerId"`
	Items           []OrderItem        `bson:"items" json:"items"`
	ShippingAddress ShippingAddress    `bson:"shippingAddress" json:"shippingAddress"`
	Subtotal        float64            `bson:"subtotal" json:"subtotal"`
	ShippingCharges float64            `bson:"shippingCharges" json:"shippingCharges"`
	TotalAmount     float64            `bson:"totalAmount" json:"totalAmount"`
	PaymentMethod   string             `bson:"paymentMethod" json:"paymentMethod"`
	Status          OrderStatus        `bson:"status" json:"status"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// DistinctFarmers returns the farmer IDs referenced by the order's line
// items, first occurrence order, no duplicates.
func (o *Order) DistinctFarmers() []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]bool, len(o.Items))
	var farmers []primitive.ObjectID
	for _, item := range o.Items {
		if !seen[item.FarmerID] {
			seen[item.FarmerID] = true
			farmers = append(farmers, item.FarmerID)
		}
	}
	return farmers
}
