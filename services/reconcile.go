package services

import (
	"context"
	"fmt"
	"log"

	"github.com/farmdirect/backend-go/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const notificationPageSize = 50

// ListNotifications returns the requester's most recent notifications.
// For farmers it first runs the reconciliation scan: line items whose
// farmer attribution drifted away from the product's real owner are
// repaired in place, and missing order notifications are backfilled with
// the order's original timestamp. The scan is idempotent but not atomic
// per order; a failure mid-scan still serves the baseline list.
func (s *OrderService) ListNotifications(ctx context.Context, userID primitive.ObjectID, role models.Role) ([]models.Notification, error) {
	list, err := s.notifications.ListForUser(ctx, userID, notificationPageSize)
	if err != nil {
		return nil, err
	}
	if role != models.RoleFarmer {
		return list, nil
	}

	synthesized, err := s.reconcile(ctx, userID)
	if err != nil {
		log.Printf("Notification reconciliation failed for %s: %v", userID.Hex(), err)
		return list, nil
	}
	if !synthesized {
		return list, nil
	}
	return s.notifications.ListForUser(ctx, userID, notificationPageSize)
}

// MarkNotificationRead flips the read flag, the only mutation a
// notification ever receives.
func (s *OrderService) MarkNotificationRead(ctx context.Context, id, userID primitive.ObjectID) error {
	return s.notifications.MarkRead(ctx, id, userID)
}

// reconcile reports whether any notification was synthesized, so the
// caller knows to re-fetch the list.
func (s *OrderService) reconcile(ctx context.Context, farmerID primitive.ObjectID) (bool, error) {
	owned, err := s.products.IDsByFarmer(ctx, farmerID)
	if err != nil {
		return false, err
	}
	if len(owned) == 0 {
		return false, nil
	}
	ownedSet := make(map[primitive.ObjectID]bool, len(owned))
	for _, id := range owned {
		ownedSet[id] = true
	}

	orders, err := s.orders.FindByProductIDs(ctx, owned)
	if err != nil {
		return false, err
	}

	synthesized := false
	for i := range orders {
		order := &orders[i]

		repaired := false
		for j := range order.Items {
			item := &order.Items[j]
			if ownedSet[item.ProductID] && item.FarmerID != farmerID {
				item.FarmerID = farmerID
				repaired = true
			}
		}
		if repaired {
			if err := s.orders.UpdateItems(ctx, order.ID, order.Items); err != nil {
				// Leave this order for the next scan; the rest can still
				// be processed.
				log.Printf("Failed to repair farmer attribution on order %s: %v", order.OrderNumber, err)
				continue
			}
		}

		for _, typ := range []models.NotificationType{models.NotificationActivity, models.NotificationOrder} {
			exists, err := s.notifications.ExistsForOrder(ctx, farmerID, order.ID, typ)
			if err != nil {
				return synthesized, err
			}
			if exists {
				continue
			}
			n := &models.Notification{
				UserID:    farmerID,
				Message:   backfillMessage(typ, order.OrderNumber),
				Type:      typ,
				OrderID:   order.ID,
				CreatedAt: order.CreatedAt,
			}
			if err := s.notifications.Insert(ctx, n); err != nil {
				return synthesized, err
			}
			synthesized = true
		}
	}
	return synthesized, nil
}

func backfillMessage(typ models.NotificationType, orderNumber string) string {
	if typ == models.NotificationOrder {
		return fmt.Sprintf("You have received a new order %s.", orderNumber)
	}
	return fmt.Sprintf("Order %s was placed including your products.", orderNumber)
}
