package notification

import (
	"context"
	"fmt"

	"github.com/footstocks/api-server/internals/store"
	"github.com/footstocks/api-server/pkg/kvstore"
)

type NotificationService struct {
	KV    kvstore.KVStore
	Store store.Store
}

func New(kv kvstore.KVStore, st store.Store) *NotificationService {
	return &NotificationService{
		KV:    kv,
		Store: st,
	}
}

func (ns *NotificationService) GetNotifications(ctx context.Context, accountID string) ([]Notification, error) {
	details, err := ns.Store.ListNotifications(ctx, accountID)
	if err != nil {
		return nil, err
	}

	notifications := make([]Notification, 0, len(details))
	for _, detail := range details {
		notification := Notification{
			Id:        detail.ID,
			Entity:    "transaction",
			Status:    detail.Status,
			CreatedAt: detail.CreatedAt,
		}
		if detail.Kind == store.TradeTypeBuy {
			notification.Description = fmt.Sprintf("Your order to buy %v shares of %v at %v executed successfully", detail.Quantity, detail.PlayerName, detail.Price.StringFixed(2))
		} else {
			notification.Description = fmt.Sprintf("Your order to sell %v shares of %v at %v executed successfully", detail.Quantity, detail.PlayerName, detail.Price.StringFixed(2))
		}
		notifications = append(notifications, notification)
	}

	return notifications, nil
}

func (ns *NotificationService) UpdateNotificationStatus(ctx context.Context, accountID string) error {
	err := ns.Store.MarkNotificationsSeen(ctx, accountID)
	if err != nil {
		return fmt.Errorf("not able to update status of notification with err: %v", err)
	}
	return nil
}
