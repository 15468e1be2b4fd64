package notification

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/footstocks/api-server/internals/store"
	"github.com/footstocks/api-server/pkg/kvstore"

	"github.com/shopspring/decimal"
)

func seedTrade(ms *store.MemStore, tradeID, kind string, qty int, price int64, at time.Time) {
	ctx := context.Background()
	ms.CreateTrade(ctx, &store.Trade{ID: tradeID, AccountID: "a1", PlayerID: "p1", Type: kind, Quantity: qty, Price: decimal.NewFromInt(price), Timestamp: at})
	ms.CreateNotification(ctx, &store.Notification{ID: "n-" + tradeID, AccountID: "a1", TradeID: tradeID, Kind: kind, Status: "unseen", CreatedAt: at})
}

func TestGetNotificationsRendersDescriptions(t *testing.T) {
	ms := store.NewMemStore()
	ctx := context.Background()

	ms.CreatePlayer(ctx, &store.Player{ID: "p1", Name: "Player One"})
	now := time.Now()
	seedTrade(ms, "t1", store.TradeTypeBuy, 2, 100, now.Add(-time.Minute))
	seedTrade(ms, "t2", store.TradeTypeSell, 3, 150, now)

	notifications, err := New(kvstore.NewMemory(), ms).GetNotifications(ctx, "a1")
	if err != nil {
		t.Fatalf("GetNotifications failed: %v", err)
	}
	if len(notifications) != 2 {
		t.Fatalf("got %d notifications, want 2", len(notifications))
	}

	// Newest first: the sell leads.
	if !strings.Contains(notifications[0].Description, "sell 3 shares of Player One at 150.00") {
		t.Errorf("unexpected sell description: %q", notifications[0].Description)
	}
	if !strings.Contains(notifications[1].Description, "buy 2 shares of Player One at 100.00") {
		t.Errorf("unexpected buy description: %q", notifications[1].Description)
	}
	if notifications[0].Entity != "transaction" || notifications[0].Status != "unseen" {
		t.Errorf("unexpected notification envelope: %+v", notifications[0])
	}
}

func TestUpdateNotificationStatus(t *testing.T) {
	ms := store.NewMemStore()
	ctx := context.Background()

	ms.CreatePlayer(ctx, &store.Player{ID: "p1", Name: "Player One"})
	seedTrade(ms, "t1", store.TradeTypeBuy, 1, 100, time.Now())

	ns := New(kvstore.NewMemory(), ms)
	if err := ns.UpdateNotificationStatus(ctx, "a1"); err != nil {
		t.Fatalf("UpdateNotificationStatus failed: %v", err)
	}

	notifications, _ := ns.GetNotifications(ctx, "a1")
	if notifications[0].Status != "seen" {
		t.Errorf("status = %s, want seen", notifications[0].Status)
	}
}
