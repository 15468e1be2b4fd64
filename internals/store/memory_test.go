package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestWithTxRollsBackOnError(t *testing.T) {
	ms := NewMemStore()
	ctx := context.Background()

	ms.CreateAccount(ctx, &Account{ID: "a1", Username: "u1", Email: "u1@example.com", Balance: decimal.NewFromInt(1000)})

	boom := errors.New("boom")
	err := ms.WithTx(ctx, func(s Store) error {
		if err := s.UpdateAccountBalance(ctx, "a1", decimal.Zero); err != nil {
			return err
		}
		if err := s.CreateTrade(ctx, &Trade{ID: "t1", AccountID: "a1", PlayerID: "p1", Type: TradeTypeBuy, Quantity: 1}); err != nil {
			return err
		}
		return boom
	})
	if err != boom {
		t.Fatalf("WithTx err = %v, want boom", err)
	}

	a, err := ms.GetAccount(ctx, "a1")
	if err != nil {
		t.Fatalf("GetAccount failed: %v", err)
	}
	if !a.Balance.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("balance = %s, want 1000 after rollback", a.Balance)
	}
	trades, _ := ms.ListTrades(ctx, "a1")
	if len(trades) != 0 {
		t.Errorf("trade log has %d entries after rollback, want 0", len(trades))
	}
}

func TestWithTxCommits(t *testing.T) {
	ms := NewMemStore()
	ctx := context.Background()

	ms.CreateAccount(ctx, &Account{ID: "a1", Username: "u1", Email: "u1@example.com", Balance: decimal.NewFromInt(1000)})

	err := ms.WithTx(ctx, func(s Store) error {
		return s.UpdateAccountBalance(ctx, "a1", decimal.NewFromInt(700))
	})
	if err != nil {
		t.Fatalf("WithTx failed: %v", err)
	}

	a, _ := ms.GetAccount(ctx, "a1")
	if !a.Balance.Equal(decimal.NewFromInt(700)) {
		t.Errorf("balance = %s, want 700 after commit", a.Balance)
	}
}

func TestGetMissingRecordsReturnNotFound(t *testing.T) {
	ms := NewMemStore()
	ctx := context.Background()

	if _, err := ms.GetAccount(ctx, "ghost"); err != ErrNotFound {
		t.Errorf("GetAccount err = %v, want ErrNotFound", err)
	}
	if _, err := ms.GetAccountByEmail(ctx, "ghost@example.com"); err != ErrNotFound {
		t.Errorf("GetAccountByEmail err = %v, want ErrNotFound", err)
	}
	if _, err := ms.GetPlayer(ctx, "ghost"); err != ErrNotFound {
		t.Errorf("GetPlayer err = %v, want ErrNotFound", err)
	}
	if _, err := ms.GetPosition(ctx, "ghost", "ghost"); err != ErrNotFound {
		t.Errorf("GetPosition err = %v, want ErrNotFound", err)
	}
	if err := ms.UpdateAccountBalance(ctx, "ghost", decimal.Zero); err != ErrNotFound {
		t.Errorf("UpdateAccountBalance err = %v, want ErrNotFound", err)
	}
	if err := ms.UpdatePlayerPrice(ctx, "ghost", decimal.Zero, time.Now()); err != ErrNotFound {
		t.Errorf("UpdatePlayerPrice err = %v, want ErrNotFound", err)
	}
}

func TestUpsertMatchStatReplacesOnKey(t *testing.T) {
	ms := NewMemStore()
	ctx := context.Background()

	first := &MatchStat{ID: "s1", PlayerID: "p1", Gameweek: 3, Season: 2026, Goals: 1}
	if err := ms.UpsertMatchStat(ctx, first); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}

	// Same (player, gameweek, season): replaces instead of appending.
	second := &MatchStat{ID: "s2", PlayerID: "p1", Gameweek: 3, Season: 2026, Goals: 2, Assists: 1}
	if err := ms.UpsertMatchStat(ctx, second); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	stats, err := ms.ListMatchStats(ctx, "p1", 3, 2026)
	if err != nil {
		t.Fatalf("ListMatchStats failed: %v", err)
	}
	if len(stats) != 1 {
		t.Fatalf("got %d stat lines, want 1", len(stats))
	}
	if stats[0].Goals != 2 || stats[0].Assists != 1 {
		t.Errorf("stat line not replaced: %+v", stats[0])
	}
	if stats[0].ID != "s1" {
		t.Errorf("stat ID = %s, want original s1 kept", stats[0].ID)
	}
}

func TestListMatchStatsFilters(t *testing.T) {
	ms := NewMemStore()
	ctx := context.Background()

	ms.UpsertMatchStat(ctx, &MatchStat{ID: "s1", PlayerID: "p1", Gameweek: 1, Season: 2026})
	ms.UpsertMatchStat(ctx, &MatchStat{ID: "s2", PlayerID: "p1", Gameweek: 2, Season: 2026})
	ms.UpsertMatchStat(ctx, &MatchStat{ID: "s3", PlayerID: "p1", Gameweek: 1, Season: 2025})
	ms.UpsertMatchStat(ctx, &MatchStat{ID: "s4", PlayerID: "p2", Gameweek: 1, Season: 2026})

	tests := []struct {
		name     string
		gameweek int
		season   int
		want     int
	}{
		{name: "no filter", gameweek: 0, season: 0, want: 3},
		{name: "by season", gameweek: 0, season: 2026, want: 2},
		{name: "by gameweek", gameweek: 1, season: 0, want: 2},
		{name: "by both", gameweek: 2, season: 2026, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats, err := ms.ListMatchStats(ctx, "p1", tt.gameweek, tt.season)
			if err != nil {
				t.Fatalf("ListMatchStats failed: %v", err)
			}
			if len(stats) != tt.want {
				t.Errorf("got %d stat lines, want %d", len(stats), tt.want)
			}
		})
	}
}

func TestListPositionsProjection(t *testing.T) {
	ms := NewMemStore()
	ctx := context.Background()

	ms.CreatePlayer(ctx, &Player{ID: "p1", Name: "Player One", Team: "FC A", League: "EPL", Position: "Forward", CurrentPrice: decimal.NewFromInt(120)})
	ms.CreatePosition(ctx, &Position{ID: "pos1", AccountID: "a1", PlayerID: "p1", Quantity: 2, AvgBuyPrice: decimal.NewFromInt(100)})
	ms.CreatePosition(ctx, &Position{ID: "pos2", AccountID: "a2", PlayerID: "p1", Quantity: 5, AvgBuyPrice: decimal.NewFromInt(90)})

	details, err := ms.ListPositions(ctx, "a1")
	if err != nil {
		t.Fatalf("ListPositions failed: %v", err)
	}
	if len(details) != 1 {
		t.Fatalf("got %d positions, want 1", len(details))
	}
	got := details[0]
	if got.PlayerName != "Player One" || got.Team != "FC A" || got.PlayerPos != "Forward" {
		t.Errorf("player fields not joined: %+v", got)
	}
	if got.Quantity != 2 || !got.CurrentPrice.Equal(decimal.NewFromInt(120)) {
		t.Errorf("unexpected projection: %+v", got)
	}
}

func TestNotificationsSeenLifecycle(t *testing.T) {
	ms := NewMemStore()
	ctx := context.Background()

	ms.CreatePlayer(ctx, &Player{ID: "p1", Name: "Player One"})
	ms.CreateTrade(ctx, &Trade{ID: "t1", AccountID: "a1", PlayerID: "p1", Type: TradeTypeBuy, Quantity: 2, Price: decimal.NewFromInt(100)})
	ms.CreateNotification(ctx, &Notification{ID: "n1", AccountID: "a1", TradeID: "t1", Kind: TradeTypeBuy, Status: "unseen", CreatedAt: time.Now()})

	notifications, err := ms.ListNotifications(ctx, "a1")
	if err != nil {
		t.Fatalf("ListNotifications failed: %v", err)
	}
	if len(notifications) != 1 {
		t.Fatalf("got %d notifications, want 1", len(notifications))
	}
	if notifications[0].PlayerName != "Player One" || notifications[0].Quantity != 2 {
		t.Errorf("trade fields not joined: %+v", notifications[0])
	}

	if err := ms.MarkNotificationsSeen(ctx, "a1"); err != nil {
		t.Fatalf("MarkNotificationsSeen failed: %v", err)
	}
	notifications, _ = ms.ListNotifications(ctx, "a1")
	if notifications[0].Status != "seen" {
		t.Errorf("status = %s, want seen", notifications[0].Status)
	}
}
