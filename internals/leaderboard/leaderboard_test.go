package leaderboard

import (
	"context"
	"testing"

	"github.com/footstocks/api-server/internals/store"
	"github.com/footstocks/api-server/pkg/kvstore"

	"github.com/shopspring/decimal"
)

func TestGetLeaderboardRanksByNetWorth(t *testing.T) {
	ms := store.NewMemStore()
	ctx := context.Background()

	// alice: 500 cash + 3 shares at 150 = 950.
	// bob: 800 cash, no holdings.
	// carol: 100 cash + 10 shares at 150 = 1600.
	ms.CreatePlayer(ctx, &store.Player{ID: "p1", Name: "Player One", CurrentPrice: decimal.NewFromInt(150)})
	ms.CreateAccount(ctx, &store.Account{ID: "a1", Username: "alice", Email: "alice@example.com", Balance: decimal.NewFromInt(500)})
	ms.CreateAccount(ctx, &store.Account{ID: "a2", Username: "bob", Email: "bob@example.com", Balance: decimal.NewFromInt(800)})
	ms.CreateAccount(ctx, &store.Account{ID: "a3", Username: "carol", Email: "carol@example.com", Balance: decimal.NewFromInt(100)})
	ms.CreatePosition(ctx, &store.Position{ID: "pos1", AccountID: "a1", PlayerID: "p1", Quantity: 3, AvgBuyPrice: decimal.NewFromInt(100)})
	ms.CreatePosition(ctx, &store.Position{ID: "pos2", AccountID: "a3", PlayerID: "p1", Quantity: 10, AvgBuyPrice: decimal.NewFromInt(100)})

	scores, err := New(kvstore.NewMemory(), ms).GetLeaderboard(ctx)
	if err != nil {
		t.Fatalf("GetLeaderboard failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("got %d scores, want 3", len(scores))
	}

	wantOrder := []struct {
		username string
		netWorth int64
	}{
		{username: "carol", netWorth: 1600},
		{username: "alice", netWorth: 950},
		{username: "bob", netWorth: 800},
	}
	for i, want := range wantOrder {
		if scores[i].Username != want.username {
			t.Errorf("scores[%d].Username = %s, want %s", i, scores[i].Username, want.username)
		}
		if !scores[i].NetWorth.Equal(decimal.NewFromInt(want.netWorth)) {
			t.Errorf("scores[%d].NetWorth = %s, want %d", i, scores[i].NetWorth, want.netWorth)
		}
	}
}

func TestGetLeaderboardEmpty(t *testing.T) {
	scores, err := New(kvstore.NewMemory(), store.NewMemStore()).GetLeaderboard(context.Background())
	if err != nil {
		t.Fatalf("GetLeaderboard failed: %v", err)
	}
	if len(scores) != 0 {
		t.Errorf("got %d scores, want 0", len(scores))
	}
}
