package stats

import (
	"context"
	"testing"

	"github.com/footstocks/api-server/internals/store"
)

func newStatsService() (*StatsService, *store.MemStore) {
	ms := store.NewMemStore()
	ms.CreatePlayer(context.Background(), &store.Player{ID: "player-x", Name: "Player X"})
	return New(ms), ms
}

func TestUpsertRequiresKey(t *testing.T) {
	ss, _ := newStatsService()
	ctx := context.Background()

	tests := []struct {
		name string
		in   MatchStatInput
	}{
		{name: "missing player", in: MatchStatInput{Gameweek: 1, Season: 2026}},
		{name: "missing gameweek", in: MatchStatInput{PlayerID: "player-x", Season: 2026}},
		{name: "missing season", in: MatchStatInput{PlayerID: "player-x", Gameweek: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ss.Upsert(ctx, tt.in); err != ErrMissingKey {
				t.Errorf("err = %v, want ErrMissingKey", err)
			}
		})
	}
}

func TestUpsertRejectsUnknownPlayer(t *testing.T) {
	ss, _ := newStatsService()
	_, err := ss.Upsert(context.Background(), MatchStatInput{PlayerID: "ghost", Gameweek: 1, Season: 2026})
	if err != store.ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestUpsertReplacesExistingLine(t *testing.T) {
	ss, _ := newStatsService()
	ctx := context.Background()

	if _, err := ss.Upsert(ctx, MatchStatInput{PlayerID: "player-x", Gameweek: 5, Season: 2026, Goals: 1}); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}
	if _, err := ss.Upsert(ctx, MatchStatInput{PlayerID: "player-x", Gameweek: 5, Season: 2026, Goals: 2, TotalPoints: 9}); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	lines, err := ss.List(ctx, "player-x", 5, 2026)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if lines[0].Goals != 2 || lines[0].TotalPoints != 9 {
		t.Errorf("line not replaced: %+v", lines[0])
	}
}

func TestListNewestGameweekFirst(t *testing.T) {
	ss, _ := newStatsService()
	ctx := context.Background()

	for _, gw := range []int{1, 3, 2} {
		if _, err := ss.Upsert(ctx, MatchStatInput{PlayerID: "player-x", Gameweek: gw, Season: 2026}); err != nil {
			t.Fatalf("upsert gw %d failed: %v", gw, err)
		}
	}

	lines, err := ss.List(ctx, "player-x", 0, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	for i, want := range []int{3, 2, 1} {
		if lines[i].Gameweek != want {
			t.Errorf("lines[%d].Gameweek = %d, want %d", i, lines[i].Gameweek, want)
		}
	}
}
