package leaderboard

import (
	"context"
	"sort"

	"github.com/footstocks/api-server/internals/portfolio"
	"github.com/footstocks/api-server/internals/store"
	"github.com/footstocks/api-server/pkg/kvstore"

	"github.com/shopspring/decimal"
)

type Score struct {
	AccountID string          `json:"account_id"`
	Username  string          `json:"username"`
	NetWorth  decimal.Decimal `json:"net_worth"`
}

type Leaderboard struct {
	KV    kvstore.KVStore
	Store store.Store
	ps    *portfolio.PortfolioService
}

func New(kv kvstore.KVStore, st store.Store) *Leaderboard {
	return &Leaderboard{
		KV:    kv,
		Store: st,
		ps:    portfolio.New(st, kv),
	}
}

// GetLeaderboard ranks every account by cash balance plus portfolio market
// value, descending.
func (l *Leaderboard) GetLeaderboard(ctx context.Context) ([]Score, error) {
	accounts, err := l.Store.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}

	scores := make([]Score, 0, len(accounts))
	for _, account := range accounts {
		positions, err := l.Store.ListPositions(ctx, account.ID)
		if err != nil {
			return nil, err
		}

		netWorth := account.Balance
		for _, p := range positions {
			netWorth = netWorth.Add(portfolio.Valuate(p).Value)
		}

		scores = append(scores, Score{
			AccountID: account.ID,
			Username:  account.Username,
			NetWorth:  netWorth,
		})
	}

	sort.Slice(scores, func(i, j int) bool {
		return scores[i].NetWorth.GreaterThan(scores[j].NetWorth)
	})

	return scores, nil
}
