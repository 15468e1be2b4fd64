package portfolio

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/footstocks/api-server/internals/cache"
	"github.com/footstocks/api-server/internals/store"
	"github.com/footstocks/api-server/pkg/kvstore"

	"github.com/shopspring/decimal"
)

type PortfolioService struct {
	Store store.Store
	KV    kvstore.KVStore
}

func New(st store.Store, kv kvstore.KVStore) *PortfolioService {
	return &PortfolioService{
		Store: st,
		KV:    kv,
	}
}

var hundred = decimal.NewFromInt(100)

// Valuate derives a holding from a position at the current price. Pure;
// recomputed on every fetch, nothing is cached or stored.
func Valuate(d store.PositionDetail) Holding {
	qty := decimal.NewFromInt(int64(d.Quantity))
	value := qty.Mul(d.CurrentPrice)
	invested := qty.Mul(d.AvgBuyPrice)
	pnl := value.Sub(invested)

	pnlPercent := decimal.Zero
	if invested.IsPositive() {
		pnlPercent = pnl.Div(invested).Mul(hundred)
	}

	return Holding{
		PlayerID:          d.PlayerID,
		PlayerName:        d.PlayerName,
		Team:              d.Team,
		League:            d.League,
		Position:          d.PlayerPos,
		Shares:            d.Quantity,
		AvgPrice:          d.AvgBuyPrice,
		CurPrice:          d.CurrentPrice,
		Value:             value,
		Invested:          invested,
		ProfitLoss:        pnl,
		ProfitLossPercent: pnlPercent,
	}
}

// Totals sums holdings into portfolio-level aggregates.
func Totals(holdings []Holding) (value, invested, pnl, pnlPercent decimal.Decimal) {
	value, invested = decimal.Zero, decimal.Zero
	for _, h := range holdings {
		value = value.Add(h.Value)
		invested = invested.Add(h.Invested)
	}
	pnl = value.Sub(invested)
	pnlPercent = decimal.Zero
	if invested.IsPositive() {
		pnlPercent = pnl.Div(invested).Mul(hundred)
	}
	return value, invested, pnl, pnlPercent
}

func (ps *PortfolioService) getBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	balanceStr, err := ps.KV.Get("purse_" + accountID)
	if err != nil {
		if err == kvstore.ErrNil {
			balanceStr, err = cache.New(ps.Store, ps.KV).LoadAccountBalance(ctx, accountID)
			if err != nil {
				return decimal.Zero, err
			}
		} else {
			return decimal.Zero, err
		}
	}
	return decimal.NewFromString(balanceStr)
}

// getPositions serves the account's positions from the redis portfolio
// hash, warming it from the DB when the is_cached sentinel is missing.
// Settlement keeps the hash current, so the DB is only hit on a cold cache.
func (ps *PortfolioService) getPositions(ctx context.Context, accountID string) ([]store.PositionDetail, error) {
	key := "portfolio_" + accountID

	_, err := ps.KV.HGet(key, "is_cached")
	if err != nil {
		if err == kvstore.ErrNil {
			if err := cache.New(ps.Store, ps.KV).LoadPortfolio(ctx, accountID); err != nil {
				return nil, err
			}
		} else {
			return nil, err
		}
	}

	entries, err := ps.KV.HGetAll(key)
	if err != nil {
		return nil, err
	}

	details := make([]store.PositionDetail, 0, len(entries))
	for playerID, value := range entries {
		if playerID == "is_cached" {
			continue
		}
		parts := strings.Split(value, ",")
		if len(parts) != 2 {
			continue
		}
		qty, err := strconv.Atoi(parts[0])
		if err != nil {
			continue
		}
		avg, err := decimal.NewFromString(parts[1])
		if err != nil {
			continue
		}

		player, err := ps.Store.GetPlayer(ctx, playerID)
		if err != nil {
			return nil, err
		}

		details = append(details, store.PositionDetail{
			PlayerID:     playerID,
			PlayerName:   player.Name,
			Team:         player.Team,
			League:       player.League,
			PlayerPos:    player.Position,
			Quantity:     qty,
			AvgBuyPrice:  avg,
			CurrentPrice: player.CurrentPrice,
		})
	}

	sort.Slice(details, func(i, j int) bool { return details[i].PlayerName < details[j].PlayerName })
	return details, nil
}

// GetDetailedPortfolio returns the account's balance, valued holdings,
// and portfolio aggregates.
func (ps *PortfolioService) GetDetailedPortfolio(ctx context.Context, accountID string) (DetailedPortfolio, error) {
	var detailed DetailedPortfolio

	positions, err := ps.getPositions(ctx, accountID)
	if err != nil {
		return detailed, err
	}

	holdings := make([]Holding, 0, len(positions))
	for _, p := range positions {
		holdings = append(holdings, Valuate(p))
	}

	balance, err := ps.getBalance(ctx, accountID)
	if err != nil {
		return detailed, err
	}

	detailed.Balance = balance
	detailed.Holdings = holdings
	detailed.TotalValue, detailed.TotalInvested, detailed.ProfitLoss, detailed.ProfitLossPercent = Totals(holdings)

	return detailed, nil
}
