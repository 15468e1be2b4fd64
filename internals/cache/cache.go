package cache

import (
	"context"
	"fmt"
	"strconv"

	"github.com/footstocks/api-server/internals/store"
	"github.com/footstocks/api-server/pkg/kvstore"
)

// CacheService warms the redis cache from the store on misses.
type CacheService struct {
	Store store.Store
	KV    kvstore.KVStore
}

func New(st store.Store, kv kvstore.KVStore) *CacheService {
	return &CacheService{
		Store: st,
		KV:    kv,
	}
}

// LoadPlayerPrices seeds the per-player price timeseries list with the
// current price and returns the seeded entries.
func (c *CacheService) LoadPlayerPrices(ctx context.Context, playerID string) ([]string, error) {
	player, err := c.Store.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	key := "players_" + playerID
	value := fmt.Sprintf("%s,%s", player.LastUpdated.Format("2006-01-02 15:04:05.000000-07"), player.CurrentPrice.StringFixed(2))

	if err := c.KV.RPush(key, value); err != nil {
		return nil, err
	}

	return []string{value}, nil
}

// LoadAccountBalance caches and returns the account's cash balance.
func (c *CacheService) LoadAccountBalance(ctx context.Context, accountID string) (string, error) {
	account, err := c.Store.GetAccount(ctx, accountID)
	if err != nil {
		return "0", err
	}

	value := account.Balance.String()
	if err := c.KV.Set("purse_"+accountID, value); err != nil {
		return "0", err
	}

	return value, nil
}

// LoadPortfolio caches the account's positions as a
// "<player_id> -> <quantity>,<avg_buy_price>" hash.
func (c *CacheService) LoadPortfolio(ctx context.Context, accountID string) error {
	positions, err := c.Store.ListPositions(ctx, accountID)
	if err != nil {
		return err
	}

	key := "portfolio_" + accountID

	if err := c.KV.HSet(key, "is_cached", "active"); err != nil {
		fmt.Printf("Error setting key %s in redis cache: %v\n", key, err)
		return err
	}

	for _, p := range positions {
		value := strconv.Itoa(p.Quantity) + "," + p.AvgBuyPrice.String()
		if err := c.KV.HSet(key, p.PlayerID, value); err != nil {
			return err
		}
	}

	return nil
}
