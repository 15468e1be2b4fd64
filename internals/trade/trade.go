package trade

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/footstocks/api-server/internals/cache"
	"github.com/footstocks/api-server/internals/store"
	"github.com/footstocks/api-server/pkg/kvstore"
	"github.com/footstocks/api-server/pkg/metrics"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
)

// MaxOrderShares is the per-order share cap on buys. Sells are uncapped;
// a position accumulated across many buys can be closed in one order.
const MaxOrderShares = 100

// TxnQueue is the queue executed trades are published to.
const TxnQueue = "txns"

var (
	ErrInvalidQuantity    = errors.New("quantity must be a positive integer within the per-order cap")
	ErrInsufficientFunds  = errors.New("insufficient balance")
	ErrInsufficientShares = errors.New("insufficient shares")
	ErrStaleQuote         = errors.New("quoted price is stale")
)

// TradeService settles buys and sells. All three settlement mutations
// (trade log append, position upsert, balance update) run in one store
// transaction with the account row locked, so two settlements for the same
// account serialize and a failure at any step mutates nothing.
type TradeService struct {
	Store store.Store
	KV    kvstore.KVStore
	Ch    *amqp.Channel

	// QuoteTolerance is the maximum relative deviation of the client quote
	// from the current price before the order is rejected.
	QuoteTolerance decimal.Decimal
}

func New(st store.Store, kv kvstore.KVStore, ch *amqp.Channel) *TradeService {
	return &TradeService{
		Store:          st,
		KV:             kv,
		Ch:             ch,
		QuoteTolerance: decimal.NewFromFloat(0.05),
	}
}

// checkQuote rejects quotes that drifted beyond the tolerance. Execution
// always happens at the current server-side price, never at the quote.
func (ts *TradeService) checkQuote(quoted, current decimal.Decimal) error {
	if quoted.LessThanOrEqual(decimal.Zero) {
		return ErrStaleQuote
	}
	if quoted.Sub(current).Abs().GreaterThan(current.Mul(ts.QuoteTolerance)) {
		return ErrStaleQuote
	}
	return nil
}

// Buy settles a buy order of qty shares of playerID for accountID.
func (ts *TradeService) Buy(ctx context.Context, accountID, playerID string, details TransactionDetails) (*store.Trade, error) {
	started := time.Now()
	qty := details.Quantity
	if qty < 1 || qty > MaxOrderShares {
		metrics.TradeRejections.WithLabelValues("invalid_quantity").Inc()
		return nil, ErrInvalidQuantity
	}

	var (
		trade      store.Trade
		newBalance decimal.Decimal
		newQty     int
		newAvg     decimal.Decimal
	)

	err := ts.Store.WithTx(ctx, func(s store.Store) error {
		player, err := s.GetPlayer(ctx, playerID)
		if err != nil {
			return err
		}
		if err := ts.checkQuote(details.Price, player.CurrentPrice); err != nil {
			return err
		}
		price := player.CurrentPrice

		account, err := s.GetAccountForUpdate(ctx, accountID)
		if err != nil {
			return err
		}

		cost := price.Mul(decimal.NewFromInt(int64(qty)))
		if account.Balance.LessThan(cost) {
			return ErrInsufficientFunds
		}

		trade = store.Trade{
			ID:        uuid.New().String(),
			AccountID: accountID,
			PlayerID:  playerID,
			Type:      store.TradeTypeBuy,
			Quantity:  qty,
			Price:     price,
			Timestamp: time.Now(),
		}
		if err := s.CreateTrade(ctx, &trade); err != nil {
			return err
		}

		// Upsert the position with the quantity-weighted average price:
		// new_avg = (old_qty*old_avg + qty*price) / (old_qty+qty)
		position, err := s.GetPosition(ctx, accountID, playerID)
		switch {
		case errors.Is(err, store.ErrNotFound):
			newQty, newAvg = qty, price
			err = s.CreatePosition(ctx, &store.Position{
				ID:          uuid.New().String(),
				AccountID:   accountID,
				PlayerID:    playerID,
				Quantity:    qty,
				AvgBuyPrice: price,
			})
			if err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			oldQty := decimal.NewFromInt(int64(position.Quantity))
			addQty := decimal.NewFromInt(int64(qty))
			newQty = position.Quantity + qty
			newAvg = oldQty.Mul(position.AvgBuyPrice).Add(addQty.Mul(price)).Div(oldQty.Add(addQty))
			if err := s.UpdatePosition(ctx, position.ID, newQty, newAvg); err != nil {
				return err
			}
		}

		newBalance = account.Balance.Sub(cost)
		if err := s.UpdateAccountBalance(ctx, accountID, newBalance); err != nil {
			return err
		}

		return s.CreateNotification(ctx, &store.Notification{
			ID:        uuid.New().String(),
			AccountID: accountID,
			TradeID:   trade.ID,
			Kind:      store.TradeTypeBuy,
			Status:    "unseen",
			CreatedAt: trade.Timestamp,
		})
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInsufficientFunds):
			metrics.TradeRejections.WithLabelValues("insufficient_funds").Inc()
		case errors.Is(err, ErrStaleQuote):
			metrics.TradeRejections.WithLabelValues("stale_quote").Inc()
		}
		return nil, err
	}

	metrics.TradesTotal.WithLabelValues(store.TradeTypeBuy).Inc()
	metrics.TradeLatency.WithLabelValues(store.TradeTypeBuy).Observe(time.Since(started).Seconds())

	ts.refreshCaches(accountID, playerID, newBalance, newQty, newAvg)
	ts.publishTrade(ctx, &trade)
	return &trade, nil
}

// Sell settles a sell order. The average acquisition price of the
// remaining position is untouched; realized P&L is derived, not stored.
func (ts *TradeService) Sell(ctx context.Context, accountID, playerID string, details TransactionDetails) (*store.Trade, error) {
	started := time.Now()
	qty := details.Quantity
	if qty < 1 {
		metrics.TradeRejections.WithLabelValues("invalid_quantity").Inc()
		return nil, ErrInvalidQuantity
	}

	var (
		trade      store.Trade
		newBalance decimal.Decimal
		newQty     int
		newAvg     decimal.Decimal
	)

	err := ts.Store.WithTx(ctx, func(s store.Store) error {
		player, err := s.GetPlayer(ctx, playerID)
		if err != nil {
			return err
		}
		if err := ts.checkQuote(details.Price, player.CurrentPrice); err != nil {
			return err
		}
		price := player.CurrentPrice

		account, err := s.GetAccountForUpdate(ctx, accountID)
		if err != nil {
			return err
		}

		position, err := s.GetPosition(ctx, accountID, playerID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrInsufficientShares
		}
		if err != nil {
			return err
		}
		if position.Quantity < qty {
			return ErrInsufficientShares
		}

		trade = store.Trade{
			ID:        uuid.New().String(),
			AccountID: accountID,
			PlayerID:  playerID,
			Type:      store.TradeTypeSell,
			Quantity:  qty,
			Price:     price,
			Timestamp: time.Now(),
		}
		if err := s.CreateTrade(ctx, &trade); err != nil {
			return err
		}

		newQty = position.Quantity - qty
		newAvg = position.AvgBuyPrice
		if newQty == 0 {
			// Zero-quantity positions must not exist as rows.
			if err := s.DeletePosition(ctx, position.ID); err != nil {
				return err
			}
		} else {
			if err := s.UpdatePosition(ctx, position.ID, newQty, position.AvgBuyPrice); err != nil {
				return err
			}
		}

		newBalance = account.Balance.Add(price.Mul(decimal.NewFromInt(int64(qty))))
		if err := s.UpdateAccountBalance(ctx, accountID, newBalance); err != nil {
			return err
		}

		return s.CreateNotification(ctx, &store.Notification{
			ID:        uuid.New().String(),
			AccountID: accountID,
			TradeID:   trade.ID,
			Kind:      store.TradeTypeSell,
			Status:    "unseen",
			CreatedAt: trade.Timestamp,
		})
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInsufficientShares):
			metrics.TradeRejections.WithLabelValues("insufficient_shares").Inc()
		case errors.Is(err, ErrStaleQuote):
			metrics.TradeRejections.WithLabelValues("stale_quote").Inc()
		}
		return nil, err
	}

	metrics.TradesTotal.WithLabelValues(store.TradeTypeSell).Inc()
	metrics.TradeLatency.WithLabelValues(store.TradeTypeSell).Observe(time.Since(started).Seconds())

	ts.refreshCaches(accountID, playerID, newBalance, newQty, newAvg)
	ts.publishTrade(ctx, &trade)
	return &trade, nil
}

// refreshCaches updates the redis purse and portfolio entries after a
// commit. Best effort: a cache miss is reloaded from the DB on next read.
func (ts *TradeService) refreshCaches(accountID, playerID string, balance decimal.Decimal, qty int, avg decimal.Decimal) {
	if ts.KV == nil {
		return
	}
	if err := ts.KV.Set("purse_"+accountID, balance.String()); err != nil {
		fmt.Println("Error updating purse cache:", err)
	}
	if qty == 0 {
		if err := ts.KV.HDel("portfolio_"+accountID, playerID); err != nil {
			fmt.Println("Error removing portfolio cache entry:", err)
		}
		return
	}
	if err := ts.KV.HSet("portfolio_"+accountID, playerID, strconv.Itoa(qty)+","+avg.String()); err != nil {
		fmt.Println("Error updating portfolio cache:", err)
	}
}

// publishTrade pushes the executed trade onto the txns queue for the
// ticker broadcast. Best effort.
func (ts *TradeService) publishTrade(ctx context.Context, t *store.Trade) {
	if ts.Ch == nil {
		return
	}
	data, err := json.Marshal(t)
	if err != nil {
		fmt.Println("Error marshalling trade:", err)
		return
	}
	err = ts.Ch.PublishWithContext(ctx, "", TxnQueue, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        data,
	})
	if err != nil {
		fmt.Println("Error publishing trade:", err)
	}
}

// GetMarket lists every player with current price and the caller's
// holding, for the market screen. Prices prefer the flat hash the ticker
// maintains; the DB price serves players the ticker has not touched yet.
func (ts *TradeService) GetMarket(ctx context.Context, accountID string) ([]MarketPlayer, error) {
	players, err := ts.Store.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}

	held := make(map[string]int)
	positions, err := ts.Store.ListPositions(ctx, accountID)
	if err != nil {
		return nil, err
	}
	for _, p := range positions {
		held[p.PlayerID] = p.Quantity
	}

	cachedPrices := make(map[string]string)
	if ts.KV != nil {
		if prices, err := ts.KV.HGetAll("players"); err == nil {
			cachedPrices = prices
		}
	}

	market := make([]MarketPlayer, 0, len(players))
	for _, p := range players {
		price := p.CurrentPrice
		if cached, ok := cachedPrices[p.ID]; ok {
			if parsed, err := decimal.NewFromString(cached); err == nil {
				price = parsed
			}
		}
		market = append(market, MarketPlayer{
			PlayerID:     p.ID,
			PlayerName:   p.Name,
			Team:         p.Team,
			League:       p.League,
			Position:     p.Position,
			ImageURL:     p.ImageURL,
			CurrentPrice: price,
			LastUpdated:  p.LastUpdated.Format("2006-01-02 15:04:05.000000-07"),
			Shares:       held[p.ID],
		})
	}
	return market, nil
}

// ListTransactions returns the account's trade history, newest first.
func (ts *TradeService) ListTransactions(ctx context.Context, accountID string) ([]store.TradeDetail, error) {
	return ts.Store.ListTrades(ctx, accountID)
}

// GetPriceHistory returns the "<ts>,<price>" timeseries for one player
// from the cache, loading it from the DB on a miss.
func (ts *TradeService) GetPriceHistory(ctx context.Context, playerID string) ([]string, error) {
	prices, err := ts.KV.LRange("players_"+playerID, 0, -1)
	if err != nil {
		return nil, err
	}
	if len(prices) == 0 {
		return cache.New(ts.Store, ts.KV).LoadPlayerPrices(ctx, playerID)
	}
	return prices, nil
}
