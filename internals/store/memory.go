package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// MemStore is an in-memory Store used by tests. WithTx serializes on the
// store mutex and applies mutations to a clone, so a failed transaction
// leaves the store untouched.
type MemStore struct {
	mu            sync.Mutex
	accounts      map[string]Account
	players       map[string]Player
	positions     map[string]Position
	trades        []Trade
	stats         map[string]MatchStat
	notifications []Notification
}

func NewMemStore() *MemStore {
	return &MemStore{
		accounts:  make(map[string]Account),
		players:   make(map[string]Player),
		positions: make(map[string]Position),
		stats:     make(map[string]MatchStat),
	}
}

func (m *MemStore) clone() *MemStore {
	c := NewMemStore()
	for k, v := range m.accounts {
		c.accounts[k] = v
	}
	for k, v := range m.players {
		c.players[k] = v
	}
	for k, v := range m.positions {
		c.positions[k] = v
	}
	for k, v := range m.stats {
		c.stats[k] = v
	}
	c.trades = append(c.trades, m.trades...)
	c.notifications = append(c.notifications, m.notifications...)
	return c
}

func (m *MemStore) WithTx(ctx context.Context, fn func(Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx := m.clone()
	if err := fn(tx); err != nil {
		return err
	}
	m.accounts = tx.accounts
	m.players = tx.players
	m.positions = tx.positions
	m.trades = tx.trades
	m.stats = tx.stats
	m.notifications = tx.notifications
	return nil
}

func (m *MemStore) CreateAccount(ctx context.Context, a *Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[a.ID] = *a
	return nil
}

func (m *MemStore) GetAccount(ctx context.Context, id string) (*Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (m *MemStore) GetAccountByEmail(ctx context.Context, email string) (*Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.Email == email {
			a := a
			return &a, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemStore) GetAccountForUpdate(ctx context.Context, id string) (*Account, error) {
	return m.GetAccount(ctx, id)
}

func (m *MemStore) UpdateAccountBalance(ctx context.Context, id string, balance decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok {
		return ErrNotFound
	}
	a.Balance = balance
	m.accounts[id] = a
	return nil
}

func (m *MemStore) ListAccounts(ctx context.Context) ([]Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	accounts := make([]Account, 0, len(m.accounts))
	for _, a := range m.accounts {
		accounts = append(accounts, a)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Username < accounts[j].Username })
	return accounts, nil
}

func (m *MemStore) CreatePlayer(ctx context.Context, p *Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.players[p.ID] = *p
	return nil
}

func (m *MemStore) GetPlayer(ctx context.Context, id string) (*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.players[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (m *MemStore) ListPlayers(ctx context.Context) ([]Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	players := make([]Player, 0, len(m.players))
	for _, p := range m.players {
		players = append(players, p)
	}
	sort.Slice(players, func(i, j int) bool { return players[i].Name < players[j].Name })
	return players, nil
}

func (m *MemStore) UpdatePlayerPrice(ctx context.Context, id string, price decimal.Decimal, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.players[id]
	if !ok {
		return ErrNotFound
	}
	p.CurrentPrice = price
	p.LastUpdated = at
	m.players[id] = p
	return nil
}

func (m *MemStore) CreatePosition(ctx context.Context, p *Position) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.positions[p.ID] = *p
	return nil
}

func (m *MemStore) GetPosition(ctx context.Context, accountID, playerID string) (*Position, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.positions {
		if p.AccountID == accountID && p.PlayerID == playerID {
			p := p
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemStore) UpdatePosition(ctx context.Context, id string, quantity int, avgBuyPrice decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.positions[id]
	if !ok {
		return ErrNotFound
	}
	p.Quantity = quantity
	p.AvgBuyPrice = avgBuyPrice
	m.positions[id] = p
	return nil
}

func (m *MemStore) DeletePosition(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.positions, id)
	return nil
}

func (m *MemStore) ListPositions(ctx context.Context, accountID string) ([]PositionDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	details := make([]PositionDetail, 0)
	for _, p := range m.positions {
		if p.AccountID != accountID {
			continue
		}
		pl := m.players[p.PlayerID]
		details = append(details, PositionDetail{
			PlayerID:     p.PlayerID,
			PlayerName:   pl.Name,
			Team:         pl.Team,
			League:       pl.League,
			PlayerPos:    pl.Position,
			Quantity:     p.Quantity,
			AvgBuyPrice:  p.AvgBuyPrice,
			CurrentPrice: pl.CurrentPrice,
		})
	}
	sort.Slice(details, func(i, j int) bool { return details[i].PlayerName < details[j].PlayerName })
	return details, nil
}

func (m *MemStore) CreateTrade(ctx context.Context, t *Trade) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trades = append(m.trades, *t)
	return nil
}

func (m *MemStore) ListTrades(ctx context.Context, accountID string) ([]TradeDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	details := make([]TradeDetail, 0)
	for _, t := range m.trades {
		if t.AccountID != accountID {
			continue
		}
		pl := m.players[t.PlayerID]
		details = append(details, TradeDetail{
			ID:         t.ID,
			PlayerID:   t.PlayerID,
			PlayerName: pl.Name,
			Team:       pl.Team,
			Type:       t.Type,
			Quantity:   t.Quantity,
			Price:      t.Price,
			Timestamp:  t.Timestamp,
		})
	}
	sort.Slice(details, func(i, j int) bool { return details[i].Timestamp.After(details[j].Timestamp) })
	return details, nil
}

func (m *MemStore) UpsertMatchStat(ctx context.Context, s *MatchStat) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, existing := range m.stats {
		if existing.PlayerID == s.PlayerID && existing.Gameweek == s.Gameweek && existing.Season == s.Season {
			stat := *s
			stat.ID = existing.ID
			m.stats[k] = stat
			return nil
		}
	}
	m.stats[s.ID] = *s
	return nil
}

func (m *MemStore) ListMatchStats(ctx context.Context, playerID string, gameweek, season int) ([]MatchStat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := make([]MatchStat, 0)
	for _, s := range m.stats {
		if s.PlayerID != playerID {
			continue
		}
		if gameweek != 0 && s.Gameweek != gameweek {
			continue
		}
		if season != 0 && s.Season != season {
			continue
		}
		stats = append(stats, s)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Gameweek > stats[j].Gameweek })
	return stats, nil
}

func (m *MemStore) CreateNotification(ctx context.Context, n *Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifications = append(m.notifications, *n)
	return nil
}

func (m *MemStore) ListNotifications(ctx context.Context, accountID string) ([]NotificationDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	details := make([]NotificationDetail, 0)
	for _, n := range m.notifications {
		if n.AccountID != accountID {
			continue
		}
		var trade Trade
		for _, t := range m.trades {
			if t.ID == n.TradeID {
				trade = t
				break
			}
		}
		pl := m.players[trade.PlayerID]
		details = append(details, NotificationDetail{
			ID:         n.ID,
			Kind:       n.Kind,
			Status:     n.Status,
			PlayerName: pl.Name,
			Quantity:   trade.Quantity,
			Price:      trade.Price,
			CreatedAt:  n.CreatedAt,
		})
	}
	sort.Slice(details, func(i, j int) bool { return details[i].CreatedAt.After(details[j].CreatedAt) })
	return details, nil
}

func (m *MemStore) MarkNotificationsSeen(ctx context.Context, accountID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, n := range m.notifications {
		if n.AccountID == accountID {
			m.notifications[i].Status = "seen"
		}
	}
	return nil
}
