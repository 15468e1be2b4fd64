package store

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a referenced account, player or position
// does not exist. Every other store failure is returned wrapped and should
// be treated as transient.
var ErrNotFound = errors.New("record not found")

const (
	TradeTypeBuy  = "buy"
	TradeTypeSell = "sell"
)

// Account table structure.
type Account struct {
	ID        string          `json:"id" gorm:"primaryKey"`
	Username  string          `json:"username" gorm:"not null"`
	Email     string          `json:"email" gorm:"uniqueIndex;not null"`
	Password  string          `json:"-" gorm:"not null"`
	Balance   decimal.Decimal `json:"balance" gorm:"type:numeric;not null"`
	CreatedAt time.Time       `json:"created_at"`
}

// Player table structure. CurrentPrice is denominated in currency-millions
// and is only ever mutated by the price updater.
type Player struct {
	ID           string          `json:"id" gorm:"primaryKey"`
	Name         string          `json:"name" gorm:"not null"`
	Team         string          `json:"team"`
	League       string          `json:"league"`
	Position     string          `json:"position"`
	CurrentPrice decimal.Decimal `json:"current_price" gorm:"type:numeric"`
	ImageURL     string          `json:"image_url"`
	LastUpdated  time.Time       `json:"last_updated"`
}

// Position is one account's holding in one player. Unique per
// (account_id, player_id); a row with zero quantity must not exist.
type Position struct {
	ID          string          `json:"id" gorm:"primaryKey"`
	AccountID   string          `json:"account_id" gorm:"uniqueIndex:idx_account_player;not null"`
	PlayerID    string          `json:"player_id" gorm:"uniqueIndex:idx_account_player;not null"`
	Quantity    int             `json:"quantity" gorm:"not null"`
	AvgBuyPrice decimal.Decimal `json:"average_buy_price" gorm:"type:numeric"`
}

// Trade is an immutable append-only log entry for one execution.
type Trade struct {
	ID        string          `json:"id" gorm:"primaryKey"`
	AccountID string          `json:"account_id" gorm:"index;not null"`
	PlayerID  string          `json:"player_id" gorm:"not null"`
	Type      string          `json:"type" gorm:"not null"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	Price     decimal.Decimal `json:"price" gorm:"type:numeric"`
	Timestamp time.Time       `json:"timestamp"`
}

// MatchStat is one player's statistics for one gameweek of a season.
// Upserted on (player_id, gameweek, season).
type MatchStat struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	PlayerID      string    `json:"player_id" gorm:"uniqueIndex:idx_player_gw_season;not null"`
	Gameweek      int       `json:"gameweek" gorm:"uniqueIndex:idx_player_gw_season;not null"`
	Season        int       `json:"season" gorm:"uniqueIndex:idx_player_gw_season;not null"`
	MatchDate     time.Time `json:"match_date"`
	OpponentTeam  string    `json:"opponent_team"`
	MinutesPlayed int       `json:"minutes_played"`
	Goals         int       `json:"goals"`
	Assists       int       `json:"assists"`
	CleanSheet    bool      `json:"clean_sheet"`
	YellowCards   int       `json:"yellow_cards"`
	RedCards      int       `json:"red_cards"`
	Rating        float64   `json:"rating"`
	TotalPoints   int       `json:"total_points"`
}

// Notification records a trade execution for the notifications feed.
type Notification struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	AccountID string    `json:"account_id" gorm:"index;not null"`
	TradeID   string    `json:"trade_id" gorm:"not null"`
	Kind      string    `json:"kind" gorm:"not null"`
	Status    string    `json:"status" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

// PositionDetail is the fixed projection of a position joined with its
// player row. Join results always take this shape, never a loose map.
type PositionDetail struct {
	PlayerID     string          `json:"player_id"`
	PlayerName   string          `json:"player_name"`
	Team         string          `json:"team"`
	League       string          `json:"league"`
	PlayerPos    string          `json:"position"`
	Quantity     int             `json:"quantity"`
	AvgBuyPrice  decimal.Decimal `json:"average_buy_price"`
	CurrentPrice decimal.Decimal `json:"current_price"`
}

// TradeDetail is a trade log entry joined with player display fields.
type TradeDetail struct {
	ID         string          `json:"id"`
	PlayerID   string          `json:"player_id"`
	PlayerName string          `json:"player_name"`
	Team       string          `json:"team"`
	Type       string          `json:"type"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	Timestamp  time.Time       `json:"timestamp"`
}

// NotificationDetail is a notification joined with its trade and player.
type NotificationDetail struct {
	ID         string          `json:"id"`
	Kind       string          `json:"kind"`
	Status     string          `json:"status"`
	PlayerName string          `json:"player_name"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Store is the persistence boundary for settlement and the read views.
//
// WithTx runs fn against a Store whose mutations commit or roll back as one
// unit. The postgres implementation locks account rows read through
// GetAccountForUpdate until the transaction ends, so settlements touching
// the same account serialize.
type Store interface {
	WithTx(ctx context.Context, fn func(Store) error) error

	CreateAccount(ctx context.Context, a *Account) error
	GetAccount(ctx context.Context, id string) (*Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*Account, error)
	GetAccountForUpdate(ctx context.Context, id string) (*Account, error)
	UpdateAccountBalance(ctx context.Context, id string, balance decimal.Decimal) error
	ListAccounts(ctx context.Context) ([]Account, error)

	CreatePlayer(ctx context.Context, p *Player) error
	GetPlayer(ctx context.Context, id string) (*Player, error)
	ListPlayers(ctx context.Context) ([]Player, error)
	UpdatePlayerPrice(ctx context.Context, id string, price decimal.Decimal, at time.Time) error

	CreatePosition(ctx context.Context, p *Position) error
	GetPosition(ctx context.Context, accountID, playerID string) (*Position, error)
	UpdatePosition(ctx context.Context, id string, quantity int, avgBuyPrice decimal.Decimal) error
	DeletePosition(ctx context.Context, id string) error
	ListPositions(ctx context.Context, accountID string) ([]PositionDetail, error)

	CreateTrade(ctx context.Context, t *Trade) error
	ListTrades(ctx context.Context, accountID string) ([]TradeDetail, error)

	UpsertMatchStat(ctx context.Context, s *MatchStat) error
	ListMatchStats(ctx context.Context, playerID string, gameweek, season int) ([]MatchStat, error)

	CreateNotification(ctx context.Context, n *Notification) error
	ListNotifications(ctx context.Context, accountID string) ([]NotificationDetail, error)
	MarkNotificationsSeen(ctx context.Context, accountID string) error
}
