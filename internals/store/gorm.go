package store

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormStore is the postgres-backed Store.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

// Migrate creates the tables on startup.
func (s *GormStore) Migrate() error {
	return s.DB.AutoMigrate(&Account{}, &Player{}, &Position{}, &Trade{}, &MatchStat{}, &Notification{})
}

func (s *GormStore) WithTx(ctx context.Context, fn func(Store) error) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{DB: tx})
	})
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *GormStore) CreateAccount(ctx context.Context, a *Account) error {
	return s.DB.WithContext(ctx).Table("accounts").Create(a).Error
}

func (s *GormStore) GetAccount(ctx context.Context, id string) (*Account, error) {
	var a Account
	err := s.DB.WithContext(ctx).Table("accounts").Where("id = ?", id).First(&a).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

func (s *GormStore) GetAccountByEmail(ctx context.Context, email string) (*Account, error) {
	var a Account
	err := s.DB.WithContext(ctx).Table("accounts").Where("email = ?", email).First(&a).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

// GetAccountForUpdate locks the account row until the surrounding
// transaction commits. Only meaningful inside WithTx.
func (s *GormStore) GetAccountForUpdate(ctx context.Context, id string) (*Account, error) {
	var a Account
	err := s.DB.WithContext(ctx).Raw("SELECT * FROM accounts WHERE id = ? FOR UPDATE", id).First(&a).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

func (s *GormStore) UpdateAccountBalance(ctx context.Context, id string, balance decimal.Decimal) error {
	return s.DB.WithContext(ctx).Exec("UPDATE accounts SET balance = ? WHERE id = ?", balance, id).Error
}

func (s *GormStore) ListAccounts(ctx context.Context) ([]Account, error) {
	accounts := make([]Account, 0)
	err := s.DB.WithContext(ctx).Table("accounts").Order("username").Scan(&accounts).Error
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

func (s *GormStore) CreatePlayer(ctx context.Context, p *Player) error {
	return s.DB.WithContext(ctx).Table("players").Create(p).Error
}

func (s *GormStore) GetPlayer(ctx context.Context, id string) (*Player, error) {
	var p Player
	err := s.DB.WithContext(ctx).Table("players").Where("id = ?", id).First(&p).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (s *GormStore) ListPlayers(ctx context.Context) ([]Player, error) {
	players := make([]Player, 0)
	err := s.DB.WithContext(ctx).Table("players").Order("name").Scan(&players).Error
	if err != nil {
		return nil, err
	}
	return players, nil
}

func (s *GormStore) UpdatePlayerPrice(ctx context.Context, id string, price decimal.Decimal, at time.Time) error {
	return s.DB.WithContext(ctx).Exec("UPDATE players SET current_price = ?, last_updated = ? WHERE id = ?", price, at, id).Error
}

func (s *GormStore) CreatePosition(ctx context.Context, p *Position) error {
	return s.DB.WithContext(ctx).Table("positions").Create(p).Error
}

func (s *GormStore) GetPosition(ctx context.Context, accountID, playerID string) (*Position, error) {
	var p Position
	err := s.DB.WithContext(ctx).Table("positions").Where("account_id = ? AND player_id = ?", accountID, playerID).First(&p).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (s *GormStore) UpdatePosition(ctx context.Context, id string, quantity int, avgBuyPrice decimal.Decimal) error {
	return s.DB.WithContext(ctx).Exec("UPDATE positions SET quantity = ?, avg_buy_price = ? WHERE id = ?", quantity, avgBuyPrice, id).Error
}

func (s *GormStore) DeletePosition(ctx context.Context, id string) error {
	return s.DB.WithContext(ctx).Exec("DELETE FROM positions WHERE id = ?", id).Error
}

func (s *GormStore) ListPositions(ctx context.Context, accountID string) ([]PositionDetail, error) {
	details := make([]PositionDetail, 0)
	err := s.DB.WithContext(ctx).Raw(`SELECT p.player_id, pl.name AS player_name, pl.team, pl.league,
		pl.position AS player_pos, p.quantity, p.avg_buy_price, pl.current_price
		FROM positions AS p JOIN players AS pl ON pl.id = p.player_id
		WHERE p.account_id = ? ORDER BY pl.name`, accountID).Scan(&details).Error
	if err != nil {
		return nil, err
	}
	return details, nil
}

func (s *GormStore) CreateTrade(ctx context.Context, t *Trade) error {
	return s.DB.WithContext(ctx).Table("trades").Create(t).Error
}

func (s *GormStore) ListTrades(ctx context.Context, accountID string) ([]TradeDetail, error) {
	details := make([]TradeDetail, 0)
	err := s.DB.WithContext(ctx).Raw(`SELECT t.id, t.player_id, pl.name AS player_name, pl.team,
		t.type, t.quantity, t.price, t.timestamp
		FROM trades AS t JOIN players AS pl ON pl.id = t.player_id
		WHERE t.account_id = ? ORDER BY t.timestamp DESC`, accountID).Scan(&details).Error
	if err != nil {
		return nil, err
	}
	return details, nil
}

func (s *GormStore) UpsertMatchStat(ctx context.Context, stat *MatchStat) error {
	return s.DB.WithContext(ctx).Exec(`INSERT INTO match_stats
		(id, player_id, gameweek, season, match_date, opponent_team, minutes_played,
		 goals, assists, clean_sheet, yellow_cards, red_cards, rating, total_points)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (player_id, gameweek, season) DO UPDATE SET
		 match_date = EXCLUDED.match_date, opponent_team = EXCLUDED.opponent_team,
		 minutes_played = EXCLUDED.minutes_played, goals = EXCLUDED.goals,
		 assists = EXCLUDED.assists, clean_sheet = EXCLUDED.clean_sheet,
		 yellow_cards = EXCLUDED.yellow_cards, red_cards = EXCLUDED.red_cards,
		 rating = EXCLUDED.rating, total_points = EXCLUDED.total_points`,
		stat.ID, stat.PlayerID, stat.Gameweek, stat.Season, stat.MatchDate,
		stat.OpponentTeam, stat.MinutesPlayed, stat.Goals, stat.Assists,
		stat.CleanSheet, stat.YellowCards, stat.RedCards, stat.Rating, stat.TotalPoints).Error
}

func (s *GormStore) ListMatchStats(ctx context.Context, playerID string, gameweek, season int) ([]MatchStat, error) {
	stats := make([]MatchStat, 0)
	q := s.DB.WithContext(ctx).Table("match_stats").Where("player_id = ?", playerID)
	if gameweek != 0 {
		q = q.Where("gameweek = ?", gameweek)
	}
	if season != 0 {
		q = q.Where("season = ?", season)
	}
	err := q.Order("gameweek DESC").Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *GormStore) CreateNotification(ctx context.Context, n *Notification) error {
	return s.DB.WithContext(ctx).Table("notifications").Create(n).Error
}

func (s *GormStore) ListNotifications(ctx context.Context, accountID string) ([]NotificationDetail, error) {
	details := make([]NotificationDetail, 0)
	err := s.DB.WithContext(ctx).Raw(`SELECT n.id, n.kind, n.status, pl.name AS player_name,
		t.quantity, t.price, n.created_at
		FROM notifications AS n
		JOIN trades AS t ON t.id = n.trade_id
		JOIN players AS pl ON pl.id = t.player_id
		WHERE n.account_id = ? ORDER BY n.created_at DESC`, accountID).Scan(&details).Error
	if err != nil {
		return nil, err
	}
	return details, nil
}

func (s *GormStore) MarkNotificationsSeen(ctx context.Context, accountID string) error {
	return s.DB.WithContext(ctx).Exec("UPDATE notifications SET status = ? WHERE account_id = ?", "seen", accountID).Error
}
