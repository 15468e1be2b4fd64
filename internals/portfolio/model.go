package portfolio

import "github.com/shopspring/decimal"

// Holding is one position valued at the current price.
type Holding struct {
	PlayerID          string          `json:"player_id"`
	PlayerName        string          `json:"player_name"`
	Team              string          `json:"team"`
	League            string          `json:"league"`
	Position          string          `json:"position"`
	Shares            int             `json:"shares"`
	AvgPrice          decimal.Decimal `json:"avg_price"`
	CurPrice          decimal.Decimal `json:"cur_price"`
	Value             decimal.Decimal `json:"value"`
	Invested          decimal.Decimal `json:"invested"`
	ProfitLoss        decimal.Decimal `json:"profit_loss"`
	ProfitLossPercent decimal.Decimal `json:"profit_loss_percent"`
}

// DetailedPortfolio is the caller's balance, holdings, and aggregates.
type DetailedPortfolio struct {
	Balance           decimal.Decimal `json:"balance"`
	Holdings          []Holding       `json:"holdings"`
	TotalValue        decimal.Decimal `json:"total_value"`
	TotalInvested     decimal.Decimal `json:"total_invested"`
	ProfitLoss        decimal.Decimal `json:"profit_loss"`
	ProfitLossPercent decimal.Decimal `json:"profit_loss_percent"`
}
