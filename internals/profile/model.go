package profile

import (
	"time"

	"github.com/shopspring/decimal"
)

type Profile struct {
	AccountID string          `json:"account_id"`
	Username  string          `json:"username"`
	Email     string          `json:"email"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
}

type CompleteProfile struct {
	Profile           Profile         `json:"profile"`
	TotalValue        decimal.Decimal `json:"total_value"`
	TotalInvested     decimal.Decimal `json:"total_invested"`
	ProfitLoss        decimal.Decimal `json:"profit_loss"`
	ProfitLossPercent decimal.Decimal `json:"profit_loss_percent"`
}
