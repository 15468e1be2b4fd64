package trade

import "github.com/shopspring/decimal"

// TransactionDetails is the buy/sell request body. Price is the quote the
// client saw; settlement re-reads the authoritative price and rejects the
// order when the quote has drifted too far.
type TransactionDetails struct {
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// MarketPlayer is one row of the market listing: player display fields,
// current price, and the caller's holding in that player.
type MarketPlayer struct {
	PlayerID     string          `json:"player_id"`
	PlayerName   string          `json:"player_name"`
	Team         string          `json:"team"`
	League       string          `json:"league"`
	Position     string          `json:"position"`
	ImageURL     string          `json:"image_url"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	LastUpdated  string          `json:"last_updated"`
	Shares       int             `json:"shares"`
}
