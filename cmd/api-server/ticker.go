package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/footstocks/api-server/internals/store"
	"github.com/footstocks/api-server/pkg/metrics"

	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
)

// PriceUpdate is one repricing event from the price-updater process.
type PriceUpdate struct {
	PlayerID   string          `json:"player_id"`
	PlayerName string          `json:"player_name"`
	Price      decimal.Decimal `json:"price"`
	Timestamp  time.Time       `json:"timestamp"`
}

// TickerMessage is the envelope pushed to websocket clients.
type TickerMessage struct {
	Kind  string       `json:"kind"` // "price" or "trade"
	Price *PriceUpdate `json:"price,omitempty"`
	Trade *store.Trade `json:"trade,omitempty"`
}

// PricePicker consumes one price update: extend the cached timeseries for
// the player and push the update to every connected ticker client. The
// price row itself was already persisted by the updater.
func (app *App) PricePicker(data []byte) {

	var update PriceUpdate
	if !json.Valid(data) {
		fmt.Println("Invalid JSON data")
		return
	}
	err := json.Unmarshal(data, &update)
	if err != nil {
		fmt.Println("Error unmarshalling data:", err)
		return
	}

	metrics.PriceUpdatesTotal.Inc()

	key := "players_" + update.PlayerID
	timestamp := update.Timestamp.Format("2006-01-02 15:04:05.000000-07")
	value := fmt.Sprintf("%s,%s", timestamp, update.Price.StringFixed(2))

	if err := app.KVStore.RPush(key, value); err != nil {
		fmt.Println("Error writing to redis cache for player:", update.PlayerID, "error:", err)
	}
	// also update the flat price hash used by the market screen cache
	if err := app.KVStore.HSet("players", update.PlayerID, update.Price.String()); err != nil {
		fmt.Println("Error writing to redis cache for player:", update.PlayerID, "error:", err)
	}

	app.broadcast(TickerMessage{Kind: "price", Price: &update})
}

// TradePicker pushes an executed trade onto the ticker.
func (app *App) TradePicker(data []byte) {
	var executed store.Trade
	if err := json.Unmarshal(data, &executed); err != nil {
		fmt.Println("Error unmarshalling data:", err)
		return
	}

	app.broadcast(TickerMessage{Kind: "trade", Trade: &executed})
}

func (app *App) broadcast(msg TickerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		fmt.Println("Error marshalling data:", err)
		return
	}

	app.ClientsM.Lock()
	for conn := range app.WS {
		err := conn.WriteMessage(websocket.TextMessage, data)
		if err != nil {
			conn.Close()
		}
	}
	app.ClientsM.Unlock()
}
