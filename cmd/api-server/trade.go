package main

import (
	"errors"
	"net/http"

	"github.com/footstocks/api-server/internals/store"
	"github.com/footstocks/api-server/internals/trade"
	"github.com/footstocks/api-server/pkg/metrics"

	"github.com/gorilla/websocket"
)

func (app *App) TransactPlayers(w http.ResponseWriter, r *http.Request) {
	// Get transaction_type from the query params
	transactionType := r.URL.Query().Get("transaction_type")
	playerID := r.URL.Query().Get("player_id")
	accountID := r.Context().Value("user_id").(string)

	if playerID == "" || transactionType == "" {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "player_id and transaction_type are required"})
		return
	}

	var transactionDetails trade.TransactionDetails
	err := getBody(r, &transactionDetails)
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "Invalid request body"})
		return
	}

	ts := app.tradeService()
	var executed *store.Trade
	switch transactionType {
	case store.TradeTypeBuy:
		executed, err = ts.Buy(r.Context(), accountID, playerID, transactionDetails)
	case store.TradeTypeSell:
		executed, err = ts.Sell(r.Context(), accountID, playerID, transactionDetails)
	default:
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "transaction_type must be buy or sell"})
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, trade.ErrInsufficientFunds),
			errors.Is(err, trade.ErrInsufficientShares),
			errors.Is(err, trade.ErrStaleQuote),
			errors.Is(err, trade.ErrInvalidQuantity):
			sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: err.Error()})
		case errors.Is(err, store.ErrNotFound):
			sendResponse(w, httpResp{Status: http.StatusNotFound, IsError: true, Error: err.Error()})
		default:
			sendResponse(w, httpResp{Status: http.StatusInternalServerError, IsError: true, Error: "Transaction failed, please retry"})
		}
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: map[string]interface{}{"message": "Transaction successful", "trade": executed}})
}

func (app *App) GetMarket(w http.ResponseWriter, r *http.Request) {
	accountID := r.Context().Value("user_id").(string)

	market, err := app.tradeService().GetMarket(r.Context(), accountID)
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusInternalServerError, IsError: true, Error: err.Error()})
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: market})
}

func (app *App) GetTransactions(w http.ResponseWriter, r *http.Request) {
	accountID := r.Context().Value("user_id").(string)

	transactions, err := app.tradeService().ListTransactions(r.Context(), accountID)
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusInternalServerError, IsError: true, Error: err.Error()})
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: transactions})
}

// GetPriceHistory serves the price timeseries for one player. Ticker data
// is secondary display data: failures degrade to an empty list.
func (app *App) GetPriceHistory(w http.ResponseWriter, r *http.Request) {
	playerID := r.URL.Query().Get("player_id")
	if playerID == "" {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "player_id is required"})
		return
	}

	prices, err := app.tradeService().GetPriceHistory(r.Context(), playerID)
	if err != nil {
		prices = []string{}
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: map[string]interface{}{"data": prices}})
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func (app *App) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "Could not open websocket connection", http.StatusBadRequest)
		return
	}

	// defer the connection close and remove the client from the list
	defer func() {
		conn.Close()
		app.ClientsM.Lock()
		delete(app.WS, conn)
		app.ClientsM.Unlock()
		metrics.WebSocketClients.Dec()
	}()

	app.ClientsM.Lock()
	app.WS[conn] = true
	app.ClientsM.Unlock()
	metrics.WebSocketClients.Inc()

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			break
		}
	}
}
