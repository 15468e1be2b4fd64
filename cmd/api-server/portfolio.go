package main

import (
	"net/http"

	"github.com/footstocks/api-server/internals/portfolio"
)

func (app *App) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	accountID := r.Context().Value("user_id").(string)

	detailed, err := portfolio.New(app.Store, app.KVStore).GetDetailedPortfolio(r.Context(), accountID)
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusInternalServerError, IsError: true, Error: err.Error()})
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: detailed})
}
