package main

import (
	"net/http"

	"github.com/footstocks/api-server/internals/leaderboard"
)

func (app *App) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	scores, err := leaderboard.New(app.KVStore, app.Store).GetLeaderboard(r.Context())
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusInternalServerError, IsError: true, Error: err.Error()})
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: scores})
}
