package main

import (
	"net/http"
	"strconv"

	"github.com/footstocks/api-server/internals/stats"
	"github.com/footstocks/api-server/internals/store"
)

func (app *App) UpsertMatchStats(w http.ResponseWriter, r *http.Request) {
	var input stats.MatchStatInput
	err := getBody(r, &input)
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "Invalid request body"})
		return
	}

	stat, err := stats.New(app.Store).Upsert(r.Context(), input)
	if err != nil {
		if err == stats.ErrMissingKey || err == store.ErrNotFound {
			sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: err.Error()})
			return
		}
		sendResponse(w, httpResp{Status: http.StatusInternalServerError, IsError: true, Error: err.Error()})
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: stat})
}

// GetMatchStats serves a player's stat lines. Stats are secondary display
// data: failures degrade to an empty list.
func (app *App) GetMatchStats(w http.ResponseWriter, r *http.Request) {
	playerID := r.URL.Query().Get("player_id")
	if playerID == "" {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "player_id is required"})
		return
	}

	gameweek, _ := strconv.Atoi(r.URL.Query().Get("gameweek"))
	season, _ := strconv.Atoi(r.URL.Query().Get("season"))

	lines, err := stats.New(app.Store).List(r.Context(), playerID, gameweek, season)
	if err != nil {
		lines = []store.MatchStat{}
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: lines})
}
