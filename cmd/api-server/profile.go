package main

import (
	"net/http"

	"github.com/footstocks/api-server/internals/profile"
)

func (app *App) GetProfile(w http.ResponseWriter, r *http.Request) {
	accountID := r.Context().Value("user_id").(string)

	completeProfile, err := profile.New(app.KVStore, app.Store).GetProfile(r.Context(), accountID)
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusInternalServerError, IsError: true, Error: err.Error()})
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: completeProfile})
}
