package main

import (
	"net/http"

	"github.com/footstocks/api-server/internals/notification"
)

func (app *App) HandleGetNotifications(w http.ResponseWriter, r *http.Request) {
	accountID := r.Context().Value("user_id").(string)

	notifications, err := notification.New(app.KVStore, app.Store).GetNotifications(r.Context(), accountID)
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusInternalServerError, IsError: true, Error: err.Error()})
		return
	}
	sendResponse(w, httpResp{Status: http.StatusOK, Data: notifications})
}

func (app *App) HandleUpdateNotificationStatus(w http.ResponseWriter, r *http.Request) {
	accountID := r.Context().Value("user_id").(string)

	err := notification.New(app.KVStore, app.Store).UpdateNotificationStatus(r.Context(), accountID)
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusInternalServerError, IsError: true, Error: err.Error()})
		return
	}
	sendResponse(w, httpResp{Status: http.StatusOK, Data: map[string]interface{}{"message": "Notification status of this user updated successfully"}})
}
