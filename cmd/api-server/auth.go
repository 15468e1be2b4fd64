package main

import (
	"net/http"

	"github.com/footstocks/api-server/internals/auth"
)

func (app *App) Login(w http.ResponseWriter, r *http.Request) {
	var loginDetails auth.LoginRequestBody
	err := getBody(r, &loginDetails)
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "Invalid request body"})
		return
	}

	token, err := app.authService().Login(r.Context(), loginDetails)
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusUnauthorized, IsError: true, Error: err.Error()})
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: map[string]interface{}{"token": token}})
}

func (app *App) SignUp(w http.ResponseWriter, r *http.Request) {
	var signUpDetails auth.SignUpRequestBody
	err := getBody(r, &signUpDetails)
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: "Invalid request body"})
		return
	}

	err = app.authService().SignUp(r.Context(), signUpDetails)
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusBadRequest, IsError: true, Error: err.Error()})
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: map[string]interface{}{"message": "Signup successful"}})
}

func (app *App) Logout(w http.ResponseWriter, r *http.Request) {
	accountID := r.Context().Value("user_id").(string)
	token := r.Context().Value("token").(string)

	err := app.authService().Logout(accountID, token)
	if err != nil {
		sendResponse(w, httpResp{Status: http.StatusInternalServerError, IsError: true, Error: err.Error()})
		return
	}

	sendResponse(w, httpResp{Status: http.StatusOK, Data: map[string]interface{}{"message": "Logout successful"}})
}
