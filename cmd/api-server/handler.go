package main

import (
	"net/http"

	"github.com/footstocks/api-server/pkg/metrics"
)

func (app *App) initHandlers() {
	app.R.Use(metrics.Middleware)

	app.R.Get("/ws", app.handleWebSocket)

	app.R.Post("/auth/login", app.Login)
	app.R.Post("/auth/signup", app.SignUp)
	app.R.Post("/auth/logout", app.Middleware(http.HandlerFunc(app.Logout)))

	app.R.Get("/players", app.Middleware(http.HandlerFunc(app.GetMarket)))
	app.R.Get("/players/prices", app.Middleware(http.HandlerFunc(app.GetPriceHistory)))

	app.R.Post("/trade/transaction", app.Middleware(http.HandlerFunc(app.TransactPlayers)))
	app.R.Get("/trade/transactions", app.Middleware(http.HandlerFunc(app.GetTransactions)))

	app.R.Post("/stats", app.Middleware(http.HandlerFunc(app.UpsertMatchStats)))
	app.R.Get("/stats", app.Middleware(http.HandlerFunc(app.GetMatchStats)))

	app.R.Get("/profile", app.Middleware(http.HandlerFunc(app.GetProfile)))

	app.R.Get("/portfolio", app.Middleware(http.HandlerFunc(app.GetPortfolio)))

	app.R.Get("/leaderboard", app.Middleware(http.HandlerFunc(app.GetLeaderboard)))

	app.R.Get("/notifications", app.Middleware(http.HandlerFunc(app.HandleGetNotifications)))
	app.R.Put("/notifications/seen", app.Middleware(http.HandlerFunc(app.HandleUpdateNotificationStatus)))

	app.R.Handle("/metrics", metrics.Handler())

	app.R.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("I am Healthy"))
	})

}
