package main

import (
	"log"

	"github.com/footstocks/api-server/internals/auth"
	"github.com/footstocks/api-server/internals/store"
	"github.com/footstocks/api-server/internals/trade"
	"github.com/footstocks/api-server/pkg/kvstore"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func failOnError(err error, msg string) {
	if err != nil {
		log.Panicf("%s: %s", msg, err)
	}
}

func (app *App) initDB() (*gorm.DB, error) {
	dsn := app.Conf.GetString("db.dsn")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	app.Store = store.NewGormStore(db)
	if err := app.Store.Migrate(); err != nil {
		return nil, err
	}

	return db, nil
}

func (app *App) initKVStore() {
	// initialize redis
	app.KVStore = kvstore.NewRedis(app.Conf.GetString("redis.addr"), "", 0)
}

func (app *App) initTxnQueue() {
	_, err := app.Ch.QueueDeclare(
		trade.TxnQueue, // name
		false,          // durable
		false,          // delete when unused
		false,          // exclusive
		false,          // no-wait
		nil,            // arguments
	)
	failOnError(err, "Failed to declare a queue")
}

func (app *App) authService() *auth.AuthService {
	return auth.New(app.KVStore, app.Store, app.Secret, app.StartingBalance)
}

func (app *App) tradeService() *trade.TradeService {
	ts := trade.New(app.Store, app.KVStore, app.Ch)
	ts.QuoteTolerance = app.QuoteTolerance
	return ts
}
