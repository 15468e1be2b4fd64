package main

import (
	"log"
	"net/http"
	"sync"

	"github.com/footstocks/api-server/internals/store"
	"github.com/footstocks/api-server/pkg/conf"
	"github.com/footstocks/api-server/pkg/kvstore"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/cors"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

type App struct {
	DB       *gorm.DB
	Store    *store.GormStore
	R        *chi.Mux
	WS       map[*websocket.Conn]bool
	ClientsM sync.Mutex
	KVStore  kvstore.KVStore
	Ch       *amqp.Channel
	Conf     *viper.Viper

	Secret          string
	StartingBalance decimal.Decimal
	QuoteTolerance  decimal.Decimal
}

func main() {

	cfg := conf.Config(".")

	conn, err := amqp.Dial(cfg.GetString("amqp.url"))
	failOnError(err, "Failed to connect to RabbitMQ")
	defer conn.Close()

	ch, err := conn.Channel()
	failOnError(err, "Failed to open a channel")
	defer ch.Close()

	app := &App{
		WS:     make(map[*websocket.Conn]bool),
		Ch:     ch,
		Conf:   cfg,
		Secret: cfg.GetString("auth.secret"),
	}

	app.StartingBalance, err = decimal.NewFromString(cfg.GetString("account.starting_balance"))
	failOnError(err, "Invalid starting balance")
	app.QuoteTolerance, err = decimal.NewFromString(cfg.GetString("trade.quote_tolerance"))
	failOnError(err, "Invalid quote tolerance")

	db, err := app.initDB()
	if err != nil {
		panic(err)
	}

	r := chi.NewRouter()
	// CORS middleware configuration
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173"}, // Frontend URL
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}).Handler)

	app.DB = db
	app.R = r

	app.initHandlers()
	app.initKVStore()
	app.initTxnQueue()

	// Price updates fan out from the price-updater process.
	err = ch.ExchangeDeclare(
		"prices", // name
		"fanout", // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	failOnError(err, "Failed to declare an exchange")

	q, err := ch.QueueDeclare(
		"",    // name
		false, // durable
		false, // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	failOnError(err, "Failed to declare a queue")

	err = ch.QueueBind(
		q.Name,   // queue name
		"",       // routing key
		"prices", // exchange
		false,
		nil,
	)
	failOnError(err, "Failed to bind a queue")

	priceMsgs, err := ch.Consume(
		q.Name, // queue
		"",     // consumer
		true,   // auto-ack
		false,  // exclusive
		false,  // no-local
		false,  // no-wait
		nil,    // args
	)
	failOnError(err, "Failed to register a consumer")

	go func() {
		for d := range priceMsgs {
			log.Printf(" [x] %s", d.Body)
			app.PricePicker(d.Body)
		}
	}()

	// Executed trades also show up on the ticker.
	txnMsgs, err := ch.Consume("txns", "", true, false, false, false, nil)
	failOnError(err, "Failed to register a consumer")

	go func() {
		for d := range txnMsgs {
			app.TradePicker(d.Body)
		}
	}()

	if err := http.ListenAndServe(cfg.GetString("http.addr"), r); err != nil {
		panic(err)
	}

}
