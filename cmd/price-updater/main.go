package main

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/footstocks/api-server/internals/store"
	"github.com/footstocks/api-server/pkg/conf"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/rand"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// priceBand is the realistic price range for one position, in
// currency-millions.
type priceBand struct {
	Min int
	Max int
}

var priceBands = map[string]priceBand{
	"Forward":    {Min: 50, Max: 200},
	"Midfielder": {Min: 30, Max: 150},
	"Defender":   {Min: 20, Max: 100},
	"Goalkeeper": {Min: 15, Max: 80},
}

type priceUpdate struct {
	PlayerID   string          `json:"player_id"`
	PlayerName string          `json:"player_name"`
	Price      decimal.Decimal `json:"price"`
	Timestamp  time.Time       `json:"timestamp"`
}

func failOnError(err error, msg string) {
	if err != nil {
		log.Panicf("%s: %s", msg, err)
	}
}

// generatePrice draws a price within the band for the position. Unknown
// positions fall back to the midfielder band.
func generatePrice(rng *rand.Rand, position string) decimal.Decimal {
	band, ok := priceBands[position]
	if !ok {
		band = priceBands["Midfielder"]
	}
	return decimal.NewFromInt(int64(band.Min + rng.Intn(band.Max-band.Min+1)))
}

func main() {
	cfg := conf.Config(".")

	db, err := gorm.Open(postgres.Open(cfg.GetString("db.dsn")), &gorm.Config{})
	failOnError(err, "Failed to connect to database")
	st := store.NewGormStore(db)

	conn, err := amqp.Dial(cfg.GetString("amqp.url"))
	failOnError(err, "Failed to connect to RabbitMQ")
	defer conn.Close()

	ch, err := conn.Channel()
	failOnError(err, "Failed to open a channel")
	defer ch.Close()

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

	interval := cfg.GetDuration("prices.update_interval")
	rng := rand.New(rand.NewSource(uint64(time.Now().UnixNano())))

	log.Printf("Updating player prices every %v", interval)
	for {
		updateAll(st, ch, rng)
		time.Sleep(interval)
	}
}

func updateAll(st *store.GormStore, ch *amqp.Channel, rng *rand.Rand) {
	ctx := context.Background()

	players, err := st.ListPlayers(ctx)
	if err != nil {
		log.Printf("Error fetching players: %v", err)
		return
	}

	for _, player := range players {
		price := generatePrice(rng, player.Position)
		now := time.Now()

		if err := st.UpdatePlayerPrice(ctx, player.ID, price, now); err != nil {
			log.Printf("Error updating %s: %v", player.Name, err)
			continue
		}

		update := priceUpdate{
			PlayerID:   player.ID,
			PlayerName: player.Name,
			Price:      price,
			Timestamp:  now,
		}
		data, err := json.Marshal(update)
		if err != nil {
			log.Printf("Error marshalling update for %s: %v", player.Name, err)
			continue
		}

		err = ch.PublishWithContext(ctx, "prices", "", false, false, amqp.Publishing{
			ContentType: "application/json",
			Body:        data,
		})
		if err != nil {
			log.Printf("Error publishing update for %s: %v", player.Name, err)
			continue
		}

		log.Printf("Updated %s (%s) to %sM", player.Name, player.Position, price.StringFixed(2))
	}
}
