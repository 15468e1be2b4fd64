package notification

import "time"

type Notification struct {
	Id          string    `json:"id"`
	Entity      string    `json:"entity"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
