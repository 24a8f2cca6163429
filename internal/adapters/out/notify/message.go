package notify

import (
	"encoding/json"
	"time"
)

// ReadyMessage is the body published for every ready order.
type ReadyMessage struct {
	OrderToken string    `json:"order_token"`
	ReadyAt    time.Time `json:"ready_at"`
}

func encodeReady(token string, at time.Time) ([]byte, error) {
	return json.Marshal(ReadyMessage{OrderToken: token, ReadyAt: at.UTC()})
}
