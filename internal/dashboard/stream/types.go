package stream

import "encoding/json"

// Topics pushed to dashboard clients.
const (
	TopicState  = "state"
	TopicAlerts = "alerts"
)

// Message is the envelope of every frame sent to a client.
type Message struct {
	Topic string          `json:"topic"` // e.g. "state"
	Type  string          `json:"type"`  // "snapshot" on connect, "update" afterwards
	Ts    int64           `json:"ts"`    // send time in milliseconds
	Data  json.RawMessage `json:"data"`
}

// Observer is notified as clients come and go.
type Observer interface {
	StreamClientConnected()
	StreamClientDisconnected()
}

type nopObserver struct{}

func (nopObserver) StreamClientConnected()    {}
func (nopObserver) StreamClientDisconnected() {}
