// Package websocket - file: websocket/broadcast.go
package websocket

import (
	"encoding/json"

	"betboard/logger"
)

// broadcast is the channel board events flow through on their way to
// every connected viewer.
var broadcast = make(chan []byte, 64)

// Bet event types pushed to board viewers.
const (
	EventBetCreated = "betCreated"
	EventBetUpdated = "betUpdated"
	EventBetDeleted = "betDeleted"
)

// HandleMessages listens for events on the broadcast channel and
// distributes them to connections. Run once from main.
func HandleMessages() {
	for msg := range broadcast {
		connectionsMu.Lock()
		for c := range connections {
			select {
			case c.send <- msg:
			default:
				logger.Warn.Printf("Dropping board event for slow connection %v", c.conn.RemoteAddr())
			}
		}
		connectionsMu.Unlock()
	}
}

// BroadcastBetEvent pushes a bet lifecycle event to every connected
// board viewer. Payload is typically the bet itself, or just its ID
// for deletions.
func BroadcastBetEvent(event string, payload interface{}) {
	msg, err := json.Marshal(map[string]interface{}{
		"event":   event,
		"payload": payload,
	})
	if err != nil {
		logger.Error.Printf("BroadcastBetEvent: error marshalling event: %v", err)
		return
	}

	select {
	case broadcast <- msg:
		PublishBroadcastBacklog(len(broadcast))
	default:
		logger.Warn.Printf("BroadcastBetEvent: broadcast queue full, dropping %s event", event)
	}
}
