package broker

import (
	"encoding/json"

	"github.com/gorilla/websocket"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"

	"github.com/zahlenlotto/lotto-services/internal/comm"
)

// Broker bridges the NATS broadcast channel to websocket viewers. Each sync
// message published for a seed is fanned out to every socket watching it.
type Broker struct {
	Conn           *nats.Conn
	GetConnection  func(string) (*websocket.Conn, bool)
	GetSeedSockets func(string) ([]string, bool)
}

func NewBroker(conn *nats.Conn, fncGetConnection func(string) (*websocket.Conn, bool), fncGetSeedSockets func(string) ([]string, bool)) *Broker {
	return &Broker{
		Conn:           conn,
		GetConnection:  fncGetConnection,
		GetSeedSockets: fncGetSeedSockets,
	}
}

// SubscribeSessions consumes every session's broadcast subject.
func (b *Broker) SubscribeSessions(subject string) (*nats.Subscription, error) {
	sub, err := b.Conn.Subscribe(subject, b.handleMessages)
	if err != nil {
		return nil, err
	}

	return sub, nil
}

// Publish sends a payload to the broadcast channel.
func (b *Broker) Publish(subject string, payload []byte) error {
	err := b.Conn.Publish(subject, payload)
	if err != nil {
		log.Errorf("Error publishing to subject %s: %s", subject, err)
		return err
	}

	return nil
}

// handleMessages receives sync messages from the broadcast channel
func (b *Broker) handleMessages(msgNats *nats.Msg) {
	message := &comm.SyncMessage{}
	err := json.Unmarshal(msgNats.Data, &message)
	if err != nil {
		log.Errorf("Error %s", err)
		return
	}

	switch message.Type {
	case comm.TypeNumberDrawn, comm.TypeReset, comm.TypeSyncResponse:
		b.fanout(message, msgNats.Data)
	case comm.TypeSyncRequest:
		// host-side concern, browsers never need it
	default:
		log.Error("Unknown message")
	}
}

// fanout forwards a sync message to every socket watching its seed.
func (b *Broker) fanout(message *comm.SyncMessage, raw []byte) {
	sockets, found := b.GetSeedSockets(message.Seed)
	if !found {
		return
	}

	out := &comm.WSMessage{
		Type: "sync",
		Data: raw,
	}

	for _, socketId := range sockets {
		conn, ok := b.GetConnection(socketId)
		if !ok {
			continue
		}

		out.SocketId = socketId
		payload, err := json.Marshal(out)
		if err != nil {
			log.Errorf("Error marshaling ws message %s", err)
			continue
		}

		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Errorf("Error writing to socket %s: %s", socketId, err)
		}
	}
}
