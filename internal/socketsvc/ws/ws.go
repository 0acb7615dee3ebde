package ws

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/zahlenlotto/lotto-services/internal/comm"
)

type Ws struct {
	connMap sync.Map // to keep track of socket connection with socketId
	seedMap sync.Map // to keep track of which seed a socket watches
}

func NewWs() *Ws {
	return &Ws{}
}

// handle socket message from web clients
func (s *Ws) SocketMessage(socketId string, message *comm.WSMessage) {
	switch message.Type {
	case "watch":
		s.handleWatch(socketId, message)
	default:
		log.Warnf("unknown event received: %s", message.Type)
	}
}

// handleWatch registers the socket as a viewer of one session seed. Every
// broadcast for that seed is forwarded to the socket until it disconnects or
// watches another seed.
func (s *Ws) handleWatch(socketId string, msg *comm.WSMessage) {
	var payload comm.WatchRequest
	if err := json.Unmarshal(msg.Data, &payload); err != nil {
		log.Errorf("Error: invalid_watch_data malformed watch payload %s", err)
		return
	}

	if len(payload.Seed) < comm.MinSeedLength {
		log.Errorf("Invalid watch payload: seed too short")
		return
	}

	s.seedMap.Store(socketId, payload.Seed)
	log.Infof("socket %s watching session %s", socketId, payload.Seed)
}

func (s *Ws) StoreConnection(socketId string, conn *websocket.Conn) {
	s.connMap.Store(socketId, conn)
}

func (s *Ws) GetConnection(socketId string) (*websocket.Conn, bool) {
	conn, ok := s.connMap.Load(socketId)
	if !ok {
		return nil, false
	}
	return conn.(*websocket.Conn), true
}

func (s *Ws) GetSeed(socketId string) (string, bool) {
	seed, ok := s.seedMap.Load(socketId)
	if !ok {
		return "", false
	}
	return seed.(string), true
}

func (s *Ws) GetSeedSockets(seed string) ([]string, bool) {
	var sockets []string
	found := false

	s.seedMap.Range(func(key, value interface{}) bool {
		if value.(string) == seed {
			sockets = append(sockets, key.(string))
			found = true
		}
		return true // continue iterating
	})

	return sockets, found
}

func (s *Ws) HandleDisconnect(socketId string) {
	s.connMap.Delete(socketId)
	s.seedMap.Delete(socketId)
}
