// Package sync keeps one host's drawn-number state visible to guests. Two
// observer paths feed the same callbacks: the NATS broadcast channel for
// low-latency same-site updates, and remote polling of the session endpoint
// for cross-device sync. The remote record's lastUpdate is the single
// arbiter of truth; a broadcast is best-effort and never required for
// correctness.
package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"

	"github.com/zahlenlotto/lotto-services/internal/comm"
	natscli "github.com/zahlenlotto/lotto-services/internal/nats"
)

// Role is fixed at construction and never transitions. A guest that wants to
// draw starts a new session instead.
type Role int

const (
	RoleIdle Role = iota
	RoleHost
	RoleGuest
)

const DefaultPollInterval = 2000 * time.Millisecond

// Callbacks receive adopted state. OnCardConfig fires when a received update
// carries a card configuration, letting a guest regenerate cards from the
// shared seed.
type Callbacks struct {
	OnStateUpdate func(drawnNumbers []int, currentNumber *int)
	OnReset       func()
	OnCardConfig  func(numberOfPlayers, cardsPerPlayer int, playerNames []string)
}

// GetStateFunc lets a host answer SYNC_REQUEST broadcasts with its current
// state.
type GetStateFunc func() (drawnNumbers []int, currentNumber *int)

type Syncer struct {
	role     Role
	seed     string
	baseURL  string // session endpoint base, e.g. http://localhost:8081/v1
	client   *http.Client
	nc       *nats.Conn
	sub      *nats.Subscription
	interval time.Duration

	callbacks Callbacks
	getState  GetStateFunc

	mu         sync.Mutex
	lastUpdate int64

	connected atomic.Bool
	stop      chan struct{}
	stopOnce  sync.Once
}

// New builds a syncer for one session seed. nc may be nil, in which case the
// broadcast path is disabled and guests rely on polling alone.
func New(role Role, seed, baseURL string, nc *nats.Conn, callbacks Callbacks) *Syncer {
	return &Syncer{
		role:      role,
		seed:      seed,
		baseURL:   baseURL,
		client:    &http.Client{},
		nc:        nc,
		interval:  DefaultPollInterval,
		callbacks: callbacks,
		stop:      make(chan struct{}),
	}
}

// SetPollInterval overrides the guest polling interval. Call before Start.
func (s *Syncer) SetPollInterval(d time.Duration) {
	s.interval = d
}

// SetStateProvider registers the host-side state source for answering
// SYNC_REQUEST broadcasts.
func (s *Syncer) SetStateProvider(fn GetStateFunc) {
	s.mu.Lock()
	s.getState = fn
	s.mu.Unlock()
}

func (s *Syncer) Role() Role { return s.role }

// Connected reports whether the last remote interaction succeeded.
func (s *Syncer) Connected() bool { return s.connected.Load() }

// Start subscribes to the broadcast channel and, for guests, begins the poll
// loop. Idle syncers do nothing.
func (s *Syncer) Start(ctx context.Context) error {
	if s.role == RoleIdle {
		return nil
	}

	if s.nc != nil {
		sub, err := s.nc.Subscribe(natscli.SessionSubject(s.seed), s.handleBroadcast)
		if err != nil {
			return fmt.Errorf("failed to subscribe to session subject: %w", err)
		}
		s.sub = sub
	}

	if s.role == RoleGuest {
		go s.pollLoop(ctx)
		s.broadcast(&comm.SyncMessage{
			Type:         comm.TypeSyncRequest,
			Seed:         s.seed,
			DrawnNumbers: []int{},
		})
	}

	return nil
}

// Stop tears down the poll loop and the broadcast subscription.
func (s *Syncer) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
		if s.sub != nil {
			if err := s.sub.Unsubscribe(); err != nil {
				log.Warnf("failed to unsubscribe session subject: %v", err)
			}
			s.sub = nil
		}
	})
}

// Push makes the host's new draw state visible: broadcast first for instant
// same-site delivery, then the remote write in the background. A failed
// remote push only drops the connected flag; local play continues and the
// next draw retries implicitly.
func (s *Syncer) Push(drawnNumbers []int, currentNumber *int) {
	if s.role != RoleHost {
		return
	}

	msg := &comm.SyncMessage{
		Type:          comm.TypeNumberDrawn,
		Seed:          s.seed,
		DrawnNumbers:  drawnNumbers,
		CurrentNumber: currentNumber,
	}
	s.broadcast(msg)

	go s.pushRemote(msg)
}

// PushConfig is Push plus card configuration, used when the host generates
// cards so guests can rebuild identical grids from the seed.
func (s *Syncer) PushConfig(drawnNumbers []int, currentNumber *int, numberOfPlayers, cardsPerPlayer int, playerNames []string) {
	if s.role != RoleHost {
		return
	}

	msg := &comm.SyncMessage{
		Type:            comm.TypeNumberDrawn,
		Seed:            s.seed,
		DrawnNumbers:    drawnNumbers,
		CurrentNumber:   currentNumber,
		NumberOfPlayers: numberOfPlayers,
		CardsPerPlayer:  cardsPerPlayer,
		PlayerNames:     playerNames,
	}
	s.broadcast(msg)

	go s.pushRemote(msg)
}

// Reset clears the session everywhere: broadcast, then remote delete in the
// background.
func (s *Syncer) Reset() {
	if s.role != RoleHost {
		return
	}

	s.broadcast(&comm.SyncMessage{
		Type:         comm.TypeReset,
		Seed:         s.seed,
		DrawnNumbers: []int{},
	})

	go s.deleteRemote()
}

func (s *Syncer) broadcast(msg *comm.SyncMessage) {
	if s.nc == nil {
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		log.Errorf("failed to marshal sync message: %v", err)
		return
	}
	if err := s.nc.Publish(natscli.SessionSubject(s.seed), data); err != nil {
		log.Warnf("failed to publish sync message: %v", err)
	}
}

// handleBroadcast delivers broadcast-channel events. Messages for other
// seeds are dropped.
func (s *Syncer) handleBroadcast(m *nats.Msg) {
	var msg comm.SyncMessage
	if err := json.Unmarshal(m.Data, &msg); err != nil {
		log.Errorf("invalid sync message: %v", err)
		return
	}
	if msg.Seed != s.seed {
		return
	}

	switch msg.Type {
	case comm.TypeNumberDrawn:
		s.deliver(&msg)
	case comm.TypeReset:
		if s.role == RoleGuest && s.callbacks.OnReset != nil {
			s.callbacks.OnReset()
		}
	case comm.TypeSyncRequest:
		s.mu.Lock()
		getState := s.getState
		s.mu.Unlock()
		if s.role == RoleHost && getState != nil {
			drawn, current := getState()
			s.broadcast(&comm.SyncMessage{
				Type:          comm.TypeSyncResponse,
				Seed:          s.seed,
				DrawnNumbers:  drawn,
				CurrentNumber: current,
			})
		}
	case comm.TypeSyncResponse:
		if s.role == RoleGuest {
			s.deliver(&msg)
		}
	default:
		log.Warnf("unknown sync message type: %s", msg.Type)
	}
}

func (s *Syncer) deliver(msg *comm.SyncMessage) {
	if s.role != RoleGuest {
		return
	}
	if s.callbacks.OnStateUpdate != nil {
		s.callbacks.OnStateUpdate(msg.DrawnNumbers, msg.CurrentNumber)
	}
	if msg.NumberOfPlayers > 0 && msg.CardsPerPlayer > 0 && s.callbacks.OnCardConfig != nil {
		s.callbacks.OnCardConfig(msg.NumberOfPlayers, msg.CardsPerPlayer, msg.PlayerNames)
	}
}

func (s *Syncer) pollLoop(ctx context.Context) {
	s.poll(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stop:
			return
		case <-ticker.C:
			s.poll(ctx)
		}
	}
}

// poll fetches the remote record and adopts it when strictly newer than the
// last seen lastUpdate. Stale or out-of-order responses are ignored. An
// empty drawn list after previously observed activity is a reset.
func (s *Syncer) poll(ctx context.Context) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.sessionURL(), nil)
	if err != nil {
		log.Errorf("failed to build poll request: %v", err)
		return
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.connected.Store(false)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.connected.Store(false)
		return
	}

	var state comm.GameState
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		s.connected.Store(false)
		return
	}
	s.connected.Store(true)

	s.applyRemote(&state)
}

// applyRemote is the newest-lastUpdate-wins arbiter shared by poll responses.
func (s *Syncer) applyRemote(state *comm.GameState) {
	s.mu.Lock()
	previous := s.lastUpdate
	if state.LastUpdate <= previous {
		s.mu.Unlock()
		return
	}
	s.lastUpdate = state.LastUpdate
	s.mu.Unlock()

	if len(state.DrawnNumbers) == 0 && previous > 0 {
		if s.callbacks.OnReset != nil {
			s.callbacks.OnReset()
		}
		return
	}

	if s.callbacks.OnStateUpdate != nil {
		s.callbacks.OnStateUpdate(state.DrawnNumbers, state.CurrentNumber)
	}
	if state.NumberOfPlayers > 0 && state.CardsPerPlayer > 0 && s.callbacks.OnCardConfig != nil {
		s.callbacks.OnCardConfig(state.NumberOfPlayers, state.CardsPerPlayer, state.PlayerNames)
	}
}

func (s *Syncer) pushRemote(msg *comm.SyncMessage) {
	body := map[string]interface{}{
		"drawnNumbers":  msg.DrawnNumbers,
		"currentNumber": msg.CurrentNumber,
	}
	if msg.NumberOfPlayers > 0 && msg.CardsPerPlayer > 0 {
		body["numberOfPlayers"] = msg.NumberOfPlayers
		body["cardsPerPlayer"] = msg.CardsPerPlayer
		body["playerNames"] = msg.PlayerNames
	}

	data, err := json.Marshal(body)
	if err != nil {
		log.Errorf("failed to marshal push body: %v", err)
		return
	}

	resp, err := s.client.Post(s.sessionURL(), "application/json", bytes.NewReader(data))
	if err != nil {
		s.connected.Store(false)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.connected.Store(false)
		return
	}

	var ack comm.PushResponse
	if err := json.NewDecoder(resp.Body).Decode(&ack); err == nil && ack.Ok {
		s.mu.Lock()
		if ack.LastUpdate > s.lastUpdate {
			s.lastUpdate = ack.LastUpdate
		}
		s.mu.Unlock()
	}
	s.connected.Store(true)
}

func (s *Syncer) deleteRemote() {
	req, err := http.NewRequest(http.MethodDelete, s.sessionURL(), nil)
	if err != nil {
		log.Errorf("failed to build delete request: %v", err)
		return
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.connected.Store(false)
		return
	}
	defer resp.Body.Close()

	s.connected.Store(resp.StatusCode == http.StatusOK)
}

func (s *Syncer) sessionURL() string {
	return fmt.Sprintf("%s/session/%s", s.baseURL, s.seed)
}
