package service

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/zahlenlotto/lotto-services/internal/comm"
	"github.com/zahlenlotto/lotto-services/internal/session"
	"github.com/zahlenlotto/lotto-services/internal/sessionsvc/store"
)

// StateUpdate carries the validated fields of one host push.
type StateUpdate struct {
	DrawnNumbers    []int
	CurrentNumber   *int
	NumberOfPlayers int
	CardsPerPlayer  int
	PlayerNames     []string
}

type SessionService struct {
	store   store.StateStore
	archive *store.ArchiveStore
}

func NewSessionService(stateStore store.StateStore, archive *store.ArchiveStore) *SessionService {
	return &SessionService{store: stateStore, archive: archive}
}

// GetState returns the stored record for a seed, or the default-empty record
// when none exists.
func (s *SessionService) GetState(ctx context.Context, seed string) (*comm.GameState, error) {
	state, err := s.store.Get(ctx, seed)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return &comm.GameState{DrawnNumbers: []int{}, CurrentNumber: nil, LastUpdate: 0}, nil
	}
	if state.DrawnNumbers == nil {
		state.DrawnNumbers = []int{}
	}
	return state, nil
}

// UpdateState overwrites the record for a seed wholesale and stamps a fresh
// LastUpdate. Card configuration is echoed only when within range. Returns
// the new LastUpdate value.
func (s *SessionService) UpdateState(ctx context.Context, seed string, update StateUpdate) (int64, error) {
	state := &comm.GameState{
		DrawnNumbers:  update.DrawnNumbers,
		CurrentNumber: update.CurrentNumber,
		LastUpdate:    time.Now().UnixMilli(),
	}

	if update.NumberOfPlayers >= session.MinPlayers && update.NumberOfPlayers <= session.MaxPlayers {
		state.NumberOfPlayers = update.NumberOfPlayers
	}
	if update.CardsPerPlayer >= session.MinCards && update.CardsPerPlayer <= session.MaxCards {
		state.CardsPerPlayer = update.CardsPerPlayer
	}
	if update.PlayerNames != nil {
		names := update.PlayerNames
		if len(names) > session.MaxPlayers {
			names = names[:session.MaxPlayers]
		}
		state.PlayerNames = names
	}

	if err := s.store.Put(ctx, seed, state); err != nil {
		return 0, err
	}

	if s.archive != nil {
		go func(seed string, drawn int, current *int) {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := s.archive.InsertDrawEvent(ctx, seed, drawn, current); err != nil {
				log.Errorf("Error [ArchiveStore.InsertDrawEvent] %s", err)
			}
		}(seed, len(state.DrawnNumbers), state.CurrentNumber)
	}

	return state.LastUpdate, nil
}

// ResetState clears the record for a seed.
func (s *SessionService) ResetState(ctx context.Context, seed string) error {
	return s.store.Delete(ctx, seed)
}

// Stats reports active session and archived draw-event counts.
func (s *SessionService) Stats(ctx context.Context) (sessions int64, drawEvents int64, err error) {
	sessions, err = s.store.Count(ctx)
	if err != nil {
		return 0, 0, err
	}
	if s.archive != nil {
		drawEvents, err = s.archive.EventCount(ctx)
		if err != nil {
			return 0, 0, err
		}
	}
	return sessions, drawEvents, nil
}
