package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"

	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
	log "github.com/sirupsen/logrus"

	"github.com/zahlenlotto/lotto-services/internal/comm"
	"github.com/zahlenlotto/lotto-services/internal/sessionsvc/service"
)

type Handler struct {
	tokenAuth *jwtauth.JWTAuth
	sessions  *service.SessionService
}

func NewHandler(sessions *service.SessionService) *Handler {
	return &Handler{sessions: sessions}
}

type Response struct {
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error"`
}

func (h *Handler) CreateResponse(w http.ResponseWriter, rsp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rsp.Code)

	if err := json.NewEncoder(w).Encode(rsp); err != nil {
		log.Errorf("Failed to encode response: %v", err)
	}
}

func respondJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("Failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, code int, msg string) {
	respondJSON(w, code, comm.ErrorResponse{Error: msg})
}

// seedParam extracts and validates the seed path parameter. A too-short seed
// gets a 400 and ok=false.
func seedParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	seed := chi.URLParam(r, "seed")
	if len(seed) < comm.MinSeedLength {
		respondError(w, http.StatusBadRequest, "Invalid seed")
		return "", false
	}
	return seed, true
}

// GetSessionHandler returns the current state for a seed, default-empty when
// nothing has been written yet.
func (h *Handler) GetSessionHandler(w http.ResponseWriter, r *http.Request) {
	seed, ok := seedParam(w, r)
	if !ok {
		return
	}

	state, err := h.sessions.GetState(r.Context(), seed)
	if err != nil {
		log.Errorf("Error [SessionService.GetState] %s", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, state)
}

// updateRequest keeps every field raw so a malformed optional field can be
// dropped without rejecting the whole body.
type updateRequest struct {
	DrawnNumbers    json.RawMessage `json:"drawnNumbers"`
	CurrentNumber   json.RawMessage `json:"currentNumber"`
	NumberOfPlayers json.RawMessage `json:"numberOfPlayers"`
	CardsPerPlayer  json.RawMessage `json:"cardsPerPlayer"`
	PlayerNames     json.RawMessage `json:"playerNames"`
}

// PostSessionHandler stores a host push for a seed. drawnNumbers must be an
// array of integers in 1-90; card configuration fields are accepted only
// within range and silently dropped otherwise.
func (h *Handler) PostSessionHandler(w http.ResponseWriter, r *http.Request) {
	seed, ok := seedParam(w, r)
	if !ok {
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var rawNumbers []interface{}
	if req.DrawnNumbers == nil || bytes.Equal(req.DrawnNumbers, []byte("null")) ||
		json.Unmarshal(req.DrawnNumbers, &rawNumbers) != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	drawn := make([]int, 0, len(rawNumbers))
	for _, v := range rawNumbers {
		f, isNumber := v.(float64)
		if !isNumber || f != float64(int(f)) || f < 1 || f > 90 {
			respondError(w, http.StatusBadRequest, "Invalid drawn numbers")
			return
		}
		drawn = append(drawn, int(f))
	}

	update := service.StateUpdate{DrawnNumbers: drawn}

	var current *int
	if req.CurrentNumber != nil && json.Unmarshal(req.CurrentNumber, &current) == nil {
		update.CurrentNumber = current
	}

	var players int
	if req.NumberOfPlayers != nil && json.Unmarshal(req.NumberOfPlayers, &players) == nil {
		update.NumberOfPlayers = players
	}

	var cards int
	if req.CardsPerPlayer != nil && json.Unmarshal(req.CardsPerPlayer, &cards) == nil {
		update.CardsPerPlayer = cards
	}

	var rawNames []interface{}
	if req.PlayerNames != nil && json.Unmarshal(req.PlayerNames, &rawNames) == nil {
		names := make([]string, 0, len(rawNames))
		for _, v := range rawNames {
			if name, isString := v.(string); isString {
				names = append(names, name)
			}
		}
		update.PlayerNames = names
	}

	lastUpdate, err := h.sessions.UpdateState(r.Context(), seed, update)
	if err != nil {
		log.Errorf("Error [SessionService.UpdateState] %s", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, comm.PushResponse{Ok: true, LastUpdate: lastUpdate})
}

// DeleteSessionHandler clears the state for a seed (host reset).
func (h *Handler) DeleteSessionHandler(w http.ResponseWriter, r *http.Request) {
	seed, ok := seedParam(w, r)
	if !ok {
		return
	}

	if err := h.sessions.ResetState(r.Context(), seed); err != nil {
		log.Errorf("Error [SessionService.ResetState] %s", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	sessions, drawEvents, err := h.sessions.Stats(r.Context())
	if err != nil {
		log.Errorf("Error [SessionService.Stats] %s", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	rsp := Response{
		Message: "session stats",
		Code:    200,
		Data: map[string]int64{
			"sessions":   sessions,
			"drawEvents": drawEvents,
		},
	}
	h.CreateResponse(w, rsp)
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	rsp := Response{
		Message: "session service is running at port " + os.Getenv("SESSION_SERVICE_PORT"),
		Code:    200,
		Data:    nil,
	}
	if err := json.NewEncoder(w).Encode(rsp); err != nil {
		log.Errorf("Failed to encode health response: %v", err)
	}
}
