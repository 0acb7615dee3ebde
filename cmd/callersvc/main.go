// cmd/callersvc/main.go
package main

import (
	"context"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/nats-io/nats.go"
	config "github.com/zahlenlotto/lotto-services/configs"
	"github.com/zahlenlotto/lotto-services/internal/lotto"
	natscli "github.com/zahlenlotto/lotto-services/internal/nats"
	"github.com/zahlenlotto/lotto-services/internal/session"
	gamesync "github.com/zahlenlotto/lotto-services/internal/sync"
)

const SERVICE_NAME = "caller"

var instanceId string

func init() {
	instanceId = "001"
	config.Logging(SERVICE_NAME + "_service_" + instanceId)
	config.LoadEnv(SERVICE_NAME)
	rand.Seed(time.Now().UnixNano())
}

func main() {
	// connect to NATS, broadcast channel for same-site viewers
	var nc *nats.Conn
	n, err := natscli.Connect()
	if err != nil {
		log.Warnf("unable to connect to NATS, broadcast disabled: %v", err)
	} else {
		nc = n.Conn
		defer nc.Close()
		log.Infof("NATS connected at %s", n.Url)
	}

	seed := os.Getenv("SESSION_SEED")
	if seed == "" {
		seed = lotto.NewSeed()
	}

	baseURL := os.Getenv("SESSION_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8081/v1"
	}

	interval := 5 * time.Second
	if raw := os.Getenv("CALL_INTERVAL_SEC"); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil || secs < 1 {
			log.Fatalf("Invalid CALL_INTERVAL_SEC value: %s", raw)
		}
		interval = time.Duration(secs) * time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	syncer := gamesync.New(gamesync.RoleHost, seed, baseURL, nc, gamesync.Callbacks{})
	if err := syncer.Start(ctx); err != nil {
		log.Fatalf("unable to start syncer: %v", err)
	}
	defer syncer.Stop()

	shareURL := session.ShareableURL(os.Getenv("SHARE_ORIGIN"), &session.Session{Seed: seed})
	log.Infof("caller hosting session %s (%s)", seed, shareURL)

	done := make(chan struct{})
	go startCaller(ctx, syncer, seed, interval, done)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	select {
	case <-stop:
		log.Infof("caller interrupted for session %s", seed)
	case <-done:
	}
}

// startCaller draws the full shuffled domain one number per tick, pushing
// the growing history after every draw.
func startCaller(ctx context.Context, syncer *gamesync.Syncer, seed string, interval time.Duration, done chan<- struct{}) {
	defer close(done)

	// 1) prepare a shuffled deck 1-90
	deck := make([]int, lotto.TotalNumbers)
	for i := range deck {
		deck[i] = i + 1
	}
	deck = lotto.Shuffle(deck, lotto.AmbientSource())

	// 2) maintain history of calls, shared with sync-request replies
	var mu sync.Mutex
	history := make([]int, 0, len(deck))

	hostState := func() ([]int, *int) {
		mu.Lock()
		defer mu.Unlock()
		if len(history) == 0 {
			return []int{}, nil
		}
		current := history[len(history)-1]
		return append([]int(nil), history...), &current
	}
	syncer.SetStateProvider(hostState)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	cursor := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if cursor >= len(deck) {
			log.Infof("caller done for session %s, all %d numbers drawn", seed, len(deck))
			return
		}
		num := deck[cursor]
		cursor++

		mu.Lock()
		history = append(history, num)
		mu.Unlock()

		// 3) push the full history so late joiners catch up in one update
		drawn, current := hostState()
		syncer.Push(drawn, current)
		log.Infof("called %d (%d/%d) for session %s", num, len(history), len(deck), seed)
	}
}
