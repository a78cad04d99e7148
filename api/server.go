package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/matt-g-everett/ledanim/stream"
	"github.com/matt-g-everett/ledanim/timeline"
)

// Source is what the API reports on.
type Source interface {
	Snapshot() timeline.Snapshot[stream.Mood]
	Current() stream.Mood
	Running() bool
}

// Api serves the preview client, the mood timeline and a live frame feed.
type Api struct {
	addr      string
	static    string
	source    Source
	frames    func() uint64
	startTime time.Time

	mu      sync.RWMutex
	clients map[*websocket.Conn]bool
}

// NewApi creates an Api. frames reports how many frames have been sent.
func NewApi(addr, static string, source Source, frames func() uint64) *Api {
	a := new(Api)
	a.addr = addr
	a.static = static
	a.source = source
	a.frames = frames
	a.startTime = time.Now()
	a.clients = map[*websocket.Conn]bool{}
	return a
}

// Handler routes the API.
func (a *Api) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(a.static)))
	mux.HandleFunc("/timeline", a.handleTimeline)
	mux.HandleFunc("/health", a.handleHealth)
	mux.HandleFunc("/frames", a.handleFramesWS)
	return withCORS(mux)
}

func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		h.ServeHTTP(w, r)
	})
}

func (a *Api) handleTimeline(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(a.source.Snapshot()); err != nil {
		log.Debug().Err(err).Msg("write timeline")
	}
}

func (a *Api) handleHealth(w http.ResponseWriter, r *http.Request) {
	a.mu.RLock()
	viewers := len(a.clients)
	a.mu.RUnlock()

	resp := map[string]any{
		"frames":   a.frames(),
		"mood":     a.source.Current(),
		"running":  a.source.Running(),
		"viewers":  viewers,
		"uptime_s": time.Since(a.startTime).Seconds(),
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Debug().Err(err).Msg("write health")
	}
}

func (a *Api) handleFramesWS(w http.ResponseWriter, r *http.Request) {
	up := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	a.mu.Lock()
	a.clients[conn] = true
	a.mu.Unlock()

	go func() {
		defer func() {
			a.mu.Lock()
			delete(a.clients, conn)
			a.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Broadcast sends an encoded frame to every connected viewer.
func (a *Api) Broadcast(data []byte) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for c := range a.clients {
		a.send(c, data)
	}
}

func (a *Api) send(c *websocket.Conn, data []byte) {
	if err := c.SetWriteDeadline(time.Now().Add(200 * time.Millisecond)); err != nil {
		log.Debug().Err(err).Msg("set frame deadline")
		return
	}
	if err := c.WriteMessage(websocket.BinaryMessage, data); err != nil {
		log.Debug().Err(err).Msg("write frame")
	}
}

// Serve listens until ctx is done.
func (a *Api) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:        a.addr,
		Handler:     a.Handler(),
		ReadTimeout: 5 * time.Second,
		IdleTimeout: 60 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdown)
	}()

	log.Info().Str("addr", a.addr).Msg("HTTP server starting")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
