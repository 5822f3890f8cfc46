package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"karak-pos/internal/logger"
	"karak-pos/internal/store"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Devices on the stall's private network; origin checks add nothing.
	CheckOrigin: func(r *http.Request) bool { return true },
}

const (
	wsWriteWait  = 10 * time.Second
	wsPingPeriod = 30 * time.Second
)

// wsMessage is one frame pushed to a device: the initial snapshot of
// the watched subtree, then every change as it happens. A nil value
// means the path was deleted.
type wsMessage struct {
	Type     string         `json:"type"`
	Snapshot store.Snapshot `json:"snapshot,omitempty"`
	Event    *store.Event   `json:"event,omitempty"`
}

// serveWS streams live store changes so every device sees orders,
// thermos levels and alerts move without polling.
func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	log := logger.FromCtx(r.Context()).With(zap.String("layer", "transport"))

	prefix := r.URL.Query().Get("prefix")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx := r.Context()
	events, err := s.Store.Subscribe(ctx, prefix)
	if err != nil {
		log.Warn("store subscribe failed", zap.Error(err))
		return
	}

	// 1. Initial snapshot so a reconnecting device catches up.
	snap, err := s.Store.List(ctx, prefix)
	if err != nil {
		log.Warn("snapshot read failed", zap.Error(err))
		return
	}
	conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	if err := conn.WriteJSON(wsMessage{Type: "snapshot", Snapshot: snap}); err != nil {
		return
	}

	// 2. Drain client frames so pongs and close frames are processed.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	// 3. Push events until the client goes away.
	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteJSON(wsMessage{Type: "event", Event: &ev}); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
