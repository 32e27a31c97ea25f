package handler

import (
	"net/http"
	"sync"
	"time"

	"github.com/Rrens/mock-analyst/internal/api/response"
	"github.com/Rrens/mock-analyst/internal/domain"
	"github.com/Rrens/mock-analyst/internal/progress"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// wsTransport adapts a websocket connection to domain.LiveTransport
type wsTransport struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (t *wsTransport) Send(data []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return t.conn.WriteMessage(websocket.TextMessage, data)
}

// ProgressHandler streams progress events over websockets
type ProgressHandler struct {
	channel *progress.Channel
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(channel *progress.Channel) *ProgressHandler {
	return &ProgressHandler{channel: channel}
}

// Stream replays the session's progress log and then forwards new events
// until the client disconnects.
func (h *ProgressHandler) Stream(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if err := domain.ValidateSessionID(sessionID); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("session_id", sessionID).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	transport := &wsTransport{conn: conn}
	h.channel.Subscribe(r.Context(), sessionID, transport)
	defer h.channel.Release(sessionID, transport)

	// client frames are ignored; reading surfaces the disconnect
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Str("session_id", sessionID).Msg("websocket closed")
			}
			return
		}
	}
}
