package relay

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Handler serves the client-facing WebSocket channel. Each accepted
// connection becomes one relay session: frames are JSON envelopes
// ({"event": ..., "data": ...}) in both directions.
type Handler struct {
	Gateway *Gateway
	Logger  *slog.Logger

	// CheckOrigin overrides the upgrader origin policy. When nil all
	// origins are accepted (the relay fronts a same-host browser UI).
	CheckOrigin func(r *http.Request) bool
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := h.Logger
	if logger == nil {
		logger = slog.Default()
	}

	checkOrigin := h.CheckOrigin
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}
	upgrader := websocket.Upgrader{CheckOrigin: checkOrigin}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	sid := uuid.New().String()
	em := &wsEmitter{conn: conn}

	h.Gateway.Connect(sid, em)
	defer h.Gateway.Disconnect(sid)

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("client read failed", "session_id", sid, "error", err)
			}
			return
		}

		var env Envelope
		if err := json.Unmarshal(message, &env); err != nil {
			_ = em.Emit(EventError, ErrorPayload{Message: "invalid frame: expected {event, data}"})
			continue
		}

		h.dispatch(r, sid, env, em)
	}
}

// dispatch routes one client command. Commands against a missing
// session never fail the connection; the gateway treats them as
// documented (silent no-op or error event).
func (h *Handler) dispatch(r *http.Request, sid string, env Envelope, em Emitter) {
	switch env.Event {
	case CommandStartSession:
		var opts SessionOptions
		decodeOptions(env.Data, &opts)
		h.Gateway.StartSession(r.Context(), sid, opts, em)

	case CommandUpdateSession:
		var opts SessionOptions
		decodeOptions(env.Data, &opts)
		h.Gateway.UpdateSession(sid, opts, em)

	case CommandSendAudio:
		var payload SendAudioPayload
		decodeOptions(env.Data, &payload)
		h.Gateway.SendAudio(sid, payload.Audio)

	case CommandCommitAudio:
		h.Gateway.CommitAudio(sid)

	case CommandClearAudioBuffer:
		h.Gateway.ClearAudioBuffer(sid)

	case CommandEndSession:
		h.Gateway.EndSession(sid, em)

	default:
		_ = em.Emit(EventError, ErrorPayload{Message: fmt.Sprintf("unknown command %q", env.Event)})
	}
}

// decodeOptions decodes a command payload leniently: absent or
// malformed payloads leave the defaults in place.
func decodeOptions(data json.RawMessage, v interface{}) {
	if len(data) == 0 {
		return
	}
	_ = json.Unmarshal(data, v)
}

// wsEmitter writes event envelopes to one client connection. A mutex
// serializes writes between the command path and the receive loop.
type wsEmitter struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (e *wsEmitter) Emit(event string, data interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", event, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.conn.WriteJSON(Envelope{Event: event, Data: raw})
}

// VoiceConfigHandler serves the static voice catalog and option schema
// as a read-only JSON document.
func VoiceConfigHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(VoiceConfigDocument())
	})
}
