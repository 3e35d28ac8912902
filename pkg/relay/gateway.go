package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"github.com/gorilla/websocket"

	"github.com/voicebridge/voicebridge/pkg/azrealtime"
)

// Dialer opens a new upstream connection for a session.
type Dialer func(ctx context.Context) (Upstream, error)

// missingCredentialsMessage is reported when start_session is issued
// without configured upstream credentials.
const missingCredentialsMessage = "Azure OpenAI credentials not configured. " +
	"Please set AZURE_OPENAI_ENDPOINT and AZURE_OPENAI_API_KEY environment variables."

// Gateway dispatches client commands to per-session upstream
// connections and relays upstream events back to clients. It is safe
// for concurrent use across sessions.
type Gateway struct {
	registry *Registry
	dial     Dialer
	logger   *slog.Logger
}

// GatewayOption configures a Gateway.
type GatewayOption func(*Gateway)

// WithLogger sets the gateway logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) GatewayOption {
	return func(g *Gateway) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGateway creates a Gateway. A nil dialer means upstream
// credentials are not configured: start_session then reports a
// configuration error and no session is created.
func NewGateway(dial Dialer, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		registry: NewRegistry(),
		dial:     dial,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Registry returns the session registry.
func (g *Gateway) Registry() *Registry {
	return g.registry
}

// Connect registers a new client session and acknowledges it.
func (g *Gateway) Connect(id string, em Emitter) {
	g.registry.Create(id)
	g.emit(id, em, EventConnected, ConnectedPayload{SID: id})
	g.logger.Info("client connected", "session_id", id)
}

// Disconnect tears the session down without emitting anything; the
// client channel is already gone.
func (g *Gateway) Disconnect(id string) {
	g.registry.Remove(id)
	g.logger.Info("client disconnected", "session_id", id)
}

// StartSession opens a new upstream connection for the session,
// registers it, starts the receive loop, and sends the initial
// session configuration. Any previous upstream connection of the same
// session is closed first.
func (g *Gateway) StartSession(ctx context.Context, id string, opts SessionOptions, em Emitter) {
	log := g.logger.With("session_id", id)

	if g.dial == nil {
		g.emit(id, em, EventError, ErrorPayload{Message: missingCredentialsMessage})
		return
	}

	// At most one upstream link per session identity.
	g.registry.Detach(id)

	up, err := g.dial(ctx)
	if err != nil {
		log.Error("upstream connect failed", "error", err)
		g.emit(id, em, EventError, ErrorPayload{Message: fmt.Sprintf("Failed to connect: %v", err)})
		return
	}

	done := make(chan struct{})
	g.registry.Attach(id, up, done)
	go g.receiveLoop(id, up, em, done)

	cfg := opts.SessionConfig()
	if err := up.UpdateSession(cfg); err != nil {
		log.Error("session configuration failed", "error", err)
		g.emit(id, em, EventError, ErrorPayload{Message: fmt.Sprintf("Failed to configure session: %v", err)})
		return
	}

	log.Info("session started", "voice", cfg.Voice, "temperature", *cfg.Temperature)
}

// UpdateSession rebuilds and resends the complete session
// configuration against an existing upstream connection.
func (g *Gateway) UpdateSession(id string, opts SessionOptions, em Emitter) {
	up, ok := g.registry.Upstream(id)
	if !ok {
		g.emit(id, em, EventError, ErrorPayload{Message: "No active session. Send start_session first."})
		return
	}

	if err := up.UpdateSession(opts.SessionConfig()); err != nil {
		g.logger.Error("session update failed", "session_id", id, "error", err)
		g.emit(id, em, EventError, ErrorPayload{Message: fmt.Sprintf("Failed to update session: %v", err)})
	}
}

// SendAudio appends base64 audio to the upstream input buffer. Without
// an active session it is a silent no-op.
func (g *Gateway) SendAudio(id string, audioBase64 string) {
	up, ok := g.registry.Upstream(id)
	if !ok {
		return
	}
	if err := up.AppendAudioBase64(audioBase64); err != nil {
		g.logger.Warn("audio append failed", "session_id", id, "error", err)
	}
}

// CommitAudio commits the upstream input buffer and requests a
// response. Without an active session it is a silent no-op.
func (g *Gateway) CommitAudio(id string) {
	up, ok := g.registry.Upstream(id)
	if !ok {
		return
	}
	if err := up.CommitInput(); err != nil {
		g.logger.Warn("audio commit failed", "session_id", id, "error", err)
		return
	}
	if err := up.CreateResponse(nil); err != nil {
		g.logger.Warn("response create failed", "session_id", id, "error", err)
	}
}

// ClearAudioBuffer clears the upstream input buffer. Without an active
// session it is a silent no-op.
func (g *Gateway) ClearAudioBuffer(id string) {
	up, ok := g.registry.Upstream(id)
	if !ok {
		return
	}
	if err := up.ClearInput(); err != nil {
		g.logger.Warn("audio clear failed", "session_id", id, "error", err)
	}
}

// EndSession tears the session down and notifies the client.
func (g *Gateway) EndSession(id string, em Emitter) {
	g.registry.Remove(id)
	g.emit(id, em, EventSessionEnded, struct{}{})
	g.logger.Info("session ended", "session_id", id)
}

// receiveLoop consumes upstream events for one session until the
// connection closes. Closure is normal termination, not an error; any
// other transport failure is logged and surfaced as a generic error
// event without crashing the session.
func (g *Gateway) receiveLoop(id string, up Upstream, em Emitter, done chan struct{}) {
	defer close(done)
	log := g.logger.With("session_id", id)

	for ev, err := range up.Events() {
		if err != nil {
			if isClosedConnError(err) {
				log.Debug("upstream connection closed")
				return
			}
			log.Warn("upstream receive failed", "error", err)
			g.emit(id, em, EventError, ErrorPayload{Message: err.Error()})
			return
		}
		g.handleUpstreamEvent(id, up, em, ev)
	}

	log.Debug("upstream event stream ended")
}

// handleUpstreamEvent applies side effects for one vendor event, emits
// its translation to the client, and triggers the tool-call drain on
// response completion.
func (g *Gateway) handleUpstreamEvent(id string, up Upstream, em Emitter, ev *azrealtime.ServerEvent) {
	switch ev.Type {
	case azrealtime.EventTypeInputAudioBufferSpeechStarted:
		// New turn boundary: pending calls from the previous turn are void.
		if s, ok := g.registry.lookup(id); ok {
			s.resetTurn()
		}

	case azrealtime.EventTypeResponseFunctionCallArgumentsDone:
		g.enqueueToolCall(id, ToolCall{ID: ev.CallID, Name: ev.Name, Arguments: ev.Arguments})

	case azrealtime.EventTypeResponseOutputItemDone:
		if ev.Item != nil && ev.Item.Type == azrealtime.ItemTypeFunctionCall {
			g.enqueueToolCall(id, ToolCall{ID: ev.Item.CallID, Name: ev.Item.Name, Arguments: ev.Item.Arguments})
		}

	case azrealtime.EventTypeError:
		g.logger.Warn("upstream error event", "session_id", id, "error", ev.ErrorDetail)
	}

	ce := translate(ev)
	g.emit(id, em, ce.Event, ce.Data)

	if ev.Type == azrealtime.EventTypeResponseDone {
		g.drainToolCalls(id, up)
	}
}

// enqueueToolCall records a detected tool call for the session,
// deduplicating by call ID (both the arguments-done and the
// output-item-done signal can reference the same call).
func (g *Gateway) enqueueToolCall(id string, call ToolCall) {
	if call.ID == "" {
		return
	}
	s, ok := g.registry.lookup(id)
	if !ok {
		return
	}
	if s.enqueueToolCall(call) {
		g.logger.Info("tool call queued", "session_id", id, "call_id", call.ID, "name", call.Name)
	}
}

// drainToolCalls acknowledges all queued tool calls, in enqueue order.
// The upstream protocol forbids a new response.create while a response
// cycle is open, so this runs only after response.done. Each call gets
// a function_call_output item followed by a response.create with tool
// choice forced to "none" so the follow-up turn produces audio or text
// instead of recursing into another call.
func (g *Gateway) drainToolCalls(id string, up Upstream) {
	s, ok := g.registry.lookup(id)
	if !ok {
		return
	}

	calls := s.takeToolCalls()
	for _, call := range calls {
		result := toolCallResult(call)
		output, err := json.Marshal(result)
		if err != nil {
			g.logger.Error("tool result marshal failed", "session_id", id, "call_id", call.ID, "error", err)
			continue
		}

		if err := up.AddFunctionCallOutput(call.ID, string(output)); err != nil {
			g.logger.Warn("tool output send failed", "session_id", id, "call_id", call.ID, "error", err)
			return
		}
		if err := up.CreateResponse(&azrealtime.ResponseCreateOptions{
			ToolChoice: azrealtime.ToolChoiceNone,
		}); err != nil {
			g.logger.Warn("follow-up response create failed", "session_id", id, "call_id", call.ID, "error", err)
			return
		}

		g.logger.Info("tool call acknowledged", "session_id", id, "call_id", call.ID, "name", call.Name)
	}
}

// emit delivers one event to the client, logging delivery failures.
func (g *Gateway) emit(id string, em Emitter, event string, data interface{}) {
	if em == nil {
		return
	}
	if err := em.Emit(event, data); err != nil {
		g.logger.Warn("client emit failed", "session_id", id, "event", event, "error", err)
	}
}

// isClosedConnError reports whether err is the normal outcome of the
// upstream socket being closed, locally or by the peer.
func isClosedConnError(err error) bool {
	if errors.Is(err, net.ErrClosed) {
		return true
	}
	var closeErr *websocket.CloseError
	return errors.As(err, &closeErr)
}
