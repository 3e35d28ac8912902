package relay

import (
	"iter"
	"sync"

	"github.com/voicebridge/voicebridge/pkg/azrealtime"
)

// Upstream is the subset of the realtime session the relay drives.
// *azrealtime.Session satisfies it; tests substitute fakes.
type Upstream interface {
	UpdateSession(config *azrealtime.SessionConfig) error
	AppendAudioBase64(audioBase64 string) error
	CommitInput() error
	ClearInput() error
	AddFunctionCallOutput(callID string, output string) error
	CreateResponse(opts *azrealtime.ResponseCreateOptions) error
	Events() iter.Seq2[*azrealtime.ServerEvent, error]
	Close() error
}

// session is the per-session state owned by the Registry: the upstream
// connection handle, the receive task's done channel, and tool-call
// state for the current turn.
type session struct {
	mu        sync.Mutex
	upstream  Upstream
	done      chan struct{}
	pending   []ToolCall
	processed bool
}

// enqueueToolCall appends a call to the pending queue, deduplicating
// by call ID (the same call can be signaled by two different upstream
// events). It reports whether the call was added.
func (s *session) enqueueToolCall(call ToolCall) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, pending := range s.pending {
		if pending.ID == call.ID {
			return false
		}
	}
	s.pending = append(s.pending, call)
	return true
}

// takeToolCalls returns the pending queue and clears it, marking the
// turn as processed when any calls were taken.
func (s *session) takeToolCalls() []ToolCall {
	s.mu.Lock()
	defer s.mu.Unlock()

	calls := s.pending
	s.pending = nil
	if len(calls) > 0 {
		s.processed = true
	}
	return calls
}

// resetTurn clears tool-call state at a new turn boundary.
func (s *session) resetTurn() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = nil
	s.processed = false
}

// Registry maps session IDs to their upstream connection, receive task
// and tool-call state, and owns the create/attach/remove lifecycle.
// All methods are safe for concurrent use.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*session
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*session)}
}

// Create registers an empty session for id. Creating an existing id is
// a no-op.
func (r *Registry) Create(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		r.sessions[id] = &session{}
	}
}

// lookup returns the session entry for id.
func (r *Registry) lookup(id string) (*session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Attach binds an upstream connection and its receive task (identified
// by its done channel) to an existing session. Any previously attached
// upstream is closed first; a session never holds more than one
// upstream link.
func (r *Registry) Attach(id string, up Upstream, done chan struct{}) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	if !ok {
		s = &session{}
		r.sessions[id] = s
	}
	r.mu.Unlock()

	s.mu.Lock()
	prev := s.upstream
	s.upstream = up
	s.done = done
	s.pending = nil
	s.processed = false
	s.mu.Unlock()

	if prev != nil {
		_ = prev.Close()
	}
}

// Upstream returns the upstream connection for id, or false when the
// session does not exist or has no active connection.
func (r *Registry) Upstream(id string) (Upstream, bool) {
	s, ok := r.lookup(id)
	if !ok {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.upstream == nil {
		return nil, false
	}
	return s.upstream, true
}

// Remove tears a session down: the upstream connection is closed
// best-effort (close errors are swallowed), which ends the receive
// task at its next read, and all per-session tool-call state is
// dropped. Removing an unknown id is a no-op.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if !ok {
		return
	}

	s.mu.Lock()
	up := s.upstream
	s.upstream = nil
	s.pending = nil
	s.processed = false
	s.mu.Unlock()

	if up != nil {
		_ = up.Close()
	}
}

// Detach releases the upstream connection of a session but keeps the
// session entry. Used when a new upstream replaces an old one.
func (r *Registry) Detach(id string) {
	s, ok := r.lookup(id)
	if !ok {
		return
	}

	s.mu.Lock()
	up := s.upstream
	s.upstream = nil
	s.pending = nil
	s.processed = false
	s.mu.Unlock()

	if up != nil {
		_ = up.Close()
	}
}

// Len returns the number of registered sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
