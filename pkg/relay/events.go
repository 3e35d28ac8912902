package relay

import "encoding/json"

// Client-facing event names (relay → client). Together with the
// command names below they form the client wire contract.
const (
	EventConnected                = "connected"
	EventSessionCreated           = "session_created"
	EventSessionUpdated           = "session_updated"
	EventSessionEnded             = "session_ended"
	EventConversationItemCreated  = "conversation_item_created"
	EventResponseCreated          = "response_created"
	EventResponseOutputItemAdded  = "response_output_item_added"
	EventResponseContentPartAdded = "response_content_part_added"
	EventTranscriptDelta          = "transcript_delta"
	EventTranscriptDone           = "transcript_done"
	EventAudioDelta               = "audio_delta"
	EventAudioDone                = "audio_done"
	EventTextDelta                = "text_delta"
	EventTextDone                 = "text_done"
	EventSpeechStarted            = "speech_started"
	EventSpeechStopped            = "speech_stopped"
	EventUserTranscript           = "user_transcript"
	EventResponseDone             = "response_done"
	EventOutputItemDone           = "output_item_done"
	EventFunctionCallDelta        = "function_call_delta"
	EventFunctionCallDone         = "function_call_done"
	EventError                    = "error"
	EventUnhandled                = "unhandled_event"
)

// Client-originated command names (client → relay).
const (
	CommandStartSession     = "start_session"
	CommandUpdateSession    = "update_session"
	CommandSendAudio        = "send_audio"
	CommandCommitAudio      = "commit_audio"
	CommandClearAudioBuffer = "clear_audio_buffer"
	CommandEndSession       = "end_session"
)

// Roles attached to transcript and text events.
const (
	RoleAssistant = "assistant"
	RoleUser      = "user"
)

// Envelope is one client-channel frame in either direction.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitzero"`
}

// Emitter delivers events to one client. Implementations must be safe
// for concurrent use; the gateway emits from both the command path and
// the upstream receive loop.
type Emitter interface {
	Emit(event string, data interface{}) error
}

// Payload shapes for reshaped events.

// ConnectedPayload acknowledges a new client connection.
type ConnectedPayload struct {
	SID string `json:"sid"`
}

// DeltaPayload carries an incremental transcript or text chunk.
type DeltaPayload struct {
	Role  string `json:"role,omitzero"`
	Delta string `json:"delta"`
}

// AudioDeltaPayload carries an incremental base64 audio chunk.
type AudioDeltaPayload struct {
	Delta string `json:"delta"`
}

// TranscriptPayload carries a completed transcript.
type TranscriptPayload struct {
	Role       string `json:"role"`
	Transcript string `json:"transcript"`
}

// TextPayload carries a completed text response.
type TextPayload struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// ErrorPayload reports an error to the client.
type ErrorPayload struct {
	Message string `json:"message"`
}

// UnhandledPayload forwards an unrecognized vendor event verbatim so
// new upstream event types are never dropped silently.
type UnhandledPayload struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// SendAudioPayload is the payload of the send_audio command.
type SendAudioPayload struct {
	Audio string `json:"audio"`
}
