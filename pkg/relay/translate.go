package relay

import (
	"encoding/json"

	"github.com/voicebridge/voicebridge/pkg/azrealtime"
)

// clientEvent is the result of translating one vendor event.
type clientEvent struct {
	Event string
	Data  interface{}
}

// translate maps one vendor event to its client-facing event. It is a
// pure mapping; turn-reset, tool-call enqueue and drain side effects
// are applied by the receive loop based on the vendor event type.
// Unrecognized vendor types map to unhandled_event rather than being
// dropped.
func translate(ev *azrealtime.ServerEvent) clientEvent {
	switch ev.Type {
	case azrealtime.EventTypeSessionCreated:
		return clientEvent{EventSessionCreated, json.RawMessage(ev.Raw)}
	case azrealtime.EventTypeSessionUpdated:
		return clientEvent{EventSessionUpdated, json.RawMessage(ev.Raw)}
	case azrealtime.EventTypeConversationItemCreated:
		return clientEvent{EventConversationItemCreated, json.RawMessage(ev.Raw)}
	case azrealtime.EventTypeResponseCreated:
		return clientEvent{EventResponseCreated, json.RawMessage(ev.Raw)}
	case azrealtime.EventTypeResponseOutputItemAdded:
		return clientEvent{EventResponseOutputItemAdded, json.RawMessage(ev.Raw)}
	case azrealtime.EventTypeResponseContentPartAdded:
		return clientEvent{EventResponseContentPartAdded, json.RawMessage(ev.Raw)}
	case azrealtime.EventTypeResponseAudioTranscriptDelta:
		return clientEvent{EventTranscriptDelta, DeltaPayload{Role: RoleAssistant, Delta: ev.Delta}}
	case azrealtime.EventTypeResponseAudioDelta:
		return clientEvent{EventAudioDelta, AudioDeltaPayload{Delta: ev.Delta}}
	case azrealtime.EventTypeResponseAudioDone:
		return clientEvent{EventAudioDone, struct{}{}}
	case azrealtime.EventTypeResponseAudioTranscriptDone:
		return clientEvent{EventTranscriptDone, TranscriptPayload{Role: RoleAssistant, Transcript: ev.Transcript}}
	case azrealtime.EventTypeResponseTextDelta:
		return clientEvent{EventTextDelta, DeltaPayload{Role: RoleAssistant, Delta: ev.Delta}}
	case azrealtime.EventTypeResponseTextDone:
		return clientEvent{EventTextDone, TextPayload{Role: RoleAssistant, Text: ev.Text}}
	case azrealtime.EventTypeInputAudioBufferSpeechStarted:
		return clientEvent{EventSpeechStarted, json.RawMessage(ev.Raw)}
	case azrealtime.EventTypeInputAudioBufferSpeechStopped:
		return clientEvent{EventSpeechStopped, json.RawMessage(ev.Raw)}
	case azrealtime.EventTypeConversationItemInputAudioTranscriptionCompleted:
		return clientEvent{EventUserTranscript, TranscriptPayload{Role: RoleUser, Transcript: ev.Transcript}}
	case azrealtime.EventTypeResponseDone:
		return clientEvent{EventResponseDone, json.RawMessage(ev.Raw)}
	case azrealtime.EventTypeResponseFunctionCallArgumentsDelta:
		return clientEvent{EventFunctionCallDelta, json.RawMessage(ev.Raw)}
	case azrealtime.EventTypeResponseFunctionCallArgumentsDone:
		return clientEvent{EventFunctionCallDone, json.RawMessage(ev.Raw)}
	case azrealtime.EventTypeResponseOutputItemDone:
		return clientEvent{EventOutputItemDone, json.RawMessage(ev.Raw)}
	case azrealtime.EventTypeError:
		return clientEvent{EventError, json.RawMessage(ev.Raw)}
	default:
		return clientEvent{EventUnhandled, UnhandledPayload{Type: ev.Type, Data: ev.Raw}}
	}
}
