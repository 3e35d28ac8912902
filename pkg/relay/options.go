package relay

import (
	"github.com/voicebridge/voicebridge/pkg/azrealtime"
)

// Bounds and defaults for client-tunable session options.
const (
	TemperatureMin     = 0.6
	TemperatureMax     = 1.2
	TemperatureDefault = 0.8

	MaxTokensMin     = 1
	MaxTokensMax     = 4096
	MaxTokensDefault = 4096

	// MaxTokensUnbounded is the sentinel for unlimited output.
	MaxTokensUnbounded = "inf"

	VADThresholdMin     = 0.0
	VADThresholdMax     = 1.0
	VADThresholdDefault = 0.5

	VADPrefixPaddingMsMin     = 0
	VADPrefixPaddingMsMax     = 5000
	VADPrefixPaddingMsDefault = 300

	VADSilenceDurationMsMin     = 0
	VADSilenceDurationMsMax     = 5000
	VADSilenceDurationMsDefault = 500
)

// Turn detection modes accepted from clients.
const (
	TurnDetectionServerVAD = "server_vad"
	TurnDetectionNone      = "none"
)

// DefaultInstructions is the system prompt used when the client sends none.
const DefaultInstructions = "You are a helpful AI assistant. Respond naturally and conversationally."

// transcriptionModel is the model used for input audio transcription.
const transcriptionModel = "whisper-1"

// SessionOptions are the client-tunable parameters of a session.
// All fields are optional; zero values fall back to the defaults above.
type SessionOptions struct {
	// Voice is the output voice ID. Unknown voices fall back to the
	// catalog default.
	Voice string `json:"voice,omitzero"`

	// Temperature is clamped into [TemperatureMin, TemperatureMax].
	Temperature *float64 `json:"temperature,omitzero"`

	// MaxResponseOutputTokens is a positive integer (clamped into
	// [MaxTokensMin, MaxTokensMax]) or the string "inf" for unbounded.
	MaxResponseOutputTokens interface{} `json:"max_response_output_tokens,omitzero"`

	// Instructions is the free-text system prompt.
	Instructions string `json:"instructions,omitzero"`

	// TurnDetection is "server_vad" (default) or "none".
	TurnDetection string `json:"turn_detection,omitzero"`

	// VADThreshold is the voice activity detection sensitivity.
	VADThreshold *float64 `json:"vad_threshold,omitzero"`

	// VADPrefixPaddingMs is the audio padding kept before detected speech.
	VADPrefixPaddingMs *int `json:"vad_prefix_padding_ms,omitzero"`

	// VADSilenceDurationMs is the silence needed to end a turn.
	VADSilenceDurationMs *int `json:"vad_silence_duration_ms,omitzero"`

	// NoiseReduction enables input noise reduction.
	NoiseReduction bool `json:"noise_reduction,omitzero"`
}

// clampFloat bounds v into [min, max].
func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// clampInt bounds v into [min, max].
func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// ClampTemperature bounds a temperature into the accepted range.
func ClampTemperature(v float64) float64 {
	return clampFloat(v, TemperatureMin, TemperatureMax)
}

// normalizeMaxTokens converts the client-supplied value (a JSON number,
// the string "inf", or nil) into the protocol value: a clamped int or
// the "inf" sentinel.
func normalizeMaxTokens(v interface{}) interface{} {
	switch t := v.(type) {
	case nil:
		return MaxTokensDefault
	case string:
		if t == MaxTokensUnbounded {
			return MaxTokensUnbounded
		}
		return MaxTokensDefault
	case float64:
		return clampInt(int(t), MaxTokensMin, MaxTokensMax)
	case int:
		return clampInt(t, MaxTokensMin, MaxTokensMax)
	default:
		return MaxTokensDefault
	}
}

// SessionConfig derives the complete vendor session-update payload from
// the options. The payload is always fully populated; updates are never
// partial.
func (o SessionOptions) SessionConfig() *azrealtime.SessionConfig {
	voice := o.Voice
	if !IsValidVoice(voice) {
		voice = DefaultVoice
	}

	temperature := TemperatureDefault
	if o.Temperature != nil {
		temperature = ClampTemperature(*o.Temperature)
	}

	instructions := o.Instructions
	if instructions == "" {
		instructions = DefaultInstructions
	}

	cfg := &azrealtime.SessionConfig{
		Modalities:        []string{azrealtime.ModalityText, azrealtime.ModalityAudio},
		Instructions:      instructions,
		Voice:             voice,
		InputAudioFormat:  azrealtime.AudioFormatPCM16,
		OutputAudioFormat: azrealtime.AudioFormatPCM16,
		InputAudioTranscription: &azrealtime.TranscriptionConfig{
			Model: transcriptionModel,
		},
		Tools:                   []azrealtime.Tool{actionTool},
		ToolChoice:              azrealtime.ToolChoiceAuto,
		Temperature:             &temperature,
		MaxResponseOutputTokens: normalizeMaxTokens(o.MaxResponseOutputTokens),
	}

	if o.NoiseReduction {
		cfg.InputAudioNoiseReduction = &azrealtime.NoiseReduction{Type: "near_field"}
	}

	switch o.TurnDetection {
	case TurnDetectionNone:
		cfg.TurnDetectionDisabled = true
	default:
		threshold := VADThresholdDefault
		if o.VADThreshold != nil {
			threshold = clampFloat(*o.VADThreshold, VADThresholdMin, VADThresholdMax)
		}
		prefixPadding := VADPrefixPaddingMsDefault
		if o.VADPrefixPaddingMs != nil {
			prefixPadding = clampInt(*o.VADPrefixPaddingMs, VADPrefixPaddingMsMin, VADPrefixPaddingMsMax)
		}
		silenceDuration := VADSilenceDurationMsDefault
		if o.VADSilenceDurationMs != nil {
			silenceDuration = clampInt(*o.VADSilenceDurationMs, VADSilenceDurationMsMin, VADSilenceDurationMsMax)
		}
		cfg.TurnDetection = &azrealtime.TurnDetection{
			Type:              azrealtime.VADServerVAD,
			Threshold:         threshold,
			PrefixPaddingMs:   prefixPadding,
			SilenceDurationMs: silenceDuration,
		}
	}

	return cfg
}

// actionTool is the single fixed tool exposed to the model. Calls are
// acknowledged by the relay rather than executed; the acknowledgment
// carries the requested action back to the model.
var actionTool = azrealtime.Tool{
	Type:        "function",
	Name:        "perform_action",
	Description: "Ask the application to perform an action on the user's behalf.",
	Parameters: map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"action": map[string]interface{}{
				"type":        "string",
				"description": "Name of the action to perform.",
			},
			"details": map[string]interface{}{
				"type":        "string",
				"description": "Free-form details for the action.",
			},
		},
		"required": []string{"action"},
	},
}
