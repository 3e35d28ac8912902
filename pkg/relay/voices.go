package relay

// DefaultVoice is used when the client requests no voice or an unknown one.
const DefaultVoice = "alloy"

// Voice describes one entry of the static voice catalog.
type Voice struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Voices is the static catalog of voices available for audio output.
var Voices = []Voice{
	{ID: "alloy", Name: "Alloy", Description: "Neutral and balanced"},
	{ID: "ash", Name: "Ash", Description: "Warm and conversational"},
	{ID: "ballad", Name: "Ballad", Description: "Expressive and dramatic"},
	{ID: "coral", Name: "Coral", Description: "Clear and informative"},
	{ID: "echo", Name: "Echo", Description: "Smooth and calm"},
	{ID: "sage", Name: "Sage", Description: "Wise and thoughtful"},
	{ID: "shimmer", Name: "Shimmer", Description: "Bright and energetic"},
	{ID: "verse", Name: "Verse", Description: "Versatile and adaptive"},
}

// IsValidVoice reports whether id is in the catalog.
func IsValidVoice(id string) bool {
	for _, v := range Voices {
		if v.ID == id {
			return true
		}
	}
	return false
}

// FloatOption describes a continuous configuration option.
type FloatOption struct {
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Default     float64 `json:"default"`
	Step        float64 `json:"step,omitzero"`
	Description string  `json:"description"`
}

// IntOption describes an integer configuration option.
type IntOption struct {
	Min         int    `json:"min"`
	Max         int    `json:"max"`
	Default     int    `json:"default"`
	Description string `json:"description"`
}

// OptionSchema is the per-option type/range/default metadata exposed
// for client discovery.
type OptionSchema struct {
	Temperature             FloatOption `json:"temperature"`
	MaxResponseOutputTokens IntOption   `json:"max_response_output_tokens"`
	VADThreshold            FloatOption `json:"vad_threshold"`
	VADPrefixPaddingMs      IntOption   `json:"vad_prefix_padding_ms"`
	VADSilenceDurationMs    IntOption   `json:"vad_silence_duration_ms"`
}

// VoiceConfig is the read-only discovery document consumed by the
// client UI. It is static metadata, not session state.
type VoiceConfig struct {
	Voices []Voice      `json:"voices"`
	Config OptionSchema `json:"config"`
}

// VoiceConfigDocument returns the discovery document.
func VoiceConfigDocument() VoiceConfig {
	return VoiceConfig{
		Voices: Voices,
		Config: OptionSchema{
			Temperature: FloatOption{
				Min:         TemperatureMin,
				Max:         TemperatureMax,
				Default:     TemperatureDefault,
				Step:        0.1,
				Description: "Controls randomness in responses. Lower values are more focused, higher values are more creative.",
			},
			MaxResponseOutputTokens: IntOption{
				Min:         MaxTokensMin,
				Max:         MaxTokensMax,
				Default:     MaxTokensDefault,
				Description: "Maximum number of tokens in the response. Use 'inf' for unlimited.",
			},
			VADThreshold: FloatOption{
				Min:         VADThresholdMin,
				Max:         VADThresholdMax,
				Default:     VADThresholdDefault,
				Step:        0.05,
				Description: "Voice activity detection sensitivity.",
			},
			VADPrefixPaddingMs: IntOption{
				Min:         VADPrefixPaddingMsMin,
				Max:         VADPrefixPaddingMsMax,
				Default:     VADPrefixPaddingMsDefault,
				Description: "Audio kept before detected speech, in milliseconds.",
			},
			VADSilenceDurationMs: IntOption{
				Min:         VADSilenceDurationMsMin,
				Max:         VADSilenceDurationMsMax,
				Default:     VADSilenceDurationMsDefault,
				Description: "Silence needed to end a turn, in milliseconds.",
			},
		},
	}
}
