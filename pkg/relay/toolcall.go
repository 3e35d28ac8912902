package relay

import (
	"encoding/json"

	"github.com/kaptinlin/jsonrepair"
)

// ToolCall is one model-initiated function invocation pending
// acknowledgment. The argument payload stays an opaque string until
// drain time; it is parsed lazily and defensively.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// ToolResult is the fixed acknowledgment sent back to the model for
// every tool call.
type ToolResult struct {
	Status  string `json:"status"`
	Action  string `json:"action,omitzero"`
	Details string `json:"details,omitzero"`
	Message string `json:"message"`
}

// ToolResultStatus is the status of every acknowledgment.
const ToolResultStatus = "acknowledged"

// toolResultMessage is the fixed message carried by acknowledgments.
const toolResultMessage = "The requested action has been received by the application."

// parseToolArguments parses a tool-call argument payload. Malformed
// JSON is first run through jsonrepair; if it still cannot be parsed,
// the result degrades to an empty map. It never fails.
func parseToolArguments(raw string) map[string]interface{} {
	if raw == "" {
		return map[string]interface{}{}
	}

	var args map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &args); err == nil && args != nil {
		return args
	}

	if fixed, err := jsonrepair.JSONRepair(raw); err == nil {
		if err := json.Unmarshal([]byte(fixed), &args); err == nil && args != nil {
			return args
		}
	}

	return map[string]interface{}{}
}

// toolCallResult builds the acknowledgment for one call.
func toolCallResult(call ToolCall) ToolResult {
	args := parseToolArguments(call.Arguments)

	action, _ := args["action"].(string)
	details, _ := args["details"].(string)

	return ToolResult{
		Status:  ToolResultStatus,
		Action:  action,
		Details: details,
		Message: toolResultMessage,
	}
}
