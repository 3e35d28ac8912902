// Package relay bridges browser clients to the Azure OpenAI Realtime
// API. Each client session owns exactly one upstream connection; the
// relay forwards typed events in both directions, translating between
// the client-facing event channel and the vendor protocol, and
// sequences tool-call execution against the upstream turn protocol
// (a function call detected mid-response is only acknowledged after
// the enclosing response cycle completes).
//
// The package is organized as:
//
//   - Registry: per-session state (upstream handle, receive task,
//     pending tool calls) with explicit create/remove lifecycle.
//   - Gateway: client-facing command dispatch (start_session,
//     send_audio, commit_audio, ...) and the upstream receive loop.
//   - Handler: the WebSocket transport carrying JSON event envelopes
//     between the browser and the Gateway.
//
// Audio payloads are opaque base64 strings; the relay never decodes
// or interprets them.
package relay
