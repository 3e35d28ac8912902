package relay

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dialHandler(t *testing.T, g *Gateway) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(&Handler{Gateway: g})
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) Envelope {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var env Envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read envelope: %v", err)
	}
	return env
}

func TestHandler_ConnectedOnUpgrade(t *testing.T) {
	conn := dialHandler(t, NewGateway(nil))

	env := readEnvelope(t, conn)
	if env.Event != EventConnected {
		t.Fatalf("first event = %q; want %q", env.Event, EventConnected)
	}
	var payload ConnectedPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.SID == "" {
		t.Error("connected payload has no session id")
	}
}

func TestHandler_UnknownCommand(t *testing.T) {
	conn := dialHandler(t, NewGateway(nil))
	readEnvelope(t, conn) // connected

	if err := conn.WriteJSON(Envelope{Event: "reboot_everything"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	env := readEnvelope(t, conn)
	if env.Event != EventError {
		t.Fatalf("event = %q; want %q", env.Event, EventError)
	}
	var payload ErrorPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if !strings.Contains(payload.Message, "reboot_everything") {
		t.Errorf("message = %q; want it to name the command", payload.Message)
	}
}

func TestHandler_InvalidFrame(t *testing.T) {
	conn := dialHandler(t, NewGateway(nil))
	readEnvelope(t, conn) // connected

	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatalf("write: %v", err)
	}

	env := readEnvelope(t, conn)
	if env.Event != EventError {
		t.Errorf("event = %q; want %q for a malformed frame", env.Event, EventError)
	}
}

func TestHandler_StartSessionWithoutCredentials(t *testing.T) {
	conn := dialHandler(t, NewGateway(nil))
	readEnvelope(t, conn) // connected

	if err := conn.WriteJSON(Envelope{
		Event: CommandStartSession,
		Data:  json.RawMessage(`{"voice":"coral"}`),
	}); err != nil {
		t.Fatalf("write: %v", err)
	}

	env := readEnvelope(t, conn)
	if env.Event != EventError {
		t.Fatalf("event = %q; want %q", env.Event, EventError)
	}
	var payload ErrorPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if !strings.Contains(payload.Message, "credentials") {
		t.Errorf("message = %q; want the credentials hint", payload.Message)
	}
}

func TestHandler_EndSessionWithoutSession(t *testing.T) {
	conn := dialHandler(t, NewGateway(nil))
	readEnvelope(t, conn) // connected

	if err := conn.WriteJSON(Envelope{Event: CommandEndSession}); err != nil {
		t.Fatalf("write: %v", err)
	}

	env := readEnvelope(t, conn)
	if env.Event != EventSessionEnded {
		t.Errorf("event = %q; want %q", env.Event, EventSessionEnded)
	}
}

func TestHandler_DisconnectRemovesSession(t *testing.T) {
	g := NewGateway(nil)
	conn := dialHandler(t, g)
	readEnvelope(t, conn) // connected

	if g.Registry().Len() != 1 {
		t.Fatalf("Len() = %d after connect; want 1", g.Registry().Len())
	}

	conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for g.Registry().Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("Len() = %d after disconnect; want 0", g.Registry().Len())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestVoiceConfigHandler(t *testing.T) {
	srv := httptest.NewServer(VoiceConfigHandler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d; want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q; want application/json", ct)
	}

	var doc VoiceConfig
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(doc.Voices) != len(Voices) {
		t.Errorf("voices = %d; want %d", len(doc.Voices), len(Voices))
	}
	if doc.Config.Temperature.Default != TemperatureDefault {
		t.Errorf("temperature default = %v; want %v", doc.Config.Temperature.Default, TemperatureDefault)
	}
}

func TestVoiceConfigHandler_MethodNotAllowed(t *testing.T) {
	srv := httptest.NewServer(VoiceConfigHandler())
	defer srv.Close()

	resp, err := http.Post(srv.URL, "application/json", nil)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d; want 405", resp.StatusCode)
	}
}
