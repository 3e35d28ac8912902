package azrealtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// testServer is a local WebSocket endpoint standing in for the vendor API.
type testServer struct {
	*httptest.Server
	conns   chan *websocket.Conn
	headers chan http.Header
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	ts := &testServer{
		conns:   make(chan *websocket.Conn, 1),
		headers: make(chan http.Header, 1),
	}
	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ts.headers <- r.Header.Clone()
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		ts.conns <- conn
	}))
	t.Cleanup(ts.Close)
	return ts
}

func (ts *testServer) wsURL() string {
	return "ws" + strings.TrimPrefix(ts.URL, "http")
}

func dialTestSession(t *testing.T, ts *testServer) (*Session, *websocket.Conn) {
	t.Helper()

	client, err := NewClient("https://res.openai.azure.com", "test-key",
		WithWebSocketURL(ts.wsURL()))
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	session, err := client.Connect(ctx)
	if err != nil {
		t.Fatalf("Connect() error: %v", err)
	}
	t.Cleanup(func() { session.Close() })

	select {
	case conn := <-ts.conns:
		return session, conn
	case <-time.After(5 * time.Second):
		t.Fatal("server never accepted the connection")
		return nil, nil
	}
}

func TestConnect_SendsAPIKeyHeader(t *testing.T) {
	ts := newTestServer(t)
	_, _ = dialTestSession(t, ts)

	headers := <-ts.headers
	if got := headers.Get("api-key"); got != "test-key" {
		t.Errorf("api-key header = %q; want %q", got, "test-key")
	}
}

func TestSession_ReceivesEvents(t *testing.T) {
	ts := newTestServer(t)
	session, server := dialTestSession(t, ts)

	created := `{"type":"session.created","event_id":"evt_1","session":{"id":"sess_abc","model":"gpt-4o-realtime-preview"}}`
	if err := server.WriteMessage(websocket.TextMessage, []byte(created)); err != nil {
		t.Fatalf("server write failed: %v", err)
	}

	for event, err := range session.Events() {
		if err != nil {
			t.Fatalf("Events() yielded error: %v", err)
		}
		if event.Type != EventTypeSessionCreated {
			t.Errorf("event.Type = %q; want %q", event.Type, EventTypeSessionCreated)
		}
		if event.Session == nil || event.Session.ID != "sess_abc" {
			t.Errorf("event.Session = %+v; want ID sess_abc", event.Session)
		}
		break
	}

	if got := session.SessionID(); got != "sess_abc" {
		t.Errorf("SessionID() = %q; want %q", got, "sess_abc")
	}
}

func TestSession_ErrorEventYieldedAsEvent(t *testing.T) {
	ts := newTestServer(t)
	session, server := dialTestSession(t, ts)

	msg := `{"type":"error","error":{"type":"invalid_request_error","code":"bad","message":"nope"}}`
	if err := server.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
		t.Fatalf("server write failed: %v", err)
	}

	for event, err := range session.Events() {
		if err != nil {
			t.Fatalf("protocol error should be an event, got iterator error: %v", err)
		}
		if event.Type != EventTypeError {
			t.Errorf("event.Type = %q; want error", event.Type)
		}
		if event.ErrorDetail == nil || event.ErrorDetail.Code != "bad" {
			t.Errorf("event.ErrorDetail = %+v; want code \"bad\"", event.ErrorDetail)
		}
		break
	}
}

func TestSession_SendEvents(t *testing.T) {
	ts := newTestServer(t)
	session, server := dialTestSession(t, ts)

	temp := 0.8
	sends := []struct {
		name     string
		send     func() error
		wantType string
	}{
		{"update_session", func() error {
			return session.UpdateSession(&SessionConfig{Voice: VoiceCoral, Temperature: &temp})
		}, EventTypeSessionUpdate},
		{"append_audio", func() error {
			return session.AppendAudioBase64("AAAA")
		}, EventTypeInputAudioBufferAppend},
		{"commit", session.CommitInput, EventTypeInputAudioBufferCommit},
		{"clear", session.ClearInput, EventTypeInputAudioBufferClear},
		{"function_call_output", func() error {
			return session.AddFunctionCallOutput("c1", `{"status":"acknowledged"}`)
		}, EventTypeConversationItemCreate},
		{"response_create", func() error {
			return session.CreateResponse(&ResponseCreateOptions{ToolChoice: ToolChoiceNone})
		}, EventTypeResponseCreate},
	}

	for _, tc := range sends {
		if err := tc.send(); err != nil {
			t.Fatalf("%s: send failed: %v", tc.name, err)
		}

		_, raw, err := server.ReadMessage()
		if err != nil {
			t.Fatalf("%s: server read failed: %v", tc.name, err)
		}
		var frame map[string]interface{}
		if err := json.Unmarshal(raw, &frame); err != nil {
			t.Fatalf("%s: frame is not JSON: %v", tc.name, err)
		}
		if frame["type"] != tc.wantType {
			t.Errorf("%s: frame type = %v; want %q", tc.name, frame["type"], tc.wantType)
		}
		if id, _ := frame["event_id"].(string); !strings.HasPrefix(id, "evt_") {
			t.Errorf("%s: event_id = %v; want evt_ prefix", tc.name, frame["event_id"])
		}
	}
}

func TestSession_CloseIdempotent(t *testing.T) {
	ts := newTestServer(t)
	session, _ := dialTestSession(t, ts)

	if err := session.Close(); err != nil {
		t.Fatalf("first Close() error: %v", err)
	}
	if err := session.Close(); err != nil {
		t.Errorf("second Close() error: %v; want nil", err)
	}
}

func TestSession_EventsEndAfterClose(t *testing.T) {
	ts := newTestServer(t)
	session, _ := dialTestSession(t, ts)

	session.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range session.Events() {
		}
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Events() did not terminate after Close()")
	}
}
