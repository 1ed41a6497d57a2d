package remote

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	inputs "github.com/richinsley/goshaderdemos/inputs"
)

func TestMessageEvent(t *testing.T) {
	tests := []struct {
		msg  Message
		want inputs.Event
	}{
		{Message{Type: "move", X: 3, Y: 4}, inputs.MoveEvent(3, 4)},
		{Message{Type: "down", Button: 2, X: 1, Y: 1}, inputs.DownEvent(inputs.ButtonRight, 1, 1)},
		{Message{Type: "up"}, inputs.UpEvent(inputs.ButtonLeft, 0, 0)},
		{Message{Type: "wheel", DeltaY: -100}, inputs.WheelEvent(-100)},
		{Message{Type: "select", Label: "Box"}, inputs.SelectEvent("Box")},
	}
	for _, tt := range tests {
		got, err := tt.msg.Event()
		if err != nil {
			t.Fatalf("%s: %v", tt.msg.Type, err)
		}
		if got != tt.want {
			t.Errorf("%s: got %+v, want %+v", tt.msg.Type, got, tt.want)
		}
	}

	if _, err := (Message{Type: "teleport"}).Event(); err == nil {
		t.Error("expected error for unknown type")
	}
}

func waitForEvents(t *testing.T, q *inputs.Queue, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for q.Len() < n {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %d events, have %d", n, q.Len())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestServerForwardsEvents(t *testing.T) {
	q := inputs.NewQueue()
	s := NewServer("127.0.0.1:0", q)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	msgs := []Message{
		{Type: "down", Button: 0, X: 100, Y: 100},
		{Type: "teleport"},
		{Type: "move", X: 110, Y: 115},
		{Type: "select", Label: "Torus"},
	}
	for _, m := range msgs {
		if err := conn.WriteJSON(m); err != nil {
			t.Fatal(err)
		}
	}
	waitForEvents(t, q, 3)

	state := inputs.NewState(inputs.FeatureOrbit|inputs.FeatureSelection, 640, 480)
	q.Drain(state.Apply)
	rx, ry := state.Orbit.Rotation()
	if rx < 0.149 || rx > 0.151 || ry < 0.099 || ry > 0.101 {
		t.Fatalf("rotation = (%v, %v)", rx, ry)
	}
	if state.Selection.Label() != "Torus" {
		t.Fatalf("selection = %s", state.Selection.Label())
	}
}

func TestServerStartAndShutdown(t *testing.T) {
	q := inputs.NewQueue()
	s := NewServer("127.0.0.1:0", q)
	addr, err := s.Start()
	if err != nil {
		t.Fatal(err)
	}

	conn, _, err := websocket.DefaultDialer.Dial("ws://"+addr+"/ws", nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteJSON(Message{Type: "wheel", DeltaY: 10}); err != nil {
		t.Fatal(err)
	}
	waitForEvents(t, q, 1)

	if err := s.Shutdown(t.Context()); err != nil {
		t.Fatal(err)
	}
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatal("expected connection to be closed after shutdown")
	}
}
