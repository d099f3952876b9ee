package display

import (
	"bytes"
	"context"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/taigrr/orrery/pkg/render"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// waitFor polls cond until it holds or a second passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("timed out")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestStreamViewerPage(t *testing.T) {
	s := NewStream("", 0)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || !bytes.Contains(body, []byte("new WebSocket")) {
		t.Errorf("GET / = %d, body %q", resp.StatusCode, body)
	}

	resp, err = http.Get(srv.URL + "/nope")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("GET /nope = %d, want 404", resp.StatusCode)
	}
}

func TestStreamKeysAndFrames(t *testing.T) {
	s := NewStream("", 0)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	conn := dial(t, srv)
	waitFor(t, func() bool { return s.Viewers() == 1 })

	if err := conn.WriteJSON(KeyMessage{Key: "ArrowLeft", Down: true}); err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteJSON(KeyMessage{Key: "o", Down: true}); err != nil {
		t.Fatal(err)
	}

	var k Keys
	waitFor(t, func() bool {
		k = s.snapshot()
		return k.Left && k.Overlay
	})

	// Held keys persist, one-shot keys do not.
	if k = s.snapshot(); !k.Left || k.Overlay {
		t.Errorf("second snapshot = %+v", k)
	}

	if err := conn.WriteJSON(KeyMessage{Key: "ArrowLeft", Down: false}); err != nil {
		t.Fatal(err)
	}
	waitFor(t, func() bool { return !s.snapshot().Left })

	s.broadcast(websocket.BinaryMessage, []byte("frame"))
	kind, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}
	if kind != websocket.BinaryMessage || string(data) != "frame" {
		t.Errorf("got message %d %q", kind, data)
	}

	conn.Close()
	waitFor(t, func() bool { return s.Viewers() == 0 })
}

func TestStreamRun(t *testing.T) {
	s := NewStream("127.0.0.1:0", 0)
	fb := render.NewFramebuffer(4, 3)
	fb.SetBackgroundColor(0x336699)
	fb.Clear()

	frames := 0
	err := s.Run(context.Background(), func(Keys) (*render.Framebuffer, bool) {
		frames++
		return fb, frames > 3
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if frames != 4 {
		t.Errorf("stepped %d frames, want 4", frames)
	}
}

func TestStreamRunCanceled(t *testing.T) {
	s := NewStream("127.0.0.1:0", 100)
	fb := render.NewFramebuffer(2, 2)

	ctx, cancel := context.WithCancel(context.Background())
	err := s.Run(ctx, func(Keys) (*render.Framebuffer, bool) {
		cancel()
		return fb, false
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestStreamRunBadAddr(t *testing.T) {
	s := NewStream("256.0.0.1:bad", 0)
	err := s.Run(context.Background(), func(Keys) (*render.Framebuffer, bool) {
		t.Error("stepped without a listener")
		return nil, true
	})
	if err == nil {
		t.Fatal("expected listen error")
	}
}

func TestStreamFramesArePNG(t *testing.T) {
	s := NewStream("", 0)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()
	conn := dial(t, srv)
	waitFor(t, func() bool { return s.Viewers() == 1 })

	fb := render.NewFramebuffer(8, 6)
	fb.SetBackgroundColor(0xFF0000)
	fb.Clear()
	s.Status = func() Status { return Status{Focus: "Terra", Zoom: 1} }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- s.loop(ctx, func(Keys) (*render.Framebuffer, bool) { return fb, false })
	}()

	var gotFrame, gotStatus bool
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for !gotFrame || !gotStatus {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		switch kind {
		case websocket.BinaryMessage:
			img, err := png.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
				t.Errorf("frame size %v", b)
			}
			gotFrame = true
		case websocket.TextMessage:
			if !strings.Contains(string(data), "Terra") {
				t.Errorf("status %q", data)
			}
			gotStatus = true
		}
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("loop: %v", err)
	}
}

func TestStatusLine(t *testing.T) {
	got := statusLine(Status{Focus: "Jove", Zoom: 1.5, Paused: true}, 59.6)
	want := "60 FPS | Jove | zoom 1.50 | paused"
	if got != want {
		t.Errorf("statusLine = %q, want %q", got, want)
	}
}

func TestHUDLine(t *testing.T) {
	line := hudLine(Status{Focus: "Gas Giant (Jupiter-like)", Zoom: 0.75, Overlay: true}, 30)
	for _, want := range []string{"30 FPS", "Gas Giant (Jupiter-like)", "zoom 0.75", "[x] overlay", "[ ] paused"} {
		if !strings.Contains(line, want) {
			t.Errorf("HUD %q missing %q", line, want)
		}
	}
}
