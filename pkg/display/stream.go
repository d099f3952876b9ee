package display

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/taigrr/orrery/pkg/render"
)

//go:embed viewer.html
var viewerHTML []byte

// KeyMessage is what the browser viewer sends on every key change.
type KeyMessage struct {
	Key  string `json:"key"`
	Down bool   `json:"down"`
}

// browserKeys maps DOM KeyboardEvent.key values that differ from the
// terminal key names.
var browserKeys = map[string]string{
	"ArrowLeft":  "left",
	"ArrowRight": "right",
	"ArrowUp":    "up",
	"ArrowDown":  "down",
	" ":          "space",
	"Escape":     "escape",
}

func browserAction(key string) Action {
	if name, ok := browserKeys[key]; ok {
		return ActionFor(name)
	}
	return ActionFor(strings.ToLower(key))
}

// Stream serves a small browser viewer over HTTP. Every frame is PNG encoded
// and pushed to each connected client over a websocket; clients send key
// state back as JSON KeyMessages.
type Stream struct {
	Addr string
	FPS  int

	// Status, when set, is sent to clients as a text message whenever it
	// changes.
	Status func() Status

	upgrader websocket.Upgrader

	clientsMu sync.RWMutex
	clients   map[*websocket.Conn]*sync.Mutex

	keysMu sync.Mutex
	keys   *latch
}

// NewStream returns a stream frontend that will listen on addr.
func NewStream(addr string, fps int) *Stream {
	return &Stream{
		Addr: addr,
		FPS:  fps,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]*sync.Mutex),
		// Browsers report releases, so a held key never expires.
		keys: newLatch(time.Duration(math.MaxInt64)),
	}
}

// Handler returns the HTTP handler serving the viewer page and the
// websocket endpoint.
func (s *Stream) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(viewerHTML)
	})
	mux.HandleFunc("/ws", s.handleWebSocket)
	return mux
}

func (s *Stream) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		render.Logger().Warn("websocket upgrade failed", slog.String("err", err.Error()))
		return
	}

	s.clientsMu.Lock()
	s.clients[conn] = &sync.Mutex{}
	n := len(s.clients)
	s.clientsMu.Unlock()
	render.Logger().Info("viewer connected",
		slog.String("remote", r.RemoteAddr),
		slog.Int("viewers", n),
	)

	defer s.drop(conn)

	for {
		var msg KeyMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				render.Logger().Debug("websocket read failed", slog.String("err", err.Error()))
			}
			return
		}
		a := browserAction(msg.Key)
		s.keysMu.Lock()
		if msg.Down {
			s.keys.press(a, time.Now())
		} else {
			s.keys.release(a)
		}
		s.keysMu.Unlock()
	}
}

func (s *Stream) drop(conn *websocket.Conn) {
	s.clientsMu.Lock()
	if _, ok := s.clients[conn]; ok {
		delete(s.clients, conn)
		conn.Close()
	}
	s.clientsMu.Unlock()
}

func (s *Stream) snapshot() Keys {
	s.keysMu.Lock()
	defer s.keysMu.Unlock()
	return s.keys.snapshot(time.Now())
}

// broadcast sends one message to every client, dropping clients whose write
// fails.
func (s *Stream) broadcast(kind int, data []byte) {
	var failed []*websocket.Conn

	s.clientsMu.RLock()
	for conn, mu := range s.clients {
		mu.Lock()
		conn.SetWriteDeadline(time.Now().Add(time.Second))
		err := conn.WriteMessage(kind, data)
		mu.Unlock()
		if err != nil {
			render.Logger().Debug("websocket write failed", slog.String("err", err.Error()))
			failed = append(failed, conn)
		}
	}
	s.clientsMu.RUnlock()

	for _, conn := range failed {
		s.drop(conn)
	}
}

// Viewers returns the number of connected clients.
func (s *Stream) Viewers() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}

// Run implements Frontend. It fails immediately when Addr cannot be bound.
func (s *Stream) Run(ctx context.Context, step StepFunc) error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.Addr, err)
	}
	render.Logger().Info("streaming", slog.String("url", "http://"+ln.Addr().String()+"/"))

	srv := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
			s.closeAll()
		}()
		return s.loop(ctx, step)
	})
	return g.Wait()
}

func (s *Stream) loop(ctx context.Context, step StepFunc) error {
	pacer := NewPacer(s.FPS)
	var (
		buf    bytes.Buffer
		status string
	)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		pacer.Begin()

		fb, quit := step(s.snapshot())
		if quit {
			return nil
		}

		if s.Viewers() > 0 {
			buf.Reset()
			if err := fb.EncodePNG(&buf); err != nil {
				return fmt.Errorf("encode frame: %w", err)
			}
			s.broadcast(websocket.BinaryMessage, buf.Bytes())

			if s.Status != nil {
				if line := statusLine(s.Status(), pacer.FPS()); line != status {
					s.broadcast(websocket.TextMessage, []byte(line))
					status = line
				}
			}
		}
		pacer.Wait()
	}
}

func (s *Stream) closeAll() {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	for conn := range s.clients {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
			time.Now().Add(time.Second))
		conn.Close()
		delete(s.clients, conn)
	}
}

// statusLine is the plain-text HUD sent to browser viewers.
func statusLine(st Status, fps float64) string {
	line := fmt.Sprintf("%.0f FPS | %s | zoom %.2f", fps, st.Focus, st.Zoom)
	if st.Paused {
		line += " | paused"
	}
	if st.Overlay {
		line += " | overlay"
	}
	return line
}

var _ Frontend = (*Stream)(nil)
