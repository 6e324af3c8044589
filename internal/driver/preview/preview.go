package preview

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/fkcurrie/neomatrix-golang/pkg/matrix"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
	// Frames queued per client before new ones are dropped
	sendBuffer = 8
)

// Frame is the JSON document pushed to preview clients on every render.
// Pixels holds 6 hex digits (RRGGBB) per LED in chain order.
type Frame struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Progressive bool   `json:"progressive"`
	Frame       int    `json:"frame"`
	Pixels      string `json:"pixels"`
}

// Decode returns the colors held in f.Pixels
func (f Frame) Decode() ([]color.RGBA, error) {
	raw, err := hex.DecodeString(f.Pixels)
	if err != nil {
		return nil, err
	}
	if len(raw)%3 != 0 {
		return nil, fmt.Errorf("preview: pixel data length %d is not a multiple of 3", len(raw))
	}
	out := make([]color.RGBA, len(raw)/3)
	for i := range out {
		out[i] = color.RGBA{raw[3*i], raw[3*i+1], raw[3*i+2], 255}
	}
	return out, nil
}

// Strip is a matrix.Strip that streams every rendered frame to browsers
// over a websocket instead of driving LEDs
type Strip struct {
	layout matrix.Layout
	addr   string
	log    *slog.Logger

	mu      sync.Mutex
	pixels  []byte
	frame   int
	latest  []byte
	clients map[*client]struct{}

	upgrader websocket.Upgrader
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// New creates a preview strip for layout that will listen on addr once Run
// is called
func New(layout matrix.Layout, addr string, log *slog.Logger) *Strip {
	if log == nil {
		log = slog.Default()
	}
	s := &Strip{
		layout:  layout,
		addr:    addr,
		log:     log,
		pixels:  make([]byte, 3*layout.Len()),
		clients: make(map[*client]struct{}),
	}
	s.latest = s.encode()
	return s
}

// SetPixel implements matrix.Strip
func (s *Strip) SetPixel(index int, c color.RGBA) {
	if index < 0 || index >= s.layout.Len() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pixels[3*index] = c.R
	s.pixels[3*index+1] = c.G
	s.pixels[3*index+2] = c.B
}

// Render implements matrix.Strip. Slow clients miss frames rather than
// holding up the animation.
func (s *Strip) Render() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.frame++
	s.latest = s.encode()
	for c := range s.clients {
		select {
		case c.send <- s.latest:
		default:
		}
	}
	return nil
}

// PixelCount implements matrix.Strip
func (s *Strip) PixelCount() int {
	return s.layout.Len()
}

// Close disconnects every client
func (s *Strip) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for c := range s.clients {
		s.drop(c)
	}
	return nil
}

// Clients returns the number of connected websocket clients
func (s *Strip) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// encode assumes the lock is held
func (s *Strip) encode() []byte {
	data, _ := json.Marshal(Frame{
		Width:       s.layout.Width,
		Height:      s.layout.Height,
		Progressive: s.layout.Progressive,
		Frame:       s.frame,
		Pixels:      hex.EncodeToString(s.pixels),
	})
	return data
}

// drop assumes the lock is held
func (s *Strip) drop(c *client) {
	if _, ok := s.clients[c]; !ok {
		return
	}
	delete(s.clients, c)
	close(c.send)
}

// Handler returns the HTTP routes of the preview server
func (s *Strip) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.HandleFunc("/frame", s.serveFrame)
	mux.HandleFunc("/ws", s.serveWS)
	mux.HandleFunc("/", s.serveIndex)
	return mux
}

// Run serves the preview until ctx is done
func (s *Strip) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("preview listening", "addr", s.addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- fmt.Errorf("preview server: %w", err)
			return
		}
		errc <- nil
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		s.log.Warn("failed to shut down preview server", "error", err)
	}
	s.Close()
	return <-errc
}

func (s *Strip) serveFrame(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	data := s.latest
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *Strip) serveIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexHTML))
}

func (s *Strip) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	s.mu.Lock()
	s.clients[c] = struct{}{}
	c.send <- s.latest
	s.mu.Unlock()

	s.log.Debug("preview client connected", "remote", r.RemoteAddr)
	go s.writePump(c)
	s.readPump(c)
}

// readPump discards client messages and notices when the client goes away
func (s *Strip) readPump(c *client) {
	defer func() {
		s.mu.Lock()
		s.drop(c)
		s.mu.Unlock()
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.log.Warn("preview client error", "error", err)
			}
			return
		}
	}
}

// writePump sends queued frames and keeps the connection alive with pings
func (s *Strip) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
