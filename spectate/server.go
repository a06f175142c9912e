package spectate

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/VladWero08/SinisterEscape/logger"
)

// Websocket timings
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server serves the hub's frames on /ws and a liveness probe on /health
type Server struct {
	hub  *Hub
	log  *logrus.Logger
	srv  *http.Server
	addr string
}

// NewServer creates a server for addr; log may be nil
func NewServer(addr string, hub *Hub, log *logrus.Logger) *Server {
	if log == nil {
		log = logger.Log
	}
	s := &Server{hub: hub, log: log, addr: addr}
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Start listens on the address and serves in the background
// Listen errors are returned; later serve errors are logged
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("spectate listen %s: %w", s.addr, err)
	}
	s.addr = ln.Addr().String()

	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.WithError(err).Error("spectate server stopped")
		}
	}()
	s.log.WithField("addr", s.addr).Info("spectator feed listening")
	return nil
}

// Addr returns the bound address once Start succeeded
func (s *Server) Addr() string {
	return s.addr
}

// Shutdown disconnects viewers and stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Close()
	return s.srv.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ok")); err != nil {
		s.log.WithError(err).Debug("health write failed")
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	v := &viewer{
		id:   uuid.NewString(),
		conn: conn,
		hub:  s.hub,
		log:  s.log,
	}
	v.frames = s.hub.Register(v.id)
	s.log.WithField("viewer", v.id).Info("viewer connected")

	go v.writePump()
	go v.readPump()
}

// viewer is one websocket connection
type viewer struct {
	id     string
	conn   *websocket.Conn
	hub    *Hub
	log    *logrus.Logger
	frames <-chan Frame
}

// readPump only watches for the connection closing; viewers send nothing
func (v *viewer) readPump() {
	defer func() {
		v.hub.Unregister(v.id)
		if err := v.conn.Close(); err != nil {
			v.log.WithError(err).Debug("close viewer connection")
		}
		v.log.WithField("viewer", v.id).Info("viewer disconnected")
	}()

	v.conn.SetReadLimit(maxMessageSize)
	if err := v.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		v.log.WithError(err).Warn("failed to set read deadline")
	}
	v.conn.SetPongHandler(func(string) error {
		return v.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := v.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				v.log.WithError(err).Warn("viewer read failed")
			}
			return
		}
	}
}

// writePump sends frames and keepalive pings
func (v *viewer) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := v.conn.Close(); err != nil {
			v.log.WithError(err).Debug("close viewer connection in writePump")
		}
	}()

	for {
		select {
		case f, ok := <-v.frames:
			if err := v.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				v.log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := v.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					v.log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := v.conn.WriteJSON(f); err != nil {
				v.log.WithError(err).Debug("write frame failed")
				return
			}

		case <-ticker.C:
			if err := v.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				v.log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := v.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				v.log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
