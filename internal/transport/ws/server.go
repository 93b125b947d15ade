// Package ws serves levels over WebSocket. Each connection plays one level on
// its own puzzle.Runner and receives a STATE message after every change.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/logic-arcade/internal/arcade"
	"github.com/vovakirdan/logic-arcade/internal/levels"
	"github.com/vovakirdan/logic-arcade/internal/puzzle"
	"github.com/vovakirdan/logic-arcade/internal/registry"
)

const (
	handshakeTimeout = 5 * time.Second
	readTimeout      = 5 * time.Minute
	writeTimeout     = 5 * time.Second
	errorQueue       = 8
)

// Server is the WebSocket front end.
type Server struct {
	svc        arcade.Services
	log        *log.Logger
	tickPeriod time.Duration
	upgrader   websocket.Upgrader
}

// NewServer creates a server. A nil logger logs to stderr with the
// "logic-ws" prefix. tickPeriod is the wall-clock resolution of each runner.
func NewServer(svc arcade.Services, logger *log.Logger, tickPeriod time.Duration) *Server {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "logic-ws",
		})
	}
	return &Server{
		svc:        svc,
		log:        logger,
		tickPeriod: tickPeriod,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Mux routes /ws to the game handler and /packs to the pack listing.
func (s *Server) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.Handler())
	mux.HandleFunc("/packs", s.packsHandler)
	return mux
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Mux(),
		ReadHeaderTimeout: handshakeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("starting WebSocket server", "address", addr)
		err := srv.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		errCh <- err
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) packsHandler(rw http.ResponseWriter, _ *http.Request) {
	rw.Header().Set("Content-Type", "application/json")
	//nolint:errcheck // Client went away
	json.NewEncoder(rw).Encode(registry.List())
}

// Handler upgrades the request and plays one session on the connection.
func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		pack, runner := s.handshake(conn)
		if runner == nil {
			return
		}
		remote := conn.RemoteAddr().String()
		s.log.Info("session started", "remote", remote, "pack", pack)

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		go runner.Run(ctx) //nolint:errcheck // Returns ctx.Err on shutdown

		errs := make(chan string, errorQueue)
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.writeLoop(ctx, cancel, conn, pack, runner, errs)
		}()

		s.readLoop(ctx, conn, runner, errs)

		cancel()
		<-runner.Done()
		wg.Wait()
		s.log.Info("session ended", "remote", remote, "pack", pack)
	}
}

// handshake waits for HELLO and starts the requested level.
func (s *Server) handshake(conn *websocket.Conn) (string, *puzzle.Runner) {
	_ = conn.SetReadDeadline(time.Now().Add(handshakeTimeout))
	_, b, err := conn.ReadMessage()
	if err != nil {
		return "", nil
	}

	hello, err := decodeClient(b)
	if err != nil || hello.Type != TypeHello {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "expected HELLO"),
			time.Now().Add(time.Second))
		return "", nil
	}
	if hello.Pack == "" {
		hello.Pack = levels.CampaignPack
	}
	if hello.Level == 0 {
		hello.Level = 1
	}

	sess, err := s.svc.NewSession(hello.Pack, hello.Level)
	if err != nil {
		s.writeError(conn, err.Error())
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "unknown level"),
			time.Now().Add(time.Second))
		return "", nil
	}
	return hello.Pack, puzzle.NewRunner(sess, s.tickPeriod)
}

// readLoop forwards client commands to the runner until the connection fails.
func (s *Server) readLoop(ctx context.Context, conn *websocket.Conn, runner *puzzle.Runner, errs chan<- string) {
	report := func(msg string) {
		select {
		case errs <- msg:
		default:
		}
	}

	for {
		_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
		_, b, err := conn.ReadMessage()
		if err != nil {
			return
		}

		msg, err := decodeClient(b)
		if err != nil {
			report("malformed message")
			continue
		}

		switch msg.Type {
		case TypeToggle:
			ok, err := runner.Toggle(ctx, msg.Index)
			if err != nil {
				return
			}
			if !ok {
				report(fmt.Sprintf("switch %d cannot be toggled", msg.Index))
			}
		case TypeReset:
			if err := runner.Reset(ctx); err != nil {
				return
			}
		case TypeHello:
			report("already playing; reconnect to change level")
		default:
			report(fmt.Sprintf("unknown message type %q", msg.Type))
		}
	}
}

// writeLoop owns all writes to conn after the handshake.
func (s *Server) writeLoop(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, pack string, runner *puzzle.Runner, errs <-chan string) {
	for {
		var (
			b   []byte
			err error
		)
		select {
		case <-ctx.Done():
			return
		case snap := <-runner.Updates():
			b, err = encodeState(pack, snap)
		case msg := <-errs:
			b, err = encodeError(msg)
		}
		if err != nil {
			s.log.Error("cannot encode message", "error", err)
			continue
		}

		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
			cancel()
			// Unblock the reader.
			_ = conn.Close()
			return
		}
	}
}

func (s *Server) writeError(conn *websocket.Conn, msg string) {
	b, err := encodeError(msg)
	if err != nil {
		return
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	_ = conn.WriteMessage(websocket.TextMessage, b)
}
