// CLAUDE:SUMMARY Server side of MCP over QUIC: per-connection handler driving newline-delimited JSON-RPC through an MCPServer.
package mcpquic

import (
	"bufio"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/quic-go/quic-go"

	"github.com/florakit/herbarium/pkg/kit"
)

// Handler serves one MCP session per QUIC connection. It does not own a
// listener; the chassis hands it connections whose ALPN matched.
type Handler struct {
	mcp    *server.MCPServer
	logger *slog.Logger
}

func NewHandler(mcpSrv *server.MCPServer, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{mcp: mcpSrv, logger: logger}
}

// ServeConn runs the MCP session on conn until the peer disconnects or
// ctx is cancelled. Messages are newline-delimited JSON-RPC on the
// first bidirectional stream, after the stream preface.
func (h *Handler) ServeConn(ctx context.Context, conn *quic.Conn) {
	log := h.logger.With("remote", conn.RemoteAddr().String())

	stream, err := conn.AcceptStream(ctx)
	if err != nil {
		log.Error("mcp: no stream from peer", "error", err)
		conn.CloseWithError(ConnErrorProtocolViolation, "stream accept failed")
		return
	}
	if err := expectPreface(stream); err != nil {
		log.Error("mcp: bad stream preface", "error", err)
		stream.CancelWrite(StreamErrorProtocolConfusion)
		stream.CancelRead(StreamErrorProtocolConfusion)
		conn.CloseWithError(ConnErrorProtocolViolation, "invalid stream preface")
		return
	}

	sess := newSession(stream)
	log = log.With("session", sess.id)
	log.Info("mcp session open")

	if err := h.mcp.RegisterSession(ctx, sess); err != nil {
		log.Error("mcp: session registration failed", "error", err)
		stream.Close()
		return
	}
	defer h.mcp.UnregisterSession(ctx, sess.id)

	ctx = kit.WithTransport(ctx, kit.TransportMCP)
	ctx = h.mcp.WithContext(ctx, sess)

	go sess.pumpNotifications(ctx)

	scan := bufio.NewReader(stream)
	for {
		line, err := scan.ReadBytes('\n')
		if err != nil {
			if err != io.EOF && ctx.Err() == nil {
				log.Error("mcp: read failed", "error", err)
			}
			break
		}
		line = line[:len(line)-1]
		if len(line) == 0 {
			continue
		}

		resp := h.mcp.HandleMessage(ctx, json.RawMessage(line))
		if resp == nil {
			continue
		}
		if err := sess.writeMessage(resp); err != nil {
			log.Error("mcp: write failed", "error", err)
			break
		}
	}

	log.Info("mcp session closed")
}

// session is one connection's server.ClientSession. All stream writes
// (responses and notifications) go through writeMessage, which holds
// the write lock.
type session struct {
	id            string
	stream        io.Writer
	writeMu       sync.Mutex
	notifications chan mcp.JSONRPCNotification
	initialized   atomic.Bool
}

func newSession(stream io.Writer) *session {
	raw := make([]byte, 4)
	rand.Read(raw)
	return &session{
		id:            "quic_" + hex.EncodeToString(raw),
		stream:        stream,
		notifications: make(chan mcp.JSONRPCNotification, 100),
	}
}

func (s *session) SessionID() string                                   { return s.id }
func (s *session) NotificationChannel() chan<- mcp.JSONRPCNotification { return s.notifications }
func (s *session) Initialize()                                         { s.initialized.Store(true) }
func (s *session) Initialized() bool                                   { return s.initialized.Load() }

func (s *session) writeMessage(msg any) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	_, err = s.stream.Write(data)
	return err
}

func (s *session) pumpNotifications(ctx context.Context) {
	for {
		select {
		case notif := <-s.notifications:
			_ = s.writeMessage(notif)
		case <-ctx.Done():
			return
		}
	}
}
