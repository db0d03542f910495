// Package chassis runs the catalog's two transports on one port:
// TCP carries HTTP/1.1 and HTTP/2 for the REST API and the static
// asset tree, UDP carries QUIC demuxed by ALPN into HTTP/3 and
// MCP tool sessions. HTTP responses advertise HTTP/3 via Alt-Svc.
//
// Without configured certificate files a self-signed ECDSA P-256
// certificate is generated at startup for development use.
package chassis

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/mark3labs/mcp-go/server"
	"github.com/quic-go/quic-go"
	"github.com/quic-go/quic-go/http3"

	"github.com/florakit/herbarium/pkg/mcpquic"
)

// Config holds everything the chassis needs to serve.
type Config struct {
	// Addr is the listen address, bound on both TCP and UDP.
	Addr string
	// TLS overrides certificate handling entirely when set.
	TLS *tls.Config
	// CertFile and KeyFile load a production certificate. When empty
	// (and TLS is nil) a self-signed dev certificate is generated.
	CertFile string
	KeyFile  string
	// Handler serves HTTP on all three HTTP versions.
	Handler http.Handler
	// MCPServer enables MCP over QUIC. nil disables the MCP ALPN.
	MCPServer *server.MCPServer
	Logger    *slog.Logger
}

// Server owns the TCP and UDP listeners for one address.
type Server struct {
	addr    string
	logger  *slog.Logger
	tlsCfg  *tls.Config
	handler http.Handler
	mcp     *mcpquic.Handler

	httpSrv *http.Server
	h3Srv   *http3.Server
	quicLn  *quic.Listener
}

func New(cfg Config) (*Server, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	tlsCfg, err := resolveTLS(cfg)
	if err != nil {
		return nil, err
	}

	s := &Server{
		addr:    cfg.Addr,
		logger:  cfg.Logger,
		tlsCfg:  tlsCfg,
		handler: securityHeaders(altSvc(cfg.Addr, cfg.Handler)),
	}
	if cfg.MCPServer != nil {
		s.mcp = mcpquic.NewHandler(cfg.MCPServer, cfg.Logger)
	}
	return s, nil
}

func resolveTLS(cfg Config) (*tls.Config, error) {
	if cfg.TLS != nil {
		return cfg.TLS, nil
	}
	if cfg.CertFile != "" && cfg.KeyFile != "" {
		tlsCfg, err := ProductionTLSConfig(cfg.CertFile, cfg.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("load TLS certificate: %w", err)
		}
		cfg.Logger.Info("TLS certificate loaded", "cert", cfg.CertFile)
		return tlsCfg, nil
	}
	tlsCfg, err := DevelopmentTLSConfig()
	if err != nil {
		return nil, fmt.Errorf("generate dev TLS certificate: %w", err)
	}
	cfg.Logger.Info("TLS: self-signed dev certificate generated")
	return tlsCfg, nil
}

// Start brings up both listeners and blocks until ctx is cancelled or
// either transport fails.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 2)

	if err := s.startTCP(errCh); err != nil {
		return err
	}
	if err := s.startQUIC(ctx, errCh); err != nil {
		return err
	}

	s.logger.Info("server listening",
		"addr", s.addr,
		"tcp", "HTTP/1.1+HTTP/2",
		"udp", "HTTP/3+MCP",
	)

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

func (s *Server) startTCP(errCh chan<- error) error {
	tcpTLS := s.tlsCfg.Clone()
	tcpTLS.NextProtos = []string{"h2", "http/1.1"}

	ln, err := tls.Listen("tcp", s.addr, tcpTLS)
	if err != nil {
		return fmt.Errorf("tcp listen: %w", err)
	}

	s.httpSrv = &http.Server{Addr: s.addr, Handler: s.handler, TLSConfig: tcpTLS}
	go func() {
		if err := s.httpSrv.Serve(ln); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http serve: %w", err)
		}
	}()
	return nil
}

func (s *Server) startQUIC(ctx context.Context, errCh chan<- error) error {
	ln, err := quic.ListenAddr(s.addr, s.tlsCfg, mcpquic.NewQUICConfig())
	if err != nil {
		return fmt.Errorf("quic listen: %w", err)
	}
	s.quicLn = ln
	s.h3Srv = &http3.Server{Handler: s.handler}

	go func() {
		for {
			conn, err := ln.Accept(ctx)
			if err != nil {
				if ctx.Err() == nil {
					errCh <- fmt.Errorf("quic accept: %w", err)
				}
				return
			}
			s.route(ctx, conn)
		}
	}()
	return nil
}

// route hands an accepted QUIC connection to the transport its ALPN
// negotiated.
func (s *Server) route(ctx context.Context, conn *quic.Conn) {
	switch alpn := conn.ConnectionState().TLS.NegotiatedProtocol; alpn {
	case "h3":
		go func() {
			if err := s.h3Srv.ServeQUICConn(conn); err != nil {
				s.logger.Debug("http3 conn done", "remote", conn.RemoteAddr(), "error", err)
			}
		}()
	case mcpquic.ALPNProtocolMCP:
		if s.mcp == nil {
			conn.CloseWithError(quic.ApplicationErrorCode(0x10), "MCP not enabled")
			return
		}
		go s.mcp.ServeConn(ctx, conn)
	default:
		s.logger.Warn("closing connection with unknown ALPN", "alpn", alpn, "remote", conn.RemoteAddr())
		conn.CloseWithError(quic.ApplicationErrorCode(0x11), "unsupported ALPN: "+alpn)
	}
}

// Stop shuts both listeners down, letting in-flight HTTP requests
// finish within ctx.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("server stopping")

	var firstErr error
	if s.httpSrv != nil {
		if err := s.httpSrv.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if s.quicLn != nil {
		if err := s.quicLn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if s.h3Srv != nil {
		if err := s.h3Srv.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; img-src 'self' data:; style-src 'self' 'unsafe-inline'; frame-ancestors 'none'")
		next.ServeHTTP(w, r)
	})
}

// altSvc advertises HTTP/3 on the same port to HTTP/1.1 and HTTP/2
// clients.
func altSvc(addr string, next http.Handler) http.Handler {
	_, port, _ := net.SplitHostPort(addr)
	if port == "" {
		port = "443"
	}
	header := fmt.Sprintf(`h3=":%s"; ma=86400`, port)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Alt-Svc", header)
		next.ServeHTTP(w, r)
	})
}
