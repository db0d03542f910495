package mcpquic

import (
	"crypto/tls"
	"time"

	"github.com/quic-go/quic-go"
)

// Transport tuning shared by the chassis demuxer and the client.
const (
	DefaultIdleTimeout = 5 * time.Minute
	DefaultKeepAlive   = 30 * time.Second

	streamReceiveWindow = 10 * 1024 * 1024
	connReceiveWindow   = 50 * 1024 * 1024
)

// NewQUICConfig returns the transport configuration used on both ends.
// 0-RTT and datagrams stay off; the protocol is strictly stream-based.
func NewQUICConfig() *quic.Config {
	return &quic.Config{
		MaxStreamReceiveWindow:     streamReceiveWindow,
		MaxConnectionReceiveWindow: connReceiveWindow,
		MaxIdleTimeout:             DefaultIdleTimeout,
		KeepAlivePeriod:            DefaultKeepAlive,
	}
}

// ClientTLSConfig returns the client-side TLS configuration. insecure
// skips certificate verification, for dev servers with self-signed
// certificates.
func ClientTLSConfig(insecure bool) *tls.Config {
	return &tls.Config{
		NextProtos:         []string{ALPNProtocolMCP},
		MinVersion:         tls.VersionTLS13,
		InsecureSkipVerify: insecure,
	}
}
