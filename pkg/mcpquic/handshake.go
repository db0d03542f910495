package mcpquic

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/quic-go/quic-go"
)

// ALPNProtocolMCP is the TLS ALPN token negotiated for MCP sessions.
// The chassis demuxes it against h3 on the shared UDP socket.
const ALPNProtocolMCP = "herbarium-mcp-v1"

// streamPreface opens every MCP stream. ALPN alone is spoofable by a
// confused client, so both sides also check these four bytes.
const streamPreface = "MCP1"

// Application-level QUIC error codes on this protocol.
const (
	ConnErrorNoError           quic.ApplicationErrorCode = 0x00
	ConnErrorUnsupportedALPN   quic.ApplicationErrorCode = 0x01
	ConnErrorProtocolViolation quic.ApplicationErrorCode = 0x03

	StreamErrorProtocolConfusion quic.StreamErrorCode = 0x02
)

var (
	ErrBadPreface      = errors.New("stream preface mismatch: expected " + streamPreface)
	ErrUnsupportedALPN = errors.New("ALPN negotiation did not select " + ALPNProtocolMCP)
)

// expectPreface consumes the stream preface sent by the peer.
func expectPreface(r io.Reader) error {
	buf := make([]byte, len(streamPreface))
	if _, err := io.ReadFull(r, buf); err != nil {
		return fmt.Errorf("read stream preface: %w", err)
	}
	if !bytes.Equal(buf, []byte(streamPreface)) {
		return fmt.Errorf("%w: got %q", ErrBadPreface, string(buf))
	}
	return nil
}

// sendPreface writes the stream preface. It must be the first write
// after the stream opens.
func sendPreface(w io.Writer) error {
	if _, err := w.Write([]byte(streamPreface)); err != nil {
		return fmt.Errorf("write stream preface: %w", err)
	}
	return nil
}
