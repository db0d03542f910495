// CLAUDE:SUMMARY Transport-agnostic endpoint type plus the request-scoped context values shared by HTTP and MCP.
package kit

import "context"

// Endpoint is one catalog action, independent of how the request
// arrived. The HTTP router and the MCP tools dispatch to the same set.
type Endpoint func(ctx context.Context, request any) (response any, err error)

// Middleware wraps an Endpoint with a cross-cutting concern.
type Middleware func(Endpoint) Endpoint

// Chain composes middlewares outermost-first:
// Chain(a, b, c)(e) == a(b(c(e))).
func Chain(mws ...Middleware) Middleware {
	return func(next Endpoint) Endpoint {
		for i := len(mws) - 1; i >= 0; i-- {
			next = mws[i](next)
		}
		return next
	}
}

type transportKey struct{}
type requestIDKey struct{}

// Transport names carried in request contexts.
const (
	TransportHTTP = "http"
	TransportMCP  = "mcp_quic"
)

// WithTransport tags ctx with the transport the request arrived on.
func WithTransport(ctx context.Context, t string) context.Context {
	return context.WithValue(ctx, transportKey{}, t)
}

// Transport returns the tagged transport, defaulting to HTTP.
func Transport(ctx context.Context) string {
	if t, ok := ctx.Value(transportKey{}).(string); ok {
		return t
	}
	return TransportHTTP
}

// WithRequestID tags ctx with a request id for log correlation.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the tagged request id, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
