// internal/gateway/gateway.go
package gateway

import "context"

// Gateway is the outbound SMS delivery port. One call per recipient;
// retry policy belongs to the gateway side, never to this engine.
type Gateway interface {
	Send(ctx context.Context, to, senderName, body string) error
}
