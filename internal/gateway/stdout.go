// internal/gateway/stdout.go
package gateway

import (
	"context"

	"github.com/rs/zerolog"
)

// StdoutGateway logs instead of sending. Used for local runs when no
// gateway URL is configured.
type StdoutGateway struct {
	Log zerolog.Logger
}

func (g *StdoutGateway) Send(ctx context.Context, to, senderName, body string) error {
	g.Log.Info().
		Str("to", to).
		Str("from", senderName).
		Int("chars", len(body)).
		Msg("stdout gateway send")
	return nil
}

var _ Gateway = (*StdoutGateway)(nil)
