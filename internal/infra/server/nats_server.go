package server

import (
	"context"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	transport "github.com/gomicroshop/auth-service/internal/adapters/transport/nats"
	"github.com/gomicroshop/auth-service/internal/infra/config"
)

// queueGroup makes the broker deliver each request to exactly one instance.
const queueGroup = "auth"

// Start connects to the broker, binds the handler's subjects and serves until
// ctx is cancelled, then drains in-flight requests before returning.
func Start(ctx context.Context, cfg *config.Config, handler *transport.Handler, logger *zap.Logger) error {
	closed := make(chan struct{})

	nc, err := nats.Connect(strings.Join(cfg.NATSServers, ","),
		nats.Name("auth-service"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.ClosedHandler(func(*nats.Conn) { close(closed) }),
	)
	if err != nil {
		return err
	}

	for subject, handle := range handler.Routes() {
		if _, err := nc.QueueSubscribe(subject, queueGroup, func(msg *nats.Msg) {
			reply := handle(ctx, msg.Data)
			if err := msg.Respond(reply); err != nil {
				logger.Error("respond failed",
					zap.String("subject", msg.Subject), zap.Error(err))
			}
		}); err != nil {
			nc.Close()
			return err
		}
	}
	if err := nc.Flush(); err != nil {
		nc.Close()
		return err
	}

	logger.Info("auth microservice running",
		zap.Int("port", cfg.Port),
		zap.Strings("servers", cfg.NATSServers),
	)

	<-ctx.Done()
	logger.Info("ctx cancelled, draining broker subscriptions")

	if err := nc.Drain(); err != nil {
		nc.Close()
		return err
	}
	select {
	case <-closed:
	case <-time.After(5 * time.Second):
		nc.Close()
	}
	logger.Info("broker connection closed")
	return nil
}
