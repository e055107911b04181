// Package nats exposes the message service over NATS request/reply
// subjects with JSON payloads.
package nats

import (
	"context"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/agency/cryptoservice/internal/logging"
	"github.com/agency/cryptoservice/internal/server/config"
	"github.com/agency/cryptoservice/internal/server/services"
)

// Connect dials the NATS server with the configured connection policy.
func Connect(cfg *config.Config, logger logging.Logger) (*nats.Conn, error) {
	opts := []nats.Option{
		nats.Name(cfg.NatsConnectionName),
		nats.Timeout(cfg.NatsConnectTimeout),
		nats.MaxReconnects(cfg.NatsMaxReconnects),
		nats.ReconnectWait(cfg.NatsReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Warn(context.Background(), "nats disconnected", "error", err.Error())
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info(context.Background(), "nats reconnected", "url", nc.ConnectedUrl())
		}),
		nats.ErrorHandler(func(nc *nats.Conn, sub *nats.Subscription, err error) {
			logger.Error(context.Background(), "nats async error", "error", err.Error())
		}),
	}

	return nats.Connect(cfg.NatsURL, opts...)
}

type Server struct {
	conn           *nats.Conn
	service        *services.MessageService
	logger         logging.Logger
	requestTimeout time.Duration
}

func NewServer(conn *nats.Conn, service *services.MessageService, requestTimeout time.Duration, logger logging.Logger) *Server {
	return &Server{
		conn:           conn,
		service:        service,
		logger:         logger.With("module", "nats_server"),
		requestTimeout: requestTimeout,
	}
}

// Run subscribes to the request subjects and blocks until ctx is
// cancelled, then drains in-flight requests before returning.
func (s *Server) Run(ctx context.Context) error {

	saveSub, err := s.conn.Subscribe(SubjectSave, s.handleSave)
	if err != nil {
		return err
	}
	s.logger.Info(ctx, "subscribed", "subject", SubjectSave)

	_, err = s.conn.Subscribe(SubjectReceive, s.handleReceive)
	if err != nil {
		_ = saveSub.Unsubscribe()
		return err
	}
	s.logger.Info(ctx, "subscribed", "subject", SubjectReceive)

	<-ctx.Done()

	s.logger.Info(ctx, "stopping nats server...")
	if err := s.conn.Drain(); err != nil {
		return err
	}

	return nil
}
