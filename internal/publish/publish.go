// Package publish fans collected inventories out over an AMQP exchange.
package publish

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/go-tangra/go-tangra-sysinfo/internal/collector"
	"github.com/go-tangra/go-tangra-sysinfo/internal/config"
)

var errClosed = errors.New("publisher is closed")

// Publisher sends inventory snapshots to an AMQP exchange.
type Publisher struct {
	cfg    config.AMQPConfig
	logger *zap.Logger

	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
	closed  bool
}

// New creates a Publisher. Connect must be called before Publish.
func New(cfg config.AMQPConfig, logger *zap.Logger) *Publisher {
	if cfg.ExchangeType == "" {
		cfg.ExchangeType = amqp.ExchangeFanout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{cfg: cfg, logger: logger}
}

// Connect dials the broker and declares the exchange.
func (p *Publisher) Connect(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return errClosed
	}
	if p.conn != nil {
		return nil
	}

	conn, err := amqp.DialConfig(p.cfg.URL, amqp.Config{Dial: amqp.DefaultDial(dialTimeout(ctx))})
	if err != nil {
		return fmt.Errorf("connect to broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(p.cfg.Exchange, p.cfg.ExchangeType, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return fmt.Errorf("declare exchange %s: %w", p.cfg.Exchange, err)
	}

	p.conn = conn
	p.channel = ch
	p.logger.Info("connected to broker", zap.String("exchange", p.cfg.Exchange))
	return nil
}

// Publish sends inv as one persistent JSON message.
func (p *Publisher) Publish(ctx context.Context, inv *collector.Inventory) error {
	msg, err := newMessage(inv)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return errClosed
	}
	if p.channel == nil {
		return errors.New("not connected")
	}

	if err := p.channel.PublishWithContext(ctx, p.cfg.Exchange, p.cfg.RoutingKey, false, false, msg); err != nil {
		return fmt.Errorf("publish inventory %s: %w", inv.ID, err)
	}

	p.logger.Debug("inventory published",
		zap.String("id", inv.ID),
		zap.String("exchange", p.cfg.Exchange),
		zap.String("routing_key", p.cfg.RoutingKey))
	return nil
}

// Close releases the channel and connection.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	var errs []error
	if p.channel != nil {
		errs = append(errs, p.channel.Close())
	}
	if p.conn != nil {
		errs = append(errs, p.conn.Close())
	}
	return errors.Join(errs...)
}

func newMessage(inv *collector.Inventory) (amqp.Publishing, error) {
	body, err := json.Marshal(inv)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("marshal inventory: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    inv.ID,
		Timestamp:    inv.CollectedAt,
		Type:         "sysinfo.inventory",
		Headers:      amqp.Table{"hostname": inv.Hostname},
		Body:         body,
	}, nil
}

func dialTimeout(ctx context.Context) time.Duration {
	if deadline, ok := ctx.Deadline(); ok {
		if d := time.Until(deadline); d > 0 {
			return d
		}
	}
	return 30 * time.Second
}
