package natsadapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/bubblepoint/internal/core/domain"
)

// Subscriber implements ports.ResultSubscriber using NATS JetStream.
type Subscriber struct {
	conn    *nats.Conn
	js      nats.JetStreamContext
	durable string
	subs    []*nats.Subscription
}

// NewSubscriber connects to NATS. durable names the consumer; an empty
// name creates an ephemeral one.
func NewSubscriber(url, durable string) (*Subscriber, error) {
	conn, err := RawConn(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("jetstream: %w", err)
	}
	return &Subscriber{conn: conn, js: js, durable: durable}, nil
}

// SubscribeResults delivers every new result to handler. Messages that
// fail to decode are terminated; handler errors are retried up to three times.
func (s *Subscriber) SubscribeResults(ctx context.Context, handler func(ctx context.Context, r *domain.EquilibriumResult) error) error {
	return s.subscribe(ResultSubjects, s.durable, func(data []byte) error {
		r, err := DecodeResult(data)
		if err != nil {
			return errUndecodable
		}
		return handler(ctx, r)
	})
}

// SubscribeIsotherms delivers every new isotherm to handler, with the same
// acknowledgement rules as SubscribeResults.
func (s *Subscriber) SubscribeIsotherms(ctx context.Context, handler func(ctx context.Context, iso *domain.Isotherm) error) error {
	durable := s.durable
	if durable != "" {
		durable += "-isotherm"
	}
	return s.subscribe(IsothermSubjects, durable, func(data []byte) error {
		iso, err := DecodeIsotherm(data)
		if err != nil {
			return errUndecodable
		}
		return handler(ctx, iso)
	})
}

var errUndecodable = errors.New("undecodable payload")

func (s *Subscriber) subscribe(subject, durable string, handle func(data []byte) error) error {
	opts := []nats.SubOpt{
		nats.ManualAck(),
		nats.MaxDeliver(3),
		nats.DeliverNew(),
	}
	if durable != "" {
		opts = append(opts, nats.Durable(durable))
	}

	sub, err := s.js.Subscribe(subject, func(msg *nats.Msg) {
		switch err := handle(msg.Data); {
		case errors.Is(err, errUndecodable):
			_ = msg.Term()
		case err != nil:
			_ = msg.Nak()
		default:
			_ = msg.Ack()
		}
	}, opts...)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", subject, err)
	}
	s.subs = append(s.subs, sub)
	return nil
}

// Close unsubscribes and drains.
func (s *Subscriber) Close() {
	for _, sub := range s.subs {
		_ = sub.Unsubscribe()
	}
	_ = s.conn.Drain()
}
