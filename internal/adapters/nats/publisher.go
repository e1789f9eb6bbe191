package natsadapter

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/bubblepoint/internal/core/domain"
)

const (
	// StreamName is the JetStream stream holding every published calculation.
	StreamName = "VLE_RESULTS"

	resultPrefix   = "vle.result."
	isothermPrefix = "vle.isotherm."

	// ResultSubjects matches every result subject.
	ResultSubjects = resultPrefix + ">"
	// IsothermSubjects matches every isotherm subject.
	IsothermSubjects = isothermPrefix + ">"
)

// ResultSubject returns the subject for results of the pair c1/c2.
func ResultSubject(c1, c2 domain.ComponentID) string {
	return resultPrefix + string(c1) + "." + string(c2)
}

// IsothermSubject returns the subject for isotherms of the pair c1/c2.
func IsothermSubject(c1, c2 domain.ComponentID) string {
	return isothermPrefix + string(c1) + "." + string(c2)
}

// Publisher implements ports.ResultPublisher using NATS JetStream.
type Publisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// NewPublisher connects to NATS and makes sure the results stream exists.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := RawConn(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	cfg := nats.StreamConfig{
		Name:      StreamName,
		Subjects:  []string{ResultSubjects, IsothermSubjects},
		Retention: nats.LimitsPolicy,
		MaxAge:    24 * time.Hour,
		Storage:   nats.FileStorage,
	}
	if _, err := js.AddStream(&cfg); err != nil {
		// Stream may already exist
		if _, err := js.UpdateStream(&cfg); err != nil {
			conn.Close()
			return nil, fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
		}
	}

	return &Publisher{conn: conn, js: js}, nil
}

// PublishResult sends a single bubble-point result.
func (p *Publisher) PublishResult(ctx context.Context, r *domain.EquilibriumResult) error {
	data, err := EncodeResult(r)
	if err != nil {
		return err
	}
	return p.publish(ctx, ResultSubject(r.Component1, r.Component2), data)
}

// PublishIsotherm sends a complete isotherm.
func (p *Publisher) PublishIsotherm(ctx context.Context, iso *domain.Isotherm) error {
	data, err := EncodeIsotherm(iso)
	if err != nil {
		return err
	}
	return p.publish(ctx, IsothermSubject(iso.Component1, iso.Component2), data)
}

func (p *Publisher) publish(ctx context.Context, subject string, data []byte) error {
	msg := nats.NewMsg(subject)
	msg.Header.Set("Content-Type", ContentType)
	msg.Data = data
	if _, err := p.js.PublishMsg(msg, nats.Context(ctx)); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	return nil
}

// Conn exposes the underlying connection (readiness checks, relays).
func (p *Publisher) Conn() *nats.Conn {
	return p.conn
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}

// RawConn creates a plain NATS connection for subscribing (e.g. WebSocket relay).
func RawConn(url string) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
}
