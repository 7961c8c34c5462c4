// Package telemetry optionally publishes plugin lifecycle and chat-pipeline
// events to NATS for external observability. It never affects routing or
// plugin lifecycle: every publish failure is logged and swallowed, and a
// Publisher created without a NATS URL is a permanent no-op — the same
// stub-vs-real split the teacher's events package uses for its own
// NATS-backed publisher.
package telemetry

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/ShayBox/VRC-OSC/internal/logger"
)

const (
	// SubjectPluginLoaded fires once a plugin's endpoint is bound and its
	// worker is about to start.
	SubjectPluginLoaded = "oscrouter.plugin.loaded"
	// SubjectPluginPanicked fires when a plugin's Load worker panics.
	SubjectPluginPanicked = "oscrouter.plugin.panicked"
	// SubjectChatTick fires after each completed chat-pipeline run.
	SubjectChatTick = "oscrouter.chat.tick"
)

// Event is the envelope published to every subject above.
type Event struct {
	ID        string         `json:"id"`
	Subject   string         `json:"subject"`
	Timestamp time.Time      `json:"timestamp"`
	Payload   map[string]any `json:"payload,omitempty"`
}

// Publisher sends Events to NATS. The zero value is not usable; construct
// with NewPublisher. A nil *Publisher is valid and behaves as disabled, so
// callers never need a separate "is telemetry configured" branch.
type Publisher struct {
	conn    *nats.Conn
	enabled bool
}

// NewPublisher connects to natsURL. If natsURL is empty, telemetry is
// disabled and every Publish call becomes a no-op.
func NewPublisher(natsURL string) (*Publisher, error) {
	if natsURL == "" {
		logger.Telemetry().Info().Msg("nats_url not configured, telemetry disabled")
		return &Publisher{enabled: false}, nil
	}

	conn, err := nats.Connect(natsURL,
		nats.Name("vrc-osc-loader"),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(10),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Telemetry().Warn().Err(err).Msg("nats disconnected")
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Telemetry().Info().Str("url", nc.ConnectedUrl()).Msg("nats reconnected")
		}),
	)
	if err != nil {
		return nil, err
	}

	return &Publisher{conn: conn, enabled: true}, nil
}

// Close releases the underlying NATS connection, if any.
func (p *Publisher) Close() {
	if p == nil || p.conn == nil {
		return
	}
	p.conn.Close()
}

// Publish sends an Event to subject. Errors are logged and swallowed:
// telemetry must never affect the router or plugin lifecycle.
func (p *Publisher) Publish(subject string, payload map[string]any) {
	if p == nil || !p.enabled {
		return
	}

	event := Event{
		ID:        uuid.NewString(),
		Subject:   subject,
		Timestamp: time.Now(),
		Payload:   payload,
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Telemetry().Warn().Err(err).Str("subject", subject).Msg("failed to encode telemetry event")
		return
	}

	if err := p.conn.Publish(subject, data); err != nil {
		logger.Telemetry().Warn().Err(err).Str("subject", subject).Msg("failed to publish telemetry event")
	}
}

// PluginLoaded publishes SubjectPluginLoaded for the named plugin.
func (p *Publisher) PluginLoaded(name, addr string) {
	p.Publish(SubjectPluginLoaded, map[string]any{"plugin": name, "addr": addr})
}

// PluginPanicked publishes SubjectPluginPanicked for the named plugin.
func (p *Publisher) PluginPanicked(name, reason string) {
	p.Publish(SubjectPluginPanicked, map[string]any{"plugin": name, "reason": reason})
}

// ChatTick publishes SubjectChatTick with the resulting chat message.
func (p *Publisher) ChatTick(chatbox, console string) {
	p.Publish(SubjectChatTick, map[string]any{"chatbox": chatbox, "console": console})
}
