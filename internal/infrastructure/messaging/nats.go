package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/petfinder-backend/internal/domain/entity"
)

const streamName = "PETFINDER_REPORTS"

// ReportEvent is the payload published for report lifecycle changes.
type ReportEvent struct {
	ReportID   string    `json:"report_id"`
	UserID     string    `json:"user_id"`
	Category   string    `json:"category"`
	Status     string    `json:"status"`
	Species    string    `json:"species"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	OccurredAt time.Time `json:"occurred_at"`
}

func newReportEvent(r *entity.Report) ReportEvent {
	return ReportEvent{
		ReportID:   r.ID.String(),
		UserID:     r.UserID.String(),
		Category:   string(r.Category),
		Status:     string(r.Status),
		Species:    string(r.Species),
		Latitude:   r.Location.Latitude,
		Longitude:  r.Location.Longitude,
		OccurredAt: r.OccurredAt,
	}
}

// NATSPublisher publishes report events to a JetStream stream.
type NATSPublisher struct {
	conn   *nats.Conn
	js     nats.JetStreamContext
	prefix string
	logger *zap.Logger
}

func NewNATSPublisher(url, prefix string, logger *zap.Logger) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("petfinder-backend"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to nats: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("enabling jetstream: %w", err)
	}

	cfg := &nats.StreamConfig{
		Name:      streamName,
		Subjects:  []string{prefix + ".reports.>"},
		Retention: nats.LimitsPolicy,
		MaxAge:    7 * 24 * time.Hour,
		Storage:   nats.FileStorage,
	}
	if _, err := js.AddStream(cfg); err != nil {
		if _, err := js.UpdateStream(cfg); err != nil {
			conn.Close()
			return nil, fmt.Errorf("ensuring stream %s: %w", streamName, err)
		}
	}

	return &NATSPublisher{conn: conn, js: js, prefix: prefix, logger: logger}, nil
}

func (p *NATSPublisher) PublishReportCreated(ctx context.Context, report *entity.Report) error {
	return p.publish(ctx, "created", report)
}

func (p *NATSPublisher) PublishReportStatusChanged(ctx context.Context, report *entity.Report) error {
	return p.publish(ctx, "status", report)
}

func (p *NATSPublisher) publish(ctx context.Context, kind string, report *entity.Report) error {
	data, err := json.Marshal(newReportEvent(report))
	if err != nil {
		return fmt.Errorf("encoding report event: %w", err)
	}

	subject := fmt.Sprintf("%s.reports.%s.%s", p.prefix, kind, report.Category)
	if _, err := p.js.Publish(subject, data, nats.Context(ctx), nats.MsgId(kind+":"+report.ID.String()+":"+string(report.Status))); err != nil {
		p.logger.Warn("publishing report event",
			zap.String("subject", subject),
			zap.String("report_id", report.ID.String()),
			zap.Error(err),
		)
		return fmt.Errorf("publishing %s: %w", subject, err)
	}
	return nil
}

func (p *NATSPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
	}
}

// NopPublisher drops events; used when NATS is not configured.
type NopPublisher struct{}

func (NopPublisher) PublishReportCreated(context.Context, *entity.Report) error       { return nil }
func (NopPublisher) PublishReportStatusChanged(context.Context, *entity.Report) error { return nil }
