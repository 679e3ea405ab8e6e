package notifications

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"seatbook/pkg/logger"

	"github.com/IBM/sarama"
)

type ConsumerConfig struct {
	Brokers          []string
	GroupID          string
	Topic            string
	SessionTimeoutMs int
	HeartbeatMs      int
	OffsetOldest     bool
}

func DefaultConsumerConfig() *ConsumerConfig {
	return &ConsumerConfig{
		Brokers:          []string{"localhost:9092"},
		GroupID:          "seatbook-booking-audit",
		Topic:            "booking-events",
		SessionTimeoutMs: 30000,
		HeartbeatMs:      3000,
		OffsetOldest:     false,
	}
}

// AuditConsumer logs every booking notification on the topic. It is the
// sarama.ConsumerGroupHandler for the audit consumer group.
type AuditConsumer struct {
	group  sarama.ConsumerGroup
	config *ConsumerConfig
	logger *logger.Logger
	handle func(ctx context.Context, n *BookingNotification)
}

func NewAuditConsumer(config *ConsumerConfig) (*AuditConsumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Group.Session.Timeout = time.Duration(config.SessionTimeoutMs) * time.Millisecond
	saramaConfig.Consumer.Group.Heartbeat.Interval = time.Duration(config.HeartbeatMs) * time.Millisecond
	saramaConfig.Consumer.Return.Errors = true
	if config.OffsetOldest {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	} else {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	}

	group, err := sarama.NewConsumerGroup(config.Brokers, config.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	c := &AuditConsumer{group: group, config: config, logger: logger.GetDefault()}
	c.handle = c.logNotification
	return c, nil
}

// Run consumes until ctx is cancelled.
func (c *AuditConsumer) Run(ctx context.Context) error {
	go func() {
		for err := range c.group.Errors() {
			c.logger.Error("Booking audit consumer error", slog.Any("error", err))
		}
	}()

	for {
		if err := c.group.Consume(ctx, []string{c.config.Topic}, c); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return nil
			}
			return fmt.Errorf("consume %s: %w", c.config.Topic, err)
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

func (c *AuditConsumer) Close() error {
	return c.group.Close()
}

func (c *AuditConsumer) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (c *AuditConsumer) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (c *AuditConsumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			c.process(session.Context(), message)
			session.MarkMessage(message, "")
		case <-session.Context().Done():
			return nil
		}
	}
}

func (c *AuditConsumer) process(ctx context.Context, message *sarama.ConsumerMessage) {
	notification, err := FromJSON(message.Value)
	if err != nil {
		c.logger.Warn("Skipping malformed booking notification",
			slog.Int64("offset", message.Offset),
			slog.Any("error", err),
		)
		return
	}
	c.handle(ctx, notification)
}

func (c *AuditConsumer) logNotification(ctx context.Context, n *BookingNotification) {
	c.logger.InfoContext(ctx, "Booking confirmed",
		slog.String("notification_id", n.ID.String()),
		slog.String("user_code", n.UserCode),
		slog.Any("seats", n.SeatNumbers()),
	)
}
