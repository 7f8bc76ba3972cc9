package notifications

import (
	"context"
	"fmt"
	"sync"
	"time"

	"boxoffice/internal/inventory"
	"boxoffice/pkg/logger"

	"github.com/IBM/sarama"

	"log/slog"
)

// ConsumerConfig contains configuration for the Kafka change consumer.
type ConsumerConfig struct {
	Brokers          []string
	GroupID          string
	ChangesTopic     string
	SessionTimeoutMs int
	HeartbeatMs      int
	OffsetOldest     bool
}

func DefaultConsumerConfig() *ConsumerConfig {
	return &ConsumerConfig{
		Brokers:          []string{"localhost:9092"},
		GroupID:          "boxoffice-change-notifier",
		ChangesTopic:     "inventory-changes",
		SessionTimeoutMs: 30000,
		HeartbeatMs:      3000,
		OffsetOldest:     false,
	}
}

// Notifier consumes the changes topic and fans messages out to in-process
// observers registered per event. Statuses are re-normalized before
// dispatch; payloads off the wire are no more trusted than rows off the
// store.
type Notifier struct {
	consumerGroup sarama.ConsumerGroup
	config        *ConsumerConfig

	mu        sync.RWMutex
	observers map[string][]chan ChangeMessage

	cancel context.CancelFunc
	doneCh chan struct{}
}

func NewNotifier(config *ConsumerConfig) (*Notifier, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Group.Session.Timeout = time.Duration(config.SessionTimeoutMs) * time.Millisecond
	saramaConfig.Consumer.Group.Heartbeat.Interval = time.Duration(config.HeartbeatMs) * time.Millisecond
	saramaConfig.Consumer.Return.Errors = true

	if config.OffsetOldest {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	} else {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	}

	consumerGroup, err := sarama.NewConsumerGroup(config.Brokers, config.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return &Notifier{
		consumerGroup: consumerGroup,
		config:        config,
		observers:     make(map[string][]chan ChangeMessage),
		doneCh:        make(chan struct{}),
	}, nil
}

// Subscribe registers an observer for one event's changes. The returned
// channel is never closed by the notifier; callers drop it via Unsubscribe.
func (n *Notifier) Subscribe(eventID string) <-chan ChangeMessage {
	ch := make(chan ChangeMessage, 64)
	n.mu.Lock()
	n.observers[eventID] = append(n.observers[eventID], ch)
	n.mu.Unlock()
	return ch
}

// Unsubscribe removes a previously registered observer channel.
func (n *Notifier) Unsubscribe(eventID string, ch <-chan ChangeMessage) {
	n.mu.Lock()
	defer n.mu.Unlock()

	channels := n.observers[eventID]
	for i, candidate := range channels {
		if candidate == ch {
			n.observers[eventID] = append(channels[:i], channels[i+1:]...)
			break
		}
	}
	if len(n.observers[eventID]) == 0 {
		delete(n.observers, eventID)
	}
}

// Start begins consuming. Non-blocking; call Stop to shut down.
func (n *Notifier) Start(ctx context.Context) error {
	ctx, n.cancel = context.WithCancel(ctx)

	go func() {
		for err := range n.consumerGroup.Errors() {
			logger.GetDefault().WithError(err).Error("change notifier consumer error")
		}
	}()

	go func() {
		defer close(n.doneCh)
		handler := &changeHandler{notifier: n}
		for {
			if err := n.consumerGroup.Consume(ctx, []string{n.config.ChangesTopic}, handler); err != nil {
				logger.GetDefault().WithError(err).Error("change notifier consume failed")
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	logger.GetDefault().Info("change notifier started",
		slog.String("topic", n.config.ChangesTopic),
		slog.String("group", n.config.GroupID),
	)
	return nil
}

// Stop shuts the consumer down and waits for the consume loop to exit.
func (n *Notifier) Stop() error {
	if n.cancel != nil {
		n.cancel()
	}
	<-n.doneCh
	return n.consumerGroup.Close()
}

// dispatch delivers a message to every observer of its event. Slow
// observers are skipped rather than blocking the consume loop.
func (n *Notifier) dispatch(msg ChangeMessage) {
	eventID := ""
	switch {
	case msg.Inventory != nil:
		msg.Inventory.Status = string(inventory.Normalize(msg.Inventory.Status))
		eventID = msg.Inventory.EventID
	case msg.Price != nil:
		eventID = msg.Price.EventID
	default:
		return
	}

	n.mu.RLock()
	channels := n.observers[eventID]
	n.mu.RUnlock()

	for _, ch := range channels {
		select {
		case ch <- msg:
		default:
			logger.GetDefault().Warn("observer channel full, dropping change message",
				slog.String("event_id", eventID),
			)
		}
	}
}

// changeHandler implements sarama.ConsumerGroupHandler.
type changeHandler struct {
	notifier *Notifier
}

func (h *changeHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *changeHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *changeHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		msg, err := ChangeMessageFromJSON(message.Value)
		if err != nil {
			logger.GetDefault().WithError(err).Warn("skipping malformed change message")
			session.MarkMessage(message, "")
			continue
		}

		h.notifier.dispatch(*msg)
		session.MarkMessage(message, "")
	}
	return nil
}
