package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"errortrack-be/internal/pkg/logger"
	"errortrack-be/internal/pkg/mailer"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const alertTopic = "ALERT_NOTIFICATIONS"

// AlertMessage is the payload queued for delivery when an alert is raised.
type AlertMessage struct {
	AlertId       string    `json:"alert_id"`
	ErrorLogId    string    `json:"error_log_id"`
	ApplicationId string    `json:"application_id"`
	AppName       string    `json:"app_name"`
	AlertLevel    string    `json:"alert_level"`
	Message       string    `json:"message"`
	Endpoint      string    `json:"endpoint"`
	Recipients    []string  `json:"recipients"`
	CreatedAt     time.Time `json:"created_at"`
}

// DeliveryResult records the outcome of each channel. A failed email never
// fails the pipeline, it is logged and the alert stays visible on the dashboard.
type DeliveryResult struct {
	AlertId    string
	EmailSent  int
	EmailFails []string
	PushSent   bool
}

// PushDelivery is what the dispatcher needs from the websocket hub.
type PushDelivery interface {
	Broadcast(messageType string, payload interface{})
}

type IDispatcher interface {
	Enqueue(ctx context.Context, msg *AlertMessage) error
	Start(ctx context.Context) error
	Close() error
}

type dispatcher struct {
	pubSub       *gochannel.GoChannel
	emailService mailer.IEmailService
	push         PushDelivery
	logger       logger.ILogger
	emailTimeout time.Duration
}

func NewDispatcher(
	queueSize int,
	emailService mailer.IEmailService,
	push PushDelivery,
	log logger.ILogger,
	emailTimeout time.Duration,
) IDispatcher {
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{
			OutputChannelBuffer: int64(queueSize),
		},
		watermill.NewStdLogger(false, false),
	)

	return &dispatcher{
		pubSub:       pubSub,
		emailService: emailService,
		push:         push,
		logger:       log,
		emailTimeout: emailTimeout,
	}
}

// Enqueue hands the alert to the delivery worker. The ingestion transaction is
// already committed by the time this runs, delivery never blocks storage.
func (d *dispatcher) Enqueue(ctx context.Context, alertMsg *AlertMessage) error {
	payload, err := json.Marshal(alertMsg)
	if err != nil {
		return fmt.Errorf("failed to marshal alert message: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	return d.pubSub.Publish(alertTopic, msg)
}

func (d *dispatcher) Start(ctx context.Context) error {
	messages, err := d.pubSub.Subscribe(ctx, alertTopic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			d.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (d *dispatcher) Close() error {
	return d.pubSub.Close()
}

func (d *dispatcher) processMessage(ctx context.Context, msg *message.Message) {
	var payload AlertMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		d.logger.Error("Dispatcher", "Failed to unmarshal alert message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	result := d.deliver(&payload)

	d.logger.Info("Dispatcher", "Alert delivery finished", map[string]interface{}{
		"alert_id":    result.AlertId,
		"email_sent":  result.EmailSent,
		"email_fails": result.EmailFails,
		"push_sent":   result.PushSent,
	})

	// Delivery failures are terminal, redelivery would spam recipients.
	msg.Ack()
}

func (d *dispatcher) deliver(payload *AlertMessage) *DeliveryResult {
	result := &DeliveryResult{AlertId: payload.AlertId}

	for _, recipient := range payload.Recipients {
		if err := d.sendEmailWithTimeout(recipient, payload); err != nil {
			result.EmailFails = append(result.EmailFails, fmt.Sprintf("%s: %v", recipient, err))
			continue
		}
		result.EmailSent++
	}

	if d.push != nil {
		d.push.Broadcast("alert", payload)
		result.PushSent = true
	}

	return result
}

func (d *dispatcher) sendEmailWithTimeout(recipient string, payload *AlertMessage) error {
	done := make(chan error, 1)
	go func() {
		done <- d.emailService.SendAlert(recipient, payload.AppName, payload.AlertLevel, payload.Message, payload.Endpoint)
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(d.emailTimeout):
		return fmt.Errorf("smtp send timed out after %s", d.emailTimeout)
	}
}
