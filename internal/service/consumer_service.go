// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"

	"supplier-onboarding-be/internal/pkg/logger"
	"supplier-onboarding-be/internal/pkg/mailer"
	"supplier-onboarding-be/pkg/events"
	"supplier-onboarding-be/pkg/pipeline"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// EventForwarder relays pipeline events outside the process.
type EventForwarder interface {
	Publish(ctx context.Context, event events.Event) error
}

// ReviewerMailboxes maps a stage to the inbox notified when a submission
// reaches it.
type ReviewerMailboxes map[pipeline.Stage]string

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	mailer     mailer.IEmailService
	mailboxes  ReviewerMailboxes
	forwarder  EventForwarder
	baseURL    string
	logger     logger.ILogger
}

// NewConsumerService wires the pipeline event consumer. forwarder may be nil
// when no external bus is configured.
func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	emailService mailer.IEmailService,
	mailboxes ReviewerMailboxes,
	forwarder EventForwarder,
	baseURL string,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		mailer:     emailService,
		mailboxes:  mailboxes,
		forwarder:  forwarder,
		baseURL:    baseURL,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

// processMessage always acks: notification and forwarding are best effort
// and a redelivered event would only repeat the same failure.
func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	var event events.PipelineEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		cs.logger.Error("ConsumerService", "Failed to unmarshal pipeline event", map[string]interface{}{"error": err, "messageId": msg.UUID})
		return
	}

	details := map[string]interface{}{
		"submissionId": event.SubmissionId,
		"type":         event.Type,
		"nextStage":    event.NextStage,
	}
	cs.logger.Info("ConsumerService", fmt.Sprintf("Processing event: %s", event.Type), details)

	cs.notify(event)

	if cs.forwarder != nil {
		if err := cs.forwarder.Publish(ctx, event); err != nil {
			cs.logger.Warn("ConsumerService", "Failed to forward event", map[string]interface{}{"error": err.Error(), "submissionId": event.SubmissionId})
		}
	}
}

func (cs *consumerService) notify(event events.PipelineEvent) {
	next := pipeline.Stage(event.NextStage)
	if !next.Actionable() {
		return
	}
	to := cs.mailboxes[next]
	if to == "" || cs.mailer == nil {
		cs.logger.Debug("ConsumerService", "No mailbox configured for stage", map[string]interface{}{"stage": next})
		return
	}

	n := mailer.StageNotification{
		SubmissionId: event.SubmissionId,
		CompanyName:  event.CompanyName,
		SubmittedBy:  event.SubmittedBy,
		StageLabel:   next.Label(),
		ReviewURL:    fmt.Sprintf("%s/review/%s?stage=%s", cs.baseURL, event.SubmissionId, next),
	}
	if err := cs.mailer.SendStageNotification(to, n); err != nil {
		cs.logger.Error("ConsumerService", "Failed to email reviewer", map[string]interface{}{"error": err, "submissionId": event.SubmissionId, "stage": next})
		return
	}
	cs.logger.Info("ConsumerService", "Reviewer notified", map[string]interface{}{"submissionId": event.SubmissionId, "stage": next, "to": to})
}
