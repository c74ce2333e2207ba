package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"supplier-onboarding-be/internal/pkg/logger"
	"supplier-onboarding-be/internal/pkg/mailer"
	"supplier-onboarding-be/pkg/events"
	"supplier-onboarding-be/pkg/pipeline"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	to string
	n  mailer.StageNotification
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *fakeMailer) SendStageNotification(toEmail string, n mailer.StageNotification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{to: toEmail, n: n})
	return m.err
}

func (m *fakeMailer) mails() []sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentMail(nil), m.sent...)
}

type fakeForwarder struct {
	mu     sync.Mutex
	events []events.Event
}

func (f *fakeForwarder) Publish(ctx context.Context, event events.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func (f *fakeForwarder) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

const testTopic = "pipeline-events"

func startConsumer(t *testing.T, mail *fakeMailer, forwarder EventForwarder) IPublisherService {
	t.Helper()
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { pubSub.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	mailboxes := ReviewerMailboxes{
		pipeline.StageProcurementReview: "procurement@trust.nhs.uk",
		pipeline.StageAPReview:          "ap@trust.nhs.uk",
	}
	consumer := NewConsumerService(pubSub, testTopic, mail, mailboxes, forwarder, "https://onboarding.example", logger.NewNopLogger())
	require.NoError(t, consumer.Consume(ctx))

	return NewPublisherService(testTopic, pubSub)
}

func TestConsumerService_NotifiesNextStageMailbox(t *testing.T) {
	mail := &fakeMailer{}
	forwarder := &fakeForwarder{}
	publisher := startConsumer(t, mail, forwarder)

	err := publisher.Publish(context.Background(), events.PipelineEvent{
		Type:         events.TypeSubmissionCreated,
		SubmissionId: "sub-1",
		CompanyName:  "Acme Servicing Ltd",
		SubmittedBy:  "Sam Requester",
		NextStage:    string(pipeline.StageProcurementReview),
		Status:       "pending_review",
		Version:      1,
		OccurredAt:   testNow,
	})
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return forwarder.count() == 1 }, time.Second, 10*time.Millisecond)

	sent := mail.mails()
	require.Len(t, sent, 1)
	assert.Equal(t, "procurement@trust.nhs.uk", sent[0].to)
	assert.Equal(t, "Procurement review", sent[0].n.StageLabel)
	assert.Equal(t, "Acme Servicing Ltd", sent[0].n.CompanyName)
	assert.Equal(t, "https://onboarding.example/review/sub-1?stage=procurement_review", sent[0].n.ReviewURL)
}

func TestConsumerService_SkipsOutcomeStates(t *testing.T) {
	mail := &fakeMailer{}
	forwarder := &fakeForwarder{}
	publisher := startConsumer(t, mail, forwarder)

	require.NoError(t, publisher.Publish(context.Background(), events.PipelineEvent{
		Type:         events.TypeStageDecided,
		SubmissionId: "sub-1",
		Stage:        string(pipeline.StageAPReview),
		Decision:     "approved",
		NextStage:    string(pipeline.StageVerified),
	}))
	// no mailbox configured for OPW
	require.NoError(t, publisher.Publish(context.Background(), events.PipelineEvent{
		Type:         events.TypeStageDecided,
		SubmissionId: "sub-2",
		NextStage:    string(pipeline.StageOPWReview),
	}))

	assert.Eventually(t, func() bool { return forwarder.count() == 2 }, time.Second, 10*time.Millisecond)
	assert.Empty(t, mail.mails())
}

func TestConsumerService_MailFailureStillForwards(t *testing.T) {
	mail := &fakeMailer{err: errors.New("smtp unavailable")}
	forwarder := &fakeForwarder{}
	publisher := startConsumer(t, mail, forwarder)

	require.NoError(t, publisher.Publish(context.Background(), events.PipelineEvent{
		Type:         events.TypeStageDecided,
		SubmissionId: "sub-1",
		NextStage:    string(pipeline.StageAPReview),
	}))

	assert.Eventually(t, func() bool { return forwarder.count() == 1 }, time.Second, 10*time.Millisecond)
	assert.Len(t, mail.mails(), 1)
}

func TestConsumerService_MalformedPayloadIsAcked(t *testing.T) {
	mail := &fakeMailer{}
	forwarder := &fakeForwarder{}
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { pubSub.Close() })
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	consumer := NewConsumerService(pubSub, testTopic, mail, nil, forwarder, "", logger.NewNopLogger())
	require.NoError(t, consumer.Consume(ctx))

	require.NoError(t, pubSub.Publish(testTopic, message.NewMessage(watermill.NewUUID(), []byte("not json"))))
	require.NoError(t, NewPublisherService(testTopic, pubSub).Publish(ctx, events.PipelineEvent{
		Type:         events.TypeSubmissionCreated,
		SubmissionId: "sub-1",
	}))

	// the second message is only delivered once the first was acked
	assert.Eventually(t, func() bool { return forwarder.count() == 1 }, time.Second, 10*time.Millisecond)
}
