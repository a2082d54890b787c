package service

import (
	"context"
	"encoding/json"

	"question-bank-be/internal/dto"
	"question-bank-be/internal/pkg/logger"
	"question-bank-be/internal/repository/unitofwork"
	"question-bank-be/pkg/metrics"

	"github.com/ThreeDotsLabs/watermill/message"
)

const auditConsumerModule = "audit_consumer"

type IAuditConsumerService interface {
	Consume(ctx context.Context) error
}

type auditConsumerService struct {
	subscriber message.Subscriber
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewAuditConsumerService(
	subscriber message.Subscriber,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	log logger.ILogger,
) IAuditConsumerService {
	return &auditConsumerService{
		subscriber: subscriber,
		topicName:  topicName,
		uowFactory: uowFactory,
		logger:     log,
	}
}

// Consume subscribes and writes audit records in the background until ctx is
// done.
func (cs *auditConsumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

// processMessage always acks: a failed audit write is logged and counted,
// never redelivered.
func (cs *auditConsumerService) processMessage(msg *message.Message) {
	defer msg.Ack()

	var payload dto.AuditMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil || payload.Audit == nil {
		cs.logger.Error(auditConsumerModule, "Failed to decode audit message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      errString(err),
		})
		metrics.AuditWritesTotal.WithLabelValues("failed").Inc()
		return
	}

	ctx := msg.Context()
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.GenerationAuditRepository().Create(ctx, payload.Audit); err != nil {
		cs.logger.Error(auditConsumerModule, "Failed to save audit record", map[string]interface{}{
			"session_id": payload.Audit.SessionId,
			"source_id":  payload.Audit.SourceId,
			"error":      err.Error(),
		})
		metrics.AuditWritesTotal.WithLabelValues("failed").Inc()
		return
	}

	metrics.AuditWritesTotal.WithLabelValues("saved").Inc()
	cs.logger.Debug(auditConsumerModule, "Audit record saved", map[string]interface{}{
		"session_id": payload.Audit.SessionId,
		"status":     string(payload.Audit.Status),
	})
}

func errString(err error) string {
	if err == nil {
		return "empty audit payload"
	}
	return err.Error()
}
