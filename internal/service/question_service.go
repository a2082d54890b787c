package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"question-bank-be/internal/dto"
	"question-bank-be/internal/entity"
	"question-bank-be/internal/pkg/logger"
	"question-bank-be/internal/pkg/serverutils"
	"question-bank-be/internal/repository/specification"
	"question-bank-be/internal/repository/unitofwork"
	"question-bank-be/pkg/allocation"
	"question-bank-be/pkg/artifact"
	"question-bank-be/pkg/events"
	"question-bank-be/pkg/orchestrator"

	"github.com/google/uuid"
)

const questionServiceModule = "question_service"

const defaultHistoryLimit = 50

// EventPublisher is satisfied by the NATS publisher.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Summarizer produces the content summary every job of a request shares.
type Summarizer interface {
	Summarize(ctx context.Context, tenantID, filterKey, filterValue string) (string, error)
}

// Generator runs the allocation and the per-type jobs.
type Generator interface {
	AllocateAndGenerate(ctx context.Context, plan orchestrator.Plan) (*orchestrator.Outcome, error)
}

type IQuestionService interface {
	Generate(ctx context.Context, sourceID string, req *dto.GenerateQuestionsRequest) (*dto.GenerateQuestionsResponse, error)
	History(ctx context.Context, sessionID string, limit int) ([]dto.AuditRecordResponse, error)
}

type questionService struct {
	summarizer Summarizer
	generator  Generator
	sink       artifact.Sink
	events     EventPublisher
	audit      IPublisherService
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewQuestionService(
	summarizer Summarizer,
	generator Generator,
	sink artifact.Sink,
	eventPublisher EventPublisher,
	audit IPublisherService,
	uowFactory unitofwork.RepositoryFactory,
	log logger.ILogger,
) IQuestionService {
	if sink == nil {
		sink = artifact.NopSink{}
	}
	return &questionService{
		summarizer: summarizer,
		generator:  generator,
		sink:       sink,
		events:     eventPublisher,
		audit:      audit,
		uowFactory: uowFactory,
		logger:     log,
	}
}

// Generate summarizes the source once, generates every item type and persists
// one artifact per type. An audit record is published whatever the outcome.
func (s *questionService) Generate(ctx context.Context, sourceID string, req *dto.GenerateQuestionsRequest) (*dto.GenerateQuestionsResponse, error) {
	req.ApplyDefaults()
	requestTimestamp := time.Now().UTC()

	audit := &entity.GenerationAudit{
		Id:                       uuid.New(),
		SessionId:                req.SessionID,
		SourceId:                 sourceID,
		TenantId:                 req.TenantID,
		FilterKey:                req.FilterKey,
		FilterValue:              req.FilterValue,
		TotalQuestions:           req.Total(),
		QuestionTypeDistribution: req.QuestionTypeDistribution,
		DifficultyDistribution:   req.DifficultyDistribution,
		BloomsDistribution:       req.BloomsTaxonomyDistribution,
		Status:                   entity.AuditStatusSuccess,
		RequestTimestamp:         requestTimestamp,
	}

	res, err := s.generate(ctx, sourceID, req, audit)
	if err != nil {
		audit.Status = entity.AuditStatusError
		audit.ErrorMessage = err.Error()
		audit.FilesGenerated = nil
		audit.ResponseData = nil
		s.publishEvent(ctx, events.QuestionGenerationFailed{
			SessionID:  req.SessionID,
			SourceID:   sourceID,
			TenantID:   req.TenantID,
			Error:      err.Error(),
			OccurredAt: time.Now().UTC(),
		})
	}
	s.publishAudit(ctx, audit)

	if err != nil {
		s.logger.Error(questionServiceModule, "Question generation failed", map[string]interface{}{
			"session_id": req.SessionID,
			"source_id":  sourceID,
			"error":      err.Error(),
		})
		return nil, err
	}
	return res, nil
}

func (s *questionService) generate(ctx context.Context, sourceID string, req *dto.GenerateQuestionsRequest, audit *entity.GenerationAudit) (*dto.GenerateQuestionsResponse, error) {
	plan := orchestrator.Plan{
		Total:       req.Total(),
		Types:       req.QuestionTypeDistribution,
		Difficulty:  req.DifficultyDistribution,
		Blooms:      req.BloomsTaxonomyDistribution,
		FilterValue: req.FilterValue,
	}

	// 1. Reject bad plans before any backend call
	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", serverutils.ErrBadRequest, err)
	}

	s.logger.Info(questionServiceModule, "Processing generation request", map[string]interface{}{
		"session_id":      req.SessionID,
		"source_id":       sourceID,
		"tenant_id":       req.TenantID,
		"filter_value":    req.FilterValue,
		"total_questions": plan.Total,
	})

	// 2. Shared summary, once per request
	start := time.Now()
	summaryText, err := s.summarizer.Summarize(ctx, req.TenantID, req.FilterKey, req.FilterValue)
	if err != nil {
		return nil, fmt.Errorf("error generating questions: summary: %w", err)
	}
	plan.Summary = summaryText
	summaryTime := time.Since(start)

	// 3. Allocate and generate every type in parallel
	generationStart := time.Now()
	outcome, err := s.generator.AllocateAndGenerate(ctx, plan)
	if err != nil {
		if errors.Is(err, orchestrator.ErrInvalidPlan) || errors.Is(err, allocation.ErrAllocationDegenerate) {
			return nil, fmt.Errorf("%w: %v", serverutils.ErrBadRequest, err)
		}
		return nil, fmt.Errorf("error generating questions: %w", err)
	}
	generationTime := time.Since(generationStart)

	// 4. Persist one artifact per type
	data := outcome.Documents()
	files := make([]string, 0, len(outcome.Results))
	for _, r := range outcome.Results {
		if err := s.sink.Put(ctx, r.ArtifactName, r.Document()); err != nil {
			return nil, fmt.Errorf("error generating questions: store %s: %w", r.ArtifactName, err)
		}
		files = append(files, r.ArtifactName)
	}

	responseData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("error generating questions: encode response: %w", err)
	}
	audit.FilesGenerated = files
	audit.ResponseData = responseData

	total := time.Since(start)
	s.publishEvent(ctx, events.QuestionsGenerated{
		SessionID:      req.SessionID,
		SourceID:       sourceID,
		TenantID:       req.TenantID,
		TotalQuestions: plan.Total,
		CountsByType:   countsByType(outcome),
		FilesGenerated: files,
		OccurredAt:     time.Now().UTC(),
	})

	s.logger.Info(questionServiceModule, "Question generation finished", map[string]interface{}{
		"session_id":    req.SessionID,
		"files":         files,
		"summary_ms":    summaryTime.Milliseconds(),
		"generation_ms": generationTime.Milliseconds(),
	})

	return &dto.GenerateQuestionsResponse{
		Status: string(entity.AuditStatusSuccess),
		Message: fmt.Sprintf(
			"Generated %d questions across %d question types for sourceId: %s in %.2f seconds (Summary: %.2fs, Parallel Generation: %.2fs)",
			plan.Total, len(outcome.Results), sourceID, total.Seconds(), summaryTime.Seconds(), generationTime.Seconds(),
		),
		FilesGenerated: files,
		Data:           data,
	}, nil
}

func (s *questionService) History(ctx context.Context, sessionID string, limit int) ([]dto.AuditRecordResponse, error) {
	if sessionID == "" {
		return nil, serverutils.BadRequest("session id is required")
	}
	if limit <= 0 || limit > defaultHistoryLimit {
		limit = defaultHistoryLimit
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	audits, err := uow.GenerationAuditRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionID},
		specification.OrderBy{Field: "request_timestamp", Desc: true},
		specification.Pagination{Limit: limit},
	)
	if err != nil {
		return nil, err
	}

	res := make([]dto.AuditRecordResponse, 0, len(audits))
	for _, a := range audits {
		res = append(res, dto.NewAuditRecordResponse(a))
	}
	return res, nil
}

func (s *questionService) publishEvent(ctx context.Context, event events.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn(questionServiceModule, "Failed to publish event", map[string]interface{}{
			"event": event.EventType(),
			"error": err.Error(),
		})
	}
}

// publishAudit hands the record to the audit consumer. Failures are logged,
// never returned to the caller.
func (s *questionService) publishAudit(ctx context.Context, audit *entity.GenerationAudit) {
	if s.audit == nil {
		return
	}
	audit.CreatedAt = time.Now().UTC()
	payload, err := json.Marshal(dto.AuditMessage{Audit: audit})
	if err == nil {
		err = s.audit.Publish(ctx, payload)
	}
	if err != nil {
		s.logger.Error(questionServiceModule, "Failed to publish audit record", map[string]interface{}{
			"session_id": audit.SessionId,
			"error":      err.Error(),
		})
	}
}

func countsByType(outcome *orchestrator.Outcome) map[string]int {
	counts := make(map[string]int, len(outcome.Results))
	for _, r := range outcome.Results {
		counts[r.ItemType] = len(r.Records())
	}
	return counts
}
