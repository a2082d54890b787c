package events

import "time"

const (
	TypeQuestionsGenerated       = "QUESTIONS_GENERATED"
	TypeQuestionGenerationFailed = "QUESTION_GENERATION_FAILED"
)

// QuestionsGenerated is emitted after every item type of a request succeeded.
type QuestionsGenerated struct {
	SessionID      string
	SourceID       string
	TenantID       string
	TotalQuestions int
	CountsByType   map[string]int
	FilesGenerated []string
	OccurredAt     time.Time
}

func (e QuestionsGenerated) EventType() string { return TypeQuestionsGenerated }

func (e QuestionsGenerated) Payload() map[string]interface{} {
	return map[string]interface{}{
		"session_id":      e.SessionID,
		"source_id":       e.SourceID,
		"tenant_id":       e.TenantID,
		"total_questions": e.TotalQuestions,
		"counts_by_type":  e.CountsByType,
		"files_generated": e.FilesGenerated,
		"occurred_at":     e.OccurredAt.Format(time.RFC3339),
	}
}

func (e QuestionsGenerated) Timestamp() time.Time { return e.OccurredAt }

// QuestionGenerationFailed is emitted when a request produced no questions.
type QuestionGenerationFailed struct {
	SessionID  string
	SourceID   string
	TenantID   string
	Error      string
	OccurredAt time.Time
}

func (e QuestionGenerationFailed) EventType() string { return TypeQuestionGenerationFailed }

func (e QuestionGenerationFailed) Payload() map[string]interface{} {
	return map[string]interface{}{
		"session_id":  e.SessionID,
		"source_id":   e.SourceID,
		"tenant_id":   e.TenantID,
		"error":       e.Error,
		"occurred_at": e.OccurredAt.Format(time.RFC3339),
	}
}

func (e QuestionGenerationFailed) Timestamp() time.Time { return e.OccurredAt }
