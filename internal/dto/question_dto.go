package dto

import (
	"time"

	"github.com/google/uuid"

	"question-bank-be/internal/entity"
	"question-bank-be/pkg/parser"
	"question-bank-be/pkg/taxonomy"
)

const (
	DefaultTenantID       = "1305101920"
	DefaultFilterKey      = "toc_level_1_title"
	DefaultFilterValue    = "01_01920_ch01_ptg01_hires_001-026"
	DefaultTotalQuestions = 10
)

func DefaultQuestionTypeDistribution() taxonomy.Distribution {
	return taxonomy.NewDistribution(
		taxonomy.Share{Label: taxonomy.ItemTypeMCQ, Proportion: 0.4},
		taxonomy.Share{Label: taxonomy.ItemTypeFIB, Proportion: 0.3},
		taxonomy.Share{Label: taxonomy.ItemTypeTF, Proportion: 0.3},
	)
}

func DefaultDifficultyDistribution() taxonomy.Distribution {
	return taxonomy.NewDistribution(
		taxonomy.Share{Label: taxonomy.DifficultyBasic, Proportion: 0.3},
		taxonomy.Share{Label: taxonomy.DifficultyIntermediate, Proportion: 0.3},
		taxonomy.Share{Label: taxonomy.DifficultyAdvanced, Proportion: 0.4},
	)
}

func DefaultBloomsDistribution() taxonomy.Distribution {
	return taxonomy.NewDistribution(
		taxonomy.Share{Label: taxonomy.BloomsRemember, Proportion: 0.3},
		taxonomy.Share{Label: taxonomy.BloomsApply, Proportion: 0.4},
		taxonomy.Share{Label: taxonomy.BloomsAnalyze, Proportion: 0.3},
	)
}

// GenerateQuestionsRequest is the body of the generate endpoint. Every field
// is optional.
type GenerateQuestionsRequest struct {
	TenantID                   string                `json:"tenant_id" validate:"max=64"`
	FilterKey                  string                `json:"filter_key" validate:"max=255"`
	FilterValue                string                `json:"filter_value" validate:"max=255"`
	TotalQuestions             *int                  `json:"total_questions" validate:"omitempty,gte=0,lte=1000"`
	QuestionTypeDistribution   taxonomy.Distribution `json:"question_type_distribution"`
	DifficultyDistribution     taxonomy.Distribution `json:"difficulty_distribution"`
	BloomsTaxonomyDistribution taxonomy.Distribution `json:"blooms_taxonomy_distribution"`
	SessionID                  string                `json:"session_id" validate:"max=64"`
}

// ApplyDefaults fills every omitted field.
func (r *GenerateQuestionsRequest) ApplyDefaults() {
	if r.TenantID == "" {
		r.TenantID = DefaultTenantID
	}
	if r.FilterKey == "" {
		r.FilterKey = DefaultFilterKey
	}
	if r.FilterValue == "" {
		r.FilterValue = DefaultFilterValue
	}
	if r.TotalQuestions == nil {
		total := DefaultTotalQuestions
		r.TotalQuestions = &total
	}
	if r.QuestionTypeDistribution.Len() == 0 {
		r.QuestionTypeDistribution = DefaultQuestionTypeDistribution()
	}
	if r.DifficultyDistribution.Len() == 0 {
		r.DifficultyDistribution = DefaultDifficultyDistribution()
	}
	if r.BloomsTaxonomyDistribution.Len() == 0 {
		r.BloomsTaxonomyDistribution = DefaultBloomsDistribution()
	}
	if r.SessionID == "" {
		r.SessionID = uuid.NewString()
	}
}

func (r *GenerateQuestionsRequest) Total() int {
	if r.TotalQuestions == nil {
		return DefaultTotalQuestions
	}
	return *r.TotalQuestions
}

// GenerateQuestionsResponse keeps the wire layout existing clients read.
type GenerateQuestionsResponse struct {
	Status         string                     `json:"status"`
	Message        string                     `json:"message"`
	FilesGenerated []string                   `json:"files_generated"`
	Data           map[string]parser.Document `json:"data"`
}

type HealthResponse struct {
	Status        string   `json:"status"`
	Version       string   `json:"version"`
	Optimizations []string `json:"optimizations"`
}

// AuditRecordResponse is one entry of a session's generation history.
type AuditRecordResponse struct {
	Id                         uuid.UUID             `json:"id"`
	SessionID                  string                `json:"session_id"`
	SourceID                   string                `json:"source_id"`
	RequestTimestamp           time.Time             `json:"request_timestamp"`
	TenantID                   string                `json:"tenant_id"`
	FilterKey                  string                `json:"filter_key"`
	FilterValue                string                `json:"filter_value"`
	TotalQuestions             int                   `json:"total_questions"`
	QuestionTypeDistribution   taxonomy.Distribution `json:"question_type_distribution"`
	DifficultyDistribution     taxonomy.Distribution `json:"difficulty_distribution"`
	BloomsTaxonomyDistribution taxonomy.Distribution `json:"blooms_taxonomy_distribution"`
	FilesGenerated             []string              `json:"files_generated"`
	Status                     string                `json:"status"`
	ErrorMessage               string                `json:"error_message,omitempty"`
}

func NewAuditRecordResponse(a *entity.GenerationAudit) AuditRecordResponse {
	files := a.FilesGenerated
	if files == nil {
		files = []string{}
	}
	return AuditRecordResponse{
		Id:                         a.Id,
		SessionID:                  a.SessionId,
		SourceID:                   a.SourceId,
		RequestTimestamp:           a.RequestTimestamp,
		TenantID:                   a.TenantId,
		FilterKey:                  a.FilterKey,
		FilterValue:                a.FilterValue,
		TotalQuestions:             a.TotalQuestions,
		QuestionTypeDistribution:   a.QuestionTypeDistribution,
		DifficultyDistribution:     a.DifficultyDistribution,
		BloomsTaxonomyDistribution: a.BloomsDistribution,
		FilesGenerated:             files,
		Status:                     string(a.Status),
		ErrorMessage:               a.ErrorMessage,
	}
}

// AuditMessage is the watermill payload handed from the request path to the
// audit consumer.
type AuditMessage struct {
	Audit *entity.GenerationAudit `json:"audit"`
}
