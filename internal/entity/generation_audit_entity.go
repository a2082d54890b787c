package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"question-bank-be/pkg/taxonomy"
)

type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusError   AuditStatus = "error"
)

type GenerationAudit struct {
	Id                       uuid.UUID
	SessionId                string
	SourceId                 string
	TenantId                 string
	FilterKey                string
	FilterValue              string
	TotalQuestions           int
	QuestionTypeDistribution taxonomy.Distribution
	DifficultyDistribution   taxonomy.Distribution
	BloomsDistribution       taxonomy.Distribution
	FilesGenerated           []string
	Status                   AuditStatus
	ErrorMessage             string
	ResponseData             json.RawMessage `json:",omitempty"` // item type -> document, only on success
	RequestTimestamp         time.Time
	CreatedAt                time.Time
}
