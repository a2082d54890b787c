package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// GenerationAudit is one question generation request, successful or not.
type GenerationAudit struct {
	Id                       uuid.UUID      `gorm:"type:uuid;primaryKey"`
	SessionId                string         `gorm:"type:varchar(64);not null;index"`
	SourceId                 string         `gorm:"type:varchar(255);not null;index"`
	TenantId                 string         `gorm:"type:varchar(64);not null"`
	FilterKey                string         `gorm:"type:varchar(255)"`
	FilterValue              string         `gorm:"type:varchar(255)"`
	TotalQuestions           int            `gorm:"not null"`
	QuestionTypeDistribution datatypes.JSON `gorm:"not null"`
	DifficultyDistribution   datatypes.JSON `gorm:"not null"`
	BloomsDistribution       datatypes.JSON `gorm:"not null"`
	FilesGenerated           datatypes.JSON
	Status                   string  `gorm:"type:varchar(20);not null;index"`
	ErrorMessage             *string `gorm:"type:text"`
	ResponseData             datatypes.JSON
	RequestTimestamp         time.Time `gorm:"not null;index"`
	CreatedAt                time.Time `gorm:"not null"`
}

func (GenerationAudit) TableName() string {
	return "question_generation_audits"
}
