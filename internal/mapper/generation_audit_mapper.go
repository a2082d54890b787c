package mapper

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"question-bank-be/internal/entity"
	"question-bank-be/internal/model"
)

type GenerationAuditMapper struct{}

func NewGenerationAuditMapper() *GenerationAuditMapper {
	return &GenerationAuditMapper{}
}

func (m *GenerationAuditMapper) ToModel(a *entity.GenerationAudit) (*model.GenerationAudit, error) {
	if a == nil {
		return nil, nil
	}

	types, err := json.Marshal(a.QuestionTypeDistribution)
	if err != nil {
		return nil, fmt.Errorf("encode question type distribution: %w", err)
	}
	difficulty, err := json.Marshal(a.DifficultyDistribution)
	if err != nil {
		return nil, fmt.Errorf("encode difficulty distribution: %w", err)
	}
	blooms, err := json.Marshal(a.BloomsDistribution)
	if err != nil {
		return nil, fmt.Errorf("encode blooms distribution: %w", err)
	}

	files := a.FilesGenerated
	if files == nil {
		files = []string{}
	}
	filesJSON, err := json.Marshal(files)
	if err != nil {
		return nil, fmt.Errorf("encode files generated: %w", err)
	}

	var errorMessage *string
	if a.ErrorMessage != "" {
		msg := a.ErrorMessage
		errorMessage = &msg
	}

	var response datatypes.JSON
	if hasDocument(a.ResponseData) {
		response = datatypes.JSON(a.ResponseData)
	}

	return &model.GenerationAudit{
		Id:                       a.Id,
		SessionId:                a.SessionId,
		SourceId:                 a.SourceId,
		TenantId:                 a.TenantId,
		FilterKey:                a.FilterKey,
		FilterValue:              a.FilterValue,
		TotalQuestions:           a.TotalQuestions,
		QuestionTypeDistribution: datatypes.JSON(types),
		DifficultyDistribution:   datatypes.JSON(difficulty),
		BloomsDistribution:       datatypes.JSON(blooms),
		FilesGenerated:           datatypes.JSON(filesJSON),
		Status:                   string(a.Status),
		ErrorMessage:             errorMessage,
		ResponseData:             response,
		RequestTimestamp:         a.RequestTimestamp,
		CreatedAt:                a.CreatedAt,
	}, nil
}

func (m *GenerationAuditMapper) ToEntity(a *model.GenerationAudit) (*entity.GenerationAudit, error) {
	if a == nil {
		return nil, nil
	}

	out := &entity.GenerationAudit{
		Id:               a.Id,
		SessionId:        a.SessionId,
		SourceId:         a.SourceId,
		TenantId:         a.TenantId,
		FilterKey:        a.FilterKey,
		FilterValue:      a.FilterValue,
		TotalQuestions:   a.TotalQuestions,
		Status:           entity.AuditStatus(a.Status),
		RequestTimestamp: a.RequestTimestamp,
		CreatedAt:        a.CreatedAt,
	}
	if a.ErrorMessage != nil {
		out.ErrorMessage = *a.ErrorMessage
	}
	if hasDocument(json.RawMessage(a.ResponseData)) {
		out.ResponseData = json.RawMessage(a.ResponseData)
	}

	if err := json.Unmarshal(a.QuestionTypeDistribution, &out.QuestionTypeDistribution); err != nil {
		return nil, fmt.Errorf("decode question type distribution: %w", err)
	}
	if err := json.Unmarshal(a.DifficultyDistribution, &out.DifficultyDistribution); err != nil {
		return nil, fmt.Errorf("decode difficulty distribution: %w", err)
	}
	if err := json.Unmarshal(a.BloomsDistribution, &out.BloomsDistribution); err != nil {
		return nil, fmt.Errorf("decode blooms distribution: %w", err)
	}
	if len(a.FilesGenerated) > 0 {
		if err := json.Unmarshal(a.FilesGenerated, &out.FilesGenerated); err != nil {
			return nil, fmt.Errorf("decode files generated: %w", err)
		}
	}
	return out, nil
}

// hasDocument reports whether raw holds a value other than JSON null.
func hasDocument(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}
