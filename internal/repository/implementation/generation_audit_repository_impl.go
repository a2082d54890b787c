package implementation

import (
	"context"
	"errors"

	"question-bank-be/internal/entity"
	"question-bank-be/internal/mapper"
	"question-bank-be/internal/model"
	"question-bank-be/internal/repository/contract"
	"question-bank-be/internal/repository/specification"

	"gorm.io/gorm"
)

type generationAuditRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.GenerationAuditMapper
}

func NewGenerationAuditRepository(db *gorm.DB) contract.GenerationAuditRepository {
	return &generationAuditRepositoryImpl{
		db:     db,
		mapper: mapper.NewGenerationAuditMapper(),
	}
}

func (r *generationAuditRepositoryImpl) Create(ctx context.Context, audit *entity.GenerationAudit) error {
	m, err := r.mapper.ToModel(audit)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *generationAuditRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GenerationAudit, error) {
	var m model.GenerationAudit
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m)
}

func (r *generationAuditRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GenerationAudit, error) {
	var models []*model.GenerationAudit
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	audits := make([]*entity.GenerationAudit, 0, len(models))
	for _, m := range models {
		a, err := r.mapper.ToEntity(m)
		if err != nil {
			return nil, err
		}
		audits = append(audits, a)
	}
	return audits, nil
}

func (r *generationAuditRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.GenerationAudit{})
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	err := query.Count(&count).Error
	return count, err
}
