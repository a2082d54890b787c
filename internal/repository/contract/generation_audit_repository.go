package contract

import (
	"context"

	"question-bank-be/internal/entity"
	"question-bank-be/internal/repository/specification"
)

type GenerationAuditRepository interface {
	Create(ctx context.Context, audit *entity.GenerationAudit) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GenerationAudit, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GenerationAudit, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
