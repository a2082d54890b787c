package unitofwork

import (
	"context"

	"question-bank-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	GenerationAuditRepository() contract.GenerationAuditRepository
}
