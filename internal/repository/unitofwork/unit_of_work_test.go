package unitofwork

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"question-bank-be/internal/entity"
	"question-bank-be/internal/model"
	"question-bank-be/internal/repository/specification"
	"question-bank-be/pkg/database"
	"question-bank-be/pkg/taxonomy"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(database.DriverSQLite, ":memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.GenerationAudit{}))
	return db
}

func newAudit(sessionID string, status entity.AuditStatus, at time.Time) *entity.GenerationAudit {
	return &entity.GenerationAudit{
		Id:             uuid.New(),
		SessionId:      sessionID,
		SourceId:       "src-1",
		TenantId:       "1305101920",
		FilterKey:      "toc_level_1_title",
		FilterValue:    "ch01",
		TotalQuestions: 10,
		QuestionTypeDistribution: taxonomy.NewDistribution(
			taxonomy.Share{Label: "mcq", Proportion: 0.4},
			taxonomy.Share{Label: "fib", Proportion: 0.3},
			taxonomy.Share{Label: "tf", Proportion: 0.3},
		),
		DifficultyDistribution: taxonomy.NewDistribution(taxonomy.Share{Label: "basic", Proportion: 1}),
		BloomsDistribution:     taxonomy.NewDistribution(taxonomy.Share{Label: "apply", Proportion: 1}),
		FilesGenerated:         []string{"ch01_basic100_apply100_mcqs.json"},
		Status:                 status,
		ResponseData:           json.RawMessage(`{"mcq":{"response":[]}}`),
		RequestTimestamp:       at,
		CreatedAt:              at,
	}
}

func TestAuditRoundTrip(t *testing.T) {
	ctx := context.Background()
	uow := NewRepositoryFactory(newTestDB(t)).NewUnitOfWork(ctx)

	audit := newAudit("session-a", entity.AuditStatusSuccess, time.Now().UTC().Truncate(time.Second))
	require.NoError(t, uow.GenerationAuditRepository().Create(ctx, audit))

	got, err := uow.GenerationAuditRepository().FindOne(ctx, specification.ByID{ID: audit.Id})
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "session-a", got.SessionId)
	assert.Equal(t, []string{"mcq", "fib", "tf"}, got.QuestionTypeDistribution.Labels())
	assert.Equal(t, audit.FilesGenerated, got.FilesGenerated)
	assert.Equal(t, entity.AuditStatusSuccess, got.Status)
	assert.JSONEq(t, `{"mcq":{"response":[]}}`, string(got.ResponseData))
	assert.Empty(t, got.ErrorMessage)
}

func TestFindOneMissingReturnsNil(t *testing.T) {
	ctx := context.Background()
	uow := NewUnitOfWork(newTestDB(t))

	got, err := uow.GenerationAuditRepository().FindOne(ctx, specification.ByID{ID: uuid.New()})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestHistoryBySession(t *testing.T) {
	ctx := context.Background()
	uow := NewUnitOfWork(newTestDB(t))
	repo := uow.GenerationAuditRepository()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	failed := newAudit("session-a", entity.AuditStatusError, base.Add(time.Minute))
	failed.ErrorMessage = "question generation failed: tf: backend down"
	require.NoError(t, repo.Create(ctx, newAudit("session-a", entity.AuditStatusSuccess, base)))
	require.NoError(t, repo.Create(ctx, failed))
	require.NoError(t, repo.Create(ctx, newAudit("session-b", entity.AuditStatusSuccess, base)))

	history, err := repo.FindAll(ctx,
		specification.BySessionID{SessionID: "session-a"},
		specification.OrderBy{Field: "request_timestamp", Desc: true},
	)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, entity.AuditStatusError, history[0].Status)
	assert.Equal(t, failed.ErrorMessage, history[0].ErrorMessage)

	count, err := repo.Count(ctx, specification.ByStatus{Status: string(entity.AuditStatusSuccess)})
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestTransactionRollback(t *testing.T) {
	ctx := context.Background()
	uow := NewUnitOfWork(newTestDB(t))

	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.GenerationAuditRepository().Create(ctx, newAudit("session-a", entity.AuditStatusSuccess, time.Now())))
	require.NoError(t, uow.Rollback())

	count, err := uow.GenerationAuditRepository().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	assert.Error(t, uow.Commit())
	require.NoError(t, uow.Begin(ctx))
	assert.Error(t, uow.Begin(ctx))
	require.NoError(t, uow.Commit())
}
