package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"question-bank-be/internal/entity"
	"question-bank-be/internal/model"
	"question-bank-be/internal/repository/specification"
	"question-bank-be/internal/repository/unitofwork"
	"question-bank-be/pkg/database"
	"question-bank-be/pkg/taxonomy"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err, "Failed to connect to DB")
	require.NoError(t, gormDB.AutoMigrate(&model.GenerationAudit{}))

	sqlDB, _ := gormDB.DB()
	assert.NoError(t, sqlDB.Ping())

	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(gormDB).NewUnitOfWork(ctx)
	assert.NotNil(t, uow.GenerationAuditRepository())

	t.Run("Check Audit Repository", func(t *testing.T) {
		count, err := uow.GenerationAuditRepository().Count(ctx)
		assert.NoError(t, err)
		t.Logf("Audit count: %d", count)
	})

	t.Run("Transactional Audit Insert", func(t *testing.T) {
		sessionID := "integration-" + uuid.NewString()
		audit := &entity.GenerationAudit{
			Id:                       uuid.New(),
			SessionId:                sessionID,
			SourceId:                 "integration-source",
			FilterKey:                "toc_level_1_title",
			FilterValue:              "ch01",
			TotalQuestions:           4,
			QuestionTypeDistribution: taxonomy.NewDistribution(taxonomy.Share{Label: "mcq", Proportion: 1}),
			DifficultyDistribution:   taxonomy.NewDistribution(taxonomy.Share{Label: "basic", Proportion: 1}),
			BloomsDistribution:       taxonomy.NewDistribution(taxonomy.Share{Label: "remember", Proportion: 1}),
			Status:                   entity.AuditStatusError,
			ErrorMessage:             "integration probe",
			RequestTimestamp:         time.Now().UTC(),
		}

		tx := unitofwork.NewRepositoryFactory(gormDB).NewUnitOfWork(ctx)
		require.NoError(t, tx.Begin(ctx))
		require.NoError(t, tx.GenerationAuditRepository().Create(ctx, audit))
		require.NoError(t, tx.Commit())
		t.Cleanup(func() {
			gormDB.Where("session_id = ?", sessionID).Delete(&model.GenerationAudit{})
		})

		got, err := uow.GenerationAuditRepository().FindAll(ctx, specification.BySessionID{SessionID: sessionID})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, entity.AuditStatusError, got[0].Status)
		assert.Equal(t, "integration probe", got[0].ErrorMessage)
		assert.Equal(t, []string{"mcq"}, got[0].QuestionTypeDistribution.Labels())
	})
}
