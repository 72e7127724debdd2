package service

import (
	"job_board_backend/internal/config"
	"job_board_backend/internal/repository"
	"job_board_backend/pkg/database"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type testServices struct {
	db          *gorm.DB
	assessments *AssessmentService
	results     *ResultService
	uploads     string
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	db := newTestDB(t)
	uploads := t.TempDir()

	repo := repository.NewAssessmentRepository(db, nil)
	storage := NewStorageService(&config.StorageConfig{Type: "local", LocalPath: uploads})
	importer := config.ImporterConfig{MaxBytes: 1 << 20, MaxRows: 100, DefaultCategory: "General", DefaultDifficulty: "MEDIUM"}

	return &testServices{
		db:          db,
		assessments: NewAssessmentService(repo, repository.NewFileRepository(db), storage, importer),
		results:     NewResultService(repo, repository.NewResultRepository(db), config.GradingConfig{PassMark: 50, CooldownHours: 24}),
		uploads:     uploads,
	}
}
