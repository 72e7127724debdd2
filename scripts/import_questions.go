// Manual question sheet import, for seeding an assessment outside the API.
//
// Usage:
//
//	go run scripts/import_questions.go -assessment <id> -file questions.csv
//	go run scripts/import_questions.go -file questions.csv -dry-run
//
// A dry run only parses the sheet and prints the drafted questions as YAML.

package main

import (
	"context"
	"flag"
	"job_board_backend/internal/config"
	"job_board_backend/internal/model"
	"job_board_backend/internal/repository"
	"job_board_backend/internal/service"
	"job_board_backend/pkg/database"
	"job_board_backend/pkg/logger"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type draftAnswer struct {
	Text    string `yaml:"text"`
	Correct bool   `yaml:"correct"`
}

type draftQuestion struct {
	Title   string             `yaml:"title"`
	Type    model.QuestionType `yaml:"type"`
	Answers []draftAnswer      `yaml:"answers"`
}

func main() {
	configDir := flag.String("config", "configs", "directory holding config.yaml")
	assessmentID := flag.String("assessment", "", "target assessment id")
	file := flag.String("file", "", "CSV question sheet")
	category := flag.String("category", "", "category for every question")
	difficulty := flag.String("difficulty", "", "EASY, MEDIUM or HARD")
	dryRun := flag.Bool("dry-run", false, "parse and print without writing")
	flag.Parse()

	if *file == "" {
		log.Fatal("-file is required")
	}
	content, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("read sheet: %v", err)
	}

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := logger.InitLogger(cfg); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Log.Sync()

	if *dryRun {
		questions, err := service.ImportQuestions(content, *assessmentID, service.ImportOptions{MaxRows: cfg.Importer.MaxRows})
		if err != nil {
			log.Fatalf("sheet rejected: %v", err)
		}
		drafts := make([]draftQuestion, len(questions))
		for i, q := range questions {
			drafts[i] = draftQuestion{Title: q.Title, Type: q.QuestionType}
			for _, a := range q.Answers {
				drafts[i].Answers = append(drafts[i].Answers, draftAnswer{Text: a.AnswerText, Correct: a.IsCorrect})
			}
		}
		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		if err := enc.Encode(drafts); err != nil {
			log.Fatalf("print drafts: %v", err)
		}
		return
	}

	if *assessmentID == "" {
		log.Fatal("-assessment is required unless -dry-run is set")
	}

	db, err := database.InitDB(&cfg.Database, false)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}

	// Connect the cache so the running server does not serve a stale aggregate.
	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("connect redis: %v", err)
	}
	cache := repository.NewAssessmentCache(rdb, time.Duration(cfg.Redis.CacheTTLMinutes)*time.Minute)

	svc := service.NewAssessmentService(
		repository.NewAssessmentRepository(db, cache),
		repository.NewFileRepository(db),
		service.NewStorageService(&cfg.Storage),
		cfg.Importer,
	)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	summary, err := svc.ImportSheet(ctx, *assessmentID, service.SheetUpload{
		Filename:    filepath.Base(*file),
		ContentType: "text/csv",
		Content:     content,
		Category:    *category,
		Difficulty:  model.QuestionDifficulty(strings.ToUpper(*difficulty)),
	})
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}
	logger.Log.Info("import finished", zap.Int("questions", summary.Imported), zap.String("url", summary.File.URL))
}
