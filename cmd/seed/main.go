// Command seed loads a small demo content hierarchy through the repository
// layer. It is idempotent in the cheapest way possible: rerunning it fails on
// the slug unique keys and the conflicts are reported, not fatal.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/interviewprep/backend/internal/config"
	"github.com/interviewprep/backend/internal/logger"
	"github.com/interviewprep/backend/internal/models"
	"github.com/interviewprep/backend/internal/repositories"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	zapLogger, err := logger.New(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer zapLogger.Sync()

	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		zapLogger.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		zapLogger.Fatal("Failed to ping database", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := seed(ctx, db, zapLogger); err != nil {
		zapLogger.Fatal("Seeding failed", zap.Error(err))
	}

	zapLogger.Info("Seeding complete")
}

func seed(ctx context.Context, db *sql.DB, zapLogger *zap.Logger) error {
	categoryRepo := repositories.NewCategoryRepository(db, zapLogger)
	topicRepo := repositories.NewTopicRepository(db, zapLogger)
	lessonRepo := repositories.NewLessonRepository(db, zapLogger)
	quizRepo := repositories.NewQuizRepository(db, zapLogger)

	category := &models.Category{
		Slug:        "go",
		Name:        "Go",
		Description: "Core language concepts asked in Go interviews",
		Position:    1,
	}
	if err := create(zapLogger, "category", category.Slug, categoryRepo.Create(ctx, category)); err != nil {
		return err
	}
	if category.ID == 0 {
		existing, err := categoryRepo.GetBySlug(ctx, category.Slug)
		if err != nil {
			return fmt.Errorf("failed to load existing category: %w", err)
		}
		category = existing
	}

	topic := &models.Topic{
		Slug:             "concurrency",
		CategoryID:       category.ID,
		Name:             "Concurrency",
		Description:      "Goroutines, channels, and the memory model",
		Difficulty:       models.DifficultyIntermediate,
		EstimatedMinutes: 90,
		Position:         1,
	}
	if err := create(zapLogger, "topic", topic.Slug, topicRepo.Create(ctx, topic)); err != nil {
		return err
	}
	if topic.ID == 0 {
		existing, err := topicRepo.GetBySlug(ctx, topic.Slug)
		if err != nil {
			return fmt.Errorf("failed to load existing topic: %w", err)
		}
		topic = existing
	}

	lessons := []*models.Lesson{
		{
			Slug:             "goroutines-basics",
			TopicID:          topic.ID,
			Title:            "Goroutine Basics",
			Summary:          "What a goroutine is and how the scheduler runs it",
			Content:          "A goroutine is a lightweight thread of execution managed by the Go runtime...",
			Difficulty:       models.DifficultyBeginner,
			EstimatedMinutes: 20,
			Position:         1,
			KeyPoints: []string{
				"Goroutines are multiplexed onto OS threads by the runtime scheduler",
				"The main function exiting terminates all goroutines",
			},
		},
		{
			Slug:             "channels-deep-dive",
			TopicID:          topic.ID,
			Title:            "Channels Deep Dive",
			Summary:          "Buffered vs unbuffered channels and common patterns",
			Content:          "Channels connect concurrent goroutines. An unbuffered channel blocks the sender until...",
			Difficulty:       models.DifficultyIntermediate,
			EstimatedMinutes: 35,
			Position:         2,
			KeyPoints: []string{
				"Send on an unbuffered channel blocks until a receiver is ready",
				"Closing a channel is a broadcast: all receivers observe it",
				"Only the sender should close a channel",
			},
		},
	}
	for _, lesson := range lessons {
		if err := create(zapLogger, "lesson", lesson.Slug, lessonRepo.Create(ctx, lesson)); err != nil {
			return err
		}
		if lesson.ID == 0 {
			existing, err := lessonRepo.GetBySlug(ctx, lesson.Slug)
			if err != nil {
				return fmt.Errorf("failed to load existing lesson: %w", err)
			}
			*lesson = *existing
		}
	}

	examples := []*models.CodeExample{
		{
			LessonID:    lessons[0].ID,
			Title:       "Launching a goroutine",
			Description: "The go statement starts a new goroutine",
			Language:    "go",
			Code:        "go func() {\n\tfmt.Println(\"hello from a goroutine\")\n}()",
			Explanation: "The function runs concurrently with the caller; there is no join, use a sync primitive.",
			Position:    1,
		},
		{
			LessonID:    lessons[1].ID,
			Title:       "Fan-in with select",
			Description: "Merging two channels into one consumer",
			Language:    "go",
			Code:        "select {\ncase v := <-a:\n\thandle(v)\ncase v := <-b:\n\thandle(v)\n}",
			Explanation: "select blocks until one case is ready; ties are resolved pseudo-randomly.",
			Position:    1,
		},
	}
	for _, example := range examples {
		if err := create(zapLogger, "code example", example.Title, lessonRepo.CreateCodeExample(ctx, example)); err != nil {
			return err
		}
	}

	questions := []*models.QuizQuestion{
		{
			LessonID:      lessons[0].ID,
			Question:      "What happens to running goroutines when main returns?",
			QuestionType:  models.QuestionTypeMultipleChoice,
			Choices:       []string{"They keep running", "They are terminated", "They are paused", "It is undefined"},
			CorrectAnswer: "They are terminated",
			Explanation:   "Program exit does not wait for other goroutines.",
			Difficulty:    models.DifficultyBeginner,
			Points:        10,
			Position:      1,
		},
		{
			LessonID:      lessons[1].ID,
			Question:      "A send on an unbuffered channel blocks until a receiver is ready.",
			QuestionType:  models.QuestionTypeTrueFalse,
			Choices:       []string{"true", "false"},
			CorrectAnswer: "true",
			Explanation:   "Unbuffered channels synchronize sender and receiver.",
			Difficulty:    models.DifficultyBeginner,
			Points:        5,
			Position:      1,
		},
		{
			LessonID:      lessons[1].ID,
			Question:      "Which side of a channel should close it?",
			QuestionType:  models.QuestionTypeShortAnswer,
			Choices:       []string{},
			CorrectAnswer: "the sender",
			Explanation:   "Closing from the receiver risks a send on a closed channel, which panics.",
			Difficulty:    models.DifficultyIntermediate,
			Points:        10,
			Position:      2,
		},
	}
	for _, question := range questions {
		if err := create(zapLogger, "quiz question", question.Question, quizRepo.CreateQuestion(ctx, question)); err != nil {
			return err
		}
	}

	return nil
}

// create logs a conflict as already-seeded instead of failing the run
func create(zapLogger *zap.Logger, kind, name string, err error) error {
	if err == nil {
		zapLogger.Info("Seeded", zap.String("kind", kind), zap.String("name", name))
		return nil
	}
	if errors.Is(err, models.ErrConflict) {
		zapLogger.Info("Already seeded, skipping", zap.String("kind", kind), zap.String("name", name))
		return nil
	}
	return fmt.Errorf("failed to seed %s %q: %w", kind, name, err)
}
