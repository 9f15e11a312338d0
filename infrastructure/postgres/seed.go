package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"taskboard/domain/models"
	"taskboard/pkg/logger"
)

// SampleBoards returns the demo boards with their tasks attached.
func SampleBoards(now time.Time) []*models.Board {
	now = now.UTC().Truncate(time.Microsecond)
	due := now.AddDate(0, 0, 7)

	task := func(title, description string, status models.TaskStatus, priority models.TaskPriority) models.Task {
		return models.Task{
			Title:       title,
			Description: description,
			Status:      status,
			Priority:    priority,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
	}

	ui := task("Build UI Components", "Create Angular components", models.TaskStatusTodo, models.TaskPriorityMedium)
	ui.DueDate = &due

	return []*models.Board{
		{
			Name:        "Project Alpha",
			Description: "Main project board",
			CreatedAt:   now,
			UpdatedAt:   now,
			Tasks: []models.Task{
				task("Setup Database", "Initialize database schema", models.TaskStatusDone, models.TaskPriorityHigh),
				task("Create API Endpoints", "Build REST API", models.TaskStatusInProgress, models.TaskPriorityHigh),
				ui,
			},
		},
		{
			Name:        "Project Beta",
			Description: "Secondary project",
			CreatedAt:   now,
			UpdatedAt:   now,
			Tasks: []models.Task{
				task("Write Tests", "Unit and integration tests", models.TaskStatusTodo, models.TaskPriorityMedium),
			},
		},
	}
}

// Seed inserts the sample boards when the boards table is empty.
func Seed(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Board{}).Count(&count).Error; err != nil {
			return fmt.Errorf("count boards: %w", err)
		}
		if count > 0 {
			logger.Debug("Skipping seed, boards already present", "count", count)
			return nil
		}

		boards := SampleBoards(time.Now())
		if err := tx.Create(&boards).Error; err != nil {
			return fmt.Errorf("insert sample boards: %w", err)
		}
		logger.Info("Seeded sample boards", "boards", len(boards))
		return nil
	})
}
