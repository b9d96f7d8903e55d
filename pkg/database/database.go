package database

import (
	"devlingo_backend/internal/config"
	"devlingo_backend/internal/model"
	"encoding/json"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dbc := &cfg.Database
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		dbc.User,
		dbc.Password,
		dbc.Host,
		dbc.Port,
		dbc.DBName,
		dbc.Charset,
		dbc.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	// release mode skips migration unless forced via -migrate
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
		log.Println("Database migration completed")
		seedTasks(db)
	}

	return db, nil
}

// Migrate creates or updates the schema for every persisted model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Task{},
		&model.ProgressRecord{},
		&model.ScoreRecord{},
		&model.Note{},
	)
}

// seedTasks inserts a starter set of exercises when the tasks table is
// empty, one per exercise type, so a fresh install has something to show.
func seedTasks(db *gorm.DB) {
	var count int64
	db.Model(&model.Task{}).Count(&count)
	if count > 0 {
		return
	}

	mustJSON := func(v interface{}) json.RawMessage {
		b, _ := json.Marshal(v)
		return b
	}

	defaults := []model.Task{
		{
			Level:    model.Junior,
			Category: "Git Basics",
			Type:     model.TaskChoice,
			Title:    "Saving your work",
			Prompt:   "# Which command records your staged changes?\ngit ____",
			Options: mustJSON(map[string]string{
				"a": "commit",
				"b": "push",
				"c": "clone",
				"d": "status",
			}),
			Correct: "a",
		},
		{
			Level:    model.Junior,
			Category: "Vocabulary",
			Type:     model.TaskInput,
			Title:    "Merge trouble",
			Prompt:   "# Complete the term for two branches editing the same line\nerror = \"____\"\nprint(error)",
			Correct:  "merge conflict",
		},
		{
			Level:     model.Middle,
			Category:  "Sentence Builder",
			Type:      model.TaskBuilder,
			Title:     "Standup phrase",
			Prompt:    "# Build the sentence for your daily standup\nreport = \"____\"",
			Fragments: mustJSON([]string{"blocked", "I", "am", "by", "the", "review", "deploy"}),
			Correct:   "I am blocked by the review",
		},
	}

	for _, t := range defaults {
		db.Create(&t)
	}
}
