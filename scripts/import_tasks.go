// Bulk task importer.
//
// Reads a JSON file of task definitions and inserts them into the
// database, skipping anything that would not render for learners.
// Meant for first deploys or content drops too large for the admin UI.
//
// Usage: go run scripts/import_tasks.go content/tasks.json
package main

import (
	"encoding/json"
	"log"
	"os"

	"devlingo_backend/internal/config"
	"devlingo_backend/internal/model"
	"devlingo_backend/internal/repository"
	"devlingo_backend/pkg/database"
	"devlingo_backend/pkg/logger"

	"gopkg.in/yaml.v3"
)

type taskDef struct {
	Level     string            `json:"level"`
	Category  string            `json:"category"`
	Type      string            `json:"type"`
	Title     string            `json:"title"`
	Prompt    string            `json:"prompt"`
	Options   map[string]string `json:"options"`
	Fragments []string          `json:"fragments"`
	Correct   string            `json:"correct"`
}

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: import_tasks <tasks.json>")
	}

	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("failed to parse config file: %v", err)
	}

	logger.InitLogger(&cfg)

	db, err := database.InitDB(&cfg)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	raw, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatalf("failed to read task file: %v", err)
	}

	var defs []taskDef
	if err := json.Unmarshal(raw, &defs); err != nil {
		log.Fatalf("failed to parse task file: %v", err)
	}

	repo := repository.NewTaskRepository(db)
	imported, skipped := 0, 0

	for i, d := range defs {
		task := model.Task{
			Level:    model.TaskLevel(d.Level),
			Category: d.Category,
			Type:     model.TaskType(d.Type),
			Title:    d.Title,
			Prompt:   d.Prompt,
			Correct:  d.Correct,
		}
		if len(d.Options) > 0 {
			task.Options, _ = json.Marshal(d.Options)
		}
		if len(d.Fragments) > 0 {
			task.Fragments, _ = json.Marshal(d.Fragments)
		}

		if !model.ValidLevel(string(task.Level)) || !task.Renderable() {
			log.Printf("skipping entry %d (%q): not renderable", i, d.Title)
			skipped++
			continue
		}

		if err := repo.Create(&task); err != nil {
			log.Fatalf("failed to insert %q: %v", d.Title, err)
		}
		imported++
	}

	log.Printf("done: %d imported, %d skipped", imported, skipped)
}
