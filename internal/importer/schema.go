package importer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ImportSchema is the top-level structure of an event seed file. JSON input
// is accepted too since it parses as YAML.
type ImportSchema struct {
	Event    EventImport     `yaml:"event"`
	Defaults *DefaultsImport `yaml:"defaults,omitempty"`
	Crew     []CrewImport    `yaml:"crew,omitempty"`
	Sections []SectionImport `yaml:"sections"`
}

type EventImport struct {
	ShortID        string   `yaml:"short_id"`
	Name           string   `yaml:"name"`
	From           string   `yaml:"from"`
	To             string   `yaml:"to"`
	ActiveSections []string `yaml:"active_sections,omitempty"`
	ActiveStages   []string `yaml:"active_stages,omitempty"`
}

// DefaultsImport holds values that cascade to every category and item.
type DefaultsImport struct {
	AcceptsTasks *bool `yaml:"accepts_tasks,omitempty"`
	Assigned     *bool `yaml:"assigned,omitempty"`
	TaskDays     *int  `yaml:"task_days,omitempty"`
}

type CrewImport struct {
	Ref   string `yaml:"ref"`
	Name  string `yaml:"name"`
	Email string `yaml:"email,omitempty"`
}

// SectionImport is referenced by its ref from event.active_sections.
type SectionImport struct {
	Ref        string           `yaml:"ref"`
	Name       string           `yaml:"name"`
	Order      *int             `yaml:"order,omitempty"`
	Categories []CategoryImport `yaml:"categories"`
}

type CategoryImport struct {
	Ref          string         `yaml:"ref"`
	Name         string         `yaml:"name"`
	Stage        string         `yaml:"stage"`
	Order        *int           `yaml:"order,omitempty"`
	AcceptsTasks *bool          `yaml:"accepts_tasks,omitempty"`
	Items        []ItemImport   `yaml:"items,omitempty"`
	ManualTasks  []ManualImport `yaml:"manual_tasks,omitempty"`
}

// ItemImport is a catalog item. Assigned items become event items; an
// assigned item may carry its scheduled task.
type ItemImport struct {
	Ref      string      `yaml:"ref"`
	Name     string      `yaml:"name"`
	Order    *int        `yaml:"order,omitempty"`
	Assigned *bool       `yaml:"assigned,omitempty"`
	Task     *TaskImport `yaml:"task,omitempty"`
}

// TaskImport gives either End or Days; with neither the task lasts
// defaults.task_days (1 if unset).
type TaskImport struct {
	Start     string  `yaml:"start"`
	End       *string `yaml:"end,omitempty"`
	Days      *int    `yaml:"days,omitempty"`
	Completed bool    `yaml:"completed,omitempty"`
	Crew      string  `yaml:"crew,omitempty"`
}

type ManualImport struct {
	Name       string `yaml:"name"`
	Order      *int   `yaml:"order,omitempty"`
	TaskImport `yaml:",inline"`
}

// LoadImportSchema reads and parses an event seed file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseImportSchema(data)
}

func ParseImportSchema(data []byte) (*ImportSchema, error) {
	var schema ImportSchema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
