package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const weddingYAML = `
event:
  short_id: wed24
  name: Smith wedding
  from: 2024-06-01
  to: 2024-06-10
  active_sections: [photo]
  active_stages: [production, delivery]
defaults:
  task_days: 2
crew:
  - ref: ana
    name: Ana Diaz
    email: ana@example.com
  - ref: sam
    name: Sam Lee
sections:
  - ref: photo
    name: Photography
    categories:
      - ref: shoot
        name: Shoot
        stage: production
        items:
          - ref: ceremony
            name: Ceremony
            task:
              start: 2024-06-05
              end: 2024-06-05
              crew: ana
          - ref: portraits
            name: Portraits
            task:
              start: 2024-06-06
          - ref: drone
            name: Drone
            assigned: false
        manual_tasks:
          - name: Scout venue
            start: 2024-06-02
            days: 3
            crew: sam
      - ref: albums
        name: Albums
        stage: delivery
        accepts_tasks: false
        items:
          - ref: album
            name: Leather album
  - ref: video
    name: Video
    categories:
      - ref: edit
        name: Edit
        stage: post_production
        items:
          - ref: teaser
            name: Teaser
`

func parseWedding(t *testing.T) *ImportSchema {
	t.Helper()
	schema, err := ParseImportSchema([]byte(weddingYAML))
	require.NoError(t, err)
	return schema
}

func joinErrs(errs []error) string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

func TestValidateImportSchema_Valid(t *testing.T) {
	errs := ValidateImportSchema(parseWedding(t))
	assert.Empty(t, errs, joinErrs(errs))
}

func TestValidateImportSchema_JSONInput(t *testing.T) {
	schema, err := ParseImportSchema([]byte(`{"event": {"short_id": "GALA25", "name": "Gala", "from": "2025-03-01", "to": "2025-03-02"}, "sections": []}`))
	require.NoError(t, err)
	assert.Empty(t, ValidateImportSchema(schema))
}

func TestValidateImportSchema_MissingEventFields(t *testing.T) {
	errs := ValidateImportSchema(&ImportSchema{})
	msg := joinErrs(errs)
	assert.Contains(t, msg, "event.short_id")
	assert.Contains(t, msg, "event.name is required")
	assert.Contains(t, msg, "event.from is required")
	assert.Contains(t, msg, "event.to is required")
}

func TestValidateImportSchema_InvertedWindow(t *testing.T) {
	schema := parseWedding(t)
	schema.Event.From = "2024-06-20"
	msg := joinErrs(ValidateImportSchema(schema))
	assert.Contains(t, msg, "range start is after range end")
}

func TestValidateImportSchema_TaskOutsideWindow(t *testing.T) {
	schema := parseWedding(t)
	schema.Sections[0].Categories[0].Items[0].Task.Start = "2024-06-12"
	end := "2024-06-12"
	schema.Sections[0].Categories[0].Items[0].Task.End = &end

	msg := joinErrs(ValidateImportSchema(schema))
	assert.Contains(t, msg, "outside the event window")
}

func TestValidateImportSchema_TaskEndBeforeStart(t *testing.T) {
	schema := parseWedding(t)
	end := "2024-06-04"
	schema.Sections[0].Categories[0].Items[0].Task.End = &end

	msg := joinErrs(ValidateImportSchema(schema))
	assert.Contains(t, msg, "is before start")
}

func TestValidateImportSchema_UndatedCategoryRejectsTasks(t *testing.T) {
	schema := parseWedding(t)
	schema.Sections[0].Categories[1].Items[0].Task = &TaskImport{Start: "2024-06-03"}

	msg := joinErrs(ValidateImportSchema(schema))
	assert.Contains(t, msg, `category "albums" does not accept tasks`)
}

func TestValidateImportSchema_UnassignedItemCannotHaveTask(t *testing.T) {
	schema := parseWedding(t)
	schema.Sections[0].Categories[0].Items[2].Task = &TaskImport{Start: "2024-06-03"}

	msg := joinErrs(ValidateImportSchema(schema))
	assert.Contains(t, msg, "not assigned")
}

func TestValidateImportSchema_ReferenceErrors(t *testing.T) {
	schema := parseWedding(t)
	schema.Sections[1].Categories[0].Ref = "shoot"
	schema.Sections[0].Categories[0].ManualTasks[0].Crew = "nobody"
	schema.Event.ActiveSections = append(schema.Event.ActiveSections, "audio")
	schema.Sections[1].Categories[0].Stage = "rehearsal"

	errs := ValidateImportSchema(schema)
	msg := joinErrs(errs)
	assert.Contains(t, msg, `duplicate ref "shoot"`)
	assert.Contains(t, msg, `unknown crew ref "nobody"`)
	assert.Contains(t, msg, `unknown section ref "audio"`)
	assert.Contains(t, msg, `invalid stage "rehearsal"`)
	assert.Len(t, errs, 4, "all errors are collected")
}

func TestValidateImportSchema_EndAndDaysExclusive(t *testing.T) {
	schema := parseWedding(t)
	days := 2
	schema.Sections[0].Categories[0].Items[0].Task.Days = &days

	msg := joinErrs(ValidateImportSchema(schema))
	assert.Contains(t, msg, "give end or days, not both")
}
