package domain

// TaskStatus is the derived, never-stored status of a scheduled task.
type TaskStatus string

const (
	TaskPending   TaskStatus = "PENDING"
	TaskInProcess TaskStatus = "IN_PROCESS"
	TaskDelayed   TaskStatus = "DELAYED"
	TaskCompleted TaskStatus = "COMPLETED"
)

type TaskKind string

const (
	// TaskCatalog is bound to an event item assigned from the catalog.
	TaskCatalog TaskKind = "catalog"
	// TaskManual is a free-standing task created inside a category.
	TaskManual TaskKind = "manual"
)

// SyncStatus tracks the external calendar copy of a crew assignment.
type SyncStatus string

const (
	SyncNone      SyncStatus = ""
	SyncDraft     SyncStatus = "draft"
	SyncPublished SyncStatus = "published"
	SyncInvited   SyncStatus = "invited"
)

type InvitationStatus string

const (
	InvitationNone     InvitationStatus = ""
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
)

// Stage groups categories inside a section.
type Stage string

const (
	StagePlanning       Stage = "planning"
	StageProduction     Stage = "production"
	StagePostProduction Stage = "post_production"
	StageDelivery       Stage = "delivery"
)

// StageOrder is the display order of stages within a section.
var StageOrder = []Stage{StagePlanning, StageProduction, StagePostProduction, StageDelivery}

// ValidStages is the canonical set of accepted stage strings.
var ValidStages = map[string]bool{
	"planning": true, "production": true, "post_production": true, "delivery": true,
}

// StageLabel returns the header label shown for a stage.
func StageLabel(s Stage) string {
	switch s {
	case StagePlanning:
		return "Planning"
	case StageProduction:
		return "Production"
	case StagePostProduction:
		return "Post-production"
	case StageDelivery:
		return "Delivery"
	default:
		return string(s)
	}
}
