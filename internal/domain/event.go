package domain

import (
	"fmt"
	"regexp"
	"time"

	"github.com/alexanderramin/eventboard/internal/dates"
)

var shortIDPattern = regexp.MustCompile(`^[A-Z]{3,6}[0-9]{2,4}$`)

// Event is one booked job. Range is the visible and valid calendar window
// of its timeline; it changes only through EventService.
type Event struct {
	ID      string
	ShortID string
	Name    string
	Range   dates.Range

	// ActiveSectionIDs and ActiveStages restrict which headers the board
	// shows. Empty means everything is active.
	ActiveSectionIDs []string
	ActiveStages     []Stage

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateShortID checks that ShortID is non-empty and matches the required
// format: 3-6 uppercase letters followed by 2-4 digits (e.g. WED24, GALA2025).
func (e *Event) ValidateShortID() error {
	if e.ShortID == "" {
		return fmt.Errorf("short ID is required (use --id flag)")
	}
	if !shortIDPattern.MatchString(e.ShortID) {
		return fmt.Errorf("short ID %q must be 3-6 uppercase letters followed by 2-4 digits (e.g. WED24)", e.ShortID)
	}
	return nil
}

// DisplayID returns the best short identifier for display.
// It prefers ShortID; if empty it truncates ID to 8 characters.
func (e *Event) DisplayID() string {
	if e.ShortID != "" {
		return e.ShortID
	}
	if len(e.ID) >= 8 {
		return e.ID[:8]
	}
	return e.ID
}
