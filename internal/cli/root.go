package cli

import (
	"time"

	"github.com/alexanderramin/eventboard/internal/config"
	"github.com/alexanderramin/eventboard/internal/gesture"
	"github.com/alexanderramin/eventboard/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to the services and settings used by CLI commands.
type App struct {
	Events   service.EventService
	Schedule service.ScheduleService
	Crew     service.CrewService
	Import   service.ImportService
	Config   *config.Config

	// IsInteractive reports whether prompts and the board can be shown.
	// Nil means never.
	IsInteractive func() bool
	// Confirm asks a yes/no question. Nil uses a huh confirm form.
	Confirm func(title, description string) (bool, error)
	// Now is the clock behind statuses and the today marker. Nil means time.Now.
	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) settings() *config.Config {
	if a.Config == nil {
		return config.DefaultConfig()
	}
	return a.Config
}

func (a *App) thresholds() gesture.Thresholds {
	cfg := a.settings()
	return gesture.Thresholds{DragPx: cfg.DragThresholdPx, ResizePx: cfg.ResizeThresholdPx}
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) confirm(title, description string) (bool, error) {
	if a.Confirm != nil {
		return a.Confirm(title, description)
	}
	return huhConfirm(title, description)
}

// NewRootCmd creates the top-level "eventboard" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:          "eventboard",
		Short:        "Production timeline for event bookings",
		SilenceUsage: true,
	}

	root.AddCommand(
		newEventCmd(app),
		newImportCmd(app),
		newTimelineCmd(app),
		newItemCmd(app),
		newTaskCmd(app),
		newCategoryCmd(app),
		newStageCmd(app),
		newBoardCmd(app),
		newExportCmd(app),
		newCrewCmd(app),
		newConfigCmd(app),
	)

	return root
}
