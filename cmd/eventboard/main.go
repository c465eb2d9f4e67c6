package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/eventboard/internal/cli"
	"github.com/alexanderramin/eventboard/internal/config"
	"github.com/alexanderramin/eventboard/internal/db"
	"github.com/alexanderramin/eventboard/internal/repository"
	"github.com/alexanderramin/eventboard/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	eventRepo := repository.NewSQLiteEventRepo(database)
	catalogRepo := repository.NewSQLiteCatalogRepo(database)
	itemRepo := repository.NewSQLiteEventItemRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	crewRepo := repository.NewSQLiteCrewRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.LogCalls {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}

	app := &cli.App{
		Events:   service.NewEventService(eventRepo, catalogRepo, itemRepo, taskRepo, uow, observer),
		Schedule: service.NewScheduleService(eventRepo, catalogRepo, itemRepo, taskRepo, crewRepo, uow, observer),
		Crew:     service.NewCrewService(crewRepo, taskRepo, uow, observer),
		Import:   service.NewImportService(eventRepo, uow, observer),
		Config:   cfg,
	}

	app.IsInteractive = func() bool {
		in, out := os.Stdin.Fd(), os.Stdout.Fd()
		return (isatty.IsTerminal(in) || isatty.IsCygwinTerminal(in)) &&
			(isatty.IsTerminal(out) || isatty.IsCygwinTerminal(out))
	}

	return cli.NewRootCmd(app).Execute()
}
