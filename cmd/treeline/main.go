package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/mhalvorsen/treeline/internal/cli"
	"github.com/mhalvorsen/treeline/internal/db"
	"github.com/mhalvorsen/treeline/internal/outline"
	"github.com/mhalvorsen/treeline/internal/repository"
	"github.com/mhalvorsen/treeline/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.treeline/treeline.db
	dbPath := os.Getenv("TREELINE_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".treeline", "treeline.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories and the unit of work for transactional reorders.
	templateRepo := repository.NewSQLiteTemplateRepo(database)
	sectionRepo := repository.NewSQLiteSectionRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	// Use-case telemetry goes to the file named by TREELINE_LOG, if any.
	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if logPath := os.Getenv("TREELINE_LOG"); logPath != "" {
		logFile, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer logFile.Close()
		observer = service.NewLogUseCaseObserver(io.Writer(logFile))
	}

	sectionSvc := service.NewSectionService(sectionRepo, uow, observer)
	taskSvc := service.NewTaskService(taskRepo, sectionRepo, observer)

	app := &cli.App{
		Templates: service.NewTemplateService(templateRepo),
		Sections:  sectionSvc,
		Tasks:     taskSvc,
		Import:    service.NewImportService(uow),
		Outline:   outline.NewEngine(taskSvc, sectionSvc),
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
