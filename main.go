package main

import (
	"context"
	"errors"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"

	"devlearn/config"
	"devlearn/content"
	"devlearn/extractor"
	"devlearn/logger"
	"devlearn/seeder"
	"devlearn/store"

	"gopkg.in/alecthomas/kingpin.v2"
)

type mode int

const (
	modeUsage mode = iota
	modeImport
	modeDelete
)

type command struct {
	mode   mode
	dryRun bool
}

func newApp() (*kingpin.Application, *bool, *bool, *bool) {
	app := kingpin.New("devlearn-seed", "Seed or clear the course, module and lesson collections")
	app.UsageTemplate(kingpin.CompactUsageTemplate)
	importFlag := app.Flag("import", "Wipe all courses, modules and lessons, then import them again").Short('i').Bool()
	deleteFlag := app.Flag("delete", "Delete all courses, modules and lessons").Short('d').Bool()
	dryRun := app.Flag("dry-run", "Build everything in memory and print the summary without touching the database").Bool()
	return app, importFlag, deleteFlag, dryRun
}

// parseArgs picks exactly one of import or delete. Anything else prints the
// usage and resolves to modeUsage.
func parseArgs(args []string) command {
	app, importFlag, deleteFlag, dryRun := newApp()

	if _, err := app.Parse(args); err != nil {
		app.Usage(nil)
		return command{mode: modeUsage}
	}
	switch {
	case *importFlag && !*deleteFlag:
		return command{mode: modeImport, dryRun: *dryRun}
	case *deleteFlag && !*importFlag:
		return command{mode: modeDelete, dryRun: *dryRun}
	default:
		app.Usage(nil)
		return command{mode: modeUsage}
	}
}

func main() {
	cmd := parseArgs(os.Args[1:])
	if cmd.mode == modeUsage {
		os.Exit(0)
	}

	config.LoadConfig()
	cfg := config.AppConfig

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		stdlog.Fatalf("Failed to create logger: %v", err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, cmd, log); err != nil {
		log.Fatal("seeding failed", "error", err, "interrupted", errors.Is(err, context.Canceled))
	}
}

func run(ctx context.Context, cfg *config.Config, cmd command, log *logger.Logger) error {
	lib, err := loadLibrary(cfg)
	if err != nil {
		return err
	}
	policy, err := extractor.ParsePolicy(cfg.NumberingPolicy)
	if err != nil {
		return err
	}

	var st store.Store
	if cmd.dryRun {
		log.Info("dry run, using an in-memory store")
		st = store.NewMemoryStore()
	} else {
		if err := cfg.Validate(); err != nil {
			return err
		}
		if st, err = store.Open(ctx, cfg, log); err != nil {
			return err
		}
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			log.Warn("closing store", "error", err)
		}
	}()

	s := seeder.New(st, lib, seeder.WithPolicy(policy), seeder.WithLogger(log))

	switch cmd.mode {
	case modeImport:
		summary, err := s.Import(ctx)
		if err != nil {
			return err
		}
		log.Info("import complete",
			"courses", len(summary.Courses),
			"modules", summary.Modules,
			"lessons", summary.Lessons,
			"codeExamples", summary.CodeExamples,
			"dryRun", cmd.dryRun)
	case modeDelete:
		if _, err := s.Destroy(ctx); err != nil {
			return err
		}
		log.Info("delete complete", "dryRun", cmd.dryRun)
	}
	return nil
}

func loadLibrary(cfg *config.Config) (*content.Library, error) {
	if cfg.ContentDir != "" {
		return content.LoadDir(cfg.ContentDir)
	}
	return content.Default()
}
