package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alexanderramin/ganttplan/internal/cli"
	"github.com/alexanderramin/ganttplan/internal/config"
	"github.com/alexanderramin/ganttplan/internal/db"
	"github.com/alexanderramin/ganttplan/internal/localstate"
	"github.com/alexanderramin/ganttplan/internal/logging"
	"github.com/alexanderramin/ganttplan/internal/repository"
	"github.com/alexanderramin/ganttplan/internal/service"
)

const openTimeout = 15 * time.Second

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := config.ParseFlags(args)

	// The keyring commands configure the store key, so they run before
	// the configuration has to be complete.
	if rest := flags.Args(); len(rest) > 0 && rest[0] == "key" {
		cmd := cli.NewKeyCmd()
		cmd.SetArgs(rest[1:])
		return cmd.Execute()
	}

	cfg, err := config.Load(flags)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(logging.Config{Dir: cfg.LogDir, Debug: cfg.Debug})
	if err != nil {
		return err
	}
	defer logger.Close()

	ctx, cancel := context.WithTimeout(context.Background(), openTimeout)
	store, err := db.Open(ctx, cfg.Store, cfg.StoreKey)
	cancel()
	if err != nil {
		logger.Error("open store", "dialect", db.DialectFor(cfg.Store), "error", err)
		return fmt.Errorf("opening store: %w", err)
	}
	defer store.Close()
	logger.Debug("store opened", "dialect", store.Dialect)

	// Wire repositories
	conn := store.Conn()
	contractRepo := repository.NewSQLContractRepo(conn)
	yearRepo := repository.NewSQLYearRepo(conn)
	projectRepo := repository.NewSQLProjectRepo(conn)
	stageRepo := repository.NewSQLStageRepo(conn)
	commentRepo := repository.NewSQLCommentRepo(conn)
	settingsRepo := repository.NewSQLSettingsRepo(conn)

	// Wire unit of work for transactional operations
	uow := store.UnitOfWork()
	observer := service.NewLogUseCaseObserver(logger.Logger)

	app := &cli.App{
		Contracts:   service.NewContractService(contractRepo, observer),
		Years:       service.NewYearService(yearRepo, contractRepo, observer),
		Projects:    service.NewProjectService(projectRepo, stageRepo, uow, observer),
		Stages:      service.NewStageService(stageRepo, uow, observer),
		Comments:    service.NewCommentService(commentRepo, projectRepo, observer),
		Auth:        service.NewAuthService(settingsRepo, observer),
		Maintenance: service.NewMaintenanceService(uow, observer),
		Import:      service.NewImportService(uow, observer),

		State:  localstate.File{Path: cfg.StatePath},
		Logger: logger.Logger,
	}

	return cli.NewRootCmd(app).Execute()
}
