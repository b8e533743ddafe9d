package sidequest

import (
	"context"
	"log/slog"
	"time"

	"github.com/sidequest-app/sidequest/sidequest/database"
	"github.com/sidequest-app/sidequest/sidequest/database/repositories"
	"github.com/sidequest-app/sidequest/sidequest/geo"
	"github.com/sidequest-app/sidequest/sidequest/quest"
)

func New(cfg Config, version string, commit string) *App {
	return &App{
		Cfg:     cfg,
		Version: version,
		Commit:  commit,
	}
}

// App holds the wired engine: database, repositories, geo provider, and
// the quest services. main builds one and drives it.
type App struct {
	Cfg     Config
	Version string
	Commit  string

	DB *database.DB

	UserRepository          repositories.UserRepository
	QuestRepository         repositories.QuestRepository
	QuestTemplateRepository repositories.QuestTemplateRepository
	SubmissionRepository    repositories.SubmissionRepository

	GeoProvider       *geo.Provider
	AssignmentService *quest.AssignmentService
	SubmissionService *quest.SubmissionService
}

// Setup connects the database, initializes the schema, and wires every
// repository and service. Call Close when done.
func (a *App) Setup(ctx context.Context) error {
	start := time.Now()

	db, err := database.New(ctx, a.Cfg.DB)
	if err != nil {
		return err
	}
	a.DB = db

	if err := db.InitializeSchema(ctx); err != nil {
		db.Close()
		return err
	}

	slog.Info("Database ready",
		slog.String("type", "db"),
		slog.String("database", a.Cfg.DB.Database),
		slog.Duration("took", time.Since(start)))

	a.UserRepository = repositories.NewUserRepository(db.BunDB())
	a.QuestRepository = repositories.NewQuestRepository(db.BunDB())
	a.QuestTemplateRepository = repositories.NewQuestTemplateRepository(db.BunDB())
	a.SubmissionRepository = repositories.NewSubmissionRepository(db.BunDB())

	a.GeoProvider = geo.NewProvider(a.Cfg.Geo)

	a.AssignmentService = quest.NewAssignmentService(
		a.QuestRepository,
		a.QuestTemplateRepository,
		a.UserRepository,
		a.GeoProvider,
		a.Cfg.Quest,
	)
	a.SubmissionService = quest.NewSubmissionService(a.QuestRepository, a.SubmissionRepository)

	return nil
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}
