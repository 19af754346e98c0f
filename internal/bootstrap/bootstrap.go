package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	assistantinadapter "chalk/internal/modules/assistant/adapter/in"
	assistantoutadapter "chalk/internal/modules/assistant/adapter/out"
	assistantservice "chalk/internal/modules/assistant/service"
	assistantusecase "chalk/internal/modules/assistant/usecase"
	classroominadapter "chalk/internal/modules/classroom/adapter/in"
	classroomoutadapter "chalk/internal/modules/classroom/adapter/out"
	classroomservice "chalk/internal/modules/classroom/service"
	classroomusecase "chalk/internal/modules/classroom/usecase"
	lessoninadapter "chalk/internal/modules/lesson/adapter/in"
	lessonoutadapter "chalk/internal/modules/lesson/adapter/out"
	lessonservice "chalk/internal/modules/lesson/service"
	lessonusecase "chalk/internal/modules/lesson/usecase"
	sessioninadapter "chalk/internal/modules/session/adapter/in"
	sessionoutadapter "chalk/internal/modules/session/adapter/out"
	sessionservice "chalk/internal/modules/session/service"
	sessionusecase "chalk/internal/modules/session/usecase"
	"chalk/internal/platform/clock"
	"chalk/internal/platform/config"
	apperrors "chalk/internal/platform/errors"
	"chalk/internal/platform/id"
	"chalk/internal/platform/logging"
	uiapp "chalk/internal/ui/app"
)

const endTimeout = 5 * time.Second

type App struct {
	Config       config.Config
	Logger       *zap.Logger
	LessonCLI    lessoninadapter.CLIHandler
	SessionCLI   sessioninadapter.CLIHandler
	AssistantCLI assistantinadapter.CLIHandler
	ClassroomTUI classroominadapter.TUIHandler

	scheduler *classroomoutadapter.ProgramScheduler
	index     *lessonoutadapter.SQLiteLessonIndex
}

func New(cfg config.Config) (*App, error) {
	logger, err := logging.New(cfg.LogPath, cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("new logger: %w", err)
	}
	clk := clock.SystemClock{}
	ids := id.UUID{}

	index, err := lessonoutadapter.NewSQLiteLessonIndex(cfg.DBPath, clk)
	if err != nil {
		return nil, fmt.Errorf("new lesson index: %w", err)
	}
	lessonUC := lessonusecase.NewInteractor(lessonservice.NewLessonService(
		lessonoutadapter.NewVaultLessonStore(cfg.VaultPath, lessonoutadapter.NewLocalPDFReader()),
		index,
		lessonoutadapter.NewVaultFormulaSource(cfg.VaultPath),
		logger.Named("lesson"),
	))

	assistantUC := assistantusecase.NewInteractor(assistantservice.NewAssistantService(
		assistantoutadapter.NewFileManifestStore(cfg.VaultPath),
		assistantoutadapter.NewGRPCHost(),
		cfg.Assistant.MinInterval,
		logger.Named("assistant"),
	))

	sessionUC := sessionusecase.NewInteractor(
		sessionservice.NewSessionService(clk, ids, sessionoutadapter.NewVaultSessionStore(cfg.VaultPath)),
		sessionoutadapter.NewFileActiveSessionStore(cfg.VaultPath),
		logger.Named("session"),
	)

	scheduler := classroomoutadapter.NewProgramScheduler()
	classroomUC := classroomusecase.NewInteractor(
		classroomservice.NewSelectionService(classroomoutadapter.NewSystemClipboard(), logger.Named("selection")),
		scheduler,
		classroomusecase.Ports{
			Assistant: classroomoutadapter.NewAssistantAdapter(assistantUC, cfg.Assistant.Plugin),
			Progress:  classroomoutadapter.NewLessonProgressAdapter(lessonUC),
			Recorder:  classroomoutadapter.NewSessionRecorderAdapter(sessionUC),
			Launcher:  classroomoutadapter.NewOSExternalLauncher(),
		},
		classroomusecase.Settings{
			RevealInterval: cfg.Reveal.Interval,
			GraphingURL:    cfg.Tools.GraphingURL,
		},
		logger.Named("classroom"),
	)

	return &App{
		Config:       cfg,
		Logger:       logger,
		LessonCLI:    lessoninadapter.NewCLIHandler(lessonUC),
		SessionCLI:   sessioninadapter.NewCLIHandler(sessionUC),
		AssistantCLI: assistantinadapter.NewCLIHandler(assistantUC),
		ClassroomTUI: classroominadapter.NewTUIHandler(classroomUC),
		scheduler:    scheduler,
		index:        index,
	}, nil
}

// Close releases the lesson index and flushes the log.
func (a *App) Close() error {
	_ = a.Logger.Sync()
	return a.index.Close()
}

// RunTUI runs the classroom until the learner quits, then ends the study
// session. The session note path is returned when one was written.
func RunTUI(app *App, lessonID string) (string, error) {
	model := uiapp.NewModel(app.ClassroomTUI, app.LessonCLI, app.scheduler, uiapp.Settings{
		ContinueKey: app.Config.Reveal.ContinueKey,
		GraphingURL: app.Config.Tools.GraphingURL,
		Lesson:      lessonID,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	app.scheduler.Attach(program)
	_, runErr := program.Run()

	ctx, cancel := context.WithTimeout(context.Background(), endTimeout)
	defer cancel()
	out, err := app.ClassroomTUI.End(ctx)
	if runErr != nil {
		return out.Path, fmt.Errorf("run tui: %w", runErr)
	}
	if errors.Is(err, apperrors.ErrNoActiveSession) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("end session: %w", err)
	}
	return out.Path, nil
}
