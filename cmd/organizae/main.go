package main

import (
	"context"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/organizae/app/domain"
	"github.com/organizae/app/internal/config"
	"github.com/organizae/app/internal/identity"
	"github.com/organizae/app/internal/infrastructure/sessionstore"
	"github.com/organizae/app/internal/services/lifecycle"
	"github.com/organizae/app/internal/tui"
	"github.com/organizae/app/internal/validate"
	"github.com/organizae/app/pkg/logger"
	"github.com/organizae/app/repository/rest"
	authUC "github.com/organizae/app/usecase/auth"
	materiaUC "github.com/organizae/app/usecase/materia"
	profileUC "github.com/organizae/app/usecase/profile"
	tarefaUC "github.com/organizae/app/usecase/tarefa"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
		File:     cfg.Logger.File,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	if missing := cfg.MissingEndpoints(); len(missing) > 0 {
		zapLogger.Error("configuração incompleta, operando em modo degradado",
			zap.String("variaveis", strings.Join(missing, ", ")))
	}

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	appCtx, cancel := manager.Context(context.Background())
	defer cancel()

	store, err := sessionstore.Open(cfg.Session.Path)
	if err != nil {
		zapLogger.Fatal("falha ao abrir armazenamento de sessão", zap.Error(err))
	}
	manager.OnClose("sessao", func(ctx context.Context) error {
		return store.Close()
	})

	identityClient := identity.New(cfg.Identity.URL, cfg.Identity.AnonKey, cfg.Context.RequestTimeout, zapLogger)
	authManager := authUC.NewManager(identityClient, store, zapLogger)

	apiClient := rest.NewClient(cfg.API.URL, authManager, cfg.Context.RequestTimeout, zapLogger)
	materiaRepo := rest.NewMateriaRepository(apiClient)
	tarefaRepo := rest.NewTarefaRepository(apiClient)
	userRepo := rest.NewUserRepository(apiClient)

	materiaUseCase := materiaUC.New(materiaRepo, tarefaRepo, zapLogger)
	tarefaUseCase := tarefaUC.New(tarefaRepo, zapLogger)
	profileUseCase := profileUC.New(authManager, userRepo, validate.New(validate.DefaultPasswordPolicy), zapLogger)

	model := tui.New(tui.Deps{
		Auth:     authManager,
		Materias: materiaUseCase,
		Tarefas:  tarefaUseCase,
		Profile:  profileUseCase,
		Logger:   zapLogger,
		Timeout:  cfg.Context.RequestTimeout,
		Location: time.Local,
	})

	program := tea.NewProgram(model, tea.WithAltScreen())

	unsubscribe := authManager.Subscribe(func(session *domain.Session) {
		program.Send(tui.SessionChanged(session))
	})
	defer unsubscribe()

	go authManager.Start(appCtx)

	go func() {
		<-appCtx.Done()
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		zapLogger.Error("interface encerrada com erro", zap.Error(err))
	}

	if err := manager.Close(context.Background()); err != nil {
		zapLogger.Error("erro no encerramento", zap.Error(err))
	}
}
