package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"hireflow/internal/ai"
	"hireflow/internal/ai/gemini"
	"hireflow/internal/config"
	"hireflow/internal/database"
	"hireflow/internal/database/migration"
	dbpostgres "hireflow/internal/database/postgres"
	"hireflow/internal/delivery/http/handler"
	"hireflow/internal/delivery/http/middleware"
	v1 "hireflow/internal/delivery/http/routes/v1"
	"hireflow/internal/infrastructure/cache"
	"hireflow/internal/infrastructure/notification"
	"hireflow/internal/pkg/jwt"
	"hireflow/internal/repository"
	"hireflow/internal/usecase"
	"hireflow/internal/ws"
)

// Container owns every long-lived dependency and the wiring between them.
type Container struct {
	Config config.Config
	Logger *zap.Logger

	DB    database.DB
	Cache *cache.Redis
	Hub   *ws.Hub

	Health   *handler.HealthHandler
	Handlers v1.Handlers
	WS       *ws.Handler
}

func NewContainer(cfg config.Config, logger *zap.Logger) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	runner := migration.Runner{Dir: cfg.Database.MigrationsDir}
	if err := runner.Run(ctx, db.SQLDB()); err != nil {
		_ = db.Close()
		return nil, err
	}

	redisCache := cache.NewRedis(cfg.Redis, logger)

	// The AI paths degrade without a key: extraction refuses, scoring keeps
	// the deterministic base, invitations use the fallback question set.
	var (
		extractor ai.ProfileExtractor
		adjuster  ai.ScoreAdjuster
		questions ai.QuestionGenerator
		grader    ai.ResponseGrader
	)
	if cfg.AI.GeminiAPIKey != "" {
		client, err := gemini.New(ctx, cfg.AI, logger)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		extractor, adjuster, questions, grader = client, client, client, client
	} else {
		logger.Warn("gemini api key not set, ai features degraded")
	}

	notifier := notification.NewHTTPNotifier(cfg.Notification.BaseURL, logger)

	hub := ws.NewHub(logger)
	ws.SetDefaultHub(hub)

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	recruiterRepo := repository.NewPostgresRecruiterRepository(db)
	jobRepo := repository.NewPostgresJobRepository(db)
	candidateRepo := repository.NewPostgresCandidateRepository(db)
	interviewRepo := repository.NewPostgresInterviewRepository(db)
	responseRepo := repository.NewPostgresResponseRepository(db)
	evaluationRepo := repository.NewPostgresEvaluationRepository(db)

	authUC := usecase.NewAuthUsecase(recruiterRepo, jwtSvc, logger)
	extractionUC := usecase.NewExtractionUsecase(extractor, candidateRepo, cfg.Scoring, logger)
	scoringUC := usecase.NewScoringUsecase(adjuster, candidateRepo, jobRepo, cfg.Scoring, logger)
	rankingUC := usecase.NewRankingUsecase(candidateRepo, jobRepo, redisCache, logger)
	invitationUC := usecase.NewInvitationUsecase(
		questions, candidateRepo, interviewRepo, jobRepo,
		notifier, redisCache, cfg.Invite, cfg.Notification, logger,
	)
	sessionUC := usecase.NewSessionUsecase(
		grader, interviewRepo, responseRepo, evaluationRepo,
		candidateRepo, jobRepo, cfg.Session, logger,
	)

	return &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Cache:  redisCache,
		Hub:    hub,
		Health: handler.NewHealthHandler(db, redisCache),
		Handlers: v1.Handlers{
			Auth:       handler.NewAuthHandler(authUC),
			Resume:     handler.NewResumeHandler(extractionUC),
			Job:        handler.NewJobHandler(jobRepo, rankingUC),
			Candidate:  handler.NewCandidateHandler(candidateRepo, scoringUC),
			Invitation: handler.NewInvitationHandler(invitationUC),
			Session:    handler.NewSessionHandler(sessionUC),
			AuthMW:     middleware.NewAuthMiddleware(jwtSvc),
		},
		WS: ws.NewHandler(hub, logger),
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
