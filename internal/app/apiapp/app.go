package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minio/minio-go/v7"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mlebedz/pairline/backend/internal/config"
	s3infra "github.com/mlebedz/pairline/backend/internal/infra/s3"
	pgrepo "github.com/mlebedz/pairline/backend/internal/repo/postgres"
	redrepo "github.com/mlebedz/pairline/backend/internal/repo/redis"
	authsvc "github.com/mlebedz/pairline/backend/internal/services/auth"
	matchessvc "github.com/mlebedz/pairline/backend/internal/services/matches"
	matchingsvc "github.com/mlebedz/pairline/backend/internal/services/matching"
	mediasvc "github.com/mlebedz/pairline/backend/internal/services/media"
	notessvc "github.com/mlebedz/pairline/backend/internal/services/notes"
	profilesvc "github.com/mlebedz/pairline/backend/internal/services/profiles"
	ratesvc "github.com/mlebedz/pairline/backend/internal/services/rate"
	searchsvc "github.com/mlebedz/pairline/backend/internal/services/search"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	postgres   *pgxpool.Pool
	redis      *goredis.Client
	s3         *minio.Client
	httpRouter http.Handler
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)

	var pool *pgxpool.Pool
	if p, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN); err != nil {
		log.Warn("postgres init failed, continuing in degraded mode", zap.Error(err))
	} else {
		pool = p
	}

	redisClient := redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	sessionRepo := redrepo.NewSessionRepo(redisClient)
	rateRepo := redrepo.NewRateRepo(redisClient)
	userRepo := pgrepo.NewUserRepo(pool)
	interestRepo := pgrepo.NewInterestRepo(pool)
	matchRepo := pgrepo.NewMatchRepo(pool)
	noteRepo := pgrepo.NewNoteRepo(pool)
	followRepo := pgrepo.NewFollowRepo(pool)

	jwtManager := authsvc.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTAccessTTL)
	loginLimiter := ratesvc.NewLimiter(rateRepo, cfg.Limits.LoginPerMinute)
	authService := authsvc.NewService(authsvc.Dependencies{
		JWT:        jwtManager,
		Users:      userRepo,
		Sessions:   sessionRepo,
		Limiter:    loginLimiter,
		RefreshTTL: cfg.Auth.RefreshTTL,
	})
	profileService := profilesvc.NewService(profilesvc.Dependencies{
		Pool:      pool,
		Users:     userRepo,
		Interests: interestRepo,
	})
	matchingEngine := matchingsvc.NewEngine(matchingsvc.Dependencies{
		Users:     userRepo,
		Matches:   matchRepo,
		Interests: interestRepo,
	})
	matchService := matchessvc.NewService(matchessvc.Dependencies{
		Store: matchRepo,
	})
	noteService := notessvc.NewService(notessvc.Dependencies{
		Matches: matchRepo,
		Notes:   noteRepo,
	})
	searchService := searchsvc.NewService(searchsvc.Dependencies{
		Users:     userRepo,
		Interests: interestRepo,
		Follows:   followRepo,
		PageSize:  cfg.Limits.SearchPageSize,
	})

	var s3Client *minio.Client
	if c, err := s3infra.NewClient(cfg.S3.Endpoint, cfg.S3.AccessKey, cfg.S3.SecretKey, cfg.S3.UseSSL); err != nil {
		log.Warn("s3 init failed, continuing in degraded mode", zap.Error(err))
	} else {
		s3Client = c
	}
	mediaStorage := mediasvc.NewS3Storage(s3Client, cfg.S3.Bucket)
	mediaService := mediasvc.NewService(mediasvc.Dependencies{
		Storage:  mediaStorage,
		Profiles: userRepo,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	RegisterRoutes(r, Dependencies{
		AuthService:    authService,
		ProfileService: profileService,
		MatchingEngine: matchingEngine,
		MatchService:   matchService,
		NoteService:    noteService,
		SearchService:  searchService,
		MediaService:   mediaService,
		Logger:         log,
	})

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		postgres:   pool,
		redis:      redisClient,
		s3:         s3Client,
		httpRouter: r,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info("api server started", zap.String("addr", a.cfg.HTTP.Addr))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.postgres != nil {
		a.postgres.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}
