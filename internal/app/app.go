package app

import (
	"net/http"

	"family-tree-go/internal/config"
	"family-tree-go/internal/db"
	accountdomain "family-tree-go/internal/domain/account"
	authdomain "family-tree-go/internal/domain/auth"
	eventdomain "family-tree-go/internal/domain/event"
	familydomain "family-tree-go/internal/domain/family"
	historydomain "family-tree-go/internal/domain/history"
	marriagedomain "family-tree-go/internal/domain/marriage"
	mediadomain "family-tree-go/internal/domain/media"
	memberdomain "family-tree-go/internal/domain/member"
	reldomain "family-tree-go/internal/domain/relationship"
	"family-tree-go/internal/facedetect"
	accountrepo "family-tree-go/internal/repository/postgres/account"
	eventrepo "family-tree-go/internal/repository/postgres/event"
	familyrepo "family-tree-go/internal/repository/postgres/family"
	historyrepo "family-tree-go/internal/repository/postgres/history"
	marriagerepo "family-tree-go/internal/repository/postgres/marriage"
	mediarepo "family-tree-go/internal/repository/postgres/media"
	memberrepo "family-tree-go/internal/repository/postgres/member"
	relrepo "family-tree-go/internal/repository/postgres/relationship"
	redisrepo "family-tree-go/internal/repository/redis"
	"family-tree-go/internal/storage/cloudinary"
	"family-tree-go/internal/transport/httpserver"
	"family-tree-go/internal/transport/httpserver/handler"
	"family-tree-go/internal/transport/httpserver/middleware"
	"family-tree-go/pkg/logger"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
	tokenStore *redisrepo.TokenStore
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	log.Info("app: running migrations")
	if err := db.Migrate(dbConn); err != nil {
		return nil, err
	}

	log.Info("app: connecting to redis")
	tokenStore, err := redisrepo.NewTokenStore(cfg.Redis)
	if err != nil {
		return nil, err
	}

	storage := cloudinary.New(cfg.Storage)
	cropper := facedetect.NewClient(cfg.FaceDetect)

	accountRepo := accountrepo.NewPostgres(dbConn)
	accounts := accountdomain.NewService(accountRepo)
	families := familydomain.NewService(familyrepo.NewPostgres(dbConn))
	marriages := marriagedomain.NewService(marriagerepo.NewPostgres(dbConn))
	relationships := reldomain.NewService(relrepo.NewPostgres(dbConn), relrepo.NewTypePostgres(dbConn))
	members := memberdomain.NewService(memberrepo.NewPostgres(dbConn), marriages, relationships, accounts)
	media := mediadomain.NewService(mediarepo.NewPostgres(dbConn), storage, cropper, log)
	events := eventdomain.NewService(eventrepo.NewPostgres(dbConn), media, log)
	history := historydomain.NewService(historyrepo.NewPostgres(dbConn), media, log)

	tokens := authdomain.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	auth := authdomain.NewService(accountRepo, members, families, tokens, tokenStore)

	log.Info("app: initializing router")
	handlers := handler.New(auth, families, members, marriages, relationships, accounts, events, history, media, log)
	jwtAuth := middleware.NewJWTAuth(tokens, log)
	router := httpserver.NewRouter(cfg, handlers, jwtAuth, log)

	log.Info("app: initializing http server")
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
		tokenStore: tokenStore,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.tokenStore != nil {
		if err := a.tokenStore.Close(); err != nil {
			return err
		}
	}
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
