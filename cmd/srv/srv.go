package main

import (
	"context"
	"net/http"

	"github.com/questmaster/backend/config"
	"github.com/questmaster/backend/internal/domain"
	"github.com/questmaster/backend/internal/domain/trophy"
	"github.com/questmaster/backend/internal/model"
	"github.com/questmaster/backend/internal/repository"
	"github.com/questmaster/backend/pkg/api/discord"
	"github.com/questmaster/backend/pkg/jwt"
	"github.com/questmaster/backend/pkg/logger"
	"github.com/questmaster/backend/pkg/router"
	"github.com/questmaster/backend/pkg/xcontext"
	"github.com/questmaster/backend/pkg/xredis"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	ctx context.Context
	app *cli.App

	configs config.Configs
	logger  logger.Logger
	db      *gorm.DB

	discordEndpoint discord.IEndpoint
	redisClient     xredis.Client
	jwtEngine       *jwt.Engine[model.AccessToken]

	userRepo         repository.UserRepository
	gameRepo         repository.GameRepository
	sessionRepo      repository.GameSessionRepository
	eventRepo        repository.GameEventRepository
	trophyRepo       repository.TrophyRepository
	categoryRepo     repository.CategoryRepository
	systemRepo       repository.SystemRepository
	vttRepo          repository.VttRepository
	specialEventRepo repository.SpecialEventRepository

	trophyManager *trophy.Manager

	userDomain         domain.UserDomain
	gameDomain         domain.GameDomain
	sessionDomain      domain.GameSessionDomain
	eventDomain        domain.GameEventDomain
	trophyDomain       domain.TrophyDomain
	systemDomain       domain.SystemDomain
	vttDomain          domain.VttDomain
	specialEventDomain domain.SpecialEventDomain
	categoryDomain     domain.CategoryDomain

	router *router.Router
	server *http.Server
}

func (s *srv) loadConfig() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	s.configs = cfg
	s.ctx = xcontext.WithConfigs(context.Background(), cfg)
}

func (s *srv) loadLogger() {
	s.logger = logger.NewLogger(s.configs.LogLevel)
	s.ctx = xcontext.WithLogger(s.ctx, s.logger)
}

func (s *srv) loadDatabase() {
	var err error
	s.db, err = gorm.Open(mysql.New(mysql.Config{
		DSN:                       s.configs.Database.ConnectionString(),
		DefaultStringSize:         256,
		DisableDatetimePrecision:  true,
		DontSupportRenameIndex:    true,
		DontSupportRenameColumn:   true,
		SkipInitializeWithVersion: false,
	}), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithDB(s.ctx, s.db)
}

func (s *srv) loadEndpoint() {
	s.discordEndpoint = discord.New(s.configs.Discord)
}

func (s *srv) loadRedis() {
	var err error
	s.redisClient, err = xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.gameRepo = repository.NewGameRepository()
	s.sessionRepo = repository.NewGameSessionRepository()
	s.eventRepo = repository.NewGameEventRepository()
	s.trophyRepo = repository.NewTrophyRepository()
	s.categoryRepo = repository.NewCategoryRepository()
	s.systemRepo = repository.NewSystemRepository()
	s.vttRepo = repository.NewVttRepository()
	s.specialEventRepo = repository.NewSpecialEventRepository()
}

func (s *srv) loadDomains() {
	s.jwtEngine = jwt.NewEngine[model.AccessToken](
		s.configs.Auth.TokenSecret, s.configs.Auth.Expiration)
	s.trophyManager = trophy.NewManager(s.trophyRepo)

	s.userDomain = domain.NewUserDomain(s.userRepo, s.discordEndpoint, s.redisClient, s.jwtEngine)
	s.gameDomain = domain.NewGameDomain(
		s.gameRepo, s.userRepo, s.sessionRepo, s.eventRepo,
		s.categoryRepo, s.trophyManager, s.discordEndpoint)
	s.sessionDomain = domain.NewGameSessionDomain(
		s.gameRepo, s.userRepo, s.sessionRepo, s.eventRepo, s.discordEndpoint)
	s.eventDomain = domain.NewGameEventDomain(s.eventRepo)
	s.trophyDomain = domain.NewTrophyDomain(s.trophyRepo, s.userRepo, s.trophyManager)
	s.systemDomain = domain.NewSystemDomain(s.systemRepo)
	s.vttDomain = domain.NewVttDomain(s.vttRepo)
	s.specialEventDomain = domain.NewSpecialEventDomain(s.specialEventRepo)
	s.categoryDomain = domain.NewCategoryDomain(s.categoryRepo, s.discordEndpoint)
}
