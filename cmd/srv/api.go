package main

import (
	"log"
	"net/http"

	"github.com/questmaster/backend/internal/middleware"
	"github.com/questmaster/backend/pkg/router"
	"github.com/rs/cors"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(cctx *cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadEndpoint()
	s.loadDatabase()
	s.loadRedis()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{s.configs.SiteBaseURL},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	s.server = &http.Server{
		Addr:    s.configs.ApiServer.Address(),
		Handler: corsHandler.Handler(s.router.Handler()),
	}

	log.Printf("Starting server on %s\n", s.configs.ApiServer.Address())
	if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}

	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.db, s.configs, s.logger)
	s.router.Static("/static", "./web/static")
	s.router.AddCloser(middleware.Logger())

	// Public API.
	publicRouter := s.router.Branch("")
	publicRouter.Before(middleware.OptionalAuthenticate())
	{
		router.POST(publicRouter, "/login", s.userDomain.Login)
		router.GET(publicRouter, "/getGame", s.gameDomain.Get)
		router.GET(publicRouter, "/getListGame", s.gameDomain.GetList)
		router.GET(publicRouter, "/getListGameSession", s.sessionDomain.GetList)
		router.GET(publicRouter, "/getListGameEvent", s.eventDomain.GetList)
		router.GET(publicRouter, "/getListSystem", s.systemDomain.GetList)
		router.GET(publicRouter, "/getListVtt", s.vttDomain.GetList)
		router.GET(publicRouter, "/getListSpecialEvent", s.specialEventDomain.GetList)
		router.GET(publicRouter, "/getListTrophy", s.trophyDomain.GetList)
		router.GET(publicRouter, "/getUser", s.userDomain.GetUser)
		router.GET(publicRouter, "/getUserTrophies", s.trophyDomain.GetUserTrophies)
		router.GET(publicRouter, "/getTrophyLeaderboard", s.trophyDomain.GetLeaderboard)
	}

	// Authenticated API.
	authRouter := s.router.Branch("")
	authRouter.Before(middleware.Authenticate())
	{
		router.GET(authRouter, "/getMe", s.userDomain.GetMe)
		router.POST(authRouter, "/refreshProfile", s.userDomain.RefreshProfile)

		router.POST(authRouter, "/createGame", s.gameDomain.Create)
		router.POST(authRouter, "/updateGame", s.gameDomain.Update)
		router.POST(authRouter, "/deleteGame", s.gameDomain.Delete)
		router.POST(authRouter, "/publishGame", s.gameDomain.Publish)
		router.POST(authRouter, "/closeGame", s.gameDomain.Close)
		router.POST(authRouter, "/reopenGame", s.gameDomain.Reopen)
		router.POST(authRouter, "/archiveGame", s.gameDomain.Archive)
		router.POST(authRouter, "/cloneGame", s.gameDomain.Clone)
		router.POST(authRouter, "/registerGame", s.gameDomain.Register)
		router.POST(authRouter, "/unregisterGame", s.gameDomain.Unregister)
		router.POST(authRouter, "/alertGame", s.gameDomain.Alert)

		router.POST(authRouter, "/createGameSession", s.sessionDomain.Create)
		router.POST(authRouter, "/updateGameSession", s.sessionDomain.Update)
		router.POST(authRouter, "/deleteGameSession", s.sessionDomain.Delete)
	}

	// Admin API.
	adminRouter := s.router.Branch("")
	adminRouter.Before(middleware.Authenticate())
	adminRouter.Before(middleware.OnlyAdmin(s.userRepo))
	{
		router.POST(adminRouter, "/createTrophy", s.trophyDomain.Create)
		router.POST(adminRouter, "/awardTrophy", s.trophyDomain.Award)
		router.POST(adminRouter, "/createSystem", s.systemDomain.Create)
		router.POST(adminRouter, "/deleteSystem", s.systemDomain.Delete)
		router.POST(adminRouter, "/createVtt", s.vttDomain.Create)
		router.POST(adminRouter, "/deleteVtt", s.vttDomain.Delete)
		router.POST(adminRouter, "/createSpecialEvent", s.specialEventDomain.Create)
		router.POST(adminRouter, "/updateSpecialEvent", s.specialEventDomain.Update)
		router.POST(adminRouter, "/deleteSpecialEvent", s.specialEventDomain.Delete)
		router.GET(adminRouter, "/getListCategory", s.categoryDomain.GetList)
		router.POST(adminRouter, "/createCategory", s.categoryDomain.Create)
		router.POST(adminRouter, "/deleteCategory", s.categoryDomain.Delete)
		router.POST(adminRouter, "/markNotPlayer", s.userDomain.MarkNotPlayer)
		router.POST(adminRouter, "/clearNotPlayer", s.userDomain.ClearNotPlayer)
	}
}
