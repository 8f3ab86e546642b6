package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/luccabranco/wildspire/internal/api"
	"github.com/luccabranco/wildspire/internal/constants"
	"github.com/luccabranco/wildspire/internal/logging"
)

func main() {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()
	checkEnvVars([]string{constants.EnvSessionSecret, constants.EnvGoogleClientID, constants.EnvGoogleClientSecret})

	// Load the content configuration file (required). Path may be provided
	// via WILDSPIRE_CONFIG or defaults to ./wildspire_config.json in the
	// current working directory.
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = "./wildspire_config.json"
	}
	cfg := loadConfigOrExit(configPath)
	cat := cfg.Catalog()

	// Allow the DB path to be configured via WILDSPIRE_DB. Default to a
	// `data/` directory inside the backend module for local development.
	dbPath := os.Getenv(constants.EnvDBPath)
	if dbPath == "" {
		dbPath = "./data/wildspire.db"
	}
	repo := createRepositoryOrExit(dbPath, cfg)

	handler := api.NewBattleHandler(repo, cat, cfg.ActionTimeout)
	authHandler := api.NewAuthHandler(repo)

	// Background scanner: resolve or expire battles whose planning deadline
	// has passed.
	startTimeoutScanner(repo, cat, cfg.ActionTimeout)

	router := gin.Default()

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		// Public endpoints
		apiRoutes.GET(constants.RouteSpecies, handler.ListSpecies)
		apiRoutes.GET(constants.RouteAbilities, handler.ListAbilities)
		apiRoutes.GET(constants.RouteElements, handler.ListElements)
		apiRoutes.GET(constants.RoutePublicBattles, handler.ListPublicBattles)
		apiRoutes.GET(constants.RouteLeaderboard, handler.ListLeaderboard)
		apiRoutes.GET(constants.RouteVersion, api.Version)

		// Authenticated endpoints
		protected := apiRoutes.Group("")
		protected.Use(api.AuthRequired())

		protected.GET(constants.RouteTamerStats, handler.GetTamerStats)
		protected.POST(constants.RouteTamerStats, handler.UpdateTamerProfile)
		protected.GET(constants.RouteRoster, handler.GetRoster)
		protected.POST(constants.RouteBattles, handler.CreateBattle)
		protected.POST(constants.RouteBattlesJoin, handler.JoinBattle)
		protected.GET(constants.RouteBattleByCode, handler.GetBattle)
		protected.POST(constants.RouteBattleStart, handler.StartBattle)
		protected.POST(constants.RouteBattleEnd, handler.EndBattle)
		protected.POST(constants.RouteBattleLeave, handler.LeaveBattle)
		protected.POST(constants.RouteBattleAction, handler.SubmitAction)
		protected.POST(constants.RouteBattleAdvance, handler.AdvanceRound)
	}

	router.POST(constants.RouteAuthGoogleCallBack, authHandler.GoogleOAuthCallback)
	router.POST(constants.RouteAuthLogout, authHandler.Logout)

	addr := cfg.ServerAddress
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}

func checkEnvVars(vars []string) {
	for _, v := range vars {
		if os.Getenv(v) == "" {
			logging.Fatal("Required environment variable not set", nil, logging.Fields{"var": v})
		}
	}
}
