package main

import (
	"fmt"
	"net/http"
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/GummyBear-w/poke-quiz-server/config"
	"github.com/GummyBear-w/poke-quiz-server/game"
	"github.com/GummyBear-w/poke-quiz-server/logger"
	"github.com/GummyBear-w/poke-quiz-server/pokeapi"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Debug)

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	provider := pokeapi.NewClient(cfg.PokeAPIBaseURL, cfg.PokeAPITimeout, log)
	lobby := game.NewLobby(game.NewCodeGen(), game.NewTickerGen(), provider, log)

	lobbyStarted := make(chan struct{})
	go lobby.LobbyActor(lobbyStarted)
	<-lobbyStarted

	r := CreateServer(cfg.AllowedOrigins)
	game.RegisterRoutes(r, game.NewGameHandler(lobby, log))

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Info().Str("addr", addr).Msg("server listening")
	if err := r.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func CreateServer(allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	if slices.Contains(allowedOrigins, "*") {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowAllOrigins = true
		r.Use(cors.New(corsConfig))
	} else {
		r.Use(func(ctx *gin.Context) {
			origin := ctx.GetHeader("Origin")
			if origin != "" && !slices.Contains(allowedOrigins, origin) {
				ctx.AbortWithStatus(http.StatusForbidden)
				return
			}
			ctx.Next()
		})
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = allowedOrigins
		corsConfig.AllowCredentials = true
		r.Use(cors.New(corsConfig))
	}

	r.GET("/health", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "healthy")
	})
	return r
}
