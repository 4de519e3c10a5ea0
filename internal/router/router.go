package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"workoutjournal/backend/internal/handler"
	"workoutjournal/backend/internal/middleware"
	"workoutjournal/backend/internal/service"
)

func New(
	authService *service.AuthService,
	authHandler *handler.AuthHandler,
	workoutHandler *handler.WorkoutHandler,
	historyHandler *handler.HistoryHandler,
	catalogHandler *handler.CatalogHandler,
	corsOrigins []string,
	requestTimeout time.Duration,
) *gin.Engine {
	engine := gin.New()
	engine.Use(
		gin.Logger(),
		gin.Recovery(),
		middleware.CORS(corsOrigins),
		middleware.Timeout(requestTimeout),
	)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	engine.POST("/signup", authHandler.Signup)
	engine.POST("/login", authHandler.Login)
	engine.POST("/logout", authHandler.Logout)
	engine.POST("/refresh", authHandler.Refresh)

	authed := engine.Group("")
	authed.Use(middleware.Auth(authService))
	authed.GET("/history", historyHandler.GetHistory)
	authed.GET("/daytypes", catalogHandler.ListDaytypes)
	authed.POST("/daytypes", catalogHandler.CreateDaytype)
	authed.GET("/exercises", catalogHandler.ListExercises)
	authed.POST("/exercises", catalogHandler.CreateExercise)

	workout := authed.Group("/workout")
	workout.GET("/state", workoutHandler.GetState)
	workout.POST("/entries", workoutHandler.LogEntry)
	workout.POST("/finish", workoutHandler.Finish)
	workout.GET("/summary", workoutHandler.Summary)
	workout.POST("/reset", workoutHandler.Reset)

	return engine
}
