package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type RouterConfig struct {
	Handler     *Handler
	CORSOrigins []string
}

var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = defaultOrigins
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", DeviceHeader},
		ExposeHeaders:    []string{DeviceHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthcheck", HealthCheck)

	h := cfg.Handler
	api := router.Group("/api")
	api.GET("/catalog", h.Catalog)

	session := api.Group("/")
	session.Use(h.Session())
	{
		session.POST("/auth/signup", h.SignUp)
		session.POST("/auth/signin", h.SignIn)
		session.POST("/auth/signout", h.SignOut)
	}

	user := session.Group("")
	user.Use(h.RequireToken())
	{
		user.GET("/state", h.GetState)
		user.PUT("/step", h.SetStep)

		user.GET("/assessment/draft", h.GetDraft)
		user.PUT("/assessment/draft", h.SaveDraft)
		user.POST("/assessment", h.SubmitAssessment)

		user.POST("/recommendations", h.GenerateRecommendations)
		user.POST("/skills", h.AnalyzeSkills)
		user.POST("/chat", h.Chat)

		user.GET("/dashboard", h.Dashboard)
		user.POST("/reset", h.Reset)
	}
	return router
}
