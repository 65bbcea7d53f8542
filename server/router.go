package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/taskproof/taskproof/internal/conf"
	"github.com/taskproof/taskproof/internal/storage"
	"github.com/taskproof/taskproof/server/handles"
	"github.com/taskproof/taskproof/server/middlewares"
)

func Init(e *gin.Engine, store *storage.Storage) {
	handles.Init(store)

	e.Use(cors.New(cors.Config{
		AllowOrigins:     conf.Conf.Cors,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
	}))

	api := e.Group("/api")
	api.POST("/auth/login", handles.Login)

	authed := api.Group("", middlewares.Auth)
	authed.GET("/me", handles.CurrentUser)

	tasks := authed.Group("/tasks")
	tasks.GET("", handles.ListTasks)
	tasks.POST("", handles.CreateTask)
	tasks.POST("/:id/active", handles.SetTaskActive)
	tasks.POST("/:id/start", handles.StartTask)

	cl := authed.Group("/claims")
	cl.GET("/mine", handles.MyClaims)
	cl.POST("/:id/complete", handles.CompleteClaim)
}
